/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scale

import (
	"math"
	"testing"

	"gochart/internal/value"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

// vals flattens a broadcast scale output so assertions can index it.
func vals[T any](v value.ScalarOrArray[T], err error) ([]T, error) {
	return v.Vec(v.Len(), nil), err
}

func mustScale(t *testing.T, kind Kind, cfg Config) *Configured {
	t.Helper()
	s, err := New(kind, cfg)
	if err != nil {
		t.Fatalf("New(%s): %v", kind, err)
	}
	return s
}

func interval(a, b float32) Array { return Floats([]float32{a, b}) }

func TestLinearScaleBasic(t *testing.T) {
	s := mustScale(t, Linear, Config{Domain: interval(0, 10), Range: interval(0, 100)})
	got, err := vals(s.ScaleToNumeric(Floats([]float32{0, 5, 10})))
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	want := []float32{0, 50, 100}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("scale[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLinearScaleClampRoundOffset(t *testing.T) {
	s := mustScale(t, Linear, Config{
		Domain:  interval(0, 10),
		Range:   interval(0, 100),
		Options: map[string]Scalar{"clamp": Bool(true)},
	})
	got, err := vals(s.ScaleToNumeric(Floats([]float32{-1, 15})))
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	if got[0] != 0 || got[1] != 100 {
		t.Fatalf("clamped = %v, want [0 100]", got)
	}

	s = mustScale(t, Linear, Config{
		Domain:  interval(0, 10),
		Range:   interval(0, 100),
		Options: map[string]Scalar{"round": Bool(true)},
	})
	got, _ = vals(s.ScaleToNumeric(Floats([]float32{0.333})))
	if got[0] != 3 {
		t.Fatalf("rounded = %v, want 3", got[0])
	}

	s = mustScale(t, Linear, Config{
		Domain:  interval(0, 10),
		Range:   interval(0, 100),
		Options: map[string]Scalar{"range_offset": F32(3)},
	})
	got, _ = vals(s.ScaleToNumeric(Floats([]float32{5})))
	if !approx(got[0], 53) {
		t.Fatalf("offset = %v, want 53", got[0])
	}
}

func TestLinearScaleNaNPropagates(t *testing.T) {
	s := mustScale(t, Linear, Config{
		Domain:  interval(0, 10),
		Range:   interval(0, 100),
		Options: map[string]Scalar{"clamp": Bool(true)},
	})
	got, _ := vals(s.ScaleToNumeric(Floats([]float32{float32(math.NaN())})))
	if !math.IsNaN(float64(got[0])) {
		t.Fatalf("NaN input must stay NaN, got %v", got[0])
	}
}

func TestLinearScaleDegenerateDomain(t *testing.T) {
	s := mustScale(t, Linear, Config{Domain: interval(5, 5), Range: interval(20, 100)})
	got, _ := vals(s.ScaleToNumeric(Floats([]float32{1, 5, 9})))
	for i, v := range got {
		if v != 20 {
			t.Fatalf("degenerate[%d] = %v, want range start 20", i, v)
		}
	}
}

func TestLinearZeroAndNice(t *testing.T) {
	s := mustScale(t, Linear, Config{
		Domain:  interval(2, 10),
		Range:   interval(0, 100),
		Options: map[string]Scalar{"zero": Bool(true)},
	})
	got, _ := vals(s.ScaleToNumeric(Floats([]float32{0})))
	if !approx(got[0], 0) {
		t.Fatalf("zero-extended scale(0) = %v, want 0", got[0])
	}

	s = mustScale(t, Linear, Config{
		Domain:  interval(0.201, 0.899),
		Range:   interval(0, 1),
		Options: map[string]Scalar{"nice": Bool(true)},
	})
	// niced domain is [0.2, 0.9]
	got, _ = vals(s.ScaleToNumeric(Floats([]float32{0.2, 0.9})))
	if !approx(got[0], 0) || !approx(got[1], 1) {
		t.Fatalf("niced ends = %v, want [0 1]", got)
	}
}

func TestLinearClipPadding(t *testing.T) {
	s := mustScale(t, Linear, Config{
		Domain: interval(0, 10),
		Range:  interval(0, 100),
		Options: map[string]Scalar{
			"clip_padding_lower": F32(10),
			"clip_padding_upper": F32(10),
		},
	})
	// 10px on each side of a 100px range is one domain unit
	got, _ := vals(s.ScaleToNumeric(Floats([]float32{-1, 11})))
	if !approx(got[0], 0) || !approx(got[1], 100) {
		t.Fatalf("padded ends = %v, want [0 100]", got)
	}
}

func TestLinearInvert(t *testing.T) {
	s := mustScale(t, Linear, Config{Domain: interval(0, 10), Range: interval(0, 100)})
	v, err := s.InvertScalar(50)
	if err != nil {
		t.Fatalf("invert: %v", err)
	}
	if !approx(v, 5) {
		t.Fatalf("invert(50) = %v, want 5", v)
	}

	s = mustScale(t, Linear, Config{
		Domain:  interval(0, 10),
		Range:   interval(0, 100),
		Options: map[string]Scalar{"range_offset": F32(3)},
	})
	v, _ = s.InvertScalar(53)
	if !approx(v, 5) {
		t.Fatalf("invert with offset = %v, want 5", v)
	}
}

func TestLinearTicks(t *testing.T) {
	s := mustScale(t, Linear, Config{Domain: interval(0, 10), Range: interval(0, 100)})
	got, err := s.Ticks(5)
	if err != nil {
		t.Fatalf("ticks: %v", err)
	}
	want := []float32{0, 2, 4, 6, 8, 10}
	if len(got) != len(want) {
		t.Fatalf("ticks = %v, want %v", got, want)
	}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("tick[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestLinearPanZoom(t *testing.T) {
	s := mustScale(t, Linear, Config{Domain: interval(0, 10), Range: interval(0, 100)})

	panned, err := s.Pan(0.5)
	if err != nil {
		t.Fatalf("pan: %v", err)
	}
	d0, d1, _ := panned.Config.NumericIntervalDomain()
	if !approx(d0, -5) || !approx(d1, 5) {
		t.Fatalf("panned domain = [%v %v], want [-5 5]", d0, d1)
	}

	zoomed, err := s.Zoom(0.5, 2)
	if err != nil {
		t.Fatalf("zoom: %v", err)
	}
	d0, d1, _ = zoomed.Config.NumericIntervalDomain()
	if !approx(d0, -5) || !approx(d1, 15) {
		t.Fatalf("zoomed domain = [%v %v], want [-5 15]", d0, d1)
	}
}

func TestLinearAdjust(t *testing.T) {
	from := mustScale(t, Linear, Config{Domain: interval(0, 10), Range: interval(0, 100)})
	to := mustScale(t, Linear, Config{Domain: interval(0, 20), Range: interval(0, 100)})
	adj, err := from.AdjustTo(to)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	// a value scaled by from, adjusted, must land where to scales it
	fromOut, _ := vals(from.ScaleToNumeric(Floats([]float32{4})))
	toOut, _ := vals(to.ScaleToNumeric(Floats([]float32{4})))
	if got := adj.Scale*fromOut[0] + adj.Offset; !approx(got, toOut[0]) {
		t.Fatalf("adjusted = %v, want %v", got, toOut[0])
	}
}

func TestPanUnsupportedForBand(t *testing.T) {
	s := mustScale(t, Band, Config{Domain: Strings([]string{"a"}), Range: interval(0, 1)})
	if _, err := s.Pan(0.1); err == nil {
		t.Fatalf("expected pan error for band scale")
	} else if k, ok := KindOfError(err); !ok || k != ErrUnsupported {
		t.Fatalf("error kind = %v, want unsupported", k)
	}
}
