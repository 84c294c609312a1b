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
)

func abc() Array { return Strings([]string{"a", "b", "c"}) }

func TestBandScaleBasic(t *testing.T) {
	s := mustScale(t, Band, Config{Domain: abc(), Range: interval(0, 1)})
	got, err := vals(s.ScaleToNumeric(Strings([]string{"a", "b", "b", "c", "f"})))
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	want := []float32{0, 1.0 / 3, 1.0 / 3, 2.0 / 3}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("band[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if !math.IsNaN(float64(got[4])) {
		t.Fatalf("missing domain value = %v, want NaN", got[4])
	}

	bw, err := s.Bandwidth()
	if err != nil || !approx(bw, 1.0/3) {
		t.Fatalf("bandwidth = %v (%v), want 1/3", bw, err)
	}
	step, err := s.Step()
	if err != nil || !approx(step, 1.0/3) {
		t.Fatalf("step = %v (%v), want 1/3", step, err)
	}
}

func TestBandScaleReversedRange(t *testing.T) {
	s := mustScale(t, Band, Config{Domain: abc(), Range: interval(1, 0)})
	got, _ := vals(s.ScaleToNumeric(Strings([]string{"a", "c"})))
	if !approx(got[0], 2.0/3) || !approx(got[1], 0) {
		t.Fatalf("reversed bands = %v, want [2/3 0]", got)
	}
}

func TestBandOptionPositionsWithinBand(t *testing.T) {
	s := mustScale(t, Band, Config{
		Domain:  abc(),
		Range:   interval(0, 1),
		Options: map[string]Scalar{"band": F32(0.5)},
	})
	got, _ := vals(s.ScaleToNumeric(Strings([]string{"a"})))
	if !approx(got[0], 1.0/6) {
		t.Fatalf("band midpoint = %v, want 1/6", got[0])
	}
}

func TestBandScaleRound(t *testing.T) {
	s := mustScale(t, Band, Config{
		Domain:  abc(),
		Range:   interval(0, 100),
		Options: map[string]Scalar{"round": Bool(true), "padding_outer": F32(0.5)},
	})
	got, err := vals(s.ScaleToNumeric(Strings([]string{"a", "b", "c"})))
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	for i, v := range got {
		if v != floorf(v) {
			t.Fatalf("rounded position[%d] = %v is not integral", i, v)
		}
	}
}

func TestPointScale(t *testing.T) {
	s := mustScale(t, Point, Config{Domain: abc(), Range: interval(0, 1)})
	got, err := vals(s.ScaleToNumeric(Strings([]string{"a", "b", "c", "x"})))
	if err != nil {
		t.Fatalf("scale: %v", err)
	}
	want := []float32{0, 0.5, 1}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("point[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if !math.IsNaN(float64(got[3])) {
		t.Fatalf("missing value = %v, want NaN", got[3])
	}

	bw, _ := s.Bandwidth()
	if bw != 0 {
		t.Fatalf("point bandwidth = %v, want 0", bw)
	}
}

func TestPointScalePadding(t *testing.T) {
	s := mustScale(t, Point, Config{
		Domain:  abc(),
		Range:   interval(0, 100),
		Options: map[string]Scalar{"padding": F32(0.5)},
	})
	got, _ := vals(s.ScaleToNumeric(Strings([]string{"b"})))
	if !approx(got[0], 50) {
		t.Fatalf("padded point = %v, want 50", got[0])
	}
}

func TestBandInvertRangeInterval(t *testing.T) {
	s := mustScale(t, Band, Config{Domain: abc(), Range: interval(0, 1)})

	got, err := s.InvertRangeInterval(0.1, 0.4)
	if err != nil {
		t.Fatalf("invert: %v", err)
	}
	vals, _ := got.AsStrings()
	if len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Fatalf("covered bands = %v, want [a b]", vals)
	}

	got, _ = s.InvertRangeInterval(0, 1)
	vals, _ = got.AsStrings()
	if len(vals) != 3 {
		t.Fatalf("full interval = %v, want all three", vals)
	}
}

func TestBandInvertRangeIntervalMisses(t *testing.T) {
	s := mustScale(t, Band, Config{Domain: abc(), Range: interval(0, 1)})

	got, _ := s.InvertRangeInterval(float32(math.NaN()), 0.5)
	if got.Len() != 0 {
		t.Fatalf("NaN interval should be empty, got %d values", got.Len())
	}

	got, _ = s.InvertRangeInterval(2, 3)
	if got.Len() != 0 {
		t.Fatalf("interval outside range should be empty, got %d values", got.Len())
	}
}

func TestBandInvertRangeIntervalReversed(t *testing.T) {
	s := mustScale(t, Band, Config{Domain: abc(), Range: interval(1, 0)})
	got, err := s.InvertRangeInterval(0.7, 1)
	if err != nil {
		t.Fatalf("invert: %v", err)
	}
	vals, _ := got.AsStrings()
	if len(vals) != 1 || vals[0] != "a" {
		t.Fatalf("reversed interval = %v, want [a]", vals)
	}
}

func TestBandScaleValidation(t *testing.T) {
	_, err := New(Band, Config{
		Domain:  abc(),
		Range:   interval(0, 1),
		Options: map[string]Scalar{"align": F32(1.5)},
	})
	if err == nil {
		t.Fatalf("expected align validation error")
	}
	if k, ok := KindOfError(err); !ok || k != ErrConfig {
		t.Fatalf("error kind = %v, want config", k)
	}

	s := mustScale(t, Band, Config{Domain: Strings(nil), Range: interval(0, 1)})
	if _, err := s.ScaleToNumeric(Strings([]string{"a"})); err == nil {
		t.Fatalf("expected empty domain error")
	}
}
