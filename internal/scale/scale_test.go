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

	"gochart/internal/colorspace"
	"gochart/internal/scene"
	"gochart/internal/value"
)

func TestParseKind(t *testing.T) {
	for _, name := range []string{
		"linear", "log", "pow", "symlog", "band", "point", "ordinal", "quantile", "threshold",
	} {
		k, err := ParseKind(name)
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", name, err)
		}
		if k.String() != name {
			t.Fatalf("round trip %q -> %q", name, k)
		}
	}

	_, err := ParseKind("sqrt")
	if err == nil {
		t.Fatalf("expected lookup error")
	}
	if k, ok := KindOfError(err); !ok || k != ErrLookup {
		t.Fatalf("error kind = %v, want lookup", k)
	}
}

func TestInferDomainMethodPerKind(t *testing.T) {
	for _, k := range []Kind{Linear, Log, Pow, Symlog} {
		if k.InferDomainMethod() != InferInterval {
			t.Fatalf("%s should infer interval domains", k)
		}
	}
	for _, k := range []Kind{Band, Point, Ordinal, Quantile, Threshold} {
		if k.InferDomainMethod() != InferUnique {
			t.Fatalf("%s should infer unique domains", k)
		}
	}
}

func TestValidateRejectsUnknownAndMistyped(t *testing.T) {
	_, err := New(Linear, Config{
		Domain:  interval(0, 1),
		Range:   interval(0, 1),
		Options: map[string]Scalar{"padding_inner": F32(0.5)},
	})
	if err == nil {
		t.Fatalf("expected unknown option error")
	}

	_, err = New(Linear, Config{
		Domain:  interval(0, 1),
		Range:   interval(0, 1),
		Options: map[string]Scalar{"clamp": F32(1)},
	})
	if err == nil {
		t.Fatalf("expected boolean type error")
	}

	_, err = New(Log, Config{
		Domain:  interval(1, 10),
		Range:   interval(0, 1),
		Options: map[string]Scalar{"base": F32(1)},
	})
	if err == nil {
		t.Fatalf("expected log base error")
	}

	if _, err := New(Linear, Config{
		Domain:  interval(0, 1),
		Range:   interval(0, 1),
		Options: map[string]Scalar{"nice": F32(5)},
	}); err != nil {
		t.Fatalf("numeric nice should validate: %v", err)
	}
}

func TestNormalizedOptions(t *testing.T) {
	s := mustScale(t, Linear, Config{
		Domain:  interval(0, 1),
		Range:   interval(0, 1),
		Options: map[string]Scalar{"zero": Bool(true)},
	})
	opts := s.NormalizedOptions()
	if len(opts) != len(linearOptions) {
		t.Fatalf("normalized key count = %d, want %d", len(opts), len(linearOptions))
	}
	if v, ok := opts["zero"].Bool(); !ok || !v {
		t.Fatalf("explicit zero lost: %v", opts["zero"])
	}
	if v, ok := opts["nice"].Bool(); !ok || v {
		t.Fatalf("unset nice should disable, got %v", opts["nice"])
	}
	if _, ok := opts["padding_inner"]; ok {
		t.Fatalf("foreign option leaked into normalized set")
	}

	p := mustScale(t, Point, Config{Domain: Strings([]string{"a"}), Range: interval(0, 1)})
	popts := p.NormalizedOptions()
	if len(popts) != len(pointOptions) {
		t.Fatalf("point normalized key count = %d, want %d", len(popts), len(pointOptions))
	}
	if v, ok := popts["align"].Float(); !ok || v != 0.5 {
		t.Fatalf("point align default = %v, want 0.5", popts["align"])
	}
}

func TestScaleToColorContinuous(t *testing.T) {
	black := colorspace.Srgba{A: 1}
	white := colorspace.Srgba{R: 1, G: 1, B: 1, A: 1}
	s := mustScale(t, Linear, Config{
		Domain: interval(0, 10),
		Range:  Colors([]colorspace.Srgba{black, white}),
	})

	got, err := vals(s.ScaleToColor(Floats([]float32{5, 20, float32(math.NaN())})))
	if err != nil {
		t.Fatalf("color: %v", err)
	}
	if !approx(got[0].R, 0.5) || !approx(got[0].G, 0.5) {
		t.Fatalf("midpoint color = %+v, want mid gray", got[0])
	}
	// out-of-domain input clamps even without the clamp option
	if got[1] != white {
		t.Fatalf("overflow color = %+v, want white", got[1])
	}
	if got[2] != black {
		t.Fatalf("NaN color = %+v, want first control color", got[2])
	}
}

func TestScaleToColorOrdinal(t *testing.T) {
	red := colorspace.Srgba{R: 1, A: 1}
	blue := colorspace.Srgba{B: 1, A: 1}
	s := mustScale(t, Ordinal, Config{
		Domain: Strings([]string{"x", "y"}),
		Range:  Colors([]colorspace.Srgba{red, blue}),
	})
	got, err := vals(s.ScaleToColor(Strings([]string{"y", "z"})))
	if err != nil {
		t.Fatalf("color: %v", err)
	}
	if got[0] != blue {
		t.Fatalf("lookup color = %+v, want blue", got[0])
	}
	if got[1] != (colorspace.Srgba{}) {
		t.Fatalf("miss color = %+v, want transparent", got[1])
	}
}

func TestColorRangeAsGradientStops(t *testing.T) {
	black := colorspace.Srgba{A: 1}
	white := colorspace.Srgba{R: 1, G: 1, B: 1, A: 1}
	s := mustScale(t, Linear, Config{
		Domain: interval(0, 1),
		Range:  Colors([]colorspace.Srgba{black, white}),
	})
	stops, err := s.ColorRangeAsGradientStops(4)
	if err != nil {
		t.Fatalf("stops: %v", err)
	}
	if len(stops) != 5 {
		t.Fatalf("stop count = %d, want 5", len(stops))
	}
	if stops[0].Offset != 0 || stops[4].Offset != 1 {
		t.Fatalf("stop offsets = %v..%v, want 0..1", stops[0].Offset, stops[4].Offset)
	}
	if !approx(stops[2].Color.R, 0.5) {
		t.Fatalf("middle stop = %+v, want mid gray", stops[2].Color)
	}
}

func TestScaleToEnumOutputs(t *testing.T) {
	s := mustScale(t, Ordinal, Config{
		Domain: Strings([]string{"a", "b"}),
		Range:  Strings([]string{"round", "bevel"}),
	})
	joins, err := vals(s.ScaleToStrokeJoin(Strings([]string{"a", "b", "z"})))
	if err != nil {
		t.Fatalf("joins: %v", err)
	}
	if joins[0] != scene.JoinRound || joins[1] != scene.JoinBevel {
		t.Fatalf("joins = %v", joins)
	}
	if joins[2] != scene.JoinMiter {
		t.Fatalf("miss join = %v, want the zero value", joins[2])
	}

	s = mustScale(t, Ordinal, Config{
		Domain: Strings([]string{"a", "b"}),
		Range:  Strings([]string{"center", "right"}),
	})
	aligns, err := vals(s.ScaleToAlign(Strings([]string{"b"})))
	if err != nil {
		t.Fatalf("aligns: %v", err)
	}
	if aligns[0] != scene.AlignRight {
		t.Fatalf("align = %v, want right", aligns[0])
	}
}

func TestUnsupportedOperations(t *testing.T) {
	ord := mustScale(t, Ordinal, Config{
		Domain: Strings([]string{"a"}),
		Range:  Floats([]float32{1}),
	})
	if _, err := ord.InvertFromNumeric([]float32{1}); err == nil {
		t.Fatalf("ordinal inversion should fail")
	}
	if _, err := ord.Ticks(DefaultTickCount); err == nil {
		t.Fatalf("ordinal ticks should fail")
	}

	lin := mustScale(t, Linear, Config{Domain: interval(0, 1), Range: interval(0, 1)})
	if _, err := lin.InvertRangeInterval(0, 1); err == nil {
		t.Fatalf("linear range interval inversion should fail")
	}
	if _, err := lin.Bandwidth(); err == nil {
		t.Fatalf("linear bandwidth should fail")
	}
}

func TestInferDomains(t *testing.T) {
	got := InferFloatDomain(InferInterval, []float32{3, float32(math.NaN()), -1, 7})
	fs, _ := got.AsFloats()
	if fs[0] != -1 || fs[1] != 7 {
		t.Fatalf("interval domain = %v, want [-1 7]", fs)
	}

	got = InferStringDomain([]string{"b", "a", "b", "c"})
	ss, _ := got.AsStrings()
	if len(ss) != 3 || ss[0] != "b" || ss[1] != "a" || ss[2] != "c" {
		t.Fatalf("unique domain = %v, want first-seen order", ss)
	}
}

func TestScaleOutputsAreBroadcastContainers(t *testing.T) {
	s := mustScale(t, Linear, Config{Domain: interval(0, 10), Range: interval(0, 100)})

	nums, err := s.ScaleToNumeric(Floats([]float32{0, 5, 10}))
	if err != nil {
		t.Fatalf("numeric: %v", err)
	}
	if nums.IsScalar() {
		t.Fatalf("array input must scale to an array variant")
	}
	if nums.Len() != 3 {
		t.Fatalf("output length = %d, want 3", nums.Len())
	}
	var seen []float32
	nums.Each(nums.Len(), nil, func(_ int, v float32) {
		seen = append(seen, v)
	})
	for i, v := range seen {
		if nums.Value(i) != v {
			t.Fatalf("Value(%d) = %v, Each saw %v", i, nums.Value(i), v)
		}
	}

	// ScaleToString formats the numeric result without changing its variant.
	ss, err := s.ScaleToString(Floats([]float32{5}))
	if err != nil {
		t.Fatalf("string: %v", err)
	}
	if ss.IsScalar() || ss.Len() != 1 {
		t.Fatalf("string output variant changed: scalar=%v len=%d", ss.IsScalar(), ss.Len())
	}

	// Enum adapters reuse the string result, so the variant carries through.
	e := mustScale(t, Ordinal, Config{
		Domain: Strings([]string{"a"}),
		Range:  Strings([]string{"bevel"}),
	})
	joins, err := e.ScaleToStrokeJoin(Strings([]string{"a", "a"}))
	if err != nil {
		t.Fatalf("joins: %v", err)
	}
	if joins.IsScalar() || joins.Len() != 2 {
		t.Fatalf("join output variant changed: scalar=%v len=%d", joins.IsScalar(), joins.Len())
	}
	if joins.Value(0) != scene.JoinBevel {
		t.Fatalf("join = %v, want bevel", joins.Value(0))
	}

	sc := value.Scalar(float32(7))
	mapped := value.Map(sc, func(v float32) float32 { return v * 2 })
	if !mapped.IsScalar() {
		t.Fatalf("mapping a scalar must stay scalar")
	}
}

func TestScaleToStringFormatsNumbers(t *testing.T) {
	s := mustScale(t, Linear, Config{Domain: interval(0, 10), Range: interval(0, 100)})
	got, err := vals(s.ScaleToString(Floats([]float32{5})))
	if err != nil {
		t.Fatalf("string: %v", err)
	}
	if got[0] != "50" {
		t.Fatalf("formatted = %q, want \"50\"", got[0])
	}
}
