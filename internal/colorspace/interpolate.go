/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package colorspace

import (
	"fmt"
	"math"
)

// Interpolator mixes between evenly spaced control colors in one working
// color space. Implementations hold no mutable state and may be shared
// across concurrent scale evaluations.
type Interpolator interface {
	// Interpolate produces one sRGBA color per value. Values are expected in
	// [0,1]; out-of-range values clamp to the end colors and NaN resolves to
	// the first control color.
	Interpolate(colors []Srgba, values []float32) ([]Srgba, error)
	// Name identifies the working space ("srgba", "hsla", "laba").
	Name() string
}

// continuousIndex positions v among n control colors. NaN maps to 0,
// mirroring the reference behavior where the fractional cast collapses.
func continuousIndex(v float32, n int) float64 {
	sf := float64(n - 1)
	ci := float64(v) * sf
	if math.IsNaN(ci) {
		return 0
	}
	return math.Min(sf, math.Max(0, ci))
}

func checkControls(colors []Srgba) error {
	if len(colors) == 0 {
		return fmt.Errorf("color interpolation requires at least one control color")
	}
	return nil
}

// SrgbaInterpolator mixes componentwise in non-linear sRGB.
type SrgbaInterpolator struct{}

func (SrgbaInterpolator) Name() string { return "srgba" }

func (SrgbaInterpolator) Interpolate(colors []Srgba, values []float32) ([]Srgba, error) {
	if err := checkControls(colors); err != nil {
		return nil, err
	}
	out := make([]Srgba, len(values))
	for i, v := range values {
		ci := continuousIndex(v, len(colors))
		lo, hi := int(math.Floor(ci)), int(math.Ceil(ci))
		if lo == hi {
			out[i] = colors[lo]
			continue
		}
		t := float32(ci - float64(lo))
		a, b := colors[lo], colors[hi]
		out[i] = Srgba{
			R: lerp(a.R, b.R, t),
			G: lerp(a.G, b.G, t),
			B: lerp(a.B, b.B, t),
			A: lerp(a.A, b.A, t),
		}
	}
	return out, nil
}

// HslaInterpolator mixes in HSL with hue traveling the shorter arc, then
// converts each result back to sRGBA.
type HslaInterpolator struct{}

func (HslaInterpolator) Name() string { return "hsla" }

func (HslaInterpolator) Interpolate(colors []Srgba, values []float32) ([]Srgba, error) {
	if err := checkControls(colors); err != nil {
		return nil, err
	}
	controls := make([]Hsla, len(colors))
	for i, c := range colors {
		controls[i] = c.ToHsla()
	}
	out := make([]Srgba, len(values))
	for i, v := range values {
		ci := continuousIndex(v, len(colors))
		lo, hi := int(math.Floor(ci)), int(math.Ceil(ci))
		if lo == hi {
			out[i] = colors[lo]
			continue
		}
		t := float32(ci - float64(lo))
		a, b := controls[lo], controls[hi]
		out[i] = Hsla{
			H: lerpHue(a.H, b.H, t),
			S: lerp(a.S, b.S, t),
			L: lerp(a.L, b.L, t),
			A: lerp(a.A, b.A, t),
		}.ToSrgba()
	}
	return out, nil
}

// LabaInterpolator mixes in CIE Lab for perceptually even ramps, then
// converts each result back to sRGBA.
type LabaInterpolator struct{}

func (LabaInterpolator) Name() string { return "laba" }

func (LabaInterpolator) Interpolate(colors []Srgba, values []float32) ([]Srgba, error) {
	if err := checkControls(colors); err != nil {
		return nil, err
	}
	controls := make([]Laba, len(colors))
	for i, c := range colors {
		controls[i] = c.ToLaba()
	}
	out := make([]Srgba, len(values))
	for i, v := range values {
		ci := continuousIndex(v, len(colors))
		lo, hi := int(math.Floor(ci)), int(math.Ceil(ci))
		if lo == hi {
			out[i] = colors[lo]
			continue
		}
		t := float32(ci - float64(lo))
		a, b := controls[lo], controls[hi]
		out[i] = Laba{
			L:     lerp(a.L, b.L, t),
			A:     lerp(a.A, b.A, t),
			B:     lerp(a.B, b.B, t),
			Alpha: lerp(a.Alpha, b.Alpha, t),
		}.ToSrgba()
	}
	return out, nil
}

// ByName returns the interpolator for a working-space name, defaulting to
// sRGBA for an empty name.
func ByName(name string) (Interpolator, error) {
	switch name {
	case "", "srgba", "srgb", "rgb":
		return SrgbaInterpolator{}, nil
	case "hsla", "hsl":
		return HslaInterpolator{}, nil
	case "laba", "lab":
		return LabaInterpolator{}, nil
	}
	return nil, fmt.Errorf("unknown color interpolation space %q", name)
}

// GradientStop pairs a normalized offset with a color, the shape GPU
// gradient ramps consume.
type GradientStop struct {
	Offset float32
	Color  Srgba
}

// GradientStops spreads the control colors evenly over [0,1]. A single
// color produces one stop at offset 0.
func GradientStops(colors []Srgba) []GradientStop {
	if len(colors) == 0 {
		return nil
	}
	stops := make([]GradientStop, len(colors))
	if len(colors) == 1 {
		stops[0] = GradientStop{Offset: 0, Color: colors[0]}
		return stops
	}
	for i, c := range colors {
		stops[i] = GradientStop{
			Offset: float32(i) / float32(len(colors)-1),
			Color:  c,
		}
	}
	return stops
}

func lerp(a, b, t float32) float32 { return a + (b-a)*t }

// lerpHue interpolates hue degrees along the shorter arc.
func lerpHue(a, b, t float32) float32 {
	d := float32(math.Mod(float64(b-a), 360))
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	h := float32(math.Mod(float64(a+d*t), 360))
	if h < 0 {
		h += 360
	}
	return h
}
