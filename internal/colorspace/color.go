/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package colorspace holds the color types used by color scales: non-linear
// sRGB with alpha as the interchange form, plus HSL and CIE Lab working
// spaces for perceptual interpolation. All channels are float32; sRGB
// channels are in [0,1].
package colorspace

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Srgba is a non-linear sRGB color with alpha, the interchange form every
// consumer expects.
type Srgba struct{ R, G, B, A float32 }

// Hsla is hue (degrees, [0,360)), saturation, lightness, alpha.
type Hsla struct{ H, S, L, A float32 }

// Laba is CIE L*a*b* (D65 white) with alpha.
type Laba struct{ L, A, B, Alpha float32 }

// D65 reference white.
const (
	refX = 0.95047
	refY = 1.0
	refZ = 1.08883

	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

func linearToSrgb(c float64) float64 {
	if c <= 0.0031308 {
		return 12.92 * c
	}
	return 1.055*math.Pow(c, 1.0/2.4) - 0.055
}

// ToHsla converts via the standard RGB→HSL formulation.
func (c Srgba) ToHsla() Hsla {
	r, g, b := float64(c.R), float64(c.G), float64(c.B)
	mx := math.Max(r, math.Max(g, b))
	mn := math.Min(r, math.Min(g, b))
	l := (mx + mn) / 2
	var h, s float64
	if mx != mn {
		d := mx - mn
		if l > 0.5 {
			s = d / (2 - mx - mn)
		} else {
			s = d / (mx + mn)
		}
		switch mx {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h *= 60
	}
	return Hsla{H: float32(h), S: float32(s), L: float32(l), A: c.A}
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6.0:
		return p + (q-p)*6*t
	case t < 1.0/2.0:
		return q
	case t < 2.0/3.0:
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

// ToSrgba converts back to sRGB.
func (c Hsla) ToSrgba() Srgba {
	h := math.Mod(float64(c.H), 360)
	if h < 0 {
		h += 360
	}
	h /= 360
	s, l := float64(c.S), float64(c.L)
	if s == 0 {
		return Srgba{R: float32(l), G: float32(l), B: float32(l), A: c.A}
	}
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	return Srgba{
		R: float32(hueToRGB(p, q, h+1.0/3.0)),
		G: float32(hueToRGB(p, q, h)),
		B: float32(hueToRGB(p, q, h-1.0/3.0)),
		A: c.A,
	}
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

// ToLaba converts through linear RGB and XYZ under D65.
func (c Srgba) ToLaba() Laba {
	r := srgbToLinear(float64(c.R))
	g := srgbToLinear(float64(c.G))
	b := srgbToLinear(float64(c.B))

	x := 0.4124564*r + 0.3575761*g + 0.1804375*b
	y := 0.2126729*r + 0.7151522*g + 0.0721750*b
	z := 0.0193339*r + 0.1191920*g + 0.9503041*b

	fx := labF(x / refX)
	fy := labF(y / refY)
	fz := labF(z / refZ)

	return Laba{
		L:     float32(116*fy - 16),
		A:     float32(500 * (fx - fy)),
		B:     float32(200 * (fy - fz)),
		Alpha: c.A,
	}
}

// ToSrgba converts back to sRGB, clamping channels into [0,1].
func (c Laba) ToSrgba() Srgba {
	fy := (float64(c.L) + 16) / 116
	fx := fy + float64(c.A)/500
	fz := fy - float64(c.B)/200

	inv := func(f float64) float64 {
		f3 := f * f * f
		if f3 > labEpsilon {
			return f3
		}
		return (116*f - 16) / labKappa
	}
	var y float64
	if float64(c.L) > labKappa*labEpsilon {
		y = fy * fy * fy
	} else {
		y = float64(c.L) / labKappa
	}

	x := inv(fx) * refX
	y *= refY
	z := inv(fz) * refZ

	r := 3.2404542*x - 1.5371385*y - 0.4985314*z
	g := -0.9692660*x + 1.8760108*y + 0.0415560*z
	b := 0.0556434*x - 0.2040259*y + 1.0572252*z

	clamp01 := func(v float64) float32 {
		return float32(math.Min(1, math.Max(0, v)))
	}
	return Srgba{
		R: clamp01(linearToSrgb(r)),
		G: clamp01(linearToSrgb(g)),
		B: clamp01(linearToSrgb(b)),
		A: c.Alpha,
	}
}

var namedColors = map[string]Srgba{
	"black":       {0, 0, 0, 1},
	"white":       {1, 1, 1, 1},
	"red":         {1, 0, 0, 1},
	"lime":        {0, 1, 0, 1},
	"blue":        {0, 0, 1, 1},
	"green":       {0, 0.5019608, 0, 1},
	"yellow":      {1, 1, 0, 1},
	"cyan":        {0, 1, 1, 1},
	"magenta":     {1, 0, 1, 1},
	"gray":        {0.5019608, 0.5019608, 0.5019608, 1},
	"grey":        {0.5019608, 0.5019608, 0.5019608, 1},
	"orange":      {1, 0.64705884, 0, 1},
	"purple":      {0.5019608, 0, 0.5019608, 1},
	"steelblue":   {0.27450982, 0.50980395, 0.7058824, 1},
	"firebrick":   {0.69803923, 0.13333334, 0.13333334, 1},
	"transparent": {0, 0, 0, 0},
}

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa, rgb(...)/rgba(...) with
// 0-255 channels, and a small set of CSS color names.
func ParseColor(s string) (Srgba, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s[1:])
	}
	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return parseRGBFunc(s)
	}
	return Srgba{}, fmt.Errorf("unrecognized color %q", s)
}

func parseHexColor(hex string) (Srgba, error) {
	channel := func(sub string) (float32, error) {
		v, err := strconv.ParseUint(sub, 16, 16)
		if err != nil {
			return 0, err
		}
		if len(sub) == 1 {
			v = v*16 + v
		}
		return float32(v) / 255, nil
	}
	var parts []string
	switch len(hex) {
	case 3:
		parts = []string{hex[0:1], hex[1:2], hex[2:3]}
	case 6:
		parts = []string{hex[0:2], hex[2:4], hex[4:6]}
	case 8:
		parts = []string{hex[0:2], hex[2:4], hex[4:6], hex[6:8]}
	default:
		return Srgba{}, fmt.Errorf("invalid hex color #%s", hex)
	}
	out := Srgba{A: 1}
	dst := []*float32{&out.R, &out.G, &out.B, &out.A}
	for i, p := range parts {
		v, err := channel(p)
		if err != nil {
			return Srgba{}, fmt.Errorf("invalid hex color #%s", hex)
		}
		*dst[i] = v
	}
	return out, nil
}

func parseRGBFunc(s string) (Srgba, error) {
	open := strings.IndexByte(s, '(')
	closeIdx := strings.IndexByte(s, ')')
	if open < 0 || closeIdx < open {
		return Srgba{}, fmt.Errorf("invalid color %q", s)
	}
	fields := strings.Split(s[open+1:closeIdx], ",")
	if len(fields) != 3 && len(fields) != 4 {
		return Srgba{}, fmt.Errorf("invalid color %q", s)
	}
	out := Srgba{A: 1}
	dst := []*float32{&out.R, &out.G, &out.B}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return Srgba{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		*dst[i] = float32(v / 255)
	}
	if len(fields) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(fields[3]), 64)
		if err != nil {
			return Srgba{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		out.A = float32(a)
	}
	return out, nil
}
