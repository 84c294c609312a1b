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

	"gochart/internal/ticks"
)

// linearNormalizeDomain applies the domain adjustments in their fixed
// order: clip padding first, then zero extension, then nice rounding.
// Degenerate or NaN domains pass through untouched.
func linearNormalizeDomain(cfg Config) (float32, float32, error) {
	d0, d1, err := cfg.NumericIntervalDomain()
	if err != nil {
		return 0, 0, err
	}
	r0, r1, err := cfg.NumericIntervalRange()
	if err != nil {
		return 0, 0, err
	}
	if d0 == d1 || isNaN(d0) || isNaN(d1) {
		return d0, d1, nil
	}

	padLo := cfg.F32Option("clip_padding_lower", 0)
	padHi := cfg.F32Option("clip_padding_upper", 0)
	if (padLo > 0 || padHi > 0) && r0 != r1 {
		// padding is in range units (pixels); convert to domain units
		rangeSpan := abs32(r1 - r0)
		domainPerPixel := (d1 - d0) / rangeSpan
		d0 -= padLo * domainPerPixel
		d1 += padHi * domainPerPixel
	}

	if cfg.BoolOption("zero", false) {
		if d0 > 0 && d1 > 0 {
			d0 = 0
		} else if d0 < 0 && d1 < 0 {
			d1 = 0
		}
	}

	if count, ok := cfg.NiceOption(); ok {
		d0, d1 = ticks.NiceInterval(d0, d1, count)
	}
	return d0, d1, nil
}

func linearScaleNumeric(cfg Config, vs []float32) ([]float32, error) {
	d0, d1, err := linearNormalizeDomain(cfg)
	if err != nil {
		return nil, err
	}
	r0, r1, err := cfg.NumericIntervalRange()
	if err != nil {
		return nil, err
	}
	if d0 == d1 || isNaN(d0) || isNaN(d1) || isNaN(r0) || isNaN(r1) {
		return fill(len(vs), r0), nil
	}

	scale := (r1 - r0) / (d1 - d0)
	offset := r0 - scale*d0 + cfg.F32Option("range_offset", 0)
	rmin, rmax := minmax(r0, r1)
	clamp := cfg.BoolOption("clamp", false)
	round := cfg.BoolOption("round", false)

	out := make([]float32, len(vs))
	for i, v := range vs {
		y := scale*v + offset
		if clamp {
			y = clampf(y, rmin, rmax)
		}
		if round {
			y = roundf(y)
		}
		out[i] = y
	}
	return out, nil
}

func linearInvert(cfg Config, vs []float32) ([]float32, error) {
	d0, d1, err := linearNormalizeDomain(cfg)
	if err != nil {
		return nil, err
	}
	r0, r1, err := cfg.NumericIntervalRange()
	if err != nil {
		return nil, err
	}
	if d0 == d1 || r0 == r1 || isNaN(d0) || isNaN(d1) || isNaN(r0) || isNaN(r1) {
		return fill(len(vs), d0), nil
	}

	scale := (d1 - d0) / (r1 - r0)
	offset := d0 - scale*r0
	rangeOffset := cfg.F32Option("range_offset", 0)
	clamp := cfg.BoolOption("clamp", false)
	rmin, rmax := minmax(r0, r1)

	out := make([]float32, len(vs))
	for i, v := range vs {
		v -= rangeOffset
		if clamp {
			v = clampf(v, rmin, rmax)
		}
		out[i] = scale*v + offset
	}
	return out, nil
}

func linearTicks(cfg Config, count float32) ([]float32, error) {
	d0, d1, err := linearNormalizeDomain(cfg)
	if err != nil {
		return nil, err
	}
	return ticks.Ticks(d0, d1, count), nil
}

// clampf restricts v to [lo, hi]; NaN passes through so missing data
// never collapses onto a range end.
func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minmax(a, b float32) (float32, float32) {
	if a <= b {
		return a, b
	}
	return b, a
}

func fill(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func isNaN(v float32) bool { return math.IsNaN(float64(v)) }

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func roundf(v float32) float32 { return float32(math.Round(float64(v))) }
