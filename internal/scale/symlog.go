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

// symlogTransform is sign(v)*ln(1+|v|/c): logarithmic away from zero but
// linear through it, so domains spanning zero stay well defined.
func symlogTransform(v, constant float32) float32 {
	t := float32(math.Log1p(math.Abs(float64(v)) / float64(constant)))
	if v < 0 {
		return -t
	}
	return t
}

func symlogInvTransform(v, constant float32) float32 {
	t := float32(math.Expm1(math.Abs(float64(v)))) * constant
	if v < 0 {
		return -t
	}
	return t
}

func symlogNiceDomain(cfg Config, constant float32) (float32, float32, error) {
	d0, d1, err := cfg.NumericIntervalDomain()
	if err != nil {
		return 0, 0, err
	}
	count, ok := cfg.NiceOption()
	if !ok {
		return d0, d1, nil
	}
	if d0 == d1 || isNaN(d0) || isNaN(d1) {
		return d0, d1, nil
	}
	t0 := symlogTransform(d0, constant)
	t1 := symlogTransform(d1, constant)
	n0, n1 := ticks.NiceInterval(t0, t1, count)
	return symlogInvTransform(n0, constant), symlogInvTransform(n1, constant), nil
}

func symlogScaleNumeric(cfg Config, vs []float32) ([]float32, error) {
	constant := cfg.F32Option("constant", 1)
	d0, d1, err := symlogNiceDomain(cfg, constant)
	if err != nil {
		return nil, err
	}
	r0, r1, err := cfg.NumericIntervalRange()
	if err != nil {
		return nil, err
	}
	if d0 == d1 || r0 == r1 || isNaN(d0) || isNaN(d1) || isNaN(r0) || isNaN(r1) {
		return fill(len(vs), r0), nil
	}

	t0 := symlogTransform(d0, constant)
	t1 := symlogTransform(d1, constant)
	scale := (r1 - r0) / (t1 - t0)
	offset := r0 - scale*t0 + cfg.F32Option("range_offset", 0)
	rmin, rmax := minmax(r0, r1)
	clamp := cfg.BoolOption("clamp", false)
	round := cfg.BoolOption("round", false)

	out := make([]float32, len(vs))
	for i, v := range vs {
		if isNaN(v) {
			out[i] = v
			continue
		}
		if math.IsInf(float64(v), 0) {
			y := r0
			if v > 0 {
				y = r1
			}
			if round {
				y = roundf(y)
			}
			out[i] = y
			continue
		}
		y := scale*symlogTransform(v, constant) + offset
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

func symlogInvert(cfg Config, vs []float32) ([]float32, error) {
	constant := cfg.F32Option("constant", 1)
	d0, d1, err := symlogNiceDomain(cfg, constant)
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

	t0 := symlogTransform(d0, constant)
	t1 := symlogTransform(d1, constant)
	scale := (t1 - t0) / (r1 - r0)
	offset := t0 - scale*r0
	rangeOffset := cfg.F32Option("range_offset", 0)
	clamp := cfg.BoolOption("clamp", false)
	rmin, rmax := minmax(r0, r1)

	out := make([]float32, len(vs))
	for i, v := range vs {
		if isNaN(v) {
			out[i] = v
			continue
		}
		if math.IsInf(float64(v), 0) {
			if v > 0 {
				out[i] = d1
			} else {
				out[i] = d0
			}
			continue
		}
		if clamp {
			v = clampf(v, rmin, rmax)
		}
		out[i] = symlogInvTransform(scale*(v-rangeOffset)+offset, constant)
	}
	return out, nil
}

func symlogTicks(cfg Config, count float32) ([]float32, error) {
	constant := cfg.F32Option("constant", 1)
	d0, d1, err := symlogNiceDomain(cfg, constant)
	if err != nil {
		return nil, err
	}
	return ticks.Ticks(d0, d1, count), nil
}
