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

// powTransform is the sign-preserving power transform sign(v)*|v|^exp.
func powTransform(v, exponent float32) float32 {
	av := math.Abs(float64(v))
	t := float32(math.Pow(av, float64(exponent)))
	if v < 0 {
		return -t
	}
	return t
}

func powInvTransform(v, exponent float32) float32 {
	return powTransform(v, 1/exponent)
}

// powNiceDomain nices the domain in transformed space: transform, round to
// nice linear boundaries, transform back.
func powNiceDomain(cfg Config, exponent float32) (float32, float32, error) {
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
	t0 := powTransform(d0, exponent)
	t1 := powTransform(d1, exponent)
	n0, n1 := ticks.NiceInterval(t0, t1, count)
	return powInvTransform(n0, exponent), powInvTransform(n1, exponent), nil
}

func powScaleNumeric(cfg Config, vs []float32) ([]float32, error) {
	exponent := cfg.F32Option("exponent", 1)
	d0, d1, err := powNiceDomain(cfg, exponent)
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

	t0 := powTransform(d0, exponent)
	t1 := powTransform(d1, exponent)
	scale := (r1 - r0) / (t1 - t0)
	offset := r0 - scale*t0 + cfg.F32Option("range_offset", 0)
	rmin, rmax := minmax(r0, r1)
	clamp := cfg.BoolOption("clamp", false)
	round := cfg.BoolOption("round", false)

	out := make([]float32, len(vs))
	for i, v := range vs {
		y := scale*powTransform(v, exponent) + offset
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

func powInvert(cfg Config, vs []float32) ([]float32, error) {
	exponent := cfg.F32Option("exponent", 1)
	d0, d1, err := powNiceDomain(cfg, exponent)
	if err != nil {
		return nil, err
	}
	r0, r1, err := cfg.NumericIntervalRange()
	if err != nil {
		return nil, err
	}
	if d0 == d1 {
		return fill(len(vs), d0), nil
	}

	t0 := powTransform(d0, exponent)
	t1 := powTransform(d1, exponent)
	scale := (r1 - r0) / (t1 - t0)
	offset := r0 - scale*t0
	rangeOffset := cfg.F32Option("range_offset", 0)
	clamp := cfg.BoolOption("clamp", false)
	rmin, rmax := minmax(r0, r1)

	out := make([]float32, len(vs))
	for i, v := range vs {
		if clamp {
			v = clampf(v, rmin, rmax)
		}
		// range_offset comes off after the inverse transform
		out[i] = powInvTransform((v-offset)/scale, exponent) - rangeOffset
	}
	return out, nil
}

func powTicks(cfg Config, count float32) ([]float32, error) {
	exponent := cfg.F32Option("exponent", 1)
	d0, d1, err := powNiceDomain(cfg, exponent)
	if err != nil {
		return nil, err
	}
	return ticks.Ticks(d0, d1, count), nil
}
