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

// logFn evaluates logarithms and powers in a configurable base.
type logFn struct {
	base   float64
	lnBase float64
}

func newLogFn(base float32) logFn {
	return logFn{base: float64(base), lnBase: math.Log(float64(base))}
}

func (l logFn) log(v float32) float32 {
	return float32(math.Log(float64(v)) / l.lnBase)
}

func (l logFn) pow(v float32) float32 {
	return float32(math.Pow(l.base, float64(v)))
}

// signedLog maps negative values through -log(-v) so mirrored negative
// domains work; zero has no logarithm and becomes NaN.
func (l logFn) signedLog(v float32) float32 {
	switch {
	case v < 0:
		return -l.log(-v)
	case v > 0:
		return l.log(v)
	default:
		return float32(math.NaN())
	}
}

// logNiceDomain expands the domain to integer powers of the base. Mirrored
// negative and reversed domains keep their orientation; a degenerate
// non-zero domain expands to its bracketing powers.
func logNiceDomain(cfg Config, base float32) (float32, float32, error) {
	d0, d1, err := cfg.NumericIntervalDomain()
	if err != nil {
		return 0, 0, err
	}
	if _, ok := cfg.NiceOption(); !ok {
		return d0, d1, nil
	}
	if isNaN(d0) || isNaN(d1) {
		return d0, d1, nil
	}
	if d0 == 0 && d1 == 0 {
		return d0, d1, nil
	}

	l := newLogFn(base)
	if d0 == d1 {
		lv := l.log(abs32(d0))
		return l.pow(floorf(lv)), l.pow(ceilf(lv)), nil
	}

	start, stop := d0, d1
	reverse := false
	if d0 > d1 {
		start, stop = d1, d0
		reverse = true
	}

	if start < 0 && stop < 0 {
		nstart := l.pow(floorf(l.log(-stop)))
		nstop := l.pow(ceilf(l.log(-start)))
		if reverse {
			return -nstart, -nstop, nil
		}
		return -nstop, -nstart, nil
	}

	nstart := l.pow(floorf(l.log(start)))
	nstop := l.pow(ceilf(l.log(stop)))
	if reverse {
		return nstop, nstart, nil
	}
	return nstart, nstop, nil
}

func logScaleNumeric(cfg Config, vs []float32) ([]float32, error) {
	base := cfg.F32Option("base", 10)
	d0, d1, err := logNiceDomain(cfg, base)
	if err != nil {
		return nil, err
	}
	r0, r1, err := cfg.NumericIntervalRange()
	if err != nil {
		return nil, err
	}
	if d0 == d1 || r0 == r1 {
		return fill(len(vs), r0), nil
	}

	l := newLogFn(base)
	ld0 := l.signedLog(d0)
	ld1 := l.signedLog(d1)
	span := ld1 - ld0
	if span == 0 || isNaN(span) {
		return fill(len(vs), r0), nil
	}

	scale := (r1 - r0) / span
	offset := r0 - scale*ld0 + cfg.F32Option("range_offset", 0)
	rmin, rmax := minmax(r0, r1)
	clamp := cfg.BoolOption("clamp", false)
	round := cfg.BoolOption("round", false)

	out := make([]float32, len(vs))
	for i, v := range vs {
		y := scale*l.signedLog(v) + offset
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

func logInvert(cfg Config, vs []float32) ([]float32, error) {
	base := cfg.F32Option("base", 10)
	d0, d1, err := logNiceDomain(cfg, base)
	if err != nil {
		return nil, err
	}
	r0, r1, err := cfg.NumericIntervalRange()
	if err != nil {
		return nil, err
	}
	// Inversion is only defined for strictly positive domains; anything
	// else answers the range start like the other degenerate cases.
	if d0 <= 0 || d1 <= 0 || r0 == r1 {
		return fill(len(vs), r0), nil
	}

	l := newLogFn(base)
	ld0 := l.log(d0)
	ld1 := l.log(d1)
	span := ld1 - ld0
	if span == 0 || isNaN(span) {
		return fill(len(vs), r0), nil
	}

	scale := (r1 - r0) / span
	offset := r0 - scale*ld0 + cfg.F32Option("range_offset", 0)
	clamp := cfg.BoolOption("clamp", false)
	rmin, rmax := minmax(r0, r1)

	out := make([]float32, len(vs))
	for i, v := range vs {
		if clamp {
			v = clampf(v, rmin, rmax)
		}
		out[i] = l.pow((v - offset) / scale)
	}
	return out, nil
}

// logTicks enumerates k*base^e ticks when the base is an integer and the
// log-space span is small enough, falling back to linear ticks (in value
// space when the enumeration is too sparse, in log space otherwise).
func logTicks(cfg Config, count float32) ([]float32, error) {
	base := cfg.F32Option("base", 10)
	d0, d1, err := logNiceDomain(cfg, base)
	if err != nil {
		return nil, err
	}
	if !(d0 > 0 && d1 > 0) {
		return nil, nil
	}

	l := newLogFn(base)
	u, v := d0, d1
	reverse := v < u
	if reverse {
		u, v = v, u
	}
	i := l.log(u)
	j := l.log(v)

	var z []float32
	if base == floorf(base) && j-i < count {
		lo := int(floorf(i))
		hi := int(ceilf(j))
		for exp := lo; exp <= hi; exp++ {
			for k := 1; k < int(base); k++ {
				var t float32
				if exp < 0 {
					t = float32(k) / l.pow(float32(-exp))
				} else {
					t = float32(k) * l.pow(float32(exp))
				}
				if t < u {
					continue
				}
				if t > v {
					break
				}
				z = append(z, t)
			}
		}
		if float32(len(z))*2 < count {
			z = ticks.Ticks(u, v, count)
		}
	} else {
		logTicksRaw := ticks.Ticks(i, j, minf32(count, j-i))
		z = make([]float32, len(logTicksRaw))
		for idx, x := range logTicksRaw {
			z[idx] = l.pow(x)
		}
	}

	if reverse {
		for a, b := 0, len(z)-1; a < b; a, b = a+1, b-1 {
			z[a], z[b] = z[b], z[a]
		}
	}
	return z, nil
}

func floorf(v float32) float32 { return float32(math.Floor(float64(v))) }
func ceilf(v float32) float32  { return float32(math.Ceil(float64(v))) }

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
