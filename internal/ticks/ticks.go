/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package ticks computes human-friendly tick positions and step increments
// for numeric axes. Steps are powers of ten times 1, 2, 5 or 10, chosen by
// comparing the raw step against sqrt(50), sqrt(10) and sqrt(2) thresholds.
package ticks

import "math"

const (
	e10 = 7.071067811865476  // sqrt(50)
	e5  = 3.162277660168379  // sqrt(10)
	e2  = 1.4142135623730951 // sqrt(2)
)

// Ticks returns approximately count nice values covering [start, stop].
// A descending input produces a descending sequence. count <= 0 or NaN
// yields no ticks; start == stop yields the single value start.
func Ticks(start, stop, count float32) []float32 {
	if count <= 0 || math.IsNaN(float64(count)) {
		return nil
	}
	if start == stop {
		return []float32{start}
	}

	reverse := stop < start
	var i1, i2, inc float32
	if reverse {
		i1, i2, inc = tickSpec(stop, start, count)
	} else {
		i1, i2, inc = tickSpec(start, stop, count)
	}
	if !(i2 >= i1) {
		return nil
	}

	n := int(i2 - i1 + 1)
	out := make([]float32, n)
	if reverse {
		if inc < 0 {
			for i := 0; i < n; i++ {
				out[i] = (i2 - float32(i)) / -inc
			}
		} else {
			for i := 0; i < n; i++ {
				out[i] = (i2 - float32(i)) * inc
			}
		}
	} else {
		if inc < 0 {
			for i := 0; i < n; i++ {
				out[i] = (i1 + float32(i)) / -inc
			}
		} else {
			for i := 0; i < n; i++ {
				out[i] = (i1 + float32(i)) * inc
			}
		}
	}
	return out
}

// tickSpec finds the first and last tick indices and the increment for an
// ascending interval. A negative increment encodes a fractional step 1/-inc.
// When the indices cross for a fractional count in [0.5, 2) the count is
// doubled once and the search retried.
func tickSpec(start, stop, count float32) (float32, float32, float32) {
	step := (stop - start) / maxf(count, 0)
	power := floorf(log10f(step))
	errRatio := step / pow10f(power)

	var factor float32 = 1
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}

	var i1, i2, inc float32
	if power < 0 {
		inc = pow10f(-power) / factor
		i1 = roundf(start * inc)
		i2 = roundf(stop * inc)
		if i1/inc < start {
			i1++
		}
		if i2/inc > stop {
			i2--
		}
		inc = -inc
	} else {
		inc = pow10f(power) * factor
		i1 = roundf(start / inc)
		i2 = roundf(stop / inc)
		if i1*inc < start {
			i1++
		}
		if i2*inc > stop {
			i2--
		}
	}

	if i2 < i1 && 0.5 <= count && count < 2 {
		return tickSpec(start, stop, count*2)
	}
	return i1, i2, inc
}

// TickIncrement returns the step between ticks for the given interval and
// count. It returns NaN when count does not resolve to a positive step and
// negative infinity when start equals stop.
func TickIncrement(start, stop, count float32) float32 {
	if !(count > 0) {
		return float32(math.NaN())
	}
	if start == stop {
		return float32(math.Inf(-1))
	}

	step := (stop - start) / count
	if step == 0 {
		// count was infinite
		return float32(math.NaN())
	}

	power := floorf(log10f(step))
	errRatio := step / pow10f(power)
	var factor float32 = 1
	switch {
	case errRatio >= e10:
		factor = 10
	case errRatio >= e5:
		factor = 5
	case errRatio >= e2:
		factor = 2
	}
	return pow10f(power) * factor
}

// NiceInterval expands the interval outward so both ends land on tick
// boundaries for the given count. The input order is preserved. The loop is
// capped at ten refinement rounds; it normally converges in two.
func NiceInterval(start, stop, count float32) (float32, float32) {
	if start == stop || math.IsNaN(float64(start)) || math.IsNaN(float64(stop)) {
		return start, stop
	}

	lo, hi := start, stop
	swapped := start > stop
	if swapped {
		lo, hi = stop, start
	}

	var prestep float32
	for i := 0; i < 10; i++ {
		step := TickIncrement(lo, hi, count)
		if step == prestep {
			break
		} else if step > 0 {
			lo = floorf(lo/step) * step
			hi = ceilf(hi/step) * step
		} else if step < 0 {
			lo = ceilf(lo*step) / step
			hi = floorf(hi*step) / step
		} else {
			break
		}
		prestep = step
	}

	if swapped {
		return hi, lo
	}
	return lo, hi
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func floorf(v float32) float32 { return float32(math.Floor(float64(v))) }
func ceilf(v float32) float32  { return float32(math.Ceil(float64(v))) }
func roundf(v float32) float32 { return float32(math.Round(float64(v))) }
func log10f(v float32) float32 { return float32(math.Log10(float64(v))) }
func pow10f(p float32) float32 { return float32(math.Pow(10, float64(p))) }
