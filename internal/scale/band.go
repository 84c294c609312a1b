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
	"sort"
)

// pointToBandConfig rewrites a point config as a band config: inner
// padding pinned to 1 so bands collapse to points, the padding option
// remapped to outer padding, band position pinned to 0. Point scales have
// no band implementation of their own.
func pointToBandConfig(cfg Config) Config {
	opts := make(map[string]Scalar, 6)
	opts["padding_inner"] = F32(1)
	opts["band"] = F32(0)
	if v, ok := cfg.Options["padding"]; ok {
		opts["padding_outer"] = v
	}
	for _, key := range []string{"align", "round", "range_offset"} {
		if v, ok := cfg.Options[key]; ok {
			opts[key] = v
		}
	}
	out := cfg
	out.Options = opts
	return out
}

// bandLayout holds the computed band geometry: one position per domain
// value in domain order, plus the band width.
type bandLayout struct {
	positions []float32
	ascending []float32 // positions sorted by range order
	bandwidth float32
	reversed  bool
}

// buildBandLayout computes band positions the vega way: a step is the
// range span divided by the band space n - padding_inner + 2*padding_outer,
// the starting edge is shifted by align, and the optional band fraction
// plus range_offset shift every position.
func buildBandLayout(cfg Config) (bandLayout, error) {
	n := cfg.Domain.Len()
	if n == 0 {
		return bandLayout{}, configErrf("band scale requires a non-empty domain")
	}

	align := cfg.F32Option("align", 0.5)
	band := cfg.F32Option("band", 0)
	paddingInner := cfg.F32Option("padding_inner", 0)
	paddingOuter := cfg.F32Option("padding_outer", 0)
	round := cfg.BoolOption("round", false)
	rangeOffset := cfg.F32Option("range_offset", 0)

	r0, r1, err := cfg.NumericIntervalRange()
	if err != nil {
		return bandLayout{}, err
	}
	if !isFinite(r0) || !isFinite(r1) {
		return bandLayout{}, configErrf("band scale range is (%v, %v) but both ends must be finite", r0, r1)
	}
	if !isFinite(align) || align < 0 || align > 1 {
		return bandLayout{}, configErrf("align is %v but must be between 0 and 1", align)
	}
	if !isFinite(band) || band < 0 || band > 1 {
		return bandLayout{}, configErrf("band is %v but must be between 0 and 1", band)
	}
	if !isFinite(paddingInner) || paddingInner < 0 || paddingInner > 1 {
		return bandLayout{}, configErrf("padding_inner is %v but must be between 0 and 1", paddingInner)
	}
	if !isFinite(paddingOuter) || paddingOuter < 0 {
		return bandLayout{}, configErrf("padding_outer is %v but must be non-negative", paddingOuter)
	}

	reversed := r1 < r0
	start, stop := r0, r1
	if reversed {
		start, stop = r1, r0
	}

	step := (stop - start) / maxf32(1, bandspace(n, paddingInner, paddingOuter))
	if round {
		step = floorf(step)
	}
	start += (stop - start - step*(float32(n)-paddingInner)) * align
	if round {
		start = roundf(start)
	}
	bw := step * (1 - paddingInner)
	if round {
		bw = roundf(bw)
	}

	offset := float32(0)
	if band != 0 || rangeOffset != 0 {
		offset = bw*band + rangeOffset
	}

	ascending := make([]float32, n)
	for i := range ascending {
		ascending[i] = start + step*float32(i) + offset
	}
	positions := ascending
	if reversed {
		positions = make([]float32, n)
		for i := range positions {
			positions[i] = ascending[n-1-i]
		}
	}
	return bandLayout{positions: positions, ascending: ascending, bandwidth: bw, reversed: reversed}, nil
}

// bandspace is the number of steps a band scale needs for count bands.
func bandspace(count int, paddingInner, paddingOuter float32) float32 {
	paddingInner = clampf(paddingInner, 0, 1)
	paddingOuter = maxf32(paddingOuter, 0)
	return float32(count) - paddingInner + paddingOuter*2
}

func bandConfigFor(kind Kind, cfg Config) Config {
	if kind == Point {
		return pointToBandConfig(cfg)
	}
	return cfg
}

func bandScaleNumeric(kind Kind, cfg Config, values Array) ([]float32, error) {
	bcfg := bandConfigFor(kind, cfg)
	layout, err := buildBandLayout(bcfg)
	if err != nil {
		return nil, err
	}
	indices, err := lookupIndices(cfg.Domain, values)
	if err != nil {
		return nil, err
	}
	out := make([]float32, len(indices))
	for i, idx := range indices {
		if idx < 0 {
			out[i] = float32(math.NaN())
		} else {
			out[i] = layout.positions[idx]
		}
	}
	return out, nil
}

// bandInvertRangeInterval returns the domain values whose bands the
// interval [lo, hi] touches, in domain order.
func bandInvertRangeInterval(kind Kind, cfg Config, lo, hi float32) (Array, error) {
	if isNaN(lo) || isNaN(hi) {
		return cfg.Domain.empty(), nil
	}
	if hi < lo {
		lo, hi = hi, lo
	}

	bcfg := bandConfigFor(kind, cfg)
	r0, r1, err := bcfg.NumericIntervalRange()
	if err != nil {
		return Array{}, err
	}
	start, stop := minmax(r0, r1)
	if hi < start || lo > stop {
		return cfg.Domain.empty(), nil
	}

	layout, err := buildBandLayout(bcfg)
	if err != nil {
		return Array{}, err
	}
	n := len(layout.ascending)

	a := sort.Search(n, func(i int) bool { return layout.ascending[i] > lo }) - 1
	if a < 0 {
		a = 0
	}
	b := a
	if lo != hi {
		b = sort.Search(n, func(i int) bool { return layout.ascending[i] > hi }) - 1
		if b < 0 {
			b = 0
		}
	}

	// lo falling in the padding gap after band a means a's band is missed
	if lo-layout.ascending[a] > layout.bandwidth+1e-10 {
		a++
	}

	if layout.reversed {
		a, b = n-1-b, n-1-a
	}
	if a > b {
		return cfg.Domain.empty(), nil
	}

	indices := make([]int, 0, b-a+1)
	for i := a; i <= b; i++ {
		indices = append(indices, i)
	}
	return cfg.Domain.take(indices), nil
}

// Bandwidth returns the width of each band (zero for point scales unless
// rounding says otherwise). Band and point only.
func (s *Configured) Bandwidth() (float32, error) {
	switch s.Kind {
	case Band, Point:
	default:
		return 0, unsupportedErr(s.Kind, "bandwidth")
	}
	layout, err := buildBandLayout(bandConfigFor(s.Kind, s.Config))
	if err != nil {
		return 0, err
	}
	return layout.bandwidth, nil
}

// Step returns the distance between the starts of adjacent bands. Band
// and point only.
func (s *Configured) Step() (float32, error) {
	switch s.Kind {
	case Band, Point:
	default:
		return 0, unsupportedErr(s.Kind, "step")
	}
	cfg := bandConfigFor(s.Kind, s.Config)
	n := cfg.Domain.Len()
	if n == 0 {
		return 0, nil
	}
	r0, r1, err := cfg.NumericIntervalRange()
	if err != nil {
		return 0, err
	}
	start, stop := minmax(r0, r1)
	step := (stop - start) / maxf32(1, bandspace(n, cfg.F32Option("padding_inner", 0), cfg.F32Option("padding_outer", 0)))
	if cfg.BoolOption("round", false) {
		step = floorf(step)
	}
	return step, nil
}

func maxf32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
