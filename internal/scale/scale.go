/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scale evaluates chart scales: continuous numeric mappings
// (linear, log, pow, symlog), discrete band/point layouts, ordinal lookups
// and quantile/threshold partitions. Every evaluation is pure; a Configured
// scale is safe for concurrent use.
package scale

import (
	"math"
	"strconv"

	"gochart/internal/colorspace"
	"gochart/internal/value"
)

// DefaultTickCount is the tick count used when a caller has no preference.
const DefaultTickCount = 10

// Kind is the closed set of scale kinds.
type Kind int

const (
	Linear Kind = iota
	Log
	Pow
	Symlog
	Band
	Point
	Ordinal
	Quantile
	Threshold
)

var kindNames = map[Kind]string{
	Linear:    "linear",
	Log:       "log",
	Pow:       "pow",
	Symlog:    "symlog",
	Band:      "band",
	Point:     "point",
	Ordinal:   "ordinal",
	Quantile:  "quantile",
	Threshold: "threshold",
}

func (k Kind) String() string { return kindNames[k] }

// ParseKind resolves a kind name from a chart document.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if n == name {
			return k, nil
		}
	}
	return 0, lookupErrf("unknown scale kind %q", name)
}

// InferDomainMethod tells datasource consumers how to reduce a data column
// into a domain for a scale kind.
type InferDomainMethod int

const (
	// InferInterval reduces to the [min, max] interval.
	InferInterval InferDomainMethod = iota
	// InferUnique collects distinct values in first-seen order.
	InferUnique
)

// InferDomainMethod reports how domains are derived from data for k:
// continuous kinds take the data interval, discrete kinds the unique values.
func (k Kind) InferDomainMethod() InferDomainMethod {
	switch k {
	case Linear, Log, Pow, Symlog:
		return InferInterval
	default:
		return InferUnique
	}
}

// Configured binds a kind to its config. Build with New so options are
// validated once up front.
type Configured struct {
	Kind   Kind
	Config Config
}

// New validates cfg against the kind's option table and returns the
// configured scale.
func New(kind Kind, cfg Config) (*Configured, error) {
	if err := validateOptions(kind, cfg); err != nil {
		return nil, err
	}
	return &Configured{Kind: kind, Config: cfg}, nil
}

// EvaluatedScale is a named, ready-to-apply scale produced by the chart
// spec decoder.
type EvaluatedScale struct {
	Name  string
	Scale *Configured
}

// ScaleToNumeric maps input values onto the numeric range, returned as a
// broadcast container consumers iterate rather than index directly.
// Continuous kinds require numeric input; band/point map domain values to
// band positions (misses become NaN); ordinal and the partition kinds take
// their numbers from a float range, substituting the default option on a
// miss.
func (s *Configured) ScaleToNumeric(values Array) (value.ScalarOrArray[float32], error) {
	var none value.ScalarOrArray[float32]
	switch s.Kind {
	case Linear, Log, Pow, Symlog:
		vs, err := numericInput(values)
		if err != nil {
			return none, err
		}
		out, err := continuousScaleNumeric(s.Kind, s.Config, vs)
		if err != nil {
			return none, err
		}
		return value.Array(out), nil
	case Band, Point:
		out, err := bandScaleNumeric(s.Kind, s.Config, values)
		if err != nil {
			return none, err
		}
		return value.Array(out), nil
	default:
		indices, err := s.rangeIndices(values)
		if err != nil {
			return none, err
		}
		rng, ok := s.Config.Range.AsFloats()
		if !ok {
			return none, configErrf("%s scale range must be numeric for numeric output, got %s",
				s.Kind, s.Config.Range.Kind())
		}
		def := s.Config.F32Option("default", float32(math.NaN()))
		out := make([]float32, len(indices))
		for i, idx := range indices {
			if idx < 0 {
				out[i] = def
			} else {
				out[i] = rng[idx]
			}
		}
		return value.Array(out), nil
	}
}

// ScaleToString maps input values to strings: lookup kinds read a string
// range (default option on a miss), numeric-output kinds format their
// numeric result. The variant of the numeric result carries through.
func (s *Configured) ScaleToString(values Array) (value.ScalarOrArray[string], error) {
	switch s.Kind {
	case Ordinal, Quantile, Threshold:
		if rng, ok := s.Config.Range.AsStrings(); ok {
			indices, err := s.rangeIndices(values)
			if err != nil {
				return value.ScalarOrArray[string]{}, err
			}
			def := s.Config.StringOption("default", "")
			out := make([]string, len(indices))
			for i, idx := range indices {
				if idx < 0 {
					out[i] = def
				} else {
					out[i] = rng[idx]
				}
			}
			return value.Array(out), nil
		}
	}
	nums, err := s.ScaleToNumeric(values)
	if err != nil {
		return value.ScalarOrArray[string]{}, err
	}
	return value.Map(nums, formatFloat), nil
}

// ScaleToColor maps input values to colors. Continuous kinds normalize
// onto [0, 1] with clamping forced on and hand off to the interpolator;
// lookup kinds take colors straight from the range, with the default
// option (or transparent) on a miss.
func (s *Configured) ScaleToColor(values Array) (value.ScalarOrArray[colorspace.Srgba], error) {
	var none value.ScalarOrArray[colorspace.Srgba]
	switch s.Kind {
	case Linear, Log, Pow, Symlog:
		vs, err := numericInput(values)
		if err != nil {
			return none, err
		}
		out, err := continuousScaleColor(s.Kind, s.Config, vs)
		if err != nil {
			return none, err
		}
		return value.Array(out), nil
	case Ordinal, Quantile, Threshold:
		rng, err := s.Config.ColorRange()
		if err != nil {
			return none, err
		}
		indices, err := s.rangeIndices(values)
		if err != nil {
			return none, err
		}
		def := s.defaultColor()
		out := make([]colorspace.Srgba, len(indices))
		for i, idx := range indices {
			if idx < 0 {
				out[i] = def
			} else {
				out[i] = rng[idx]
			}
		}
		return value.Array(out), nil
	default:
		return none, unsupportedErr(s.Kind, "color output")
	}
}

// defaultColor resolves the default option to a color, falling back to
// transparent.
func (s *Configured) defaultColor() colorspace.Srgba {
	v, ok := s.Config.Options["default"]
	if !ok {
		return colorspace.Srgba{}
	}
	if c, ok := v.Color(); ok {
		return c
	}
	if str, ok := v.Str(); ok {
		if c, err := colorspace.ParseColor(str); err == nil {
			return c
		}
	}
	return colorspace.Srgba{}
}

// rangeIndices resolves input values to range bucket indices, -1 for a
// miss. Ordinal uses exact domain lookup, quantile and threshold their
// partition search.
func (s *Configured) rangeIndices(values Array) ([]int, error) {
	switch s.Kind {
	case Ordinal:
		return ordinalIndices(s.Config, values)
	case Quantile:
		return quantileIndices(s.Config, values)
	case Threshold:
		return thresholdIndices(s.Config, values)
	default:
		return nil, unsupportedErr(s.Kind, "range lookup")
	}
}

// InvertFromNumeric maps range values back onto the domain. Only
// continuous kinds support inversion.
func (s *Configured) InvertFromNumeric(values []float32) ([]float32, error) {
	switch s.Kind {
	case Linear:
		return linearInvert(s.Config, values)
	case Log:
		return logInvert(s.Config, values)
	case Pow:
		return powInvert(s.Config, values)
	case Symlog:
		return symlogInvert(s.Config, values)
	default:
		return nil, unsupportedErr(s.Kind, "inversion")
	}
}

// InvertScalar inverts a single range value.
func (s *Configured) InvertScalar(value float32) (float32, error) {
	out, err := s.InvertFromNumeric([]float32{value})
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

// InvertRangeInterval returns the domain values whose bands intersect the
// range interval [lo, hi]. Only band and point scales support it.
func (s *Configured) InvertRangeInterval(lo, hi float32) (Array, error) {
	switch s.Kind {
	case Band, Point:
		return bandInvertRangeInterval(s.Kind, s.Config, lo, hi)
	default:
		return Array{}, unsupportedErr(s.Kind, "range interval inversion")
	}
}

// Ticks returns representative domain values: nice decimal steps for
// continuous kinds, the boundaries for the partition kinds.
func (s *Configured) Ticks(count float32) ([]float32, error) {
	switch s.Kind {
	case Linear:
		return linearTicks(s.Config, count)
	case Log:
		return logTicks(s.Config, count)
	case Pow:
		return powTicks(s.Config, count)
	case Symlog:
		return symlogTicks(s.Config, count)
	case Threshold:
		bounds, _, err := thresholdBounds(s.Config)
		if err != nil {
			return nil, err
		}
		out := make([]float32, len(bounds))
		copy(out, bounds)
		return out, nil
	case Quantile:
		return quantileThresholds(s.Config)
	default:
		return nil, unsupportedErr(s.Kind, "ticks")
	}
}

// Pan shifts the domain by delta fractions of the domain span; 0.5 pans
// by half a span. Linear only.
func (s *Configured) Pan(delta float32) (*Configured, error) {
	if s.Kind != Linear {
		return nil, unsupportedErr(s.Kind, "pan")
	}
	d0, d1, err := s.Config.NumericIntervalDomain()
	if err != nil {
		return nil, err
	}
	dd := (d1 - d0) * delta
	return &Configured{Kind: s.Kind, Config: s.Config.withDomain(d0-dd, d1-dd)}, nil
}

// Zoom scales the domain by factor around an anchor given as a fraction
// of the domain span. Linear only.
func (s *Configured) Zoom(anchor, factor float32) (*Configured, error) {
	if s.Kind != Linear {
		return nil, unsupportedErr(s.Kind, "zoom")
	}
	d0, d1, err := s.Config.NumericIntervalDomain()
	if err != nil {
		return nil, err
	}
	da := d0 + anchor*(d1-d0)
	return &Configured{
		Kind:   s.Kind,
		Config: s.Config.withDomain(da+(d0-da)*factor, da+(d1-da)*factor),
	}, nil
}

// Adjustment re-expresses values scaled under one linear config in
// another: adjusted = Scale*v + Offset.
type Adjustment struct {
	Scale  float32
	Offset float32
}

// AdjustTo computes the adjustment taking output of this scale to output
// of the target scale. Linear only.
func (s *Configured) AdjustTo(to *Configured) (Adjustment, error) {
	if s.Kind != Linear || to.Kind != Linear {
		return Adjustment{}, unsupportedErr(s.Kind, "adjust")
	}
	fd0, fd1, err := s.Config.NumericIntervalDomain()
	if err != nil {
		return Adjustment{}, err
	}
	fr0, fr1, err := s.Config.NumericIntervalRange()
	if err != nil {
		return Adjustment{}, err
	}
	td0, td1, err := to.Config.NumericIntervalDomain()
	if err != nil {
		return Adjustment{}, err
	}
	tr0, tr1, err := to.Config.NumericIntervalRange()
	if err != nil {
		return Adjustment{}, err
	}
	sf := (fr1 - fr0) / (fd1 - fd0)
	of := fr0 - sf*fd0
	st := (tr1 - tr0) / (td1 - td0)
	ot := tr0 - st*td0
	return Adjustment{Scale: st / sf, Offset: ot - st*of/sf}, nil
}

// ColorRangeAsGradientStops samples the color range at numSegments+1
// evenly spaced fractions, yielding gradient stops for the exporters.
func (s *Configured) ColorRangeAsGradientStops(numSegments int) ([]colorspace.GradientStop, error) {
	if numSegments < 1 {
		return nil, configErrf("gradient stops need at least 1 segment, got %d", numSegments)
	}
	colors, err := s.Config.ColorRange()
	if err != nil {
		return nil, err
	}
	fractions := make([]float32, numSegments+1)
	for i := range fractions {
		fractions[i] = float32(i) / float32(numSegments)
	}
	mixed, err := s.Config.interpolator().Interpolate(colors, fractions)
	if err != nil {
		return nil, err
	}
	stops := make([]colorspace.GradientStop, len(fractions))
	for i, f := range fractions {
		stops[i] = colorspace.GradientStop{Offset: f, Color: mixed[i]}
	}
	return stops, nil
}

func numericInput(values Array) ([]float32, error) {
	vs, ok := values.AsFloats()
	if !ok {
		return nil, configErrf("continuous scales expect numeric input, got %s", values.Kind())
	}
	return vs, nil
}

func continuousScaleNumeric(k Kind, cfg Config, vs []float32) ([]float32, error) {
	switch k {
	case Linear:
		return linearScaleNumeric(cfg, vs)
	case Log:
		return logScaleNumeric(cfg, vs)
	case Pow:
		return powScaleNumeric(cfg, vs)
	default:
		return symlogScaleNumeric(cfg, vs)
	}
}

// continuousScaleColor reuses the numeric path with the range swapped for
// [0, 1] and clamping forced on, then interpolates the color range.
func continuousScaleColor(k Kind, cfg Config, vs []float32) ([]colorspace.Srgba, error) {
	colors, err := cfg.ColorRange()
	if err != nil {
		return nil, err
	}
	numCfg := cfg.withOption("clamp", Bool(true))
	numCfg.Range = Floats([]float32{0, 1})
	normalized, err := continuousScaleNumeric(k, numCfg, vs)
	if err != nil {
		return nil, err
	}
	return cfg.interpolator().Interpolate(colors, normalized)
}

func formatFloat(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}

// InferFloatDomain reduces a numeric column to a domain array per the
// given method; NaN values are skipped for the interval reduction.
func InferFloatDomain(method InferDomainMethod, values []float32) Array {
	if method == InferInterval {
		lo := float32(math.Inf(1))
		hi := float32(math.Inf(-1))
		seen := false
		for _, v := range values {
			if math.IsNaN(float64(v)) {
				continue
			}
			seen = true
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		if !seen {
			return Floats([]float32{0, 0})
		}
		return Floats([]float32{lo, hi})
	}
	out := make([]float32, 0, len(values))
	index := make(map[float32]struct{}, len(values))
	for _, v := range values {
		if _, ok := index[v]; ok {
			continue
		}
		index[v] = struct{}{}
		out = append(out, v)
	}
	return Floats(out)
}

// InferStringDomain collects the distinct values of a string column in
// first-seen order.
func InferStringDomain(values []string) Array {
	out := make([]string, 0, len(values))
	index := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := index[v]; ok {
			continue
		}
		index[v] = struct{}{}
		out = append(out, v)
	}
	return Strings(out)
}
