/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scale

import (
	"gochart/internal/colorspace"
)

// Config carries everything a scale evaluation needs: the domain, the
// range, the option map and an optional color interpolation strategy. Read
// accessors fall back to their default on a missing or wrong-typed option;
// the validation pass run by New rejects those hard.
type Config struct {
	Domain  Array
	Range   Array
	Options map[string]Scalar

	// Interpolator drives color output; nil selects sRGBA interpolation.
	Interpolator colorspace.Interpolator
}

func (c Config) F32Option(key string, def float32) float32 {
	if v, ok := c.Options[key]; ok {
		if f, ok := v.Float(); ok {
			return f
		}
	}
	return def
}

func (c Config) BoolOption(key string, def bool) bool {
	if v, ok := c.Options[key]; ok {
		if b, ok := v.Bool(); ok {
			return b
		}
	}
	return def
}

func (c Config) StringOption(key string, def string) string {
	if v, ok := c.Options[key]; ok {
		if s, ok := v.Str(); ok {
			return s
		}
	}
	return def
}

func (c Config) I32Option(key string, def int32) int32 {
	if v, ok := c.Options[key]; ok {
		if f, ok := v.Float(); ok {
			return int32(f)
		}
	}
	return def
}

// NiceOption resolves the boolean-or-numeric nice option to a tick count.
// A numeric value is the count, true means 10, false or unset disables.
func (c Config) NiceOption() (float32, bool) {
	v, ok := c.Options["nice"]
	if !ok {
		return 0, false
	}
	if f, ok := v.Float(); ok {
		return f, true
	}
	if b, ok := v.Bool(); ok && b {
		return DefaultTickCount, true
	}
	return 0, false
}

// NumericIntervalDomain requires the domain to be a two-element float
// interval.
func (c Config) NumericIntervalDomain() (float32, float32, error) {
	return numericInterval(c.Domain, "domain")
}

// NumericIntervalRange requires the range to be a two-element float
// interval.
func (c Config) NumericIntervalRange() (float32, float32, error) {
	return numericInterval(c.Range, "range")
}

func numericInterval(a Array, what string) (float32, float32, error) {
	fs, ok := a.AsFloats()
	if !ok || len(fs) != 2 {
		return 0, 0, configErrf(
			"scale %s must be a two-element numeric interval, got %s of length %d",
			what, a.Kind(), a.Len())
	}
	return fs[0], fs[1], nil
}

// ColorRange coerces the range to colors, parsing CSS color strings when
// the range holds strings.
func (c Config) ColorRange() ([]colorspace.Srgba, error) {
	if cs, ok := c.Range.AsColors(); ok {
		return cs, nil
	}
	if ss, ok := c.Range.AsStrings(); ok {
		out := make([]colorspace.Srgba, len(ss))
		for i, s := range ss {
			col, err := colorspace.ParseColor(s)
			if err != nil {
				return nil, configErrf("scale range color %q: %v", s, err)
			}
			out[i] = col
		}
		return out, nil
	}
	return nil, configErrf("scale range must hold colors or color strings, got %s", c.Range.Kind())
}

func (c Config) interpolator() colorspace.Interpolator {
	if c.Interpolator != nil {
		return c.Interpolator
	}
	return colorspace.SrgbaInterpolator{}
}

// withDomain returns a copy of the config with a replaced numeric domain.
// The option map is shared; configs are treated as immutable after New.
func (c Config) withDomain(d0, d1 float32) Config {
	out := c
	out.Domain = Floats([]float32{d0, d1})
	return out
}

// withOption returns a copy of the config with one option replaced.
func (c Config) withOption(key string, v Scalar) Config {
	out := c
	opts := make(map[string]Scalar, len(c.Options)+1)
	for k, val := range c.Options {
		opts[k] = val
	}
	opts[key] = v
	out.Options = opts
	return out
}
