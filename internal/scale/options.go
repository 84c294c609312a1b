/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scale

import "math"

// OptionConstraint is the value restriction an option carries.
type OptionConstraint int

const (
	// ConstraintFloat accepts any float value.
	ConstraintFloat OptionConstraint = iota
	// ConstraintNonNegativeFloat accepts finite floats >= 0.
	ConstraintNonNegativeFloat
	// ConstraintUnitInterval accepts finite floats in [0, 1].
	ConstraintUnitInterval
	// ConstraintPositiveFloat accepts finite floats > 0.
	ConstraintPositiveFloat
	// ConstraintBoolean accepts booleans.
	ConstraintBoolean
	// ConstraintBooleanOrNumber accepts booleans and floats.
	ConstraintBooleanOrNumber
	// ConstraintString accepts strings.
	ConstraintString
	// ConstraintLogBase accepts finite positive floats other than 1.
	ConstraintLogBase
	// ConstraintScalar accepts any scalar, used by lookup-scale defaults
	// whose type follows the output path.
	ConstraintScalar
)

// OptionDefinition declares one supported option of a scale kind along
// with the value that disables it.
type OptionDefinition struct {
	Name       string
	Constraint OptionConstraint
	Disabling  Scalar
}

var linearOptions = []OptionDefinition{
	{Name: "clamp", Constraint: ConstraintBoolean, Disabling: Bool(false)},
	{Name: "range_offset", Constraint: ConstraintFloat, Disabling: F32(0)},
	{Name: "round", Constraint: ConstraintBoolean, Disabling: Bool(false)},
	{Name: "nice", Constraint: ConstraintBooleanOrNumber, Disabling: Bool(false)},
	{Name: "zero", Constraint: ConstraintBoolean, Disabling: Bool(false)},
	{Name: "default", Constraint: ConstraintFloat, Disabling: F32(float32(math.NaN()))},
	{Name: "clip_padding_lower", Constraint: ConstraintNonNegativeFloat, Disabling: F32(0)},
	{Name: "clip_padding_upper", Constraint: ConstraintNonNegativeFloat, Disabling: F32(0)},
}

var continuousBaseOptions = []OptionDefinition{
	{Name: "clamp", Constraint: ConstraintBoolean, Disabling: Bool(false)},
	{Name: "range_offset", Constraint: ConstraintFloat, Disabling: F32(0)},
	{Name: "round", Constraint: ConstraintBoolean, Disabling: Bool(false)},
	{Name: "nice", Constraint: ConstraintBooleanOrNumber, Disabling: Bool(false)},
	{Name: "default", Constraint: ConstraintFloat, Disabling: F32(float32(math.NaN()))},
}

var logOptions = append([]OptionDefinition{
	{Name: "base", Constraint: ConstraintLogBase, Disabling: F32(10)},
}, continuousBaseOptions...)

var powOptions = append([]OptionDefinition{
	{Name: "exponent", Constraint: ConstraintFloat, Disabling: F32(1)},
}, continuousBaseOptions...)

var symlogOptions = append([]OptionDefinition{
	{Name: "constant", Constraint: ConstraintPositiveFloat, Disabling: F32(1)},
}, continuousBaseOptions...)

var bandOptions = []OptionDefinition{
	{Name: "align", Constraint: ConstraintUnitInterval, Disabling: F32(0.5)},
	{Name: "band", Constraint: ConstraintUnitInterval, Disabling: F32(0)},
	{Name: "padding_inner", Constraint: ConstraintUnitInterval, Disabling: F32(0)},
	{Name: "padding_outer", Constraint: ConstraintNonNegativeFloat, Disabling: F32(0)},
	{Name: "round", Constraint: ConstraintBoolean, Disabling: Bool(false)},
	{Name: "range_offset", Constraint: ConstraintFloat, Disabling: F32(0)},
}

var pointOptions = []OptionDefinition{
	{Name: "align", Constraint: ConstraintUnitInterval, Disabling: F32(0.5)},
	{Name: "padding", Constraint: ConstraintNonNegativeFloat, Disabling: F32(0)},
	{Name: "round", Constraint: ConstraintBoolean, Disabling: Bool(false)},
	{Name: "range_offset", Constraint: ConstraintFloat, Disabling: F32(0)},
}

var lookupOptions = []OptionDefinition{
	{Name: "default", Constraint: ConstraintScalar, Disabling: Null()},
}

// OptionDefinitions returns the option table of a scale kind.
func OptionDefinitions(k Kind) []OptionDefinition {
	switch k {
	case Linear:
		return linearOptions
	case Log:
		return logOptions
	case Pow:
		return powOptions
	case Symlog:
		return symlogOptions
	case Band:
		return bandOptions
	case Point:
		return pointOptions
	default:
		return lookupOptions
	}
}

func validateOptions(k Kind, cfg Config) error {
	defs := OptionDefinitions(k)
	for key, v := range cfg.Options {
		def, ok := findOption(defs, key)
		if !ok {
			return configErrf("%s scale does not support option %q", k, key)
		}
		if err := checkConstraint(key, def.Constraint, v); err != nil {
			return err
		}
	}
	return nil
}

func findOption(defs []OptionDefinition, key string) (OptionDefinition, bool) {
	for _, d := range defs {
		if d.Name == key {
			return d, true
		}
	}
	return OptionDefinition{}, false
}

func checkConstraint(key string, c OptionConstraint, v Scalar) error {
	switch c {
	case ConstraintFloat:
		if _, ok := v.Float(); !ok {
			return configErrf("option %q must be a number, got %s", key, v.Kind())
		}
	case ConstraintNonNegativeFloat:
		f, ok := v.Float()
		if !ok || !isFinite(f) || f < 0 {
			return configErrf("option %q must be a finite number >= 0", key)
		}
	case ConstraintUnitInterval:
		f, ok := v.Float()
		if !ok || !isFinite(f) || f < 0 || f > 1 {
			return configErrf("option %q must be a finite number between 0 and 1", key)
		}
	case ConstraintPositiveFloat:
		f, ok := v.Float()
		if !ok || !isFinite(f) || f <= 0 {
			return configErrf("option %q must be a finite number > 0", key)
		}
	case ConstraintBoolean:
		if _, ok := v.Bool(); !ok {
			return configErrf("option %q must be a boolean, got %s", key, v.Kind())
		}
	case ConstraintBooleanOrNumber:
		_, isB := v.Bool()
		_, isF := v.Float()
		if !isB && !isF {
			return configErrf("option %q must be a boolean or a number, got %s", key, v.Kind())
		}
	case ConstraintString:
		if _, ok := v.Str(); !ok {
			return configErrf("option %q must be a string, got %s", key, v.Kind())
		}
	case ConstraintLogBase:
		f, ok := v.Float()
		if !ok || !isFinite(f) || f <= 0 || f == 1 {
			return configErrf("option %q must be a finite positive number other than 1", key)
		}
	case ConstraintScalar:
		// anything goes
	}
	return nil
}

// NormalizedOptions returns an option map holding exactly the kind's
// supported set: keys the caller set keep their value, the rest carry
// their disabling value. Options foreign to the kind never appear.
func (s *Configured) NormalizedOptions() map[string]Scalar {
	defs := OptionDefinitions(s.Kind)
	out := make(map[string]Scalar, len(defs))
	for _, d := range defs {
		if v, ok := s.Config.Options[d.Name]; ok {
			out[d.Name] = v
		} else {
			out[d.Name] = d.Disabling
		}
	}
	return out
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
