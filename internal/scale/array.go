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

// ArrayKind discriminates the element type of an Array.
type ArrayKind int

const (
	ArrayFloats ArrayKind = iota
	ArrayStrings
	ArrayColors
)

func (k ArrayKind) String() string {
	switch k {
	case ArrayStrings:
		return "strings"
	case ArrayColors:
		return "colors"
	default:
		return "floats"
	}
}

// Array is the variant-typed column used for scale domains, ranges and
// inputs. The zero value is an empty float array.
type Array struct {
	kind    ArrayKind
	floats  []float32
	strings []string
	colors  []colorspace.Srgba
}

func Floats(vs []float32) Array { return Array{kind: ArrayFloats, floats: vs} }

func Strings(vs []string) Array { return Array{kind: ArrayStrings, strings: vs} }

func Colors(vs []colorspace.Srgba) Array { return Array{kind: ArrayColors, colors: vs} }

func (a Array) Kind() ArrayKind { return a.kind }

func (a Array) Len() int {
	switch a.kind {
	case ArrayStrings:
		return len(a.strings)
	case ArrayColors:
		return len(a.colors)
	default:
		return len(a.floats)
	}
}

// AsFloats returns the backing float slice when the array holds floats.
func (a Array) AsFloats() ([]float32, bool) {
	if a.kind != ArrayFloats {
		return nil, false
	}
	return a.floats, true
}

func (a Array) AsStrings() ([]string, bool) {
	if a.kind != ArrayStrings {
		return nil, false
	}
	return a.strings, true
}

func (a Array) AsColors() ([]colorspace.Srgba, bool) {
	if a.kind != ArrayColors {
		return nil, false
	}
	return a.colors, true
}

// empty returns a zero-length array of the same kind, used by interval
// inversion misses.
func (a Array) empty() Array { return Array{kind: a.kind} }

// take returns the elements at the given indices, preserving kind.
func (a Array) take(indices []int) Array {
	switch a.kind {
	case ArrayStrings:
		out := make([]string, len(indices))
		for i, idx := range indices {
			out[i] = a.strings[idx]
		}
		return Strings(out)
	case ArrayColors:
		out := make([]colorspace.Srgba, len(indices))
		for i, idx := range indices {
			out[i] = a.colors[idx]
		}
		return Colors(out)
	default:
		out := make([]float32, len(indices))
		for i, idx := range indices {
			out[i] = a.floats[idx]
		}
		return Floats(out)
	}
}

// ScalarKind discriminates the value type of a Scalar option.
type ScalarKind int

const (
	ScalarNull ScalarKind = iota
	ScalarFloat
	ScalarBool
	ScalarString
	ScalarColor
)

func (k ScalarKind) String() string {
	switch k {
	case ScalarFloat:
		return "float"
	case ScalarBool:
		return "boolean"
	case ScalarString:
		return "string"
	case ScalarColor:
		return "color"
	default:
		return "null"
	}
}

// Scalar is a variant-typed option value. The zero value is null.
type Scalar struct {
	kind ScalarKind
	f    float32
	b    bool
	s    string
	c    colorspace.Srgba
}

func Null() Scalar { return Scalar{} }

func F32(v float32) Scalar { return Scalar{kind: ScalarFloat, f: v} }

func Bool(v bool) Scalar { return Scalar{kind: ScalarBool, b: v} }

func Str(v string) Scalar { return Scalar{kind: ScalarString, s: v} }

func Color(c colorspace.Srgba) Scalar { return Scalar{kind: ScalarColor, c: c} }

func (s Scalar) Kind() ScalarKind { return s.kind }

func (s Scalar) IsNull() bool { return s.kind == ScalarNull }

func (s Scalar) Float() (float32, bool) {
	if s.kind != ScalarFloat {
		return 0, false
	}
	return s.f, true
}

func (s Scalar) Bool() (bool, bool) {
	if s.kind != ScalarBool {
		return false, false
	}
	return s.b, true
}

func (s Scalar) Str() (string, bool) {
	if s.kind != ScalarString {
		return "", false
	}
	return s.s, true
}

func (s Scalar) Color() (colorspace.Srgba, bool) {
	if s.kind != ScalarColor {
		return colorspace.Srgba{}, false
	}
	return s.c, true
}
