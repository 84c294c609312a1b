/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

// Stroke and text styling enums shared by marks, scale outputs and the
// exporters. Parse functions accept the CSS keyword spellings.

type StrokeCap int

const (
	CapButt StrokeCap = iota
	CapRound
	CapSquare
)

func (c StrokeCap) String() string {
	switch c {
	case CapRound:
		return "round"
	case CapSquare:
		return "square"
	default:
		return "butt"
	}
}

func ParseStrokeCap(s string) (StrokeCap, bool) {
	switch s {
	case "butt":
		return CapButt, true
	case "round":
		return CapRound, true
	case "square":
		return CapSquare, true
	}
	return CapButt, false
}

type StrokeJoin int

const (
	JoinMiter StrokeJoin = iota
	JoinRound
	JoinBevel
)

func (j StrokeJoin) String() string {
	switch j {
	case JoinRound:
		return "round"
	case JoinBevel:
		return "bevel"
	default:
		return "miter"
	}
}

func ParseStrokeJoin(s string) (StrokeJoin, bool) {
	switch s {
	case "miter":
		return JoinMiter, true
	case "round":
		return JoinRound, true
	case "bevel":
		return JoinBevel, true
	}
	return JoinMiter, false
}

type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

func (a TextAlign) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

func ParseTextAlign(s string) (TextAlign, bool) {
	switch s {
	case "left":
		return AlignLeft, true
	case "center":
		return AlignCenter, true
	case "right":
		return AlignRight, true
	}
	return AlignLeft, false
}

type TextBaseline int

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

func (b TextBaseline) String() string {
	switch b {
	case BaselineTop:
		return "top"
	case BaselineMiddle:
		return "middle"
	case BaselineBottom:
		return "bottom"
	default:
		return "alphabetic"
	}
}

func ParseTextBaseline(s string) (TextBaseline, bool) {
	switch s {
	case "alphabetic":
		return BaselineAlphabetic, true
	case "top":
		return BaselineTop, true
	case "middle":
		return BaselineMiddle, true
	case "bottom":
		return BaselineBottom, true
	}
	return BaselineAlphabetic, false
}
