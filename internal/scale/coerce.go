/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scale

import (
	"gochart/internal/scene"
	"gochart/internal/value"
)

// Enum output adapters. Each one scales to strings and parses the CSS
// keyword, falling back to the enum's zero value on anything else. The
// string result's variant carries through.

func (s *Configured) ScaleToStrokeCap(values Array) (value.ScalarOrArray[scene.StrokeCap], error) {
	ss, err := s.ScaleToString(values)
	if err != nil {
		return value.ScalarOrArray[scene.StrokeCap]{}, err
	}
	return value.Map(ss, func(v string) scene.StrokeCap {
		c, _ := scene.ParseStrokeCap(v)
		return c
	}), nil
}

func (s *Configured) ScaleToStrokeJoin(values Array) (value.ScalarOrArray[scene.StrokeJoin], error) {
	ss, err := s.ScaleToString(values)
	if err != nil {
		return value.ScalarOrArray[scene.StrokeJoin]{}, err
	}
	return value.Map(ss, func(v string) scene.StrokeJoin {
		j, _ := scene.ParseStrokeJoin(v)
		return j
	}), nil
}

func (s *Configured) ScaleToAlign(values Array) (value.ScalarOrArray[scene.TextAlign], error) {
	ss, err := s.ScaleToString(values)
	if err != nil {
		return value.ScalarOrArray[scene.TextAlign]{}, err
	}
	return value.Map(ss, func(v string) scene.TextAlign {
		a, _ := scene.ParseTextAlign(v)
		return a
	}), nil
}

func (s *Configured) ScaleToBaseline(values Array) (value.ScalarOrArray[scene.TextBaseline], error) {
	ss, err := s.ScaleToString(values)
	if err != nil {
		return value.ScalarOrArray[scene.TextBaseline]{}, err
	}
	return value.Map(ss, func(v string) scene.TextBaseline {
		b, _ := scene.ParseTextBaseline(v)
		return b
	}), nil
}
