/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"strings"
	"testing"

	"gochart/internal/index"
	"gochart/internal/scene"
	"gochart/internal/value"
)

func hoverGraph() *scene.Graph {
	return &scene.Graph{
		Width:  100,
		Height: 100,
		Root: scene.Group{
			Name: "root",
			Marks: []scene.Mark{
				&scene.GroupMark{Group: scene.Group{
					Name: "panel",
					Marks: []scene.Mark{
						&scene.RectMark{
							Name: "bars",
							Len:  1,
							X:    value.Scalar(float32(0)),
							Y:    value.Scalar(float32(0)),
							X2:   value.Scalar(float32(10)),
							Y2:   value.Scalar(float32(10)),
						},
					},
				}},
			},
		},
	}
}

func TestHoverTextNoHit(t *testing.T) {
	got := hoverText(3.2, 7.5, nil, hoverGraph())
	if got != "(3.2, 7.5)" {
		t.Fatalf("hover text = %q", got)
	}
}

func TestHoverTextNamedInstance(t *testing.T) {
	hit := &index.GeometryInstance{MarkPath: []int{0, 0}, InstanceIndex: 3}
	got := hoverText(5, 5, hit, hoverGraph())
	if !strings.Contains(got, "bars") || !strings.Contains(got, "[0/0]") || !strings.Contains(got, "#3") {
		t.Fatalf("hover text = %q", got)
	}
}

func TestHoverTextWholeMark(t *testing.T) {
	hit := &index.GeometryInstance{MarkPath: []int{0, 0}, InstanceIndex: index.NoInstance}
	got := hoverText(5, 5, hit, hoverGraph())
	if strings.Contains(got, "#") {
		t.Fatalf("whole-mark hit should not carry an instance: %q", got)
	}
}

func TestMarkNameAtBadPath(t *testing.T) {
	if name := markNameAt(hoverGraph(), []int{4}); name != "" {
		t.Fatalf("out-of-range path resolved to %q", name)
	}
	if name := markNameAt(hoverGraph(), []int{0, 0, 0}); name != "" {
		t.Fatalf("path through a leaf mark resolved to %q", name)
	}
}
