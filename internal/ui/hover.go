/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package ui is the desktop chart viewer: it renders a chart document to an
// image and hit-tests the scene graph under the pointer.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"gochart/internal/index"
	"gochart/internal/scene"
)

// hoverText formats the status line for a pointer position in model
// coordinates. A nil hit reports only the position.
func hoverText(x, y float32, hit *index.GeometryInstance, g *scene.Graph) string {
	pos := fmt.Sprintf("(%.1f, %.1f)", x, y)
	if hit == nil {
		return pos
	}
	name := markNameAt(g, hit.MarkPath)
	loc := pathString(hit.MarkPath)
	if name != "" {
		loc = name + " " + loc
	}
	if hit.InstanceIndex == index.NoInstance {
		return fmt.Sprintf("%s  %s", pos, loc)
	}
	return fmt.Sprintf("%s  %s #%d", pos, loc, hit.InstanceIndex)
}

func pathString(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return "[" + strings.Join(parts, "/") + "]"
}

// markNameAt walks the group tree along path and returns the mark's name,
// or "" when the path does not resolve.
func markNameAt(g *scene.Graph, path []int) string {
	if g == nil || len(path) == 0 {
		return ""
	}
	group := &g.Root
	for i, idx := range path {
		if idx < 0 || idx >= len(group.Marks) {
			return ""
		}
		m := group.Marks[idx]
		if i == len(path)-1 {
			return m.MarkName()
		}
		gm, ok := m.(*scene.GroupMark)
		if !ok {
			return ""
		}
		group = &gm.Group
	}
	return ""
}
