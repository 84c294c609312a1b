/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package scene models the renderable chart as a tree of groups and marks.
// Marks hold their encodings as value.ScalarOrArray channels and know how to
// emit per-instance geometry for spatial indexing and export.
package scene

import (
	"gochart/internal/geom"
	"gochart/internal/index"
)

// Graph is a complete scene: canvas dimensions plus a root group whose
// origin is the canvas origin.
type Graph struct {
	Width  float32
	Height float32
	Root   Group
}

// Group is a container positioning its child marks at a shared origin.
// Origins are relative to the parent group.
type Group struct {
	Name   string
	Origin geom.Pt
	Marks  []Mark
}

// Mark is one renderable layer of a group. GeometryIter yields one
// GeometryInstance per pickable shape, with coordinates already shifted to
// the absolute origin; it returns false if yield stopped the iteration.
type Mark interface {
	MarkName() string
	GeometryIter(markPath []int, origin geom.Pt, yield func(index.GeometryInstance) bool) bool
}

// GroupMark nests a group as a mark of its parent.
type GroupMark struct {
	Group
}

func (m *GroupMark) MarkName() string { return m.Name }

func (m *GroupMark) GeometryIter(markPath []int, origin geom.Pt, yield func(index.GeometryInstance) bool) bool {
	return m.Group.geometryIter(markPath, origin, yield)
}

func (g *Group) geometryIter(markPath []int, origin geom.Pt, yield func(index.GeometryInstance) bool) bool {
	abs := geom.Pt{X: origin.X + g.Origin.X, Y: origin.Y + g.Origin.Y}
	for i, m := range g.Marks {
		child := make([]int, len(markPath)+1)
		copy(child, markPath)
		child[len(markPath)] = i
		if !m.GeometryIter(child, abs, yield) {
			return false
		}
	}
	return true
}

// EachGeometry walks the whole scene emitting absolute-coordinate geometry
// instances in draw order.
func (g *Graph) EachGeometry(yield func(index.GeometryInstance) bool) {
	g.Root.geometryIter(nil, geom.Pt{}, yield)
}

// BuildIndex bulk-loads the spatial index over every geometry instance in
// the scene and registers the absolute origin of each group so picked
// instances can be mapped back to group-local coordinates.
func BuildIndex(g *Graph) *index.SceneGraphRTree {
	var instances []index.GeometryInstance
	g.EachGeometry(func(gi index.GeometryInstance) bool {
		instances = append(instances, gi)
		return true
	})
	tr := index.New(instances)
	registerGroups(tr, &g.Root, nil, geom.Pt{})
	return tr
}

func registerGroups(tr *index.SceneGraphRTree, grp *Group, path []int, parent geom.Pt) {
	abs := geom.Pt{X: parent.X + grp.Origin.X, Y: parent.Y + grp.Origin.Y}
	tr.RegisterGroup(path, grp.Name, abs)
	for i, m := range grp.Marks {
		gm, ok := m.(*GroupMark)
		if !ok {
			continue
		}
		child := make([]int, len(path)+1)
		copy(child, path)
		child[len(path)] = i
		registerGroups(tr, &gm.Group, child, abs)
	}
}

// Bounds merges the envelopes of every instance a mark emits. An empty mark
// gets the degenerate rect at the origin.
func Bounds(m Mark) geom.Rect {
	var env geom.Rect
	first := true
	m.GeometryIter(nil, geom.Pt{}, func(gi index.GeometryInstance) bool {
		e := gi.Envelope()
		if first {
			env = e
			first = false
		} else {
			env = env.Union(e)
		}
		return true
	})
	return env
}
