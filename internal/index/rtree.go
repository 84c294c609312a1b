/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package index

import (
	"container/heap"
	"math"
	"sort"
	"strconv"
	"strings"

	"gochart/internal/geom"
)

// maxEntries is the R-tree node capacity for both bulk load and inserts.
const maxEntries = 16

type node struct {
	env      geom.Rect
	children []*node
	items    []*GeometryInstance // set only on leaves
	leaf     bool
}

func (n *node) recomputeEnv() {
	if n.leaf {
		if len(n.items) == 0 {
			n.env = geom.Rect{}
			return
		}
		n.env = n.items[0].Envelope()
		for _, it := range n.items[1:] {
			n.env = n.env.Union(it.Envelope())
		}
		return
	}
	if len(n.children) == 0 {
		n.env = geom.Rect{}
		return
	}
	n.env = n.children[0].env
	for _, c := range n.children[1:] {
		n.env = n.env.Union(c.env)
	}
}

// SceneGraphRTree is a read-heavy spatial index over mark geometry, rebuilt
// (or incrementally extended) once per scene-graph update. It additionally
// carries the absolute origin of every group, keyed by path and by name,
// so consumers can translate query results into group-local coordinates.
type SceneGraphRTree struct {
	root    *node
	count   int
	env     geom.Rect
	origins map[string]geom.Pt
	names   map[string]string
}

// New bulk-loads the instances with sort-tile-recursive packing, an
// O(n log n) construction. An empty input yields a working index with a
// degenerate envelope.
func New(instances []GeometryInstance) *SceneGraphRTree {
	t := &SceneGraphRTree{
		origins: make(map[string]geom.Pt),
		names:   make(map[string]string),
	}
	if len(instances) == 0 {
		return t
	}

	items := make([]*GeometryInstance, len(instances))
	t.env = instances[0].Envelope()
	for i := range instances {
		items[i] = &instances[i]
		t.env = t.env.Union(items[i].Envelope())
	}
	t.count = len(items)

	level := strPack(items,
		func(it *GeometryInstance) geom.Rect { return it.Envelope() },
		func(chunk []*GeometryInstance) *node {
			n := &node{items: chunk, leaf: true}
			n.recomputeEnv()
			return n
		})
	for len(level) > 1 {
		level = strPack(level,
			func(c *node) geom.Rect { return c.env },
			func(chunk []*node) *node {
				n := &node{children: chunk}
				n.recomputeEnv()
				return n
			})
	}
	t.root = level[0]
	return t
}

// strPack tiles entries into nodes of at most maxEntries: sort by center x,
// cut into vertical slices, sort each slice by center y, chunk.
func strPack[T any](entries []T, env func(T) geom.Rect, mk func([]T) *node) []*node {
	byCenterX := make([]T, len(entries))
	copy(byCenterX, entries)
	sort.SliceStable(byCenterX, func(i, j int) bool {
		return env(byCenterX[i]).Center().X < env(byCenterX[j]).Center().X
	})

	pages := (len(entries) + maxEntries - 1) / maxEntries
	slices := int(math.Ceil(math.Sqrt(float64(pages))))
	sliceSize := (len(entries) + slices - 1) / slices

	var out []*node
	for start := 0; start < len(byCenterX); start += sliceSize {
		end := start + sliceSize
		if end > len(byCenterX) {
			end = len(byCenterX)
		}
		slice := byCenterX[start:end]
		sort.SliceStable(slice, func(i, j int) bool {
			return env(slice[i]).Center().Y < env(slice[j]).Center().Y
		})
		for s := 0; s < len(slice); s += maxEntries {
			e := s + maxEntries
			if e > len(slice) {
				e = len(slice)
			}
			chunk := make([]T, e-s)
			copy(chunk, slice[s:e])
			out = append(out, mk(chunk))
		}
	}
	return out
}

// RegisterGroup records a group's absolute origin under its path and,
// when named, under its name.
func (t *SceneGraphRTree) RegisterGroup(path []int, name string, origin geom.Pt) {
	key := pathKey(path)
	t.origins[key] = origin
	if name != "" {
		t.names[name] = key
	}
}

// GroupOrigin returns the absolute origin recorded for a group path.
func (t *SceneGraphRTree) GroupOrigin(path []int) (geom.Pt, bool) {
	p, ok := t.origins[pathKey(path)]
	return p, ok
}

// NamedGroupOrigin returns the absolute origin of a named group.
func (t *SceneGraphRTree) NamedGroupOrigin(name string) (geom.Pt, bool) {
	key, ok := t.names[name]
	if !ok {
		return geom.Pt{}, false
	}
	p, ok := t.origins[key]
	return p, ok
}

func pathKey(path []int) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 {
			b.WriteByte('/')
		}
		b.WriteString(strconv.Itoa(p))
	}
	return b.String()
}

// Size returns the number of indexed instances.
func (t *SceneGraphRTree) Size() int { return t.count }

// Envelope returns the merged envelope of all entries, degenerate when the
// index is empty.
func (t *SceneGraphRTree) Envelope() geom.Rect { return t.env }

// Each visits every instance until f returns false.
func (t *SceneGraphRTree) Each(f func(*GeometryInstance) bool) {
	eachNode(t.root, f)
}

func eachNode(n *node, f func(*GeometryInstance) bool) bool {
	if n == nil {
		return true
	}
	if n.leaf {
		for _, it := range n.items {
			if !f(it) {
				return false
			}
		}
		return true
	}
	for _, c := range n.children {
		if !eachNode(c, f) {
			return false
		}
	}
	return true
}

// Insert adds one instance and extends the root envelope. Nodes split along
// their longer axis on overflow.
func (t *SceneGraphRTree) Insert(g GeometryInstance) {
	it := &g
	e := it.Envelope()
	if t.count == 0 {
		t.env = e
	} else {
		t.env = t.env.Union(e)
	}
	t.count++

	if t.root == nil {
		t.root = &node{items: []*GeometryInstance{it}, leaf: true, env: e}
		return
	}
	if split := insertItem(t.root, it, e); split != nil {
		old := t.root
		t.root = &node{children: []*node{old, split}}
		t.root.recomputeEnv()
	}
}

// InsertAll adds instances one at a time; prefer New for full rebuilds.
func (t *SceneGraphRTree) InsertAll(gs []GeometryInstance) {
	for _, g := range gs {
		t.Insert(g)
	}
}

func insertItem(n *node, it *GeometryInstance, e geom.Rect) *node {
	n.env = n.env.Union(e)
	if n.leaf {
		n.items = append(n.items, it)
		if len(n.items) > maxEntries {
			return splitLeaf(n)
		}
		return nil
	}

	best := chooseChild(n.children, e)
	if split := insertItem(best, it, e); split != nil {
		n.children = append(n.children, split)
		if len(n.children) > maxEntries {
			return splitInternal(n)
		}
	}
	return nil
}

// chooseChild picks the child whose envelope grows least, breaking ties by
// smaller area.
func chooseChild(children []*node, e geom.Rect) *node {
	best := children[0]
	bestGrowth := enlargement(best.env, e)
	for _, c := range children[1:] {
		g := enlargement(c.env, e)
		if g < bestGrowth || (g == bestGrowth && c.env.Area() < best.env.Area()) {
			best = c
			bestGrowth = g
		}
	}
	return best
}

func enlargement(have, add geom.Rect) float32 {
	return have.Union(add).Area() - have.Area()
}

func splitLeaf(n *node) *node {
	sortByLongerAxis(len(n.items), n.env, func(i int) geom.Pt {
		return n.items[i].Envelope().Center()
	}, func(i, j int) {
		n.items[i], n.items[j] = n.items[j], n.items[i]
	})
	mid := len(n.items) / 2
	right := &node{items: append([]*GeometryInstance(nil), n.items[mid:]...), leaf: true}
	n.items = n.items[:mid]
	n.recomputeEnv()
	right.recomputeEnv()
	return right
}

func splitInternal(n *node) *node {
	sortByLongerAxis(len(n.children), n.env, func(i int) geom.Pt {
		return n.children[i].env.Center()
	}, func(i, j int) {
		n.children[i], n.children[j] = n.children[j], n.children[i]
	})
	mid := len(n.children) / 2
	right := &node{children: append([]*node(nil), n.children[mid:]...)}
	n.children = n.children[:mid]
	n.recomputeEnv()
	right.recomputeEnv()
	return right
}

func sortByLongerAxis(n int, env geom.Rect, center func(int) geom.Pt, swap func(i, j int)) {
	horizontal := env.W() >= env.H()
	// selection sort over the centers; n is at most maxEntries+1
	for i := 0; i < n; i++ {
		min := i
		for j := i + 1; j < n; j++ {
			ci, cj := center(min), center(j)
			if horizontal {
				if cj.X < ci.X {
					min = j
				}
			} else if cj.Y < ci.Y {
				min = j
			}
		}
		if min != i {
			swap(i, min)
		}
	}
}

// LocateAtPoint returns one instance whose painted shape covers p, or nil.
// When several overlap, which one is unspecified; use PickTopMarkAtPoint
// for draw-order resolution.
func (t *SceneGraphRTree) LocateAtPoint(p geom.Pt) *GeometryInstance {
	var found *GeometryInstance
	locateAll(t.root, p, func(g *GeometryInstance) bool {
		found = g
		return false
	})
	return found
}

// LocateAllAtPoint returns every instance whose painted shape covers p.
func (t *SceneGraphRTree) LocateAllAtPoint(p geom.Pt) []*GeometryInstance {
	var out []*GeometryInstance
	locateAll(t.root, p, func(g *GeometryInstance) bool {
		out = append(out, g)
		return true
	})
	return out
}

func locateAll(n *node, p geom.Pt, f func(*GeometryInstance) bool) bool {
	if n == nil || !n.env.Contains(p) {
		return true
	}
	if n.leaf {
		for _, it := range n.items {
			if it.Envelope().Contains(p) && it.ContainsPoint(p) {
				if !f(it) {
					return false
				}
			}
		}
		return true
	}
	for _, c := range n.children {
		if !locateAll(c, p, f) {
			return false
		}
	}
	return true
}

// PickTopMarkAtPoint resolves the topmost instance covering p. Within one
// mark path the higher z-index wins; across mark paths the
// lexicographically later path wins, matching draw order.
func (t *SceneGraphRTree) PickTopMarkAtPoint(p geom.Pt) *GeometryInstance {
	var cand *GeometryInstance
	locateAll(t.root, p, func(g *GeometryInstance) bool {
		if cand == nil {
			cand = g
			return true
		}
		switch comparePaths(g.MarkPath, cand.MarkPath) {
		case 0:
			if g.ZIndex > cand.ZIndex {
				cand = g
			}
		case 1:
			cand = g
		}
		return true
	})
	return cand
}

// LocateInEnvelope returns instances whose envelope lies entirely inside
// env.
func (t *SceneGraphRTree) LocateInEnvelope(env geom.Rect) []*GeometryInstance {
	var out []*GeometryInstance
	searchEnv(t.root, env, func(g *GeometryInstance) {
		if env.ContainsRect(g.Envelope()) {
			out = append(out, g)
		}
	})
	return out
}

// LocateInEnvelopeIntersecting returns instances whose envelope intersects
// env.
func (t *SceneGraphRTree) LocateInEnvelopeIntersecting(env geom.Rect) []*GeometryInstance {
	var out []*GeometryInstance
	searchEnv(t.root, env, func(g *GeometryInstance) {
		if env.Intersects(g.Envelope()) {
			out = append(out, g)
		}
	})
	return out
}

func searchEnv(n *node, env geom.Rect, f func(*GeometryInstance)) {
	if n == nil || !n.env.Intersects(env) {
		return
	}
	if n.leaf {
		for _, it := range n.items {
			f(it)
		}
		return
	}
	for _, c := range n.children {
		searchEnv(c, env, f)
	}
}

// nnEntry is a heap element for best-first nearest-neighbor traversal.
type nnEntry struct {
	dist float32
	node *node
	item *GeometryInstance
}

type nnHeap []nnEntry

func (h nnHeap) Len() int            { return len(h) }
func (h nnHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h nnHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nnHeap) Push(x interface{}) { *h = append(*h, x.(nnEntry)) }
func (h *nnHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// EachNearest visits instances in order of increasing painted distance to
// p until f returns false. Distance is geometric distance minus half the
// stroke width, floored at zero.
func (t *SceneGraphRTree) EachNearest(p geom.Pt, f func(g *GeometryInstance, dist float32) bool) {
	if t.root == nil {
		return
	}
	h := &nnHeap{{dist: nodeDist(t.root, p), node: t.root}}
	for h.Len() > 0 {
		e := heap.Pop(h).(nnEntry)
		if e.item != nil {
			if !f(e.item, e.dist) {
				return
			}
			continue
		}
		n := e.node
		if n.leaf {
			for _, it := range n.items {
				heap.Push(h, nnEntry{dist: it.Distance(p), item: it})
			}
			continue
		}
		for _, c := range n.children {
			heap.Push(h, nnEntry{dist: nodeDist(c, p), node: c})
		}
	}
}

func nodeDist(n *node, p geom.Pt) float32 {
	return float32(math.Sqrt(float64(n.env.DistanceSq(p))))
}

// NearestNeighbor returns the instance closest to p, or nil for an empty
// index.
func (t *SceneGraphRTree) NearestNeighbor(p geom.Pt) *GeometryInstance {
	var out *GeometryInstance
	t.EachNearest(p, func(g *GeometryInstance, _ float32) bool {
		out = g
		return false
	})
	return out
}

// NearestNeighbors returns every instance sharing the minimal distance to
// p.
func (t *SceneGraphRTree) NearestNeighbors(p geom.Pt) []*GeometryInstance {
	var out []*GeometryInstance
	best := float32(math.Inf(1))
	t.EachNearest(p, func(g *GeometryInstance, d float32) bool {
		if len(out) == 0 {
			best = d
		} else if d > best {
			return false
		}
		out = append(out, g)
		return true
	})
	return out
}

// LocateWithinDistance returns all instances whose painted distance to p is
// at most maxDist, nearest first.
func (t *SceneGraphRTree) LocateWithinDistance(p geom.Pt, maxDist float32) []*GeometryInstance {
	var out []*GeometryInstance
	t.EachNearest(p, func(g *GeometryInstance, d float32) bool {
		if d > maxDist {
			return false
		}
		out = append(out, g)
		return true
	})
	return out
}
