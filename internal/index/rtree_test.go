/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package index

import (
	"math"
	"testing"

	"gochart/internal/geom"
)

func circleInst(path []int, inst, z int, cx, cy, r, stroke float32) GeometryInstance {
	return GeometryInstance{
		MarkPath:        path,
		InstanceIndex:   inst,
		ZIndex:          z,
		Geometry:        geom.Circle{C: geom.Pt{X: cx, Y: cy}, R: r},
		HalfStrokeWidth: stroke / 2,
	}
}

func rectInst(path []int, inst, z int, r geom.Rect, stroke float32) GeometryInstance {
	return GeometryInstance{
		MarkPath:        path,
		InstanceIndex:   inst,
		ZIndex:          z,
		Geometry:        r,
		HalfStrokeWidth: stroke / 2,
	}
}

func TestEmptyIndex(t *testing.T) {
	tr := New(nil)
	if tr.Size() != 0 {
		t.Fatalf("Size = %d, want 0", tr.Size())
	}
	if env := tr.Envelope(); env != (geom.Rect{}) {
		t.Fatalf("empty envelope = %+v, want degenerate", env)
	}
	if got := tr.LocateAtPoint(geom.Pt{X: 1, Y: 1}); got != nil {
		t.Fatalf("LocateAtPoint on empty index = %+v", got)
	}
	if got := tr.NearestNeighbor(geom.Pt{}); got != nil {
		t.Fatalf("NearestNeighbor on empty index = %+v", got)
	}
	if got := tr.LocateAllAtPoint(geom.Pt{}); len(got) != 0 {
		t.Fatalf("LocateAllAtPoint on empty index = %v", got)
	}
}

func TestCircleContainmentAndDistance(t *testing.T) {
	// one circle of radius 5 at (10,10), zero stroke
	tr := New([]GeometryInstance{circleInst([]int{0}, 0, 0, 10, 10, 5, 0)})

	if got := tr.LocateAtPoint(geom.Pt{X: 12, Y: 10}); got == nil {
		t.Fatalf("interior point missed")
	}
	if got := tr.LocateAtPoint(geom.Pt{X: 16, Y: 10}); got != nil {
		t.Fatalf("exterior point hit: %+v", got)
	}

	// nearest-neighbor distance equals euclidean-to-center minus radius
	var dist float32
	tr.EachNearest(geom.Pt{X: 18, Y: 10}, func(_ *GeometryInstance, d float32) bool {
		dist = d
		return false
	})
	if math.Abs(float64(dist)-3) > 1e-5 {
		t.Fatalf("nearest distance = %v, want 3", dist)
	}

	// inside the shape the distance floors at zero
	tr.EachNearest(geom.Pt{X: 11, Y: 10}, func(_ *GeometryInstance, d float32) bool {
		dist = d
		return false
	})
	if dist != 0 {
		t.Fatalf("interior distance = %v, want 0", dist)
	}
}

func TestStrokeExpandsEnvelopeAndHit(t *testing.T) {
	// thin rule from (0,5)-(10,5) with stroke width 4: hits within 2 of it
	rule := GeometryInstance{
		MarkPath:        []int{0},
		InstanceIndex:   0,
		Geometry:        geom.Line{{X: 0, Y: 5}, {X: 10, Y: 5}},
		HalfStrokeWidth: 2,
	}
	env := rule.Envelope()
	if env.MinY != 3 || env.MaxY != 7 {
		t.Fatalf("stroke-expanded envelope = %+v", env)
	}
	tr := New([]GeometryInstance{rule})
	if tr.LocateAtPoint(geom.Pt{X: 5, Y: 6.5}) == nil {
		t.Fatalf("point within half stroke missed")
	}
	if tr.LocateAtPoint(geom.Pt{X: 5, Y: 7.5}) != nil {
		t.Fatalf("point beyond half stroke hit")
	}
}

func TestPickTopMarkZIndex(t *testing.T) {
	// same mark path, overlapping circles, differing z-index, both orders
	a := circleInst([]int{0}, 0, 0, 10, 10, 5, 0)
	b := circleInst([]int{0}, 1, 3, 12, 10, 5, 0)
	for _, insts := range [][]GeometryInstance{{a, b}, {b, a}} {
		tr := New(insts)
		got := tr.PickTopMarkAtPoint(geom.Pt{X: 11, Y: 10})
		if got == nil || got.ZIndex != 3 {
			t.Fatalf("top mark = %+v, want z-index 3", got)
		}
	}
}

func TestPickTopMarkPathOrder(t *testing.T) {
	// different mark paths, equal z-index: later path wins either order
	a := circleInst([]int{0, 1}, 0, 0, 10, 10, 5, 0)
	b := circleInst([]int{0, 2}, 0, 0, 12, 10, 5, 0)
	for _, insts := range [][]GeometryInstance{{a, b}, {b, a}} {
		tr := New(insts)
		got := tr.PickTopMarkAtPoint(geom.Pt{X: 11, Y: 10})
		if got == nil || got.MarkPath[1] != 2 {
			t.Fatalf("top mark path = %+v, want [0 2]", got)
		}
	}
	// a nested path sorts after its prefix
	c := circleInst([]int{1}, 0, 9, 10, 10, 5, 0)
	d := circleInst([]int{1, 0}, 0, 0, 10, 10, 5, 0)
	tr := New([]GeometryInstance{c, d})
	got := tr.PickTopMarkAtPoint(geom.Pt{X: 10, Y: 10})
	if got == nil || len(got.MarkPath) != 2 {
		t.Fatalf("top mark path = %+v, want nested [1 0]", got)
	}
}

func TestEnvelopeQueries(t *testing.T) {
	var insts []GeometryInstance
	for i := 0; i < 50; i++ {
		x := float32(i%10) * 10
		y := float32(i/10) * 10
		insts = append(insts, rectInst([]int{0}, i, 0, geom.R(x, y, x+4, y+4), 0))
	}
	tr := New(insts)
	if tr.Size() != 50 {
		t.Fatalf("Size = %d, want 50", tr.Size())
	}

	within := tr.LocateInEnvelope(geom.R(-1, -1, 25, 25))
	// rects fully inside x,y in {0,10,20}x{0,10,20}
	if len(within) != 9 {
		t.Fatalf("LocateInEnvelope = %d entries, want 9", len(within))
	}
	intersecting := tr.LocateInEnvelopeIntersecting(geom.R(-1, -1, 25, 25))
	if len(intersecting) != 9 {
		t.Fatalf("LocateInEnvelopeIntersecting = %d entries, want 9", len(intersecting))
	}
	// a window clipping through rect interiors intersects more than it contains
	clipped := tr.LocateInEnvelopeIntersecting(geom.R(2, 2, 22, 22))
	contained := tr.LocateInEnvelope(geom.R(2, 2, 22, 22))
	if len(clipped) <= len(contained) {
		t.Fatalf("intersecting (%d) should exceed contained (%d)", len(clipped), len(contained))
	}
}

func TestNearestNeighbors(t *testing.T) {
	// two circles equidistant from the probe
	a := circleInst([]int{0}, 0, 0, 0, 0, 1, 0)
	b := circleInst([]int{1}, 0, 0, 10, 0, 1, 0)
	c := circleInst([]int{2}, 0, 0, 100, 0, 1, 0)
	tr := New([]GeometryInstance{a, b, c})
	got := tr.NearestNeighbors(geom.Pt{X: 5, Y: 0})
	if len(got) != 2 {
		t.Fatalf("NearestNeighbors = %d entries, want 2", len(got))
	}
	if nn := tr.NearestNeighbor(geom.Pt{X: 90, Y: 0}); nn == nil || nn.MarkPath[0] != 2 {
		t.Fatalf("NearestNeighbor = %+v, want mark 2", nn)
	}
}

func TestLocateWithinDistance(t *testing.T) {
	a := circleInst([]int{0}, 0, 0, 0, 0, 1, 0)
	b := circleInst([]int{1}, 0, 0, 10, 0, 1, 0)
	tr := New([]GeometryInstance{a, b})
	got := tr.LocateWithinDistance(geom.Pt{X: 0, Y: 0}, 5)
	if len(got) != 1 || got[0].MarkPath[0] != 0 {
		t.Fatalf("LocateWithinDistance = %v", got)
	}
	got = tr.LocateWithinDistance(geom.Pt{X: 0, Y: 0}, 20)
	if len(got) != 2 {
		t.Fatalf("LocateWithinDistance wide = %d entries, want 2", len(got))
	}
}

func TestInsertExtendsEnvelope(t *testing.T) {
	tr := New([]GeometryInstance{circleInst([]int{0}, 0, 0, 0, 0, 1, 0)})
	before := tr.Envelope()
	tr.Insert(circleInst([]int{1}, 0, 0, 100, 100, 1, 0))
	after := tr.Envelope()
	if !after.ContainsRect(before) || after.MaxX < 100 {
		t.Fatalf("envelope not extended: %+v", after)
	}
	if tr.Size() != 2 {
		t.Fatalf("Size = %d, want 2", tr.Size())
	}
	if tr.LocateAtPoint(geom.Pt{X: 100, Y: 100}) == nil {
		t.Fatalf("inserted instance not locatable")
	}
}

func TestBulkLoadManyAndSplits(t *testing.T) {
	// enough entries to force several tree levels, then insert past capacity
	var insts []GeometryInstance
	for i := 0; i < 300; i++ {
		x := float32(i % 20)
		y := float32(i / 20)
		insts = append(insts, circleInst([]int{i}, 0, 0, x*5, y*5, 1, 0))
	}
	tr := New(insts)
	if tr.Size() != 300 {
		t.Fatalf("Size = %d, want 300", tr.Size())
	}
	for i := 0; i < 40; i++ {
		tr.Insert(circleInst([]int{1000 + i}, 0, 0, float32(i), 200, 1, 0))
	}
	if tr.Size() != 340 {
		t.Fatalf("Size after inserts = %d, want 340", tr.Size())
	}
	// every entry is still findable at its center
	found := 0
	tr.Each(func(g *GeometryInstance) bool {
		c := g.Geometry.(geom.Circle)
		if tr.LocateAtPoint(c.C) != nil {
			found++
		}
		return true
	})
	if found != 340 {
		t.Fatalf("findable = %d, want 340", found)
	}
}

func TestEnvelopeCachedAtBuild(t *testing.T) {
	good := circleInst([]int{0}, 0, 0, 10, 10, 5, 0)
	bad := GeometryInstance{MarkPath: []int{1}, InstanceIndex: 0, Geometry: geom.Line{}}
	tr := New([]GeometryInstance{good, bad})

	if tr.Size() != 2 {
		t.Fatalf("Size = %d, want 2", tr.Size())
	}
	// the boundless geometry gets the degenerate envelope and the rest of
	// the index keeps working
	if tr.LocateAtPoint(geom.Pt{X: 10, Y: 10}) == nil {
		t.Fatalf("good instance not locatable next to degenerate geometry")
	}

	var cached, degenerate *GeometryInstance
	tr.Each(func(g *GeometryInstance) bool {
		if g.MarkPath[0] == 0 {
			cached = g
		} else {
			degenerate = g
		}
		return true
	})
	if degenerate.Envelope() != (geom.Rect{}) {
		t.Fatalf("degenerate envelope = %+v, want origin rect", degenerate.Envelope())
	}

	// bounds are fixed at build time; a later geometry swap must not leak
	// into the envelope queries read
	before := cached.Envelope()
	cached.Geometry = geom.Circle{C: geom.Pt{X: 500, Y: 500}, R: 1}
	if got := cached.Envelope(); got != before {
		t.Fatalf("envelope recomputed after build: %+v, want %+v", got, before)
	}
}

func TestGroupOrigins(t *testing.T) {
	tr := New(nil)
	tr.RegisterGroup([]int{}, "root", geom.Pt{})
	tr.RegisterGroup([]int{0, 1}, "legend", geom.Pt{X: 300, Y: 20})
	if p, ok := tr.GroupOrigin([]int{0, 1}); !ok || p.X != 300 {
		t.Fatalf("GroupOrigin = %+v ok=%v", p, ok)
	}
	if p, ok := tr.NamedGroupOrigin("legend"); !ok || p.Y != 20 {
		t.Fatalf("NamedGroupOrigin = %+v ok=%v", p, ok)
	}
	if _, ok := tr.NamedGroupOrigin("missing"); ok {
		t.Fatalf("missing name should not resolve")
	}
}
