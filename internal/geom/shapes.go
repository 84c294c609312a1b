/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "math"

// Geometry is a 2D shape that knows its bounds, its true euclidean distance
// to a point, and exact point containment. Containment is by fill: a
// polyline at zero width contains only points lying exactly on it.
type Geometry interface {
	// BoundingRect returns the axis-aligned bounds, or false for an empty
	// geometry.
	BoundingRect() (Rect, bool)
	// DistanceTo returns the euclidean distance from p to the shape, zero
	// when p lies on or inside it.
	DistanceTo(p Pt) float32
	// ContainsPoint reports whether p lies on or inside the shape.
	ContainsPoint(p Pt) bool
	// Transform returns the shape mapped through m.
	Transform(m Affine2D) Geometry
}

// Point is a single location.
type Point struct{ P Pt }

func (g Point) BoundingRect() (Rect, bool) {
	return Rect{MinX: g.P.X, MinY: g.P.Y, MaxX: g.P.X, MaxY: g.P.Y}, true
}

func (g Point) DistanceTo(p Pt) float32 { return dist(g.P, p) }

func (g Point) ContainsPoint(p Pt) bool { return g.P == p }

func (g Point) Transform(m Affine2D) Geometry { return Point{P: m.Apply(g.P)} }

// MultiPoint is a set of locations, e.g. a scatter cluster.
type MultiPoint []Pt

func (g MultiPoint) BoundingRect() (Rect, bool) { return ptsBounds(g) }

func (g MultiPoint) DistanceTo(p Pt) float32 {
	best := float32(math.Inf(1))
	for _, q := range g {
		best = minf(best, dist(q, p))
	}
	return best
}

func (g MultiPoint) ContainsPoint(p Pt) bool {
	for _, q := range g {
		if q == p {
			return true
		}
	}
	return false
}

func (g MultiPoint) Transform(m Affine2D) Geometry { return MultiPoint(applyAll(m, g)) }

// Line is an open polyline.
type Line []Pt

func (g Line) BoundingRect() (Rect, bool) { return ptsBounds(g) }

func (g Line) DistanceTo(p Pt) float32 {
	switch len(g) {
	case 0:
		return float32(math.Inf(1))
	case 1:
		return dist(g[0], p)
	}
	best := float32(math.Inf(1))
	for i := 0; i+1 < len(g); i++ {
		best = minf(best, segDist(p, g[i], g[i+1]))
	}
	return best
}

func (g Line) ContainsPoint(p Pt) bool { return g.DistanceTo(p) == 0 }

func (g Line) Transform(m Affine2D) Geometry { return Line(applyAll(m, g)) }

// MultiLine is a set of open polylines, e.g. a line mark broken at
// undefined points.
type MultiLine []Line

func (g MultiLine) BoundingRect() (Rect, bool) {
	var r Rect
	any := false
	for _, ln := range g {
		if b, ok := ln.BoundingRect(); ok {
			if any {
				r = r.Union(b)
			} else {
				r = b
				any = true
			}
		}
	}
	return r, any
}

func (g MultiLine) DistanceTo(p Pt) float32 {
	best := float32(math.Inf(1))
	for _, ln := range g {
		best = minf(best, ln.DistanceTo(p))
	}
	return best
}

func (g MultiLine) ContainsPoint(p Pt) bool { return g.DistanceTo(p) == 0 }

func (g MultiLine) Transform(m Affine2D) Geometry {
	out := make(MultiLine, len(g))
	for i, ln := range g {
		out[i] = ln.Transform(m).(Line)
	}
	return out
}

// Polygon is a filled ring with optional holes. Rings need not repeat their
// first point; closure is implicit.
type Polygon struct {
	Exterior []Pt
	Holes    [][]Pt
}

func (g Polygon) BoundingRect() (Rect, bool) { return ptsBounds(g.Exterior) }

func (g Polygon) ContainsPoint(p Pt) bool {
	if !pointInRing(p, g.Exterior) {
		return false
	}
	for _, h := range g.Holes {
		if pointInRing(p, h) {
			return false
		}
	}
	return true
}

func (g Polygon) DistanceTo(p Pt) float32 {
	if g.ContainsPoint(p) {
		return 0
	}
	best := ringDist(p, g.Exterior)
	for _, h := range g.Holes {
		best = minf(best, ringDist(p, h))
	}
	return best
}

func (g Polygon) Transform(m Affine2D) Geometry {
	out := Polygon{Exterior: applyAll(m, g.Exterior)}
	if len(g.Holes) > 0 {
		out.Holes = make([][]Pt, len(g.Holes))
		for i, h := range g.Holes {
			out.Holes[i] = applyAll(m, h)
		}
	}
	return out
}

// MultiPolygon is a set of disjoint polygons treated as one shape.
type MultiPolygon []Polygon

func (g MultiPolygon) BoundingRect() (Rect, bool) {
	var r Rect
	any := false
	for _, poly := range g {
		if b, ok := poly.BoundingRect(); ok {
			if any {
				r = r.Union(b)
			} else {
				r = b
				any = true
			}
		}
	}
	return r, any
}

func (g MultiPolygon) ContainsPoint(p Pt) bool {
	for _, poly := range g {
		if poly.ContainsPoint(p) {
			return true
		}
	}
	return false
}

func (g MultiPolygon) DistanceTo(p Pt) float32 {
	best := float32(math.Inf(1))
	for _, poly := range g {
		best = minf(best, poly.DistanceTo(p))
	}
	return best
}

func (g MultiPolygon) Transform(m Affine2D) Geometry {
	out := make(MultiPolygon, len(g))
	for i, poly := range g {
		out[i] = poly.Transform(m).(Polygon)
	}
	return out
}

// Rect implements Geometry as a filled axis-aligned rectangle, the fast
// path for unrounded rect marks.

func (r Rect) BoundingRect() (Rect, bool) { return r, true }

func (r Rect) DistanceTo(p Pt) float32 {
	return float32(math.Sqrt(float64(r.DistanceSq(p))))
}

func (r Rect) ContainsPoint(p Pt) bool { return r.Contains(p) }

// Transform maps the rect through m, falling back to a polygon when the
// transform rotates or shears.
func (r Rect) Transform(m Affine2D) Geometry {
	if m.axisAligned() {
		a := m.Apply(Pt{r.MinX, r.MinY})
		b := m.Apply(Pt{r.MaxX, r.MaxY})
		return R(a.X, a.Y, b.X, b.Y)
	}
	return Polygon{Exterior: applyAll(m, []Pt{
		{r.MinX, r.MinY}, {r.MaxX, r.MinY}, {r.MaxX, r.MaxY}, {r.MinX, r.MaxY},
	})}
}

// Circle is a filled disc, kept exact rather than polygonized so distance
// queries against symbol marks are precise.
type Circle struct {
	C Pt
	R float32
}

func (g Circle) BoundingRect() (Rect, bool) {
	return Rect{MinX: g.C.X - g.R, MinY: g.C.Y - g.R, MaxX: g.C.X + g.R, MaxY: g.C.Y + g.R}, true
}

func (g Circle) DistanceTo(p Pt) float32 {
	return maxf(dist(g.C, p)-g.R, 0)
}

func (g Circle) ContainsPoint(p Pt) bool { return dist(g.C, p) <= g.R }

// Transform keeps the result a circle for similarity transforms and
// polygonizes otherwise.
func (g Circle) Transform(m Affine2D) Geometry {
	sx := float32(math.Hypot(float64(m.A), float64(m.B)))
	sy := float32(math.Hypot(float64(m.C), float64(m.D)))
	if abs32(sx-sy) <= 1e-6*maxf(sx, sy) {
		return Circle{C: m.Apply(g.C), R: g.R * sx}
	}
	const segments = 32
	ring := make([]Pt, segments)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / segments
		ring[i] = m.Apply(Pt{
			X: g.C.X + g.R*float32(math.Cos(a)),
			Y: g.C.Y + g.R*float32(math.Sin(a)),
		})
	}
	return Polygon{Exterior: ring}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func applyAll(m Affine2D, pts []Pt) []Pt {
	out := make([]Pt, len(pts))
	for i, p := range pts {
		out[i] = m.Apply(p)
	}
	return out
}

func ptsBounds(pts []Pt) (Rect, bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	r := Rect{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		r.MinX = minf(r.MinX, p.X)
		r.MinY = minf(r.MinY, p.Y)
		r.MaxX = maxf(r.MaxX, p.X)
		r.MaxY = maxf(r.MaxY, p.Y)
	}
	return r, true
}

func dist(a, b Pt) float32 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return float32(math.Hypot(dx, dy))
}

// segDist returns the distance from p to the segment ab.
func segDist(p, a, b Pt) float32 {
	abx := float64(b.X - a.X)
	aby := float64(b.Y - a.Y)
	apx := float64(p.X - a.X)
	apy := float64(p.Y - a.Y)
	den := abx*abx + aby*aby
	if den == 0 {
		return dist(p, a)
	}
	t := (apx*abx + apy*aby) / den
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	cx := float64(a.X) + t*abx
	cy := float64(a.Y) + t*aby
	return float32(math.Hypot(float64(p.X)-cx, float64(p.Y)-cy))
}

// ringDist returns the distance from p to a closed ring's boundary.
func ringDist(p Pt, ring []Pt) float32 {
	n := len(ring)
	switch n {
	case 0:
		return float32(math.Inf(1))
	case 1:
		return dist(p, ring[0])
	}
	best := float32(math.Inf(1))
	for i := 0; i < n; i++ {
		best = minf(best, segDist(p, ring[i], ring[(i+1)%n]))
	}
	return best
}

// pointInRing is an even-odd crossing test. Boundary points count as inside
// within float tolerance of the crossing rule.
func pointInRing(p Pt, ring []Pt) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}
