/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

// Basic 2D geometry and transforms for resolution-independent charts.
// Float values use float32 for compactness and to align with GPU-facing
// mark data.

import "math"

// Pt is a 2D point.
type Pt struct{ X, Y float32 }

// Rect is an axis-aligned rectangle defined by its min and max corners.
// The zero value is the degenerate rect at the origin.
type Rect struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

func R(minX, minY, maxX, maxY float32) Rect {
	if maxX < minX {
		minX, maxX = maxX, minX
	}
	if maxY < minY {
		minY, maxY = maxY, minY
	}
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func (r Rect) W() float32 { return r.MaxX - r.MinX }
func (r Rect) H() float32 { return r.MaxY - r.MinY }

func (r Rect) Center() Pt {
	return Pt{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

func (r Rect) Contains(p Pt) bool {
	return p.X >= r.MinX && p.Y >= r.MinY && p.X <= r.MaxX && p.Y <= r.MaxY
}

// ContainsRect reports whether o lies entirely within r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.MinX >= r.MinX && o.MinY >= r.MinY && o.MaxX <= r.MaxX && o.MaxY <= r.MaxY
}

func (r Rect) Intersects(o Rect) bool {
	return o.MinX <= r.MaxX && o.MaxX >= r.MinX && o.MinY <= r.MaxY && o.MaxY >= r.MinY
}

// Union returns the minimal rect containing both.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		MinX: minf(r.MinX, o.MinX),
		MinY: minf(r.MinY, o.MinY),
		MaxX: maxf(r.MaxX, o.MaxX),
		MaxY: maxf(r.MaxY, o.MaxY),
	}
}

// Expand grows the rect by d on all sides (negative shrinks).
func (r Rect) Expand(d float32) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Area returns the rect area, useful as an STR packing metric.
func (r Rect) Area() float32 { return r.W() * r.H() }

// DistanceSq returns the squared distance from p to the rect, zero inside.
func (r Rect) DistanceSq(p Pt) float32 {
	dx := maxf(maxf(r.MinX-p.X, 0), p.X-r.MaxX)
	dy := maxf(maxf(r.MinY-p.Y, 0), p.Y-r.MaxY)
	return dx*dx + dy*dy
}

// Affine2D represents a 2D affine transform as matrix:
// | a c e |
// | b d f |
// | 0 0 1 |
// stored as [a b c d e f].
type Affine2D struct{ A, B, C, D, E, F float32 }

var Identity = Affine2D{A: 1, D: 1}

func (m Affine2D) Mul(n Affine2D) Affine2D {
	return Affine2D{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Affine2D) Apply(p Pt) Pt {
	return Pt{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

func Translate(tx, ty float32) Affine2D { return Affine2D{A: 1, D: 1, E: tx, F: ty} }
func Scale(sx, sy float32) Affine2D     { return Affine2D{A: sx, D: sy} }
func Rotate(rad float32) Affine2D {
	c := float32(math.Cos(float64(rad)))
	s := float32(math.Sin(float64(rad)))
	return Affine2D{A: c, B: s, C: -s, D: c}
}

// axisAligned reports whether the transform has no rotation or shear
// component, i.e. rects map to rects.
func (m Affine2D) axisAligned() bool { return m.B == 0 && m.C == 0 }

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
