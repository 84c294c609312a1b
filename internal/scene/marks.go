/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"math"
	"unicode/utf8"

	"gochart/internal/colorspace"
	"gochart/internal/geom"
	"gochart/internal/index"
	"gochart/internal/value"
)

// Instanced marks iterate their channels in draw order: position z in the
// iteration is the z-index, while Indices (when set) permutes which data
// instance occupies that position.

// RectMark renders one axis-aligned rectangle per instance, optionally with
// rounded corners.
type RectMark struct {
	Name         string
	Len          int
	X, Y         value.ScalarOrArray[float32]
	X2, Y2       value.ScalarOrArray[float32]
	CornerRadius value.ScalarOrArray[float32]
	StrokeWidth  value.ScalarOrArray[float32]
	Fill         value.ScalarOrArray[colorspace.Srgba]
	Stroke       value.ScalarOrArray[colorspace.Srgba]
	Indices      []int
}

func (m *RectMark) MarkName() string { return m.Name }

func (m *RectMark) GeometryIter(markPath []int, origin geom.Pt, yield func(index.GeometryInstance) bool) bool {
	rounded := !value.EqualsScalar(m.CornerRadius, float32(0))
	for z := 0; z < m.Len; z++ {
		id := z
		if m.Indices != nil {
			id = m.Indices[z]
		}
		x := m.X.Value(id) + origin.X
		y := m.Y.Value(id) + origin.Y
		x2 := m.X2.Value(id) + origin.X
		y2 := m.Y2.Value(id) + origin.Y
		r := geom.R(x, y, x2, y2)

		var g geom.Geometry = r
		if rounded {
			if cr := m.CornerRadius.Value(id); cr > 0 {
				g = roundedRect(r, cr)
			}
		}
		gi := index.GeometryInstance{
			MarkPath:        markPath,
			InstanceIndex:   id,
			ZIndex:          z,
			Geometry:        g,
			HalfStrokeWidth: m.StrokeWidth.Value(id) / 2,
		}
		if !yield(gi) {
			return false
		}
	}
	return true
}

// roundedRect polygonizes a rect with circular corners, radius clamped to
// half the shorter side.
func roundedRect(r geom.Rect, radius float32) geom.Polygon {
	if half := minf32(r.W(), r.H()) / 2; radius > half {
		radius = half
	}
	const segs = 8
	// corner centers in clockwise order starting top-left, with the
	// quarter-arc start angle for each
	corners := [4]struct {
		c     geom.Pt
		start float64
	}{
		{geom.Pt{X: r.MinX + radius, Y: r.MinY + radius}, math.Pi},
		{geom.Pt{X: r.MaxX - radius, Y: r.MinY + radius}, 1.5 * math.Pi},
		{geom.Pt{X: r.MaxX - radius, Y: r.MaxY - radius}, 0},
		{geom.Pt{X: r.MinX + radius, Y: r.MaxY - radius}, 0.5 * math.Pi},
	}
	ring := make([]geom.Pt, 0, 4*(segs+1))
	for _, corner := range corners {
		for i := 0; i <= segs; i++ {
			a := corner.start + float64(i)/segs*(math.Pi/2)
			ring = append(ring, geom.Pt{
				X: corner.c.X + radius*float32(math.Cos(a)),
				Y: corner.c.Y + radius*float32(math.Sin(a)),
			})
		}
	}
	return geom.Polygon{Exterior: ring}
}

// SymbolShape selects a unit symbol outline; instances scale it by the
// square root of their size so size reads as area.
type SymbolShape int

const (
	SymbolCircle SymbolShape = iota
	SymbolSquare
	SymbolTriangle
)

func (s SymbolShape) unitGeometry() geom.Geometry {
	switch s {
	case SymbolSquare:
		return geom.R(-0.5, -0.5, 0.5, 0.5)
	case SymbolTriangle:
		// equilateral, unit area, centroid at origin, apex up (-y)
		side := float32(math.Sqrt(4 / math.Sqrt(3)))
		h := side * float32(math.Sqrt(3)) / 2
		return geom.Polygon{Exterior: []geom.Pt{
			{X: 0, Y: -2 * h / 3},
			{X: side / 2, Y: h / 3},
			{X: -side / 2, Y: h / 3},
		}}
	default:
		// unit-area disc
		return geom.Circle{R: float32(1 / math.Sqrt(math.Pi))}
	}
}

// SymbolMark renders one shape per instance at (x, y), scaled by
// sqrt(size), rotated by angle degrees.
type SymbolMark struct {
	Name        string
	Len         int
	X, Y        value.ScalarOrArray[float32]
	Size        value.ScalarOrArray[float32] // area in square pixels
	Angle       value.ScalarOrArray[float32] // degrees, clockwise
	Shape       value.ScalarOrArray[int]     // index into Shapes
	Shapes      []SymbolShape
	StrokeWidth float32
	Fill        value.ScalarOrArray[colorspace.Srgba]
	Stroke      value.ScalarOrArray[colorspace.Srgba]
	Indices     []int
}

func (m *SymbolMark) MarkName() string { return m.Name }

func (m *SymbolMark) GeometryIter(markPath []int, origin geom.Pt, yield func(index.GeometryInstance) bool) bool {
	shapes := m.Shapes
	if len(shapes) == 0 {
		shapes = []SymbolShape{SymbolCircle}
	}
	units := make([]geom.Geometry, len(shapes))
	for i, s := range shapes {
		units[i] = s.unitGeometry()
	}
	half := m.StrokeWidth / 2
	for z := 0; z < m.Len; z++ {
		id := z
		if m.Indices != nil {
			id = m.Indices[z]
		}
		scale := float32(math.Sqrt(float64(m.Size.Value(id))))
		tf := geom.Translate(m.X.Value(id)+origin.X, m.Y.Value(id)+origin.Y)
		if a := m.Angle.Value(id); a != 0 {
			tf = tf.Mul(geom.Rotate(a * math.Pi / 180))
		}
		tf = tf.Mul(geom.Scale(scale, scale))

		gi := index.GeometryInstance{
			MarkPath:        markPath,
			InstanceIndex:   id,
			ZIndex:          z,
			Geometry:        units[m.Shape.Value(id)].Transform(tf),
			HalfStrokeWidth: half,
		}
		if !yield(gi) {
			return false
		}
	}
	return true
}

// RuleMark renders one stroked segment per instance.
type RuleMark struct {
	Name        string
	Len         int
	X, Y        value.ScalarOrArray[float32]
	X2, Y2      value.ScalarOrArray[float32]
	StrokeWidth value.ScalarOrArray[float32]
	Stroke      value.ScalarOrArray[colorspace.Srgba]
	StrokeCap   value.ScalarOrArray[StrokeCap]
	Indices     []int
}

func (m *RuleMark) MarkName() string { return m.Name }

func (m *RuleMark) GeometryIter(markPath []int, origin geom.Pt, yield func(index.GeometryInstance) bool) bool {
	for z := 0; z < m.Len; z++ {
		id := z
		if m.Indices != nil {
			id = m.Indices[z]
		}
		gi := index.GeometryInstance{
			MarkPath:      markPath,
			InstanceIndex: id,
			ZIndex:        z,
			Geometry: geom.Line{
				{X: m.X.Value(id) + origin.X, Y: m.Y.Value(id) + origin.Y},
				{X: m.X2.Value(id) + origin.X, Y: m.Y2.Value(id) + origin.Y},
			},
			HalfStrokeWidth: m.StrokeWidth.Value(id) / 2,
		}
		if !yield(gi) {
			return false
		}
	}
	return true
}

// LineMark renders a single polyline over all points, split at undefined
// points. It emits one whole-mark instance.
type LineMark struct {
	Name        string
	Len         int
	X, Y        value.ScalarOrArray[float32]
	Defined     value.ScalarOrArray[bool]
	StrokeWidth float32
	Stroke      colorspace.Srgba
	StrokeCap   StrokeCap
	StrokeJoin  StrokeJoin
}

func (m *LineMark) MarkName() string { return m.Name }

func (m *LineMark) GeometryIter(markPath []int, origin geom.Pt, yield func(index.GeometryInstance) bool) bool {
	gi := index.GeometryInstance{
		MarkPath:        markPath,
		InstanceIndex:   index.NoInstance,
		ZIndex:          0,
		Geometry:        polylines(m.Len, m.X, m.Y, m.Defined, origin),
		HalfStrokeWidth: m.StrokeWidth / 2,
	}
	return yield(gi)
}

// polylines gathers defined runs of points into one geometry: a single Line
// when nothing is undefined, a MultiLine otherwise.
func polylines(n int, xs, ys value.ScalarOrArray[float32], defined value.ScalarOrArray[bool], origin geom.Pt) geom.Geometry {
	// the zero value of Defined is a scalar, meaning no point is undefined
	allDefined := defined.IsScalar()
	var runs geom.MultiLine
	var cur geom.Line
	for i := 0; i < n; i++ {
		if allDefined || defined.Value(i) {
			cur = append(cur, geom.Pt{X: xs.Value(i) + origin.X, Y: ys.Value(i) + origin.Y})
			continue
		}
		if len(cur) > 0 {
			runs = append(runs, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	if len(runs) == 1 {
		return runs[0]
	}
	return runs
}

// AreaOrient selects which pair of channels spans the filled band.
type AreaOrient int

const (
	// AreaVertical fills between (x, y) and (x, y2).
	AreaVertical AreaOrient = iota
	// AreaHorizontal fills between (x, y) and (x2, y).
	AreaHorizontal
)

// AreaMark renders a filled band between two curves as one whole-mark
// polygon instance.
type AreaMark struct {
	Name        string
	Len         int
	Orient      AreaOrient
	X, Y        value.ScalarOrArray[float32]
	X2, Y2      value.ScalarOrArray[float32]
	StrokeWidth float32
	Fill        colorspace.Srgba
	Stroke      colorspace.Srgba
}

func (m *AreaMark) MarkName() string { return m.Name }

func (m *AreaMark) GeometryIter(markPath []int, origin geom.Pt, yield func(index.GeometryInstance) bool) bool {
	ring := make([]geom.Pt, 0, 2*m.Len)
	for i := 0; i < m.Len; i++ {
		ring = append(ring, geom.Pt{X: m.X.Value(i) + origin.X, Y: m.Y.Value(i) + origin.Y})
	}
	for i := m.Len - 1; i >= 0; i-- {
		p := geom.Pt{X: m.X.Value(i) + origin.X, Y: m.Y2.Value(i) + origin.Y}
		if m.Orient == AreaHorizontal {
			p = geom.Pt{X: m.X2.Value(i) + origin.X, Y: m.Y.Value(i) + origin.Y}
		}
		ring = append(ring, p)
	}
	gi := index.GeometryInstance{
		MarkPath:        markPath,
		InstanceIndex:   index.NoInstance,
		ZIndex:          0,
		Geometry:        geom.Polygon{Exterior: ring},
		HalfStrokeWidth: m.StrokeWidth / 2,
	}
	return yield(gi)
}

// PathMark renders arbitrary pre-built geometry per instance, positioned
// relative to the group origin.
type PathMark struct {
	Name        string
	Geometries  []geom.Geometry
	StrokeWidth float32
	Fill        value.ScalarOrArray[colorspace.Srgba]
	Stroke      value.ScalarOrArray[colorspace.Srgba]
	Indices     []int
}

func (m *PathMark) MarkName() string { return m.Name }

func (m *PathMark) GeometryIter(markPath []int, origin geom.Pt, yield func(index.GeometryInstance) bool) bool {
	half := m.StrokeWidth / 2
	tf := geom.Translate(origin.X, origin.Y)
	for z := range m.Geometries {
		id := z
		if m.Indices != nil {
			id = m.Indices[z]
		}
		gi := index.GeometryInstance{
			MarkPath:        markPath,
			InstanceIndex:   id,
			ZIndex:          z,
			Geometry:        m.Geometries[id].Transform(tf),
			HalfStrokeWidth: half,
		}
		if !yield(gi) {
			return false
		}
	}
	return true
}

// TextMark renders one label per instance. Geometry is the approximate
// glyph-box bounds: exact font metrics are a renderer concern, hit testing
// only needs the envelope. Rotation applies around the anchor point.
type TextMark struct {
	Name     string
	Len      int
	Text     value.ScalarOrArray[string]
	X, Y     value.ScalarOrArray[float32]
	FontSize value.ScalarOrArray[float32]
	Angle    value.ScalarOrArray[float32] // degrees
	Align    value.ScalarOrArray[TextAlign]
	Baseline value.ScalarOrArray[TextBaseline]
	Color    value.ScalarOrArray[colorspace.Srgba]
	Indices  []int
}

// Mean glyph advance as a fraction of font size, a serviceable stand-in
// for shaping at hit-test precision.
const textAdvanceRatio = 0.6

func (m *TextMark) MarkName() string { return m.Name }

func (m *TextMark) GeometryIter(markPath []int, origin geom.Pt, yield func(index.GeometryInstance) bool) bool {
	for z := 0; z < m.Len; z++ {
		id := z
		if m.Indices != nil {
			id = m.Indices[z]
		}
		ax := m.X.Value(id) + origin.X
		ay := m.Y.Value(id) + origin.Y
		size := m.FontSize.Value(id)
		w := textAdvanceRatio * size * float32(utf8.RuneCountInString(m.Text.Value(id)))
		h := size * 1.2

		x0 := ax
		switch m.Align.Value(id) {
		case AlignCenter:
			x0 = ax - w/2
		case AlignRight:
			x0 = ax - w
		}
		y0 := ay
		switch m.Baseline.Value(id) {
		case BaselineMiddle:
			y0 = ay - h/2
		case BaselineBottom:
			y0 = ay - h
		case BaselineAlphabetic:
			y0 = ay - 0.8*h
		}

		var g geom.Geometry = geom.R(x0, y0, x0+w, y0+h)
		if a := m.Angle.Value(id); a != 0 {
			rot := geom.Translate(ax, ay).
				Mul(geom.Rotate(a * math.Pi / 180)).
				Mul(geom.Translate(-ax, -ay))
			g = g.Transform(rot)
		}
		gi := index.GeometryInstance{
			MarkPath:      markPath,
			InstanceIndex: id,
			ZIndex:        z,
			Geometry:      g,
		}
		if !yield(gi) {
			return false
		}
	}
	return true
}

func minf32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
