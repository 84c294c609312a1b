/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package export renders a scene graph to PNG, SVG and PDF. All three
// renderers consume the same flattened display list, so a chart looks the
// same across formats up to rasterization.
package export

import (
	"fmt"
	"math"

	"gochart/internal/colorspace"
	"gochart/internal/geom"
	"gochart/internal/index"
	"gochart/internal/scene"
)

// Options controls rendering behavior across formats.
// - DPI: raster density; canvas units are CSS pixels at 96 DPI.
// - Background: canvas fill; zero value means white.
type Options struct {
	DPI        int
	Background colorspace.Srgba
}

func (o Options) scaleFactor() float32 {
	dpi := o.DPI
	if dpi <= 0 {
		dpi = 96
	}
	return float32(dpi) / 96
}

func (o Options) background() colorspace.Srgba {
	if o.Background == (colorspace.Srgba{}) {
		return colorspace.Srgba{R: 1, G: 1, B: 1, A: 1}
	}
	return o.Background
}

// Render dispatches on format ("png", "svg", "pdf") and writes the chart to
// path.
func Render(g *scene.Graph, format, path string, opt Options) error {
	switch format {
	case "png":
		return RenderPNG(g, path, opt)
	case "svg":
		return RenderSVG(g, path, opt)
	case "pdf":
		return RenderPDF(g, path, opt)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// shape is one styled geometry in draw order.
type shape struct {
	geometry    geom.Geometry
	fill        colorspace.Srgba
	stroke      colorspace.Srgba
	strokeWidth float32
}

// textOp is one positioned label.
type textOp struct {
	text     string
	x, y     float32
	size     float32
	angle    float32 // degrees
	align    scene.TextAlign
	baseline scene.TextBaseline
	color    colorspace.Srgba
}

type displayList struct {
	shapes []shape
	texts  []textOp
}

// flatten walks the scene collecting styled geometry in draw order. Text
// marks become text ops rather than their hit-test boxes.
func flatten(g *scene.Graph) displayList {
	var dl displayList
	flattenGroup(&dl, &g.Root, geom.Pt{})
	return dl
}

func flattenGroup(dl *displayList, grp *scene.Group, parent geom.Pt) {
	origin := geom.Pt{X: parent.X + grp.Origin.X, Y: parent.Y + grp.Origin.Y}
	for _, m := range grp.Marks {
		switch mk := m.(type) {
		case *scene.GroupMark:
			flattenGroup(dl, &mk.Group, origin)
		case *scene.RectMark:
			mk.GeometryIter(nil, origin, func(gi index.GeometryInstance) bool {
				dl.shapes = append(dl.shapes, shape{
					geometry:    gi.Geometry,
					fill:        mk.Fill.Value(gi.InstanceIndex),
					stroke:      mk.Stroke.Value(gi.InstanceIndex),
					strokeWidth: mk.StrokeWidth.Value(gi.InstanceIndex),
				})
				return true
			})
		case *scene.SymbolMark:
			mk.GeometryIter(nil, origin, func(gi index.GeometryInstance) bool {
				dl.shapes = append(dl.shapes, shape{
					geometry:    gi.Geometry,
					fill:        mk.Fill.Value(gi.InstanceIndex),
					stroke:      mk.Stroke.Value(gi.InstanceIndex),
					strokeWidth: mk.StrokeWidth,
				})
				return true
			})
		case *scene.RuleMark:
			mk.GeometryIter(nil, origin, func(gi index.GeometryInstance) bool {
				dl.shapes = append(dl.shapes, shape{
					geometry:    gi.Geometry,
					stroke:      mk.Stroke.Value(gi.InstanceIndex),
					strokeWidth: mk.StrokeWidth.Value(gi.InstanceIndex),
				})
				return true
			})
		case *scene.LineMark:
			mk.GeometryIter(nil, origin, func(gi index.GeometryInstance) bool {
				dl.shapes = append(dl.shapes, shape{
					geometry:    gi.Geometry,
					stroke:      mk.Stroke,
					strokeWidth: mk.StrokeWidth,
				})
				return true
			})
		case *scene.AreaMark:
			mk.GeometryIter(nil, origin, func(gi index.GeometryInstance) bool {
				dl.shapes = append(dl.shapes, shape{
					geometry:    gi.Geometry,
					fill:        mk.Fill,
					stroke:      mk.Stroke,
					strokeWidth: mk.StrokeWidth,
				})
				return true
			})
		case *scene.PathMark:
			mk.GeometryIter(nil, origin, func(gi index.GeometryInstance) bool {
				dl.shapes = append(dl.shapes, shape{
					geometry:    gi.Geometry,
					fill:        mk.Fill.Value(gi.InstanceIndex),
					stroke:      mk.Stroke.Value(gi.InstanceIndex),
					strokeWidth: mk.StrokeWidth,
				})
				return true
			})
		case *scene.TextMark:
			for z := 0; z < mk.Len; z++ {
				id := z
				if mk.Indices != nil {
					id = mk.Indices[z]
				}
				dl.texts = append(dl.texts, textOp{
					text:     mk.Text.Value(id),
					x:        mk.X.Value(id) + origin.X,
					y:        mk.Y.Value(id) + origin.Y,
					size:     mk.FontSize.Value(id),
					angle:    mk.Angle.Value(id),
					align:    mk.Align.Value(id),
					baseline: mk.Baseline.Value(id),
					color:    mk.Color.Value(id),
				})
			}
		}
	}
}

// fillRings flattens fillable geometry into closed rings. Hole rings are
// rewound against the exterior so non-zero winding leaves them empty.
func fillRings(g geom.Geometry) [][]geom.Pt {
	switch s := g.(type) {
	case geom.Rect:
		return [][]geom.Pt{{
			{X: s.MinX, Y: s.MinY}, {X: s.MaxX, Y: s.MinY},
			{X: s.MaxX, Y: s.MaxY}, {X: s.MinX, Y: s.MaxY},
		}}
	case geom.Circle:
		return [][]geom.Pt{circleRing(s)}
	case geom.Polygon:
		rings := [][]geom.Pt{s.Exterior}
		ext := signedArea(s.Exterior)
		for _, h := range s.Holes {
			if signedArea(h)*ext > 0 {
				h = reversed(h)
			}
			rings = append(rings, h)
		}
		return rings
	case geom.MultiPolygon:
		var rings [][]geom.Pt
		for _, p := range s {
			rings = append(rings, fillRings(p)...)
		}
		return rings
	default:
		return nil
	}
}

// strokePaths flattens strokeable geometry into polylines; closed outlines
// repeat their first point.
func strokePaths(g geom.Geometry) [][]geom.Pt {
	switch s := g.(type) {
	case geom.Line:
		return [][]geom.Pt{s}
	case geom.MultiLine:
		paths := make([][]geom.Pt, len(s))
		for i, ln := range s {
			paths[i] = ln
		}
		return paths
	default:
		var paths [][]geom.Pt
		for _, ring := range fillRings(g) {
			if len(ring) == 0 {
				continue
			}
			paths = append(paths, append(append([]geom.Pt{}, ring...), ring[0]))
		}
		return paths
	}
}

func circleRing(c geom.Circle) []geom.Pt {
	const segments = 32
	ring := make([]geom.Pt, segments)
	for i := range ring {
		a := 2 * math.Pi * float64(i) / segments
		ring[i] = geom.Pt{
			X: c.C.X + c.R*float32(math.Cos(a)),
			Y: c.C.Y + c.R*float32(math.Sin(a)),
		}
	}
	return ring
}

func signedArea(ring []geom.Pt) float32 {
	var sum float32
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func reversed(pts []geom.Pt) []geom.Pt {
	out := make([]geom.Pt, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
