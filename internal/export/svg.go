/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gochart/internal/colorspace"
	"gochart/internal/scene"
)

// RenderSVG writes the scene graph as an SVG document to path.
func RenderSVG(g *scene.Graph, path string, opt Options) error {
	data, err := SVGBytes(g, opt)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// SVGBytes renders the scene graph to an SVG document. The viewBox carries
// the model coordinates; width/height attributes scale by DPI.
func SVGBytes(g *scene.Graph, opt Options) ([]byte, error) {
	scale := opt.scaleFactor()
	pxW := int(math.Round(float64(g.Width * scale)))
	pxH := int(math.Round(float64(g.Height * scale)))

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %g %g\">\n", pxW, pxH, g.Width, g.Height)
	bg := opt.background()
	wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", g.Width, g.Height, svgColor(bg))

	dl := flatten(g)
	for _, s := range dl.shapes {
		d := svgPathData(s)
		if d == "" {
			continue
		}
		fill := "none"
		attrs := ""
		if s.fill.A > 0 {
			fill = svgColor(s.fill)
			if s.fill.A < 1 {
				attrs += fmt.Sprintf(" fill-opacity=\"%g\"", s.fill.A)
			}
		}
		if s.stroke.A > 0 && s.strokeWidth > 0 {
			attrs += fmt.Sprintf(" stroke=\"%s\" stroke-width=\"%g\"", svgColor(s.stroke), s.strokeWidth)
			if s.stroke.A < 1 {
				attrs += fmt.Sprintf(" stroke-opacity=\"%g\"", s.stroke.A)
			}
		}
		wf("  <path d=\"%s\" fill=\"%s\"%s/>\n", d, fill, attrs)
	}

	for _, t := range dl.texts {
		if t.text == "" || t.color.A == 0 {
			continue
		}
		anchor := "start"
		switch t.align {
		case scene.AlignCenter:
			anchor = "middle"
		case scene.AlignRight:
			anchor = "end"
		}
		baseline := "auto"
		switch t.baseline {
		case scene.BaselineTop:
			baseline = "hanging"
		case scene.BaselineMiddle:
			baseline = "central"
		case scene.BaselineBottom:
			baseline = "text-after-edge"
		}
		transform := ""
		if t.angle != 0 {
			transform = fmt.Sprintf(" transform=\"rotate(%g %g %g)\"", t.angle, t.x, t.y)
		}
		wf("  <text x=\"%g\" y=\"%g\" font-family=\"Helvetica, Arial, sans-serif\" font-size=\"%g\" fill=\"%s\" text-anchor=\"%s\" dominant-baseline=\"%s\"%s>%s</text>\n",
			t.x, t.y, t.size, svgColor(t.color), anchor, baseline, transform, escText(t.text))
	}

	wf("</svg>\n")
	if werr != nil {
		return nil, fmt.Errorf("build svg: %w", werr)
	}
	return buf.Bytes(), nil
}

// svgPathData serializes the shape outline: closed rings for fillable
// geometry, open subpaths for lines.
func svgPathData(s shape) string {
	var buf bytes.Buffer
	rings := fillRings(s.geometry)
	if rings != nil {
		for _, ring := range rings {
			if len(ring) < 3 {
				continue
			}
			fmt.Fprintf(&buf, "M %g %g", ring[0].X, ring[0].Y)
			for _, p := range ring[1:] {
				fmt.Fprintf(&buf, " L %g %g", p.X, p.Y)
			}
			buf.WriteString(" Z ")
		}
		return buf.String()
	}
	for _, path := range strokePaths(s.geometry) {
		if len(path) < 2 {
			continue
		}
		fmt.Fprintf(&buf, "M %g %g", path[0].X, path[0].Y)
		for _, p := range path[1:] {
			fmt.Fprintf(&buf, " L %g %g", p.X, p.Y)
		}
		buf.WriteByte(' ')
	}
	return buf.String()
}

func svgColor(c colorspace.Srgba) string {
	return fmt.Sprintf("#%02x%02x%02x", channelByte(c.R), channelByte(c.G), channelByte(c.B))
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
