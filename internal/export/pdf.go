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
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"gochart/internal/colorspace"
	"gochart/internal/scene"
)

// RenderPDF exports the scene graph as a single-page vector PDF at path.
// Canvas units map 1:1 onto points; built-in Helvetica keeps text vector
// without embedding.
func RenderPDF(g *scene.Graph, path string, opt Options) error {
	w := float64(g.Width)
	h := float64(g.Height)
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: w, Ht: h},
		OrientationStr: "",
	})
	pdf.SetTitle("Chart", false)
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: w, Ht: h})

	bg := opt.background()
	setFillColor(pdf, bg)
	pdf.Rect(0, 0, w, h, "F")

	dl := flatten(g)
	for _, s := range dl.shapes {
		drawPDFShape(pdf, s)
	}
	for _, t := range dl.texts {
		drawPDFText(pdf, t)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawPDFShape(pdf *gofpdf.Fpdf, s shape) {
	doFill := s.fill.A > 0
	doStroke := s.stroke.A > 0 && s.strokeWidth > 0
	if !doFill && !doStroke {
		return
	}
	if doFill {
		setFillColor(pdf, s.fill)
		pdf.SetAlpha(float64(s.fill.A), "Normal")
	}
	if doStroke {
		setDrawColor(pdf, s.stroke)
		pdf.SetLineWidth(float64(s.strokeWidth))
	}

	style := "D"
	switch {
	case doFill && doStroke:
		style = "B"
	case doFill:
		style = "F"
	}

	rings := fillRings(s.geometry)
	if rings != nil {
		for _, ring := range rings {
			if len(ring) < 3 {
				continue
			}
			pdf.MoveTo(float64(ring[0].X), float64(ring[0].Y))
			for _, p := range ring[1:] {
				pdf.LineTo(float64(p.X), float64(p.Y))
			}
			pdf.ClosePath()
		}
		pdf.DrawPath(style)
	} else if doStroke {
		for _, path := range strokePaths(s.geometry) {
			if len(path) < 2 {
				continue
			}
			pdf.MoveTo(float64(path[0].X), float64(path[0].Y))
			for _, p := range path[1:] {
				pdf.LineTo(float64(p.X), float64(p.Y))
			}
		}
		pdf.DrawPath("D")
	}
	pdf.SetAlpha(1, "Normal")
}

func drawPDFText(pdf *gofpdf.Fpdf, t textOp) {
	if t.text == "" || t.color.A == 0 {
		return
	}
	pdf.SetFont("Helvetica", "", float64(t.size))
	pdf.SetTextColor(int(channelByte(t.color.R)), int(channelByte(t.color.G)), int(channelByte(t.color.B)))

	x := float64(t.x)
	switch t.align {
	case scene.AlignCenter:
		x -= pdf.GetStringWidth(t.text) / 2
	case scene.AlignRight:
		x -= pdf.GetStringWidth(t.text)
	}
	y := float64(t.y)
	size := float64(t.size)
	switch t.baseline {
	case scene.BaselineTop:
		y += 0.8 * size
	case scene.BaselineMiddle:
		y += 0.3 * size
	case scene.BaselineBottom:
		y -= 0.2 * size
	}

	if t.angle != 0 {
		pdf.TransformBegin()
		pdf.TransformRotate(float64(-t.angle), float64(t.x), float64(t.y))
		pdf.Text(x, y, t.text)
		pdf.TransformEnd()
		return
	}
	pdf.Text(x, y, t.text)
}

func setFillColor(pdf *gofpdf.Fpdf, c colorspace.Srgba) {
	pdf.SetFillColor(int(channelByte(c.R)), int(channelByte(c.G)), int(channelByte(c.B)))
}

func setDrawColor(pdf *gofpdf.Fpdf, c colorspace.Srgba) {
	pdf.SetDrawColor(int(channelByte(c.R)), int(channelByte(c.G)), int(channelByte(c.B)))
}
