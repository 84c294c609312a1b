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
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"gochart/internal/colorspace"
	"gochart/internal/geom"
	"gochart/internal/scene"
)

// RenderPNG rasterizes the scene graph and writes it to path.
func RenderPNG(g *scene.Graph, path string, opt Options) error {
	img := RasterizeImage(g, opt)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create png: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close png: %w", err)
	}
	return nil
}

// RasterizeImage renders the scene graph into an RGBA image sized by DPI.
func RasterizeImage(g *scene.Graph, opt Options) *image.RGBA {
	scale := opt.scaleFactor()
	w := int(math.Round(float64(g.Width * scale)))
	h := int(math.Round(float64(g.Height * scale)))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(toNRGBA(opt.background())), image.Point{}, draw.Src)

	dl := flatten(g)
	for _, s := range dl.shapes {
		if s.fill.A > 0 {
			rasterizeRings(img, fillRings(s.geometry), scale, s.fill)
		}
		if s.stroke.A > 0 && s.strokeWidth > 0 {
			rasterizeRings(img, strokeRings(s.geometry, s.strokeWidth), scale, s.stroke)
		}
	}
	for _, t := range dl.texts {
		drawText(img, t, scale)
	}
	return img
}

func toNRGBA(c colorspace.Srgba) color.NRGBA {
	return color.NRGBA{
		R: channelByte(c.R),
		G: channelByte(c.G),
		B: channelByte(c.B),
		A: channelByte(c.A),
	}
}

func channelByte(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// rasterizeRings fills closed rings with anti-aliasing under the non-zero
// winding rule.
func rasterizeRings(img *image.RGBA, rings [][]geom.Pt, scale float32, c colorspace.Srgba) {
	drawn := false
	r := vector.NewRasterizer(img.Bounds().Dx(), img.Bounds().Dy())
	r.DrawOp = draw.Over
	for _, ring := range rings {
		if len(ring) < 3 {
			continue
		}
		r.MoveTo(ring[0].X*scale, ring[0].Y*scale)
		for _, p := range ring[1:] {
			r.LineTo(p.X*scale, p.Y*scale)
		}
		r.ClosePath()
		drawn = true
	}
	if !drawn {
		return
	}
	r.Draw(img, img.Bounds(), image.NewUniform(toNRGBA(c)), image.Point{})
}

// strokeRings expands a stroke into filled quads, one per segment. Joins
// and caps are left square.
func strokeRings(g geom.Geometry, width float32) [][]geom.Pt {
	half := width / 2
	var rings [][]geom.Pt
	for _, path := range strokePaths(g) {
		for i := 0; i+1 < len(path); i++ {
			a, b := path[i], path[i+1]
			dx, dy := b.X-a.X, b.Y-a.Y
			length := float32(math.Hypot(float64(dx), float64(dy)))
			if length == 0 {
				continue
			}
			nx, ny := -dy/length*half, dx/length*half
			rings = append(rings, []geom.Pt{
				{X: a.X + nx, Y: a.Y + ny},
				{X: b.X + nx, Y: b.Y + ny},
				{X: b.X - nx, Y: b.Y - ny},
				{X: a.X - nx, Y: a.Y - ny},
			})
		}
	}
	return rings
}

// drawText renders a label with the built-in bitmap face. The face has a
// fixed glyph size, so font_size and angle only affect vector formats.
func drawText(img *image.RGBA, t textOp, scale float32) {
	if t.text == "" || t.color.A == 0 {
		return
	}
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(toNRGBA(t.color)),
		Face: face,
	}
	w := d.MeasureString(t.text)
	x := fixed.I(int(math.Round(float64(t.x * scale))))
	switch t.align {
	case scene.AlignCenter:
		x -= w / 2
	case scene.AlignRight:
		x -= w
	}
	y := int(math.Round(float64(t.y * scale)))
	switch t.baseline {
	case scene.BaselineTop:
		y += face.Ascent
	case scene.BaselineMiddle:
		y += face.Ascent - face.Height/2
	case scene.BaselineBottom:
		y -= face.Height - face.Ascent
	}
	d.Dot = fixed.Point26_6{X: x, Y: fixed.I(y)}
	d.DrawString(t.text)
}
