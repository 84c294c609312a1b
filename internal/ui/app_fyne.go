//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"gochart/internal/chartspec"
	"gochart/internal/export"
	"gochart/internal/geom"
	"gochart/internal/index"
	applog "gochart/internal/log"
	"gochart/internal/scene"
)

// Run opens a window showing the chart at path rendered to an image.
// Pointer movement hit-tests the scene index and reports the topmost mark
// in the status bar.
func Run(path string) error {
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("ui")

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read chart: %w", err)
	}
	doc, err := chartspec.Parse(data)
	if err != nil {
		return fmt.Errorf("parse chart: %w", err)
	}
	g := doc.Graph
	l.Info("chart loaded", "path", path, "width", g.Width, "height", g.Height)

	// Render at 2x so the view stays crisp on high-DPI displays.
	img := export.RasterizeImage(g, export.Options{DPI: 192})
	idx := scene.BuildIndex(g)

	fyneApp := app.NewWithID("gochart")
	w := fyneApp.NewWindow("GoChart — " + filepath.Base(path))

	status := widget.NewLabel("Ready")
	view := newChartView(img, g, idx, status)
	w.SetContent(container.NewBorder(nil, status, nil, nil, view))
	w.Resize(fyne.NewSize(g.Width+16, g.Height+64))
	w.ShowAndRun()
	return nil
}

// chartView shows the rasterized chart and reports the mark under the
// pointer via the status label.
type chartView struct {
	widget.BaseWidget
	img    *canvas.Image
	graph  *scene.Graph
	index  *index.SceneGraphRTree
	status *widget.Label
}

var _ desktop.Hoverable = (*chartView)(nil)

func newChartView(img image.Image, g *scene.Graph, idx *index.SceneGraphRTree, status *widget.Label) *chartView {
	ci := canvas.NewImageFromImage(img)
	ci.FillMode = canvas.ImageFillStretch
	v := &chartView{img: ci, graph: g, index: idx, status: status}
	v.ExtendBaseWidget(v)
	return v
}

func (v *chartView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.img)
}

func (v *chartView) MinSize() fyne.Size {
	return fyne.NewSize(v.graph.Width, v.graph.Height)
}

func (v *chartView) MouseIn(ev *desktop.MouseEvent) { v.MouseMoved(ev) }

func (v *chartView) MouseOut() { v.status.SetText("Ready") }

// MouseMoved maps widget coordinates back into model coordinates and asks
// the index for the topmost mark.
func (v *chartView) MouseMoved(ev *desktop.MouseEvent) {
	sz := v.Size()
	if sz.Width <= 0 || sz.Height <= 0 {
		return
	}
	p := geom.Pt{
		X: ev.Position.X * v.graph.Width / sz.Width,
		Y: ev.Position.Y * v.graph.Height / sz.Height,
	}
	hit := v.index.PickTopMarkAtPoint(p)
	v.status.SetText(hoverText(p.X, p.Y, hit, v.graph))
}
