/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package index provides the scene-graph spatial index: a bulk-loaded
// R-tree over per-instance mark geometry, answering hit-test, envelope and
// nearest-neighbor queries for event routing and tooltips.
package index

import (
	"log/slog"

	"gochart/internal/geom"
	applog "gochart/internal/log"
)

// NoInstance marks a GeometryInstance covering a whole mark (lines, areas)
// rather than one data-driven repetition.
const NoInstance = -1

// GeometryInstance is one indexed geometry with its mark identity. Stroke
// is carried as a half width so envelopes and distances account for painted
// extent, not just fill.
type GeometryInstance struct {
	// MarkPath locates the owning mark as group indices from the root.
	MarkPath []int
	// InstanceIndex is the data index within the mark, or NoInstance.
	InstanceIndex int
	// ZIndex orders instances within one mark.
	ZIndex int
	Geometry        geom.Geometry
	HalfStrokeWidth float32

	env       geom.Rect
	envCached bool
}

// Envelope returns the geometry bounds expanded by the half stroke width,
// computed once and cached; the index build primes the cache so queries
// never recompute bounds. A geometry with no computable bounds gets the
// degenerate envelope at the origin, reported once, and the build carries
// on.
func (g *GeometryInstance) Envelope() geom.Rect {
	if g.envCached {
		return g.env
	}
	g.envCached = true
	b, ok := g.Geometry.BoundingRect()
	if !ok {
		applog.WithComponent("index").Warn("geometry without bounding rect",
			slog.Any("markPath", g.MarkPath),
			slog.Int("instance", g.InstanceIndex))
		g.env = geom.Rect{}
		return g.env
	}
	g.env = b.Expand(g.HalfStrokeWidth)
	return g.env
}

// Distance returns the euclidean distance from p to the painted shape:
// geometric distance minus the half stroke width, floored at zero.
func (g *GeometryInstance) Distance(p geom.Pt) float32 {
	d := g.Geometry.DistanceTo(p) - g.HalfStrokeWidth
	if d < 0 {
		return 0
	}
	return d
}

// ContainsPoint reports whether p lies on the painted shape, stroke
// included.
func (g *GeometryInstance) ContainsPoint(p geom.Pt) bool {
	return g.Geometry.DistanceTo(p) <= g.HalfStrokeWidth
}

// comparePaths orders mark paths lexicographically; a later path draws on
// top. A path that is a prefix of another sorts first.
func comparePaths(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}
