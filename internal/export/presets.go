/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gochart/internal/scene"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb    PresetName = "web"
	PresetPrint  PresetName = "print"
	PresetVector PresetName = "vector"
)

// BatchOptions controls batch export across multiple formats.
//
// Path semantics:
//   - Files are written as <OutDir>/<name>.<format>; OutDir is created when
//     missing.
//   - Formats empty means the preset defaults.
type BatchOptions struct {
	Preset      PresetName
	Formats     []string // allowed: png, svg, pdf; empty means preset defaults
	DPIOverride int      // when > 0 overrides the preset DPI for raster output
	OutDir      string
}

// BatchExport renders the chart once per requested format.
func BatchExport(g *scene.Graph, name string, opt BatchOptions) error {
	if g == nil {
		return fmt.Errorf("scene graph is nil")
	}
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	for i := range formats {
		formats[i] = strings.ToLower(strings.TrimSpace(formats[i]))
	}

	outDir := opt.OutDir
	if outDir == "" {
		outDir = string(opt.Preset)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}

	dpi := presetDPI(opt.Preset)
	if opt.DPIOverride > 0 {
		dpi = opt.DPIOverride
	}

	for _, f := range formats {
		switch f {
		case "png", "svg", "pdf":
			out := filepath.Join(outDir, name+"."+f)
			if err := Render(g, f, out, Options{DPI: dpi}); err != nil {
				return fmt.Errorf("%s export: %w", f, err)
			}
		default:
			return fmt.Errorf("unknown format: %s", f)
		}
	}
	return nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"png", "svg"}
	case PresetPrint:
		return []string{"pdf", "png"}
	case PresetVector:
		return []string{"svg", "pdf"}
	default:
		return []string{"png"}
	}
}

func presetDPI(p PresetName) int {
	switch p {
	case PresetPrint:
		return 300
	default:
		return 96
	}
}
