/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gochart/internal/catalog"
	"gochart/internal/chartspec"
	"gochart/internal/config"
	"gochart/internal/crash"
	"gochart/internal/datasource"
	"gochart/internal/export"
	applog "gochart/internal/log"
	"gochart/internal/scale"
	"gochart/internal/scene"
	"gochart/internal/telemetry"
	"gochart/internal/ui"
	"gochart/internal/version"
)

func usage() {
	fmt.Println("GoChart — declarative charting")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  gochart version|-v|--version               Show version")
	fmt.Println("  gochart validate <chart.json>               Validate a chart document")
	fmt.Println("  gochart inspect <chart.json>                Print scales, marks and index stats")
	fmt.Println("  gochart render <chart.json> <out>           Render to out (.png/.svg/.pdf)")
	fmt.Println("  gochart export <chart.json> <name> [preset] Batch export (web/print/vector)")
	fmt.Println("  gochart view <chart.json>                   Open viewer (build with -tags fyne)")
	fmt.Println("  gochart data domain <query> <column:kind>   Infer a scale domain from the datasource")
	fmt.Println("  gochart catalog save <name> <chart.json>    Store a chart document")
	fmt.Println("  gochart catalog get <name>                  Print a stored chart document")
	fmt.Println("  gochart catalog list                        List stored charts")
	fmt.Println("  gochart catalog search <term>               Search stored charts")
	fmt.Println("  gochart catalog delete <name>               Delete a stored chart")
	fmt.Println("  gochart catalog render <name> <out>         Render a stored chart")
}

func fail(l *slog.Logger, msg string, err error) {
	l.Error(msg, slog.Any("err", err))
	fmt.Println("Error:", err)
	os.Exit(1)
}

func main() {
	// initialize structured logging using environment defaults
	applog.Init(applog.FromEnv())
	l := applog.WithComponent("cli")
	defer func() { crash.Recover("") }()

	cfg, _, err := config.Load()
	if err != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", err))
		cfg = config.Defaults()
	}

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("GoChart — declarative charting")
			fmt.Println(version.String())
			return
		case "validate":
			if len(args) < 3 {
				fmt.Println("validate requires <chart.json>")
				usage()
				os.Exit(2)
			}
			data, err := os.ReadFile(args[2])
			if err != nil {
				fail(l, "read chart failed", err)
			}
			if _, err := chartspec.Parse(data); err != nil {
				fail(l, "validate failed", err)
			}
			fmt.Println("OK")
			return
		case "inspect":
			if len(args) < 3 {
				fmt.Println("inspect requires <chart.json>")
				usage()
				os.Exit(2)
			}
			inspectFile(l, args[2])
			return
		case "render":
			if len(args) < 4 {
				fmt.Println("render requires <chart.json> and <out>")
				usage()
				os.Exit(2)
			}
			renderFile(l, cfg, args[2], args[3])
			return
		case "export":
			if len(args) < 4 {
				fmt.Println("export requires <chart.json> and <name>")
				usage()
				os.Exit(2)
			}
			preset := export.PresetName(cfg.Export.Format)
			if len(args) >= 5 {
				preset = export.PresetName(args[4])
			}
			doc := parseFile(l, args[2])
			opt := export.BatchOptions{Preset: preset, DPIOverride: cfg.Export.DPI}
			if err := export.BatchExport(doc.Graph, args[3], opt); err != nil {
				fail(l, "export failed", err)
			}
			telemetry.Event("export", map[string]any{"preset": string(preset)})
			fmt.Println("Exported", args[3], "with preset", string(preset))
			return
		case "view":
			if len(args) < 3 {
				fmt.Println("view requires <chart.json>")
				usage()
				os.Exit(2)
			}
			if err := ui.Run(args[2]); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "data":
			if len(args) < 5 || args[2] != "domain" {
				fmt.Println("data domain requires <query> and <column:kind>")
				usage()
				os.Exit(2)
			}
			dataDomain(l, cfg, args[3], args[4])
			return
		case "catalog":
			if len(args) < 3 {
				usage()
				os.Exit(2)
			}
			catalogCmd(l, cfg, args[2:])
			return
		}
	}

	usage()
}

func parseFile(l *slog.Logger, path string) *chartspec.Document {
	data, err := os.ReadFile(path)
	if err != nil {
		fail(l, "read chart failed", err)
	}
	doc, err := chartspec.Parse(data)
	if err != nil {
		fail(l, "parse chart failed", err)
	}
	return doc
}

func inspectFile(l *slog.Logger, path string) {
	doc := parseFile(l, path)
	fmt.Printf("canvas: %g x %g\n", doc.Width, doc.Height)
	fmt.Printf("scales: %d\n", len(doc.Scales))
	for _, es := range doc.Scales {
		opts := es.Scale.NormalizedOptions()
		fmt.Printf("  %s\t%s\tdomain=%d range=%d options=%d\n",
			es.Name, es.Scale.Kind, es.Scale.Config.Domain.Len(), es.Scale.Config.Range.Len(), len(opts))
	}
	fmt.Printf("marks: %d\n", len(doc.Graph.Root.Marks))
	for _, m := range doc.Graph.Root.Marks {
		b := scene.Bounds(m)
		fmt.Printf("  %s\tbounds=(%g,%g)-(%g,%g)\n", m.MarkName(), b.MinX, b.MinY, b.MaxX, b.MaxY)
	}
	idx := scene.BuildIndex(doc.Graph)
	env := idx.Envelope()
	fmt.Printf("index: %d instances, envelope (%g,%g)-(%g,%g)\n",
		idx.Size(), env.MinX, env.MinY, env.MaxX, env.MaxY)
}

func renderFile(l *slog.Logger, cfg config.AppConfig, in, out string) {
	doc := parseFile(l, in)
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(out)), ".")
	if format == "" {
		format = cfg.Export.Format
	}
	l.Info("render", slog.String("in", in), slog.String("out", out), slog.String("format", format))
	err := export.Render(doc.Graph, format, out, export.Options{DPI: cfg.Export.DPI})
	if err != nil {
		fail(l, "render failed", err)
	}
	telemetry.Event("render", map[string]any{"format": format})
	fmt.Println("Rendered", out)
}

// dataDomain queries the configured datasource and prints the inferred
// domain for one result column, e.g. `gochart data domain "SELECT ..." price:linear`.
func dataDomain(l *slog.Logger, cfg config.AppConfig, query, colSpec string) {
	name, kindWord, ok := strings.Cut(colSpec, ":")
	if !ok {
		fail(l, "bad column spec", fmt.Errorf("want <column:kind>, got %q", colSpec))
	}
	kind, err := scale.ParseKind(kindWord)
	if err != nil {
		fail(l, "bad scale kind", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Datasource.TimeoutMs)*time.Millisecond)
	defer cancel()
	cols, err := datasource.Columns(ctx, cfg.Datasource.DSN, query)
	if err != nil {
		fail(l, "query failed", err)
	}
	for _, c := range cols {
		if c.Name != name {
			continue
		}
		dom := datasource.DomainFor(kind.InferDomainMethod(), c)
		if vals, ok := dom.AsFloats(); ok {
			fmt.Println("domain:", vals)
		} else if vals, ok := dom.AsStrings(); ok {
			fmt.Println("domain:", vals)
		}
		return
	}
	fail(l, "column not in result", fmt.Errorf("no column %q", name))
}

func catalogCmd(l *slog.Logger, cfg config.AppConfig, args []string) {
	path := catalog.ResolvePath(cfg.Catalog.Path)
	cat, err := catalog.Open(path)
	if err != nil {
		fail(l, "open catalog failed", err)
	}
	defer func() { _ = cat.Close() }()
	ctx := context.Background()

	switch args[0] {
	case "save":
		if len(args) < 3 {
			fmt.Println("catalog save requires <name> and <chart.json>")
			os.Exit(2)
		}
		data, err := os.ReadFile(args[2])
		if err != nil {
			fail(l, "read chart failed", err)
		}
		if _, err := chartspec.Parse(data); err != nil {
			fail(l, "chart is not valid", err)
		}
		if err := cat.Save(ctx, args[1], data); err != nil {
			fail(l, "save failed", err)
		}
		fmt.Println("Saved", args[1])
	case "get":
		if len(args) < 2 {
			fmt.Println("catalog get requires <name>")
			os.Exit(2)
		}
		data, err := cat.Get(ctx, args[1])
		if err != nil {
			fail(l, "get failed", err)
		}
		fmt.Println(string(data))
	case "list":
		entries, err := cat.List(ctx)
		if err != nil {
			fail(l, "list failed", err)
		}
		for _, e := range entries {
			fmt.Printf("%s\t%s\n", e.Name, e.UpdatedAt.Format(time.RFC3339))
		}
	case "search":
		if len(args) < 2 {
			fmt.Println("catalog search requires <term>")
			os.Exit(2)
		}
		entries, err := cat.Search(ctx, args[1])
		if err != nil {
			fail(l, "search failed", err)
		}
		for _, e := range entries {
			fmt.Printf("%s\t%s\n", e.Name, e.UpdatedAt.Format(time.RFC3339))
		}
	case "delete":
		if len(args) < 2 {
			fmt.Println("catalog delete requires <name>")
			os.Exit(2)
		}
		if err := cat.Delete(ctx, args[1]); err != nil {
			fail(l, "delete failed", err)
		}
		fmt.Println("Deleted", args[1])
	case "render":
		if len(args) < 3 {
			fmt.Println("catalog render requires <name> and <out>")
			os.Exit(2)
		}
		data, err := cat.Get(ctx, args[1])
		if err != nil {
			fail(l, "get failed", err)
		}
		doc, err := chartspec.Parse(data)
		if err != nil {
			fail(l, "parse stored chart failed", err)
		}
		format := strings.TrimPrefix(strings.ToLower(filepath.Ext(args[2])), ".")
		if err := export.Render(doc.Graph, format, args[2], export.Options{DPI: cfg.Export.DPI}); err != nil {
			fail(l, "render failed", err)
		}
		fmt.Println("Rendered", args[2])
	default:
		usage()
		os.Exit(2)
	}
}
