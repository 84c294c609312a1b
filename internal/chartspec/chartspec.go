/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package chartspec parses JSON chart documents into evaluated scales and a
// renderable scene graph. Documents are validated against an embedded JSON
// schema before decoding, so decode errors only concern semantics (unknown
// scale names, type mismatches) rather than shape.
package chartspec

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"gochart/internal/colorspace"
	"gochart/internal/scale"
	"gochart/internal/scene"
	"gochart/internal/value"
)

//go:embed chart.schema.json
var schemaJSON []byte

// Document is a fully decoded chart: canvas size, named scales in
// declaration order, and the scene graph built from the mark list.
type Document struct {
	Width  float32
	Height float32
	Scales []scale.EvaluatedScale
	Graph  *scene.Graph
}

// Validate checks raw JSON against the chart document schema without
// decoding it. The returned error lists every schema violation.
func Validate(data []byte) error {
	res, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("chart document: %w", err)
	}
	if !res.Valid() {
		var b strings.Builder
		for i, e := range res.Errors() {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(e.String())
		}
		return fmt.Errorf("chart document does not conform to schema: %s", b.String())
	}
	return nil
}

// Parse validates and decodes a chart document.
func Parse(data []byte) (*Document, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("chart document: %w", err)
	}

	doc := &Document{Width: raw.Width, Height: raw.Height}
	dec := &decoder{scales: make(map[string]*scale.Configured)}
	for i, rs := range raw.Scales {
		es, err := dec.buildScale(rs)
		if err != nil {
			return nil, fmt.Errorf("scales[%d] %q: %w", i, rs.Name, err)
		}
		doc.Scales = append(doc.Scales, es)
	}

	root := scene.Group{Name: "root"}
	for i, rm := range raw.Marks {
		mark, err := dec.buildMark(rm)
		if err != nil {
			return nil, fmt.Errorf("marks[%d] (%s): %w", i, rm.Type, err)
		}
		root.Marks = append(root.Marks, mark)
	}
	doc.Graph = &scene.Graph{Width: raw.Width, Height: raw.Height, Root: root}
	return doc, nil
}

type rawDocument struct {
	Width  float32    `json:"width"`
	Height float32    `json:"height"`
	Scales []rawScale `json:"scales"`
	Marks  []rawMark  `json:"marks"`
}

type rawScale struct {
	Name    string         `json:"name"`
	Kind    string         `json:"kind"`
	Domain  []any          `json:"domain"`
	Range   []any          `json:"range"`
	Options map[string]any `json:"options"`
}

// rawMark keeps type and name as fields; every other key is an encoding
// channel.
type rawMark struct {
	Type     string
	Name     string
	Channels map[string]rawChannel
}

func (m *rawMark) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	m.Channels = make(map[string]rawChannel)
	for k, raw := range fields {
		switch k {
		case "type":
			if err := json.Unmarshal(raw, &m.Type); err != nil {
				return err
			}
		case "name":
			if err := json.Unmarshal(raw, &m.Name); err != nil {
				return err
			}
		default:
			var ch rawChannel
			if err := json.Unmarshal(raw, &ch); err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			m.Channels[k] = ch
		}
	}
	return nil
}

// rawChannel is a literal scalar, a literal data array, or an object
// binding data through a named scale.
type rawChannel struct {
	Value any
	Data  []any
	Scale string
}

func (c *rawChannel) UnmarshalJSON(data []byte) error {
	t := bytes.TrimSpace(data)
	if len(t) == 0 {
		return fmt.Errorf("empty channel")
	}
	switch t[0] {
	case '{':
		var obj struct {
			Value any    `json:"value"`
			Data  []any  `json:"data"`
			Scale string `json:"scale"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		c.Value, c.Data, c.Scale = obj.Value, obj.Data, obj.Scale
		return nil
	case '[':
		return json.Unmarshal(data, &c.Data)
	default:
		return json.Unmarshal(data, &c.Value)
	}
}

type decoder struct {
	scales map[string]*scale.Configured
}

func (d *decoder) buildScale(rs rawScale) (scale.EvaluatedScale, error) {
	var es scale.EvaluatedScale
	if _, dup := d.scales[rs.Name]; dup {
		return es, fmt.Errorf("duplicate scale name")
	}
	kind, err := scale.ParseKind(rs.Kind)
	if err != nil {
		return es, err
	}
	domain, err := decodeArray(rs.Domain)
	if err != nil {
		return es, fmt.Errorf("domain: %w", err)
	}
	rng, err := decodeArray(rs.Range)
	if err != nil {
		return es, fmt.Errorf("range: %w", err)
	}
	opts := make(map[string]scale.Scalar, len(rs.Options))
	for k, v := range rs.Options {
		opts[k] = scalarOf(v)
	}
	cfg := scale.Config{Domain: domain, Range: rng, Options: opts}
	s, err := scale.New(kind, cfg)
	if err != nil {
		return es, err
	}
	d.scales[rs.Name] = s
	return scale.EvaluatedScale{Name: rs.Name, Scale: s}, nil
}

// decodeArray maps a JSON array onto a scale array: all numbers or all
// strings.
func decodeArray(vals []any) (scale.Array, error) {
	var fs []float32
	var ss []string
	for i, v := range vals {
		switch x := v.(type) {
		case float64:
			if ss != nil {
				return scale.Array{}, fmt.Errorf("mixed number and string at index %d", i)
			}
			fs = append(fs, float32(x))
		case string:
			if fs != nil {
				return scale.Array{}, fmt.Errorf("mixed number and string at index %d", i)
			}
			ss = append(ss, x)
		default:
			return scale.Array{}, fmt.Errorf("unsupported element at index %d", i)
		}
	}
	if ss != nil {
		return scale.Strings(ss), nil
	}
	return scale.Floats(fs), nil
}

func scalarOf(v any) scale.Scalar {
	switch x := v.(type) {
	case float64:
		return scale.F32(float32(x))
	case bool:
		return scale.Bool(x)
	case string:
		return scale.Str(x)
	default:
		return scale.Null()
	}
}

func (d *decoder) lookup(name string) (*scale.Configured, error) {
	s, ok := d.scales[name]
	if !ok {
		return nil, fmt.Errorf("unknown scale %q", name)
	}
	return s, nil
}

var markChannels = map[string]map[string]bool{
	"rect": {
		"x": true, "y": true, "x2": true, "y2": true, "width": true,
		"height": true, "corner_radius": true, "stroke_width": true,
		"fill": true, "stroke": true,
	},
	"symbol": {
		"x": true, "y": true, "size": true, "angle": true,
		"fill": true, "stroke": true, "stroke_width": true,
	},
	"rule": {
		"x": true, "y": true, "x2": true, "y2": true,
		"stroke": true, "stroke_width": true, "cap": true,
	},
	"line": {
		"x": true, "y": true, "stroke": true, "stroke_width": true,
		"cap": true, "join": true,
	},
	"text": {
		"x": true, "y": true, "text": true, "font_size": true, "angle": true,
		"align": true, "baseline": true, "color": true,
	},
}

func (d *decoder) buildMark(rm rawMark) (scene.Mark, error) {
	allowed, ok := markChannels[rm.Type]
	if !ok {
		return nil, fmt.Errorf("unknown mark type")
	}
	for k := range rm.Channels {
		if !allowed[k] {
			return nil, fmt.Errorf("channel %q is not supported", k)
		}
	}
	n := 0
	for _, ch := range rm.Channels {
		if len(ch.Data) > n {
			n = len(ch.Data)
		}
	}
	if n == 0 {
		return nil, fmt.Errorf("mark has no array channel")
	}
	switch rm.Type {
	case "rect":
		return d.buildRect(rm, n)
	case "symbol":
		return d.buildSymbol(rm, n)
	case "rule":
		return d.buildRule(rm, n)
	case "line":
		return d.buildLine(rm, n)
	default:
		return d.buildText(rm, n)
	}
}

func (d *decoder) buildRect(rm rawMark, n int) (scene.Mark, error) {
	m := &scene.RectMark{Name: rm.Name, Len: n}
	var err error
	if m.X, err = d.numericChannel(rm, "x", 0); err != nil {
		return nil, err
	}
	if m.Y, err = d.numericChannel(rm, "y", 0); err != nil {
		return nil, err
	}
	if m.X2, err = d.extentChannel(rm, "x2", "width", m.X, n); err != nil {
		return nil, err
	}
	if m.Y2, err = d.extentChannel(rm, "y2", "height", m.Y, n); err != nil {
		return nil, err
	}
	if m.CornerRadius, err = d.numericChannel(rm, "corner_radius", 0); err != nil {
		return nil, err
	}
	if m.StrokeWidth, err = d.numericChannel(rm, "stroke_width", 0); err != nil {
		return nil, err
	}
	if m.Fill, err = d.colorChannel(rm, "fill", colorspace.Srgba{A: 1}); err != nil {
		return nil, err
	}
	if m.Stroke, err = d.colorChannel(rm, "stroke", colorspace.Srgba{}); err != nil {
		return nil, err
	}
	return m, nil
}

func (d *decoder) buildSymbol(rm rawMark, n int) (scene.Mark, error) {
	m := &scene.SymbolMark{Name: rm.Name, Len: n}
	var err error
	if m.X, err = d.numericChannel(rm, "x", 0); err != nil {
		return nil, err
	}
	if m.Y, err = d.numericChannel(rm, "y", 0); err != nil {
		return nil, err
	}
	if m.Size, err = d.numericChannel(rm, "size", 64); err != nil {
		return nil, err
	}
	if m.Angle, err = d.numericChannel(rm, "angle", 0); err != nil {
		return nil, err
	}
	if m.StrokeWidth, err = d.floatScalar(rm, "stroke_width", 0); err != nil {
		return nil, err
	}
	if m.Fill, err = d.colorChannel(rm, "fill", colorspace.Srgba{A: 1}); err != nil {
		return nil, err
	}
	if m.Stroke, err = d.colorChannel(rm, "stroke", colorspace.Srgba{}); err != nil {
		return nil, err
	}
	return m, nil
}

func (d *decoder) buildRule(rm rawMark, n int) (scene.Mark, error) {
	m := &scene.RuleMark{Name: rm.Name, Len: n}
	var err error
	if m.X, err = d.numericChannel(rm, "x", 0); err != nil {
		return nil, err
	}
	if m.Y, err = d.numericChannel(rm, "y", 0); err != nil {
		return nil, err
	}
	if m.X2, err = d.extentChannel(rm, "x2", "", m.X, n); err != nil {
		return nil, err
	}
	if m.Y2, err = d.extentChannel(rm, "y2", "", m.Y, n); err != nil {
		return nil, err
	}
	if m.StrokeWidth, err = d.numericChannel(rm, "stroke_width", 1); err != nil {
		return nil, err
	}
	if m.Stroke, err = d.colorChannel(rm, "stroke", colorspace.Srgba{A: 1}); err != nil {
		return nil, err
	}
	capKw, err := d.capScalar(rm, "cap")
	if err != nil {
		return nil, err
	}
	m.StrokeCap = value.Scalar(capKw)
	return m, nil
}

func (d *decoder) buildLine(rm rawMark, n int) (scene.Mark, error) {
	m := &scene.LineMark{Name: rm.Name, Len: n}
	var err error
	if m.X, err = d.numericChannel(rm, "x", 0); err != nil {
		return nil, err
	}
	if m.Y, err = d.numericChannel(rm, "y", 0); err != nil {
		return nil, err
	}
	if m.StrokeWidth, err = d.floatScalar(rm, "stroke_width", 1); err != nil {
		return nil, err
	}
	if m.Stroke, err = d.colorScalar(rm, "stroke", colorspace.Srgba{A: 1}); err != nil {
		return nil, err
	}
	if m.StrokeCap, err = d.capScalar(rm, "cap"); err != nil {
		return nil, err
	}
	if ch, ok := rm.Channels["join"]; ok {
		s, isStr := ch.Value.(string)
		if !isStr {
			return nil, fmt.Errorf("join: expected a keyword string")
		}
		j, okj := scene.ParseStrokeJoin(s)
		if !okj {
			return nil, fmt.Errorf("join: unknown keyword %q", s)
		}
		m.StrokeJoin = j
	}
	return m, nil
}

func (d *decoder) buildText(rm rawMark, n int) (scene.Mark, error) {
	m := &scene.TextMark{Name: rm.Name, Len: n}
	var err error
	if m.X, err = d.numericChannel(rm, "x", 0); err != nil {
		return nil, err
	}
	if m.Y, err = d.numericChannel(rm, "y", 0); err != nil {
		return nil, err
	}
	if m.Text, err = d.stringChannel(rm, "text"); err != nil {
		return nil, err
	}
	if m.FontSize, err = d.numericChannel(rm, "font_size", 10); err != nil {
		return nil, err
	}
	if m.Angle, err = d.numericChannel(rm, "angle", 0); err != nil {
		return nil, err
	}
	if m.Align, err = alignChannel(d, rm); err != nil {
		return nil, err
	}
	if m.Baseline, err = baselineChannel(d, rm); err != nil {
		return nil, err
	}
	if m.Color, err = d.colorChannel(rm, "color", colorspace.Srgba{A: 1}); err != nil {
		return nil, err
	}
	return m, nil
}

// numericChannel resolves a channel to float32 values, routing data through
// the bound scale when one is named.
func (d *decoder) numericChannel(rm rawMark, key string, def float32) (value.ScalarOrArray[float32], error) {
	ch, ok := rm.Channels[key]
	if !ok {
		return value.Scalar(def), nil
	}
	if ch.Data != nil {
		arr, err := decodeArray(ch.Data)
		if err != nil {
			return value.ScalarOrArray[float32]{}, fmt.Errorf("%s: %w", key, err)
		}
		if ch.Scale != "" {
			s, err := d.lookup(ch.Scale)
			if err != nil {
				return value.ScalarOrArray[float32]{}, fmt.Errorf("%s: %w", key, err)
			}
			out, err := s.ScaleToNumeric(arr)
			if err != nil {
				return value.ScalarOrArray[float32]{}, fmt.Errorf("%s: %w", key, err)
			}
			return out, nil
		}
		fs, isF := arr.AsFloats()
		if !isF {
			return value.ScalarOrArray[float32]{}, fmt.Errorf("%s: numeric channel needs numbers or a scale", key)
		}
		return value.Array(fs), nil
	}
	if ch.Scale != "" {
		arr, err := scalarArray(ch.Value)
		if err != nil {
			return value.ScalarOrArray[float32]{}, fmt.Errorf("%s: %w", key, err)
		}
		s, err := d.lookup(ch.Scale)
		if err != nil {
			return value.ScalarOrArray[float32]{}, fmt.Errorf("%s: %w", key, err)
		}
		out, err := s.ScaleToNumeric(arr)
		if err != nil {
			return value.ScalarOrArray[float32]{}, fmt.Errorf("%s: %w", key, err)
		}
		return value.Scalar(out.Value(0)), nil
	}
	f, isF := ch.Value.(float64)
	if !isF {
		return value.ScalarOrArray[float32]{}, fmt.Errorf("%s: expected a number", key)
	}
	return value.Scalar(float32(f)), nil
}

// extentChannel resolves a secondary position: an explicit channel, a size
// channel added onto the primary, or the primary itself.
func (d *decoder) extentChannel(rm rawMark, key, sizeKey string, primary value.ScalarOrArray[float32], n int) (value.ScalarOrArray[float32], error) {
	if _, ok := rm.Channels[key]; ok {
		return d.numericChannel(rm, key, 0)
	}
	if sizeKey != "" {
		if _, ok := rm.Channels[sizeKey]; ok {
			size, err := d.numericChannel(rm, sizeKey, 0)
			if err != nil {
				return value.ScalarOrArray[float32]{}, err
			}
			return plus(primary, size, n), nil
		}
	}
	return primary, nil
}

func plus(a, b value.ScalarOrArray[float32], n int) value.ScalarOrArray[float32] {
	if a.IsScalar() && b.IsScalar() {
		av, _ := a.ScalarValue()
		bv, _ := b.ScalarValue()
		return value.Scalar(av + bv)
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = a.Value(i) + b.Value(i)
	}
	return value.Array(out)
}

func (d *decoder) colorChannel(rm rawMark, key string, def colorspace.Srgba) (value.ScalarOrArray[colorspace.Srgba], error) {
	ch, ok := rm.Channels[key]
	if !ok {
		return value.Scalar(def), nil
	}
	if ch.Data != nil {
		arr, err := decodeArray(ch.Data)
		if err != nil {
			return value.ScalarOrArray[colorspace.Srgba]{}, fmt.Errorf("%s: %w", key, err)
		}
		if ch.Scale != "" {
			s, err := d.lookup(ch.Scale)
			if err != nil {
				return value.ScalarOrArray[colorspace.Srgba]{}, fmt.Errorf("%s: %w", key, err)
			}
			out, err := s.ScaleToColor(arr)
			if err != nil {
				return value.ScalarOrArray[colorspace.Srgba]{}, fmt.Errorf("%s: %w", key, err)
			}
			return out, nil
		}
		ss, isS := arr.AsStrings()
		if !isS {
			return value.ScalarOrArray[colorspace.Srgba]{}, fmt.Errorf("%s: color channel needs color strings or a scale", key)
		}
		out := make([]colorspace.Srgba, len(ss))
		for i, cs := range ss {
			c, err := colorspace.ParseColor(cs)
			if err != nil {
				return value.ScalarOrArray[colorspace.Srgba]{}, fmt.Errorf("%s[%d]: %w", key, i, err)
			}
			out[i] = c
		}
		return value.Array(out), nil
	}
	if ch.Scale != "" {
		arr, err := scalarArray(ch.Value)
		if err != nil {
			return value.ScalarOrArray[colorspace.Srgba]{}, fmt.Errorf("%s: %w", key, err)
		}
		s, err := d.lookup(ch.Scale)
		if err != nil {
			return value.ScalarOrArray[colorspace.Srgba]{}, fmt.Errorf("%s: %w", key, err)
		}
		out, err := s.ScaleToColor(arr)
		if err != nil {
			return value.ScalarOrArray[colorspace.Srgba]{}, fmt.Errorf("%s: %w", key, err)
		}
		return value.Scalar(out.Value(0)), nil
	}
	cs, isS := ch.Value.(string)
	if !isS {
		return value.ScalarOrArray[colorspace.Srgba]{}, fmt.Errorf("%s: expected a color string", key)
	}
	c, err := colorspace.ParseColor(cs)
	if err != nil {
		return value.ScalarOrArray[colorspace.Srgba]{}, fmt.Errorf("%s: %w", key, err)
	}
	return value.Scalar(c), nil
}

func (d *decoder) colorScalar(rm rawMark, key string, def colorspace.Srgba) (colorspace.Srgba, error) {
	v, err := d.colorChannel(rm, key, def)
	if err != nil {
		return colorspace.Srgba{}, err
	}
	c, ok := v.ScalarValue()
	if !ok {
		return colorspace.Srgba{}, fmt.Errorf("%s: expected a single color", key)
	}
	return c, nil
}

func (d *decoder) stringChannel(rm rawMark, key string) (value.ScalarOrArray[string], error) {
	ch, ok := rm.Channels[key]
	if !ok {
		return value.Scalar(""), nil
	}
	if ch.Data != nil {
		arr, err := decodeArray(ch.Data)
		if err != nil {
			return value.ScalarOrArray[string]{}, fmt.Errorf("%s: %w", key, err)
		}
		if ch.Scale != "" {
			s, err := d.lookup(ch.Scale)
			if err != nil {
				return value.ScalarOrArray[string]{}, fmt.Errorf("%s: %w", key, err)
			}
			out, err := s.ScaleToString(arr)
			if err != nil {
				return value.ScalarOrArray[string]{}, fmt.Errorf("%s: %w", key, err)
			}
			return out, nil
		}
		ss, isS := arr.AsStrings()
		if !isS {
			return value.ScalarOrArray[string]{}, fmt.Errorf("%s: expected strings", key)
		}
		return value.Array(ss), nil
	}
	s, isS := ch.Value.(string)
	if !isS {
		return value.ScalarOrArray[string]{}, fmt.Errorf("%s: expected a string", key)
	}
	return value.Scalar(s), nil
}

func (d *decoder) floatScalar(rm rawMark, key string, def float32) (float32, error) {
	ch, ok := rm.Channels[key]
	if !ok {
		return def, nil
	}
	f, isF := ch.Value.(float64)
	if !isF {
		return 0, fmt.Errorf("%s: expected a single number", key)
	}
	return float32(f), nil
}

func (d *decoder) capScalar(rm rawMark, key string) (scene.StrokeCap, error) {
	ch, ok := rm.Channels[key]
	if !ok {
		return scene.CapButt, nil
	}
	s, isS := ch.Value.(string)
	if !isS {
		return scene.CapButt, fmt.Errorf("%s: expected a keyword string", key)
	}
	c, okc := scene.ParseStrokeCap(s)
	if !okc {
		return scene.CapButt, fmt.Errorf("%s: unknown keyword %q", key, s)
	}
	return c, nil
}

func alignChannel(d *decoder, rm rawMark) (value.ScalarOrArray[scene.TextAlign], error) {
	ch, ok := rm.Channels["align"]
	if !ok {
		return value.Scalar(scene.AlignLeft), nil
	}
	if ch.Data != nil && ch.Scale != "" {
		arr, err := decodeArray(ch.Data)
		if err != nil {
			return value.ScalarOrArray[scene.TextAlign]{}, fmt.Errorf("align: %w", err)
		}
		s, err := d.lookup(ch.Scale)
		if err != nil {
			return value.ScalarOrArray[scene.TextAlign]{}, fmt.Errorf("align: %w", err)
		}
		out, err := s.ScaleToAlign(arr)
		if err != nil {
			return value.ScalarOrArray[scene.TextAlign]{}, fmt.Errorf("align: %w", err)
		}
		return out, nil
	}
	kw, isS := ch.Value.(string)
	if !isS {
		return value.ScalarOrArray[scene.TextAlign]{}, fmt.Errorf("align: expected a keyword string")
	}
	a, oka := scene.ParseTextAlign(kw)
	if !oka {
		return value.ScalarOrArray[scene.TextAlign]{}, fmt.Errorf("align: unknown keyword %q", kw)
	}
	return value.Scalar(a), nil
}

func baselineChannel(d *decoder, rm rawMark) (value.ScalarOrArray[scene.TextBaseline], error) {
	ch, ok := rm.Channels["baseline"]
	if !ok {
		return value.Scalar(scene.BaselineAlphabetic), nil
	}
	if ch.Data != nil && ch.Scale != "" {
		arr, err := decodeArray(ch.Data)
		if err != nil {
			return value.ScalarOrArray[scene.TextBaseline]{}, fmt.Errorf("baseline: %w", err)
		}
		s, err := d.lookup(ch.Scale)
		if err != nil {
			return value.ScalarOrArray[scene.TextBaseline]{}, fmt.Errorf("baseline: %w", err)
		}
		out, err := s.ScaleToBaseline(arr)
		if err != nil {
			return value.ScalarOrArray[scene.TextBaseline]{}, fmt.Errorf("baseline: %w", err)
		}
		return out, nil
	}
	kw, isS := ch.Value.(string)
	if !isS {
		return value.ScalarOrArray[scene.TextBaseline]{}, fmt.Errorf("baseline: expected a keyword string")
	}
	b, okb := scene.ParseTextBaseline(kw)
	if !okb {
		return value.ScalarOrArray[scene.TextBaseline]{}, fmt.Errorf("baseline: unknown keyword %q", kw)
	}
	return value.Scalar(b), nil
}

// scalarArray lifts one literal into a one-element scale array for routing
// through a scale.
func scalarArray(v any) (scale.Array, error) {
	switch x := v.(type) {
	case float64:
		return scale.Floats([]float32{float32(x)}), nil
	case string:
		return scale.Strings([]string{x}), nil
	default:
		return scale.Array{}, fmt.Errorf("expected a number or string literal")
	}
}
