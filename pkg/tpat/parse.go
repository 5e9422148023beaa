package tpat

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/yergin/test-pattern-descriptor/pkg/errors"
	"github.com/yergin/test-pattern-descriptor/pkg/raster"
)

// patchKeys is every key understood on a patch node, including the
// document-level keys that only the root accepts.
var patchKeys = map[string]bool{
	"version": true, "depth": true, "name": true,
	"width": true, "height": true, "rows": true, "columns": true,
	"border": true, "spacing": true, "bordercolor": true,
	"color": true, "hramp": true, "vramp": true,
	"hsquare": true, "vsquare": true, "hsine": true, "vsine": true,
	"hcosine": true, "vcosine": true,
	"image": true, "premul": true,
	"patches": true, "subpatches": true,
	"cell": true, "left": true, "top": true, "right": true, "bottom": true,
	"description": true, "descriptions": true,
}

// rootOnlyKeys may appear only on the document root.
var rootOnlyKeys = map[string]bool{
	"version": true, "depth": true, "name": true,
}

// childOnlyKeys position a patch inside its parent grid and are
// meaningless on the root.
var childOnlyKeys = map[string]bool{
	"cell": true, "left": true, "top": true, "right": true, "bottom": true,
}

// gatedKeys were introduced by format version 2.
var gatedKeys = map[string]bool{
	"border": true, "spacing": true, "bordercolor": true,
	"cell":    true,
	"hsquare": true, "vsquare": true, "hsine": true, "vsine": true,
	"hcosine": true, "vcosine": true,
	"image": true, "premul": true,
	"patches":     true,
	"description": true, "descriptions": true,
}

// backgroundKeys are the mutually exclusive fill primitives.
var backgroundKeys = []string{
	"color", "hramp", "vramp",
	"hsquare", "vsquare", "hsine", "vsine", "hcosine", "vcosine",
}

// Parse decodes and structurally validates a descriptor document.
// Errors carry STRUCTURAL_* or SEMANTIC_* codes with the offending
// document path; the first error aborts the parse.
func Parse(data []byte) (*Document, error) {
	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBadDocument, err, "descriptor is not a JSON object")
	}
	if m == nil {
		return nil, errors.New(errors.ErrCodeBadDocument, "descriptor is not a JSON object")
	}

	doc := &Document{Version: DefaultVersion}

	if raw, ok := m["version"]; ok {
		v, err := decodeInt(raw, "version")
		if err != nil {
			return nil, err
		}
		doc.Version = v
	}
	if doc.Version < 1 || doc.Version > MaxVersion {
		return nil, errors.NewAt(errors.ErrCodeVersion, "version",
			"unsupported version %d (this format has versions 1 and 2)", doc.Version)
	}

	raw, ok := m["depth"]
	if !ok {
		return nil, errors.NewAt(errors.ErrCodeMissingField, "depth", "required field is missing")
	}
	d, err := decodeInt(raw, "depth")
	if err != nil {
		return nil, err
	}
	doc.Depth = raster.Depth(d)

	if raw, ok := m["name"]; ok {
		s, err := decodeString(raw, "name")
		if err != nil {
			return nil, err
		}
		doc.Name = s
	}

	root, err := parsePatch(m, "", doc.Version, true)
	if err != nil {
		return nil, err
	}
	if root.ColumnSpec() == nil {
		return nil, errors.New(errors.ErrCodeMissingField,
			`document root needs "width" or "columns"`)
	}
	if root.RowSpec() == nil {
		return nil, errors.New(errors.ErrCodeMissingField,
			`document root needs "height" or "rows"`)
	}
	doc.Root = root

	return doc, nil
}

// parsePatch decodes one patch node. The root shares its JSON object
// with the document-level keys, which parsePatch skips.
func parsePatch(m map[string]json.RawMessage, path string, version int, root bool) (*Patch, error) {
	p := &Patch{Path: path}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch {
		case !patchKeys[k]:
			return nil, errors.NewAt(errors.ErrCodeUnknownField, joinPath(path, k), "unknown field")
		case root && childOnlyKeys[k]:
			return nil, errors.NewAt(errors.ErrCodeUnknownField, joinPath(path, k),
				"placement fields are not allowed at the document root")
		case !root && rootOnlyKeys[k]:
			return nil, errors.NewAt(errors.ErrCodeUnknownField, joinPath(path, k),
				"field is only allowed at the document root")
		}
		if gatedKeys[k] && version < 2 {
			return nil, errors.NewAt(errors.ErrCodeVersionGated, joinPath(path, k),
				"field requires version 2 but the document declares version %d", version)
		}
	}

	if err := parseGridKeys(m, p, path); err != nil {
		return nil, err
	}
	if err := parseBackground(m, p, path); err != nil {
		return nil, err
	}
	if err := parseOverlayKeys(m, p, path); err != nil {
		return nil, err
	}
	if !root {
		if err := parsePlacement(m, p, path); err != nil {
			return nil, err
		}
	}
	if err := parseChildren(m, p, path, version); err != nil {
		return nil, err
	}
	if err := parseDescriptions(m, p, path); err != nil {
		return nil, err
	}

	return p, nil
}

func parseGridKeys(m map[string]json.RawMessage, p *Patch, path string) error {
	axes := []struct {
		key string
		dst **AxisSpec
	}{
		{"columns", &p.Columns},
		{"width", &p.Width},
		{"rows", &p.Rows},
		{"height", &p.Height},
	}
	for _, a := range axes {
		raw, ok := m[a.key]
		if !ok {
			continue
		}
		spec, err := decodeAxisSpec(raw, joinPath(path, a.key))
		if err != nil {
			return err
		}
		*a.dst = spec
	}

	if raw, ok := m["border"]; ok {
		e, err := decodeExtent(raw, joinPath(path, "border"))
		if err != nil {
			return err
		}
		p.Border = &e
	}
	if raw, ok := m["spacing"]; ok {
		e, err := decodeExtent(raw, joinPath(path, "spacing"))
		if err != nil {
			return err
		}
		p.Spacing = &e
	}
	if raw, ok := m["bordercolor"]; ok {
		c, err := decodeColor(raw, joinPath(path, "bordercolor"))
		if err != nil {
			return err
		}
		p.BorderColor = &c
	}
	return nil
}

func parseBackground(m map[string]json.RawMessage, p *Patch, path string) error {
	var present []string
	for _, k := range backgroundKeys {
		if _, ok := m[k]; ok {
			present = append(present, k)
		}
	}
	if len(present) == 0 {
		return nil
	}
	if len(present) > 1 {
		return errors.NewAt(errors.ErrCodeBackground, path,
			"conflicting background fields: %s", strings.Join(present, ", "))
	}

	key := present[0]
	kp := joinPath(path, key)
	raw := m[key]

	if key == "color" {
		c, err := decodeColor(raw, kp)
		if err != nil {
			return err
		}
		p.Background = Solid{Color: c}
		return nil
	}

	axis := Horizontal
	if key[0] == 'v' {
		axis = Vertical
	}

	if strings.HasSuffix(key, "ramp") {
		c1, c2, err := decodeRamp(raw, kp)
		if err != nil {
			return err
		}
		p.Background = Ramp{Axis: axis, C1: c1, C2: c2}
		return nil
	}

	wave := Square
	switch {
	case strings.HasSuffix(key, "sine"):
		wave = Sine
	case strings.HasSuffix(key, "cosine"):
		wave = Cosine
	}
	g, err := decodeGrating(raw, kp)
	if err != nil {
		return err
	}
	g.Axis = axis
	g.Wave = wave
	p.Background = g
	return nil
}

func parseOverlayKeys(m map[string]json.RawMessage, p *Patch, path string) error {
	if raw, ok := m["image"]; ok {
		s, err := decodeString(raw, joinPath(path, "image"))
		if err != nil {
			return err
		}
		if s == "" {
			return errors.NewAt(errors.ErrCodeWrongType, joinPath(path, "image"),
				"image path must not be empty")
		}
		p.Image = s
	}
	if raw, ok := m["premul"]; ok {
		b, err := decodeBool(raw, joinPath(path, "premul"))
		if err != nil {
			return err
		}
		p.Premul = b
	}
	return nil
}

func parsePlacement(m map[string]json.RawMessage, p *Patch, path string) error {
	if raw, ok := m["cell"]; ok {
		cell, err := decodeCell(raw, joinPath(path, "cell"))
		if err != nil {
			return err
		}
		p.Place.Cell = cell
	}

	legacy := []struct {
		key string
		has *bool
		dst *int
	}{
		{"left", &p.Place.HasLeft, &p.Place.Left},
		{"top", &p.Place.HasTop, &p.Place.Top},
		{"right", &p.Place.HasRight, &p.Place.Right},
		{"bottom", &p.Place.HasBottom, &p.Place.Bottom},
	}
	for _, l := range legacy {
		raw, ok := m[l.key]
		if !ok {
			continue
		}
		v, err := decodeInt(raw, joinPath(path, l.key))
		if err != nil {
			return err
		}
		*l.has = true
		*l.dst = v
	}
	return nil
}

func parseChildren(m map[string]json.RawMessage, p *Patch, path string, version int) error {
	rawPatches, hasPatches := m["patches"]
	rawLegacy, hasLegacy := m["subpatches"]
	if hasPatches && hasLegacy {
		return errors.NewAt(errors.ErrCodeKeyConflict, path,
			`"patches" and "subpatches" are aliases and cannot both be set`)
	}
	if !hasPatches && !hasLegacy {
		return nil
	}
	raw, key := rawPatches, "patches"
	if hasLegacy {
		raw, key = rawLegacy, "subpatches"
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return errors.WrapAt(errors.ErrCodeWrongType, joinPath(path, key), err,
			"expected an array of patches")
	}

	for i, rawChild := range list {
		cp := fmt.Sprintf("%s[%d]", joinPath(path, key), i)

		var probe any
		if err := json.Unmarshal(rawChild, &probe); err != nil {
			return errors.WrapAt(errors.ErrCodeWrongType, cp, err, "malformed patch element")
		}
		switch probe.(type) {
		case map[string]any:
			var cm map[string]json.RawMessage
			if err := json.Unmarshal(rawChild, &cm); err != nil {
				return errors.WrapAt(errors.ErrCodeWrongType, cp, err, "malformed patch element")
			}
			child, err := parsePatch(cm, cp, version, false)
			if err != nil {
				return err
			}
			p.Children = append(p.Children, Child{Path: cp, Patch: child})
		case float64, []any:
			c, err := decodeColor(rawChild, cp)
			if err != nil {
				return err
			}
			p.Children = append(p.Children, Child{Path: cp, Fill: &c})
		default:
			return errors.NewAt(errors.ErrCodeWrongType, cp,
				"expected a patch object or a color value")
		}
	}
	return nil
}

func parseDescriptions(m map[string]json.RawMessage, p *Patch, path string) error {
	if raw, ok := m["description"]; ok {
		s, err := decodeString(raw, joinPath(path, "description"))
		if err != nil {
			return err
		}
		p.Description = s
	}
	if raw, ok := m["descriptions"]; ok {
		var list []json.RawMessage
		if err := json.Unmarshal(raw, &list); err != nil {
			return errors.WrapAt(errors.ErrCodeWrongType, joinPath(path, "descriptions"), err,
				"expected an array of strings")
		}
		for i, rawItem := range list {
			s, err := decodeString(rawItem, fmt.Sprintf("%s[%d]", joinPath(path, "descriptions"), i))
			if err != nil {
				return err
			}
			p.Descriptions = append(p.Descriptions, s)
		}
	}
	return nil
}

// =============================================================================
// Value decoding
// =============================================================================

func decodeInt(raw json.RawMessage, path string) (int, error) {
	f, err := decodeNumber(raw, path)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, errors.NewAt(errors.ErrCodeWrongType, path, "expected an integer, got %v", f)
	}
	return int(f), nil
}

func decodeNumber(raw json.RawMessage, path string) (float64, error) {
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, errors.NewAt(errors.ErrCodeWrongType, path, "expected a number")
	}
	return f, nil
}

func decodeString(raw json.RawMessage, path string) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", errors.NewAt(errors.ErrCodeWrongType, path, "expected a string")
	}
	return s, nil
}

func decodeBool(raw json.RawMessage, path string) (bool, error) {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, errors.NewAt(errors.ErrCodeWrongType, path, "expected a boolean")
	}
	return b, nil
}

// decodeColor accepts a greyscale number or a 3-element RGB array.
func decodeColor(raw json.RawMessage, path string) (raster.Color, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return raster.Color{}, errors.NewAt(errors.ErrCodeWrongType, path,
			"expected a color (number or 3-element array)")
	}
	switch t := v.(type) {
	case float64:
		return raster.Grey(t), nil
	case []any:
		if len(t) != 3 {
			return raster.Color{}, errors.NewAt(errors.ErrCodeWrongType, path,
				"color array must have 3 components, got %d", len(t))
		}
		var c raster.Color
		for i, e := range t {
			f, ok := e.(float64)
			if !ok {
				return raster.Color{}, errors.NewAt(errors.ErrCodeWrongType,
					fmt.Sprintf("%s[%d]", path, i), "color component must be a number")
			}
			c[i] = f
		}
		return c, nil
	default:
		return raster.Color{}, errors.NewAt(errors.ErrCodeWrongType, path,
			"expected a color (number or 3-element array)")
	}
}

// decodeExtent accepts a scalar or a [vertical, horizontal] pair.
func decodeExtent(raw json.RawMessage, path string) (Extent, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Extent{}, errors.NewAt(errors.ErrCodeWrongType, path,
			"expected a size (number or [vertical, horizontal] array)")
	}
	switch t := v.(type) {
	case float64:
		n, err := intValue(t, path)
		if err != nil {
			return Extent{}, err
		}
		return Extent{V: n, H: n}, nil
	case []any:
		if len(t) != 2 {
			return Extent{}, errors.NewAt(errors.ErrCodeWrongType, path,
				"size array must have 2 elements [vertical, horizontal], got %d", len(t))
		}
		var pair [2]int
		for i, e := range t {
			f, ok := e.(float64)
			if !ok {
				return Extent{}, errors.NewAt(errors.ErrCodeWrongType,
					fmt.Sprintf("%s[%d]", path, i), "size must be a number")
			}
			n, err := intValue(f, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return Extent{}, err
			}
			pair[i] = n
		}
		return Extent{V: pair[0], H: pair[1]}, nil
	default:
		return Extent{}, errors.NewAt(errors.ErrCodeWrongType, path,
			"expected a size (number or [vertical, horizontal] array)")
	}
}

// decodeAxisSpec accepts a cell size, an array of cell sizes, or the
// "parent" sentinel.
func decodeAxisSpec(raw json.RawMessage, path string) (*AxisSpec, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, errors.NewAt(errors.ErrCodeWrongType, path,
			`expected a cell size, an array of cell sizes, or "parent"`)
	}
	switch t := v.(type) {
	case string:
		if t != "parent" {
			return nil, errors.NewAt(errors.ErrCodeWrongType, path,
				`the only string value allowed here is "parent", got %q`, t)
		}
		return &AxisSpec{Parent: true}, nil
	case float64:
		n, err := intValue(t, path)
		if err != nil {
			return nil, err
		}
		return &AxisSpec{Sizes: []int{n}}, nil
	case []any:
		if len(t) == 0 {
			return nil, errors.NewAt(errors.ErrCodeWrongType, path,
				"axis must have at least one cell size")
		}
		sizes := make([]int, len(t))
		for i, e := range t {
			f, ok := e.(float64)
			if !ok {
				return nil, errors.NewAt(errors.ErrCodeWrongType,
					fmt.Sprintf("%s[%d]", path, i), "cell size must be a number")
			}
			n, err := intValue(f, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			sizes[i] = n
		}
		return &AxisSpec{Sizes: sizes}, nil
	default:
		return nil, errors.NewAt(errors.ErrCodeWrongType, path,
			`expected a cell size, an array of cell sizes, or "parent"`)
	}
}

// decodeRamp accepts a 2-element array of colors.
func decodeRamp(raw json.RawMessage, path string) (raster.Color, raster.Color, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return raster.Color{}, raster.Color{}, errors.NewAt(errors.ErrCodeWrongType, path,
			"expected a 2-element array of colors")
	}
	if len(list) != 2 {
		return raster.Color{}, raster.Color{}, errors.NewAt(errors.ErrCodeWrongType, path,
			"ramp must have exactly 2 colors, got %d elements", len(list))
	}
	c1, err := decodeColor(list[0], fmt.Sprintf("%s[0]", path))
	if err != nil {
		return raster.Color{}, raster.Color{}, err
	}
	c2, err := decodeColor(list[1], fmt.Sprintf("%s[1]", path))
	if err != nil {
		return raster.Color{}, raster.Color{}, err
	}
	return c1, c2, nil
}

// decodeGrating accepts [halfPeriod, c1, c2] or
// [startHalfPeriod, endHalfPeriod, c1, c2].
func decodeGrating(raw json.RawMessage, path string) (Grating, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return Grating{}, errors.NewAt(errors.ErrCodeWrongType, path,
			"expected a 3 or 4-element grating array")
	}
	if len(list) != 3 && len(list) != 4 {
		return Grating{}, errors.NewAt(errors.ErrCodeWrongType, path,
			"grating must have 3 elements [halfPeriod, color1, color2] or 4 "+
				"[startHalfPeriod, endHalfPeriod, color1, color2], got %d", len(list))
	}

	var g Grating
	p0, err := decodeNumber(list[0], fmt.Sprintf("%s[0]", path))
	if err != nil {
		return Grating{}, err
	}
	g.P0 = p0
	g.P1 = p0
	next := 1
	if len(list) == 4 {
		p1, err := decodeNumber(list[1], fmt.Sprintf("%s[1]", path))
		if err != nil {
			return Grating{}, err
		}
		g.P1 = p1
		g.Sweep = true
		next = 2
	}
	g.C1, err = decodeColor(list[next], fmt.Sprintf("%s[%d]", path, next))
	if err != nil {
		return Grating{}, err
	}
	g.C2, err = decodeColor(list[next+1], fmt.Sprintf("%s[%d]", path, next+1))
	if err != nil {
		return Grating{}, err
	}
	return g, nil
}

// decodeCell accepts [row, col] or [row1, col1, row2, col2], 1-based.
func decodeCell(raw json.RawMessage, path string) ([]int, error) {
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, errors.NewAt(errors.ErrCodeWrongType, path,
			"expected a cell array [row, col] or [row1, col1, row2, col2]")
	}
	if len(list) != 2 && len(list) != 4 {
		return nil, errors.NewAt(errors.ErrCodeWrongType, path,
			"cell must have 2 or 4 elements, got %d", len(list))
	}
	cell := make([]int, len(list))
	for i, rawItem := range list {
		n, err := decodeInt(rawItem, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		cell[i] = n
	}
	return cell, nil
}

func intValue(f float64, path string) (int, error) {
	if f != math.Trunc(f) {
		return 0, errors.NewAt(errors.ErrCodeWrongType, path, "expected an integer, got %v", f)
	}
	return int(f), nil
}

func joinPath(base, key string) string {
	if base == "" {
		return key
	}
	return base + "." + key
}
