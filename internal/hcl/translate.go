package hcl

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/contentgrid/internal/config"
	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translateDeclaration converts the HCL-specific schema into the agnostic model.
func translateDeclaration(root *fileRoot) (*config.Declaration, error) {
	d := &config.Declaration{Source: root.Source}

	if root.Priority != nil {
		p := *root.Priority
		if p < 0 || p > math.MaxUint8 {
			return nil, fmt.Errorf("priority %d is outside the range 0..255", p)
		}
		v := uint8(p)
		d.Priority = &v
	}

	if root.Tile != nil {
		d.Tile = translateTerrain(root.Tile)
	}
	if root.Ground != nil {
		d.Ground = translateTerrain(root.Ground)
	}
	if root.Item != nil {
		d.Item = &config.ItemDecl{}
	}

	var err error
	if d.VisibleThing, err = translateStream(root.VisibleThing, "visible_thing"); err != nil {
		return nil, err
	}
	if d.Thing, err = translateStream(root.Thing, "thing"); err != nil {
		return nil, err
	}
	if d.ByteStream, err = translateStream(root.ByteStream, "byte_stream"); err != nil {
		return nil, err
	}
	if d.VisualData, err = translateVisual(root.VisualData); err != nil {
		return nil, err
	}
	return d, nil
}

func translateTerrain(b *terrainBlock) *config.TerrainDecl {
	return &config.TerrainDecl{Solid: b.Solid, WorldGenWeight: b.WorldGenWeight}
}

func translateStream(b *streamBlock, block string) (*config.StreamDecl, error) {
	if b == nil {
		return nil, nil
	}
	raw, err := decodeBytes(b.Bytes)
	if err != nil {
		return nil, fmt.Errorf("%s.bytes: %w", block, err)
	}
	return &config.StreamDecl{TypeIdentifier: b.TypeIdentifier, Bytes: raw}, nil
}

func translateVisual(b *visualBlock) (*config.VisualDecl, error) {
	if b == nil {
		return nil, nil
	}
	v := &config.VisualDecl{
		DisplayName:    b.Name,
		CharacterLeft:  firstRune(b.CharacterLeft),
		CharacterRight: firstRune(b.CharacterRight),
	}

	colors := []struct {
		name   string
		expr   hcl.Expression
		target **content.RGB
	}{
		{"text_color_left", b.TextColorLeft, &v.TextColorLeft},
		{"text_color_right", b.TextColorRight, &v.TextColorRight},
		{"back_color_left", b.BackColorLeft, &v.BackColorLeft},
		{"back_color_right", b.BackColorRight, &v.BackColorRight},
	}
	for _, c := range colors {
		rgb, err := decodeColor(c.expr)
		if err != nil {
			return nil, fmt.Errorf("visual_data.%s: %w", c.name, err)
		}
		*c.target = rgb
	}
	return v, nil
}

// firstRune returns the first character of s; an empty string means unset.
func firstRune(s *string) *rune {
	if s == nil || *s == "" {
		return nil
	}
	r, _ := utf8.DecodeRuneInString(*s)
	return &r
}

// evalOptional evaluates an optional attribute expression. A nil value means
// the attribute was absent or explicitly null.
func evalOptional(expr hcl.Expression) (*cty.Value, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("value must be known")
	}
	return &val, nil
}

// decodeBytes accepts either a string or a list of integers in 0..255.
// The result is nil only when the attribute is absent.
func decodeBytes(expr hcl.Expression) ([]byte, error) {
	val, err := evalOptional(expr)
	if err != nil || val == nil {
		return nil, err
	}
	if val.Type() == cty.String {
		s := val.AsString()
		out := make([]byte, len(s))
		copy(out, s)
		return out, nil
	}

	ints, err := decodeIntList(*val)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(ints))
	for i, n := range ints {
		if n < 0 || n > math.MaxUint8 {
			return nil, fmt.Errorf("byte %d at index %d is outside the range 0..255", n, i)
		}
		out[i] = byte(n)
	}
	return out, nil
}

// decodeColor accepts a "#rrggbb" string or a [r, g, b] list.
func decodeColor(expr hcl.Expression) (*content.RGB, error) {
	val, err := evalOptional(expr)
	if err != nil || val == nil {
		return nil, err
	}
	if val.Type() == cty.String {
		rgb, err := content.ParseHex(val.AsString())
		if err != nil {
			return nil, err
		}
		return &rgb, nil
	}

	ints, err := decodeIntList(*val)
	if err != nil {
		return nil, err
	}
	if len(ints) != 3 {
		return nil, fmt.Errorf("color must have exactly 3 components, got %d", len(ints))
	}
	for i, n := range ints {
		if n < 0 || n > math.MaxUint8 {
			return nil, fmt.Errorf("color component %d at index %d is outside the range 0..255", n, i)
		}
	}
	return &content.RGB{R: uint8(ints[0]), G: uint8(ints[1]), B: uint8(ints[2])}, nil
}

// decodeIntList also accepts an empty object, which is how an empty script
// table arrives through JSON.
func decodeIntList(val cty.Value) ([]int, error) {
	if ty := val.Type(); ty.IsObjectType() && len(ty.AttributeTypes()) == 0 {
		return []int{}, nil
	}
	listVal, err := convert.Convert(val, cty.List(cty.Number))
	if err != nil {
		return nil, fmt.Errorf("cannot convert %s to a list of numbers: %w", val.Type().FriendlyName(), err)
	}
	var ints []int
	if err := gocty.FromCtyValue(listVal, &ints); err != nil {
		return nil, err
	}
	return ints, nil
}
