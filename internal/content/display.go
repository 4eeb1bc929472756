// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package content

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DefaultCharacter is used for an unset character_left/character_right.
const DefaultCharacter = ' '

// RGB is a 24-bit color.
type RGB struct {
	R uint8 `msgpack:"r" json:"r"`
	G uint8 `msgpack:"g" json:"g"`
	B uint8 `msgpack:"b" json:"b"`
}

// Hex returns the color as "#rrggbb".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex parses "#rrggbb" (the leading '#' is optional).
func ParseHex(s string) (RGB, error) {
	raw := strings.TrimPrefix(s, "#")
	if len(raw) != 6 {
		return RGB{}, fmt.Errorf("color %q must have the form #rrggbb", s)
	}
	v, err := strconv.ParseUint(raw, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("color %q is not hexadecimal", s)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Text is the two-character glyph of a content item.
type Text struct {
	Left  rune `msgpack:"left" json:"left"`
	Right rune `msgpack:"right" json:"right"`
}

// MarshalJSON writes the glyph as characters rather than code points.
func (t Text) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Left  string `json:"left"`
		Right string `json:"right"`
	}{string(t.Left), string(t.Right)})
}

// Color holds the four optional colors of a glyph. A nil color is
// "unspecified": renderers fall back through their own defaults, which is
// not the same as an explicit color.
type Color struct {
	TextLeft  *RGB `msgpack:"text_left,omitempty" json:"text_left,omitempty"`
	TextRight *RGB `msgpack:"text_right,omitempty" json:"text_right,omitempty"`
	BackLeft  *RGB `msgpack:"back_left,omitempty" json:"back_left,omitempty"`
	BackRight *RGB `msgpack:"back_right,omitempty" json:"back_right,omitempty"`
}

// Display is the merged visual attributes of a record.
type Display struct {
	Text  Text  `msgpack:"text" json:"text"`
	Color Color `msgpack:"color" json:"color"`
}

// DisplayFrom materializes a visual payload, applying character defaults and
// preserving unspecified colors. It also returns the display name.
func DisplayFrom(v *VisualPayload) (Display, string) {
	d := Display{Text: Text{Left: DefaultCharacter, Right: DefaultCharacter}}
	if v == nil {
		return d, ""
	}
	if v.CharacterLeft != nil {
		d.Text.Left = *v.CharacterLeft
	}
	if v.CharacterRight != nil {
		d.Text.Right = *v.CharacterRight
	}
	d.Color = Color{
		TextLeft:  copyRGB(v.TextColorLeft),
		TextRight: copyRGB(v.TextColorRight),
		BackLeft:  copyRGB(v.BackColorLeft),
		BackRight: copyRGB(v.BackColorRight),
	}
	name := ""
	if v.DisplayName != nil {
		name = *v.DisplayName
	}
	return d, name
}

func copyRGB(c *RGB) *RGB {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}
