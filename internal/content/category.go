// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package content

import "fmt"

// Category is a kind of content a declaration can carry.
type Category uint8

const (
	Tile Category = iota
	Ground
	Item
	VisibleThing
	Thing
	ByteStream
	VisualData
)

var categoryNames = [...]string{
	Tile:         "tile",
	Ground:       "ground",
	Item:         "item",
	VisibleThing: "visible_thing",
	Thing:        "thing",
	ByteStream:   "byte_stream",
	VisualData:   "visual_data",
}

// Categories lists every category in declaration block order.
var Categories = []Category{Tile, Ground, Item, VisibleThing, Thing, ByteStream, VisualData}

// RegisteredCategories lists the categories that receive ids in the registry.
var RegisteredCategories = []Category{Tile, Ground, Item, VisibleThing, Thing, ByteStream}

// String returns the declaration block name of the category.
func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", uint8(c))
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool { return int(c) < len(categoryNames) }

// RequiresVisual reports whether entries of this category are dropped when
// no visual_data sibling exists.
func (c Category) RequiresVisual() bool {
	switch c {
	case Tile, Ground, Item, VisibleThing:
		return true
	default:
		return false
	}
}

// Registered reports whether the category has its own registry table.
func (c Category) Registered() bool { return c.Valid() && c != VisualData }

// ParseCategory resolves a block name such as "visible_thing".
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", name)
}
