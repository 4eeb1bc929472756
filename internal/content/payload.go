// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package content

// Payload is the category-specific data of an entry. It is a closed set of
// variants; use a type switch to consume it.
type Payload interface {
	Category() Category
	sealed()
}

// TilePayload is the data of a tile block.
type TilePayload struct {
	Solid          *bool
	WorldGenWeight *float64
}

// GroundPayload is the data of a ground block.
type GroundPayload struct {
	Solid          *bool
	WorldGenWeight *float64
}

// ItemPayload is the data of an item block. Items carry no fields of their own.
type ItemPayload struct{}

// VisibleThingPayload is the data of a visible_thing block.
type VisibleThingPayload struct {
	TypeIdentifier *string
	Bytes          []byte
}

// ThingPayload is the data of a thing block.
type ThingPayload struct {
	TypeIdentifier *string
	Bytes          []byte
}

// ByteStreamPayload is the data of a byte_stream block.
type ByteStreamPayload struct {
	TypeIdentifier *string
	Bytes          []byte
}

// VisualPayload is the data of a visual_data block.
type VisualPayload struct {
	DisplayName    *string
	CharacterLeft  *rune
	CharacterRight *rune
	TextColorLeft  *RGB
	TextColorRight *RGB
	BackColorLeft  *RGB
	BackColorRight *RGB
}

func (TilePayload) Category() Category         { return Tile }
func (GroundPayload) Category() Category       { return Ground }
func (ItemPayload) Category() Category         { return Item }
func (VisibleThingPayload) Category() Category { return VisibleThing }
func (ThingPayload) Category() Category        { return Thing }
func (ByteStreamPayload) Category() Category   { return ByteStream }
func (VisualPayload) Category() Category       { return VisualData }

func (TilePayload) sealed()         {}
func (GroundPayload) sealed()       {}
func (ItemPayload) sealed()         {}
func (VisibleThingPayload) sealed() {}
func (ThingPayload) sealed()        {}
func (ByteStreamPayload) sealed()   {}
func (VisualPayload) sealed()       {}

// Entry is one flattened, category-specific piece of a declaration.
type Entry struct {
	Identity Identity
	Payload  Payload
	// Origin names the file or script that produced the entry.
	Origin string
}
