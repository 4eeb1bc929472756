// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package content

import "github.com/specialistvlad/contentgrid/internal/identity"

// Record is a materialized registry entry.
type Record interface {
	Category() Category
	RecordID() uint16
	RecordKey() identity.Key
}

// TileType is a registered tile.
type TileType struct {
	ID             uint16       `msgpack:"id" json:"id"`
	Key            identity.Key `msgpack:"key" json:"-"`
	Name           string       `msgpack:"name" json:"name"`
	Display        Display      `msgpack:"display" json:"display"`
	Solid          bool         `msgpack:"solid" json:"solid"`
	WorldGenWeight float64      `msgpack:"world_gen_weight" json:"world_gen_weight"`
}

// GroundType is a registered ground.
type GroundType struct {
	ID             uint16       `msgpack:"id" json:"id"`
	Key            identity.Key `msgpack:"key" json:"-"`
	Name           string       `msgpack:"name" json:"name"`
	Display        Display      `msgpack:"display" json:"display"`
	Solid          bool         `msgpack:"solid" json:"solid"`
	WorldGenWeight float64      `msgpack:"world_gen_weight" json:"world_gen_weight"`
}

// ItemType is a registered item.
type ItemType struct {
	ID      uint16       `msgpack:"id" json:"id"`
	Key     identity.Key `msgpack:"key" json:"-"`
	Name    string       `msgpack:"name" json:"name"`
	Display Display      `msgpack:"display" json:"display"`
}

// VisibleThingType is a registered visible thing.
type VisibleThingType struct {
	ID             uint16       `msgpack:"id" json:"id"`
	Key            identity.Key `msgpack:"key" json:"-"`
	Name           string       `msgpack:"name" json:"name"`
	TypeIdentifier string       `msgpack:"type_identifier" json:"type_identifier"`
	Bytes          []byte       `msgpack:"bytes,omitempty" json:"bytes,omitempty"`
	Display        Display      `msgpack:"display" json:"display"`
}

// ThingType is a registered, invisible thing.
type ThingType struct {
	ID             uint16       `msgpack:"id" json:"id"`
	Key            identity.Key `msgpack:"key" json:"-"`
	Name           string       `msgpack:"name" json:"name"`
	TypeIdentifier string       `msgpack:"type_identifier" json:"type_identifier"`
	Bytes          []byte       `msgpack:"bytes,omitempty" json:"bytes,omitempty"`
}

// ByteStreamType is a registered raw byte stream.
type ByteStreamType struct {
	ID             uint16       `msgpack:"id" json:"id"`
	Key            identity.Key `msgpack:"key" json:"-"`
	Name           string       `msgpack:"name" json:"name"`
	TypeIdentifier string       `msgpack:"type_identifier,omitempty" json:"type_identifier,omitempty"`
	Bytes          []byte       `msgpack:"bytes" json:"bytes"`
}

func (TileType) Category() Category         { return Tile }
func (GroundType) Category() Category       { return Ground }
func (ItemType) Category() Category         { return Item }
func (VisibleThingType) Category() Category { return VisibleThing }
func (ThingType) Category() Category        { return Thing }
func (ByteStreamType) Category() Category   { return ByteStream }

func (r TileType) RecordID() uint16         { return r.ID }
func (r GroundType) RecordID() uint16       { return r.ID }
func (r ItemType) RecordID() uint16         { return r.ID }
func (r VisibleThingType) RecordID() uint16 { return r.ID }
func (r ThingType) RecordID() uint16        { return r.ID }
func (r ByteStreamType) RecordID() uint16   { return r.ID }

func (r TileType) RecordKey() identity.Key         { return r.Key }
func (r GroundType) RecordKey() identity.Key       { return r.Key }
func (r ItemType) RecordKey() identity.Key         { return r.Key }
func (r VisibleThingType) RecordKey() identity.Key { return r.Key }
func (r ThingType) RecordKey() identity.Key        { return r.Key }
func (r ByteStreamType) RecordKey() identity.Key   { return r.Key }

// Weight returns the world generation weight of the tile.
func (r TileType) Weight() float64 { return r.WorldGenWeight }

// Weight returns the world generation weight of the ground.
func (r GroundType) Weight() float64 { return r.WorldGenWeight }
