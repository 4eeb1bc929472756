package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot is the top-level schema of a declaration file.
type fileRoot struct {
	Source   *string `hcl:"source,optional"`
	Priority *int    `hcl:"priority,optional"`

	Tile         *terrainBlock `hcl:"tile,block"`
	Ground       *terrainBlock `hcl:"ground,block"`
	Item         *itemBlock    `hcl:"item,block"`
	VisibleThing *streamBlock  `hcl:"visible_thing,block"`
	Thing        *streamBlock  `hcl:"thing,block"`
	ByteStream   *streamBlock  `hcl:"byte_stream,block"`
	VisualData   *visualBlock  `hcl:"visual_data,block"`
}

// terrainBlock is shared by tile and ground.
type terrainBlock struct {
	Solid          *bool    `hcl:"solid,optional"`
	WorldGenWeight *float64 `hcl:"world_gen_weight,optional"`
}

type itemBlock struct{}

// streamBlock is shared by visible_thing, thing and byte_stream.
type streamBlock struct {
	TypeIdentifier *string        `hcl:"type_identifier,optional"`
	Bytes          hcl.Expression `hcl:"bytes,optional"`
}

type visualBlock struct {
	Name           *string        `hcl:"name,optional"`
	Identifier     *string        `hcl:"identifier,optional"` // legacy, ignored
	CharacterLeft  *string        `hcl:"character_left,optional"`
	CharacterRight *string        `hcl:"character_right,optional"`
	TextColorLeft  hcl.Expression `hcl:"text_color_left,optional"`
	TextColorRight hcl.Expression `hcl:"text_color_right,optional"`
	BackColorLeft  hcl.Expression `hcl:"back_color_left,optional"`
	BackColorRight hcl.Expression `hcl:"back_color_right,optional"`
}
