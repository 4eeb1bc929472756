package registry

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/contentgrid/internal/content"
)

// ErrSealed indicates an Add after the registry was handed out.
var ErrSealed = errors.New("registry: assembler is sealed")

// Assembler collects materialized records into a new Registry.
type Assembler struct {
	reg    *Registry
	sealed bool
}

// NewAssembler returns an assembler for an empty registry.
func NewAssembler() *Assembler {
	return &Assembler{reg: newRegistry()}
}

// Add inserts a record into its category table and identifier map. Records
// of one category must arrive in id order starting at 0.
func (a *Assembler) Add(rec content.Record) error {
	if a.sealed {
		return ErrSealed
	}
	switch r := rec.(type) {
	case content.TileType:
		return a.reg.tiles.insert(r)
	case content.GroundType:
		return a.reg.grounds.insert(r)
	case content.ItemType:
		return a.reg.items.insert(r)
	case content.VisibleThingType:
		return a.reg.visibleThings.insert(r)
	case content.ThingType:
		return a.reg.things.insert(r)
	case content.ByteStreamType:
		return a.reg.byteStreams.insert(r)
	default:
		return fmt.Errorf("%w: record type %T", ErrUnknownCategory, rec)
	}
}

// Registry seals the assembler and returns the finished registry.
func (a *Assembler) Registry() *Registry {
	a.sealed = true
	return a.reg
}
