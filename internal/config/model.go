package config

import (
	"sort"

	"github.com/specialistvlad/contentgrid/internal/content"
)

// Declaration is one parsed declaration with all of its optional category
// payloads. A nil pointer means the block or attribute was absent.
type Declaration struct {
	Source   *string
	Priority *uint8

	Tile         *TerrainDecl
	Ground       *TerrainDecl
	Item         *ItemDecl
	VisibleThing *StreamDecl
	Thing        *StreamDecl
	ByteStream   *StreamDecl
	VisualData   *VisualDecl
}

// TerrainDecl is the body of a tile or ground block.
type TerrainDecl struct {
	Solid          *bool
	WorldGenWeight *float64
}

// ItemDecl is the body of an item block.
type ItemDecl struct{}

// StreamDecl is the body of a visible_thing, thing or byte_stream block.
// A nil Bytes means the attribute was absent.
type StreamDecl struct {
	TypeIdentifier *string
	Bytes          []byte
}

// VisualDecl is the body of a visual_data block.
type VisualDecl struct {
	DisplayName    *string
	CharacterLeft  *rune
	CharacterRight *rune
	TextColorLeft  *content.RGB
	TextColorRight *content.RGB
	BackColorLeft  *content.RGB
	BackColorRight *content.RGB
}

// NamedDeclaration is a declaration together with its item name and the
// origin it was read from.
type NamedDeclaration struct {
	Name   string
	Origin string
	Decl   *Declaration
}

// ScriptDeclaration is a declaration supplied through the MergePoint.
type ScriptDeclaration struct {
	Module string
	NamedDeclaration
}

// Module is one top-level content source directory.
type Module struct {
	Name         string
	Declarations []NamedDeclaration
}

// Collection is every declaration grouped by module.
type Collection struct {
	modules map[string]*Module
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{modules: make(map[string]*Module)}
}

// Append adds a declaration to the named module, creating it if necessary.
func (c *Collection) Append(module string, d NamedDeclaration) {
	m, ok := c.modules[module]
	if !ok {
		m = &Module{Name: module}
		c.modules[module] = m
	}
	m.Declarations = append(m.Declarations, d)
}

// AddModule registers a module even if it ends up with no declarations.
func (c *Collection) AddModule(name string) {
	if _, ok := c.modules[name]; !ok {
		c.modules[name] = &Module{Name: name}
	}
}

// Merge appends script declarations to their modules. Items of one module
// are appended in name order so the result does not depend on table
// iteration order in the script host.
func (c *Collection) Merge(decls []ScriptDeclaration) {
	sorted := make([]ScriptDeclaration, len(decls))
	copy(sorted, decls)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Module != sorted[j].Module {
			return sorted[i].Module < sorted[j].Module
		}
		return sorted[i].Name < sorted[j].Name
	})
	for _, d := range sorted {
		c.Append(d.Module, d.NamedDeclaration)
	}
}

// Modules returns the modules in lexical name order.
func (c *Collection) Modules() []*Module {
	out := make([]*Module, 0, len(c.modules))
	for _, m := range c.modules {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Module returns the named module, or nil.
func (c *Collection) Module(name string) *Module {
	return c.modules[name]
}

// Len returns the total number of declarations.
func (c *Collection) Len() int {
	n := 0
	for _, m := range c.modules {
		n += len(m.Declarations)
	}
	return n
}
