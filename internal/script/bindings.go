package script

import (
	"fmt"
	"math"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/specialistvlad/contentgrid/internal/registry"
)

// gameInfoCategories names the GameInfo sub-tables.
var gameInfoCategories = []struct {
	name     string
	category content.Category
}{
	{"Tile", content.Tile},
	{"Ground", content.Ground},
	{"Item", content.Item},
	{"VisibleThing", content.VisibleThing},
	{"Thing", content.Thing},
	{"ByteStream", content.ByteStream},
}

// newState creates a Lua state with the standard libraries and the Core
// table installed. The global print is removed; scripts use Core.print.
func (b *Bridge) newState() *lua.State {
	l := lua.NewState()
	lua.OpenLibraries(l)

	l.PushNil()
	l.SetGlobal("print")

	l.NewTable() // Core

	l.PushGoFunction(b.print)
	l.SetField(-2, "print")

	l.PushGoFunction(b.reload)
	l.SetField(-2, "reload")

	l.NewTable()
	l.NewTable()
	l.SetField(-2, "PostDeserializationEvents")
	l.SetField(-2, "Events")

	l.NewTable()
	l.NewTable()
	l.SetField(-2, "GameData")
	l.SetField(-2, "InitializationInfo")

	l.NewTable() // GameInfo
	for _, c := range gameInfoCategories {
		l.NewTable()

		l.NewTable()
		l.PushGoFunction(b.identifierGetter(c.category))
		l.SetField(-2, "get")
		l.SetField(-2, "Identifiers")

		l.NewTable()
		l.PushGoFunction(b.typeGetter(c.category))
		l.SetField(-2, "get")
		l.SetField(-2, "Types")

		l.SetField(-2, c.name)
	}
	l.SetField(-2, "GameInfo")

	l.SetGlobal("Core")
	return l
}

func (b *Bridge) print(l *lua.State) int {
	n := l.Top()
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		parts = append(parts, fmt.Sprint(luaToGo(l, i)))
	}
	if b.logger != nil {
		b.logger.Info("Script: " + strings.Join(parts, " "))
	}
	return 0
}

// reload records a request that the owner serves after the chunk returns.
// A load is already in progress while scripts are collected, so calls made
// then are dropped.
func (b *Bridge) reload(l *lua.State) int {
	if b.collecting {
		if b.logger != nil {
			b.logger.Debug("Script bridge: Core.reload ignored during a load.")
		}
		return 0
	}
	b.reloadRequested = true
	return 0
}

func (b *Bridge) current() *registry.Registry {
	if b.view == nil {
		return nil
	}
	return b.view.Current()
}

// argIndex lets both `T.get(x)` and `T:get(x)` work.
func argIndex(l *lua.State) int {
	if l.IsTable(1) {
		return 2
	}
	return 1
}

func (b *Bridge) identifierGetter(cat content.Category) lua.Function {
	return func(l *lua.State) int {
		name := lua.CheckString(l, argIndex(l))
		reg := b.current()
		if reg == nil {
			l.PushNil()
			return 1
		}
		id, ok := reg.IDByName(cat, name)
		if !ok {
			l.PushNil()
			return 1
		}
		l.PushInteger(int(id))
		return 1
	}
}

func (b *Bridge) typeGetter(cat content.Category) lua.Function {
	return func(l *lua.State) int {
		raw := lua.CheckInteger(l, argIndex(l))
		reg := b.current()
		if reg == nil || raw < 0 || raw > math.MaxUint16 {
			l.PushNil()
			return 1
		}
		rec, err := reg.Get(cat, uint16(raw))
		if err != nil {
			l.PushNil()
			return 1
		}
		pushGo(l, recordToMap(rec))
		return 1
	}
}

// recordToMap flattens a record into the table shape scripts see.
func recordToMap(rec content.Record) map[string]any {
	m := map[string]any{
		"id":  int(rec.RecordID()),
		"key": rec.RecordKey().String(),
	}
	switch r := rec.(type) {
	case content.TileType:
		m["name"] = r.Name
		m["solid"] = r.Solid
		m["world_gen_weight"] = r.WorldGenWeight
		addDisplay(m, r.Display)
	case content.GroundType:
		m["name"] = r.Name
		m["solid"] = r.Solid
		m["world_gen_weight"] = r.WorldGenWeight
		addDisplay(m, r.Display)
	case content.ItemType:
		m["name"] = r.Name
		addDisplay(m, r.Display)
	case content.VisibleThingType:
		m["name"] = r.Name
		m["type_identifier"] = r.TypeIdentifier
		m["bytes"] = r.Bytes
		addDisplay(m, r.Display)
	case content.ThingType:
		m["name"] = r.Name
		m["type_identifier"] = r.TypeIdentifier
		m["bytes"] = r.Bytes
	case content.ByteStreamType:
		m["name"] = r.Name
		m["type_identifier"] = r.TypeIdentifier
		m["bytes"] = r.Bytes
	}
	return m
}

func addDisplay(m map[string]any, d content.Display) {
	m["character_left"] = string(d.Text.Left)
	m["character_right"] = string(d.Text.Right)
	colors := map[string]*content.RGB{
		"text_color_left":  d.Color.TextLeft,
		"text_color_right": d.Color.TextRight,
		"back_color_left":  d.Color.BackLeft,
		"back_color_right": d.Color.BackRight,
	}
	for field, c := range colors {
		if c != nil {
			m[field] = []any{int(c.R), int(c.G), int(c.B)}
		}
	}
}
