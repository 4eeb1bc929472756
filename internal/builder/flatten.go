package builder

import (
	"github.com/specialistvlad/contentgrid/internal/config"
	"github.com/specialistvlad/contentgrid/internal/content"
)

// Flatten explodes every declaration into one entry per category block.
// Modules are visited in name order, declarations in collection order and
// blocks in category order, which makes the output deterministic.
func Flatten(col *config.Collection) []content.Entry {
	var out []content.Entry
	for _, m := range col.Modules() {
		for _, nd := range m.Declarations {
			out = appendDeclaration(out, m.Name, nd)
		}
	}
	return out
}

func appendDeclaration(out []content.Entry, module string, nd config.NamedDeclaration) []content.Entry {
	d := nd.Decl
	if d == nil {
		return out
	}

	source := module
	if d.Source != nil {
		source = *d.Source
	}
	var priority uint8
	if d.Priority != nil {
		priority = *d.Priority
	}

	emit := func(p content.Payload) {
		out = append(out, content.Entry{
			Identity: content.Identity{
				Source:   source,
				Priority: priority,
				Category: p.Category(),
				Name:     nd.Name,
			},
			Payload: p,
			Origin:  nd.Origin,
		})
	}

	if d.Tile != nil {
		emit(content.TilePayload{Solid: d.Tile.Solid, WorldGenWeight: d.Tile.WorldGenWeight})
	}
	if d.Ground != nil {
		emit(content.GroundPayload{Solid: d.Ground.Solid, WorldGenWeight: d.Ground.WorldGenWeight})
	}
	if d.Item != nil {
		emit(content.ItemPayload{})
	}
	if d.VisibleThing != nil {
		emit(content.VisibleThingPayload{TypeIdentifier: d.VisibleThing.TypeIdentifier, Bytes: d.VisibleThing.Bytes})
	}
	if d.Thing != nil {
		emit(content.ThingPayload{TypeIdentifier: d.Thing.TypeIdentifier, Bytes: d.Thing.Bytes})
	}
	if d.ByteStream != nil {
		emit(content.ByteStreamPayload{TypeIdentifier: d.ByteStream.TypeIdentifier, Bytes: d.ByteStream.Bytes})
	}
	if v := d.VisualData; v != nil {
		emit(content.VisualPayload{
			DisplayName:    v.DisplayName,
			CharacterLeft:  v.CharacterLeft,
			CharacterRight: v.CharacterRight,
			TextColorLeft:  v.TextColorLeft,
			TextColorRight: v.TextColorRight,
			BackColorLeft:  v.BackColorLeft,
			BackColorRight: v.BackColorRight,
		})
	}
	return out
}
