// Package dump renders a human-readable registry report for the terminal.
// Glyphs are previewed in their declared colors when the output supports it.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/specialistvlad/contentgrid/internal/builder"
	"github.com/specialistvlad/contentgrid/internal/content"
	"github.com/specialistvlad/contentgrid/internal/registry"
)

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	id      lipgloss.Style
	dim     lipgloss.Style
	warn    lipgloss.Style
	glyph   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(lipgloss.Color("#7D56F4")).Padding(0, 1),
		section: r.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		id:      r.NewStyle().Width(6).Align(lipgloss.Right).Foreground(lipgloss.Color("240")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("240")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("208")),
		glyph:   r.NewStyle(),
	}
}

// Write renders reg and, when non-nil, the diagnostics of rep to w.
func Write(w io.Writer, reg *registry.Registry, rep *builder.Report) error {
	s := newStyles(lipgloss.NewRenderer(w))

	var b strings.Builder
	stats := reg.Stats()
	b.WriteString(s.title.Render(fmt.Sprintf("Content registry: %d records", stats.Total())))
	b.WriteString("\n")

	for _, cat := range content.RegisteredCategories {
		items := reg.Enumerate(cat)
		b.WriteString("\n")
		b.WriteString(s.section.Render(fmt.Sprintf("%s (%d)", cat, len(items))))
		b.WriteString("\n")
		for _, it := range items {
			b.WriteString(s.id.Render(fmt.Sprint(it.ID)))
			b.WriteString("  ")
			b.WriteString(line(s, it.Record))
			b.WriteString("\n")
		}
	}

	if rep != nil && len(rep.Diagnostics) > 0 {
		b.WriteString("\n")
		b.WriteString(s.section.Render(fmt.Sprintf("Excluded (%d)", len(rep.Diagnostics))))
		b.WriteString("\n")
		for _, d := range rep.Diagnostics {
			b.WriteString("  ")
			b.WriteString(s.warn.Render(string(d.Code)))
			b.WriteString(" ")
			b.WriteString(d.Ref.String())
			b.WriteString(" ")
			b.WriteString(s.dim.Render(d.Origin))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func line(s styles, rec content.Record) string {
	key := rec.RecordKey().String()
	switch r := rec.(type) {
	case content.TileType:
		return glyph(s, r.Display) + " " + key + terrain(s, r.Name, r.Solid, r.WorldGenWeight)
	case content.GroundType:
		return glyph(s, r.Display) + " " + key + terrain(s, r.Name, r.Solid, r.WorldGenWeight)
	case content.ItemType:
		return glyph(s, r.Display) + " " + key + named(s, r.Name)
	case content.VisibleThingType:
		return glyph(s, r.Display) + " " + key + s.dim.Render(" type="+r.TypeIdentifier)
	case content.ThingType:
		return "   " + key + s.dim.Render(" type="+r.TypeIdentifier)
	case content.ByteStreamType:
		return "   " + key + s.dim.Render(fmt.Sprintf(" %d bytes", len(r.Bytes)))
	default:
		return key
	}
}

func named(s styles, name string) string {
	if name == "" {
		return ""
	}
	return s.dim.Render(fmt.Sprintf(" %q", name))
}

func terrain(s styles, name string, solid bool, weight float64) string {
	out := named(s, name)
	if solid {
		out += s.dim.Render(" solid")
	}
	if weight > 0 {
		out += s.dim.Render(fmt.Sprintf(" weight=%.2f", weight))
	}
	return out
}

// glyph previews the two characters of a display in their own colors.
func glyph(s styles, d content.Display) string {
	return half(s.glyph, d.Text.Left, d.Color.TextLeft, d.Color.BackLeft) +
		half(s.glyph, d.Text.Right, d.Color.TextRight, d.Color.BackRight)
}

func half(base lipgloss.Style, ch rune, fg, bg *content.RGB) string {
	style := base
	if fg != nil {
		style = style.Foreground(lipgloss.Color(fg.Hex()))
	}
	if bg != nil {
		style = style.Background(lipgloss.Color(bg.Hex()))
	}
	return style.Render(string(ch))
}
