package identity

import "strings"

// Separator joins source and name in the canonical form.
const Separator = ":"

// Key identifies a content item by its source and name.
type Key struct {
	Source string
	Name   string
}

// New returns a key for the given source and name.
func New(source, name string) Key {
	return Key{Source: source, Name: name}
}

// String serializes the key into its canonical `source:name` form.
func (k Key) String() string {
	if k.IsZero() {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(k.Source) + len(Separator) + len(k.Name))
	sb.WriteString(k.Source)
	sb.WriteString(Separator)
	sb.WriteString(k.Name)
	return sb.String()
}

// IsZero reports whether both parts of the key are empty.
func (k Key) IsZero() bool { return k.Source == "" && k.Name == "" }

// Less orders keys by source, then name.
func (k Key) Less(other Key) bool {
	if k.Source != other.Source {
		return k.Source < other.Source
	}
	return k.Name < other.Name
}
