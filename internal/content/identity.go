// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package content

import (
	"fmt"

	"github.com/specialistvlad/contentgrid/internal/identity"
)

// Identity is the composite identity of a flattened entry.
type Identity struct {
	Source   string
	Priority uint8
	Category Category
	Name     string
}

// Ref is the (source, category, name) reference entries are resolved on.
type Ref struct {
	Category Category
	identity.Key
}

// Ref returns the resolution reference of the identity.
func (i Identity) Ref() Ref {
	return Ref{Category: i.Category, Key: identity.New(i.Source, i.Name)}
}

// Key returns the `source:name` key of the identity.
func (i Identity) Key() identity.Key {
	return identity.New(i.Source, i.Name)
}

// String renders the identity as "category source:name@priority".
func (i Identity) String() string {
	return fmt.Sprintf("%s %s@%d", i.Category, i.Key(), i.Priority)
}

// String renders the reference as "category source:name".
func (r Ref) String() string {
	return r.Category.String() + " " + r.Key.String()
}

// VisualKey returns the key a visual_data sibling is looked up by.
func (i Identity) VisualKey() identity.Key { return i.Key() }
