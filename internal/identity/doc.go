/*
Package identity provides the canonical `source:name` key used to address a
content item independently of its category.

The source is the owning module (or an explicit override) and the name is
the declaration's base name, e.g. `core:stone`. The same key format is used
by the identifier maps of the registry and by the script bridge.
*/
package identity
