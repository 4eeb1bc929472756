package identity

import (
	"fmt"
	"strings"
	"unicode"
)

// isValidPart rejects parts that cannot round-trip through the canonical form.
func isValidPart(part string) bool {
	if part == "" || part == "." || part == ".." {
		return false
	}
	return strings.IndexFunc(part, unicode.IsSpace) == -1
}

// Parse creates a Key from its canonical `source:name` representation. The
// source ends at the first separator; the name may contain further separators.
func Parse(raw string) (Key, error) {
	if raw == "" {
		return Key{}, fmt.Errorf("identifier cannot be empty")
	}

	source, name, found := strings.Cut(raw, Separator)
	if !found {
		return Key{}, fmt.Errorf("identifier %q is missing the %q separator", raw, Separator)
	}
	if !isValidPart(source) {
		return Key{}, fmt.Errorf("invalid source in identifier %q", raw)
	}
	if !isValidPart(name) {
		return Key{}, fmt.Errorf("invalid name in identifier %q", raw)
	}

	return Key{Source: source, Name: name}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(raw string) Key {
	k, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return k
}
