// Package attr splits raw record attribute names into token keys.
//
// Attribute names in devotion records are camelCase: one lowercase run
// followed by one or more capitalized words, e.g. offensiveFireModifier →
// (offensive, Fire, Modifier). Keys are the lookup space of the classifier
// and of the manual override table.
package attr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrMalformedKey is returned when an attribute name does not follow the
// lowercase-prefix + Capitalized-words pattern.
var ErrMalformedKey = errors.New("malformed attribute key")

var (
	keyPattern  = regexp.MustCompile(`^([a-z]+)(?:[A-Z][a-z]+)+$`)
	wordPattern = regexp.MustCompile(`[A-Z][a-z]+`)
)

// Key is an ordered, immutable sequence of name fragments.
// The zero Key has no parts.
type Key struct {
	parts []string
}

// Tokenize splits raw into its lowercase prefix and capitalized words.
func Tokenize(raw string) (Key, error) {
	m := keyPattern.FindStringSubmatch(raw)
	if m == nil {
		return Key{}, fmt.Errorf("%w: %q", ErrMalformedKey, raw)
	}

	prefix := m[1]
	words := wordPattern.FindAllString(raw[len(prefix):], -1)

	parts := make([]string, 0, len(words)+1)
	parts = append(parts, prefix)
	parts = append(parts, words...)
	return Key{parts: parts}, nil
}

// MustKey is Tokenize for names known at compile time. Panics on malformed input.
func MustKey(raw string) Key {
	k, err := Tokenize(raw)
	if err != nil {
		panic(err)
	}
	return k
}

// Len returns the number of fragments.
func (k Key) Len() int {
	return len(k.parts)
}

// At returns the i-th fragment, or "" when i is out of range.
func (k Key) At(i int) string {
	if i < 0 || i >= len(k.parts) {
		return ""
	}
	return k.parts[i]
}

// Prefix returns the lowercase leading fragment.
func (k Key) Prefix() string {
	return k.At(0)
}

// Parts returns a copy of all fragments.
func (k Key) Parts() []string {
	out := make([]string, len(k.parts))
	copy(out, k.parts)
	return out
}

// JoinFrom concatenates fragments starting at index from.
func (k Key) JoinFrom(from int) string {
	if from >= len(k.parts) {
		return ""
	}
	return strings.Join(k.parts[from:], "")
}

// String reproduces the raw attribute name.
func (k Key) String() string {
	return strings.Join(k.parts, "")
}

// Equal reports whether both keys hold the same fragments.
func (k Key) Equal(other Key) bool {
	if len(k.parts) != len(other.parts) {
		return false
	}
	for i := range k.parts {
		if k.parts[i] != other.parts[i] {
			return false
		}
	}
	return true
}
