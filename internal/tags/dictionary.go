// Package tags holds the localization tag dictionary, the manual override
// table and the positional display templates built from tag text.
package tags

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"

	"github.com/agnivade/levenshtein"
	"golang.org/x/crypto/blake2b"
)

// ErrUnknownTag is returned when a tag is absent from the dictionary.
var ErrUnknownTag = errors.New("unknown tag")

// Dictionary maps tag names to raw engine text.
// It is read-only after construction and safe for concurrent use.
type Dictionary struct {
	entries map[string]string
}

// NewDictionary copies entries into a new Dictionary.
func NewDictionary(entries map[string]string) *Dictionary {
	d := &Dictionary{entries: make(map[string]string, len(entries))}
	for k, v := range entries {
		d.entries[k] = v
	}
	return d
}

// Len returns the number of tags.
func (d *Dictionary) Len() int {
	return len(d.entries)
}

// Has reports whether tag exists.
func (d *Dictionary) Has(tag string) bool {
	_, ok := d.entries[tag]
	return ok
}

// Raw returns the unmodified engine text of tag.
func (d *Dictionary) Raw(tag string) (string, bool) {
	s, ok := d.entries[tag]
	return s, ok
}

// Resolve returns the normalized display template of tag.
func (d *Dictionary) Resolve(tag string) (Template, error) {
	s, ok := d.entries[tag]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownTag, tag)
	}
	return Normalize(s), nil
}

// Names returns all tag names in sorted order.
func (d *Dictionary) Names() []string {
	names := make([]string, 0, len(d.entries))
	for k := range d.entries {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Fingerprint returns a hex BLAKE2b-256 digest of the dictionary contents.
// Equal dictionaries always produce equal fingerprints.
func (d *Dictionary) Fingerprint() string {
	h, _ := blake2b.New256(nil) // nil key never fails
	for _, name := range d.Names() {
		h.Write([]byte(name))
		h.Write([]byte{0})
		h.Write([]byte(d.entries[name]))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Nearest returns up to limit tag names within maxDist edits of name,
// closest first, ties broken alphabetically.
func (d *Dictionary) Nearest(name string, maxDist, limit int) []string {
	type scored struct {
		tag  string
		dist int
	}

	var found []scored
	for tag := range d.entries {
		dist := levenshtein.ComputeDistance(name, tag)
		if dist > maxDist {
			continue
		}
		found = append(found, scored{tag: tag, dist: dist})
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].dist == found[j].dist {
			return found[i].tag < found[j].tag
		}
		return found[i].dist < found[j].dist
	})

	if len(found) > limit {
		found = found[:limit]
	}
	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.tag
	}
	return out
}
