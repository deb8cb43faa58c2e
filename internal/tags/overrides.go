package tags

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/udisondev/gdbonus/internal/attr"
)

// ErrOverrideTagMissing is returned when a manual override points at a tag
// that the dictionary does not contain.
var ErrOverrideTagMissing = errors.New("override tag not in dictionary")

// Overrides is the hand-curated attribute key → tag table for keys whose tag
// cannot be derived from the naming rules. Read-only after load.
type Overrides struct {
	byKey map[string]string
}

// LoadOverrides reads an override file, see ParseOverrides.
func LoadOverrides(path string, dict *Dictionary) (*Overrides, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening overrides %s: %w", path, err)
	}
	defer f.Close()

	o, err := ParseOverrides(f, dict)
	if err != nil {
		return nil, fmt.Errorf("loading overrides %s: %w", path, err)
	}

	slog.Info("loaded tag overrides", "path", path, "count", o.Len())
	return o, nil
}

// ParseOverrides reads "attributeKey=tagName" lines. Blank lines and lines
// starting with '#' are skipped. Every key must tokenize and every tag must
// exist in dict.
func ParseOverrides(r io.Reader, dict *Dictionary) (*Overrides, error) {
	o := &Overrides{byKey: make(map[string]string)}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, tag, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: expected key=tag, got %q", lineNo, line)
		}
		key, err := attr.Tokenize(strings.TrimSpace(name))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		tag = strings.TrimSpace(tag)
		if !dict.Has(tag) {
			return nil, fmt.Errorf("line %d: %w: %s", lineNo, ErrOverrideTagMissing, tag)
		}
		o.byKey[key.String()] = tag
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning overrides: %w", err)
	}

	return o, nil
}

// Lookup returns the override tag for key.
func (o *Overrides) Lookup(key attr.Key) (string, bool) {
	if o == nil {
		return "", false
	}
	tag, ok := o.byKey[key.String()]
	return tag, ok
}

// Len returns the number of overrides.
func (o *Overrides) Len() int {
	if o == nil {
		return 0
	}
	return len(o.byKey)
}
