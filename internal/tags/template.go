package tags

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrTemplateArity is returned when a template has more placeholders than
// the caller supplied arguments.
var ErrTemplateArity = errors.New("not enough template arguments")

const placeholder = "{}"

var (
	// {^E} / {^H}: easy/hard difficulty only text markers.
	difficultyMarker = regexp.MustCompile(`\{\^[EH]\}`)
	namedPlaceholder = regexp.MustCompile(`\{[^{}]+\}`)
)

// Template is a display string with positional "{}" placeholders.
// Any other brace is literal text.
type Template string

// Normalize converts a raw engine string into a positional Template.
// Difficulty markers are dropped, every non-empty {...} collapses to {},
// then every "{" not immediately followed by "}" is removed.
func Normalize(raw string) Template {
	s := difficultyMarker.ReplaceAllString(raw, "")
	s = namedPlaceholder.ReplaceAllString(s, placeholder)
	return Template(dropStrayBraces(s))
}

// dropStrayBraces removes each "{" whose next byte exists and is not "}".
// A trailing "{" is kept.
func dropStrayBraces(s string) string {
	if !strings.Contains(s, "{") {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '{' && i+1 < len(s) && s[i+1] != '}' {
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// Arity returns the number of positional placeholders.
func (t Template) Arity() int {
	return strings.Count(string(t), placeholder)
}

// Format substitutes args in order. Surplus arguments are ignored.
func (t Template) Format(args ...string) (string, error) {
	var b strings.Builder
	s := string(t)
	next := 0

	for {
		idx := strings.Index(s, placeholder)
		if idx < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		if next >= len(args) {
			return "", fmt.Errorf("%w: %q has more than %d placeholders", ErrTemplateArity, string(t), len(args))
		}
		b.WriteString(s[:idx])
		b.WriteString(args[next])
		next++
		s = s[idx+len(placeholder):]
	}
}

// Embed substitutes inner into the first placeholder of t.
// Without a placeholder t is returned unchanged.
func (t Template) Embed(inner Template) Template {
	return Template(strings.Replace(string(t), placeholder, string(inner), 1))
}

// Concat appends templates to t.
func (t Template) Concat(more ...Template) Template {
	var b strings.Builder
	b.WriteString(string(t))
	for _, m := range more {
		b.WriteString(string(m))
	}
	return Template(b.String())
}
