package tags

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// tagLine matches "tagName=text" lines of the engine's text_<lang> files.
var tagLine = regexp.MustCompile(`^([a-zA-Z0-9_]+)=(.+)$`)

// LoadJSON reads a flat {"tag": "text"} object.
func LoadJSON(path string) (*Dictionary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tags %s: %w", path, err)
	}

	var entries map[string]string
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing tags %s: %w", path, err)
	}

	slog.Info("loaded tags", "path", path, "count", len(entries))
	return NewDictionary(entries), nil
}

// LoadText walks dir for *.txt tag files in lexical order.
// Placeholder values ("?" or empty) are skipped, later files win on duplicates.
func LoadText(dir string) (*Dictionary, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("stat tags dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("tags dir is not a directory: %s", dir)
	}

	entries := make(map[string]string)
	var st textStats

	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".txt") {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		defer f.Close()

		if err := readTagLines(f, entries, &st); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		st.files++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking tags dir: %w", err)
	}

	slog.Info("extracted tags",
		"dir", dir,
		"files", st.files,
		"unique", len(entries),
		"ignored", st.ignored,
		"duplicate", st.total-len(entries)-st.ignored,
		"total", st.total)
	return NewDictionary(entries), nil
}

type textStats struct {
	files   int
	total   int
	ignored int
}

func readTagLines(r io.Reader, dst map[string]string, st *textStats) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		m := tagLine.FindStringSubmatch(strings.TrimSpace(sc.Text()))
		if m == nil {
			continue
		}
		st.total++
		if m[2] == "?" {
			st.ignored++
			continue
		}
		dst[m[1]] = m[2]
	}
	return sc.Err()
}
