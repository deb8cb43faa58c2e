// Package dbr reads game database records: text files of "key,value," lines.
package dbr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrDuplicateKey is returned when a record defines a key twice.
	ErrDuplicateKey = errors.New("duplicate record key")
	// ErrMalformedLine is returned for lines that are not "key,value,".
	ErrMalformedLine = errors.New("malformed record line")
)

// Record is one parsed database record.
type Record map[string]string

// bonusPrefixes select the attributes that carry bonuses.
var bonusPrefixes = []string{
	"retaliation",
	"offensive",
	"defensive",
	"character",
	"skill",
}

// nonBonusKeys share a bonus prefix but hold display data.
var nonBonusKeys = map[string]bool{
	"characterBaseAttackSpeedTag": true,
	"skillDisplayName":            true,
	"skillDownBitmapName":         true,
	"skillUpBitmapName":           true,
	"skillBaseDescription":        true,
}

// LoadFile parses the record at path.
func LoadFile(path string) (Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening record %s: %w", path, err)
	}
	defer f.Close()

	rec, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing record %s: %w", path, err)
	}
	return rec, nil
}

// Parse reads "key,value," lines. Blank lines are skipped.
func Parse(r io.Reader) (Record, error) {
	rec := make(Record)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 3 || fields[2] != "" || fields[0] == "" {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedLine, lineNo, line)
		}
		if _, dup := rec[fields[0]]; dup {
			return nil, fmt.Errorf("%w: line %d: %s", ErrDuplicateKey, lineNo, fields[0])
		}
		rec[fields[0]] = fields[1]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scanning record: %w", err)
	}

	return rec, nil
}

// Keys returns record keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PassiveBonuses returns the positive numeric bonus attributes of a passive
// skill record.
func (r Record) PassiveBonuses() (map[string]float64, error) {
	out := make(map[string]float64)
	for key, val := range r {
		if nonBonusKeys[key] || !hasBonusPrefix(key) {
			continue
		}

		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", key, err)
		}
		if v > 0 {
			out[key] = v
		}
	}
	return out, nil
}

func hasBonusPrefix(key string) bool {
	for _, p := range bonusPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}
