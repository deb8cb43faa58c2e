// Package pipeline classifies batches of skill records.
package pipeline

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/udisondev/gdbonus/internal/dbr"
)

const (
	recordExt    = ".dbr"
	petBonusSufx = "_petbonus"
)

// Skill holds the raw bonus attributes of one devotion skill.
type Skill struct {
	Name       string             `json:"name"`
	Bonuses    map[string]float64 `json:"bonuses"`
	PetBonuses map[string]float64 `json:"pet_bonuses,omitempty"`
}

// LoadSkills reads every <name>.dbr in dir together with its optional
// <name>_petbonus.dbr companion. Skills are returned sorted by name.
func LoadSkills(dir string) ([]Skill, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading records dir %s: %w", dir, err)
	}

	var skills []Skill
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != recordExt {
			continue
		}
		base := strings.TrimSuffix(name, recordExt)
		if strings.HasSuffix(base, petBonusSufx) {
			continue
		}

		skill, err := loadSkill(dir, base)
		if err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}

	sort.Slice(skills, func(i, j int) bool { return skills[i].Name < skills[j].Name })
	slog.Info("loaded skill records", "dir", dir, "skills", len(skills))
	return skills, nil
}

func loadSkill(dir, base string) (Skill, error) {
	rec, err := dbr.LoadFile(filepath.Join(dir, base+recordExt))
	if err != nil {
		return Skill{}, err
	}
	bonuses, err := rec.PassiveBonuses()
	if err != nil {
		return Skill{}, fmt.Errorf("skill %s: %w", base, err)
	}

	skill := Skill{Name: base, Bonuses: bonuses}

	petRec, err := dbr.LoadFile(filepath.Join(dir, base+petBonusSufx+recordExt))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return skill, nil
	case err != nil:
		return Skill{}, err
	}
	if skill.PetBonuses, err = petRec.PassiveBonuses(); err != nil {
		return Skill{}, fmt.Errorf("skill %s pet bonuses: %w", base, err)
	}
	return skill, nil
}
