package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
)

// WriteJSON stores the classified skills of r at path.
func WriteJSON(path string, r *Report) error {
	data, err := json.MarshalIndent(r.Skills, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding skills: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadJSON loads skills written by WriteJSON.
func ReadJSON(path string) ([]SkillBonuses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var skills []SkillBonuses
	if err := json.Unmarshal(data, &skills); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return skills, nil
}
