package dbr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passiveRecord = `templateName,database/templates/skill_passive.tpl,
Class,Skill_Passive,
FileDescription,Ulzuin's Torch,
skillDisplayName,tagDevotionSkillA01,
skillBaseDescription,tagDevotionSkillDescA01,
skillUpBitmapName,ui/skills/up.tex,
characterBaseAttackSpeedTag,CharacterAttackSpeedFast,
offensiveFireMin,12.000000,
offensiveFireMax,18.000000,
offensiveFireModifier,15.000000,
offensiveColdModifier,0.000000,
characterDexterity,10,
skillCooldownReduction,-3,
Axe,1,
`

func TestParse(t *testing.T) {
	rec, err := Parse(strings.NewReader(passiveRecord))
	require.NoError(t, err)

	assert.Equal(t, "Skill_Passive", rec["Class"])
	assert.Equal(t, "Ulzuin's Torch", rec["FileDescription"])
	assert.Len(t, rec, 14)
	assert.Equal(t, "Axe", rec.Keys()[0])
}

func TestParse_DuplicateKey(t *testing.T) {
	_, err := Parse(strings.NewReader("offensiveFireMin,1,\noffensiveFireMin,2,\n"))
	require.ErrorIs(t, err, ErrDuplicateKey)
}

func TestParse_MalformedLine(t *testing.T) {
	for _, line := range []string{
		"offensiveFireMin,1",
		"offensiveFireMin,1,extra",
		"offensiveFireMin,1,,",
		",1,",
	} {
		t.Run(line, func(t *testing.T) {
			_, err := Parse(strings.NewReader(line + "\n"))
			require.ErrorIs(t, err, ErrMalformedLine)
		})
	}
}

func TestPassiveBonuses(t *testing.T) {
	rec, err := Parse(strings.NewReader(passiveRecord))
	require.NoError(t, err)

	got, err := rec.PassiveBonuses()
	require.NoError(t, err)

	assert.Equal(t, map[string]float64{
		"offensiveFireMin":      12,
		"offensiveFireMax":      18,
		"offensiveFireModifier": 15,
		"characterDexterity":    10,
	}, got)
}

func TestPassiveBonuses_NotNumeric(t *testing.T) {
	rec := Record{"offensiveFireMin": "high"}

	_, err := rec.PassiveBonuses()
	require.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "star_a01.dbr")
	require.NoError(t, os.WriteFile(path, []byte(passiveRecord), 0o644))

	rec, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "15.000000", rec["offensiveFireModifier"])

	_, err = LoadFile(filepath.Join(dir, "missing.dbr"))
	require.Error(t, err)
}
