package tags

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gdbonus/internal/attr"
)

func overrideDict() *Dictionary {
	return NewDictionary(map[string]string{
		"SkillCooldownReduction": "{%+.0f0}% Skill Cooldown Reduction",
		"tagTotalSpeed":          "{%+.0f0}% Total Speed",
	})
}

func TestParseOverrides(t *testing.T) {
	input := strings.Join([]string{
		"# manual bonus tags",
		"skillCooldownReduction=SkillCooldownReduction",
		"",
		"characterTotalSpeedModifier = tagTotalSpeed",
	}, "\n")

	o, err := ParseOverrides(strings.NewReader(input), overrideDict())
	require.NoError(t, err)
	assert.Equal(t, 2, o.Len())

	tag, ok := o.Lookup(attr.MustKey("characterTotalSpeedModifier"))
	require.True(t, ok)
	assert.Equal(t, "tagTotalSpeed", tag)

	_, ok = o.Lookup(attr.MustKey("characterRunSpeedModifier"))
	assert.False(t, ok)
}

func TestParseOverrides_MissingTag(t *testing.T) {
	_, err := ParseOverrides(strings.NewReader("skillCooldownReduction=NoSuchTag\n"), overrideDict())
	require.ErrorIs(t, err, ErrOverrideTagMissing)
}

func TestParseOverrides_MalformedKey(t *testing.T) {
	_, err := ParseOverrides(strings.NewReader("Skill_cooldown=tagTotalSpeed\n"), overrideDict())
	require.ErrorIs(t, err, attr.ErrMalformedKey)
}

func TestParseOverrides_MissingSeparator(t *testing.T) {
	_, err := ParseOverrides(strings.NewReader("skillCooldownReduction\n"), overrideDict())
	require.Error(t, err)
}

func TestOverrides_Nil(t *testing.T) {
	var o *Overrides
	_, ok := o.Lookup(attr.MustKey("skillCooldownReduction"))
	assert.False(t, ok)
	assert.Equal(t, 0, o.Len())
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manual_bonuses.txt")
	require.NoError(t, os.WriteFile(path, []byte("skillCooldownReduction=SkillCooldownReduction\n"), 0o644))

	o, err := LoadOverrides(path, overrideDict())
	require.NoError(t, err)
	assert.Equal(t, 1, o.Len())

	_, err = LoadOverrides(filepath.Join(dir, "missing.txt"), overrideDict())
	require.Error(t, err)
}
