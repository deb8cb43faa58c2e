package attr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"offensiveFireModifier", []string{"offensive", "Fire", "Modifier"}},
		{"characterDexterity", []string{"character", "Dexterity"}},
		{"offensiveSlowManaLeachDurationMin", []string{"offensive", "Slow", "Mana", "Leach", "Duration", "Min"}},
		{"defensiveSlowLifeLeach", []string{"defensive", "Slow", "Life", "Leach"}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			k, err := Tokenize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, k.Parts())
			assert.Equal(t, tt.raw, k.String(), "joining tokens must reproduce the raw name")
		})
	}
}

func TestTokenize_Malformed(t *testing.T) {
	for _, raw := range []string{
		"",
		"offensive",
		"OffensiveFire",
		"offensiveFIRE",
		"offensiveFire2h",
		"offensive_fire",
		"offensiveFireX",
	} {
		t.Run(raw, func(t *testing.T) {
			_, err := Tokenize(raw)
			require.ErrorIs(t, err, ErrMalformedKey)
		})
	}
}

func TestKey_Accessors(t *testing.T) {
	k := MustKey("characterStrengthModifier")

	assert.Equal(t, 3, k.Len())
	assert.Equal(t, "character", k.Prefix())
	assert.Equal(t, "Strength", k.At(1))
	assert.Equal(t, "", k.At(3))
	assert.Equal(t, "", k.At(-1))
	assert.Equal(t, "StrengthModifier", k.JoinFrom(1))
	assert.Equal(t, "", k.JoinFrom(5))

	parts := k.Parts()
	parts[0] = "mutated"
	assert.Equal(t, "character", k.Prefix(), "Parts must return a copy")

	assert.True(t, k.Equal(MustKey("characterStrengthModifier")))
	assert.False(t, k.Equal(MustKey("characterStrength")))
}

func TestMustKey_Panics(t *testing.T) {
	assert.Panics(t, func() { MustKey("notAKey1") })
}
