package testutil

import (
	"strings"
	"testing"

	"github.com/udisondev/gdbonus/internal/tags"
)

// Tags is a small localization table in engine format, enough to render
// every bonus variant for Fire, Cold, Physical and Bleeding.
var Tags = map[string]string{
	"DamageSingleFormat":     "{%.0f0}",
	"DamageRangeFormat":      "{%.0f0}-{%.0f1}",
	"DamageSingleFormatTime": " over {%.1f0} Seconds",

	"DamageFire":     "{^E}{%s0} Fire Damage",
	"DamageCold":     "{%s0} Cold Damage",
	"DamagePhysical": "{%s0} Physical Damage",

	"RetaliationFire":     "{%s0} Fire Retaliation",
	"RetaliationPhysical": "{%s0} Physical Retaliation",

	"DamageModifierFire":     "{%+.0f0}% Fire Damage",
	"DamageModifierCold":     "{%+.0f0}% Cold Damage",
	"DamageModifierPhysical": "{%+.0f0}% Physical Damage",

	"DamageFireResistanceReductionPercent": "{%.0f0}% Reduced target's Fire Resistance",
	"DamageFixedSingleFormatTime":          " for {%.1f0} Seconds",

	"DamageDurationBleeding":         " Bleeding Damage",
	"DamageDurationModifierBleeding": "{%+.0f0}% Bleeding Damage",
	"ImprovedTimeFormat":             " with +{%.0f0}% Improved Duration",

	"tagChanceOf":            "{%.0f0}% Chance of ",
	"tagPetBonusNameAllPets": "Bonus to All Pets",

	"tagCharAttribute01":         "{%+.0f0} Cunning",
	"tagCharAttribute02Modifier": "{%+.0f0}% Physique",
	"tagCharLifeRegen":           "{%+.1f0} Health Regenerated per second",
	"tagCharAttackSpeedModifier": "{%+.0f0}% Attack Speed",
	"tagTotalSpeed":              "{%+.0f0}% Total Speed",

	"DefenseFire":      "{%+.0f0}% Fire Resistance",
	"DefenseLifeLeach": "{%+.0f0}% Life Leech Resistance",

	"OffensiveCritDamageModifiers": "{%+.0f0}% Crit Damage",
}

// OverridesText is a manual override file matching Tags.
const OverridesText = "characterTotalSpeedModifier=tagTotalSpeed\n"

// Dictionary returns a tags.Dictionary built from Tags.
func Dictionary() *tags.Dictionary {
	return tags.NewDictionary(Tags)
}

// Overrides parses OverridesText against dict.
func Overrides(tb testing.TB, dict *tags.Dictionary) *tags.Overrides {
	tb.Helper()

	o, err := tags.ParseOverrides(strings.NewReader(OverridesText), dict)
	if err != nil {
		tb.Fatalf("parsing test overrides: %v", err)
	}
	return o
}
