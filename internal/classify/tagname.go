package classify

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/udisondev/gdbonus/internal/attr"
	"github.com/udisondev/gdbonus/internal/tags"
)

// coreAttributes are the character attributes with numbered tags
// (tagCharAttribute0<N>).
var coreAttributes = map[string]int{
	"Dexterity":    1,
	"Strength":     2,
	"Intelligence": 3,
	"Life":         4,
	"Mana":         5,
}

// TagName returns the localization tag for a generic attribute.
//
// A manual override wins. Otherwise the name is derived by StructuralTagName
// and, failing that, its plural form is tried. ok is false when no tag
// exists; err is set only when an override names a missing tag.
func (c *Classifier) TagName(key attr.Key) (tag string, ok bool, err error) {
	if c.overrides != nil {
		if tag, found := c.overrides.Lookup(key); found {
			if !c.tags.Has(tag) {
				return "", false, fmt.Errorf("%w: %s → %s", tags.ErrOverrideTagMissing, key, tag)
			}
			return tag, true, nil
		}
	}

	tag = StructuralTagName(key)
	if c.tags.Has(tag) {
		return tag, true, nil
	}
	if c.tags.Has(tag + "s") {
		return tag + "s", true, nil
	}
	return "", false, nil
}

// StructuralTagName derives a tag name from the attribute's fragments:
//
//	characterDexterity       → tagCharAttribute01
//	characterLifeRegen       → tagCharLifeRegen
//	defensiveSlowLifeLeach   → DefenseLifeLeach
//	defensiveFire            → DefenseFire
//	offensiveCritDamage      → OffensiveCritDamage
func StructuralTagName(key attr.Key) string {
	switch key.Prefix() {
	case "character":
		if n, ok := coreAttributes[key.At(1)]; ok && key.At(2) != "Regen" {
			return fmt.Sprintf("tagCharAttribute0%d", n) + key.JoinFrom(2)
		}
		return "tagChar" + key.JoinFrom(1)

	case "defensive":
		if key.At(1) == "Slow" && key.At(3) == "Leach" {
			return "Defense" + key.JoinFrom(2)
		}
		return "Defense" + key.JoinFrom(1)

	default:
		// Casers are stateful and must not be shared between goroutines.
		return cases.Title(language.Und).String(key.Prefix()) + key.JoinFrom(1)
	}
}
