// Package bonus models classified devotion bonuses: the closed set of bonus
// variants, their display templates, aggregation of same-kind bonuses and
// the tagged JSON records they are persisted as.
package bonus

import (
	"errors"
	"fmt"

	"github.com/udisondev/gdbonus/internal/tags"
)

// ErrNotMergeable is returned by MergeWith for bonuses that cannot be summed.
var ErrNotMergeable = errors.New("bonuses are not mergeable")

// Variant names. They double as persistence discriminators and as the
// prefix of KindID for simple variants.
const (
	VariantMisc                   = "MiscBonus"
	VariantDamageModifier         = "DamageModifier"
	VariantDamage                 = "Damage"
	VariantRetaliation            = "Retaliation"
	VariantResistanceReduction    = "ResistanceReduction"
	VariantDamageOverTime         = "DamageOverTime"
	VariantDamageOverTimeModifier = "DamageOverTimeModifier"
	VariantChanceOf               = "ChanceOf"
	VariantPets                   = "Pets"
)

// TemplateSource resolves tag names to display templates.
type TemplateSource interface {
	Resolve(tag string) (tags.Template, error)
}

// Bonus is one classified game effect.
type Bonus interface {
	// Variant returns the variant name.
	Variant() string
	// Value returns a single magnitude used for sorting and comparisons.
	Value() float64
	// KindID is the merge identity.
	KindID() string
	// IsAggregatable reports whether same-KindID bonuses may be summed.
	IsAggregatable() bool
	// DisplayFmt builds the display template; DisplayArgs fills it in order.
	DisplayFmt(src TemplateSource) (tags.Template, error)
	DisplayArgs() []float64
	// MergeWith returns the sum of the receiver and other.
	MergeWith(other Bonus) (Bonus, error)
}

func kindID(variant, kind string) string {
	return variant + "." + kind
}

// resolveConcat resolves each tag and joins the templates in order.
func resolveConcat(src TemplateSource, names ...string) (tags.Template, error) {
	var out tags.Template
	for _, name := range names {
		t, err := src.Resolve(name)
		if err != nil {
			return "", err
		}
		out = out.Concat(t)
	}
	return out, nil
}

func mergeError(a, b Bonus) error {
	return fmt.Errorf("%w: %s and %s", ErrNotMergeable, a.KindID(), b.KindID())
}
