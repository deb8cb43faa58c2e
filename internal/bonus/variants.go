package bonus

import (
	"github.com/udisondev/gdbonus/internal/tags"
)

// MiscBonus is a scalar bound directly to a resolved tag.
type MiscBonus struct {
	Amount  float64 `json:"amount"`
	Kind    string  `json:"kind"`
	TagName string  `json:"tagname"`
}

func (b MiscBonus) Variant() string      { return VariantMisc }
func (b MiscBonus) Value() float64       { return b.Amount }
func (b MiscBonus) KindID() string       { return b.TagName }
func (b MiscBonus) IsAggregatable() bool { return true }
func (b MiscBonus) DisplayArgs() []float64 {
	return []float64{b.Amount}
}

func (b MiscBonus) DisplayFmt(src TemplateSource) (tags.Template, error) {
	return src.Resolve(b.TagName)
}

func (b MiscBonus) MergeWith(other Bonus) (Bonus, error) {
	o, ok := other.(MiscBonus)
	if !ok || o.KindID() != b.KindID() {
		return nil, mergeError(b, other)
	}
	b.Amount += o.Amount
	return b, nil
}

// DamageModifier is a percentage modifier to damage of one kind.
type DamageModifier struct {
	Amount float64 `json:"amount"`
	Kind   string  `json:"kind"`
}

func (b DamageModifier) Variant() string      { return VariantDamageModifier }
func (b DamageModifier) Value() float64       { return b.Amount }
func (b DamageModifier) KindID() string       { return kindID(VariantDamageModifier, b.Kind) }
func (b DamageModifier) IsAggregatable() bool { return true }
func (b DamageModifier) DisplayArgs() []float64 {
	return []float64{b.Amount}
}

func (b DamageModifier) DisplayFmt(src TemplateSource) (tags.Template, error) {
	return src.Resolve("DamageModifier" + b.Kind)
}

func (b DamageModifier) MergeWith(other Bonus) (Bonus, error) {
	o, ok := other.(DamageModifier)
	if !ok || o.Kind != b.Kind {
		return nil, mergeError(b, other)
	}
	b.Amount += o.Amount
	return b, nil
}

// ResistanceReduction lowers a resistance by Amount percent for Duration seconds.
type ResistanceReduction struct {
	Amount   float64 `json:"amount"`
	Duration float64 `json:"duration"`
	Kind     string  `json:"kind"`
}

func (b ResistanceReduction) Variant() string      { return VariantResistanceReduction }
func (b ResistanceReduction) Value() float64       { return b.Amount * b.Duration }
func (b ResistanceReduction) KindID() string       { return kindID(VariantResistanceReduction, b.Kind) }
func (b ResistanceReduction) IsAggregatable() bool { return false }
func (b ResistanceReduction) DisplayArgs() []float64 {
	return []float64{b.Amount, b.Duration}
}

func (b ResistanceReduction) DisplayFmt(src TemplateSource) (tags.Template, error) {
	return resolveConcat(src, "Damage"+b.Kind+"ResistanceReductionPercent", "DamageFixedSingleFormatTime")
}

func (b ResistanceReduction) MergeWith(other Bonus) (Bonus, error) {
	return nil, mergeError(b, other)
}

// DamageOverTime deals DPS per second for Duration seconds.
type DamageOverTime struct {
	DPS      float64 `json:"dps"`
	Duration float64 `json:"duration"`
	Kind     string  `json:"kind"`
}

func (b DamageOverTime) Variant() string      { return VariantDamageOverTime }
func (b DamageOverTime) Value() float64       { return b.DPS * b.Duration }
func (b DamageOverTime) KindID() string       { return kindID(VariantDamageOverTime, b.Kind) }
func (b DamageOverTime) IsAggregatable() bool { return false }

// DisplayArgs yields the total damage first, then the duration.
func (b DamageOverTime) DisplayArgs() []float64 {
	return []float64{b.DPS * b.Duration, b.Duration}
}

func (b DamageOverTime) DisplayFmt(src TemplateSource) (tags.Template, error) {
	return resolveConcat(src, "DamageSingleFormat", "DamageDuration"+b.Kind, "DamageSingleFormatTime")
}

func (b DamageOverTime) MergeWith(other Bonus) (Bonus, error) {
	return nil, mergeError(b, other)
}

// DamageOverTimeModifier raises damage and/or duration of an existing
// damage-over-time effect. An absent side is zero.
type DamageOverTimeModifier struct {
	DamageMod   float64 `json:"damage_mod"`
	DurationMod float64 `json:"duration_mod"`
	Kind        string  `json:"kind"`
}

func (b DamageOverTimeModifier) Variant() string      { return VariantDamageOverTimeModifier }
func (b DamageOverTimeModifier) Value() float64       { return b.DamageMod }
func (b DamageOverTimeModifier) KindID() string       { return kindID(VariantDamageOverTimeModifier, b.Kind) }
func (b DamageOverTimeModifier) IsAggregatable() bool { return true }

func (b DamageOverTimeModifier) DisplayArgs() []float64 {
	if b.DurationMod == 0 {
		return []float64{b.DamageMod}
	}
	return []float64{b.DamageMod, b.DurationMod}
}

func (b DamageOverTimeModifier) DisplayFmt(src TemplateSource) (tags.Template, error) {
	if b.DurationMod == 0 {
		return src.Resolve("DamageDurationModifier" + b.Kind)
	}
	return resolveConcat(src, "DamageDurationModifier"+b.Kind, "ImprovedTimeFormat")
}

func (b DamageOverTimeModifier) MergeWith(other Bonus) (Bonus, error) {
	o, ok := other.(DamageOverTimeModifier)
	if !ok || o.Kind != b.Kind {
		return nil, mergeError(b, other)
	}
	b.DamageMod += o.DamageMod
	b.DurationMod += o.DurationMod
	return b, nil
}
