package bonus

import (
	"github.com/udisondev/gdbonus/internal/tags"
)

// Damage is flat damage of one kind, optionally a Min–Max range.
type Damage struct {
	Min  float64  `json:"min_val"`
	Kind string   `json:"kind"`
	Max  *float64 `json:"max_val"`
}

// NewDamage returns single-value damage.
func NewDamage(minVal float64, kind string) Damage {
	return Damage{Min: minVal, Kind: kind}
}

// NewDamageRange returns min–max damage.
func NewDamageRange(minVal, maxVal float64, kind string) Damage {
	return Damage{Min: minVal, Kind: kind, Max: &maxVal}
}

func (b Damage) Variant() string        { return VariantDamage }
func (b Damage) IsRange() bool          { return b.Max != nil }
func (b Damage) Value() float64         { return rangeValue(b.Min, b.Max) }
func (b Damage) KindID() string         { return kindID(VariantDamage, b.Kind) }
func (b Damage) IsAggregatable() bool   { return !b.IsRange() }
func (b Damage) DisplayArgs() []float64 { return rangeArgs(b.Min, b.Max) }

func (b Damage) DisplayFmt(src TemplateSource) (tags.Template, error) {
	return rangeFmt(src, "Damage"+b.Kind, b.IsRange())
}

func (b Damage) MergeWith(other Bonus) (Bonus, error) {
	o, ok := other.(Damage)
	if !ok || o.Kind != b.Kind || b.IsRange() || o.IsRange() {
		return nil, mergeError(b, other)
	}
	b.Min += o.Min
	return b, nil
}

// Retaliation has the shape of Damage but is dealt back to attackers.
type Retaliation struct {
	Min  float64  `json:"min_val"`
	Kind string   `json:"kind"`
	Max  *float64 `json:"max_val"`
}

// NewRetaliation returns single-value retaliation.
func NewRetaliation(minVal float64, kind string) Retaliation {
	return Retaliation{Min: minVal, Kind: kind}
}

// NewRetaliationRange returns min–max retaliation.
func NewRetaliationRange(minVal, maxVal float64, kind string) Retaliation {
	return Retaliation{Min: minVal, Kind: kind, Max: &maxVal}
}

func (b Retaliation) Variant() string        { return VariantRetaliation }
func (b Retaliation) IsRange() bool          { return b.Max != nil }
func (b Retaliation) Value() float64         { return rangeValue(b.Min, b.Max) }
func (b Retaliation) KindID() string         { return kindID(VariantRetaliation, b.Kind) }
func (b Retaliation) IsAggregatable() bool   { return !b.IsRange() }
func (b Retaliation) DisplayArgs() []float64 { return rangeArgs(b.Min, b.Max) }

func (b Retaliation) DisplayFmt(src TemplateSource) (tags.Template, error) {
	return rangeFmt(src, "Retaliation"+b.Kind, b.IsRange())
}

func (b Retaliation) MergeWith(other Bonus) (Bonus, error) {
	o, ok := other.(Retaliation)
	if !ok || o.Kind != b.Kind || b.IsRange() || o.IsRange() {
		return nil, mergeError(b, other)
	}
	b.Min += o.Min
	return b, nil
}

func rangeValue(minVal float64, maxVal *float64) float64 {
	if maxVal == nil {
		return minVal
	}
	return (minVal + *maxVal) / 2
}

func rangeArgs(minVal float64, maxVal *float64) []float64 {
	if maxVal == nil {
		return []float64{minVal}
	}
	return []float64{minVal, *maxVal}
}

// rangeFmt embeds the single or range number format into the kind's tag.
func rangeFmt(src TemplateSource, kindTag string, isRange bool) (tags.Template, error) {
	outer, err := src.Resolve(kindTag)
	if err != nil {
		return "", err
	}

	numberTag := "DamageSingleFormat"
	if isRange {
		numberTag = "DamageRangeFormat"
	}
	inner, err := src.Resolve(numberTag)
	if err != nil {
		return "", err
	}

	return outer.Embed(inner), nil
}
