package bonus

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/udisondev/gdbonus/internal/tags"
)

// ErrMissingInner is returned when a ChanceOf or Pets record has no inner bonus.
var ErrMissingInner = errors.New("missing inner bonus")

const (
	chanceOfTag = "tagChanceOf"
	allPetsTag  = "tagPetBonusNameAllPets"
)

// ChanceOf applies Inner with probability Prob percent.
type ChanceOf struct {
	Prob  float64
	Inner Bonus
}

func (b ChanceOf) Variant() string      { return VariantChanceOf }
func (b ChanceOf) Value() float64       { return b.Inner.Value() * b.Prob / 100 }
func (b ChanceOf) KindID() string       { return VariantChanceOf + "." + b.Inner.KindID() }
func (b ChanceOf) IsAggregatable() bool { return false }

func (b ChanceOf) DisplayArgs() []float64 {
	return append([]float64{b.Prob}, b.Inner.DisplayArgs()...)
}

func (b ChanceOf) DisplayFmt(src TemplateSource) (tags.Template, error) {
	prefix, err := src.Resolve(chanceOfTag)
	if err != nil {
		return "", err
	}
	inner, err := b.Inner.DisplayFmt(src)
	if err != nil {
		return "", err
	}
	return prefix.Concat(inner), nil
}

func (b ChanceOf) MergeWith(other Bonus) (Bonus, error) {
	return nil, mergeError(b, other)
}

type chanceOfJSON struct {
	Prob  float64  `json:"prob"`
	Bonus Envelope `json:"bonus"`
}

func (b ChanceOf) MarshalJSON() ([]byte, error) {
	return json.Marshal(chanceOfJSON{Prob: b.Prob, Bonus: Envelope{Bonus: b.Inner}})
}

func (b *ChanceOf) UnmarshalJSON(data []byte) error {
	var v chanceOfJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Bonus.Bonus == nil {
		return fmt.Errorf("%s: %w", VariantChanceOf, ErrMissingInner)
	}
	b.Prob = v.Prob
	b.Inner = v.Bonus.Bonus
	return nil
}

// Pets scopes Inner to all summoned allies instead of the character.
type Pets struct {
	Inner Bonus
}

func (b Pets) Variant() string        { return VariantPets }
func (b Pets) Value() float64         { return b.Inner.Value() }
func (b Pets) KindID() string         { return VariantPets + "." + b.Inner.KindID() }
func (b Pets) IsAggregatable() bool   { return false }
func (b Pets) DisplayArgs() []float64 { return b.Inner.DisplayArgs() }

func (b Pets) DisplayFmt(src TemplateSource) (tags.Template, error) {
	prefix, err := src.Resolve(allPetsTag)
	if err != nil {
		return "", err
	}
	inner, err := b.Inner.DisplayFmt(src)
	if err != nil {
		return "", err
	}
	return prefix.Concat(": ", inner), nil
}

// MergeWith merges the inner bonuses of two pet-scoped bonuses.
func (b Pets) MergeWith(other Bonus) (Bonus, error) {
	o, ok := other.(Pets)
	if !ok {
		return nil, mergeError(b, other)
	}
	inner, err := b.Inner.MergeWith(o.Inner)
	if err != nil {
		return nil, err
	}
	return Pets{Inner: inner}, nil
}

type petsJSON struct {
	Bonus Envelope `json:"bonus"`
}

func (b Pets) MarshalJSON() ([]byte, error) {
	return json.Marshal(petsJSON{Bonus: Envelope{Bonus: b.Inner}})
}

func (b *Pets) UnmarshalJSON(data []byte) error {
	var v petsJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Bonus.Bonus == nil {
		return fmt.Errorf("%s: %w", VariantPets, ErrMissingInner)
	}
	b.Inner = v.Bonus.Bonus
	return nil
}
