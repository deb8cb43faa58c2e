package bonus

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Persisted record layout: {"__type__": "<variant>", "data": {...}}.
const (
	TypeField = "__type__"
	DataField = "data"
)

var (
	// ErrDuplicateDiscriminator is returned when two variants register
	// under the same name.
	ErrDuplicateDiscriminator = errors.New("duplicate discriminator")
	// ErrUnknownDiscriminator is returned when decoding a record whose
	// discriminator is not registered.
	ErrUnknownDiscriminator = errors.New("unknown discriminator")
)

// Registration binds a discriminator to the decoder of one variant.
type Registration struct {
	Name   string
	Decode func(data json.RawMessage) (Bonus, error)
}

// Registry maps discriminators to decoders.
type Registry struct {
	decoders map[string]func(json.RawMessage) (Bonus, error)
	names    []string
}

// NewRegistry builds a registry, rejecting duplicate names.
func NewRegistry(regs ...Registration) (*Registry, error) {
	r := &Registry{decoders: make(map[string]func(json.RawMessage) (Bonus, error), len(regs))}
	for _, reg := range regs {
		if _, dup := r.decoders[reg.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDiscriminator, reg.Name)
		}
		r.decoders[reg.Name] = reg.Decode
		r.names = append(r.names, reg.Name)
	}
	return r, nil
}

// Names returns discriminators in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Decode rebuilds a bonus from its discriminator and data.
func (r *Registry) Decode(name string, data json.RawMessage) (Bonus, error) {
	dec, ok := r.decoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDiscriminator, name)
	}
	b, err := dec(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return b, nil
}

func decodeAs[T Bonus](data json.RawMessage) (Bonus, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Variants is the fixed registration table of all bonus variants.
var Variants = []Registration{
	{Name: VariantMisc, Decode: decodeAs[MiscBonus]},
	{Name: VariantDamageModifier, Decode: decodeAs[DamageModifier]},
	{Name: VariantDamage, Decode: decodeAs[Damage]},
	{Name: VariantRetaliation, Decode: decodeAs[Retaliation]},
	{Name: VariantResistanceReduction, Decode: decodeAs[ResistanceReduction]},
	{Name: VariantDamageOverTime, Decode: decodeAs[DamageOverTime]},
	{Name: VariantDamageOverTimeModifier, Decode: decodeAs[DamageOverTimeModifier]},
	{Name: VariantChanceOf, Decode: decodeAs[ChanceOf]},
	{Name: VariantPets, Decode: decodeAs[Pets]},
}

var registry = mustRegistry(Variants...)

func mustRegistry(regs ...Registration) *Registry {
	r, err := NewRegistry(regs...)
	if err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the registry built from Variants.
func DefaultRegistry() *Registry {
	return registry
}

type record struct {
	Type string          `json:"__type__"`
	Data json.RawMessage `json:"data"`
}

// Envelope carries a Bonus through JSON as a tagged record.
type Envelope struct {
	Bonus Bonus
}

func (e Envelope) MarshalJSON() ([]byte, error) {
	if e.Bonus == nil {
		return []byte("null"), nil
	}
	data, err := json.Marshal(e.Bonus)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", e.Bonus.Variant(), err)
	}
	return json.Marshal(record{Type: e.Bonus.Variant(), Data: data})
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		e.Bonus = nil
		return nil
	}
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	b, err := registry.Decode(rec.Type, rec.Data)
	if err != nil {
		return err
	}
	e.Bonus = b
	return nil
}

// List is a bonus slice persisted as an array of tagged records.
type List []Bonus

func (l List) MarshalJSON() ([]byte, error) {
	envs := make([]Envelope, len(l))
	for i, b := range l {
		envs[i] = Envelope{Bonus: b}
	}
	return json.Marshal(envs)
}

func (l *List) UnmarshalJSON(data []byte) error {
	var envs []Envelope
	if err := json.Unmarshal(data, &envs); err != nil {
		return err
	}
	out := make(List, len(envs))
	for i, e := range envs {
		out[i] = e.Bonus
	}
	*l = out
	return nil
}

// Marshal encodes one bonus as a tagged record.
func Marshal(b Bonus) ([]byte, error) {
	return json.Marshal(Envelope{Bonus: b})
}

// Unmarshal decodes one tagged record.
func Unmarshal(data []byte) (Bonus, error) {
	var e Envelope
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return e.Bonus, nil
}
