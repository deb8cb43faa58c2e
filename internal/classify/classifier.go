// Package classify turns a skill's raw record attributes into typed bonuses.
package classify

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/udisondev/gdbonus/internal/attr"
	"github.com/udisondev/gdbonus/internal/bonus"
)

// ErrIncompleteKeyGroup is returned when an attribute group is missing a
// required sibling, e.g. a Max without its Min. It signals malformed source
// data.
var ErrIncompleteKeyGroup = errors.New("incomplete key group")

// DamageTypes are the damage categories every stage scans, in scan order.
var DamageTypes = []string{
	"Lightning",
	"Life",
	"Cold",
	"Chaos",
	"Fire",
	"Aether",
	"Pierce",
	"Bleeding",
	"Poison",
	"Physical",
	"ManaLeach",
	"LifeLeech",
	"Elemental",
}

// TagSet reports which tags exist.
type TagSet interface {
	Has(tag string) bool
}

// OverrideTable maps attribute keys to hand-picked tags.
type OverrideTable interface {
	Lookup(key attr.Key) (string, bool)
}

// Result is the outcome of classifying one attribute map.
type Result struct {
	Bonuses []bonus.Bonus
	// Unhandled holds attributes no stage recognized.
	Unhandled map[string]float64
}

// Classifier is safe for concurrent use: it only reads its tag set and
// override table.
type Classifier struct {
	tags        TagSet
	overrides   OverrideTable
	damageTypes []string
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithDamageTypes replaces the scanned damage categories.
func WithDamageTypes(types ...string) Option {
	return func(c *Classifier) {
		c.damageTypes = types
	}
}

// New returns a Classifier. overrides may be nil.
func New(tagSet TagSet, overrides OverrideTable, opts ...Option) *Classifier {
	c := &Classifier{
		tags:        tagSet,
		overrides:   overrides,
		damageTypes: DamageTypes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify recognizes bonuses in raw. raw itself is not modified.
//
// Stages run in a fixed order and each consumes the attributes it
// recognizes: damage over time, flat damage, retaliation, resistance
// reduction, then the generic tag lookup for everything left.
func (c *Classifier) Classify(raw map[string]float64) (Result, error) {
	attrs, err := newAttributes(raw)
	if err != nil {
		return Result{}, err
	}

	var out []bonus.Bonus
	stages := []struct {
		name string
		run  func(*attributes) ([]bonus.Bonus, error)
	}{
		{"damage over time", c.damageOverTime},
		{"flat damage", c.flatDamage},
		{"retaliation", c.retaliation},
		{"resistance reduction", c.resistanceReduction},
		{"misc", c.misc},
	}
	for _, st := range stages {
		found, err := st.run(attrs)
		if err != nil {
			return Result{}, fmt.Errorf("%s stage: %w", st.name, err)
		}
		out = append(out, found...)
	}

	return Result{Bonuses: out, Unhandled: attrs.remaining()}, nil
}

// ClassifySkill classifies a skill's own bonuses and its pet bonuses.
// Pet results are wrapped in bonus.Pets and follow the skill's own.
func (c *Classifier) ClassifySkill(bonuses, petBonuses map[string]float64) (Result, error) {
	res, err := c.Classify(bonuses)
	if err != nil {
		return Result{}, err
	}
	if len(petBonuses) == 0 {
		return res, nil
	}

	pets, err := c.Classify(petBonuses)
	if err != nil {
		return Result{}, fmt.Errorf("pet bonuses: %w", err)
	}
	for _, b := range pets.Bonuses {
		res.Bonuses = append(res.Bonuses, bonus.Pets{Inner: b})
	}
	for k, v := range pets.Unhandled {
		res.Unhandled[k] = v
	}
	return res, nil
}

func (c *Classifier) damageOverTime(a *attributes) ([]bonus.Bonus, error) {
	var out []bonus.Bonus
	for _, ty := range c.damageTypes {
		base := "offensiveSlow" + ty

		if dps, ok := a.take(base + "Min"); ok {
			duration, err := a.require(base+"DurationMin", base+"Min")
			if err != nil {
				return nil, err
			}
			var b bonus.Bonus = bonus.DamageOverTime{DPS: dps, Duration: duration, Kind: ty}
			if p, ok := a.take(base + "Chance"); ok {
				b = bonus.ChanceOf{Prob: p, Inner: b}
			}
			out = append(out, b)
		}

		dmg, hasDmg := a.take(base + "Modifier")
		dur, hasDur := a.take(base + "DurationModifier")
		if hasDmg || hasDur {
			out = append(out, bonus.DamageOverTimeModifier{DamageMod: dmg, DurationMod: dur, Kind: ty})
		}
	}
	return out, nil
}

func (c *Classifier) flatDamage(a *attributes) ([]bonus.Bonus, error) {
	var out []bonus.Bonus
	for _, ty := range c.damageTypes {
		base := "offensive" + ty

		if amount, ok := a.take(base + "Modifier"); ok {
			var b bonus.Bonus = bonus.DamageModifier{Amount: amount, Kind: ty}
			if p, ok := a.take(base + "ModifierChance"); ok {
				b = bonus.ChanceOf{Prob: p, Inner: b}
			}
			out = append(out, b)
		}

		minVal, maxVal, found, err := takeRange(a, base)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		out = append(out, bonus.Damage{Min: minVal, Kind: ty, Max: maxVal})
	}
	return out, nil
}

func (c *Classifier) retaliation(a *attributes) ([]bonus.Bonus, error) {
	var out []bonus.Bonus
	for _, ty := range c.damageTypes {
		minVal, maxVal, found, err := takeRange(a, "retaliation"+ty)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		out = append(out, bonus.Retaliation{Min: minVal, Kind: ty, Max: maxVal})
	}
	return out, nil
}

func (c *Classifier) resistanceReduction(a *attributes) ([]bonus.Bonus, error) {
	var out []bonus.Bonus
	for _, ty := range c.damageTypes {
		amountKey := "offensive" + ty + "ResistanceReductionPercentMin"
		durationKey := "offensive" + ty + "ResistanceReductionPercentDurationMin"
		if !a.has(amountKey) && !a.has(durationKey) {
			continue
		}

		amount, err := a.require(amountKey, durationKey)
		if err != nil {
			return nil, err
		}
		duration, err := a.require(durationKey, amountKey)
		if err != nil {
			return nil, err
		}
		out = append(out, bonus.ResistanceReduction{Amount: amount, Duration: duration, Kind: ty})
	}
	return out, nil
}

// misc resolves every remaining attribute through the tag naming rules.
// Attributes are visited in name order so output is deterministic.
func (c *Classifier) misc(a *attributes) ([]bonus.Bonus, error) {
	var out []bonus.Bonus
	for _, name := range a.names() {
		key := a.keys[name]
		tag, ok, err := c.TagName(key)
		if err != nil {
			return nil, err
		}
		if !ok {
			slog.Debug("no tag for attribute", "attribute", name, "candidate", StructuralTagName(key))
			continue
		}
		v, _ := a.take(name)
		out = append(out, bonus.MiscBonus{Amount: v, Kind: key.String(), TagName: tag})
	}
	return out, nil
}

// takeRange pops base+"Min" and base+"Max". A Max requires its Min.
func takeRange(a *attributes, base string) (minVal float64, maxVal *float64, found bool, err error) {
	minKey, maxKey := base+"Min", base+"Max"

	if hi, ok := a.take(maxKey); ok {
		lo, err := a.require(minKey, maxKey)
		if err != nil {
			return 0, nil, false, err
		}
		return lo, &hi, true, nil
	}
	if lo, ok := a.take(minKey); ok {
		return lo, nil, true, nil
	}
	return 0, nil, false, nil
}

// attributes is the classifier's working copy of one attribute map.
type attributes struct {
	values map[string]float64
	keys   map[string]attr.Key
}

func newAttributes(raw map[string]float64) (*attributes, error) {
	a := &attributes{
		values: make(map[string]float64, len(raw)),
		keys:   make(map[string]attr.Key, len(raw)),
	}
	for name, v := range raw {
		k, err := attr.Tokenize(name)
		if err != nil {
			return nil, err
		}
		a.values[name] = v
		a.keys[name] = k
	}
	return a, nil
}

func (a *attributes) has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// take removes name and reports whether it was present.
func (a *attributes) take(name string) (float64, bool) {
	v, ok := a.values[name]
	if ok {
		delete(a.values, name)
	}
	return v, ok
}

// require takes name, which sibling implies must exist.
func (a *attributes) require(name, sibling string) (float64, error) {
	v, ok := a.take(name)
	if !ok {
		return 0, fmt.Errorf("%w: %s requires %s", ErrIncompleteKeyGroup, sibling, name)
	}
	return v, nil
}

func (a *attributes) names() []string {
	out := make([]string, 0, len(a.values))
	for name := range a.values {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (a *attributes) remaining() map[string]float64 {
	out := make(map[string]float64, len(a.values))
	for k, v := range a.values {
		out[k] = v
	}
	return out
}
