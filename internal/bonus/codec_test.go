package bonus

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariants_UniqueDiscriminators(t *testing.T) {
	seen := make(map[string]bool, len(Variants))
	for _, v := range Variants {
		assert.False(t, seen[v.Name], "discriminator %s registered twice", v.Name)
		seen[v.Name] = true
	}
	assert.Len(t, seen, 9)

	_, err := NewRegistry(Variants...)
	require.NoError(t, err)
}

func TestNewRegistry_Duplicate(t *testing.T) {
	regs := append([]Registration{}, Variants...)
	regs = append(regs, Registration{Name: VariantDamage, Decode: decodeAs[Retaliation]})

	_, err := NewRegistry(regs...)
	require.ErrorIs(t, err, ErrDuplicateDiscriminator)
}

func TestRegistry_NamesMatchVariants(t *testing.T) {
	for _, b := range sampleBonuses() {
		assert.Contains(t, DefaultRegistry().Names(), b.Variant())
	}
	assert.Contains(t, DefaultRegistry().Names(), VariantPets)
}

func TestEnvelope_Shape(t *testing.T) {
	data, err := Marshal(NewDamageRange(10, 20, "Fire"))
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.JSONEq(t, `"Damage"`, string(raw[TypeField]))
	assert.JSONEq(t, `{"min_val": 10, "kind": "Fire", "max_val": 20}`, string(raw[DataField]))

	data, err = Marshal(Pets{Inner: ChanceOf{Prob: 5, Inner: DamageModifier{Amount: 1, Kind: "Cold"}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"__type__": "Pets",
		"data": {"bonus": {
			"__type__": "ChanceOf",
			"data": {"prob": 5, "bonus": {"__type__": "DamageModifier", "data": {"amount": 1, "kind": "Cold"}}}
		}}
	}`, string(data))
}

func TestEnvelope_RoundTrip(t *testing.T) {
	for _, b := range sampleBonuses() {
		t.Run(b.KindID(), func(t *testing.T) {
			data, err := Marshal(b)
			require.NoError(t, err)

			got, err := Unmarshal(data)
			require.NoError(t, err)
			if diff := cmp.Diff(b, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestList_RoundTrip(t *testing.T) {
	in := List(sampleBonuses())

	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out List
	require.NoError(t, json.Unmarshal(data, &out))
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("list round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshal_UnknownDiscriminator(t *testing.T) {
	_, err := Unmarshal([]byte(`{"__type__": "Healing", "data": {}}`))
	require.ErrorIs(t, err, ErrUnknownDiscriminator)
}

func TestUnmarshal_Null(t *testing.T) {
	b, err := Unmarshal([]byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, b)
}

func TestUnmarshal_WrapperWithoutInner(t *testing.T) {
	records := map[string]string{
		"pets null":        `{"__type__": "Pets", "data": {"bonus": null}}`,
		"pets missing":     `{"__type__": "Pets", "data": {}}`,
		"chance of null":   `{"__type__": "ChanceOf", "data": {"prob": 20, "bonus": null}}`,
		"chance of absent": `{"__type__": "ChanceOf", "data": {"prob": 20}}`,
	}

	for name, rec := range records {
		t.Run(name, func(t *testing.T) {
			b, err := Unmarshal([]byte(rec))
			require.ErrorIs(t, err, ErrMissingInner)
			assert.Nil(t, b)
		})
	}
}

func TestList_WrapperWithoutInner(t *testing.T) {
	var l List
	err := json.Unmarshal([]byte(`[{"__type__": "Damage", "data": {"min_val": 1, "kind": "Fire", "max_val": null}},
		{"__type__": "Pets", "data": {"bonus": null}}]`), &l)
	require.ErrorIs(t, err, ErrMissingInner)
}
