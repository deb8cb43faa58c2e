package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/gdbonus/internal/bonus"
	"github.com/udisondev/gdbonus/internal/classify"
	"github.com/udisondev/gdbonus/internal/testutil"
)

func newClassifier(t *testing.T) *classify.Classifier {
	t.Helper()
	dict := testutil.Dictionary()
	return classify.New(dict, testutil.Overrides(t, dict))
}

func testSkills() []Skill {
	return []Skill{
		{
			Name:    "star_a01",
			Bonuses: map[string]float64{"offensiveFireMin": 10, "characterDexterity": 5},
		},
		{
			Name:       "star_b01",
			Bonuses:    map[string]float64{"offensiveFireModifier": 15, "defensiveFireRes": 4},
			PetBonuses: map[string]float64{"characterDexterity": 3},
		},
		{
			Name:    "star_c01",
			Bonuses: map[string]float64{"offensiveFireMin": 6, "defensiveFireRes": 2, "characterAttackSpeedModifer": 1},
		},
	}
}

func TestRun(t *testing.T) {
	report, err := Run(context.Background(), newClassifier(t), testSkills(), 2)
	require.NoError(t, err)

	want := []SkillBonuses{
		{Name: "star_a01", Bonuses: bonus.List{
			bonus.NewDamage(10, "Fire"),
			bonus.MiscBonus{Amount: 5, Kind: "characterDexterity", TagName: "tagCharAttribute01"},
		}},
		{Name: "star_b01", Bonuses: bonus.List{
			bonus.DamageModifier{Amount: 15, Kind: "Fire"},
			bonus.Pets{Inner: bonus.MiscBonus{Amount: 3, Kind: "characterDexterity", TagName: "tagCharAttribute01"}},
		}},
		{Name: "star_c01", Bonuses: bonus.List{
			bonus.NewDamage(6, "Fire"),
		}},
	}
	if diff := cmp.Diff(want, report.Skills); diff != "" {
		t.Errorf("skills mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, map[string]int{"defensiveFireRes": 2, "characterAttackSpeedModifer": 1}, report.Unhandled)
	assert.Equal(t, []string{"characterAttackSpeedModifer", "defensiveFireRes"}, report.UnhandledNames())
	assert.Equal(t, 5, report.BonusCount())
}

func TestRun_KeepsInputOrder(t *testing.T) {
	var skills []Skill
	for i := range 50 {
		skills = append(skills, Skill{
			Name:    fmt.Sprintf("skill_%02d", i),
			Bonuses: map[string]float64{"offensiveFireMin": float64(i + 1)},
		})
	}

	report, err := Run(context.Background(), newClassifier(t), skills, 8)
	require.NoError(t, err)

	require.Len(t, report.Skills, len(skills))
	for i, s := range report.Skills {
		assert.Equal(t, skills[i].Name, s.Name)
		assert.Equal(t, bonus.List{bonus.NewDamage(float64(i+1), "Fire")}, s.Bonuses)
	}
}

func TestRun_Error(t *testing.T) {
	skills := append(testSkills(), Skill{
		Name:    "broken",
		Bonuses: map[string]float64{"offensiveFireMax": 20},
	})

	_, err := Run(context.Background(), newClassifier(t), skills, 4)
	require.ErrorIs(t, err, classify.ErrIncompleteKeyGroup)
	assert.Contains(t, err.Error(), "classifying skill broken")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, newClassifier(t), testSkills(), 1)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_Empty(t *testing.T) {
	report, err := Run(context.Background(), newClassifier(t), nil, 0)
	require.NoError(t, err)

	assert.Empty(t, report.Skills)
	assert.Empty(t, report.Unhandled)
}

func TestAggregated(t *testing.T) {
	report, err := Run(context.Background(), newClassifier(t), testSkills(), 3)
	require.NoError(t, err)

	got, err := Aggregated(report)
	require.NoError(t, err)

	want := []bonus.Bonus{
		bonus.Pets{Inner: bonus.MiscBonus{Amount: 3, Kind: "characterDexterity", TagName: "tagCharAttribute01"}},
		bonus.NewDamage(16, "Fire"),
		bonus.MiscBonus{Amount: 5, Kind: "characterDexterity", TagName: "tagCharAttribute01"},
		bonus.DamageModifier{Amount: 15, Kind: "Fire"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("aggregate mismatch (-want +got):\n%s", diff)
	}
}

func TestSuggestions(t *testing.T) {
	report, err := Run(context.Background(), newClassifier(t), testSkills(), 2)
	require.NoError(t, err)

	got := Suggestions(report, testutil.Dictionary(), 3, 2)

	assert.Equal(t, []string{"tagCharAttackSpeedModifier"}, got["characterAttackSpeedModifer"])
	assert.Equal(t, []string{"DefenseFire"}, got["defensiveFireRes"])
}
