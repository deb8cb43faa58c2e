package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/gdbonus/internal/attr"
	"github.com/udisondev/gdbonus/internal/bonus"
	"github.com/udisondev/gdbonus/internal/classify"
)

// SkillBonuses are the classified bonuses of one skill.
type SkillBonuses struct {
	Name    string     `json:"name"`
	Bonuses bonus.List `json:"bonuses"`
}

// Report is the result of classifying a batch of skills.
type Report struct {
	Skills []SkillBonuses `json:"skills"`
	// Unhandled counts how many skills left each attribute unclassified.
	Unhandled map[string]int `json:"unhandled"`
}

// Run classifies skills with up to workers goroutines. Report.Skills keeps
// the order of skills.
func Run(ctx context.Context, c *classify.Classifier, skills []Skill, workers int) (*Report, error) {
	if workers < 1 {
		workers = 1
	}

	results := make([]classify.Result, len(skills))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, s := range skills {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.ClassifySkill(s.Bonuses, s.PetBonuses)
			if err != nil {
				return fmt.Errorf("classifying skill %s: %w", s.Name, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{
		Skills:    make([]SkillBonuses, len(skills)),
		Unhandled: make(map[string]int),
	}
	for i, res := range results {
		report.Skills[i] = SkillBonuses{Name: skills[i].Name, Bonuses: res.Bonuses}
		for k := range res.Unhandled {
			report.Unhandled[k]++
		}
	}

	slog.Info("classified skills",
		"skills", len(skills),
		"bonuses", report.BonusCount(),
		"unhandled", len(report.Unhandled))
	return report, nil
}

// BonusCount returns the number of bonuses over all skills.
func (r *Report) BonusCount() int {
	n := 0
	for _, s := range r.Skills {
		n += len(s.Bonuses)
	}
	return n
}

// UnhandledNames returns unhandled attribute names in sorted order.
func (r *Report) UnhandledNames() []string {
	names := make([]string, 0, len(r.Unhandled))
	for k := range r.Unhandled {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Flatten returns every bonus of every skill in report order.
func (r *Report) Flatten() []bonus.Bonus {
	out := make([]bonus.Bonus, 0, r.BonusCount())
	for _, s := range r.Skills {
		out = append(out, s.Bonuses...)
	}
	return out
}

// Aggregated merges the bonuses of all skills.
func Aggregated(r *Report) ([]bonus.Bonus, error) {
	return bonus.Aggregate(r.Flatten())
}

// Suggester finds tag names close to a given one.
type Suggester interface {
	Nearest(name string, maxDist, limit int) []string
}

// Suggestions proposes existing tags for each unhandled attribute, keyed by
// attribute name. Attributes without a close tag are omitted.
func Suggestions(r *Report, dict Suggester, maxDist, limit int) map[string][]string {
	out := make(map[string][]string)
	for _, name := range r.UnhandledNames() {
		key, err := attr.Tokenize(name)
		if err != nil {
			continue
		}
		if near := dict.Nearest(classify.StructuralTagName(key), maxDist, limit); len(near) > 0 {
			out[name] = near
		}
	}
	return out
}
