package main

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/udisondev/gdbonus/internal/bonus"
	"github.com/udisondev/gdbonus/internal/db"
	"github.com/udisondev/gdbonus/internal/pipeline"
)

func (a *app) aggregateCmd() *cobra.Command {
	var runID string

	cmd := &cobra.Command{
		Use:   "aggregate [bonuses.json]",
		Short: "Merge classified bonuses of all skills into one listing",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				list []bonus.Bonus
				err  error
			)
			if runID != "" {
				list, err = a.loadRun(cmd.Context(), runID)
			} else {
				path := a.cfg.Output.Path
				if len(args) == 1 {
					path = args[0]
				}
				list, err = loadClassified(path)
			}
			if err != nil {
				return err
			}
			return a.printAggregated(cmd.OutOrStdout(), list)
		},
	}
	cmd.Flags().StringVar(&runID, "run", "", "aggregate a run stored in PostgreSQL")
	return cmd
}

func loadClassified(path string) ([]bonus.Bonus, error) {
	skills, err := pipeline.ReadJSON(path)
	if err != nil {
		return nil, err
	}
	report := &pipeline.Report{Skills: skills}
	return report.Flatten(), nil
}

func (a *app) loadRun(ctx context.Context, raw string) ([]bonus.Bonus, error) {
	runID, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("run id %q: %w", raw, err)
	}

	database, err := db.New(ctx, a.cfg.Database.DSN())
	if err != nil {
		return nil, err
	}
	defer database.Close()

	repo := database.Bonuses(nil)
	names, err := repo.Skills(ctx, runID)
	if err != nil {
		return nil, err
	}

	var list []bonus.Bonus
	for _, name := range names {
		skill, err := repo.LoadSkill(ctx, runID, name)
		if err != nil {
			return nil, err
		}
		list = append(list, skill...)
	}
	return list, nil
}

func (a *app) printAggregated(out io.Writer, list []bonus.Bonus) error {
	dict, _, err := loadTags(a.cfg.Tags)
	if err != nil {
		return err
	}

	merged, err := bonus.Aggregate(list)
	if err != nil {
		return err
	}
	return printListing(out, bonus.NewRenderer(dict), fmt.Sprintf("aggregated (%d → %d)", len(list), len(merged)), merged)
}
