package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/udisondev/gdbonus/internal/bonus"
	"github.com/udisondev/gdbonus/internal/classify"
	"github.com/udisondev/gdbonus/internal/db"
	"github.com/udisondev/gdbonus/internal/pipeline"
	"github.com/udisondev/gdbonus/internal/tags"
)

const (
	suggestMaxDist = 3
	suggestLimit   = 3
)

func (a *app) classifyCmd() *cobra.Command {
	var persist bool

	cmd := &cobra.Command{
		Use:   "classify [records-dir]",
		Short: "Classify skill records into bonuses",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := a.cfg.Records.Dir
			if len(args) == 1 {
				dir = args[0]
			}
			return a.runClassify(cmd.Context(), cmd.OutOrStdout(), dir, persist || a.cfg.Database.Enabled)
		},
	}
	cmd.Flags().BoolVar(&persist, "persist", false, "store the run in PostgreSQL")
	return cmd
}

func (a *app) runClassify(ctx context.Context, out io.Writer, dir string, persist bool) error {
	dict, overrides, err := loadTags(a.cfg.Tags)
	if err != nil {
		return err
	}

	skills, err := pipeline.LoadSkills(dir)
	if err != nil {
		return err
	}

	report, err := pipeline.Run(ctx, classify.New(dict, overrides), skills, a.cfg.Workers)
	if err != nil {
		return err
	}

	render := bonus.NewRenderer(dict)
	for _, s := range report.Skills {
		if err := printListing(out, render, s.Name, s.Bonuses); err != nil {
			return err
		}
	}

	if err := pipeline.WriteJSON(a.cfg.Output.Path, report); err != nil {
		return err
	}
	if err := writeNotHandled(a.cfg.Output.NotHandledPath, report, dict); err != nil {
		return err
	}
	slog.Info("classification written",
		"bonuses", a.cfg.Output.Path,
		"not_handled", a.cfg.Output.NotHandledPath)

	if !persist {
		return nil
	}
	return a.persistReport(ctx, report, dict, render)
}

// printListing writes one "display [kind_id]" line per bonus under a
// header naming the group.
func printListing(out io.Writer, render *bonus.Renderer, header string, list []bonus.Bonus) error {
	if _, err := fmt.Fprintf(out, "== %s\n", header); err != nil {
		return err
	}
	for _, b := range list {
		text, err := render.Display(b)
		if err != nil {
			return fmt.Errorf("rendering %s in %s: %w", b.KindID(), header, err)
		}
		if _, err := fmt.Fprintf(out, "%-60s [%s]\n", text, b.KindID()); err != nil {
			return err
		}
	}
	return nil
}

// writeNotHandled lists unclassified attributes, one per line, with the
// number of skills that carry them and the closest existing tags.
func writeNotHandled(path string, report *pipeline.Report, dict *tags.Dictionary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	suggestions := pipeline.Suggestions(report, dict, suggestMaxDist, suggestLimit)

	w := bufio.NewWriter(f)
	for _, name := range report.UnhandledNames() {
		line := fmt.Sprintf("%s\t%d", name, report.Unhandled[name])
		if near := suggestions[name]; len(near) > 0 {
			line += "\t" + strings.Join(near, ",")
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func (a *app) persistReport(ctx context.Context, report *pipeline.Report, dict *tags.Dictionary, render *bonus.Renderer) error {
	database, err := db.New(ctx, a.cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	repo := database.Bonuses(render)
	runID, err := repo.CreateRun(ctx, dict.Fingerprint())
	if err != nil {
		return err
	}

	for _, s := range report.Skills {
		if err := repo.SaveSkill(ctx, runID, s.Name, s.Bonuses); err != nil {
			return err
		}
	}
	if err := repo.SaveUnhandled(ctx, runID, report.Unhandled); err != nil {
		return err
	}

	slog.Info("run stored", "runID", runID, "skills", len(report.Skills))
	return nil
}
