package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/udisondev/gdbonus/internal/bonus"
	"github.com/udisondev/gdbonus/internal/classify"
	"github.com/udisondev/gdbonus/internal/tags"
)

func (a *app) templatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "Show the display template of every bonus variant and damage type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dict, _, err := loadTags(a.cfg.Tags)
			if err != nil {
				return err
			}
			return printTemplates(cmd.OutOrStdout(), bonus.NewRenderer(dict))
		},
	}
}

// templateSamples returns one bonus of each variant for a damage type.
// Values are irrelevant: only the symbolic display is printed.
func templateSamples(kind string) []bonus.Bonus {
	return []bonus.Bonus{
		bonus.NewDamage(1, kind),
		bonus.NewDamageRange(1, 2, kind),
		bonus.NewRetaliation(1, kind),
		bonus.NewRetaliationRange(1, 2, kind),
		bonus.DamageModifier{Amount: 1, Kind: kind},
		bonus.ResistanceReduction{Amount: 1, Duration: 1, Kind: kind},
		bonus.DamageOverTime{DPS: 1, Duration: 1, Kind: kind},
		bonus.DamageOverTimeModifier{DamageMod: 1, DurationMod: 1, Kind: kind},
		bonus.ChanceOf{Prob: 1, Inner: bonus.NewDamageRange(1, 2, kind)},
		bonus.Pets{Inner: bonus.DamageModifier{Amount: 1, Kind: kind}},
	}
}

func printTemplates(out io.Writer, render *bonus.Renderer) error {
	missing := 0
	for _, kind := range classify.DamageTypes {
		for _, b := range templateSamples(kind) {
			text, err := render.DisplaySymbolic(b)
			if errors.Is(err, tags.ErrUnknownTag) {
				missing++
				slog.Debug("no template", "kind_id", b.KindID(), "err", err)
				continue
			}
			if err != nil {
				return err
			}
			if _, err := fmt.Fprintf(out, "%-60s [%s %s]\n", text, b.Variant(), b.KindID()); err != nil {
				return err
			}
		}
	}
	if missing > 0 {
		slog.Info("variants without templates", "count", missing)
	}
	return nil
}
