// gdbonus classifies devotion skill bonuses and renders them as text.
//
// Usage:
//
//	gdbonus classify                  # records -> bonuses.json + not_handled.txt
//	gdbonus aggregate                 # merged listing of bonuses.json
//	gdbonus aggregate --run <uuid>    # merged listing of a stored run
//	gdbonus templates                 # symbolic display of every variant
//	gdbonus migrate                   # apply database migrations
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/udisondev/gdbonus/internal/config"
)

const defaultConfigPath = "config/gdbonus.yaml"

// app carries state shared by subcommands.
type app struct {
	configPath string
	cfg        config.Config
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "gdbonus",
		Short:         "Classify, render and aggregate devotion bonuses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultConfigPath, "path to YAML config")

	root.AddCommand(
		a.classifyCmd(),
		a.aggregateCmd(),
		a.templatesCmd(),
		a.migrateCmd(),
	)
	return root
}

func (a *app) init() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	path := a.configPath
	if p := os.Getenv("GDBONUS_CONFIG"); p != "" && path == defaultConfigPath {
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "path", path, "tags", cfg.Tags.Path, "records", cfg.Records.Dir)
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
