package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/udisondev/gdbonus/internal/config"
	"github.com/udisondev/gdbonus/internal/tags"
)

// loadTags loads the dictionary and, if the file exists, the override table.
func loadTags(cfg config.TagsConfig) (*tags.Dictionary, *tags.Overrides, error) {
	var (
		dict *tags.Dictionary
		err  error
	)
	switch cfg.Format {
	case config.FormatText:
		dict, err = tags.LoadText(cfg.Path)
	default:
		dict, err = tags.LoadJSON(cfg.Path)
	}
	if err != nil {
		return nil, nil, err
	}

	if cfg.OverridesPath == "" {
		return dict, nil, nil
	}
	overrides, err := tags.LoadOverrides(cfg.OverridesPath, dict)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Warn("no tag overrides", "path", cfg.OverridesPath)
		return dict, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("tag overrides: %w", err)
	}
	return dict, overrides, nil
}
