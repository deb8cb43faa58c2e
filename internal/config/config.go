// Package config loads gdbonus settings from YAML with environment overrides.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Tag dictionary formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config holds all settings of the gdbonus tool.
type Config struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	Tags     TagsConfig     `yaml:"tags" envPrefix:"TAGS_"`
	Records  RecordsConfig  `yaml:"records" envPrefix:"RECORDS_"`
	Output   OutputConfig   `yaml:"output" envPrefix:"OUTPUT_"`
	Workers  int            `yaml:"workers" env:"WORKERS"`
	Database DatabaseConfig `yaml:"database" envPrefix:"DB_"`
}

// TagsConfig locates the localization dictionary.
type TagsConfig struct {
	// Path is a JSON file for FormatJSON or a directory of .txt files for FormatText.
	Path          string `yaml:"path" env:"PATH"`
	Format        string `yaml:"format" env:"FORMAT"`
	OverridesPath string `yaml:"overrides_path" env:"OVERRIDES_PATH"`
}

// RecordsConfig locates the extracted skill records.
type RecordsConfig struct {
	Dir string `yaml:"dir" env:"DIR"`
}

// OutputConfig names the files written by classify.
type OutputConfig struct {
	Path           string `yaml:"path" env:"PATH"`
	NotHandledPath string `yaml:"not_handled_path" env:"NOT_HANDLED_PATH"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	User     string `yaml:"user" env:"USER"`
	Password string `yaml:"password" env:"PASSWORD"`
	DBName   string `yaml:"dbname" env:"NAME"`
	SSLMode  string `yaml:"sslmode" env:"SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Default returns Config with sensible defaults.
func Default() Config {
	return Config{
		LogLevel: "info",
		Tags: TagsConfig{
			Path:          "data/tags.json",
			Format:        FormatJSON,
			OverridesPath: "data/tag_overrides.txt",
		},
		Records: RecordsConfig{
			Dir: "data/devotion",
		},
		Output: OutputConfig{
			Path:           "bonuses.json",
			NotHandledPath: "not_handled.txt",
		},
		Workers: 4,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "gdbonus",
			Password: "gdbonus",
			DBName:   "gdbonus",
			SSLMode:  "disable",
		},
	}
}

// Load reads config from a YAML file and applies GDBONUS_* environment
// variables on top. If the file doesn't exist, defaults are used.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "GDBONUS_"}); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks settings that have no usable fallback.
func (c Config) Validate() error {
	switch c.Tags.Format {
	case FormatJSON, FormatText:
	default:
		return fmt.Errorf("unknown tags format %q", c.Tags.Format)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
