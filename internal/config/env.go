package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nibzard/taskboard/internal/board"
	"github.com/nibzard/taskboard/internal/utils"
)

const envPrefix = "TASKBOARD_"

// envBinding maps one environment variable onto a config field.
type envBinding struct {
	name  string
	field string
	apply func(cfg *Config, value string) error
}

func stringEnv(name, field string, target func(*Config) *string) envBinding {
	return envBinding{name: name, field: field, apply: func(cfg *Config, value string) error {
		*target(cfg) = value
		return nil
	}}
}

func boolEnv(name, field string, target func(*Config) *bool) envBinding {
	return envBinding{name: name, field: field, apply: func(cfg *Config, value string) error {
		*target(cfg) = utils.ParseBool(value)
		return nil
	}}
}

func intEnv(name, field string, target func(*Config) *int) envBinding {
	return envBinding{name: name, field: field, apply: func(cfg *Config, value string) error {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("%s: invalid integer %q", envPrefix+name, value)
		}
		*target(cfg) = n
		return nil
	}}
}

// envBindings lists TASKBOARD_<KEY> for every key. SEED and SCHEMA are short
// aliases; the full key names come later and so win when both are set.
func envBindings() []envBinding {
	return []envBinding{
		stringEnv("TITLE", "title", func(c *Config) *string { return &c.Title }),
		stringEnv("SEED", "seed_file", func(c *Config) *string { return &c.SeedFile }),
		stringEnv("SEED_FILE", "seed_file", func(c *Config) *string { return &c.SeedFile }),
		stringEnv("SCHEMA", "schema_file", func(c *Config) *string { return &c.SchemaFile }),
		stringEnv("SCHEMA_FILE", "schema_file", func(c *Config) *string { return &c.SchemaFile }),
		stringEnv("ID_STYLE", "id_style", func(c *Config) *string { return &c.IDStyle }),
		stringEnv("ID_PREFIX", "id_prefix", func(c *Config) *string { return &c.IDPrefix }),
		boolEnv("MOUSE", "mouse", func(c *Config) *bool { return &c.Mouse }),
		intEnv("COLUMN_WIDTH", "column_width", func(c *Config) *int { return &c.ColumnWidth }),
		stringEnv("HOOK_COMMAND", "hook_command", func(c *Config) *string { return &c.HookCommand }),
		stringEnv("LOG_DIR", "log_dir", func(c *Config) *string { return &c.LogDir }),
		boolEnv("LOG_EVENTS", "log_events", func(c *Config) *bool { return &c.LogEvents }),
		stringEnv("LOG_LEVEL", "log_level", func(c *Config) *string { return &c.LogLevel }),
		stringEnv("LOG_FORMAT", "log_format", func(c *Config) *string { return &c.LogFormat }),
		boolEnv("LOG_TIMESTAMPS", "log_timestamps", func(c *Config) *bool { return &c.LogTimestamps }),
		boolEnv("LOG_CALLER", "log_caller", func(c *Config) *bool { return &c.LogCaller }),
	}
}

// loadFromEnv overrides config from TASKBOARD_* environment variables.
// Empty variables are ignored.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	var errs []error
	for _, b := range envBindings() {
		value := os.Getenv(envPrefix + b.name)
		if value == "" {
			continue
		}
		if err := b.apply(cfg, value); err != nil {
			errs = append(errs, err)
			continue
		}
		sources[b.field] = SourceEnv
	}

	if value := os.Getenv(envPrefix + "COLUMNS"); value != "" {
		if err := applyColumnTitles(&cfg.Columns, value, sources, SourceEnv); err != nil {
			errs = append(errs, fmt.Errorf("%sCOLUMNS: %w", envPrefix, err))
		}
	}
	return errors.Join(errs...)
}

// applyColumnTitles parses "todo=Backlog,done=Shipped" style overrides.
func applyColumnTitles(titles *ColumnTitles, value string, sources map[string]ConfigSource, source ConfigSource) error {
	for _, pair := range utils.SplitAndTrim(value, ",") {
		key, title, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("expected column=title, got %q", pair)
		}
		id, err := board.ParseColumnID(strings.TrimSpace(key))
		if err != nil {
			return err
		}
		titles.Set(id, strings.TrimSpace(title))
		if sources != nil {
			sources["columns."+string(id)] = source
		}
	}
	return nil
}
