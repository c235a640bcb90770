package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/taskboard/internal/board"
)

const (
	configDirName  = ".taskboard"
	configFileName = "taskboard.toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file (~/.taskboard/taskboard.toml or OS-specific config dir)
// 3. Project config file (taskboard.toml or .taskboard.toml in current directory)
// 4. Environment variables
// 5. CLI flags
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cws, err := LoadWithSources(fs, args)
	if err != nil {
		return nil, err
	}
	return cws.Config, nil
}

// LoadWithSources loads configuration and tracks the source of each value.
// Fields that no source set are reported as SourceDefault.
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	cfg := &Config{}
	sources := make(map[string]ConfigSource)

	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	if path := findProjectConfigFile(wd); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	if err := loadFromEnv(cfg, sources); err != nil {
		return nil, err
	}

	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg.ProjectRoot = wd
	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}

	return &ConfigWithSources{Config: cfg, Sources: sources}, nil
}

// configFields returns the list of configurable field names for source tracking.
// Nested keys use dotted TOML paths.
func configFields() []string {
	return []string{
		"title",
		"seed_file",
		"schema_file",
		"id_style",
		"id_prefix",
		"columns.todo",
		"columns.in_progress",
		"columns.done",
		"mouse",
		"column_width",
		"hook_command",
		"log_dir",
		"log_events",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// loadConfigFile decodes a TOML file over cfg and records every key the
// file defines. Unknown keys are rejected so typos do not pass silently.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	for _, key := range md.Keys() {
		name := key.String()
		if _, ok := sources[name]; ok {
			sources[name] = source
		}
	}
	return nil
}

// findUserConfigFile returns the first user-level config file that exists.
func findUserConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, configDirName, configFileName))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "taskboard", configFileName))
	}
	return firstExisting(candidates)
}

// findProjectConfigFile returns the project config file in dir, if any.
func findProjectConfigFile(dir string) string {
	return firstExisting([]string{
		filepath.Join(dir, configFileName),
		filepath.Join(dir, "."+configFileName),
	})
}

func firstExisting(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	cfg.LogDir = expandPath(cfg.LogDir)
	cfg.HookCommand = expandPath(cfg.HookCommand)
	cfg.SeedFile = resolvePath(cfg.ProjectRoot, cfg.SeedFile)
	cfg.SchemaFile = resolvePath(cfg.ProjectRoot, cfg.SchemaFile)

	var errs []error
	if _, err := board.NewIDGenerator(cfg.IDStyle, cfg.IDPrefix, 0); err != nil {
		errs = append(errs, fmt.Errorf("id_style: %w", err))
	}
	if cfg.ColumnWidth < MinColumnWidth {
		errs = append(errs, fmt.Errorf("column_width must be at least %d, got %d", MinColumnWidth, cfg.ColumnWidth))
	}
	return errors.Join(errs...)
}

// resolvePath expands p and anchors it at root when it is relative.
// Empty paths stay empty.
func resolvePath(root, p string) string {
	if p == "" {
		return ""
	}
	p = expandPath(p)
	if !filepath.IsAbs(p) && root != "" {
		p = filepath.Join(root, p)
	}
	return p
}
