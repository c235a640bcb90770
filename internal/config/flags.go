package config

import (
	"flag"
	"strings"
)

// flagFields maps flag names to the config fields they set.
var flagFields = map[string]string{
	"title":          "title",
	"seed":           "seed_file",
	"schema":         "schema_file",
	"id-style":       "id_style",
	"id-prefix":      "id_prefix",
	"mouse":          "mouse",
	"column-width":   "column_width",
	"hook":           "hook_command",
	"log-dir":        "log_dir",
	"log-events":     "log_events",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// columnFlag collects repeated -column todo=Title flags.
type columnFlag struct {
	titles  *ColumnTitles
	sources map[string]ConfigSource
}

func (f *columnFlag) String() string {
	if f.titles == nil {
		return ""
	}
	var parts []string
	for id, title := range f.titles.Map() {
		parts = append(parts, string(id)+"="+title)
	}
	return strings.Join(parts, ",")
}

func (f *columnFlag) Set(value string) error {
	return applyColumnTitles(f.titles, value, f.sources, SourceFlag)
}

// parseFlags defines and parses CLI flags. Flag defaults are the values
// already loaded, so flags that are not given leave them untouched.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskboard", flag.ContinueOnError)
	}

	// Board
	fs.StringVar(&cfg.Title, "title", cfg.Title, "Board heading")
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "Path to a seed file with the starting columns")
	fs.StringVar(&cfg.SchemaFile, "schema", cfg.SchemaFile, "Path to a JSON schema overriding the embedded one")
	fs.StringVar(&cfg.IDStyle, "id-style", cfg.IDStyle, "Task id style: uuid or sequence")
	fs.StringVar(&cfg.IDPrefix, "id-prefix", cfg.IDPrefix, "Prefix for sequence ids")
	fs.Var(&columnFlag{titles: &cfg.Columns, sources: sources}, "column", "Column title override, e.g. todo=Backlog (repeatable)")

	// Terminal UI
	fs.BoolVar(&cfg.Mouse, "mouse", cfg.Mouse, "Enable mouse drag and drop")
	fs.IntVar(&cfg.ColumnWidth, "column-width", cfg.ColumnWidth, "Width of each column in cells")

	// Hooks
	fs.StringVar(&cfg.HookCommand, "hook", cfg.HookCommand, "Command run after each add, delete and move")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
	fs.BoolVar(&cfg.LogEvents, "log-events", cfg.LogEvents, "Write a JSONL event log for each run")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Diagnostics log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Diagnostics log format: text, json, logfmt")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in diagnostics")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in diagnostics")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
