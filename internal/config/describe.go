package config

import (
	"fmt"
	"io"
	"strconv"
)

// Value returns the current value of a setting, formatted for display.
// Field names are the TOML keys returned by Fields.
func (c *Config) Value(field string) (string, bool) {
	switch field {
	case "title":
		return c.Title, true
	case "seed_file":
		return c.SeedFile, true
	case "schema_file":
		return c.SchemaFile, true
	case "id_style":
		return c.IDStyle, true
	case "id_prefix":
		return c.IDPrefix, true
	case "columns.todo":
		return c.Columns.Todo, true
	case "columns.in_progress":
		return c.Columns.InProgress, true
	case "columns.done":
		return c.Columns.Done, true
	case "mouse":
		return strconv.FormatBool(c.Mouse), true
	case "column_width":
		return strconv.Itoa(c.ColumnWidth), true
	case "hook_command":
		return c.HookCommand, true
	case "log_dir":
		return c.LogDir, true
	case "log_events":
		return strconv.FormatBool(c.LogEvents), true
	case "log_level":
		return c.LogLevel, true
	case "log_format":
		return c.LogFormat, true
	case "log_timestamps":
		return strconv.FormatBool(c.LogTimestamps), true
	case "log_caller":
		return strconv.FormatBool(c.LogCaller), true
	}
	return "", false
}

// Fields returns the configurable keys in display order.
func Fields() []string {
	return configFields()
}

// Describe writes one line per setting: key, value and where it came from.
func (cws *ConfigWithSources) Describe(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%-20s %-32s %s\n", "KEY", "VALUE", "SOURCE"); err != nil {
		return err
	}
	for _, field := range configFields() {
		value, _ := cws.Config.Value(field)
		source := cws.Sources[field]
		if source == "" {
			source = SourceDefault
		}
		if _, err := fmt.Fprintf(w, "%-20s %-32s %s\n", field, strconv.Quote(value), source); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%-20s %-32s %s\n", "project_root", strconv.Quote(cws.Config.ProjectRoot), "computed")
	return err
}
