package config

import (
	"github.com/nibzard/taskboard/internal/board"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultLogDir      = "~/.taskboard/logs"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultIDStyle     = string(board.IDStyleUUID)
	DefaultColumnWidth = 30
	MinColumnWidth     = 16
)

// Config holds the full configuration for taskboard.
type Config struct {
	// Board
	Title      string       `toml:"title"`
	SeedFile   string       `toml:"seed_file"`
	SchemaFile string       `toml:"schema_file"`
	IDStyle    string       `toml:"id_style"`
	IDPrefix   string       `toml:"id_prefix"`
	Columns    ColumnTitles `toml:"columns"`

	// Terminal UI
	Mouse       bool `toml:"mouse"`
	ColumnWidth int  `toml:"column_width"`

	// Hooks
	HookCommand string `toml:"hook_command"`

	// Logging
	LogDir        string `toml:"log_dir"`
	LogEvents     bool   `toml:"log_events"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Computed
	ProjectRoot string `toml:"-"`
}

// ColumnTitles overrides the display titles of the three columns.
// Empty entries keep the built-in title.
type ColumnTitles struct {
	Todo       string `toml:"todo"`
	InProgress string `toml:"in_progress"`
	Done       string `toml:"done"`
}

// Map returns the non-empty titles keyed by column id.
func (c ColumnTitles) Map() map[board.ColumnID]string {
	out := make(map[board.ColumnID]string, 3)
	if c.Todo != "" {
		out[board.ColumnTodo] = c.Todo
	}
	if c.InProgress != "" {
		out[board.ColumnInProgress] = c.InProgress
	}
	if c.Done != "" {
		out[board.ColumnDone] = c.Done
	}
	return out
}

// Set assigns the title for one column.
func (c *ColumnTitles) Set(id board.ColumnID, title string) {
	switch id {
	case board.ColumnTodo:
		c.Todo = title
	case board.ColumnInProgress:
		c.InProgress = title
	case board.ColumnDone:
		c.Done = title
	}
}

func setDefaults(cfg *Config) {
	cfg.IDStyle = DefaultIDStyle
	cfg.Mouse = true
	cfg.ColumnWidth = DefaultColumnWidth
	cfg.LogDir = DefaultLogDir
	cfg.LogEvents = true
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
}
