package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Taskboard configuration file
# Values can be overridden by TASKBOARD_<KEY> environment variables (for
# example TASKBOARD_SEED_FILE, or the short TASKBOARD_SEED) or CLI flags.
# TASKBOARD_COLUMNS="todo=Backlog,done=Shipped" sets column titles.
# Nothing here stores tasks: the board lives in memory and is lost on exit.

# Board heading (empty uses the built-in heading)
# title = "Sprint 12"

# Seed file with the starting columns (relative to project root).
# Empty uses the built-in demo tasks.
# seed_file = "board.json"

# JSON schema used to validate the seed file (empty uses the embedded schema)
# schema_file = ""

# Task id style: "uuid" or "sequence"
id_style = "uuid"

# Prefix for sequence ids, e.g. "T-" gives T-6, T-7, ...
# id_prefix = ""

# Enable mouse drag and drop in the terminal UI
mouse = true

# Width of each column in cells (minimum 16)
column_width = 30

# Command run after each add, delete and move. It receives the event type,
# task id and column as arguments and the event JSON on stdin.
# hook_command = "./scripts/on-board-change.sh"

# Log directory (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.taskboard/logs"

# Write a JSONL event log for each run
log_events = true

# Diagnostics log settings
log_level = "info"      # debug, info, warn, error
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false

# Column title overrides. Column ids are fixed.
[columns]
# todo = "Backlog"
# in_progress = "Doing"
# done = "Shipped"
`
}
