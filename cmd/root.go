// Package cmd implements the CLI command structure for taskboard.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskboard/internal/board"
	"github.com/nibzard/taskboard/internal/config"
	"github.com/nibzard/taskboard/internal/hooks"
	"github.com/nibzard/taskboard/internal/logging"
	"github.com/nibzard/taskboard/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the taskboard CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("taskboard", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand; the board itself is the default
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "show":
		return showCommand(cfg, remainingArgs)
	case "validate":
		return validateCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand runs the interactive board.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !ui.IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY; use 'taskboard show' to print the board")
	}

	var (
		logger    = log.New(io.Discard)
		observers []board.Observer
	)
	if cfg.LogEvents {
		run, err := logging.NewRunLogger(cfg.LogDir, cfg.ProjectRoot)
		if err != nil {
			return fmt.Errorf("creating run logs: %w", err)
		}
		defer run.Close()

		logger = newLogger(cfg, run.Diagnostics())
		events := logging.NewMultiWriter(
			logging.NewJSONLWriter(run.Events()),
			logging.NewConsoleWriter(logger),
		)
		observers = append(observers, logging.Observer(events, logger))
		logger.Info("Run started", "run_id", run.RunID, "events", run.EventPath)
	}

	if cfg.HookCommand != "" {
		if err := hooks.Check(cfg.HookCommand, cfg.ProjectRoot); err != nil {
			return err
		}
		runner := hooks.NewRunner(ctx, cfg.HookCommand, cfg.ProjectRoot, logger)
		defer runner.Close()
		observers = append(observers, runner)
		logger.Info("Hook enabled", "command", cfg.HookCommand)
	}

	b, err := buildBoard(cfg, logger, observers...)
	if err != nil {
		return err
	}

	err = ui.RunTUI(ctx, b,
		ui.WithMouse(cfg.Mouse),
		ui.WithColumnWidth(cfg.ColumnWidth),
		ui.WithLogger(logger),
	)
	logger.Info("Run finished", "summary", ui.Summary(b))
	if err != nil {
		return err
	}
	fmt.Fprintln(stderr, "Board closed. Tasks are kept in memory only and were not saved.")
	return nil
}

// showCommand prints the starting board without a terminal UI.
func showCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard show", flag.ContinueOnError)
	fs.SetOutput(stderr)
	asJSON := fs.Bool("json", false, "Print the board as seed JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	b, err := buildBoard(cfg, newLogger(cfg, stderr))
	if err != nil {
		return err
	}
	if !*asJSON {
		return ui.RenderText(stdout, b)
	}

	data, err := json.MarshalIndent(board.Snapshot(b), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding board: %w", err)
	}
	_, err = fmt.Fprintln(stdout, string(data))
	return err
}

// validateCommand checks a seed file, or the built-in seed when none is set.
func validateCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}

	seedPath := cfg.SeedFile
	if len(remaining) == 1 {
		seedPath = remaining[0]
	}

	var file *board.File
	if seedPath == "" {
		fmt.Fprintln(stdout, "Seed: built-in")
		file = board.Snapshot(board.New())
	} else {
		fmt.Fprintf(stdout, "Seed: %s\n", seedPath)
		f, err := board.Load(seedPath)
		if err != nil {
			fmt.Fprintf(stdout, "  ❌ %v\n", err)
			return fmt.Errorf("seed file %s is invalid", seedPath)
		}
		file = f
	}

	result := file.Validate(board.ValidationOptions{SchemaPath: cfg.SchemaFile})
	for _, w := range result.Warnings {
		fmt.Fprintf(stdout, "  ⚠️  %s\n", w)
	}
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(stdout, "  ❌ %v\n", e)
		}
		return fmt.Errorf("seed file %s is invalid: %d error(s)", seedName(seedPath), len(result.Errors))
	}

	tasks := 0
	for _, col := range file.Columns {
		tasks += len(col.Tasks)
	}
	schema := "minimal checks"
	if result.UsedSchema {
		schema = "JSON schema"
	}
	fmt.Fprintf(stdout, "  ✅ OK (%d columns, %d tasks, %s)\n", len(file.Columns), tasks, schema)
	return nil
}

// tailCommand prints the latest event log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard tail", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(stdout)

	return logging.TailLog(ctx, stdout, logPath, *n, *follow)
}

// configCommand prints the effective configuration.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("taskboard config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example taskboard.toml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		_, err := io.WriteString(stdout, config.ExampleConfig())
		return err
	}
	return cws.Describe(stdout)
}

func versionCommand() error {
	fmt.Fprintf(stdout, "taskboard version %s\n", Version)
	return nil
}

// buildBoard creates the in-memory board from the configured seed.
func buildBoard(cfg *config.Config, logger *log.Logger, observers ...board.Observer) (*board.Board, error) {
	var opts []board.Option

	seed := &board.File{SchemaVersion: board.SchemaVersion, Columns: board.DefaultColumns()}
	if cfg.SeedFile != "" {
		f, err := board.Load(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		result := f.Validate(board.ValidationOptions{SchemaPath: cfg.SchemaFile})
		for _, w := range result.Warnings {
			logger.Warn(w, "seed", cfg.SeedFile)
		}
		if !result.Valid {
			return nil, fmt.Errorf("seed file %s is invalid: %w", cfg.SeedFile, errors.Join(result.Errors...))
		}
		seed = f
		opts = append(opts, f.Options()...)
	}

	ids, err := board.NewIDGenerator(cfg.IDStyle, cfg.IDPrefix, seed.MaxID())
	if err != nil {
		return nil, err
	}
	opts = append(opts, board.WithIDGenerator(ids))
	if cfg.Title != "" {
		opts = append(opts, board.WithTitle(cfg.Title))
	}
	if titles := cfg.Columns.Map(); len(titles) > 0 {
		opts = append(opts, board.WithColumnTitles(titles))
	}
	for _, o := range observers {
		if o != nil {
			opts = append(opts, board.WithObserver(o))
		}
	}

	b := board.New(opts...)
	logger.Debug("Board ready", "tasks", b.Len(), "id_style", cfg.IDStyle)
	return b, nil
}

func newLogger(cfg *config.Config, w io.Writer) *log.Logger {
	return logging.NewLoggerFromConfig(w, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

func seedName(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Taskboard - an in-memory kanban board for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskboard [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui              Open the interactive board (default command)")
	fmt.Fprintln(w, "  show             Print the starting board")
	fmt.Fprintln(w, "  validate [file]  Check a seed file")
	fmt.Fprintln(w, "  tail             Tail the latest event log")
	fmt.Fprintln(w, "  config           Show the effective configuration")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tasks are kept in memory only. Every run starts from the seed.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show Options (use with 'show' command):")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print the board as seed JSON")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example taskboard.toml")
}
