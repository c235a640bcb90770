// Package ui provides the interactive terminal board and its plain-text
// rendering.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/taskboard/internal/board"
)

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	mouse       bool
	columnWidth int
	logger      *log.Logger
}

func newTUIConfig(opts []TUIOption) *tuiConfig {
	c := &tuiConfig{
		mouse:       true,
		columnWidth: defaultColumnWidth,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.columnWidth < minColumnWidth {
		c.columnWidth = minColumnWidth
	}
	if c.logger == nil {
		c.logger = log.New(io.Discard)
	}
	return c
}

// WithMouse enables mouse drag and drop.
func WithMouse(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.mouse = enabled
	}
}

// WithColumnWidth sets the preferred column width in cells.
func WithColumnWidth(width int) TUIOption {
	return func(c *tuiConfig) {
		c.columnWidth = width
	}
}

// WithLogger sets the diagnostics logger. It must not write to the terminal
// the board is drawn on.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		c.logger = logger
	}
}

// RunTUI runs the interactive board until the user quits or ctx is done.
func RunTUI(ctx context.Context, b *board.Board, opts ...TUIOption) error {
	c := newTUIConfig(opts)

	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if c.mouse {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}

	c.logger.Debug("Starting board", "tasks", b.Len(), "mouse", c.mouse)
	program := tea.NewProgram(NewModel(b, opts...), progOpts...)
	_, err := program.Run()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		return err
	}
	c.logger.Debug("Board closed", "tasks", b.Len())
	return nil
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
