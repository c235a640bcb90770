// Package hooks runs an external command after board changes.
package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskboard/internal/board"
)

// queueSize bounds the events waiting for the hook command.
const queueSize = 64

// Options configures a hook invocation.
type Options struct {
	Command string
	Event   board.Event
	WorkDir string
	Stdout  io.Writer
	Stderr  io.Writer
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran       bool
	Command   []string
	ExitCode  int
	EventType board.EventType
	TaskID    string
}

// Triggers reports whether events of type t run the hook. Drag bookkeeping
// does not change the columns, so it never does.
func Triggers(t board.EventType) bool {
	switch t {
	case board.EventTaskAdded, board.EventTaskDeleted, board.EventTaskMoved:
		return true
	}
	return false
}

// Invoke runs the hook command as
//
//	<command> <event type> <task id> <column>
//
// with the event encoded as JSON on stdin. Column is the task's column after
// the change, or the column it was deleted from.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" || !Triggers(opts.Event.Type) {
		return Result{}, nil
	}

	payload, err := json.Marshal(opts.Event)
	if err != nil {
		return Result{}, fmt.Errorf("encode event: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	args := []string{string(opts.Event.Type), opts.Event.Task.ID, string(eventColumn(opts.Event))}
	cmd := exec.CommandContext(ctx, opts.Command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Stdin = bytes.NewReader(payload)
	cmd.Stdout = writerOr(opts.Stdout, os.Stdout)
	cmd.Stderr = writerOr(opts.Stderr, os.Stderr)

	err = cmd.Run()
	result := Result{
		Ran:       true,
		Command:   cmd.Args,
		ExitCode:  exitCodeFromError(err),
		EventType: opts.Event.Type,
		TaskID:    opts.Event.Task.ID,
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

// Runner is a board observer that runs the hook command for each event on a
// single background goroutine, in the order the events were committed.
type Runner struct {
	opts   Options
	logger *log.Logger
	events chan board.Event
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewRunner starts a runner for command. Hooks are cancelled when ctx is
// done. The TUI owns the terminal, so hook output defaults to io.Discard.
func NewRunner(ctx context.Context, command, workDir string, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Runner{
		opts: Options{
			Command: command,
			WorkDir: workDir,
			Stdout:  io.Discard,
			Stderr:  io.Discard,
		},
		logger: logger,
		events: make(chan board.Event, queueSize),
	}
	r.wg.Add(1)
	go r.run(ctx)
	return r
}

// Observe queues event. It never blocks the caller; when the queue is full
// the event is dropped and a warning logged.
func (r *Runner) Observe(event board.Event) {
	if !Triggers(event.Type) {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.events <- event:
	default:
		r.logger.Warn("hook queue full, event dropped", "type", event.Type, "task_id", event.Task.ID)
	}
}

// Close stops accepting events and waits for queued hooks to finish.
func (r *Runner) Close() {
	r.mu.Lock()
	if !r.closed {
		r.closed = true
		close(r.events)
	}
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Runner) run(ctx context.Context) {
	defer r.wg.Done()
	for event := range r.events {
		if ctx.Err() != nil {
			continue
		}
		opts := r.opts
		opts.Event = event
		result, err := Invoke(ctx, opts)
		if result.Ran {
			r.logger.Debug("Hook ran", "command", result.Command, "exit_code", result.ExitCode)
		}
		if err != nil {
			r.logger.Warn("hook failed", "type", event.Type, "task_id", event.Task.ID, "err", err)
		}
	}
}

func eventColumn(event board.Event) board.ColumnID {
	if event.To != "" {
		return event.To
	}
	return event.Column
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
