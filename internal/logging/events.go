package logging

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskboard/internal/board"
)

// EventWriter records board events.
type EventWriter interface {
	Write(event board.Event) error
}

// JSONLWriter writes one JSON object per line. It is safe for concurrent use.
type JSONLWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewJSONLWriter creates a JSONL event writer on w.
func NewJSONLWriter(w io.Writer) *JSONLWriter {
	return &JSONLWriter{w: w}
}

// Write appends event as a JSON line.
func (j *JSONLWriter) Write(event board.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()
	_, err = j.w.Write(data)
	return err
}

// ConsoleWriter mirrors events to a leveled charmbracelet logger.
// Moves, adds and deletes log at info; drag bookkeeping at debug.
type ConsoleWriter struct {
	logger *log.Logger
}

// NewConsoleWriter wraps logger.
func NewConsoleWriter(logger *log.Logger) *ConsoleWriter {
	return &ConsoleWriter{logger: logger}
}

// Write logs the event.
func (c *ConsoleWriter) Write(event board.Event) error {
	msg := eventMessage(event)
	fields := eventFields(event)
	switch event.Type {
	case board.EventTaskAdded, board.EventTaskDeleted, board.EventTaskMoved:
		c.logger.Info(msg, fields...)
	default:
		c.logger.Debug(msg, fields...)
	}
	return nil
}

func eventMessage(event board.Event) string {
	switch event.Type {
	case board.EventTaskAdded:
		return "Task added"
	case board.EventTaskDeleted:
		return "Task deleted"
	case board.EventTaskMoved:
		return "Task moved"
	case board.EventDragStarted:
		return "Drag started"
	case board.EventDragCancelled:
		return "Drag cancelled"
	default:
		return string(event.Type)
	}
}

func eventFields(event board.Event) []any {
	fields := []any{"task_id", event.Task.ID, "title", event.Task.Title}
	if event.Column != "" {
		fields = append(fields, "column", event.Column)
	}
	if event.From != "" {
		fields = append(fields, "from", event.From)
	}
	if event.To != "" {
		fields = append(fields, "to", event.To)
	}
	return fields
}

// MultiWriter fans events out to several writers.
type MultiWriter struct {
	writers []EventWriter
}

// NewMultiWriter creates a writer that writes to every non-nil writer.
func NewMultiWriter(writers ...EventWriter) *MultiWriter {
	m := &MultiWriter{}
	for _, w := range writers {
		if w != nil {
			m.writers = append(m.writers, w)
		}
	}
	return m
}

// Write writes the event to all writers and joins their errors.
func (m *MultiWriter) Write(event board.Event) error {
	var errs []error
	for _, w := range m.writers {
		if err := w.Write(event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NullWriter discards events.
type NullWriter struct{}

// Write does nothing.
func (NullWriter) Write(board.Event) error {
	return nil
}

// Observer adapts w to a board observer. Write failures are reported to
// logger, since the board has no way to surface them.
func Observer(w EventWriter, logger *log.Logger) board.Observer {
	if w == nil {
		w = NullWriter{}
	}
	return board.ObserverFunc(func(event board.Event) {
		if err := w.Write(event); err != nil && logger != nil {
			logger.Warn("failed to record board event", "type", event.Type, "err", err)
		}
	})
}
