package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskboard/internal/board"
)

type failingWriter struct{}

func (failingWriter) Write(board.Event) error {
	return errors.New("disk full")
}

type countingWriter struct{ n int }

func (c *countingWriter) Write(board.Event) error {
	c.n++
	return nil
}

func testLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{
		Level:     log.DebugLevel,
		Formatter: log.TextFormatter,
	})
}

func sampleEvent() board.Event {
	return board.Event{
		Type:      board.EventTaskMoved,
		Timestamp: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Task:      board.Task{ID: "3", Title: "帖子详情页"},
		From:      board.ColumnInProgress,
		To:        board.ColumnDone,
	}
}

func TestJSONLWriter(t *testing.T) {
	var buf bytes.Buffer
	w := NewJSONLWriter(&buf)
	if err := w.Write(sampleEvent()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Write(board.Event{Type: board.EventDragCancelled}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines: got %d, want 2", len(lines))
	}
	var got board.Event
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("line 1 is not JSON: %v", err)
	}
	if got.Type != board.EventTaskMoved || got.From != board.ColumnInProgress || got.To != board.ColumnDone {
		t.Errorf("decoded event: got %+v", got)
	}
	if strings.Contains(lines[1], `"column"`) {
		t.Errorf("empty column should be omitted: %s", lines[1])
	}
}

func TestConsoleWriter(t *testing.T) {
	tests := []struct {
		name      string
		event     board.Event
		wantLevel string
		wantMsg   string
		wantField string
	}{
		{"move", sampleEvent(), "INFO", "Task moved", "from=in_progress"},
		{"add", board.Event{Type: board.EventTaskAdded, Task: board.Task{ID: "9"}, Column: board.ColumnTodo}, "INFO", "Task added", "column=todo"},
		{"delete", board.Event{Type: board.EventTaskDeleted, Task: board.Task{ID: "9"}, Column: board.ColumnDone}, "INFO", "Task deleted", "task_id=9"},
		{"drag", board.Event{Type: board.EventDragStarted, From: board.ColumnTodo}, "DEBU", "Drag started", "from=todo"},
		{"cancel", board.Event{Type: board.EventDragCancelled}, "DEBU", "Drag cancelled", "task_id="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewConsoleWriter(testLogger(&buf))
			if err := w.Write(tt.event); err != nil {
				t.Fatalf("Write: %v", err)
			}
			out := buf.String()
			for _, want := range []string{tt.wantLevel, tt.wantMsg, tt.wantField} {
				if !strings.Contains(out, want) {
					t.Errorf("output %q missing %q", out, want)
				}
			}
		})
	}
}

func TestConsoleWriterRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, LoggerOptions{Level: log.InfoLevel, Formatter: log.TextFormatter})
	w := NewConsoleWriter(logger)
	_ = w.Write(board.Event{Type: board.EventDragStarted})
	if buf.Len() != 0 {
		t.Errorf("debug event logged at info level: %q", buf.String())
	}
}

func TestMultiWriter(t *testing.T) {
	a, b := &countingWriter{}, &countingWriter{}
	m := NewMultiWriter(a, nil, failingWriter{}, b)

	err := m.Write(sampleEvent())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected joined error, got %v", err)
	}
	if a.n != 1 || b.n != 1 {
		t.Errorf("writers called %d and %d times, want 1 each", a.n, b.n)
	}
}

func TestNullWriter(t *testing.T) {
	if err := (NullWriter{}).Write(sampleEvent()); err != nil {
		t.Errorf("NullWriter: %v", err)
	}
}

func TestObserver(t *testing.T) {
	var logBuf bytes.Buffer
	obs := Observer(failingWriter{}, testLogger(&logBuf))
	obs.Observe(sampleEvent())
	if !strings.Contains(logBuf.String(), "failed to record board event") {
		t.Errorf("write failure not logged: %q", logBuf.String())
	}

	counter := &countingWriter{}
	b := board.New(board.WithObserver(Observer(counter, nil)))
	b.AddTask(board.ColumnTodo, "one")
	b.AddTask(board.ColumnTodo, " ")
	if counter.n != 1 {
		t.Errorf("events recorded: got %d, want 1", counter.n)
	}

	Observer(nil, nil).Observe(sampleEvent())
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"INFO":    log.InfoLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"fatal":   log.FatalLevel,
		"bogus":   log.InfoLevel,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q): got %v, want %v", in, got, want)
		}
	}
}

func TestParseLogFormatter(t *testing.T) {
	tests := map[string]log.Formatter{
		"json":   log.JSONFormatter,
		"logfmt": log.LogfmtFormatter,
		"text":   log.TextFormatter,
		"":       log.TextFormatter,
	}
	for in, want := range tests {
		if got := ParseLogFormatter(in); got != want {
			t.Errorf("ParseLogFormatter(%q): got %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerFromConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerFromConfig(&buf, "warn", "json", false, false)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) {
		t.Errorf("expected JSON output, got %q", out)
	}
}
