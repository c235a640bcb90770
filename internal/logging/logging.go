// Package logging writes per-run board event logs and diagnostics.
package logging

import (
	"bufio"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	eventLogExt = ".jsonl"
	diagLogExt  = ".log"
)

// RunLogger owns the log files of one program run: a JSONL event log and a
// plain diagnostics log, both named after the run id.
type RunLogger struct {
	Dir       string
	RunID     string
	EventPath string
	DiagPath  string

	events *os.File
	diag   *os.File
}

// NewRunLogger creates the per-project log directory under baseDir and
// opens both run files.
func NewRunLogger(baseDir, workDir string) (*RunLogger, error) {
	logDir, err := FindLogDir(baseDir, workDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	id := runID()
	r := &RunLogger{
		Dir:       logDir,
		RunID:     id,
		EventPath: filepath.Join(logDir, id+eventLogExt),
		DiagPath:  filepath.Join(logDir, id+diagLogExt),
	}
	if r.events, err = os.Create(r.EventPath); err != nil {
		return nil, fmt.Errorf("create event log: %w", err)
	}
	if r.diag, err = os.Create(r.DiagPath); err != nil {
		r.events.Close()
		return nil, fmt.Errorf("create diagnostics log: %w", err)
	}
	return r, nil
}

// Events returns the JSONL event log writer.
func (r *RunLogger) Events() io.Writer {
	return r.events
}

// Diagnostics returns the diagnostics log writer.
func (r *RunLogger) Diagnostics() io.Writer {
	return r.diag
}

// Close closes both log files.
func (r *RunLogger) Close() error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range []*os.File{r.events, r.diag} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FindLogDir returns the log directory used for runs started in workDir.
// Each working directory gets its own slugged subdirectory of baseDir.
func FindLogDir(baseDir, workDir string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("log base dir is empty")
	}
	if workDir == "" {
		workDir = "."
	}
	if abs, err := filepath.Abs(workDir); err == nil {
		workDir = abs
	}
	if !filepath.IsAbs(baseDir) {
		baseDir = filepath.Join(workDir, baseDir)
	}
	return filepath.Join(filepath.Clean(baseDir), projectSlug(workDir)), nil
}

// FindLatestLog returns the newest event log in logDir, or "" if none.
func FindLatestLog(logDir string) (string, error) {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read log dir: %w", err)
	}

	var latest string
	var latestTime time.Time
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), eventLogExt) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		// Ties go to the lexically later name; run ids sort by start time.
		if latest == "" || info.ModTime().After(latestTime) ||
			(info.ModTime().Equal(latestTime) && filepath.Join(logDir, entry.Name()) > latest) {
			latestTime = info.ModTime()
			latest = filepath.Join(logDir, entry.Name())
		}
	}
	return latest, nil
}

// TailLog copies the last n lines of path to w (all lines when n <= 0).
// With follow set it keeps copying new lines until ctx is done.
func TailLog(ctx context.Context, w io.Writer, path string, n int, follow bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if err := writeLastLines(w, file, n); err != nil {
		return err
	}
	if !follow {
		return nil
	}

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := io.Copy(w, file); err != nil {
				return err
			}
		}
	}
}

// writeLastLines writes the final n lines of r, leaving r at EOF.
func writeLastLines(w io.Writer, r io.Reader, n int) error {
	if n <= 0 {
		_, err := io.Copy(w, r)
		return err
	}

	ring := make([]string, 0, n)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		if len(ring) == n {
			ring = ring[1:]
		}
		ring = append(ring, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log file: %w", err)
	}
	for _, line := range ring {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func projectSlug(projectRoot string) string {
	return fmt.Sprintf("%s-%s", slugify(filepath.Base(projectRoot)), hashPath(projectRoot))
}

func slugify(input string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, c := range input {
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteRune(c)
		lastUnderscore = false
	}

	slug := strings.Trim(b.String(), "_.")
	if slug == "" {
		return "board"
	}
	return slug
}

func hashPath(input string) string {
	sum := sha1.Sum([]byte(input))
	return hex.EncodeToString(sum[:])[:8]
}

func runID() string {
	return fmt.Sprintf("%s-%d", time.Now().UTC().Format("20060102-150405"), os.Getpid())
}
