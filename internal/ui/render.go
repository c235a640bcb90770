package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/taskboard/internal/board"
)

// RenderText writes the board as plain text, one column after another.
// It is used where no terminal is available.
func RenderText(w io.Writer, b *board.Board) error {
	var sb strings.Builder
	title := b.Title()
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", max(len([]rune(title)), 1)) + "\n")

	for _, col := range b.Columns() {
		fmt.Fprintf(&sb, "\n%s (%d)\n", col.Title, col.Len())
		if col.Len() == 0 {
			sb.WriteString("  (empty)\n")
			continue
		}
		for _, task := range col.Tasks {
			fmt.Fprintf(&sb, "  [%s] %s\n", task.ID, task.Title)
			if task.Description != "" {
				fmt.Fprintf(&sb, "      %s\n", task.Description)
			}
		}
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// Summary returns a one-line count of tasks per column.
func Summary(b *board.Board) string {
	cols := b.Columns()
	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		parts = append(parts, fmt.Sprintf("%s: %d", col.Title, col.Len()))
	}
	return strings.Join(parts, "  ")
}
