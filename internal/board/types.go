package board

import (
	"fmt"
	"strings"
)

// ColumnID identifies one of the fixed board columns.
type ColumnID string

const (
	ColumnTodo       ColumnID = "todo"
	ColumnInProgress ColumnID = "in_progress"
	ColumnDone       ColumnID = "done"
)

// ColumnIDs returns the column ids in board order.
func ColumnIDs() []ColumnID {
	return []ColumnID{ColumnTodo, ColumnInProgress, ColumnDone}
}

// Valid reports whether id names one of the fixed columns.
func (id ColumnID) Valid() bool {
	switch id {
	case ColumnTodo, ColumnInProgress, ColumnDone:
		return true
	}
	return false
}

// ParseColumnID converts user input to a ColumnID. It accepts the canonical
// ids plus a few spellings people type ("doing", "in-progress", "1".."3"),
// ignoring case and surrounding space.
func ParseColumnID(s string) (ColumnID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "todo", "to-do", "1":
		return ColumnTodo, nil
	case "in_progress", "in-progress", "inprogress", "doing", "2":
		return ColumnInProgress, nil
	case "done", "3":
		return ColumnDone, nil
	}
	return "", fmt.Errorf("unknown column %q, must be one of: todo, in_progress, done", s)
}

// Task is a single card on the board.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// IsZero returns true if the task is empty (has no ID).
func (t Task) IsZero() bool {
	return t.ID == ""
}

// Column is a workflow stage and the tasks currently in it.
type Column struct {
	ID    ColumnID `json:"id"`
	Title string   `json:"title"`
	Tasks []Task   `json:"tasks"`
}

// Len returns the number of tasks in the column.
func (c Column) Len() int {
	return len(c.Tasks)
}

// indexOf returns the position of taskID in the column, or -1.
func (c Column) indexOf(taskID string) int {
	for i := range c.Tasks {
		if c.Tasks[i].ID == taskID {
			return i
		}
	}
	return -1
}

func (c Column) clone() Column {
	tasks := make([]Task, len(c.Tasks))
	copy(tasks, c.Tasks)
	c.Tasks = tasks
	return c
}

// DragContext records a move in flight.
type DragContext struct {
	Task   Task
	Source ColumnID
}
