package board

import "time"

// EventType classifies a committed board change.
type EventType string

const (
	EventTaskAdded     EventType = "task_added"
	EventTaskDeleted   EventType = "task_deleted"
	EventTaskMoved     EventType = "task_moved"
	EventDragStarted   EventType = "drag_started"
	EventDragCancelled EventType = "drag_cancelled"
)

// Event describes one state change. Column is set for add and delete;
// From and To are set for moves and drag events.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Task      Task      `json:"task"`
	Column    ColumnID  `json:"column,omitempty"`
	From      ColumnID  `json:"from,omitempty"`
	To        ColumnID  `json:"to,omitempty"`
}

// Observer is notified after every committed change.
type Observer interface {
	Observe(event Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(event Event)

// Observe calls f.
func (f ObserverFunc) Observe(event Event) {
	f(event)
}
