package board

import (
	"strings"
	"time"
)

// maxIDAttempts bounds how often AddTask re-draws an id that is already on
// the board before giving up.
const maxIDAttempts = 8

// Option configures a Board.
type Option func(*Board)

// WithTitle sets the board heading.
func WithTitle(title string) Option {
	return func(b *Board) {
		b.title = title
	}
}

// WithColumns replaces the built-in seed. Columns are matched to the fixed
// column set by id; unknown ids are ignored and missing columns start empty.
func WithColumns(columns []Column) Option {
	return func(b *Board) {
		b.seed = columns
	}
}

// WithColumnTitles overrides column display titles. Empty values keep the
// current title.
func WithColumnTitles(titles map[ColumnID]string) Option {
	return func(b *Board) {
		b.titles = titles
	}
}

// WithIDGenerator sets the task id source.
func WithIDGenerator(ids IDGenerator) Option {
	return func(b *Board) {
		if ids != nil {
			b.ids = ids
		}
	}
}

// WithObserver registers an observer for committed changes.
func WithObserver(o Observer) Option {
	return func(b *Board) {
		if o != nil {
			b.observers = append(b.observers, o)
		}
	}
}

// WithClock sets the time source used for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

// Board is the kanban state container. It is not safe for concurrent use;
// a single event loop owns it and routes every mutation through its methods.
type Board struct {
	title     string
	columns   []Column
	drag      *DragContext
	ids       IDGenerator
	observers []Observer
	now       func() time.Time

	seed   []Column
	titles map[ColumnID]string
}

// New creates a board from the built-in seed unless WithColumns is given.
func New(opts ...Option) *Board {
	b := &Board{
		title: DefaultTitle,
		ids:   UUIDGenerator{},
		now:   func() time.Time { return time.Now().UTC() },
		seed:  DefaultColumns(),
	}
	for _, opt := range opts {
		opt(b)
	}

	b.columns = make([]Column, 0, len(ColumnIDs()))
	for _, id := range ColumnIDs() {
		col := Column{ID: id, Title: DefaultColumnTitle(id), Tasks: []Task{}}
		for _, s := range b.seed {
			if s.ID != id {
				continue
			}
			if s.Title != "" {
				col.Title = s.Title
			}
			col.Tasks = append(col.Tasks, s.Tasks...)
		}
		if t := b.titles[id]; t != "" {
			col.Title = t
		}
		b.columns = append(b.columns, col)
	}
	b.seed = nil
	b.titles = nil
	return b
}

// Title returns the board heading.
func (b *Board) Title() string {
	return b.title
}

// Columns returns a copy of all columns in board order.
func (b *Board) Columns() []Column {
	out := make([]Column, len(b.columns))
	for i := range b.columns {
		out[i] = b.columns[i].clone()
	}
	return out
}

// Column returns a copy of the named column.
func (b *Board) Column(id ColumnID) (Column, bool) {
	i := b.columnIndex(id)
	if i < 0 {
		return Column{}, false
	}
	return b.columns[i].clone(), true
}

// Len returns the number of tasks on the board.
func (b *Board) Len() int {
	n := 0
	for i := range b.columns {
		n += len(b.columns[i].Tasks)
	}
	return n
}

// Locate finds the column holding taskID.
func (b *Board) Locate(taskID string) (ColumnID, Task, bool) {
	for i := range b.columns {
		if pos := b.columns[i].indexOf(taskID); pos >= 0 {
			return b.columns[i].ID, b.columns[i].Tasks[pos], true
		}
	}
	return "", Task{}, false
}

// Drag returns the active drag context, if any.
func (b *Board) Drag() (DragContext, bool) {
	if b.drag == nil {
		return DragContext{}, false
	}
	return *b.drag, true
}

// Dragging reports whether a drag is in flight.
func (b *Board) Dragging() bool {
	return b.drag != nil
}

// AddTask appends a task titled title to the named column. Titles are
// trimmed; a blank title or unknown column is ignored.
func (b *Board) AddTask(columnID ColumnID, title string) (Task, bool) {
	return b.AddTaskWithDescription(columnID, title, "")
}

// AddTaskWithDescription is AddTask with an optional description.
func (b *Board) AddTaskWithDescription(columnID ColumnID, title, description string) (Task, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Task{}, false
	}
	i := b.columnIndex(columnID)
	if i < 0 {
		return Task{}, false
	}
	id, ok := b.newID()
	if !ok {
		return Task{}, false
	}

	task := Task{ID: id, Title: title, Description: strings.TrimSpace(description)}
	tasks := make([]Task, 0, len(b.columns[i].Tasks)+1)
	tasks = append(tasks, b.columns[i].Tasks...)
	b.columns[i].Tasks = append(tasks, task)

	b.emit(Event{Type: EventTaskAdded, Task: task, Column: columnID})
	return task, true
}

// DeleteTask removes taskID from the named column. Deleting the task being
// dragged also ends the drag.
func (b *Board) DeleteTask(columnID ColumnID, taskID string) bool {
	i := b.columnIndex(columnID)
	if i < 0 {
		return false
	}
	pos := b.columns[i].indexOf(taskID)
	if pos < 0 {
		return false
	}

	task := b.columns[i].Tasks[pos]
	b.columns[i].Tasks = without(b.columns[i].Tasks, pos)
	if b.drag != nil && b.drag.Task.ID == taskID {
		b.drag = nil
	}

	b.emit(Event{Type: EventTaskDeleted, Task: task, Column: columnID})
	return true
}

// BeginDrag records task as in flight from source, replacing any drag
// already in progress.
func (b *Board) BeginDrag(task Task, source ColumnID) {
	b.drag = &DragContext{Task: task, Source: source}
	b.emit(Event{Type: EventDragStarted, Task: task, From: source})
}

// DropOnColumn moves the dragged task to the end of target and ends the
// drag. It returns false when no drag is active, target is unknown, or the
// task has left its source column; the drag ends in every case.
func (b *Board) DropOnColumn(target ColumnID) bool {
	if b.drag == nil {
		return false
	}
	drag := *b.drag
	b.drag = nil

	si := b.columnIndex(drag.Source)
	ti := b.columnIndex(target)
	pos := -1
	if si >= 0 {
		pos = b.columns[si].indexOf(drag.Task.ID)
	}
	if ti < 0 || pos < 0 {
		b.emit(Event{Type: EventDragCancelled, Task: drag.Task, From: drag.Source, To: target})
		return false
	}

	// Both columns are rebuilt before either is assigned so the task is never
	// absent from the board.
	task := b.columns[si].Tasks[pos]
	source := without(b.columns[si].Tasks, pos)
	var dest []Task
	if si == ti {
		dest = append(source, task)
		source = dest
	} else {
		dest = make([]Task, 0, len(b.columns[ti].Tasks)+1)
		dest = append(dest, b.columns[ti].Tasks...)
		dest = append(dest, task)
	}
	b.columns[si].Tasks, b.columns[ti].Tasks = source, dest

	b.emit(Event{Type: EventTaskMoved, Task: task, From: drag.Source, To: target})
	return true
}

// CancelDrag ends the drag without moving anything.
func (b *Board) CancelDrag() bool {
	if b.drag == nil {
		return false
	}
	drag := *b.drag
	b.drag = nil
	b.emit(Event{Type: EventDragCancelled, Task: drag.Task, From: drag.Source})
	return true
}

func (b *Board) columnIndex(id ColumnID) int {
	for i := range b.columns {
		if b.columns[i].ID == id {
			return i
		}
	}
	return -1
}

func (b *Board) newID() (string, bool) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := b.ids.NewID()
		if id == "" {
			continue
		}
		if _, _, taken := b.Locate(id); !taken {
			return id, true
		}
	}
	return "", false
}

func (b *Board) emit(event Event) {
	event.Timestamp = b.now()
	for _, o := range b.observers {
		o.Observe(event)
	}
}

// without returns a new slice holding tasks minus the element at pos.
func without(tasks []Task, pos int) []Task {
	out := make([]Task, 0, len(tasks))
	out = append(out, tasks[:pos]...)
	return append(out, tasks[pos+1:]...)
}
