package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/taskboard/internal/board"
)

const (
	defaultColumnWidth = 30
	minColumnWidth     = 16
	maxTitleLength     = 200
)

// Model is the bubbletea model for the board. It owns the board for the
// lifetime of the program; every mutation happens inside Update.
type Model struct {
	board  *board.Board
	keys   keyMap
	help   help.Model
	input  textinput.Model
	styles boardStyles

	columns     []board.ColumnID
	selected    int
	cursor      map[board.ColumnID]int
	inputActive bool
	showHelp    bool

	mouse       bool
	columnWidth int
	width       int
	height      int

	// dropTarget is the column highlighted while a drag is in flight.
	dropTarget board.ColumnID
	mouseDrag  bool
	status     string
}

// NewModel creates a model around b.
func NewModel(b *board.Board, opts ...TUIOption) *Model {
	c := newTUIConfig(opts)

	ti := textinput.New()
	ti.Placeholder = "new task title"
	ti.Prompt = ""
	ti.CharLimit = maxTitleLength

	return &Model{
		board:       b,
		keys:        defaultKeyMap(),
		help:        help.New(),
		input:       ti,
		styles:      newBoardStyles(),
		columns:     board.ColumnIDs(),
		cursor:      make(map[board.ColumnID]int),
		mouse:       c.mouse,
		columnWidth: c.columnWidth,
	}
}

// Board returns the board the model drives.
func (m *Model) Board() *board.Board {
	return m.board
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if m.inputActive {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	case tea.MouseMsg:
		if m.mouse {
			m.updateMouse(msg)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Submit):
		m.submitInput()
		return m, nil
	case key.Matches(msg, m.keys.Back):
		m.inputActive = false
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.NextCol):
		m.moveSelection(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevCol):
		m.moveSelection(-1)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.board.Dragging() {
		return m.updateDragKeys(msg)
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	case key.Matches(msg, m.keys.Left, m.keys.PrevCol):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Right, m.keys.NextCol):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.NewTask):
		m.inputActive = true
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Submit):
		if m.input.Value() != "" {
			m.submitInput()
		}
	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selectedTask(); ok {
			m.deleteTask(m.selectedColumn(), task)
		}
	case key.Matches(msg, m.keys.PickUp):
		if task, ok := m.selectedTask(); ok {
			m.pickUp(m.selectedColumn(), task)
		}
	case key.Matches(msg, m.keys.Back):
		m.status = ""
	}
	return m, nil
}

func (m *Model) updateDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Left, m.keys.PrevCol):
		m.moveDropTarget(-1)
	case key.Matches(msg, m.keys.Right, m.keys.NextCol):
		m.moveDropTarget(1)
	case key.Matches(msg, m.keys.Drop):
		m.drop(m.dropTarget)
	case key.Matches(msg, m.keys.Back):
		m.cancelDrag()
	case key.Matches(msg, m.keys.Delete):
		if task, ok := m.selectedTask(); ok {
			m.deleteTask(m.selectedColumn(), task)
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
	}
	return m, nil
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	layout := m.layout()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if col, card, ok := layout.cardAt(msg.X, msg.Y); ok {
			m.focus(col, card.index)
			task, found := m.taskAt(col, card.index)
			if !found {
				return
			}
			if card.onDelete(msg.X, msg.Y) {
				m.deleteTask(col, task)
				return
			}
			m.pickUp(col, task)
			m.mouseDrag = true
			return
		}
		if col, ok := layout.columnAt(msg.X, msg.Y); ok {
			m.focus(col, m.cursor[col])
		}
	case tea.MouseActionMotion:
		if !m.mouseDrag || !m.board.Dragging() {
			return
		}
		if col, ok := layout.columnAt(msg.X, msg.Y); ok {
			m.dropTarget = col
		} else {
			m.dropTarget = ""
		}
	case tea.MouseActionRelease:
		if !m.mouseDrag {
			return
		}
		m.mouseDrag = false
		if !m.board.Dragging() {
			return
		}
		if col, ok := layout.columnAt(msg.X, msg.Y); ok {
			m.drop(col)
			return
		}
		m.cancelDrag()
	}
}

func (m *Model) submitInput() {
	col := m.selectedColumn()
	task, ok := m.board.AddTask(col, m.input.Value())
	if !ok {
		m.status = "Task title is empty"
		return
	}
	m.input.Reset()
	m.cursor[col] = m.columnLen(col) - 1
	m.status = fmt.Sprintf("Added %q to %s", task.Title, m.columnTitle(col))
}

func (m *Model) deleteTask(col board.ColumnID, task board.Task) {
	if !m.board.DeleteTask(col, task.ID) {
		return
	}
	if !m.board.Dragging() {
		m.dropTarget = ""
		m.mouseDrag = false
	}
	m.clampCursor(col)
	m.status = fmt.Sprintf("Deleted %q", task.Title)
}

func (m *Model) pickUp(col board.ColumnID, task board.Task) {
	m.board.BeginDrag(task, col)
	m.dropTarget = col
	m.status = fmt.Sprintf("Moving %q: choose a column and drop", task.Title)
}

func (m *Model) drop(target board.ColumnID) {
	drag, ok := m.board.Drag()
	if !ok {
		return
	}
	m.dropTarget = ""
	if !m.board.DropOnColumn(target) {
		m.clampCursor(drag.Source)
		m.status = "Move cancelled"
		return
	}
	m.focus(target, m.columnLen(target)-1)
	m.clampCursor(drag.Source)
	m.status = fmt.Sprintf("Moved %q to %s", drag.Task.Title, m.columnTitle(target))
}

func (m *Model) cancelDrag() {
	m.dropTarget = ""
	m.mouseDrag = false
	if m.board.CancelDrag() {
		m.status = "Move cancelled"
	}
}

func (m *Model) moveSelection(delta int) {
	n := len(m.columns)
	m.selected = ((m.selected+delta)%n + n) % n
}

func (m *Model) moveDropTarget(delta int) {
	i := m.columnIndex(m.dropTarget)
	if i < 0 {
		i = m.selected
	}
	n := len(m.columns)
	m.dropTarget = m.columns[((i+delta)%n+n)%n]
}

func (m *Model) moveCursor(delta int) {
	col := m.selectedColumn()
	m.cursor[col] += delta
	m.clampCursor(col)
}

func (m *Model) clampCursor(col board.ColumnID) {
	n := m.columnLen(col)
	switch {
	case n == 0 || m.cursor[col] < 0:
		m.cursor[col] = 0
	case m.cursor[col] >= n:
		m.cursor[col] = n - 1
	}
}

func (m *Model) focus(col board.ColumnID, index int) {
	if i := m.columnIndex(col); i >= 0 {
		m.selected = i
	}
	m.cursor[col] = index
	m.clampCursor(col)
}

func (m *Model) selectedColumn() board.ColumnID {
	return m.columns[m.selected]
}

func (m *Model) selectedTask() (board.Task, bool) {
	col := m.selectedColumn()
	return m.taskAt(col, m.cursor[col])
}

func (m *Model) taskAt(col board.ColumnID, index int) (board.Task, bool) {
	c, ok := m.board.Column(col)
	if !ok || index < 0 || index >= len(c.Tasks) {
		return board.Task{}, false
	}
	return c.Tasks[index], true
}

func (m *Model) columnLen(col board.ColumnID) int {
	c, _ := m.board.Column(col)
	return c.Len()
}

func (m *Model) columnTitle(col board.ColumnID) string {
	c, ok := m.board.Column(col)
	if !ok {
		return string(col)
	}
	return c.Title
}

func (m *Model) columnIndex(col board.ColumnID) int {
	for i, id := range m.columns {
		if id == col {
			return i
		}
	}
	return -1
}
