package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/taskboard/internal/board"
	"github.com/nibzard/taskboard/internal/utils"
)

const (
	deleteMark   = "✕"
	memoryNotice = "Tasks are kept in memory only. Quitting discards every change."
)

func (m *Model) View() string {
	boardView, _ := m.renderBoard()

	footer := m.help.View(m.keys)
	if m.showHelp {
		footer = m.styles.helpBox.Render(footer + "\n\n" + m.styles.notice.Render(memoryNotice))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		m.statusView(),
		"",
		boardView,
		"",
		m.inputView(),
		footer,
	)
}

func (m *Model) headerView() string {
	return m.styles.header.Render(m.clip(m.board.Title()))
}

func (m *Model) statusView() string {
	return m.styles.status.Render(m.clip(m.statusLine()))
}

// boardTop is the screen row of the first board line. The heading and
// status come first, then one blank row; a title may span several lines.
func (m *Model) boardTop() int {
	return lipgloss.Height(m.headerView()) + lipgloss.Height(m.statusView()) + 1
}

// layout measures the board as View would draw it.
func (m *Model) layout() boardLayout {
	_, l := m.renderBoard()
	return l
}

func (m *Model) renderBoard() (string, boardLayout) {
	width := m.effectiveColumnWidth()
	drag, dragging := m.board.Drag()
	top := m.boardTop()
	layout := boardLayout{top: top}

	var rendered []string
	x := 0
	for i, col := range m.board.Columns() {
		focused := i == m.selected
		style := m.columnStyle(col.ID, focused, dragging)
		contentX := x + style.GetBorderLeftSize() + style.GetPaddingLeft()
		y := top + style.GetBorderTopSize() + 1

		cl := columnLayout{id: col.ID, x0: x}
		parts := []string{m.columnHeader(col, width-style.GetHorizontalPadding())}
		for idx, task := range col.Tasks {
			selected := focused && idx == m.cursor[col.ID]
			isDragged := dragging && drag.Task.ID == task.ID
			card := m.renderCard(task, width, selected, isDragged)
			h := lipgloss.Height(card)
			cl.cards = append(cl.cards, cardLayout{
				taskID: task.ID,
				index:  idx,
				x0:     contentX,
				x1:     contentX + lipgloss.Width(card),
				y0:     y,
				y1:     y + h,
			})
			parts = append(parts, card)
			y += h
		}
		if len(col.Tasks) == 0 {
			empty := "(empty)"
			if dragging {
				empty = "(drop here)"
			}
			parts = append(parts, m.styles.muted.Render(empty))
		}

		box := style.Width(width).Render(strings.Join(parts, "\n"))
		w := lipgloss.Width(box)
		cl.x1 = x + w - style.GetMarginRight()
		layout.columns = append(layout.columns, cl)
		rendered = append(rendered, box)
		x += w
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	layout.bottom = top + lipgloss.Height(view)
	return view, layout
}

func (m *Model) columnStyle(id board.ColumnID, focused, dragging bool) lipgloss.Style {
	switch {
	case dragging && id == m.dropTarget:
		return m.styles.columnDrop
	case focused:
		return m.styles.columnFocus
	}
	return m.styles.column
}

func (m *Model) columnHeader(col board.Column, width int) string {
	badge := m.styles.badge.Render(fmt.Sprintf("%d", col.Len()))
	title := utils.Truncate(col.Title, width-lipgloss.Width(badge)-1)
	return m.styles.columnTitle.Render(title) + " " + badge
}

func (m *Model) renderCard(task board.Task, columnWidth int, selected, dragged bool) string {
	style := m.styles.card
	switch {
	case dragged:
		style = m.styles.cardDragged
	case selected:
		style = m.styles.cardFocus
	}
	cardWidth := columnWidth - m.styles.column.GetHorizontalPadding() - style.GetHorizontalBorderSize()
	textWidth := cardWidth - style.GetHorizontalPadding()

	title := utils.Truncate(task.Title, textWidth-2)
	gap := textWidth - lipgloss.Width(title) - lipgloss.Width(deleteMark)
	lines := []string{
		m.styles.cardTitle.Render(title) + strings.Repeat(" ", max(gap, 1)) + m.styles.deleteMark.Render(deleteMark),
	}
	if task.Description != "" {
		lines = append(lines, m.styles.cardDesc.Render(utils.Truncate(task.Description, textWidth)))
	}
	return style.Width(cardWidth).Render(strings.Join(lines, "\n"))
}

// effectiveColumnWidth shrinks the configured width to fit the terminal.
func (m *Model) effectiveColumnWidth() int {
	w := m.columnWidth
	if m.width > 0 {
		frame := m.styles.column.GetHorizontalBorderSize() + m.styles.column.GetMarginRight()
		if fit := m.width/len(m.columns) - frame; fit < w {
			w = fit
		}
	}
	return max(w, minColumnWidth)
}

func (m *Model) statusLine() string {
	if drag, ok := m.board.Drag(); ok {
		target := "nowhere"
		if m.dropTarget != "" {
			target = m.columnTitle(m.dropTarget)
		}
		return fmt.Sprintf("Moving %q → %s (release or space to drop, esc to cancel)", drag.Task.Title, target)
	}
	return m.status
}

func (m *Model) inputView() string {
	label := m.styles.inputLabel.Render(fmt.Sprintf("New task in %s: ", m.columnTitle(m.selectedColumn())))
	if !m.inputActive && m.input.Value() == "" {
		return label + m.styles.muted.Render("press a to type, enter to add")
	}
	return label + m.input.View()
}

func (m *Model) clip(s string) string {
	if m.width <= 0 {
		return s
	}
	return utils.Truncate(s, m.width)
}
