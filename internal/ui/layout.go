package ui

import "github.com/nibzard/taskboard/internal/board"

// boardLayout records where the last rendered board sits on screen, in
// absolute cell coordinates. Mouse events are resolved against it.
type boardLayout struct {
	top     int
	bottom  int
	columns []columnLayout
}

type columnLayout struct {
	id    board.ColumnID
	x0    int
	x1    int
	cards []cardLayout
}

type cardLayout struct {
	taskID string
	index  int
	x0, x1 int
	y0, y1 int
}

// columnAt returns the column under (x, y). Rows outside the board miss.
func (l boardLayout) columnAt(x, y int) (board.ColumnID, bool) {
	if y < l.top || y >= l.bottom {
		return "", false
	}
	for _, c := range l.columns {
		if x >= c.x0 && x < c.x1 {
			return c.id, true
		}
	}
	return "", false
}

// cardAt returns the card under (x, y) and the column holding it.
func (l boardLayout) cardAt(x, y int) (board.ColumnID, cardLayout, bool) {
	for _, c := range l.columns {
		if x < c.x0 || x >= c.x1 {
			continue
		}
		for _, card := range c.cards {
			if card.contains(x, y) {
				return c.id, card, true
			}
		}
	}
	return "", cardLayout{}, false
}

func (c cardLayout) contains(x, y int) bool {
	return x >= c.x0 && x < c.x1 && y >= c.y0 && y < c.y1
}

// onDelete reports whether (x, y) hits the ✕ drawn at the right end of the
// card's first text row. The target is three cells wide.
func (c cardLayout) onDelete(x, y int) bool {
	mark := c.x1 - 3
	return y == c.y0+1 && x >= mark-1 && x <= mark+1
}
