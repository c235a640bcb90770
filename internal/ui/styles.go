package ui

import "github.com/charmbracelet/lipgloss"

type boardStyles struct {
	header      lipgloss.Style
	status      lipgloss.Style
	column      lipgloss.Style
	columnFocus lipgloss.Style
	columnDrop  lipgloss.Style
	columnTitle lipgloss.Style
	badge       lipgloss.Style
	card        lipgloss.Style
	cardFocus   lipgloss.Style
	cardDragged lipgloss.Style
	cardTitle   lipgloss.Style
	cardDesc    lipgloss.Style
	deleteMark  lipgloss.Style
	muted       lipgloss.Style
	inputLabel  lipgloss.Style
	notice      lipgloss.Style
	helpBox     lipgloss.Style
}

func newBoardStyles() boardStyles {
	rounded := lipgloss.RoundedBorder()
	return boardStyles{
		header:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		status:      lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		column:      lipgloss.NewStyle().Border(rounded).Padding(0, 1).MarginRight(1).BorderForeground(lipgloss.Color("240")),
		columnFocus: lipgloss.NewStyle().Border(rounded).Padding(0, 1).MarginRight(1).BorderForeground(lipgloss.Color("12")),
		columnDrop:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 1).MarginRight(1).BorderForeground(lipgloss.Color("10")),
		columnTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1),
		card:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("238")),
		cardFocus:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("229")),
		cardDragged: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1).BorderForeground(lipgloss.Color("10")).Faint(true),
		cardTitle:   lipgloss.NewStyle().Bold(true),
		cardDesc:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		deleteMark:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		muted:       lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		inputLabel:  lipgloss.NewStyle().Bold(true),
		notice:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		helpBox:     lipgloss.NewStyle().Border(rounded).BorderForeground(lipgloss.Color("99")).Padding(0, 1),
	}
}
