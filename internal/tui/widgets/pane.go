package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	paneBorder       = lipgloss.Color("#6c7086")
	paneBorderActive = lipgloss.Color("#89b4fa")
	paneBorderError  = lipgloss.Color("#f38ba8")
	paneText         = lipgloss.Color("#cdd6f4")
)

// Pane is a rounded box with the title set into the top border.
type Pane struct {
	Title   string
	Content string
	Active  bool
	Invalid bool
}

func (p Pane) Render(width, height int) string {
	width = max(width, 4)
	height = max(height, 3)

	color := paneBorder
	switch {
	case p.Invalid:
		color = paneBorderError
	case p.Active:
		color = paneBorderActive
	}
	border := lipgloss.NewStyle().Foreground(color)
	title := lipgloss.NewStyle().Foreground(paneText).Bold(true)

	inner := width - 2
	label := ""
	if t := strings.TrimSpace(p.Title); t != "" {
		label = " " + ansi.Truncate(t, max(1, inner-3), "") + " "
	}
	rest := max(0, inner-1-ansi.StringWidth(label))
	if label == "" {
		rest = inner - 1
	}

	rows := make([]string, 0, height)
	rows = append(rows, border.Render("╭─")+title.Render(label)+border.Render(strings.Repeat("─", rest)+"╮"))
	lines := strings.Split(p.Content, "\n")
	side := border.Render("│")
	for i := 0; i < height-2; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		rows = append(rows, side+" "+PadRight(line, inner-2)+" "+side)
	}
	rows = append(rows, border.Render("╰"+strings.Repeat("─", inner)+"╯"))
	return strings.Join(rows, "\n")
}
