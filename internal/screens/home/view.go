package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/jlptquiz/internal/dataset"
	"github.com/abhisek/jlptquiz/internal/knowledge"
	"github.com/abhisek/jlptquiz/internal/ui/components"
	"github.com/abhisek/jlptquiz/internal/ui/theme"
)

const titleFull = `     ██╗██╗     ██████╗ ████████╗
     ██║██║     ██╔══██╗╚══██╔══╝
     ██║██║     ██████╔╝   ██║
██   ██║██║     ██╔═══╝    ██║
╚█████╔╝███████╗██║        ██║
 ╚════╝ ╚══════╝╚═╝        ╚═╝`

const titleCompact = "J · L · P · T"

// contentWidth is the shared width of every home section.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	title := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(art))
	sub := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Foreground(theme.TextDim).Render("日本語能力試験 practice")
	return title + "\n" + sub
}

// renderStats shows loaded items and known counts per sheet.
func renderStats(lib *dataset.Library, counts map[dataset.Kind]map[knowledge.Label]int, cw int) string {
	var parts []string
	for _, kind := range dataset.AllKinds {
		ds := lib.Get(kind)
		if ds == nil {
			continue
		}
		known := counts[kind][knowledge.Good]
		parts = append(parts, fmt.Sprintf("%s %s",
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(string(kind)),
			lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("%d/%d", known, ds.Len())),
		))
	}
	stats := "no data loaded"
	if len(parts) > 0 {
		stats = lipgloss.JoinHorizontal(lipgloss.Top, joinWith(parts, "   ")...)
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func joinWith(parts []string, sep string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, p)
	}
	return out
}

func renderMenu(m components.Menu, cw int) string {
	return lipgloss.NewStyle().Width(cw).Render(m.View())
}

func renderError(msg string, cw int) string {
	return lipgloss.NewStyle().Width(cw).Foreground(theme.Error).Render("Could not read labels: " + msg)
}

// renderFrame centres content in a rounded cabinet.
func renderFrame(content string, width, height int) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2).
		Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
