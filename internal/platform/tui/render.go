package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/beyond2048/internal/core"
)

// tileStyle builds a tile style from 256-color codes.
func tileStyle(bg, fg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Bold(true)
}

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorBorder:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorTitle:   lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorMuted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	core.ColorAccent:  lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
	core.ColorWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
	core.ColorEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),

	core.ColorTile2:     tileStyle("255", "238"),
	core.ColorTile4:     tileStyle("230", "238"),
	core.ColorTile8:     tileStyle("215", "231"),
	core.ColorTile16:    tileStyle("209", "231"),
	core.ColorTile32:    tileStyle("203", "231"),
	core.ColorTile64:    tileStyle("196", "231"),
	core.ColorTile128:   tileStyle("229", "238"),
	core.ColorTile256:   tileStyle("228", "238"),
	core.ColorTile512:   tileStyle("227", "238"),
	core.ColorTile1024:  tileStyle("221", "231"),
	core.ColorTile2048:  tileStyle("220", "231"),
	core.ColorTileSuper: tileStyle("237", "231"),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
