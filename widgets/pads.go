package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/theme"
)

// RenderPad renders a single colored cell
func RenderPad(color theme.RGB, symbol rune) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color.Hex()))
	return style.Render(string(symbol))
}

// RenderStrip renders the strip as rows of width LEDs. A non-positive width
// puts everything on one row.
func RenderStrip(leds []theme.RGB, width int, symbol rune) string {
	if width <= 0 {
		width = len(leds)
	}
	var lines []string
	for start := 0; start < len(leds); start += width {
		end := min(start+width, len(leds))
		var line strings.Builder
		for _, c := range leds[start:end] {
			line.WriteString(RenderPad(c, symbol))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// RenderPadGrid renders an 8x8 grid of pads (row 0 at bottom, row 7 at top)
func RenderPadGrid(grid [8][8]theme.RGB, symbol rune) string {
	var lines []string
	for row := 7; row >= 0; row-- {
		var line strings.Builder
		for col := 0; col < 8; col++ {
			if col > 0 {
				line.WriteString(" ")
			}
			line.WriteString(RenderPad(grid[row][col], symbol))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
