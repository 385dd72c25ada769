package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/DigitallyRemastered/MIDI-RGB-Lighting/theme"
)

// ParamRow is one line of the parameter table.
type ParamRow struct {
	CC    int
	Name  string
	Layer string
	Value int    // 0-127
	Label string // shown instead of the bar, e.g. a mode name
	Used  bool   // read by the current foreground or background mode
}

const barWidth = 16

// RenderParamTable renders parameters with a value bar, highlighting the row
// at cursor and dimming parameters the current modes ignore.
func RenderParamTable(rows []ParamRow, cursor int, th *theme.Theme) string {
	normal := lipgloss.NewStyle().Foreground(th.FG())
	dim := lipgloss.NewStyle().Foreground(th.Muted())
	selected := lipgloss.NewStyle().Foreground(th.Cursor()).Bold(true)
	bar := lipgloss.NewStyle().Foreground(th.Accent())

	var lines []string
	for i, r := range rows {
		marker := " "
		style := normal
		switch {
		case i == cursor:
			marker = string(th.Symbols.Cursor)
			style = selected
		case !r.Used:
			marker = string(th.Symbols.Disabled)
			style = dim
		}

		value := r.Label
		if value == "" {
			filled := r.Value * barWidth / 127
			value = bar.Render(strings.Repeat("━", filled)) + dim.Render(strings.Repeat("─", barWidth-filled))
		}

		lines = append(lines, fmt.Sprintf("%s %s %s",
			style.Render(marker),
			style.Render(fmt.Sprintf("%2d %-16s %-10s %3d", r.CC, r.Name, r.Layer, r.Value)),
			value,
		))
	}
	return strings.Join(lines, "\n")
}

// RenderDrives shows one symbol per MIDI channel, filled while it holds a note.
func RenderDrives(current []uint8, th *theme.Theme) string {
	held := lipgloss.NewStyle().Foreground(th.Active())
	idle := lipgloss.NewStyle().Foreground(th.Muted())

	var out strings.Builder
	for ch := 1; ch < len(current); ch++ {
		if ch > 1 {
			out.WriteString(" ")
		}
		if current[ch] != 0 {
			out.WriteString(held.Render(string(th.Symbols.Held)))
		} else {
			out.WriteString(idle.Render(string(th.Symbols.Idle)))
		}
	}
	return out.String()
}
