package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/width"

	"github.com/roach88/tianshu/internal/narrative"
)

// accentColors maps band accent names to ANSI 256 colors.
var accentColors = map[string]lipgloss.Color{
	"amber":   lipgloss.Color("214"),
	"emerald": lipgloss.Color("42"),
	"slate":   lipgloss.Color("247"),
	"orange":  lipgloss.Color("208"),
	"rose":    lipgloss.Color("204"),
}

// Theme holds the text-mode styles.
type Theme struct {
	Title lipgloss.Style
	Faint lipgloss.Style
	Card  lipgloss.Style
}

// DefaultTheme returns the styles used for text output.
func DefaultTheme() Theme {
	return Theme{
		Title: lipgloss.NewStyle().Bold(true),
		Faint: lipgloss.NewStyle().Faint(true),
		Card: lipgloss.NewStyle().
			Padding(0, 1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")),
	}
}

// bandStyle colors text with the band's accent.
func bandStyle(b narrative.Band) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(accentColors[b.Accent()]).Bold(true)
}

const meterCells = 10

// meter renders the band's fill percent as a bar.
func meter(b narrative.Band) string {
	filled := (b.Percent()*meterCells + 50) / 100
	return bandStyle(b).Render(strings.Repeat("█", filled)) + strings.Repeat("░", meterCells-filled)
}

// displayWidth returns the terminal columns s occupies. East Asian wide and
// fullwidth runes take two columns.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

// padRight pads s with spaces to w columns.
func padRight(s string, w int) string {
	if d := w - displayWidth(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

// padLeft right-aligns s in w columns.
func padLeft(s string, w int) string {
	if d := w - displayWidth(s); d > 0 {
		return strings.Repeat(" ", d) + s
	}
	return s
}

// table renders rows as left-aligned columns separated by two spaces.
// Columns listed in right are right-aligned.
func table(rows [][]string, right ...int) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], displayWidth(cell))
		}
	}
	alignRight := make(map[int]bool, len(right))
	for _, i := range right {
		alignRight[i] = true
	}

	var b strings.Builder
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			switch {
			case alignRight[i]:
				cells[i] = padLeft(cell, widths[i])
			case i == len(row)-1:
				cells[i] = cell
			default:
				cells[i] = padRight(cell, widths[i])
			}
		}
		b.WriteString(strings.Join(cells, "  "))
		b.WriteByte('\n')
	}
	return b.String()
}
