package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme colors (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
	ColorBlue      = lipgloss.Color("#4385BE")
	ColorPurple    = lipgloss.Color("#8B7EC8")
	ColorYellow    = lipgloss.Color("#D0A215")
)

// SeriesColors colour consecutive segments of a share bar.
var SeriesColors = []lipgloss.Color{ColorBlue, ColorGreen, ColorOrange, ColorPurple, ColorYellow, ColorRed}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	valueStyle = lipgloss.NewStyle().
			Foreground(ColorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	warnStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	dimStyle = lipgloss.NewStyle().
			Foreground(ColorTextDim)
)

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	// RightAlign marks columns to right-align; the first column is always
	// left-aligned, every other column defaults to right when nil.
	RightAlign []bool
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

// RenderWarning renders a one-line diagnostic.
func RenderWarning(msg string) string {
	return "  " + warnStyle.Render("! "+msg)
}

// RenderMuted renders secondary text.
func RenderMuted(msg string) string {
	return mutedStyle.Render(msg)
}

// RenderTable renders a bordered table with headers and rows. A row
// holding the single cell "---" renders as a separator line.
func RenderTable(t Table) string {
	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}
	if numCols == 0 {
		return ""
	}

	widths := make([]int, numCols)
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < numCols {
				widths[i] = max(widths[i], lipgloss.Width(cell))
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}

	rule := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right))
		b.WriteString("\n")
	}
	line := func(cells []string, style lipgloss.Style, align bool) {
		b.WriteString(dimStyle.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			b.WriteString(style.Render(" " + pad(cell, widths[i], align && t.rightAligned(i)) + " "))
			if i < numCols-1 {
				b.WriteString(dimStyle.Render("│"))
			}
		}
		b.WriteString(dimStyle.Render("│"))
		b.WriteString("\n")
	}

	rule("╭", "┬", "╮")
	if len(t.Headers) > 0 {
		line(t.Headers, headerStyle, false)
		rule("├", "┼", "┤")
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			rule("├", "┼", "┤")
			continue
		}
		line(row, valueStyle, true)
	}
	rule("╰", "┴", "╯")

	return b.String()
}

func (t Table) rightAligned(col int) bool {
	if col == 0 {
		return false
	}
	if t.RightAlign == nil {
		return true
	}
	return col < len(t.RightAlign) && t.RightAlign[col]
}

func pad(s string, width int, right bool) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	if right {
		return strings.Repeat(" ", gap) + s
	}
	return s + strings.Repeat(" ", gap)
}

// Bar is one labelled entry of a bar chart.
type Bar struct {
	Label string
	Value float64
	Note  string // printed after the value, e.g. a money total
}

// RenderBarChart renders labelled horizontal bars scaled to the largest
// value. Zero values render an empty track, so every label is shown.
func RenderBarChart(title string, bars []Bar, maxWidth int, color lipgloss.Color) string {
	var b strings.Builder
	if title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(title))
		b.WriteString("\n")
	}
	if len(bars) == 0 {
		b.WriteString("  ")
		b.WriteString(mutedStyle.Render("no data"))
		b.WriteString("\n")
		return b.String()
	}

	labelW := 0
	var peak float64
	for _, bar := range bars {
		labelW = max(labelW, lipgloss.Width(bar.Label))
		peak = max(peak, bar.Value)
	}

	barStyle := lipgloss.NewStyle().Foreground(color)
	for _, bar := range bars {
		n := 0
		if peak > 0 && bar.Value > 0 {
			n = max(1, int(bar.Value/peak*float64(maxWidth)+0.5))
		}
		fmt.Fprintf(&b, "  %s %s%s %s",
			pad(bar.Label, labelW, false),
			barStyle.Render(strings.Repeat("█", n)),
			dimStyle.Render(strings.Repeat("░", maxWidth-n)),
			valueStyle.Render(FormatNumber(int64(bar.Value))),
		)
		if bar.Note != "" {
			b.WriteString("  ")
			b.WriteString(mutedStyle.Render(bar.Note))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderShareBar renders one bar split into coloured segments proportional
// to values, followed by a legend with each share.
func RenderShareBar(labels []string, values []float64, width int) string {
	var total float64
	for _, v := range values {
		total += v
	}
	if total <= 0 || width <= 0 {
		return "  " + mutedStyle.Render("no data") + "\n"
	}

	var bar, legend strings.Builder
	used := 0
	for i, v := range values {
		n := int(v / total * float64(width))
		if i == len(values)-1 {
			n = width - used
		}
		used += n
		style := lipgloss.NewStyle().Foreground(SeriesColors[i%len(SeriesColors)])
		bar.WriteString(style.Render(strings.Repeat("█", n)))

		legend.WriteString("  ")
		legend.WriteString(style.Render("■"))
		fmt.Fprintf(&legend, " %s %s\n", labels[i], mutedStyle.Render(FormatPercent(v/total)))
	}
	return "  " + bar.String() + "\n" + legend.String()
}
