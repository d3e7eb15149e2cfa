package components

import (
	"fmt"
	"strings"

	"github.com/fileandclaim/fcidash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ShareBar renders a labeled bar showing pct of a whole, e.g. one stage's
// share of all charted deals.
func ShareBar(label string, pct float64, labelW, barWidth int, color lipgloss.Color) string {
	t := theme.Active
	pct = min(max(pct, 0), 1)

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.SurfaceBright)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}

// SegmentedBar renders values as one bar of width cells split into
// proportional colored segments. Each non-zero value keeps at least one
// cell while width allows; the last segment absorbs rounding.
func SegmentedBar(values []float64, colors []lipgloss.Color, width int) string {
	t := theme.Active
	total := 0.0
	for _, v := range values {
		total += max(v, 0)
	}
	if total == 0 || width <= 0 || len(colors) == 0 {
		return lipgloss.NewStyle().Foreground(t.SurfaceBright).Background(t.Surface).
			Render(strings.Repeat("░", max(width, 0)))
	}

	cells := segmentWidths(values, total, width)

	var b strings.Builder
	for i, n := range cells {
		style := lipgloss.NewStyle().Foreground(colors[i%len(colors)]).Background(t.Surface)
		b.WriteString(style.Render(strings.Repeat("█", n)))
	}
	return b.String()
}

func segmentWidths(values []float64, total float64, width int) []int {
	cells := make([]int, len(values))
	used := 0
	last := -1
	for i, v := range values {
		if v <= 0 {
			continue
		}
		cells[i] = max(1, int(v/total*float64(width)))
		used += cells[i]
		last = i
	}
	if last >= 0 {
		cells[last] = max(cells[last]+width-used, 0)
	}
	return cells
}
