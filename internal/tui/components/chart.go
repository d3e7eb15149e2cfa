package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/fileandclaim/fcidash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// HBar renders a horizontal bar of width cells scaled against peak.
// Any positive value gets at least one cell.
func HBar(value, peak float64, width int, color lipgloss.Color) string {
	t := theme.Active
	if width <= 0 {
		return ""
	}

	filled := 0
	if peak > 0 && value > 0 {
		filled = max(1, int(math.Round(value/peak*float64(width))))
	}
	filled = min(filled, width)

	fill := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	track := lipgloss.NewStyle().Foreground(t.SurfaceBright).Background(t.Surface)
	return fill.Render(strings.Repeat("█", filled)) + track.Render(strings.Repeat("░", width-filled))
}

// BarChart renders a vertical bar chart with a y-axis and one x-axis
// label per bar. Labels that do not fit under their bar are shortened.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	height = max(height, 3)

	maxVal := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y-axis: compute tick step and ceiling
	tickStep := chartTickStep(maxVal)
	maxIntervals := max(height/2, 1)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(int(math.Round(ceiling/tickStep)), 1)

	rowsPerTick := max(height/numIntervals, 2)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(len(formatChartLabel(ceiling))+1, 4)
	tickLabels := make(map[int]string)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	n := len(values)
	chartW := max(width-yLabelW-1, n*2)
	gap := 1
	if n == 1 {
		gap = 0
	}
	barW := min(max((chartW-(n-1)*gap)/n, 1), 8)
	axisLen := n*barW + (n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, v := range values {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			switch {
			case v >= rowTop:
				b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
			case v > rowBottom:
				idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
				idx = min(max(idx, 1), 8)
				b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
			default:
				b.WriteString(blank.Render(strings.Repeat(" ", barW)))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))

	if len(labels) == n {
		labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
		for i, lbl := range labels {
			if i > 0 && gap > 0 {
				b.WriteString(blank.Render(strings.Repeat(" ", gap)))
			}
			b.WriteString(labelStyle.Render(fitLabel(lbl, barW)))
		}
	}

	return b.String()
}

// fitLabel pads or shortens s to exactly w cells.
func fitLabel(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		if w <= 1 {
			return string(r[:w])
		}
		return string(r[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(r))
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return max(base, 1)
	case frac < 3.5:
		return max(2*base, 1)
	default:
		return max(5*base, 1)
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
