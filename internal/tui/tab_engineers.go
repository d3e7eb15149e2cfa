package tui

import (
	"fmt"
	"strings"

	"github.com/fileandclaim/fcidash/internal/pipeline"
	"github.com/fileandclaim/fcidash/internal/tui/components"
	"github.com/fileandclaim/fcidash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const engineerChartHeight = 10

func (a App) renderEngineersTab(cw, h int) string {
	t := theme.Active
	if a.res == nil || len(a.engineers) == 0 {
		return components.ContentCard("Deals by Engineer", emptyLine("No deals have an engineer assigned."), cw)
	}

	// Chart
	values := make([]float64, len(a.engineers))
	labels := make([]string, len(a.engineers))
	for i, e := range a.engineers {
		values[i] = float64(e.Count)
		labels[i] = e.Engineer
	}
	innerW := components.CardInnerWidth(cw)
	chart := components.ContentCard("Deals by Engineer",
		components.BarChart(values, labels, t.Blue, innerW, engineerChartHeight), cw)

	// Engineer list beside the drill-down
	widths := components.LayoutRow(cw, 2)
	listH := max(h-lipgloss.Height(chart)-3, 3)

	nameW := 0
	for _, e := range a.engineers {
		nameW = max(nameW, lipgloss.Width(e.Engineer))
	}
	nameW = min(nameW, components.CardInnerWidth(widths[0])-8)

	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	// Keep the cursor inside the visible window
	first := 0
	if a.eng.cursor >= listH {
		first = a.eng.cursor - listH + 1
	}
	last := min(first+listH, len(a.engineers))

	var names strings.Builder
	for i := first; i < last; i++ {
		e := a.engineers[i]
		line := fmt.Sprintf("%-*s %5d", nameW, truncStr(e.Engineer, nameW), e.Count)
		if i == a.eng.cursor {
			names.WriteString(selStyle.Render("▸ " + line))
		} else {
			names.WriteString(rowStyle.Render("  " + line))
		}
		if i < last-1 {
			names.WriteString("\n")
		}
	}
	listCard := components.ContentCard(fmt.Sprintf("Engineers (%d)", len(a.engineers)), names.String(), widths[0])

	sel := a.engineers[a.eng.cursor]
	field := pipeline.EngineerFields[a.eng.field]
	deals := pipeline.FilterByEngineer(a.res.Deals, sel.Engineer)
	items := make([]string, len(deals))
	for i, d := range deals {
		items[i] = dealFieldText(d, field)
	}
	title := fmt.Sprintf("%s · %s  [f] field", sel.Engineer, field)
	drill := components.FocusCard(title,
		renderList(items, a.eng.scroll, listH, components.CardInnerWidth(widths[1])), widths[1])

	return chart + "\n" + components.CardRow([]string{listCard, drill})
}
