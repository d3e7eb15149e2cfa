package tui

import (
	"fmt"
	"strings"

	"github.com/fileandclaim/fcidash/internal/cli"
	"github.com/fileandclaim/fcidash/internal/model"
	"github.com/fileandclaim/fcidash/internal/pipeline"
	"github.com/fileandclaim/fcidash/internal/tui/components"
	"github.com/fileandclaim/fcidash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const stageCardsPerRow = 2

func (a App) renderStagesTab(cw, h int) string {
	t := theme.Active
	if a.res == nil || len(a.stages) == 0 {
		return components.ContentCard("Deal Stages", emptyLine("No deals loaded."), cw)
	}

	peak := 0
	for _, sc := range a.stages {
		peak = max(peak, sc.Count)
	}

	// Stage cards, in pairs
	widths := components.LayoutRow(cw, stageCardsPerRow)
	series := t.Series()
	var rows []string
	for start := 0; start < len(a.stages); start += stageCardsPerRow {
		end := min(start+stageCardsPerRow, len(a.stages))
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			w := widths[i-start]
			body := stageCardBody(a.stages[i], peak, components.CardInnerWidth(w), series[i%len(series)])
			if i == a.stage.cursor {
				cards = append(cards, components.FocusCard(a.stages[i].Stage, body, w))
			} else {
				cards = append(cards, components.ContentCard(a.stages[i].Stage, body, w))
			}
		}
		rows = append(rows, components.CardRow(cards))
	}
	grid := strings.Join(rows, "\n")

	// Drill-down for the selected stage
	stage := pipeline.Stages[a.stage.cursor]
	field := pipeline.StageFields[a.stage.field]
	deals := pipeline.FilterByStage(a.res.Deals, stage)
	items := make([]string, len(deals))
	for i, d := range deals {
		items[i] = dealFieldText(d, field)
	}

	listH := max(h-lipgloss.Height(grid)-3, 3) // card border + title
	title := fmt.Sprintf("%s · %s  [f] field", stage, field)
	list := renderList(items, a.stage.scroll, listH, components.CardInnerWidth(cw))
	drill := components.ContentCard(title, list, cw)

	return grid + "\n" + drill
}

func stageCardBody(sc model.StageCount, peak, innerW int, color lipgloss.Color) string {
	t := theme.Active
	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	noun := "deals"
	if sc.Count == 1 {
		noun = "deal"
	}

	var b strings.Builder
	b.WriteString(countStyle.Render(cli.FormatNumber(int64(sc.Count))))
	b.WriteString(labelStyle.Render(" " + noun))
	b.WriteString("\n")
	b.WriteString(components.HBar(float64(sc.Count), float64(peak), innerW, color))
	b.WriteString("\n")
	if sc.ValuedDeals > 0 {
		b.WriteString(valueStyle.Render(cli.FormatCompact(sc.TotalValue)))
		b.WriteString(labelStyle.Render(" total · median "))
		b.WriteString(valueStyle.Render(cli.FormatCompact(sc.MedianValue)))
	} else {
		b.WriteString(labelStyle.Render("no deal values"))
	}
	return b.String()
}

// dealFieldText formats one projected cell for display. Empty cells show
// as a dash.
func dealFieldText(d model.DealRecord, f model.DealField) string {
	if f == model.FieldDealValue {
		if d.Value != nil {
			return cli.FormatMoney(*d.Value)
		}
		if d.ValueText != "" {
			return d.ValueText
		}
		return cli.NoValue
	}
	if s := strings.TrimSpace(d.Field(f)); s != "" {
		return s
	}
	return cli.NoValue
}

// renderList renders a scrolled window of items, at most h lines tall.
// When items remain below the window, the last line counts them.
func renderList(items []string, scroll, h, w int) string {
	t := theme.Active
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	if len(items) == 0 {
		return mutedStyle.Render("Nothing here.")
	}

	scroll = clampIndex(scroll, len(items))
	visible := items[scroll:]
	h = max(h, 1)

	var more int
	if len(visible) > h {
		more = len(visible) - (h - 1)
		visible = visible[:h-1]
	}

	lines := make([]string, 0, len(visible)+1)
	for _, item := range visible {
		lines = append(lines, rowStyle.Render(truncStr(item, w)))
	}
	if more > 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("… %d more  [J/K] scroll", more)))
	}
	return strings.Join(lines, "\n")
}

func emptyLine(msg string) string {
	t := theme.Active
	return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(msg)
}
