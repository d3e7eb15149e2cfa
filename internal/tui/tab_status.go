package tui

import (
	"fmt"
	"strings"

	"github.com/fileandclaim/fcidash/internal/cli"
	"github.com/fileandclaim/fcidash/internal/pipeline"
	"github.com/fileandclaim/fcidash/internal/tui/components"
	"github.com/fileandclaim/fcidash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderStatusTab(cw, h int) string {
	t := theme.Active
	if a.res == nil || len(a.statuses) == 0 {
		return components.ContentCard("File Status", emptyLine("No files with a recognised status."), cw)
	}

	innerW := components.CardInnerWidth(cw)
	series := t.Series()

	counts := make([]float64, len(a.statuses))
	totalFiles := 0
	var totalAmount float64
	for i, s := range a.statuses {
		counts[i] = float64(s.CompanyCount)
		totalFiles += s.CompanyCount
		totalAmount += s.TotalInvoiceAmount
	}

	labelW := 0
	for _, s := range a.statuses {
		labelW = max(labelW, lipgloss.Width(s.Display))
	}

	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	moneyStyle := lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface)

	var b strings.Builder
	b.WriteString(components.SegmentedBar(counts, series, innerW))
	b.WriteString("\n\n")
	for i, s := range a.statuses {
		swatch := lipgloss.NewStyle().Foreground(series[i%len(series)]).Background(t.Surface).Render("■ ")
		line := fmt.Sprintf("%-*s %5d files  ", labelW, s.Display, s.CompanyCount)
		style := rowStyle
		marker := "  "
		if i == a.status.cursor {
			style = selStyle
			marker = "▸ "
		}
		b.WriteString(style.Render(marker))
		b.WriteString(swatch)
		b.WriteString(style.Render(line))
		b.WriteString(moneyStyle.Render(cli.FormatMoney(s.TotalInvoiceAmount)))
		b.WriteString("\n")
	}
	b.WriteString(rowStyle.Render(fmt.Sprintf("  %d files · %s invoiced or estimated",
		totalFiles, cli.FormatMoney(totalAmount))))

	summary := components.ContentCard("File Status", b.String(), cw)

	sel := a.statuses[a.status.cursor]
	rows := pipeline.FilterByDisplayStatus(a.res.Tracking, sel.Display)
	companyW := max(innerW-18, 10)
	items := make([]string, len(rows))
	for i, r := range rows {
		company := r.Company
		if strings.TrimSpace(company) == "" {
			company = cli.NoValue
		}
		items[i] = fmt.Sprintf("%-*s %16s", companyW, truncStr(company, companyW), cli.FormatAmount(r.InvoiceAmount))
	}

	listH := max(h-lipgloss.Height(summary)-3, 3)
	drill := components.FocusCard(fmt.Sprintf("%s (%d)", sel.Display, len(rows)),
		renderList(items, a.status.scroll, listH, innerW), cw)

	return summary + "\n" + drill
}
