// Package report renders every aggregate of one load as a Markdown
// document, and that document as a standalone HTML page.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/fileandclaim/fcidash/internal/cli"
	"github.com/fileandclaim/fcidash/internal/model"
	"github.com/fileandclaim/fcidash/internal/pipeline"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Title heads both the Markdown and the HTML output.
const Title = "FCI Weekly Meeting Dashboard"

// Report is a snapshot of all three views.
type Report struct {
	Generated  time.Time
	DealsFile  string
	TrackFile  string
	Stages     []model.StageCount
	Engineers  []model.EngineerCount
	Statuses   []model.StatusSummary
	Unknown    int // deals outside the six stages
	Unmapped   int // tracking rows outside the canonical statuses
	TotalDeals int
	TotalFiles int
	NoEngineer int
}

// Build computes a Report from loaded data.
func Build(res *pipeline.LoadResult, now time.Time) Report {
	engineers := pipeline.CountByEngineer(res.Deals)
	assigned := 0
	for _, e := range engineers {
		assigned += e.Count
	}

	return Report{
		Generated:  now,
		DealsFile:  res.Sources.DealsPath,
		TrackFile:  res.Sources.TrackingPath,
		Stages:     pipeline.CountStages(res.Deals),
		Engineers:  engineers,
		Statuses:   pipeline.Summarize(res.Tracking),
		Unknown:    pipeline.UnrecognisedStages(res.Deals),
		Unmapped:   pipeline.UnmappedStatuses(res.Tracking),
		TotalDeals: len(res.Deals),
		TotalFiles: len(res.Tracking),
		NoEngineer: len(res.Deals) - assigned,
	}
}

// Markdown renders the report as GitHub-flavoured Markdown.
func (r Report) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", Title)
	fmt.Fprintf(&b, "Generated %s from `%s` (%d deals) and `%s` (%d files).\n\n",
		r.Generated.Format("2006-01-02 15:04"), r.DealsFile, r.TotalDeals, r.TrackFile, r.TotalFiles)

	b.WriteString("## Deal stages\n\n")
	b.WriteString("| Stage | Deals | Total value | Median value |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	for _, s := range r.Stages {
		fmt.Fprintf(&b, "| %s | %d | %s | %s |\n",
			escape(s.Stage), s.Count, cli.FormatMoney(s.TotalValue), median(s))
	}
	if r.Unknown > 0 {
		fmt.Fprintf(&b, "\n_%d deal(s) have a stage outside the six charted stages._\n", r.Unknown)
	}

	b.WriteString("\n## Deals by engineer\n\n")
	if len(r.Engineers) == 0 {
		b.WriteString("No deals have an engineer assigned.\n")
	} else {
		b.WriteString("| Engineer | Deals |\n")
		b.WriteString("|---|---:|\n")
		for _, e := range r.Engineers {
			fmt.Fprintf(&b, "| %s | %d |\n", escape(e.Engineer), e.Count)
		}
	}
	if r.NoEngineer > 0 {
		fmt.Fprintf(&b, "\n_%d deal(s) have no engineer._\n", r.NoEngineer)
	}

	b.WriteString("\n## File tracking status\n\n")
	if len(r.Statuses) == 0 {
		b.WriteString("No files in a tracked status.\n")
	} else {
		b.WriteString("| Status | Companies | Invoice total |\n")
		b.WriteString("|---|---:|---:|\n")
		for _, s := range r.Statuses {
			fmt.Fprintf(&b, "| %s | %d | %s |\n",
				escape(s.Display), s.CompanyCount, cli.FormatMoney(s.TotalInvoiceAmount))
		}
	}
	if r.Unmapped > 0 {
		fmt.Fprintf(&b, "\n_%d file(s) have an unrecognised status._\n", r.Unmapped)
	}

	return b.String()
}

// HTML renders the Markdown report as a complete HTML page. Raw HTML in
// spreadsheet cells is dropped, never passed through.
func (r Report) HTML() []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(r.Markdown()))

	renderer := html.NewRenderer(html.RendererOptions{
		Title: Title,
		Flags: html.CommonFlags | html.CompletePage | html.SkipHTML,
	})
	return markdown.Render(doc, renderer)
}

func median(s model.StageCount) string {
	if s.ValuedDeals == 0 {
		return cli.NoValue
	}
	return cli.FormatMoney(s.MedianValue)
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
