package report

import (
	"strings"
	"testing"
	"time"

	"github.com/fileandclaim/fcidash/internal/model"
	"github.com/fileandclaim/fcidash/internal/pipeline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }

func sample() *pipeline.LoadResult {
	return &pipeline.LoadResult{
		Sources: pipeline.Sources{DealsPath: "deals.xlsx", TrackingPath: "tracking.xlsx"},
		Deals: []model.DealRecord{
			{Title: "A", Value: fptr(1000), Stage: "CRA Processing", Engineer: "Dana"},
			{Title: "B", Stage: "CRA Processing", Engineer: "Lee|Kim"},
			{Title: "C", Value: fptr(50), Stage: "Complete", Engineer: "Dana"},
			{Title: "D", Stage: "Negotiation"},
		},
		Tracking: []model.FileTrackingRecord{
			{Company: "North", InvoiceAmount: fptr(100), Status: " CRA Review "},
			{Company: "South", Status: "cra review"},
			{Company: "East", InvoiceAmount: fptr(50), Status: "Other"},
		},
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)
	r := Build(sample(), now)

	assert.Equal(t, now, r.Generated)
	require.Len(t, r.Stages, 6)
	assert.Equal(t, 2, r.Stages[0].Count)
	assert.Equal(t, 1, r.Unknown)
	assert.Equal(t, 1, r.Unmapped)
	assert.Equal(t, 1, r.NoEngineer)
	assert.Equal(t, 4, r.TotalDeals)
	require.Len(t, r.Statuses, 1)
	assert.Equal(t, 2, r.Statuses[0].CompanyCount)
	assert.Equal(t, []model.EngineerCount{{Engineer: "Dana", Count: 2}, {Engineer: "Lee|Kim", Count: 1}}, r.Engineers)
}

func TestMarkdown(t *testing.T) {
	md := Build(sample(), time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)).Markdown()

	assert.True(t, strings.HasPrefix(md, "# FCI Weekly Meeting Dashboard\n"))
	assert.Contains(t, md, "Generated 2026-03-02 09:30 from `deals.xlsx` (4 deals)")
	assert.Contains(t, md, "| CRA Processing | 2 | $1,000.00 | $1,000.00 |")
	assert.Contains(t, md, "| Financial Assessment | 0 | $0.00 | — |")
	assert.Contains(t, md, `| Lee\|Kim | 1 |`)
	assert.Contains(t, md, "| CRA review | 2 | $100.00 |")
	assert.Contains(t, md, "_1 deal(s) have a stage outside the six charted stages._")
	assert.Contains(t, md, "_1 file(s) have an unrecognised status._")
}

func TestMarkdown_NoEngineersNoStatuses(t *testing.T) {
	res := &pipeline.LoadResult{Deals: []model.DealRecord{{Stage: "Complete"}}}
	md := Build(res, time.Now()).Markdown()

	assert.Contains(t, md, "No deals have an engineer assigned.")
	assert.Contains(t, md, "No files in a tracked status.")
}

func TestHTML(t *testing.T) {
	out := string(Build(sample(), time.Now()).HTML())

	assert.Contains(t, out, "<title>FCI Weekly Meeting Dashboard</title>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<td>CRA Processing</td>")
	assert.Contains(t, out, `id="deal-stages"`)
}

func TestHTML_DropsRawHTMLFromCells(t *testing.T) {
	res := &pipeline.LoadResult{
		Deals: []model.DealRecord{
			{Title: "A", Stage: "Complete", Engineer: "<script>alert(1)</script>"},
			{Title: "B", Stage: "Complete", Engineer: "Dana <b>lead</b>"},
		},
	}
	out := string(Build(res, time.Now()).HTML())

	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "<td>Complete</td>")
}
