package pipeline

import (
	"strings"

	"github.com/fileandclaim/fcidash/internal/model"
)

// StatusMapping pairs a normalized status key with its display name.
type StatusMapping struct {
	Key     string
	Display string
}

// StatusMap is the fixed canonical mapping, in presentation order.
var StatusMap = []StatusMapping{
	{Key: "cra approved and invoiced", Display: "CRA approved and invoiced"},
	{Key: "cra approved with invoicing in process", Display: "CRA approved with invoicing in process"},
	{Key: "cra review", Display: "CRA review"},
	{Key: "file in process", Display: "File in Process"},
}

// CleanStatus normalizes a free-text status: trimmed and lower-cased.
func CleanStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// DisplayStatus maps a raw status to its display name. ok is false for
// statuses outside the canonical mapping.
func DisplayStatus(raw string) (display string, ok bool) {
	key := CleanStatus(raw)
	for _, m := range StatusMap {
		if m.Key == key {
			return m.Display, true
		}
	}
	return "", false
}

// DisplayStatuses returns every display name in presentation order.
func DisplayStatuses() []string {
	out := make([]string, len(StatusMap))
	for i, m := range StatusMap {
		out[i] = m.Display
	}
	return out
}

// Summarize groups file tracking records by display status. Records with
// an unmapped status are dropped. Statuses without any record produce no
// row. Missing invoice amounts count as 0.
func Summarize(records []model.FileTrackingRecord) []model.StatusSummary {
	byDisplay := make(map[string]*model.StatusSummary)
	for _, r := range records {
		display, ok := DisplayStatus(r.Status)
		if !ok {
			continue
		}
		s, exists := byDisplay[display]
		if !exists {
			s = &model.StatusSummary{Display: display}
			byDisplay[display] = s
		}
		s.CompanyCount++
		if r.InvoiceAmount != nil {
			s.TotalInvoiceAmount += *r.InvoiceAmount
		}
	}

	summary := make([]model.StatusSummary, 0, len(byDisplay))
	for _, m := range StatusMap {
		if s, ok := byDisplay[m.Display]; ok {
			summary = append(summary, *s)
		}
	}
	return summary
}

// FilterByDisplayStatus returns company and invoice amount of every record
// whose status maps to display, in input order.
func FilterByDisplayStatus(records []model.FileTrackingRecord, display string) []model.CompanyRow {
	var rows []model.CompanyRow
	for _, r := range records {
		if d, ok := DisplayStatus(r.Status); ok && d == display {
			rows = append(rows, model.CompanyRow{
				Company:       r.Company,
				InvoiceAmount: r.InvoiceAmount,
			})
		}
	}
	return rows
}

// UnmappedStatuses counts records dropped from the summary.
func UnmappedStatuses(records []model.FileTrackingRecord) int {
	n := 0
	for _, r := range records {
		if _, ok := DisplayStatus(r.Status); !ok {
			n++
		}
	}
	return n
}

// ResolveDisplayStatus accepts a display name or any status spelling that
// normalizes to a canonical key, and returns the display name.
func ResolveDisplayStatus(s string) (string, bool) {
	for _, m := range StatusMap {
		if m.Display == s {
			return m.Display, true
		}
	}
	return DisplayStatus(s)
}
