// Package testkit writes spreadsheet fixtures for tests.
package testkit

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// DealsHeader is the header row of the deals workbook.
var DealsHeader = []any{"Deal Title", "Deal Value", "Deal Stage", "Technical Resource/Engineer"}

// TrackingHeader is the header row of the file tracking workbook,
// trailing space included.
var TrackingHeader = []any{"Company name", "Invoice amount/Estimated ", "Status"}

// WriteWorkbook saves rows into a new xlsx file under t.TempDir() and
// returns its path. A nil cell is left empty.
func WriteWorkbook(t testing.TB, name, sheet string, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	} else {
		sheet = "Sheet1"
	}

	for i, row := range rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set %s: %v", cell, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

// WriteCSV saves rows into a csv file under t.TempDir() and returns its path.
func WriteCSV(t testing.TB, name string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path) //nolint:gosec // test temp dir
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.WriteAll(rows); err != nil {
		t.Fatal(err)
	}
	return path
}

// SampleDeals returns a small deals sheet: two CRA Processing deals, one
// Complete deal, one unknown stage, and a mix of engineers.
func SampleDeals() [][]any {
	return [][]any{
		DealsHeader,
		{"Acme renewal", 1200.5, "CRA Processing", "Dana"},
		{"Birch audit", nil, "CRA Processing", "Lee"},
		{"Cobalt claim", 800, "Complete", "Dana"},
		{"Delta file", "TBD", "Negotiation", nil},
		{"Echo claim", 300, "cra processing", "Lee"},
		{"Fjord claim", 50, "Technical Assessment", "Sam"},
	}
}

// SampleTracking returns a small file tracking sheet.
func SampleTracking() [][]any {
	return [][]any{
		TrackingHeader,
		{"North Ltd", 100, " CRA Review "},
		{"South Inc", nil, "cra review"},
		{"East Co", 50, "Other"},
		{"West LLC", 250, "File in Process"},
		{"Mid Corp", "n/a", "CRA approved and invoiced"},
	}
}
