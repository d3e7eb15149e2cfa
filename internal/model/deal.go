// Package model defines domain types for the FCI deal and file tracking reports.
package model

import "strconv"

// DealField names one projectable column of the deals sheet.
type DealField int

const (
	FieldDealTitle DealField = iota
	FieldDealValue
	FieldDealStage
)

// Column names of the deals sheet, verbatim.
const (
	ColDealTitle = "Deal Title"
	ColDealValue = "Deal Value"
	ColDealStage = "Deal Stage"
	ColEngineer  = "Technical Resource/Engineer"
)

// Column names of the file tracking sheet, verbatim. The invoice column
// carries a trailing space in the source workbook.
const (
	ColCompany = "Company name"
	ColInvoice = "Invoice amount/Estimated "
	ColStatus  = "Status"
)

// String returns the spreadsheet column the field is read from.
func (f DealField) String() string {
	switch f {
	case FieldDealTitle:
		return ColDealTitle
	case FieldDealValue:
		return ColDealValue
	case FieldDealStage:
		return ColDealStage
	}
	return "DealField(" + strconv.Itoa(int(f)) + ")"
}

// DealRecord is one row of the deals sheet.
type DealRecord struct {
	Row       int // 1-based spreadsheet row
	Title     string
	Value     *float64 // nil when the cell is empty or not numeric
	ValueText string
	Stage     string
	Engineer  string
}

// Field returns the display text of the given column.
func (d DealRecord) Field(f DealField) string {
	switch f {
	case FieldDealTitle:
		return d.Title
	case FieldDealValue:
		if d.Value != nil {
			return strconv.FormatFloat(*d.Value, 'f', -1, 64)
		}
		return d.ValueText
	case FieldDealStage:
		return d.Stage
	}
	return ""
}

// FileTrackingRecord is one row of the file tracking sheet.
type FileTrackingRecord struct {
	Row           int
	Company       string
	InvoiceAmount *float64
	InvoiceText   string
	Status        string // free text, arbitrary casing and whitespace
}
