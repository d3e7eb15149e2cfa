package source

import (
	"math"
	"strconv"
	"strings"

	"github.com/fileandclaim/fcidash/internal/model"
)

// DealColumns are the header names the deals sheet must carry.
var DealColumns = []string{model.ColDealTitle, model.ColDealValue, model.ColDealStage, model.ColEngineer}

// TrackingColumns are the header names the file tracking sheet must carry.
var TrackingColumns = []string{model.ColCompany, model.ColInvoice, model.ColStatus}

// DecodeDeals converts a deals table into records, in row order.
// Cell text is kept as found; only Deal Value is coerced to a number.
func DecodeDeals(t *Table) ([]model.DealRecord, error) {
	if err := t.Require(DealColumns...); err != nil {
		return nil, &ReadError{Path: t.Path, Err: err}
	}
	iTitle := t.Index(model.ColDealTitle)
	iValue := t.Index(model.ColDealValue)
	iStage := t.Index(model.ColDealStage)
	iEng := t.Index(model.ColEngineer)

	deals := make([]model.DealRecord, 0, len(t.Rows))
	for _, r := range t.Rows {
		valueText := r.Cell(iValue)
		deals = append(deals, model.DealRecord{
			Row:       r.Num,
			Title:     r.Cell(iTitle),
			Value:     ParseAmount(valueText),
			ValueText: valueText,
			Stage:     r.Cell(iStage),
			Engineer:  r.Cell(iEng),
		})
	}
	return deals, nil
}

// DecodeFileTracking converts a file tracking table into records, in row order.
func DecodeFileTracking(t *Table) ([]model.FileTrackingRecord, error) {
	if err := t.Require(TrackingColumns...); err != nil {
		return nil, &ReadError{Path: t.Path, Err: err}
	}
	iCompany := t.Index(model.ColCompany)
	iInvoice := t.Index(model.ColInvoice)
	iStatus := t.Index(model.ColStatus)

	records := make([]model.FileTrackingRecord, 0, len(t.Rows))
	for _, r := range t.Rows {
		invoiceText := r.Cell(iInvoice)
		records = append(records, model.FileTrackingRecord{
			Row:           r.Num,
			Company:       r.Cell(iCompany),
			InvoiceAmount: ParseAmount(invoiceText),
			InvoiceText:   invoiceText,
			Status:        r.Cell(iStatus),
		})
	}
	return records, nil
}

// ParseAmount coerces a cell to a number. Empty and non-numeric cells give
// nil; a leading currency sign and thousands separators are tolerated.
//
//	"1200.5" -> 1200.5, "$1,200" -> 1200, "TBD" -> nil
func ParseAmount(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}

	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if strings.HasPrefix(s, "-") {
		neg = !neg
		s = s[1:]
	}
	s = strings.TrimLeft(s, "$€£ ")
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	if neg {
		v = -v
	}
	return &v
}
