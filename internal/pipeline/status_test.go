package pipeline

import (
	"testing"

	"github.com/fileandclaim/fcidash/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanStatus(t *testing.T) {
	assert.Equal(t, "cra review", CleanStatus("  CRA Review\t"))
	assert.Equal(t, "", CleanStatus("   "))
}

func TestCleanStatus_Idempotent(t *testing.T) {
	inputs := []string{"", " CRA Review ", "File In PROCESS\n", "Other", "ÉTAT  ", "\t\tx"}
	for _, s := range inputs {
		once := CleanStatus(s)
		assert.Equal(t, once, CleanStatus(once), "%q", s)
	}
}

func FuzzCleanStatus(f *testing.F) {
	f.Add(" CRA Review ")
	f.Add("file in process")
	f.Add("")
	f.Fuzz(func(t *testing.T, s string) {
		once := CleanStatus(s)
		if twice := CleanStatus(once); twice != once {
			t.Errorf("CleanStatus not idempotent for %q: %q -> %q", s, once, twice)
		}
	})
}

func TestSummarize_Example(t *testing.T) {
	records := []model.FileTrackingRecord{
		{Company: "North", Status: " CRA Review "},
		{Company: "South", Status: "cra review"},
		{Company: "East", Status: "Other"},
	}

	got := Summarize(records)
	require.Len(t, got, 1)
	assert.Equal(t, "CRA review", got[0].Display)
	assert.Equal(t, 2, got[0].CompanyCount)
	assert.Equal(t, 1, UnmappedStatuses(records))

	rows := FilterByDisplayStatus(records, "CRA review")
	require.Len(t, rows, 2)
	assert.Equal(t, "North", rows[0].Company)
	assert.Equal(t, "South", rows[1].Company)
}

func TestSummarize_InvoiceSumTreatsMissingAsZero(t *testing.T) {
	records := []model.FileTrackingRecord{
		{Company: "A", InvoiceAmount: fptr(100), Status: "File in Process"},
		{Company: "B", InvoiceAmount: nil, InvoiceText: "n/a", Status: "file in process"},
		{Company: "C", InvoiceAmount: fptr(50), Status: "FILE IN PROCESS "},
	}

	got := Summarize(records)
	require.Len(t, got, 1)
	assert.Equal(t, "File in Process", got[0].Display)
	assert.Equal(t, 3, got[0].CompanyCount)
	assert.InDelta(t, 150, got[0].TotalInvoiceAmount, 1e-9)
}

func TestSummarize_CountsCoverMappedRecords(t *testing.T) {
	records := []model.FileTrackingRecord{
		{Status: "CRA approved and invoiced"},
		{Status: "cra approved with invoicing in process"},
		{Status: "CRA Review"},
		{Status: "file in process"},
		{Status: "cra approved"},
		{Status: ""},
		{Status: "CRA approved and invoiced  "},
	}

	got := Summarize(records)
	total := 0
	for _, s := range got {
		total += s.CompanyCount
		assert.Positive(t, s.CompanyCount, "no zero rows")
	}
	assert.Equal(t, len(records)-UnmappedStatuses(records), total)
	assert.Equal(t, 5, total)

	// canonical presentation order
	require.Len(t, got, 4)
	assert.Equal(t, DisplayStatuses(), []string{got[0].Display, got[1].Display, got[2].Display, got[3].Display})
}

func TestSummarize_Empty(t *testing.T) {
	assert.Empty(t, Summarize(nil))
	assert.Empty(t, Summarize([]model.FileTrackingRecord{{Status: "Other"}}))
}

func TestFilterByDisplayStatus(t *testing.T) {
	records := []model.FileTrackingRecord{
		{Company: "A", InvoiceAmount: fptr(1), Status: "cra review"},
		{Company: "B", InvoiceAmount: fptr(2), Status: "file in process"},
		{Company: "C", Status: "CRA REVIEW"},
	}

	rows := FilterByDisplayStatus(records, "CRA review")
	require.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Company)
	require.NotNil(t, rows[0].InvoiceAmount)
	assert.Equal(t, 1.0, *rows[0].InvoiceAmount)
	assert.Equal(t, "C", rows[1].Company)
	assert.Nil(t, rows[1].InvoiceAmount)

	assert.Empty(t, FilterByDisplayStatus(records, "cra review"), "matches display names, not keys")
	assert.Empty(t, FilterByDisplayStatus(records, "CRA approved and invoiced"))
}

func TestResolveDisplayStatus(t *testing.T) {
	d, ok := ResolveDisplayStatus("File in Process")
	assert.True(t, ok)
	assert.Equal(t, "File in Process", d)

	d, ok = ResolveDisplayStatus("  file IN process ")
	assert.True(t, ok)
	assert.Equal(t, "File in Process", d)

	_, ok = ResolveDisplayStatus("Other")
	assert.False(t, ok)
}
