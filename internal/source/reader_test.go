package source

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/fileandclaim/fcidash/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTable_Workbook(t *testing.T) {
	path := testkit.WriteWorkbook(t, "deals.xlsx", "", testkit.SampleDeals())

	tbl, err := ReadTable(path, "")
	require.NoError(t, err)

	assert.Equal(t, "Sheet1", tbl.Sheet)
	assert.Equal(t, []string{"Deal Title", "Deal Value", "Deal Stage", "Technical Resource/Engineer"}, tbl.Columns)
	require.Len(t, tbl.Rows, 6)
	assert.Equal(t, 2, tbl.Rows[0].Num)
	assert.Equal(t, "Acme renewal", tbl.Rows[0].Cell(0))
	assert.Equal(t, "1200.5", tbl.Rows[0].Cell(1))
	// empty trailing cell is padded
	assert.Equal(t, "", tbl.Rows[3].Cell(3))
	assert.Len(t, tbl.Rows[3].Cells, 4)
}

func TestReadTable_NamedSheet(t *testing.T) {
	path := testkit.WriteWorkbook(t, "tracking.xlsx", "RH tracking", testkit.SampleTracking())

	tbl, err := ReadTable(path, "RH tracking")
	require.NoError(t, err)
	assert.Equal(t, "RH tracking", tbl.Sheet)
	assert.Len(t, tbl.Rows, 5)

	_, err = ReadTable(path, "Nope")
	var re *ReadError
	require.ErrorAs(t, err, &re)
	assert.Contains(t, err.Error(), `sheet "Nope" not found`)
}

func TestReadTable_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.xlsx")

	_, err := ReadTable(path, "")
	require.Error(t, err)

	var re *ReadError
	require.ErrorAs(t, err, &re)
	var mf *MissingFileError
	require.ErrorAs(t, err, &mf)
	assert.Equal(t, path, mf.Path)
}

func TestReadTable_Unreadable(t *testing.T) {
	path := testkit.WriteCSV(t, "bogus.xlsx", [][]string{{"not", "a", "workbook"}})

	_, err := ReadTable(path, "")
	var re *ReadError
	require.ErrorAs(t, err, &re)
	var mf *MissingFileError
	assert.False(t, errors.As(err, &mf))
}

func TestReadTable_SkipsBlankRows(t *testing.T) {
	path := testkit.WriteWorkbook(t, "gaps.xlsx", "", [][]any{
		testkit.DealsHeader,
		{"A", 1, "Complete", "Dana"},
		{},
		{nil, nil, nil, nil},
		{"B", 2, "Complete", "Lee"},
	})

	tbl, err := ReadTable(path, "")
	require.NoError(t, err)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "B", tbl.Rows[1].Cell(0))
	assert.Equal(t, 5, tbl.Rows[1].Num)
}

func TestReadTable_CSVMatchesWorkbook(t *testing.T) {
	xlsx := testkit.WriteWorkbook(t, "t.xlsx", "", testkit.SampleTracking())
	csvPath := testkit.WriteCSV(t, "t.csv", [][]string{
		{"\ufeffCompany name", "Invoice amount/Estimated ", "Status"},
		{"North Ltd", "100", " CRA Review "},
		{"South Inc", "", "cra review"},
		{"East Co", "50", "Other"},
		{"West LLC", "250", "File in Process"},
		{"Mid Corp", "n/a", "CRA approved and invoiced"},
	})

	a, err := ReadTable(xlsx, "")
	require.NoError(t, err)
	b, err := ReadTable(csvPath, "")
	require.NoError(t, err)

	assert.Equal(t, a.Columns, b.Columns)
	require.Equal(t, len(a.Rows), len(b.Rows))
	for i := range a.Rows {
		assert.Equal(t, a.Rows[i].Cells, b.Rows[i].Cells, "row %d", i)
	}
}

func TestTableIndex_TrailingSpace(t *testing.T) {
	tbl := &Table{Columns: []string{"Company name", "Invoice amount/Estimated ", "Status"}}

	assert.Equal(t, 1, tbl.Index("Invoice amount/Estimated "))
	assert.Equal(t, 1, tbl.Index("Invoice amount/Estimated"))
	assert.Equal(t, -1, tbl.Index("Invoice"))

	trimmed := &Table{Columns: []string{"Company name", "Invoice amount/Estimated", "Status"}}
	assert.Equal(t, 1, trimmed.Index("Invoice amount/Estimated "))
}

func TestTableRequire(t *testing.T) {
	tbl := &Table{Path: "deals.xlsx", Sheet: "Sheet1", Columns: []string{"Deal Title", "Deal Value"}}

	err := tbl.Require("Deal Title", "Deal Stage", "Technical Resource/Engineer")
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"Deal Stage", "Technical Resource/Engineer"}, se.Missing)
	assert.Contains(t, se.Error(), `"Deal Stage"`)
	assert.Contains(t, se.Error(), "deals.xlsx [Sheet1]")

	assert.NoError(t, tbl.Require("Deal Value"))
}
