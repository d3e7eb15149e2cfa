// Package source reads the deals and file tracking spreadsheets into tables
// and decodes them into domain records.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadTable loads the first sheet of an xlsx workbook (or the named sheet,
// when sheet is non-empty) or a csv file, chosen by extension. The first
// row is the header. Blank rows are skipped and short rows are padded.
func ReadTable(path, sheet string) (*Table, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ReadError{Path: path, Err: &MissingFileError{Path: path}}
		}
		return nil, &ReadError{Path: path, Err: err}
	}

	var (
		raw  [][]string
		name string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		raw, err = readCSV(path)
	default:
		raw, name, err = readWorkbook(path, sheet)
	}
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	return buildTable(path, name, raw), nil
}

func readWorkbook(path, sheet string) ([][]string, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, "", errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	} else if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		return nil, "", fmt.Errorf("sheet %q not found", sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, "", fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return rows, sheet, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path) //nolint:gosec // path is supplied by the local user
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func buildTable(path, sheet string, raw [][]string) *Table {
	t := &Table{Path: path, Sheet: sheet}
	if len(raw) == 0 {
		return t
	}

	t.Columns = append([]string(nil), raw[0]...)
	width := len(t.Columns)

	for i, cells := range raw[1:] {
		if isBlank(cells) {
			continue
		}
		row := Row{Num: i + 2, Cells: make([]string, width)}
		copy(row.Cells, cells)
		t.Rows = append(t.Rows, row)
	}
	return t
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
