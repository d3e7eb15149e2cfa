package source

import (
	"fmt"
	"strings"
)

// Row is one data row of a sheet, padded to the header width.
type Row struct {
	Num   int // 1-based row number in the file
	Cells []string
}

// Table is a sheet read verbatim: header names and data rows in file order.
type Table struct {
	Path    string
	Sheet   string
	Columns []string
	Rows    []Row
}

// Index returns the position of the named column, or -1.
// An exact match wins; otherwise names are compared with surrounding
// whitespace trimmed, so "Invoice amount/Estimated" finds the
// "Invoice amount/Estimated " header and the other way round.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	want := strings.TrimSpace(name)
	for i, c := range t.Columns {
		if strings.TrimSpace(c) == want {
			return i
		}
	}
	return -1
}

// Require returns a *SchemaError listing every name Index cannot resolve.
func (t *Table) Require(names ...string) error {
	var missing []string
	for _, n := range names {
		if t.Index(n) < 0 {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Path: t.Path, Sheet: t.Sheet, Missing: missing}
	}
	return nil
}

// Cell returns the cell of r at column idx, or "" when idx is out of range.
func (r Row) Cell(idx int) string {
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	return r.Cells[idx]
}

// ReadError is returned for any failure to load a sheet. Err is a
// *MissingFileError, a *SchemaError, or the underlying reader error.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// MissingFileError reports an input file that does not exist.
type MissingFileError struct {
	Path string
}

func (e *MissingFileError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// SchemaError reports expected columns absent from a sheet header.
type SchemaError struct {
	Path    string
	Sheet   string
	Missing []string
}

func (e *SchemaError) Error() string {
	quoted := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	where := e.Path
	if e.Sheet != "" {
		where += " [" + e.Sheet + "]"
	}
	return fmt.Sprintf("%s: missing column(s) %s", where, strings.Join(quoted, ", "))
}
