package dataset

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// LoadError means the source could not be read as tabular data at all.
// It is the only fatal condition in the pipeline: missing optional columns and
// unparseable cells are recovered downstream by the normalizer.
type LoadError struct {
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load error: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("load error: %s", e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Table is a single in-memory tabular snapshot with named columns.
// Cells are kept as display strings; typed interpretation happens in Normalize.
type Table struct {
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a table from a header and data rows. Rows shorter than the
// header are padded with empty cells, longer ones are truncated.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns: make([]string, len(columns)),
		Rows:    make([][]string, 0, len(rows)),
	}
	for i, c := range columns {
		t.Columns[i] = strings.TrimSpace(c)
	}
	for _, row := range rows {
		fitted := make([]string, len(columns))
		copy(fitted, row)
		t.Rows = append(t.Rows, fitted)
	}
	t.buildIndex()
	return t
}

func (t *Table) buildIndex() {
	t.index = make(map[string]int, len(t.Columns))
	for i, c := range t.Columns {
		t.index[c] = i
	}
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// ColumnIndex returns the position of the named column.
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Cell returns the raw cell value at the given row for the named column.
func (t *Table) Cell(row int, column string) (string, bool) {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) {
		return "", false
	}
	return t.Rows[row][i], true
}

// LoadWorkbook reads the first sheet of an xlsx workbook from disk.
func LoadWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Reason: "failed to open workbook", Err: err}
	}
	defer f.Close()
	return tableFromWorkbook(f)
}

// ReadWorkbook reads the first sheet of an xlsx workbook from a stream,
// typically an uploaded file.
func ReadWorkbook(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, &LoadError{Reason: "failed to read workbook", Err: err}
	}
	defer f.Close()
	return tableFromWorkbook(f)
}

func tableFromWorkbook(f *excelize.File) (*Table, error) {
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, &LoadError{Reason: "no sheets found in workbook"}
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, &LoadError{Reason: "failed to get rows", Err: err}
	}
	if len(rows) < 2 {
		return nil, &LoadError{Reason: "workbook is too short, expected a header row and at least one data row"}
	}

	header := rows[0]
	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if isEmptyRow(row) {
			continue
		}
		data = append(data, row)
	}
	if len(data) == 0 {
		return nil, &LoadError{Reason: "workbook contains no data rows"}
	}

	return NewTable(header, data), nil
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
