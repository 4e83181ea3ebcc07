// Package parser decomposes values of a known semantic type into structured
// fields, and drives the table-level pipeline: classify every column, pick
// the best phone and company columns, and parse their values row by row.
//
// Parsing is soft-fail throughout: a parser never returns an error, it
// returns a record with unresolved fields instead. One record always comes
// back per input row.
package parser

// Table is an in-memory CSV table: ordered column names plus row-major
// cells. It carries no file handles; CSV I/O happens in the callers.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable builds a table, padding short rows so every row has one cell per
// column. Extra cells on a row are dropped.
func NewTable(columns []string, rows [][]string) *Table {
	normalized := make([][]string, len(rows))
	for i, row := range rows {
		if len(row) == len(columns) {
			normalized[i] = row
			continue
		}
		padded := make([]string, len(columns))
		copy(padded, row)
		normalized[i] = padded
	}
	return &Table{Columns: columns, Rows: normalized}
}

// ColumnIndex returns the position of the first column with this name, or
// -1 if absent.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// ColumnAt returns the values of the column at the given position, in row
// order.
func (t *Table) ColumnAt(idx int) []string {
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values
}

// Column returns the values of the named column.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	return t.ColumnAt(idx), true
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int { return len(t.Rows) }
