// Package model defines the tabular dataset and KPI result types shared
// across the analysis pipeline.
package model

// Table is an in-memory tabular dataset: an ordered list of named columns
// and rows of string cells. Missing values are empty strings. Rows shorter
// than the header are padded on access.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NewTable creates a table from a header row and data rows. Rows are padded
// or truncated to the header width so every row has one cell per column.
func NewTable(columns []string, rows [][]string) *Table {
	t := &Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, len(rows)),
	}
	for i, row := range rows {
		cells := make([]string, len(columns))
		copy(cells, row)
		t.Rows[i] = cells
	}
	return t
}

// Clone returns a deep copy. The pipeline operates on a clone so the
// caller's table is never mutated.
func (t *Table) Clone() *Table {
	return NewTable(t.Columns, t.Rows)
}

// Index returns the position of the named column, or -1 if absent.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	return t.Index(name) >= 0
}

// Get returns the cell at (row, column name). Absent column or
// out-of-range row yields "".
func (t *Table) Get(row int, name string) string {
	idx := t.Index(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return ""
	}
	return t.Rows[row][idx]
}

// Set overwrites the cell at (row, column name). No-op if the column is
// absent or the row is out of range.
func (t *Table) Set(row int, name, value string) {
	idx := t.Index(name)
	if idx < 0 || row < 0 || row >= len(t.Rows) {
		return
	}
	t.Rows[row][idx] = value
}

// AddColumn appends a new column with the given values. Values are padded
// or truncated to the row count. If the column already exists its cells are
// overwritten instead.
func (t *Table) AddColumn(name string, values []string) {
	if idx := t.Index(name); idx >= 0 {
		for i := range t.Rows {
			if i < len(values) {
				t.Rows[i][idx] = values[i]
			} else {
				t.Rows[i][idx] = ""
			}
		}
		return
	}
	t.Columns = append(t.Columns, name)
	for i := range t.Rows {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		t.Rows[i] = append(t.Rows[i], v)
	}
}

// Column returns all values of the named column in row order, and whether
// the column exists.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		values[i] = row[idx]
	}
	return values, true
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Head returns a new table containing at most n leading rows.
func (t *Table) Head(n int) *Table {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return NewTable(t.Columns, t.Rows[:n])
}

// Records converts the table to a list of column→value maps, preserving
// row order. Used for JSON serialization of the cleaned dataset.
func (t *Table) Records() []map[string]string {
	records := make([]map[string]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for j, col := range t.Columns {
			rec[col] = row[j]
		}
		records[i] = rec
	}
	return records
}
