package table

import (
	"fmt"
)

// Table is an in-memory columnar dataset: an ordered list of named
// columns, each holding one Value per row.
//
// GLOBE observation downloads carry a different column set per protocol,
// and some transforms (land cover classification unpacking) create columns
// at runtime, so rows cannot be modeled as a fixed struct.
//
// Example usage:
//
//	t := table.New("name", "count")
//	t.AppendRow(map[string]table.Value{
//	    "name":  table.Str("ovitrap"),
//	    "count": table.Int(3),
//	})
//	counts := t.Column("count")
type Table struct {
	cols []string
	data [][]Value
	rows int
}

// New creates an empty Table with the given column order.
func New(columns ...string) *Table {
	t := &Table{
		cols: append([]string(nil), columns...),
		data: make([][]Value, len(columns)),
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns the column names in order. The slice is a copy.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// HasColumn reports whether a column exists.
func (t *Table) HasColumn(name string) bool {
	return t.indexOf(name) >= 0
}

func (t *Table) indexOf(name string) int {
	for i, col := range t.cols {
		if col == name {
			return i
		}
	}
	return -1
}

// Column returns the live cell slice for a column, or nil if the column
// does not exist. Writing into the returned slice updates the table.
func (t *Table) Column(name string) []Value {
	i := t.indexOf(name)
	if i < 0 {
		return nil
	}
	return t.data[i]
}

// SetColumn replaces a column's cells, appending the column at the end of
// the column order if it does not exist yet. The cell count must match the
// table's row count, except on a table that has no columns yet, where it
// defines the row count.
func (t *Table) SetColumn(name string, cells []Value) error {
	if len(t.cols) > 0 && len(cells) != t.rows {
		return fmt.Errorf("column %s: %d cells for %d rows", name, len(cells), t.rows)
	}
	if i := t.indexOf(name); i >= 0 {
		t.data[i] = cells
		return nil
	}
	t.cols = append(t.cols, name)
	t.data = append(t.data, cells)
	t.rows = len(cells)
	return nil
}

// AddColumn appends a new column filled with the given Value and returns
// its live cell slice. An existing column of the same name is returned
// unchanged.
func (t *Table) AddColumn(name string, fill Value) []Value {
	if i := t.indexOf(name); i >= 0 {
		return t.data[i]
	}
	cells := make([]Value, t.rows)
	for i := range cells {
		cells[i] = fill
	}
	t.cols = append(t.cols, name)
	t.data = append(t.data, cells)
	return cells
}

// AppendRow adds a row. Columns absent from the map hold null.
func (t *Table) AppendRow(cells map[string]Value) {
	for i, col := range t.cols {
		t.data[i] = append(t.data[i], cells[col])
	}
	t.rows++
}

// Cell returns the cell at a column and row, or null when the column is
// missing or the row out of range.
func (t *Table) Cell(column string, row int) Value {
	i := t.indexOf(column)
	if i < 0 || row < 0 || row >= t.rows {
		return Null()
	}
	return t.data[i][row]
}

// SetCell writes a cell. Unknown columns and out-of-range rows are
// ignored.
func (t *Table) SetCell(column string, row int, v Value) {
	i := t.indexOf(column)
	if i < 0 || row < 0 || row >= t.rows {
		return
	}
	t.data[i][row] = v
}

// RenameColumn renames a column, keeping its position. Missing old names
// are ignored.
func (t *Table) RenameColumn(old, new string) {
	if i := t.indexOf(old); i >= 0 {
		t.cols[i] = new
	}
}

// RenameColumns applies several renames at once. Keys that are not
// current column names are ignored.
func (t *Table) RenameColumns(renames map[string]string) {
	for i, col := range t.cols {
		if repl, ok := renames[col]; ok {
			t.cols[i] = repl
		}
	}
}

// SetColumnNames replaces the whole column header. The new names are
// applied positionally and must match the current column count.
func (t *Table) SetColumnNames(names []string) error {
	if len(names) != len(t.cols) {
		return fmt.Errorf("set names: %d names for %d columns", len(names), len(t.cols))
	}
	t.cols = append(t.cols[:0], names...)
	return nil
}

// DropColumn removes a column. Missing names are ignored.
func (t *Table) DropColumn(name string) {
	i := t.indexOf(name)
	if i < 0 {
		return
	}
	t.cols = append(t.cols[:i], t.cols[i+1:]...)
	t.data = append(t.data[:i], t.data[i+1:]...)
}

// ReorderColumns rearranges the column order. The given order must be a
// permutation of the current column names.
func (t *Table) ReorderColumns(order []string) error {
	if len(order) != len(t.cols) {
		return fmt.Errorf("reorder: %d names for %d columns", len(order), len(t.cols))
	}
	data := make([][]Value, len(order))
	for i, name := range order {
		j := t.indexOf(name)
		if j < 0 {
			return fmt.Errorf("reorder: unknown column %s", name)
		}
		data[i] = t.data[j]
	}
	t.cols = append(t.cols[:0], order...)
	t.data = data
	return nil
}

// FilterRows returns a new Table holding the rows for which keep returns
// true. Column order is preserved and no cell storage is shared.
func (t *Table) FilterRows(keep func(row int) bool) *Table {
	out := New(t.cols...)
	var rows []int
	for row := 0; row < t.rows; row++ {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	for i := range t.cols {
		cells := make([]Value, len(rows))
		for j, row := range rows {
			cells[j] = t.data[i][row]
		}
		out.data[i] = cells
	}
	out.rows = len(rows)
	return out
}

// Clone returns a deep copy of the Table.
func (t *Table) Clone() *Table {
	return t.FilterRows(func(int) bool { return true })
}

// UniqueCount returns the number of distinct cell values in a column.
// Null cells collapse to a single distinct value. A missing column counts
// zero.
func (t *Table) UniqueCount(column string) int {
	cells := t.Column(column)
	if cells == nil {
		return 0
	}
	seen := make(map[string]struct{}, len(cells))
	for _, v := range cells {
		seen[v.key()] = struct{}{}
	}
	return len(seen)
}

// NonNullCount returns the number of filled cells in a row.
func (t *Table) NonNullCount(row int) int {
	n := 0
	for i := range t.cols {
		if !t.data[i][row].IsNull() {
			n++
		}
	}
	return n
}

// GroupKey builds a composite key from the given columns for one row,
// suitable for grouping rows that share the same values.
func (t *Table) GroupKey(columns []string, row int) string {
	key := ""
	for _, col := range columns {
		key += t.Cell(col, row).key() + "\x1f"
	}
	return key
}
