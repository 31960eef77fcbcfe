package frame

// Table holds raw tabular data from one or more source files: an ordered set
// of named columns over string cells. Cells keep their source text until a
// pipeline stage parses them; an empty cell is the missing-value marker.
type Table struct {
	cols  []string
	index map[string]int
	rows  [][]string
}

// New builds a table from a header and rows. Short rows are padded so every
// row has one cell per column; extra cells beyond the header are dropped.
func New(header []string, rows [][]string) *Table {
	t := &Table{index: make(map[string]int, len(header))}
	for _, h := range header {
		t.addColumn(h)
	}
	for _, r := range rows {
		t.appendRow(r)
	}
	return t
}

func (t *Table) addColumn(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	i := len(t.cols)
	t.cols = append(t.cols, name)
	t.index[name] = i
	for ri := range t.rows {
		t.rows[ri] = append(t.rows[ri], "")
	}
	return i
}

func (t *Table) appendRow(cells []string) {
	row := make([]string, len(t.cols))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.cols))
	copy(out, t.cols)
	return out
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Has reports whether a column exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Rename renames a column in place. It reports whether the column existed.
// Renaming onto an existing name is refused to avoid silently shadowing data.
func (t *Table) Rename(old, new string) bool {
	i, ok := t.index[old]
	if !ok || old == new {
		return ok
	}
	if _, clash := t.index[new]; clash {
		return false
	}
	t.cols[i] = new
	delete(t.index, old)
	t.index[new] = i
	return true
}

// Cell returns the cell at (row, col), or "" when either is out of range.
func (t *Table) Cell(row int, col string) string {
	i, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.rows) {
		return ""
	}
	return t.rows[row][i]
}

// SetCell overwrites a cell. Unknown columns and out-of-range rows are no-ops.
func (t *Table) SetCell(row int, col, val string) {
	i, ok := t.index[col]
	if !ok || row < 0 || row >= len(t.rows) {
		return
	}
	t.rows[row][i] = val
}

// Column returns a copy of a column's cells, or nil if it does not exist.
func (t *Table) Column(name string) []string {
	i, ok := t.index[name]
	if !ok {
		return nil
	}
	out := make([]string, len(t.rows))
	for ri, row := range t.rows {
		out[ri] = row[i]
	}
	return out
}

// Sum parses a column as numbers and returns their total. Cells that do not
// parse contribute nothing, mirroring a skip-missing column sum.
func (t *Table) Sum(name string) float64 {
	i, ok := t.index[name]
	if !ok {
		return 0
	}
	var total float64
	for _, row := range t.rows {
		if x, ok := ParseFloat(row[i]); ok {
			total += x
		}
	}
	return total
}

// Append concatenates another table below this one. Columns are unioned:
// cells for columns absent from one side stay empty.
func (t *Table) Append(other *Table) {
	if other == nil {
		return
	}
	idx := make([]int, len(other.cols))
	for i, name := range other.cols {
		idx[i] = t.addColumn(name)
	}
	for _, srow := range other.rows {
		row := make([]string, len(t.cols))
		for i, v := range srow {
			row[idx[i]] = v
		}
		t.rows = append(t.rows, row)
	}
}
