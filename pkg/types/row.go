package types

// TableRow is one row of a sheet: the ordered cell values plus the 1-based
// row position within the sheet. Rows are snapshots; mutations are expressed
// as separate write instructions, never in-place edits.
type TableRow struct {
	Position int
	Cells    []string
}

// Cell returns the value at the given 1-based column, or the empty string
// when the row is shorter than the requested column.
func (r TableRow) Cell(column int) string {
	if column < 1 || column > len(r.Cells) {
		return ""
	}
	return r.Cells[column-1]
}

// MatchResult is the outcome of a row scan: either the first matching row
// with its position, or not found. There is no ambiguous state.
type MatchResult struct {
	Found    bool
	Position int
	Row      TableRow
}

// StoreInfo holds the fields read from a matched management row, used by the
// verify and info paths.
type StoreInfo struct {
	Identifier string
	Name       string
	Group      string
	Status     string
	Row        int
}
