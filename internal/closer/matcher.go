package closer

import "github.com/retailops/storeclose/pkg/types"

// FindRow scans rows from startRow (inclusive) to the end of the table in
// ascending position order and returns the first row whose identifier cell
// equals target under canonical identifier comparison. Rows with an empty or
// missing identifier cell are skipped; rows shorter than identifierColumn
// read as empty. When duplicates exist only the first match is returned.
//
// FindRow never mutates the table or its rows and keeps no state between
// calls.
func FindRow(rows []types.TableRow, startRow, identifierColumn int, target string) types.MatchResult {
	for _, row := range rows {
		if row.Position < startRow {
			continue
		}
		cell := row.Cell(identifierColumn)
		if cell == "" {
			continue
		}
		if types.Equal(cell, target) {
			return types.MatchResult{Found: true, Position: row.Position, Row: row}
		}
	}
	return types.MatchResult{}
}
