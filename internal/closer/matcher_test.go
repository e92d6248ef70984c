package closer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/retailops/storeclose/pkg/types"
)

func rowsFrom(startPos int, cells ...[]string) []types.TableRow {
	rows := make([]types.TableRow, 0, len(cells))
	for i, c := range cells {
		rows = append(rows, types.TableRow{Position: startPos + i, Cells: c})
	}
	return rows
}

func TestFindRowEmptyTable(t *testing.T) {
	assert.False(t, FindRow(nil, 1, 1, "123").Found)
	assert.False(t, FindRow([]types.TableRow{}, 1, 1, "123").Found)
}

func TestFindRowNoRowsAfterStart(t *testing.T) {
	rows := rowsFrom(1,
		[]string{"header", "header", "header"},
		[]string{"x", "y", "123"},
	)
	// Start row is beyond every row in the table.
	assert.False(t, FindRow(rows, 3, 3, "123").Found)
}

func TestFindRowMatches(t *testing.T) {
	rows := rowsFrom(4,
		[]string{"a", "b", "100", "Ativa"},
		[]string{"c", "d", "456", "Ativa"},
		[]string{"e", "f", "I05", "Ativa"},
	)

	tests := []struct {
		name    string
		target  string
		wantPos int
	}{
		{name: "numeric match", target: "456", wantPos: 5},
		{name: "alphanumeric match", target: "I05", wantPos: 6},
		{name: "first row at start", target: "100", wantPos: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := FindRow(rows, 4, 3, tt.target)
			assert.True(t, m.Found)
			assert.Equal(t, tt.wantPos, m.Position)
			assert.Equal(t, tt.wantPos, m.Row.Position)
		})
	}
}

func TestFindRowFirstMatchWins(t *testing.T) {
	rows := rowsFrom(6,
		[]string{"", "", "456"},
		[]string{"", "", "456"},
	)
	m := FindRow(rows, 6, 3, "456")
	assert.True(t, m.Found)
	assert.Equal(t, 6, m.Position, "first of the duplicates is acted upon")
}

func TestFindRowNumericEquivalence(t *testing.T) {
	// Sheets frequently render identifiers as floats; the cell "456.0"
	// must match the target 456.
	rows := rowsFrom(6, []string{"", "", "456.0"})
	assert.True(t, FindRow(rows, 6, 3, "456").Found)
}

func TestFindRowSkipsEmptyAndShortRows(t *testing.T) {
	rows := rowsFrom(6,
		[]string{"", "", ""},      // empty identifier cell
		[]string{"only one"},      // shorter than the identifier column
		nil,                       // no cells at all
		[]string{"", "", "789"},
	)
	m := FindRow(rows, 6, 3, "789")
	assert.True(t, m.Found)
	assert.Equal(t, 9, m.Position)
}

func TestFindRowRespectsStartRow(t *testing.T) {
	rows := rowsFrom(1,
		[]string{"", "", "456"}, // before the start row, must be ignored
		[]string{"", "", "x"},
		[]string{"", "", "456"},
	)
	m := FindRow(rows, 2, 3, "456")
	assert.True(t, m.Found)
	assert.Equal(t, 3, m.Position)
}

func TestFindRowDoesNotMutate(t *testing.T) {
	rows := rowsFrom(1, []string{"a", "b", "123"})
	_ = FindRow(rows, 1, 3, "123")
	assert.Equal(t, []string{"a", "b", "123"}, rows[0].Cells)
}

func TestFindRowCaseSensitive(t *testing.T) {
	rows := rowsFrom(1, []string{"ABC123"})
	assert.False(t, FindRow(rows, 1, 1, "abc123").Found)
	assert.True(t, FindRow(rows, 1, 1, "ABC123").Found)
}
