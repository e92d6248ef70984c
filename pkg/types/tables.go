package types

import "errors"

// TableReader reads row snapshots from a named sheet.
type TableReader interface {
	// ReadRows returns every row of the sheet in position order. Rows keep
	// their 1-based positions even when trailing cells are empty.
	ReadRows(sheet string) ([]TableRow, error)
}

// TableWriter applies cell-level mutations to a named sheet. Writes are
// expressed against 1-based row and column positions.
type TableWriter interface {
	// WriteCell sets a single cell value.
	WriteCell(sheet string, row, column int, value string) error

	// AppendRow writes values into the first all-empty row at or below
	// startRow, one value per column starting at column 1. Returns the row
	// position written.
	AppendRow(sheet string, startRow int, values []string) (int, error)
}

// TableStore combines the read and write halves of a workbook.
type TableStore interface {
	TableReader
	TableWriter
}

// StatusMirror is the optional relational mirror of store status. Keys are
// canonical store identifiers.
type StatusMirror interface {
	// UpdateStatus sets the status code for the store with the given
	// canonical identifier. Returns ErrStoreNotFound when no row matches.
	UpdateStatus(code string, status int) error
}

// Collaborator errors.
var (
	ErrSheetNotFound = errors.New("sheet not found")
	ErrStoreNotFound = errors.New("store not found")
	ErrStoreDetached = errors.New("store is not open")
)
