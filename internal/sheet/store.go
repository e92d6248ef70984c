// Package sheet implements the table store over an Excel workbook using
// excelize. Reads return row snapshots; writes mutate the in-memory workbook
// and are persisted with an explicit Save, so a run's mutations reach disk
// as one unit.
package sheet

import (
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/retailops/storeclose/pkg/types"
)

// Compile-time interface check.
var _ types.TableStore = (*Store)(nil)

// Store is a workbook-backed TableStore.
type Store struct {
	f   *excelize.File
	log *slog.Logger
}

// Open opens the workbook at path.
func Open(path string, log *slog.Logger) (*Store, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	log.Debug("workbook opened", "path", path)
	return &Store{f: f, log: log}, nil
}

// NewStore wraps an already-open workbook. Used by tests and callers that
// build workbooks in memory.
func NewStore(f *excelize.File, log *slog.Logger) *Store {
	return &Store{f: f, log: log}
}

// Save persists all pending mutations back to the workbook file.
func (s *Store) Save() error {
	if s.f == nil {
		return types.ErrStoreDetached
	}
	if err := s.f.Save(); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}

// Close releases the workbook without saving. Further operations on the
// Store return ErrStoreDetached.
func (s *Store) Close() error {
	if s.f == nil {
		return nil
	}
	f := s.f
	s.f = nil
	return f.Close()
}

// ReadRows returns every row of the sheet in position order. Trailing fully
// empty rows are not materialized by the underlying reader, which is fine:
// the matcher treats absent rows and empty cells the same way.
func (s *Store) ReadRows(sheet string) ([]types.TableRow, error) {
	if err := s.checkSheet(sheet); err != nil {
		return nil, err
	}
	raw, err := s.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	rows := make([]types.TableRow, 0, len(raw))
	for i, cells := range raw {
		rows = append(rows, types.TableRow{Position: i + 1, Cells: cells})
	}
	s.log.Debug("sheet read", "sheet", sheet, "rows", len(rows))
	return rows, nil
}

// WriteCell sets a single cell at the 1-based row and column.
func (s *Store) WriteCell(sheet string, row, column int, value string) error {
	if err := s.checkSheet(sheet); err != nil {
		return err
	}
	cell, err := excelize.CoordinatesToCellName(column, row)
	if err != nil {
		return fmt.Errorf("addressing cell (%d,%d): %w", row, column, err)
	}
	if err := s.f.SetCellValue(sheet, cell, value); err != nil {
		return fmt.Errorf("writing %s!%s: %w", sheet, cell, err)
	}
	return nil
}

// AppendRow writes values into the first all-empty row at or below startRow,
// one value per column starting at column 1, and returns the row written.
func (s *Store) AppendRow(sheet string, startRow int, values []string) (int, error) {
	if err := s.checkSheet(sheet); err != nil {
		return 0, err
	}
	raw, err := s.f.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	pos := startRow
	for ; pos <= len(raw); pos++ {
		if rowEmpty(raw[pos-1]) {
			break
		}
	}

	cell, err := excelize.CoordinatesToCellName(1, pos)
	if err != nil {
		return 0, fmt.Errorf("addressing row %d: %w", pos, err)
	}
	if err := s.f.SetSheetRow(sheet, cell, &values); err != nil {
		return 0, fmt.Errorf("appending to %s row %d: %w", sheet, pos, err)
	}
	s.log.Debug("row appended", "sheet", sheet, "row", pos)
	return pos, nil
}

// checkSheet maps a missing sheet to the collaborator sentinel error.
func (s *Store) checkSheet(sheet string) error {
	if s.f == nil {
		return types.ErrStoreDetached
	}
	idx, err := s.f.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return fmt.Errorf("%w: %s", types.ErrSheetNotFound, sheet)
	}
	return nil
}

func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
