package types

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/xuri/excelize/v2"
)

// Config validation errors.
var (
	ErrWorkbookPathEmpty = errors.New("workbook path must not be empty")
	ErrSheetNameEmpty    = errors.New("sheet name must not be empty")
	ErrStartRowInvalid   = errors.New("start row must be positive")
	ErrColumnInvalid     = errors.New("column must be a letter reference")
	ErrStatusEmpty       = errors.New("status literal must not be empty")
	ErrMirrorPathEmpty   = errors.New("mirror database path must not be empty")
)

// columnLetter matches a spreadsheet column reference (A, B, ..., AA, AB).
var columnLetter = regexp.MustCompile(`^[A-Za-z]+$`)

// Config is the complete configuration for one run. It is constructed once
// at process start and passed by reference into every component that needs
// it; there is no ambient global configuration.
type Config struct {
	// WorkbookPath is the .xlsx file holding both sheets.
	WorkbookPath string `mapstructure:"workbook_path"`

	Manager ManagerSheet `mapstructure:"manager"`
	Archive ArchiveSheet `mapstructure:"archive"`

	// ClosedStatus is the literal written to the manager status column when
	// a store closes, and the literal an already-closed row carries.
	ClosedStatus string `mapstructure:"closed_status"`

	// PendingStatus is the literal written to the archive status column.
	PendingStatus string `mapstructure:"pending_status"`

	// DefaultObservation is used when the caller supplies none.
	DefaultObservation string `mapstructure:"default_observation"`

	Mirror MirrorConfig `mapstructure:"mirror"`
}

// ManagerSheet describes the management sheet layout. Columns are letter
// references resolved to 1-based indexes once via Mapping.
type ManagerSheet struct {
	Name             string   `mapstructure:"name"`
	StartRow         int      `mapstructure:"start_row"`
	IdentifierColumn string   `mapstructure:"identifier_column"`
	StatusColumn     string   `mapstructure:"status_column"`
	NameColumn       string   `mapstructure:"name_column"`
	GroupColumn      string   `mapstructure:"group_column"`
	ClearColumns     []string `mapstructure:"clear_columns"`
}

// ArchiveSheet describes the closed-stores archive sheet layout.
type ArchiveSheet struct {
	Name              string `mapstructure:"name"`
	StartRow          int    `mapstructure:"start_row"`
	NameColumn        string `mapstructure:"name_column"`
	IdentifierColumn  string `mapstructure:"identifier_column"`
	StatusColumn      string `mapstructure:"status_column"`
	DateColumn        string `mapstructure:"date_column"`
	ObservationColumn string `mapstructure:"observation_column"`
}

// MirrorConfig configures the optional relational mirror.
type MirrorConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`

	// ClosedStatusCode is the status value written on closure.
	ClosedStatusCode int `mapstructure:"closed_status_code"`
}

// ManagerMapping is the manager sheet's logical-field-to-column-index
// association, resolved once from the configured letters.
type ManagerMapping struct {
	Identifier int
	Status     int
	Name       int
	Group      int
	Clear      []int
}

// ArchiveMapping is the archive sheet's column-index association.
type ArchiveMapping struct {
	Name        int
	Identifier  int
	Status      int
	Date        int
	Observation int
}

// DefaultConfig returns the configuration the tool ships with. Literals
// match the tracking sheet conventions ("Fechada" marks a closed store,
// "NÃO" marks an archive entry as not yet reconciled).
func DefaultConfig() Config {
	return Config{
		WorkbookPath: "stores.xlsx",
		Manager: ManagerSheet{
			Name:             "Gerenciador",
			StartRow:         6,
			IdentifierColumn: "C",
			StatusColumn:     "D",
			NameColumn:       "G",
			GroupColumn:      "B",
			ClearColumns:     []string{"A", "B"},
		},
		Archive: ArchiveSheet{
			Name:              "Lojas Fechadas",
			StartRow:          2,
			NameColumn:        "B",
			IdentifierColumn:  "C",
			StatusColumn:      "D",
			DateColumn:        "E",
			ObservationColumn: "F",
		},
		ClosedStatus:  "Fechada",
		PendingStatus: "NÃO",
		Mirror: MirrorConfig{
			Enabled:          false,
			Path:             "stores.db",
			ClosedStatusCode: 3,
		},
	}
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package, wrapped with the offending field, on failure.
// Configuration errors are fatal at startup; nothing is recoverable
// per-identifier.
func (c Config) Validate() error {
	if c.WorkbookPath == "" {
		return ErrWorkbookPathEmpty
	}
	if c.Manager.Name == "" || c.Archive.Name == "" {
		return ErrSheetNameEmpty
	}
	if c.Manager.StartRow < 1 {
		return fmt.Errorf("manager: %w", ErrStartRowInvalid)
	}
	if c.Archive.StartRow < 1 {
		return fmt.Errorf("archive: %w", ErrStartRowInvalid)
	}
	for field, col := range map[string]string{
		"manager identifier":  c.Manager.IdentifierColumn,
		"manager status":      c.Manager.StatusColumn,
		"manager name":        c.Manager.NameColumn,
		"manager group":       c.Manager.GroupColumn,
		"archive name":        c.Archive.NameColumn,
		"archive identifier":  c.Archive.IdentifierColumn,
		"archive status":      c.Archive.StatusColumn,
		"archive date":        c.Archive.DateColumn,
		"archive observation": c.Archive.ObservationColumn,
	} {
		if !columnLetter.MatchString(col) {
			return fmt.Errorf("%s column %q: %w", field, col, ErrColumnInvalid)
		}
	}
	for _, col := range c.Manager.ClearColumns {
		if !columnLetter.MatchString(col) {
			return fmt.Errorf("clear column %q: %w", col, ErrColumnInvalid)
		}
	}
	if c.ClosedStatus == "" || c.PendingStatus == "" {
		return ErrStatusEmpty
	}
	if c.Mirror.Enabled && c.Mirror.Path == "" {
		return ErrMirrorPathEmpty
	}
	return nil
}

// ManagerMapping resolves the manager sheet's column letters to 1-based
// indexes. Call after Validate; letters validated there always resolve.
func (c Config) ManagerMapping() (ManagerMapping, error) {
	var m ManagerMapping
	var err error
	if m.Identifier, err = columnIndex(c.Manager.IdentifierColumn); err != nil {
		return m, err
	}
	if m.Status, err = columnIndex(c.Manager.StatusColumn); err != nil {
		return m, err
	}
	if m.Name, err = columnIndex(c.Manager.NameColumn); err != nil {
		return m, err
	}
	if m.Group, err = columnIndex(c.Manager.GroupColumn); err != nil {
		return m, err
	}
	for _, col := range c.Manager.ClearColumns {
		idx, err := columnIndex(col)
		if err != nil {
			return m, err
		}
		m.Clear = append(m.Clear, idx)
	}
	return m, nil
}

// ArchiveMapping resolves the archive sheet's column letters.
func (c Config) ArchiveMapping() (ArchiveMapping, error) {
	var m ArchiveMapping
	var err error
	if m.Name, err = columnIndex(c.Archive.NameColumn); err != nil {
		return m, err
	}
	if m.Identifier, err = columnIndex(c.Archive.IdentifierColumn); err != nil {
		return m, err
	}
	if m.Status, err = columnIndex(c.Archive.StatusColumn); err != nil {
		return m, err
	}
	if m.Date, err = columnIndex(c.Archive.DateColumn); err != nil {
		return m, err
	}
	if m.Observation, err = columnIndex(c.Archive.ObservationColumn); err != nil {
		return m, err
	}
	return m, nil
}

// columnIndex converts a column letter reference to its 1-based index.
func columnIndex(letter string) (int, error) {
	n, err := excelize.ColumnNameToNumber(letter)
	if err != nil {
		return 0, fmt.Errorf("column %q: %w", letter, ErrColumnInvalid)
	}
	return n, nil
}
