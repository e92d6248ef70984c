// Package closer implements store closure over the management workbook and
// the optional relational mirror: row matching, the per-store closure state
// machine, and batch processing.
package closer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/retailops/storeclose/pkg/types"
)

// dateLayout is the closure date format written to the archive sheet.
const dateLayout = "02/01/2006"

// Closer orchestrates closing stores. All collaborators are supplied by
// construction; Closer itself holds no state between calls beyond them.
type Closer struct {
	cfg    *types.Config
	store  types.TableStore
	mirror types.StatusMirror // nil when the mirror path is disabled
	log    *slog.Logger

	manager types.ManagerMapping
	archive types.ArchiveMapping

	// now is stubbed in tests for deterministic dates.
	now func() time.Time
}

// New builds a Closer from a validated configuration. mirror may be nil, in
// which case the relational mirror path is skipped entirely.
func New(cfg *types.Config, store types.TableStore, mirror types.StatusMirror, log *slog.Logger) (*Closer, error) {
	manager, err := cfg.ManagerMapping()
	if err != nil {
		return nil, fmt.Errorf("resolving manager columns: %w", err)
	}
	archive, err := cfg.ArchiveMapping()
	if err != nil {
		return nil, fmt.Errorf("resolving archive columns: %w", err)
	}
	return &Closer{
		cfg:     cfg,
		store:   store,
		mirror:  mirror,
		log:     log,
		manager: manager,
		archive: archive,
		now:     time.Now,
	}, nil
}

// CloseStore closes a single store. The status write to the management
// sheet and the append to the archive sheet form one logical unit: if any
// write fails the outcome is Failed, and no rollback of earlier writes is
// attempted. Repeating the call for an already-closed store is a no-op
// returning AlreadyClosed.
func (c *Closer) CloseStore(id any, observation string) types.ClosureOutcome {
	now := c.now()

	canonical, err := types.Normalize(id)
	if err != nil {
		return c.failed("", now, fmt.Sprintf("invalid identifier: %v", err))
	}
	if !types.Valid(canonical) {
		return c.failed(canonical, now, fmt.Sprintf("invalid store identifier %q", canonical))
	}

	c.log.Debug("matching store", "id", canonical, "sheet", c.cfg.Manager.Name)
	rows, err := c.store.ReadRows(c.cfg.Manager.Name)
	if err != nil {
		return c.failed(canonical, now, fmt.Sprintf("reading sheet %s: %v", c.cfg.Manager.Name, err))
	}

	match := FindRow(rows, c.cfg.Manager.StartRow, c.manager.Identifier, canonical)
	if !match.Found {
		c.log.Info("store not found", "id", canonical)
		return types.ClosureOutcome{
			Identifier: canonical,
			Kind:       types.OutcomeNotFound,
			Message:    fmt.Sprintf("store %s not found in sheet %s", canonical, c.cfg.Manager.Name),
			Timestamp:  now,
		}
	}
	c.log.Debug("store matched", "id", canonical, "row", match.Position)

	if match.Row.Cell(c.manager.Status) == c.cfg.ClosedStatus {
		c.log.Info("store already closed", "id", canonical, "row", match.Position)
		return types.ClosureOutcome{
			Identifier: canonical,
			Kind:       types.OutcomeAlreadyClosed,
			Message:    fmt.Sprintf("store %s is already marked %q", canonical, c.cfg.ClosedStatus),
			Row:        match.Position,
			Timestamp:  now,
		}
	}

	name := strings.TrimSpace(match.Row.Cell(c.manager.Name))
	if name == "" {
		name = "Loja " + canonical
	}

	// Mutate the management row: closed status, then the clear columns.
	if err := c.store.WriteCell(c.cfg.Manager.Name, match.Position, c.manager.Status, c.cfg.ClosedStatus); err != nil {
		return c.failed(canonical, now, fmt.Sprintf("writing status to row %d: %v", match.Position, err))
	}
	for _, col := range c.manager.Clear {
		if err := c.store.WriteCell(c.cfg.Manager.Name, match.Position, col, ""); err != nil {
			return c.failed(canonical, now, fmt.Sprintf("clearing column %d on row %d: %v", col, match.Position, err))
		}
	}
	c.log.Debug("management row updated", "id", canonical, "row", match.Position)

	if observation == "" {
		observation = c.defaultObservation(canonical, now)
	}
	archiveRow, err := c.store.AppendRow(c.cfg.Archive.Name, c.cfg.Archive.StartRow, c.archiveValues(name, canonical, now, observation))
	if err != nil {
		return c.failed(canonical, now, fmt.Sprintf("appending to sheet %s: %v", c.cfg.Archive.Name, err))
	}
	c.log.Debug("archive row appended", "id", canonical, "row", archiveRow)

	if c.mirror != nil {
		if err := c.mirror.UpdateStatus(canonical, c.cfg.Mirror.ClosedStatusCode); err != nil {
			return c.failed(canonical, now, fmt.Sprintf("updating mirror status: %v", err))
		}
		c.log.Debug("mirror status updated", "id", canonical, "status", c.cfg.Mirror.ClosedStatusCode)
	}

	c.log.Info("store closed", "id", canonical, "name", name, "row", match.Position)
	return types.ClosureOutcome{
		Identifier: canonical,
		Kind:       types.OutcomeClosed,
		Message:    fmt.Sprintf("store %s (%s) closed", canonical, name),
		Row:        match.Position,
		Timestamp:  now,
	}
}

// CloseStores closes each identifier independently, in input order. One
// identifier's failure never aborts processing of the rest; the caller
// derives the batch tally with types.Summarize.
func (c *Closer) CloseStores(ids []string, observation string) []types.ClosureOutcome {
	outcomes := make([]types.ClosureOutcome, 0, len(ids))
	for _, id := range ids {
		outcomes = append(outcomes, c.CloseStore(id, observation))
	}
	return outcomes
}

// Info returns the management-row fields of a store without performing any
// writes. Returns types.ErrStoreNotFound when no row matches.
func (c *Closer) Info(id any) (*types.StoreInfo, error) {
	canonical, err := types.Normalize(id)
	if err != nil {
		return nil, err
	}
	if !types.Valid(canonical) {
		return nil, fmt.Errorf("invalid store identifier %q", canonical)
	}

	rows, err := c.store.ReadRows(c.cfg.Manager.Name)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", c.cfg.Manager.Name, err)
	}

	match := FindRow(rows, c.cfg.Manager.StartRow, c.manager.Identifier, canonical)
	if !match.Found {
		return nil, types.ErrStoreNotFound
	}

	return &types.StoreInfo{
		Identifier: canonical,
		Name:       strings.TrimSpace(match.Row.Cell(c.manager.Name)),
		Group:      strings.TrimSpace(match.Row.Cell(c.manager.Group)),
		Status:     strings.TrimSpace(match.Row.Cell(c.manager.Status)),
		Row:        match.Position,
	}, nil
}

// archiveValues builds the dense archive row, one value per column from
// column 1 up to the widest configured archive column.
func (c *Closer) archiveValues(name, canonical string, now time.Time, observation string) []string {
	width := c.archive.Name
	for _, col := range []int{c.archive.Identifier, c.archive.Status, c.archive.Date, c.archive.Observation} {
		if col > width {
			width = col
		}
	}
	values := make([]string, width)
	values[c.archive.Name-1] = name
	values[c.archive.Identifier-1] = canonical
	values[c.archive.Status-1] = c.cfg.PendingStatus
	values[c.archive.Date-1] = now.Format(dateLayout)
	values[c.archive.Observation-1] = observation
	return values
}

// defaultObservation is used when the caller supplies no observation text.
func (c *Closer) defaultObservation(canonical string, now time.Time) string {
	if c.cfg.DefaultObservation != "" {
		return c.cfg.DefaultObservation
	}
	return fmt.Sprintf("Loja %s fechada automaticamente via sistema em %s", canonical, now.Format(dateLayout+" 15:04:05"))
}

func (c *Closer) failed(canonical string, now time.Time, reason string) types.ClosureOutcome {
	c.log.Error("closure failed", "id", canonical, "reason", reason)
	return types.ClosureOutcome{
		Identifier: canonical,
		Kind:       types.OutcomeFailed,
		Message:    reason,
		Timestamp:  now,
	}
}
