// Shared helpers for storeclose CLI commands.
package main

import (
	"fmt"

	"github.com/retailops/storeclose/internal/closer"
	"github.com/retailops/storeclose/internal/sheet"
	"github.com/retailops/storeclose/internal/sqlite"
	"github.com/retailops/storeclose/pkg/types"
)

// openCloser opens the workbook and, when enabled, the mirror, and builds
// the Closer over them. The returned cleanup releases both; the returned
// sheet store is exposed so callers can Save after a mutating run.
func openCloser() (*closer.Closer, *sheet.Store, func(), error) {
	store, err := sheet.Open(cfg.WorkbookPath, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open workbook: %w", err)
	}

	var mirror types.StatusMirror
	var closeMirror func()
	if cfg.Mirror.Enabled {
		m, err := sqlite.Open(cfg.Mirror, logger)
		if err != nil {
			store.Close()
			return nil, nil, nil, fmt.Errorf("open mirror: %w", err)
		}
		mirror = m
		closeMirror = func() { m.Close() }
	}

	c, err := closer.New(&cfg, store, mirror, logger)
	if err != nil {
		store.Close()
		if closeMirror != nil {
			closeMirror()
		}
		return nil, nil, nil, err
	}

	cleanup := func() {
		store.Close()
		if closeMirror != nil {
			closeMirror()
		}
	}
	return c, store, cleanup, nil
}

// parseIdentifiers flattens command arguments, each possibly a
// comma-separated list, into canonical identifiers in input order.
func parseIdentifiers(args []string) []string {
	var ids []string
	for _, arg := range args {
		ids = append(ids, types.SplitList(arg)...)
	}
	return ids
}
