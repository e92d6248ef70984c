// Close command for the storeclose CLI.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/retailops/storeclose/internal/closer"
	"github.com/retailops/storeclose/pkg/types"
)

var (
	flagObservation string
	flagVerify      bool
)

var closeCmd = &cobra.Command{
	Use:   "close <id>[,<id>...] [<id>...]",
	Short: "Close one or more stores",
	Long: `Close one or more stores. Each argument is a store identifier or a
comma-separated list of identifiers; numbers and alphanumeric codes
(123, I05, T09) are accepted. With --verify no writes are performed and
matching stores are only reported.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := parseIdentifiers(args)
		if len(ids) == 0 {
			fmt.Fprintln(os.Stderr, "close: no valid store identifiers in arguments")
			os.Exit(exitUserError)
		}

		// One run ID correlates every log line of the batch.
		log := logger.With("run", uuid.NewString())

		c, store, cleanup, err := openCloser()
		if err != nil {
			fmt.Fprintln(os.Stderr, "close:", err)
			os.Exit(exitSysError)
		}
		defer cleanup()

		if flagVerify {
			return runVerify(c, ids)
		}

		log.Info("closing stores", "count", len(ids))
		outcomes := c.CloseStores(ids, flagObservation)
		summary := types.Summarize(outcomes)

		// Workbook mutations only reach disk here; a failed save fails
		// the whole run regardless of per-store outcomes.
		if summary.Closed > 0 {
			if err := store.Save(); err != nil {
				fmt.Fprintln(os.Stderr, "close:", err)
				os.Exit(exitSysError)
			}
		}

		if err := printOutcomes(outcomes, summary); err != nil {
			fmt.Fprintln(os.Stderr, "close:", err)
			os.Exit(exitSysError)
		}

		if !summary.Clean() {
			os.Exit(exitUserError)
		}
		return nil
	},
}

func init() {
	closeCmd.Flags().StringVarP(&flagObservation, "observation", "o", "", "observation recorded with the closure")
	closeCmd.Flags().BoolVar(&flagVerify, "verify", false, "only verify the stores exist; perform no writes")
}

// runVerify reports each store without writing. A missing store never fails
// the run in verify mode.
func runVerify(c *closer.Closer, ids []string) error {
	infos := make([]*types.StoreInfo, 0, len(ids))
	for _, id := range ids {
		info, err := c.Info(id)
		if err != nil {
			if errors.Is(err, types.ErrStoreNotFound) {
				if !flagJSON {
					fmt.Printf("%-10s not found\n", id)
				}
				continue
			}
			fmt.Fprintln(os.Stderr, "verify:", err)
			os.Exit(exitSysError)
		}
		infos = append(infos, info)
		if !flagJSON {
			fmt.Printf("%-10s row %-5d %-10s %s\n", info.Identifier, info.Row, info.Status, info.Name)
		}
	}
	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(infos)
	}
	return nil
}

// printOutcomes writes the per-store outcomes and the batch summary.
func printOutcomes(outcomes []types.ClosureOutcome, summary types.Summary) error {
	if flagJSON {
		return json.NewEncoder(os.Stdout).Encode(struct {
			Outcomes []types.ClosureOutcome `json:"outcomes"`
			Summary  types.Summary          `json:"summary"`
		}{outcomes, summary})
	}

	for _, o := range outcomes {
		fmt.Printf("%-15s %-10s %s\n", o.Kind, o.Identifier, o.Message)
	}
	fmt.Printf("\n%d processed: %d closed, %d already closed, %d not found, %d failed\n",
		summary.Total(), summary.Closed, summary.AlreadyClosed, summary.NotFound, summary.Failed)
	return nil
}
