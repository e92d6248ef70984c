// Info command for the storeclose CLI.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/retailops/storeclose/pkg/types"
)

var infoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Show a store's management-sheet fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, _, cleanup, err := openCloser()
		if err != nil {
			fmt.Fprintln(os.Stderr, "info:", err)
			os.Exit(exitSysError)
		}
		defer cleanup()

		info, err := c.Info(args[0])
		if err != nil {
			if errors.Is(err, types.ErrStoreNotFound) {
				fmt.Fprintf(os.Stderr, "store %q not found\n", args[0])
				os.Exit(exitUserError)
			}
			fmt.Fprintln(os.Stderr, "info:", err)
			os.Exit(exitSysError)
		}

		if flagJSON {
			return json.NewEncoder(os.Stdout).Encode(info)
		}

		fmt.Printf("Identifier: %s\n", info.Identifier)
		fmt.Printf("Name:       %s\n", info.Name)
		fmt.Printf("Group:      %s\n", info.Group)
		fmt.Printf("Status:     %s\n", info.Status)
		fmt.Printf("Row:        %d\n", info.Row)
		return nil
	},
}
