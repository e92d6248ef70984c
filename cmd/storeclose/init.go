// Init command: writes the default configuration.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/retailops/storeclose/internal/paths"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the configuration directory and a default config.yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Config dir and default file were created by PersistentPreRunE;
		// report where they live.
		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		fmt.Println("configuration written to", filepath.Join(configDir, configFileExt))
		return nil
	},
}
