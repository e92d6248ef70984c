// Root command for the storeclose CLI.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/retailops/storeclose/internal/paths"
	"github.com/retailops/storeclose/pkg/types"
)

const version = "0.1.0"

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagVerbose   bool
	flagJSON      bool
)

// cfg and logger are initialized by PersistentPreRunE and shared by all
// subcommands; cfg is the single configuration value for the run.
var (
	cfg    types.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "storeclose",
	Short:   "storeclose closes retail store records",
	Version: version,
	Long: `storeclose closes retail store records across the management workbook
and an optional relational mirror: it locates the store row, marks it
closed, archives the closure, and mirrors the status change.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))

		// version and formats need no configuration.
		if cmd.Name() == "version" || cmd.Name() == "formats" {
			return nil
		}

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		loaded, err := loadConfig(configDir)
		if err != nil {
			return err
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(closeCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(formatsCmd)
}
