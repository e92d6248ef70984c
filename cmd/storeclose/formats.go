// Formats command: documents the accepted store identifier shapes.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported store identifier formats",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Supported store identifier formats:")
		fmt.Println()
		fmt.Println("  Numeric:        123, 456, 1000")
		fmt.Println("  Alphanumeric:   I05, T09, AB123")
		fmt.Println()
		fmt.Println("Equivalent numeric forms collapse: 123, \"123\" and 123.0 all")
		fmt.Println("address the same store. Alphanumeric codes are case-sensitive.")
	},
}
