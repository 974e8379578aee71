package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "slotctl",
	Short: "slotctl - warehouse cell provisioning and address tools",
	Long: `slotctl provisions warehouse cells and works with location addresses
in the cell-aisle-position-level format (e.g. 4-016-0026-30).

Examples:
  # Normalise a short address
  slotctl parse 4-16-26-30

  # Preview a cell described in YAML, then create it
  slotctl plan -f cell.yaml
  slotctl provision -f cell.yaml

  # Export a cell to Excel
  slotctl export 4 -o cell-4.xlsx`,
	SilenceUsage: true,
}

var output string

func init() {
	rootCmd.PersistentFlags().StringVar(&output, "output-format", "text", "Output format: text|json|yaml")

	rootCmd.AddCommand(
		newParseCommand(),
		newFormatCommand(),
		newPlanCommand(),
		newProvisionCommand(),
		newExportCommand(),
		newLabelsCommand(),
		newTokenCommand(),
		newVersionCommand(),
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
