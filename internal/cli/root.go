// Package cli implements the asset-divider commands.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	var global GlobalFlags

	root := &cobra.Command{
		Use:   "asset-divider",
		Short: "Value an IT inventory and divide it into three equal-value groups",
		Long: `asset-divider loads inventory sheets, prices and depreciates every asset,
splits them into groups A, B and C with near-equal total value and writes
HTML, JSON and Excel reports.`,
		SilenceUsage: true,
	}
	global.register(root)

	root.AddCommand(
		newRunCommand(&global),
		newInspectCommand(&global),
		newQuoteCommand(&global),
		newHistoryCommand(&global),
		newServeCommand(&global),
	)
	return root
}
