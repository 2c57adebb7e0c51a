package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

func newHistoryCommand(global *GlobalFlags) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs from the run ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(global, "history")
			if err != nil {
				return err
			}
			if a.cfg.Storage.DatabasePath == "" {
				return errors.New("run ledger is not configured (set storage.database_path)")
			}
			if err := a.openStorage(); err != nil {
				return err
			}
			defer a.close()

			runs, err := a.store.ListRuns(limit)
			if err != nil {
				return err
			}
			PrintHistory(cmd.OutOrStdout(), runs)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}
