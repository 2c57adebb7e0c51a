package cli

import (
	"github.com/spf13/cobra"
)

func newRunCommand(global *GlobalFlags) *cobra.Command {
	var flags RunFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Divide the inventory and write reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(global, "run")
			if err != nil {
				return err
			}
			if err := a.openStorage(); err != nil {
				return err
			}
			defer a.close()

			o, err := a.orchestrator(cmd.Context())
			if err != nil {
				return err
			}

			opts := flags.ToOptions(a.cfg)
			out := cmd.OutOrStdout()
			PrintHeader(out, opts.DryRun)

			result, err := o.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}
			PrintRunSummary(out, result, opts.Currency)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newInspectCommand(global *GlobalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Load every source and report what was read, without valuing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(global, "inspect")
			if err != nil {
				return err
			}

			o, err := a.orchestrator(cmd.Context())
			if err != nil {
				return err
			}

			load, err := o.Inspect(cmd.Context())
			if err != nil {
				return err
			}
			PrintInspection(cmd.OutOrStdout(), load)
			return nil
		},
	}
}
