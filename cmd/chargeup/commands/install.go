package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/chargeup/internal/app"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install [sequences...]",
		Short: "Run install sequences on this machine",
		Long: "Run the named install sequences in order. Each step is skipped when it does not\n" +
			"apply to this platform or its check shows it is already installed.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			if len(args) == 0 && !all {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}

			cfg, err := configOptions(cmd)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			force, _ := cmd.Flags().GetBool("force")

			return c.app.Install(cmd.Context(), args, app.InstallOptions{
				ConfigOptions: cfg,
				All:           all,
				DryRun:        dryRun,
				Force:         force,
			})
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Run every declared sequence")
	cmd.Flags().BoolP("dry-run", "n", false, "Print the steps that would run without running them")
	cmd.Flags().BoolP("force", "f", false, "Run steps even when their check reports them installed")
	return cmd
}
