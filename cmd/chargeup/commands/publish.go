package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/chargeup/internal/app"
)

func (c *CLI) newPublishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Build the project and link the artifact into the install directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configOptions(cmd)
			if err != nil {
				return err
			}
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return c.app.Publish(cmd.Context(), app.PublishOptions{ConfigOptions: cfg, DryRun: dryRun})
		},
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Print the pipeline without running it")
	return cmd
}
