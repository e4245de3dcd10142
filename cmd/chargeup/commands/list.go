package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the declared install sequences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configOptions(cmd)
			if err != nil {
				return err
			}
			catalog, err := c.app.List(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Sequences in %s (%s):\n", catalog.Source, catalog.Platform)

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			for _, seq := range catalog.Sequences {
				_, _ = fmt.Fprintf(tw, "  %s\t%d/%d steps\t%s\n", seq.Name, seq.Applicable, seq.Steps, seq.Description)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			if p := catalog.Publish; p != nil {
				_, _ = fmt.Fprintf(out, "Publish: %s -> %s\n", p.ArtifactPath(), p.LinkPath())
			}
			return nil
		},
	}
}
