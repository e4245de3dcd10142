package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/chargeup/internal/app"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the last recorded run of each sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := configOptions(cmd)
			if err != nil {
				return err
			}
			statuses, err := c.app.Status(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range statuses {
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Name, statusLabel(s), statusNote(s))
			}
			return tw.Flush()
		},
	}
}

func statusLabel(s app.SequenceStatus) string {
	switch {
	case s.Receipt == nil:
		return "never run"
	case s.Receipt.Succeeded:
		return "succeeded"
	case s.Receipt.FailedStep != "":
		return fmt.Sprintf("failed at %q", s.Receipt.FailedStep)
	default:
		return "incomplete"
	}
}

func statusNote(s app.SequenceStatus) string {
	if s.Receipt == nil {
		return ""
	}
	note := s.Receipt.Timestamp.Local().Format(time.DateTime) + " on " + s.Receipt.Platform
	switch {
	case s.Undeclared:
		note += " (no longer declared)"
	case s.Changed:
		note += " (definition changed since)"
	}
	return note
}
