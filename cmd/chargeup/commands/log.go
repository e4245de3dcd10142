package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/chargeup/internal/core/domain"
)

func (c *CLI) newLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log [sequence|sequence/step...]",
		Short: "Show the recorded output of the last run",
		Long: "Show what each step of the last install or publish printed, " +
			"including the output of pre-checks. Filter by sequence or by step.",
		RunE: func(cmd *cobra.Command, args []string) error {
			steps, err := c.app.Log(cmd.Context(), args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(steps) == 0 {
				_, _ = fmt.Fprintln(out, "No recorded steps.")
				return nil
			}
			for i := range steps {
				printStepLog(out, &steps[i])
			}
			return nil
		},
	}
}

func printStepLog(w io.Writer, l *domain.StepLog) {
	header := l.Status()
	if l.Err != "" {
		header += ": " + l.Err
	}
	if !l.Completed.IsZero() && !l.Started.IsZero() {
		header += fmt.Sprintf(", %s", l.Completed.Sub(l.Started).Round(time.Millisecond))
	}
	_, _ = fmt.Fprintf(w, "==> %s (%s)\n", l.Name, header)

	output := strings.TrimRight(l.Output, "\n")
	if output == "" {
		return
	}
	for line := range strings.SplitSeq(output, "\n") {
		_, _ = fmt.Fprintf(w, "    %s\n", line)
	}
}
