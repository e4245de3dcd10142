package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/chargeup/internal/core/domain"
)

func (c *CLI) newPlatformCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "platform",
		Short: "Print the detected host platform",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			info := c.app.Platform(cmd.Context())
			out := cmd.OutOrStdout()

			_, _ = fmt.Fprintf(out, "platform: %s\n", info.Platform)
			_, _ = fmt.Fprintf(out, "os/arch:  %s/%s\n", info.OS, info.Arch)
			if info.KernelRelease != "" {
				_, _ = fmt.Fprintf(out, "kernel:   %s\n", info.KernelRelease)
			}

			if !info.Platform.Supported() {
				return domain.ErrUnsupportedPlatform
			}
			return nil
		},
	}
}
