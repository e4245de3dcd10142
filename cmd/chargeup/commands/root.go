// Package commands implements the CLI commands for chargeup.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/chargeup/internal/app"
	"go.trai.ch/chargeup/internal/build"
	"go.trai.ch/chargeup/internal/core/domain"
)

// CLI represents the command line interface for chargeup.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Install(ctx context.Context, names []string, opts app.InstallOptions) error
	Publish(ctx context.Context, opts app.PublishOptions) error
	List(ctx context.Context, opts app.ConfigOptions) (*app.Catalog, error)
	Platform(ctx context.Context) app.HostInfo
	Status(ctx context.Context, opts app.ConfigOptions) ([]app.SequenceStatus, error)
	Log(ctx context.Context, names []string) ([]domain.StepLog, error)
	SetLogFormat(format string) error
	SetVerbose(verbose bool)
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	rootCmd := &cobra.Command{
		Use:           "chargeup",
		Short:         "Install the charge toolchain and publish the compiler",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the manifest (default: chargeup.yaml in the project root, else built-in)")
	rootCmd.PersistentFlags().String("project-root", "", "Project root used for templates and relative paths (default: current directory)")
	rootCmd.PersistentFlags().String("log-format", "pretty", "Log format: pretty, json or tint")
	rootCmd.PersistentFlags().Bool("verbose", false, "Stream command output")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRunE = c.applyGlobalFlags

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newPublishCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newPlatformCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newLogCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) applyGlobalFlags(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("log-format")
	if err := c.app.SetLogFormat(format); err != nil {
		return err
	}
	verbose, _ := cmd.Flags().GetBool("verbose")
	c.app.SetVerbose(verbose)
	return nil
}

// configOptions reads the manifest selection flags.
func configOptions(cmd *cobra.Command) (app.ConfigOptions, error) {
	configPath, _ := cmd.Flags().GetString("config")
	root, _ := cmd.Flags().GetString("project-root")
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return app.ConfigOptions{}, err
		}
		root = wd
	}
	return app.ConfigOptions{ConfigPath: configPath, ProjectRoot: root}, nil
}
