// Package commands implements the CLI commands for the crossbow task runner.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/crossbow/internal/app"
	"go.trai.ch/crossbow/internal/build"
)

// CLI represents the command line interface for crossbow.
type CLI struct {
	app     Application
	logs    LogSettings
	rootCmd *cobra.Command

	configPath string
	cwd        string
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, names []string, opts app.RunOptions) error
	Tasks(cwd, configPath string) ([]app.TaskInfo, error)
}

// LogSettings adjusts logger output from global flags.
type LogSettings interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. logs may be nil.
func New(a Application, logs LogSettings) *CLI {
	rootCmd := &cobra.Command{
		Use:           "crossbow",
		Short:         "A task runner for shell commands, npm scripts and task files",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	c := &CLI{
		app:     a,
		logs:    logs,
		rootCmd: rootCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&c.configPath, "config", "c", "", "Path to the configuration file (default: crossbow.yaml found upwards)")
	flags.StringVar(&c.cwd, "cwd", "", "Directory to resolve tasks from (default: current directory)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.Bool("json", false, "Write logs as JSON")

	// Persistent flags must exist first so that -v stays with --verbose.
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if c.logs == nil {
			return
		}
		verbose, _ := cmd.Flags().GetBool("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json")
		c.logs.SetVerbose(verbose)
		c.logs.SetJSON(jsonLogs)
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newTasksCmd())
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
