package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/crossbow/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tasks...]",
		Short: "Run the specified tasks",
		Long: `Run resolves every task name before anything executes. A name may be a
configured task, a task file, or an adaptor command such as "@sh make".

  crossbow run build             run a configured task
  crossbow run sass:dev          run a sub-task
  crossbow run build@p           run the children of build in parallel
  crossbow run "sass?style=nested" pass inline options`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			parallel, _ := cmd.Flags().GetBool("parallel")
			force, _ := cmd.Flags().GetBool("force")

			opts := app.RunOptions{
				Cwd:        c.cwd,
				ConfigPath: c.configPath,
				Parallel:   parallel,
				Force:      force,
			}
			if cmd.Flags().Changed("fail") {
				fail, _ := cmd.Flags().GetBool("fail")
				opts.FailOnError = &fail
			}

			return c.app.Run(cmd.Context(), args, opts)
		},
	}
	cmd.Flags().BoolP("parallel", "p", false, "Run the top-level tasks in parallel")
	cmd.Flags().BoolP("force", "f", false, "Run tasks even when their watched inputs are unchanged")
	cmd.Flags().Bool("fail", true, "Exit with a non-zero status when a task fails (overrides the config)")
	return cmd
}
