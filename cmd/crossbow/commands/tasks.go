package commands

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// taskColumnGap separates the name and description columns.
const taskColumnGap = 2

func (c *CLI) newTasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List the configured tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tasks, err := c.app.Tasks(c.cwd, c.configPath)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(out, "no tasks configured")
				return nil
			}

			width := 0
			for _, t := range tasks {
				width = max(width, lipgloss.Width(t.Name))
			}
			name := lipgloss.NewStyle().Width(width + taskColumnGap)

			for _, t := range tasks {
				if t.Description == "" {
					_, _ = fmt.Fprintln(out, t.Name)
					continue
				}
				_, _ = fmt.Fprintln(out, name.Render(t.Name)+t.Description)
			}
			return nil
		},
	}
}
