package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/md-task/internal/core"
)

var addPriority string

var addCmd = &cobra.Command{
	Use:     "add <text...>",
	Aliases: []string{"a"},
	Short:   "Add a pending task",
	Long: `Add a pending task to the end of the task list.

The task gets the priority given by --priority, or the configured
default_priority when the flag is omitted. Multiple arguments are joined
with spaces.

Examples:
  md-task add "buy milk" -p high
  md-task a write the release notes`,
	Args: usageArgs(cobra.MinimumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		raw := addPriority
		if raw == "" {
			raw = string(currentConfig().TaskManagement.DefaultPriority)
		}
		priority, err := core.ParsePriority(raw)
		if err != nil {
			return err
		}

		task, err := TaskMgr.AddTask(strings.Join(args, " "), priority)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task added: %s (%s priority)\n", task.Text, task.Priority)
		return nil
	},
}

func init() {
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", "", "Task priority: high, medium or low")
	rootCmd.AddCommand(addCmd)
}
