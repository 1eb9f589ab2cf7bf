package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [number]",
	Aliases: []string{"rm"},
	Short:   "Delete a pending task",
	Long: `Delete the pending task with the given number from the task file.

Without a number, an interactive picker lists the pending tasks when
running in a terminal.`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		n, err := resolveTaskNumber(args, "Remove task", pendingCandidates, errNoPendingTasks)
		if err != nil {
			return err
		}

		task, err := TaskMgr.RemoveTask(n)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task %d removed: %s\n", n, task.Text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
