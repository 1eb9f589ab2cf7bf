package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:     "done [number]",
	Aliases: []string{"d"},
	Short:   "Mark a pending task as done",
	Long: `Mark the pending task with the given number as done.

Numbers are the ones shown by md-task list. Without a number, an
interactive picker lists the pending tasks when running in a terminal.`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		n, err := resolveTaskNumber(args, "Mark task as done", pendingCandidates, errNoPendingTasks)
		if err != nil {
			return err
		}

		if _, err := TaskMgr.CompleteTask(n); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Task %d marked as done.\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doneCmd)
}
