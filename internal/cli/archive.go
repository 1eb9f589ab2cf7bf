package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var archiveAll bool

var archiveCmd = &cobra.Command{
	Use:     "archive [number]",
	Aliases: []string{"arc"},
	Short:   "Move completed tasks into the archive section",
	Long: `Move a completed task into the archive section of the task file.

Completed tasks are numbered over every done line, archived ones included,
as shown by md-task list --all. The archived task becomes the first entry of
the archive section, which is created when missing.

Use --all to archive every completed task of the task list at once; they
are appended after the entries already archived, in their original order.`,
	Args: usageArgs(cobra.MaximumNArgs(1)),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		out := cmd.OutOrStdout()
		if archiveAll {
			if len(args) > 0 {
				return newUsageError("--all does not take a task number")
			}
			n, err := TaskMgr.ArchiveAll()
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(out, "No completed tasks to archive.")
				return nil
			}
			fmt.Fprintf(out, "%d completed task(s) archived.\n", n)
			return nil
		}

		n, err := resolveTaskNumber(args, "Archive completed task", completedCandidates, errNoCompletedTasks)
		if err != nil {
			return err
		}

		task, err := TaskMgr.ArchiveTask(n)
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "Task archived: %s\n", task.Text)
		return nil
	},
}

func init() {
	archiveCmd.Flags().BoolVar(&archiveAll, "all", false, "Archive every completed task")
	rootCmd.AddCommand(archiveCmd)
}
