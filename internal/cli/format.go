package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt",
	Short: "Rewrite the task file into its canonical layout",
	Long: `Normalize the task file regardless of the auto_format setting: ensure the
task list header, collapse blank lines, add the medium priority marker to
unmarked tasks, move pending tasks out of the archive section and end the
file with a newline.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		modified, err := TaskMgr.Format()
		if err != nil {
			return err
		}

		if modified {
			fmt.Fprintln(cmd.OutOrStdout(), "Task file formatted.")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Task file already formatted.")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
}
