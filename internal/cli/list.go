package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/valter-silva-au/md-task/pkg/models"
	"gopkg.in/yaml.v3"
)

var (
	listAll    bool
	listFormat string
)

// Style definitions.
var (
	listHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	sectionStyle    = lipgloss.NewStyle().Bold(true)
	numberStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	doneTextStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	archivedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	totalsStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List pending tasks with the numbers used by done and remove.

With --all, done and archived tasks are listed too, numbered the way the
archive command addresses them. The display.show_completed_by_default
setting makes --all the default. Listing never modifies the task file.`,
	Args: usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if TaskMgr == nil {
			return fmt.Errorf("task manager not initialized")
		}

		showAll := currentConfig().Display.ShowCompletedByDefault
		if cmd.Flags().Changed("all") {
			showAll = listAll
		}

		list, err := TaskMgr.ListTasks()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch listFormat {
		case "", "text":
			renderTaskList(out, list, showAll)
			return nil
		case "json":
			data, err := json.MarshalIndent(filterTaskList(list, showAll), "", "  ")
			if err != nil {
				return fmt.Errorf("encoding tasks: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		case "yaml":
			data, err := yaml.Marshal(filterTaskList(list, showAll))
			if err != nil {
				return fmt.Errorf("encoding tasks: %w", err)
			}
			fmt.Fprint(out, string(data))
			return nil
		}
		return newUsageError("invalid format %q: use text, json, or yaml", listFormat)
	},
}

// filterTaskList drops completed tasks unless showAll is set.
func filterTaskList(list *models.TaskList, showAll bool) *models.TaskList {
	if showAll {
		return list
	}
	return &models.TaskList{Pending: list.Pending, Done: []models.Task{}, Archived: []models.Task{}}
}

func renderTaskList(w io.Writer, list *models.TaskList, showAll bool) {
	if list.Empty() {
		fmt.Fprintln(w, "No tasks found. Please add a task first.")
		return
	}

	if !showAll {
		fmt.Fprintln(w, listHeaderStyle.Render("--- Tasks ---"))
		for _, t := range list.Pending {
			fmt.Fprintln(w, formatTaskRow(t, lipgloss.NewStyle()))
		}
		return
	}

	var b strings.Builder
	b.WriteString(listHeaderStyle.Render("--- All Tasks ---"))
	b.WriteString("\n")
	writeSection(&b, "Pending", list.Pending, lipgloss.NewStyle())
	writeSection(&b, "Done", list.Done, doneTextStyle)
	writeSection(&b, "Archived", list.Archived, archivedStyle)
	b.WriteString("\n")
	b.WriteString(totalsStyle.Render(fmt.Sprintf("Total: %d pending, %d done, %d archived",
		len(list.Pending), len(list.Done), len(list.Archived))))
	fmt.Fprintln(w, b.String())
}

func writeSection(b *strings.Builder, title string, tasks []models.Task, style lipgloss.Style) {
	if len(tasks) == 0 {
		return
	}
	b.WriteString(sectionStyle.Render(title + ":"))
	b.WriteString("\n")
	for _, t := range tasks {
		b.WriteString("  ")
		b.WriteString(formatTaskRow(t, style))
		b.WriteString("\n")
	}
}

// formatTaskRow renders "N: <glyph> text". Unmarked tasks show no glyph.
func formatTaskRow(t models.Task, style lipgloss.Style) string {
	number := numberStyle.Render(fmt.Sprintf("%d:", t.Number))
	if g := t.Priority.Glyph(); g != "" {
		return fmt.Sprintf("%s %s %s", number, g, style.Render(t.Text))
	}
	return fmt.Sprintf("%s %s", number, style.Render(t.Text))
}

func init() {
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "Include done and archived tasks")
	listCmd.Flags().StringVar(&listFormat, "format", "text", "Output format: text, json, or yaml")
	rootCmd.AddCommand(listCmd)
}
