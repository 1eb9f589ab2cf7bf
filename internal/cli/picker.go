package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/valter-silva-au/md-task/internal/core"
	"github.com/valter-silva-au/md-task/pkg/models"
	"golang.org/x/term"
)

var errPickerCancelled = errors.New("selection cancelled")

const (
	pickerWidth  = 72
	pickerHeight = 16
)

// isInteractive reports whether stdin is a terminal. Tests replace it.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// runPicker runs the picker program to completion. Tests replace it.
var runPicker = func(m pickerModel) (pickerModel, error) {
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return m, fmt.Errorf("running picker: %w", err)
	}
	return final.(pickerModel), nil
}

// taskItem implements list.Item for one selectable task.
type taskItem struct {
	task models.Task
}

func (i taskItem) Title() string {
	return fmt.Sprintf("%d: %s", i.task.Number, i.task.Label())
}

func (i taskItem) Description() string {
	if i.task.Priority == "" {
		return fmt.Sprintf("%s, no priority", i.task.State)
	}
	return fmt.Sprintf("%s, %s priority", i.task.State, i.task.Priority)
}

func (i taskItem) FilterValue() string { return i.task.Text }

type pickerModel struct {
	list      list.Model
	selected  bool
	cancelled bool
}

func newPickerModel(title string, tasks []models.Task) pickerModel {
	items := make([]list.Item, len(tasks))
	for i, t := range tasks {
		items[i] = taskItem{task: t}
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(0)
	l := list.New(items, delegate, pickerWidth, pickerHeight)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(len(tasks) > 5)
	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(min(msg.Width, pickerWidth), max(5, min(msg.Height-2, pickerHeight)))
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		case "enter":
			if m.list.SelectedItem() != nil {
				m.selected = true
				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.selected || m.cancelled {
		return ""
	}
	return m.list.View() + "\n"
}

// choice returns the number of the selected task.
func (m pickerModel) choice() (int, error) {
	if !m.selected {
		return 0, errPickerCancelled
	}
	item, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return 0, errPickerCancelled
	}
	return item.task.Number, nil
}

// resolveTaskNumber returns the task number given as the first argument or,
// without arguments on an interactive terminal, lets the user pick one of
// the candidates. notFound is returned when there is nothing to pick.
func resolveTaskNumber(args []string, title string, candidates func() ([]models.Task, error), notFound error) (int, error) {
	if len(args) > 0 {
		return parseTaskNumber(args[0])
	}
	if !isInteractive() {
		return 0, newUsageError("a task number is required when not running in a terminal")
	}
	tasks, err := candidates()
	if err != nil {
		return 0, err
	}
	if len(tasks) == 0 {
		return 0, notFound
	}

	final, err := runPicker(newPickerModel(title, tasks))
	if err != nil {
		return 0, err
	}
	return final.choice()
}

// pendingCandidates lists the tasks done and remove can address.
func pendingCandidates() ([]models.Task, error) {
	tasks, err := TaskMgr.ListTasks()
	if err != nil {
		return nil, err
	}
	return tasks.Pending, nil
}

// completedCandidates lists the tasks archive can address, numbered over
// every completed line.
func completedCandidates() ([]models.Task, error) {
	tasks, err := TaskMgr.ListTasks()
	if err != nil {
		return nil, err
	}
	return append(append([]models.Task{}, tasks.Done...), tasks.Archived...), nil
}

var (
	errNoPendingTasks   = fmt.Errorf("no pending tasks: %w", core.ErrTaskNotFound)
	errNoCompletedTasks = fmt.Errorf("no completed tasks: %w", core.ErrCompletedTaskNotFound)
)
