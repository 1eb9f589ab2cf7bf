package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/md-task/pkg/models"
)

// DocumentStore is the subset of storage.DocumentManager that TaskManager
// needs. Defining it here keeps core independent of the storage package.
type DocumentStore interface {
	// Load returns the document text and whether the document exists. A
	// missing document is not an error.
	Load() (text string, exists bool, err error)
	Save(text string) error
	Path() string
}

// TaskManager defines the task operations of one md-task invocation. Each
// mutating call loads the document, applies exactly one change, normalizes
// it when auto-format is on and persists the result if anything changed.
type TaskManager interface {
	AddTask(text string, priority models.Priority) (*models.Task, error)
	ListTasks() (*models.TaskList, error)
	CompleteTask(number int) (*models.Task, error)
	RemoveTask(number int) (*models.Task, error)
	ArchiveTask(number int) (*models.Task, error)
	ArchiveAll() (int, error)
	Format() (bool, error)
}

// taskManager implements TaskManager over a DocumentStore.
type taskManager struct {
	store      DocumentStore
	normalizer *Normalizer
	autoFormat bool
	logger     *log.Logger
}

// NewTaskManager creates a TaskManager. autoFormat gates normalization after
// mutations; Format always normalizes. A nil logger discards output.
func NewTaskManager(store DocumentStore, normalizer *Normalizer, autoFormat bool, logger *log.Logger) TaskManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if normalizer == nil {
		normalizer = NewNormalizer(NormalizeOptions{}, logger)
	}
	return &taskManager{
		store:      store,
		normalizer: normalizer,
		autoFormat: autoFormat,
		logger:     logger,
	}
}

// AddTask appends a pending task. Newlines in text are folded into spaces
// so the task stays on one line.
func (tm *taskManager) AddTask(text string, priority models.Priority) (*models.Task, error) {
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return nil, fmt.Errorf("adding task: %w", ErrEmptyTaskText)
	}
	p, err := ParsePriority(string(priority))
	if err != nil {
		return nil, fmt.Errorf("adding task: %w", err)
	}

	task := &models.Task{State: models.StatePending, Priority: p, Text: text}
	err = tm.mutate("add", func(lines []string) ([]string, bool, error) {
		out := AppendTask(lines, text, p)
		task.Number = pendingNumberAt(out, activeInsertIndex(lines), len(lines) == 0)
		return out, true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("adding task: %w", err)
	}
	return task, nil
}

// ListTasks returns the tasks of the document grouped by state. It never
// writes the document.
func (tm *taskManager) ListTasks() (*models.TaskList, error) {
	text, _, err := tm.store.Load()
	if err != nil {
		return nil, fmt.Errorf("listing tasks: loading %s: %w", tm.store.Path(), err)
	}

	list := &models.TaskList{}
	pending, completed := 0, 0
	inArchive := false
	for _, raw := range SplitLines(text) {
		l := ClassifyLine(raw)
		switch l.Kind {
		case LineArchiveHeader:
			inArchive = true
		case LinePending:
			pending++
			list.Pending = append(list.Pending, taskFromLine(l, pending, models.StatePending))
		case LineDone:
			completed++
			if inArchive {
				list.Archived = append(list.Archived, taskFromLine(l, completed, models.StateArchived))
			} else {
				list.Done = append(list.Done, taskFromLine(l, completed, models.StateDone))
			}
		}
	}
	return list, nil
}

// CompleteTask marks the number-th pending task as done.
func (tm *taskManager) CompleteTask(number int) (*models.Task, error) {
	var task models.Task
	err := tm.mutate("done", func(lines []string) ([]string, bool, error) {
		out, l, err := MarkDone(lines, number)
		if err != nil {
			return nil, false, err
		}
		task = taskFromLine(l, number, models.StateDone)
		return out, true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("completing task: %w", err)
	}
	return &task, nil
}

// RemoveTask deletes the number-th pending task.
func (tm *taskManager) RemoveTask(number int) (*models.Task, error) {
	var task models.Task
	err := tm.mutate("remove", func(lines []string) ([]string, bool, error) {
		out, l, err := RemoveTask(lines, number)
		if err != nil {
			return nil, false, err
		}
		task = taskFromLine(l, number, models.StatePending)
		return out, true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("removing task: %w", err)
	}
	return &task, nil
}

// ArchiveTask moves the number-th completed task into the archive section.
func (tm *taskManager) ArchiveTask(number int) (*models.Task, error) {
	var task models.Task
	err := tm.mutate("archive", func(lines []string) ([]string, bool, error) {
		out, l, err := ArchiveTask(lines, number)
		if err != nil {
			return nil, false, err
		}
		task = taskFromLine(l, number, models.StateArchived)
		return out, true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("archiving task: %w", err)
	}
	return &task, nil
}

// ArchiveAll moves every completed task of the active section into the
// archive and returns how many were moved.
func (tm *taskManager) ArchiveAll() (int, error) {
	moved := 0
	err := tm.mutate("archive-all", func(lines []string) ([]string, bool, error) {
		var out []string
		out, moved = ArchiveAll(lines)
		return out, moved > 0, nil
	})
	if err != nil {
		return 0, fmt.Errorf("archiving completed tasks: %w", err)
	}
	return moved, nil
}

// Format normalizes the document regardless of the auto-format setting and
// reports whether it changed. A missing document is left missing.
func (tm *taskManager) Format() (bool, error) {
	text, exists, err := tm.store.Load()
	if err != nil {
		return false, fmt.Errorf("formatting: loading %s: %w", tm.store.Path(), err)
	}
	if !exists {
		tm.logger.Debug("no document to format", "path", tm.store.Path())
		return false, nil
	}

	out, modified := tm.normalizer.Normalize(SplitLines(text))
	if !modified {
		return false, nil
	}
	if err := tm.store.Save(JoinLines(out)); err != nil {
		return false, fmt.Errorf("formatting: saving %s: %w", tm.store.Path(), err)
	}
	tm.logger.Debug("document saved", "op", "fmt", "path", tm.store.Path())
	return true, nil
}

// mutate runs one load, mutate, normalize, persist cycle. fn reports whether
// it changed the lines; a logical error from fn aborts before any write.
func (tm *taskManager) mutate(op string, fn func(lines []string) ([]string, bool, error)) error {
	text, exists, err := tm.store.Load()
	if err != nil {
		return fmt.Errorf("loading %s: %w", tm.store.Path(), err)
	}
	tm.logger.Debug("loaded document", "op", op, "path", tm.store.Path(), "exists", exists)

	out, changed, err := fn(SplitLines(text))
	if err != nil {
		return err
	}

	if tm.autoFormat && (exists || changed) {
		var normalized bool
		out, normalized = tm.normalizer.Normalize(out)
		changed = changed || normalized
	}
	if !changed {
		tm.logger.Debug("document unchanged", "op", op)
		return nil
	}

	if err := tm.store.Save(JoinLines(out)); err != nil {
		return fmt.Errorf("saving %s: %w", tm.store.Path(), err)
	}
	tm.logger.Debug("document saved", "op", op, "path", tm.store.Path(), "lines", len(out))
	return nil
}

// pendingNumberAt returns the pending-task number of the line at idx.
// created is true when idx refers to a freshly synthesized document.
func pendingNumberAt(lines []string, idx int, created bool) int {
	if created {
		return 1
	}
	n := 1
	for _, raw := range lines[:idx] {
		if ClassifyLine(raw).Kind == LinePending {
			n++
		}
	}
	return n
}

func taskFromLine(l Line, number int, state models.TaskState) models.Task {
	return models.Task{
		Number:   number,
		State:    state,
		Priority: l.Priority,
		Text:     l.Text,
	}
}
