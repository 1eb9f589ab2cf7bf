package core

import (
	"fmt"
	"slices"

	"github.com/valter-silva-au/md-task/pkg/models"
)

// The mutation engine works on the flat line sequence of the task document.
// Every operation returns a fresh slice and never modifies its input; on a
// logical failure the input is returned unchanged together with the error.

// AppendTask adds a pending task with the given priority to the end of the
// active region. An empty document becomes the task-list header, a blank
// line and the task.
func AppendTask(lines []string, text string, p models.Priority) []string {
	task := formatTask(PendingMarker, p, text)
	if len(lines) == 0 {
		return []string{TaskListHeader, "", task}
	}
	out := slices.Clone(lines)
	return slices.Insert(out, activeInsertIndex(out), task)
}

// MarkDone flips the n-th pending task (1-indexed, document order) to done,
// keeping its priority and text.
func MarkDone(lines []string, n int) ([]string, Line, error) {
	idx, ok := nthLine(lines, LinePending, n)
	if !ok {
		return lines, Line{}, fmt.Errorf("task number %d: %w", n, ErrTaskNotFound)
	}
	out := slices.Clone(lines)
	out[idx] = DoneMarker + ClassifyLine(out[idx]).Body
	return out, ClassifyLine(out[idx]), nil
}

// RemoveTask deletes the n-th pending task (1-indexed, document order).
func RemoveTask(lines []string, n int) ([]string, Line, error) {
	idx, ok := nthLine(lines, LinePending, n)
	if !ok {
		return lines, Line{}, fmt.Errorf("task number %d: %w", n, ErrTaskNotFound)
	}
	removed := ClassifyLine(lines[idx])
	out := slices.Delete(slices.Clone(lines), idx, idx+1)
	return out, removed, nil
}

// ArchiveTask moves the n-th completed task (1-indexed over every done line,
// archived ones included) to the top of the archive section, creating the
// section when the document has none.
func ArchiveTask(lines []string, n int) ([]string, Line, error) {
	idx, ok := nthLine(lines, LineDone, n)
	if !ok {
		return lines, Line{}, fmt.Errorf("completed task number %d: %w", n, ErrCompletedTaskNotFound)
	}
	task := lines[idx]
	out := slices.Delete(slices.Clone(lines), idx, idx+1)
	return insertArchived(out, []string{task}, false), ClassifyLine(task), nil
}

// ArchiveAll moves every done task of the active region into the archive
// section, after the entries already archived and in their original order.
// It returns the number of tasks moved; zero leaves the document untouched.
func ArchiveAll(lines []string) ([]string, int) {
	header := archiveIndex(lines)
	var moved, out []string
	for i, raw := range lines {
		if (header < 0 || i < header) && ClassifyLine(raw).Kind == LineDone {
			moved = append(moved, raw)
			continue
		}
		out = append(out, raw)
	}
	if len(moved) == 0 {
		return lines, 0
	}
	return insertArchived(out, moved, true), len(moved)
}

// nthLine returns the index of the n-th line of the given kind.
func nthLine(lines []string, kind LineKind, n int) (int, bool) {
	if n < 1 {
		return -1, false
	}
	count := 0
	for i, raw := range lines {
		if ClassifyLine(raw).Kind != kind {
			continue
		}
		count++
		if count == n {
			return i, true
		}
	}
	return -1, false
}

// archiveIndex returns the index of the first archive header, or -1.
func archiveIndex(lines []string) int {
	for i, raw := range lines {
		if ClassifyLine(raw).Kind == LineArchiveHeader {
			return i
		}
	}
	return -1
}

// activeInsertIndex returns where a task joins the end of the active region:
// right before the archive header (or the end of the document), except that a
// blank separator directly following a task line stays below the new task.
func activeInsertIndex(lines []string) int {
	pos := archiveIndex(lines)
	if pos < 0 {
		pos = len(lines)
	}
	if pos >= 2 && isBlank(lines[pos-1]) && ClassifyLine(lines[pos-2]).IsTask() {
		return pos - 1
	}
	return pos
}

// insertArchived places tasks in the archive section. With afterExisting
// false they become the first entries under the header; otherwise they
// follow the last task already archived.
func insertArchived(lines, tasks []string, afterExisting bool) []string {
	header := archiveIndex(lines)
	if header < 0 {
		if len(lines) > 0 && !isBlank(lines[len(lines)-1]) {
			lines = append(lines, "")
		}
		lines = append(lines, ArchiveHeader, "")
		return append(lines, tasks...)
	}

	pos := header + 1
	if pos < len(lines) && isBlank(lines[pos]) {
		pos++
	}
	if afterExisting {
		for i := pos; i < len(lines); i++ {
			if ClassifyLine(lines[i]).IsTask() {
				pos = i + 1
			}
		}
	}
	return slices.Insert(lines, pos, tasks...)
}
