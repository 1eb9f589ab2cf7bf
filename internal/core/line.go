package core

import (
	"strings"

	"github.com/valter-silva-au/md-task/pkg/models"
)

// Section headers and checkbox markers of the task document.
const (
	TaskListHeader = "## タスク一覧"
	ArchiveHeader  = "## アーカイブ"

	// Checkbox markers include their trailing separator space.
	PendingMarker = "- [ ] "
	DoneMarker    = "- [x] "
)

// LineKind identifies the shape of a single document line.
type LineKind int

const (
	LineOther LineKind = iota
	LineTaskListHeader
	LineArchiveHeader
	LinePending
	LineDone
)

// Line is the classified form of a raw document line. For checklist lines,
// Body holds everything after the checkbox marker, and Priority and Text
// split Body into its optional leading symbol and the free text.
type Line struct {
	Kind     LineKind
	Raw      string
	Body     string
	Priority models.Priority
	Text     string
}

// ClassifyLine determines the kind of a raw line. It never fails: anything
// that is not a header or a checklist line is LineOther.
func ClassifyLine(raw string) Line {
	s := strings.TrimSuffix(raw, "\r")
	switch {
	case s == TaskListHeader:
		return Line{Kind: LineTaskListHeader, Raw: raw}
	case s == ArchiveHeader:
		return Line{Kind: LineArchiveHeader, Raw: raw}
	case strings.HasPrefix(s, PendingMarker):
		return checklistLine(LinePending, raw, strings.TrimPrefix(s, PendingMarker))
	case strings.HasPrefix(s, DoneMarker):
		return checklistLine(LineDone, raw, strings.TrimPrefix(s, DoneMarker))
	}
	return Line{Kind: LineOther, Raw: raw}
}

func checklistLine(kind LineKind, raw, body string) Line {
	l := Line{Kind: kind, Raw: raw, Body: body, Text: body}
	for _, p := range models.Priorities {
		if rest, ok := strings.CutPrefix(body, p.Symbol()); ok {
			l.Priority = p
			l.Text = strings.TrimPrefix(rest, " ")
			break
		}
	}
	return l
}

// IsTask reports whether the line is a pending or done checklist entry.
func (l Line) IsTask() bool {
	return l.Kind == LinePending || l.Kind == LineDone
}

// Marker returns the checkbox marker of a checklist line, or "" otherwise.
func (l Line) Marker() string {
	switch l.Kind {
	case LinePending:
		return PendingMarker
	case LineDone:
		return DoneMarker
	}
	return ""
}

// isBlank reports whether a line contains only whitespace.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// formatTask renders a checklist line in canonical form.
func formatTask(marker string, p models.Priority, text string) string {
	return marker + p.Symbol() + " " + text
}

// SplitLines splits document text into lines. A trailing newline yields a
// final empty line so that JoinLines restores the text exactly; empty text
// has no lines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// JoinLines flattens lines back into document text.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
