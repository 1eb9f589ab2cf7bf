package models

// Priority represents the urgency level of a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Priority symbols as they appear in the task document, immediately after
// the checkbox marker.
const (
	SymbolHigh   = "🔴"
	SymbolMedium = "🟡"
	SymbolLow    = "🟢"
)

// Priorities lists every valid priority, highest first.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Symbol returns the document glyph bound to the priority. Unknown values
// map to the medium symbol.
func (p Priority) Symbol() string {
	switch p {
	case PriorityHigh:
		return SymbolHigh
	case PriorityLow:
		return SymbolLow
	default:
		return SymbolMedium
	}
}

// Glyph returns the symbol to display for the priority. An empty priority,
// as found on an unmarked line, has no glyph.
func (p Priority) Glyph() string {
	if p == "" {
		return ""
	}
	return p.Symbol()
}

// PriorityForSymbol returns the priority bound to a document glyph.
func PriorityForSymbol(symbol string) (Priority, bool) {
	switch symbol {
	case SymbolHigh:
		return PriorityHigh, true
	case SymbolMedium:
		return PriorityMedium, true
	case SymbolLow:
		return PriorityLow, true
	}
	return "", false
}

// TaskState represents where a checklist entry sits in its lifecycle.
type TaskState string

const (
	StatePending  TaskState = "pending"
	StateDone     TaskState = "done"
	StateArchived TaskState = "archived"
)

// Task is a read-only view of one checklist line in the task document.
//
// Number is the index a command would use to address the task: pending
// tasks are numbered among pending lines, done and archived tasks among
// completed lines.
type Task struct {
	Number   int       `json:"number" yaml:"number"`
	State    TaskState `json:"state" yaml:"state"`
	Priority Priority  `json:"priority,omitempty" yaml:"priority,omitempty"`
	Text     string    `json:"text" yaml:"text"`
}

// Label renders the task as it reads in the document: priority glyph and
// text, or the text alone when the line carries no priority marker.
func (t Task) Label() string {
	if g := t.Priority.Glyph(); g != "" {
		return g + " " + t.Text
	}
	return t.Text
}

// TaskList groups the tasks of a document by state, each in document order.
type TaskList struct {
	Pending  []Task `json:"pending" yaml:"pending"`
	Done     []Task `json:"done" yaml:"done"`
	Archived []Task `json:"archived" yaml:"archived"`
}

// Empty reports whether the list contains no tasks at all.
func (l *TaskList) Empty() bool {
	return len(l.Pending) == 0 && len(l.Done) == 0 && len(l.Archived) == 0
}
