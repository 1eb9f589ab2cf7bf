package core

import "errors"

// Logical failures reported by the mutation engine and the input boundary.
// Callers match them with errors.Is.
var (
	// ErrTaskNotFound is returned when a pending-task number is out of range.
	ErrTaskNotFound = errors.New("task not found")

	// ErrCompletedTaskNotFound is returned when a completed-task number is
	// out of range.
	ErrCompletedTaskNotFound = errors.New("completed task not found")

	// ErrInvalidPriority is returned for priority names other than high,
	// medium or low.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrEmptyTaskText is returned when a task would be added without text.
	ErrEmptyTaskText = errors.New("task text must not be empty")
)
