package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/md-task/internal/core"
)

// Process exit codes.
const (
	ExitOK       = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 3
)

// usageError marks an error caused by invalid command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(format string, a ...any) error {
	return &usageError{err: fmt.Errorf(format, a...)}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	var ue *usageError
	switch {
	case errors.Is(err, core.ErrTaskNotFound), errors.Is(err, core.ErrCompletedTaskNotFound):
		return ExitNotFound
	case errors.Is(err, core.ErrInvalidPriority), errors.Is(err, core.ErrEmptyTaskText), errors.As(err, &ue):
		return ExitUsage
	}
	return ExitFailure
}

// usageArgs wraps a positional-argument validator so its failures map to
// ExitUsage.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}

// parseTaskNumber converts a 1-based task number argument.
func parseTaskNumber(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, newUsageError("invalid task number %q: must be a positive integer", arg)
	}
	return n, nil
}

// Subcommands inherit the flag error func from the root.
func init() {
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})
}
