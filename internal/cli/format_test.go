package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestFmtCommand(t *testing.T) {
	origTaskMgr := TaskMgr
	defer func() { TaskMgr = origTaskMgr }()

	tests := []struct {
		modified bool
		want     string
	}{
		{true, "Task file formatted.\n"},
		{false, "Task file already formatted.\n"},
	}

	for _, tt := range tests {
		TaskMgr = &taskMgrMock{
			formatFn: func() (bool, error) { return tt.modified, nil },
		}
		out := captureOutput(t, fmtCmd)

		if err := fmtCmd.RunE(fmtCmd, nil); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.String() != tt.want {
			t.Errorf("modified=%v: output = %q, want %q", tt.modified, out.String(), tt.want)
		}
	}
}

func TestFmtCommand_Errors(t *testing.T) {
	origTaskMgr := TaskMgr
	defer func() { TaskMgr = origTaskMgr }()

	TaskMgr = nil
	if err := fmtCmd.RunE(fmtCmd, nil); err == nil || !strings.Contains(err.Error(), "task manager not initialized") {
		t.Errorf("unexpected error: %v", err)
	}

	TaskMgr = &taskMgrMock{
		formatFn: func() (bool, error) { return false, errors.New("read-only file system") },
	}
	err := fmtCmd.RunE(fmtCmd, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if ExitCode(err) != ExitFailure {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitFailure)
	}
}
