package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/valter-silva-au/md-task/internal/core"
	"github.com/valter-silva-au/md-task/pkg/models"
)

func TestAddCommand_NilTaskManager(t *testing.T) {
	origTaskMgr := TaskMgr
	defer func() { TaskMgr = origTaskMgr }()
	TaskMgr = nil

	err := addCmd.RunE(addCmd, []string{"buy milk"})
	if err == nil {
		t.Fatal("expected error when TaskMgr is nil")
	}
	if !strings.Contains(err.Error(), "task manager not initialized") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAddCommand_JoinsArgsAndUsesFlag(t *testing.T) {
	origTaskMgr := TaskMgr
	origPriority := addPriority
	defer func() {
		TaskMgr = origTaskMgr
		addPriority = origPriority
	}()
	addPriority = "HIGH"

	var gotText string
	var gotPriority models.Priority
	TaskMgr = &taskMgrMock{
		addTaskFn: func(text string, p models.Priority) (*models.Task, error) {
			gotText, gotPriority = text, p
			return &models.Task{Number: 1, State: models.StatePending, Priority: p, Text: text}, nil
		},
	}
	out := captureOutput(t, addCmd)

	if err := addCmd.RunE(addCmd, []string{"buy", "milk"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotText != "buy milk" || gotPriority != models.PriorityHigh {
		t.Errorf("AddTask(%q, %q), want (\"buy milk\", high)", gotText, gotPriority)
	}
	if got := out.String(); got != "Task added: buy milk (high priority)\n" {
		t.Errorf("output = %q", got)
	}
}

func TestAddCommand_DefaultPriorityFromConfig(t *testing.T) {
	origTaskMgr := TaskMgr
	origConfig := AppConfig
	origPriority := addPriority
	defer func() {
		TaskMgr = origTaskMgr
		AppConfig = origConfig
		addPriority = origPriority
	}()
	addPriority = ""
	AppConfig = models.DefaultConfig()
	AppConfig.TaskManagement.DefaultPriority = models.PriorityLow

	var gotPriority models.Priority
	TaskMgr = &taskMgrMock{
		addTaskFn: func(text string, p models.Priority) (*models.Task, error) {
			gotPriority = p
			return &models.Task{Number: 1, Priority: p, Text: text}, nil
		},
	}
	captureOutput(t, addCmd)

	if err := addCmd.RunE(addCmd, []string{"x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPriority != models.PriorityLow {
		t.Errorf("priority = %q, want low", gotPriority)
	}
}

func TestAddCommand_InvalidPriority(t *testing.T) {
	origTaskMgr := TaskMgr
	origPriority := addPriority
	defer func() {
		TaskMgr = origTaskMgr
		addPriority = origPriority
	}()
	addPriority = "urgent"

	called := false
	TaskMgr = &taskMgrMock{
		addTaskFn: func(string, models.Priority) (*models.Task, error) {
			called = true
			return nil, nil
		},
	}

	err := addCmd.RunE(addCmd, []string{"x"})
	if !errors.Is(err, core.ErrInvalidPriority) {
		t.Fatalf("error = %v, want ErrInvalidPriority", err)
	}
	if ExitCode(err) != ExitUsage {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitUsage)
	}
	if called {
		t.Error("AddTask must not be called with an invalid priority")
	}
}

func TestAddCommand_RequiresText(t *testing.T) {
	err := addCmd.Args(addCmd, nil)
	if err == nil {
		t.Fatal("expected error without arguments")
	}
	if ExitCode(err) != ExitUsage {
		t.Errorf("ExitCode = %d, want %d", ExitCode(err), ExitUsage)
	}
}
