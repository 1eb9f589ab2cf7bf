package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/md-task/internal/core"
	"github.com/valter-silva-au/md-task/pkg/models"
)

// taskMgrMock implements core.TaskManager with configurable functions.
type taskMgrMock struct {
	addTaskFn      func(string, models.Priority) (*models.Task, error)
	listTasksFn    func() (*models.TaskList, error)
	completeTaskFn func(int) (*models.Task, error)
	removeTaskFn   func(int) (*models.Task, error)
	archiveTaskFn  func(int) (*models.Task, error)
	archiveAllFn   func() (int, error)
	formatFn       func() (bool, error)
}

func (m *taskMgrMock) AddTask(text string, p models.Priority) (*models.Task, error) {
	if m.addTaskFn != nil {
		return m.addTaskFn(text, p)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *taskMgrMock) ListTasks() (*models.TaskList, error) {
	if m.listTasksFn != nil {
		return m.listTasksFn()
	}
	return &models.TaskList{}, nil
}

func (m *taskMgrMock) CompleteTask(n int) (*models.Task, error) {
	if m.completeTaskFn != nil {
		return m.completeTaskFn(n)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *taskMgrMock) RemoveTask(n int) (*models.Task, error) {
	if m.removeTaskFn != nil {
		return m.removeTaskFn(n)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *taskMgrMock) ArchiveTask(n int) (*models.Task, error) {
	if m.archiveTaskFn != nil {
		return m.archiveTaskFn(n)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *taskMgrMock) ArchiveAll() (int, error) {
	if m.archiveAllFn != nil {
		return m.archiveAllFn()
	}
	return 0, fmt.Errorf("not implemented")
}

func (m *taskMgrMock) Format() (bool, error) {
	if m.formatFn != nil {
		return m.formatFn()
	}
	return false, fmt.Errorf("not implemented")
}

// configMgrMock implements core.ConfigurationManager with fixed answers.
type configMgrMock struct {
	sources     []core.ConfigSource
	configDir   string
	devMode     bool
	projectRoot string
	taskFile    string

	initLocalFn     func(*models.Config) (string, error)
	installGlobalFn func(*models.Config) (string, bool, error)
}

func (m *configMgrMock) LoadConfig() (*models.Config, error) { return models.DefaultConfig(), nil }
func (m *configMgrMock) SearchPaths() []core.ConfigSource   { return m.sources }
func (m *configMgrMock) ConfigDir() string                  { return m.configDir }
func (m *configMgrMock) DevMode() bool                      { return m.devMode }
func (m *configMgrMock) ProjectRoot() string                { return m.projectRoot }
func (m *configMgrMock) ValidateConfig(*models.Config) error {
	return nil
}
func (m *configMgrMock) TaskFilePath(*models.Config) string { return m.taskFile }

func (m *configMgrMock) InitLocal(cfg *models.Config) (string, error) {
	if m.initLocalFn != nil {
		return m.initLocalFn(cfg)
	}
	return "", fmt.Errorf("not implemented")
}

func (m *configMgrMock) InstallGlobal(cfg *models.Config) (string, bool, error) {
	if m.installGlobalFn != nil {
		return m.installGlobalFn(cfg)
	}
	return "", false, fmt.Errorf("not implemented")
}

// captureOutput points cmd's output at a buffer for the rest of the test.
func captureOutput(t *testing.T, cmd *cobra.Command) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	t.Cleanup(func() { cmd.SetOut(nil) })
	return &buf
}

// samplePending returns two pending tasks numbered 1 and 2.
func samplePending() []models.Task {
	return []models.Task{
		{Number: 1, State: models.StatePending, Priority: models.PriorityHigh, Text: "buy milk"},
		{Number: 2, State: models.StatePending, Priority: models.PriorityLow, Text: "read book"},
	}
}
