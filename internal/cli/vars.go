package cli

import (
	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/md-task/internal/core"
	"github.com/valter-silva-au/md-task/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	TaskMgr   core.TaskManager
	ConfigMgr core.ConfigurationManager
	AppConfig *models.Config
	Logger    *log.Logger
)

// currentConfig returns the active configuration, falling back to defaults
// when the app did not provide one.
func currentConfig() *models.Config {
	if AppConfig == nil {
		return models.DefaultConfig()
	}
	return AppConfig
}
