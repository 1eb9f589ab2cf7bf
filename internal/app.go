// Package internal provides the App struct that wires all components of
// md-task together and initializes the CLI layer.
package internal

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/md-task/internal/cli"
	"github.com/valter-silva-au/md-task/internal/core"
	"github.com/valter-silva-au/md-task/internal/storage"
	"github.com/valter-silva-au/md-task/pkg/models"
)

// Environment variables read at startup.
const (
	EnvDevMode  = "MD_TASK_DEV"
	EnvLogLevel = "MD_TASK_LOG_LEVEL"
)

// App holds all service dependencies of one md-task invocation.
type App struct {
	Options core.ConfigOptions
	Config  *models.Config
	Logger  *log.Logger

	// Configuration
	ConfigMgr core.ConfigurationManager

	// Storage layer
	DocumentMgr storage.DocumentManager

	// Core services
	Normalizer *core.Normalizer
	TaskMgr    core.TaskManager
}

// NewApp creates and wires all components. Configuration problems are not
// fatal: they are logged and the affected settings fall back to defaults.
func NewApp(opts core.ConfigOptions, logger *log.Logger) (*App, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	app := &App{Options: opts, Logger: logger}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(opts, logger)
	cfg, err := app.ConfigMgr.LoadConfig()
	if err != nil {
		logger.Warn("could not load configuration, using defaults", "err", err)
		cfg = models.DefaultConfig()
	}
	if err := app.ConfigMgr.ValidateConfig(cfg); err != nil {
		logger.Warn("invalid configuration values replaced with defaults", "err", err)
		cfg = repairConfig(cfg)
	}
	app.Config = cfg

	// --- Storage layer ---
	taskFile := app.ConfigMgr.TaskFilePath(cfg)
	app.DocumentMgr = storage.NewDocumentManager(taskFile)
	logger.Debug("using task file", "path", taskFile)

	// --- Core services ---
	app.Normalizer = core.NewNormalizer(core.NormalizeOptions{
		AllowIncompleteInArchive: cfg.TaskManagement.AllowIncompleteInArchive,
	}, logger)
	app.TaskMgr = core.NewTaskManager(app.DocumentMgr, app.Normalizer, cfg.TaskManagement.AutoFormat, logger)

	// --- Wire CLI package-level variables ---
	cli.TaskMgr = app.TaskMgr
	cli.ConfigMgr = app.ConfigMgr
	cli.AppConfig = app.Config
	cli.Logger = logger

	return app, nil
}

// NewLogger creates the stderr logger used by every component.
func NewLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "md-task",
		ReportTimestamp: false,
	})
}

// ResolveLogLevel reads MD_TASK_LOG_LEVEL, defaulting to warn.
func ResolveLogLevel() log.Level {
	if raw := os.Getenv(EnvLogLevel); raw != "" {
		if level, err := log.ParseLevel(raw); err == nil {
			return level
		}
	}
	return log.WarnLevel
}

// ResolveConfigOptions captures the working directory and the environment
// variables that drive config discovery.
func ResolveConfigOptions() core.ConfigOptions {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	home, _ := os.UserHomeDir()
	return core.ConfigOptions{
		WorkDir:       wd,
		DevMode:       isTruthy(os.Getenv(EnvDevMode)),
		XDGConfigHome: os.Getenv("XDG_CONFIG_HOME"),
		HomeDir:       home,
		LookupEnv:     os.LookupEnv,
	}
}

// repairConfig replaces invalid values with their defaults.
func repairConfig(cfg *models.Config) *models.Config {
	def := models.DefaultConfig()
	fixed := *cfg
	if p, err := core.ParsePriority(string(cfg.TaskManagement.DefaultPriority)); err == nil {
		fixed.TaskManagement.DefaultPriority = p
	} else {
		fixed.TaskManagement.DefaultPriority = def.TaskManagement.DefaultPriority
	}
	if strings.TrimSpace(cfg.FilePaths.TaskFile) == "" {
		fixed.FilePaths.TaskFile = def.FilePaths.TaskFile
	}
	return &fixed
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "no", "off":
		return false
	}
	return true
}
