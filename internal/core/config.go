// Package core contains the business logic for md-task: line
// classification, task mutations, document normalization, the task manager
// pipeline and configuration loading.
package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
	"github.com/valter-silva-au/md-task/pkg/models"
)

// Config file names.
const (
	LocalConfigName  = "md-task.toml"
	GlobalConfigName = "config.toml"
	DevConfigDir     = "dev-config"
	appDirName       = "md-task"
)

// projectMarkers identify the root of a project when walking up from the
// working directory.
var projectMarkers = []string{".git", "go.mod"}

// Config file scopes, from lowest to highest precedence.
const (
	ScopeGlobal  = "global"
	ScopeProject = "project"
	ScopeLocal   = "local"
)

// ConfigOptions carries the process environment the configuration manager
// depends on. The app reads it once so the manager never touches os.Getenv.
type ConfigOptions struct {
	WorkDir       string
	DevMode       bool
	XDGConfigHome string
	HomeDir       string

	// LookupEnv resolves $VAR references in task_file. Nil expands every
	// variable to the empty string.
	LookupEnv func(key string) (string, bool)
}

// ConfigSource is one candidate configuration file.
type ConfigSource struct {
	Scope  string `json:"scope" yaml:"scope"`
	Path   string `json:"path" yaml:"path"`
	Exists bool   `json:"exists" yaml:"exists"`
}

// ConfigurationManager defines the interface for locating, loading,
// writing and validating md-task configuration files.
type ConfigurationManager interface {
	LoadConfig() (*models.Config, error)
	SearchPaths() []ConfigSource
	ConfigDir() string
	DevMode() bool
	ProjectRoot() string
	InitLocal(cfg *models.Config) (string, error)
	InstallGlobal(cfg *models.Config) (path string, created bool, err error)
	ValidateConfig(cfg *models.Config) error
	TaskFilePath(cfg *models.Config) string
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading TOML configuration files.
type viperConfigManager struct {
	opts   ConfigOptions
	logger *log.Logger
}

// NewConfigurationManager creates a ConfigurationManager for the given
// environment. A nil logger discards output.
func NewConfigurationManager(opts ConfigOptions, logger *log.Logger) ConfigurationManager {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if opts.WorkDir == "" {
		opts.WorkDir = "."
	}
	return &viperConfigManager{opts: opts, logger: logger}
}

// LoadConfig merges defaults, the global file, the project file and the
// local file, field by field. Missing files are skipped.
func (cm *viperConfigManager) LoadConfig() (*models.Config, error) {
	def := models.DefaultConfig()

	v := viper.New()
	v.SetConfigType("toml")
	v.SetDefault("task_management.default_priority", string(def.TaskManagement.DefaultPriority))
	v.SetDefault("task_management.auto_format", def.TaskManagement.AutoFormat)
	v.SetDefault("task_management.allow_incomplete_in_archive", def.TaskManagement.AllowIncompleteInArchive)
	v.SetDefault("display.show_completed_by_default", def.Display.ShowCompletedByDefault)
	v.SetDefault("file_paths.task_file", def.FilePaths.TaskFile)

	sources := cm.SearchPaths()
	for i := len(sources) - 1; i >= 0; i-- {
		src := sources[i]
		if !src.Exists {
			continue
		}
		v.SetConfigFile(src.Path)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			return nil, fmt.Errorf("reading %s config %s: %w", src.Scope, src.Path, err)
		}
		cm.logger.Debug("merged config", "scope", src.Scope, "path", src.Path)
	}

	cfg := &models.Config{
		TaskManagement: models.TaskManagementConfig{
			DefaultPriority:          models.Priority(strings.ToLower(v.GetString("task_management.default_priority"))),
			AutoFormat:               v.GetBool("task_management.auto_format"),
			AllowIncompleteInArchive: v.GetBool("task_management.allow_incomplete_in_archive"),
		},
		Display: models.DisplayConfig{
			ShowCompletedByDefault: v.GetBool("display.show_completed_by_default"),
		},
		FilePaths: models.FilePathsConfig{
			TaskFile: v.GetString("file_paths.task_file"),
		},
	}
	return cfg, nil
}

// SearchPaths returns the candidate config files, highest precedence first.
// A project file that coincides with the local file is listed once.
func (cm *viperConfigManager) SearchPaths() []ConfigSource {
	local := filepath.Join(cm.opts.WorkDir, LocalConfigName)
	sources := []ConfigSource{{Scope: ScopeLocal, Path: local}}

	if root := cm.ProjectRoot(); root != "" {
		project := filepath.Join(root, LocalConfigName)
		if !samePath(project, local) {
			sources = append(sources, ConfigSource{Scope: ScopeProject, Path: project})
		}
	}
	sources = append(sources, ConfigSource{
		Scope: ScopeGlobal,
		Path:  filepath.Join(cm.ConfigDir(), GlobalConfigName),
	})

	for i := range sources {
		sources[i].Exists = fileExists(sources[i].Path)
	}
	return sources
}

// ConfigDir returns the directory holding the global config file.
func (cm *viperConfigManager) ConfigDir() string {
	switch {
	case cm.opts.DevMode:
		return filepath.Join(cm.opts.WorkDir, DevConfigDir)
	case cm.opts.XDGConfigHome != "":
		return filepath.Join(cm.opts.XDGConfigHome, appDirName)
	case cm.opts.HomeDir != "":
		return filepath.Join(cm.opts.HomeDir, ".config", appDirName)
	}
	return "."
}

// DevMode reports whether the config directory is the local dev-config.
func (cm *viperConfigManager) DevMode() bool {
	return cm.opts.DevMode
}

// ProjectRoot returns the nearest ancestor of the working directory that
// contains a project marker, or "" when there is none.
func (cm *viperConfigManager) ProjectRoot() string {
	dir, err := filepath.Abs(cm.opts.WorkDir)
	if err != nil {
		return ""
	}
	for {
		for _, marker := range projectMarkers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// InitLocal writes cfg to ./md-task.toml. It refuses to overwrite an
// existing file.
func (cm *viperConfigManager) InitLocal(cfg *models.Config) (string, error) {
	path := filepath.Join(cm.opts.WorkDir, LocalConfigName)
	if fileExists(path) {
		return path, fmt.Errorf("local config %s already exists", path)
	}
	if err := writeConfigFile(path, cfg); err != nil {
		return path, err
	}
	cm.logger.Info("created local config", "path", path)
	return path, nil
}

// InstallGlobal writes cfg to the global config file unless one already
// exists, in which case it reports created as false and leaves it alone.
func (cm *viperConfigManager) InstallGlobal(cfg *models.Config) (string, bool, error) {
	path := filepath.Join(cm.ConfigDir(), GlobalConfigName)
	if fileExists(path) {
		cm.logger.Debug("global config already installed", "path", path)
		return path, false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, false, fmt.Errorf("creating config directory: %w", err)
	}
	if err := writeConfigFile(path, cfg); err != nil {
		return path, false, err
	}
	cm.logger.Info("installed global config", "path", path)
	return path, true, nil
}

// ValidateConfig checks the configuration for invalid values and reports
// every problem at once.
func (cm *viperConfigManager) ValidateConfig(cfg *models.Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	var errs []string

	if _, err := ParsePriority(string(cfg.TaskManagement.DefaultPriority)); err != nil {
		errs = append(errs, fmt.Sprintf(
			"task_management.default_priority %q is invalid, must be one of: high, medium, low",
			cfg.TaskManagement.DefaultPriority,
		))
	}

	if strings.TrimSpace(cfg.FilePaths.TaskFile) == "" {
		errs = append(errs, "file_paths.task_file must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

// TaskFilePath resolves file_paths.task_file: ~ and $VAR are expanded and
// relative paths are taken from the working directory.
func (cm *viperConfigManager) TaskFilePath(cfg *models.Config) string {
	p := cfg.FilePaths.TaskFile
	if p == "" {
		p = models.DefaultTaskFile
	}
	p = expandPath(p, cm.opts.HomeDir, cm.opts.LookupEnv)
	if !filepath.IsAbs(p) {
		p = filepath.Join(cm.opts.WorkDir, p)
	}
	return filepath.Clean(p)
}

// EncodeConfig renders cfg as TOML.
func EncodeConfig(w io.Writer, cfg *models.Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return nil
}

func writeConfigFile(path string, cfg *models.Config) error {
	var b strings.Builder
	if err := EncodeConfig(&b, cfg); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// expandPath expands variables through lookup and a leading ~ in p.
func expandPath(p, home string, lookup func(string) (string, bool)) string {
	if p == "" {
		return p
	}
	expanded := os.Expand(p, func(key string) string {
		if lookup == nil {
			return ""
		}
		v, _ := lookup(key)
		return v
	})
	if home == "" {
		return expanded
	}
	if expanded == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(expanded, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return expanded
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}
