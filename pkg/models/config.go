package models

// Config holds the md-task settings merged from the global, project and
// local md-task.toml files.
type Config struct {
	TaskManagement TaskManagementConfig `toml:"task_management" yaml:"task_management" json:"task_management" mapstructure:"task_management"`
	Display        DisplayConfig        `toml:"display" yaml:"display" json:"display" mapstructure:"display"`
	FilePaths      FilePathsConfig      `toml:"file_paths" yaml:"file_paths" json:"file_paths" mapstructure:"file_paths"`
}

// TaskManagementConfig controls how the task document is mutated and
// normalized.
type TaskManagementConfig struct {
	DefaultPriority          Priority `toml:"default_priority" yaml:"default_priority" json:"default_priority" mapstructure:"default_priority"`
	AutoFormat               bool     `toml:"auto_format" yaml:"auto_format" json:"auto_format" mapstructure:"auto_format"`
	AllowIncompleteInArchive bool     `toml:"allow_incomplete_in_archive" yaml:"allow_incomplete_in_archive" json:"allow_incomplete_in_archive" mapstructure:"allow_incomplete_in_archive"`
}

// DisplayConfig holds defaults for the list command.
type DisplayConfig struct {
	ShowCompletedByDefault bool `toml:"show_completed_by_default" yaml:"show_completed_by_default" json:"show_completed_by_default" mapstructure:"show_completed_by_default"`
}

// FilePathsConfig locates the task document.
type FilePathsConfig struct {
	TaskFile string `toml:"task_file" yaml:"task_file" json:"task_file" mapstructure:"task_file"`
}

// DefaultTaskFile is the document path used when no config overrides it.
const DefaultTaskFile = "tasks.md"

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		TaskManagement: TaskManagementConfig{
			DefaultPriority:          PriorityMedium,
			AutoFormat:               true,
			AllowIncompleteInArchive: false,
		},
		Display: DisplayConfig{
			ShowCompletedByDefault: false,
		},
		FilePaths: FilePathsConfig{
			TaskFile: DefaultTaskFile,
		},
	}
}
