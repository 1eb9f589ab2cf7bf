package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/valter-silva-au/md-task/internal/core"
	"github.com/valter-silva-au/md-task/pkg/models"
	"gopkg.in/yaml.v3"
)

var configShowFormat string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage md-task configuration",
	Long: `Manage md-task configuration files.

Settings are merged field by field from, lowest precedence first: the
global config.toml in the config directory, md-task.toml at the project
root and md-task.toml in the current directory.`,
}

var configInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Write the default global configuration",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ConfigMgr == nil {
			return fmt.Errorf("configuration manager not initialized")
		}

		path, created, err := ConfigMgr.InstallGlobal(models.DefaultConfig())
		if err != nil {
			return fmt.Errorf("installing global config: %w", err)
		}
		if !created {
			fmt.Fprintf(cmd.OutOrStdout(), "Global config already exists: %s\n", path)
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Global config created: %s\n", path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create md-task.toml in the current directory",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ConfigMgr == nil {
			return fmt.Errorf("configuration manager not initialized")
		}

		path, err := ConfigMgr.InitLocal(models.DefaultConfig())
		if err != nil {
			return fmt.Errorf("initializing local config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Local config created: %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the active configuration",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		out := cmd.OutOrStdout()

		switch configShowFormat {
		case "", "toml":
			return core.EncodeConfig(out, cfg)
		case "yaml":
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			fmt.Fprint(out, string(data))
			return nil
		case "json":
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding config: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}
		return newUsageError("invalid format %q: use toml, yaml, or json", configShowFormat)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "List configuration search paths",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ConfigMgr == nil {
			return fmt.Errorf("configuration manager not initialized")
		}
		printSearchPaths(cmd, ConfigMgr.SearchPaths())
		return nil
	},
}

var configStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration sources and active values",
	Args:  usageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		if ConfigMgr == nil {
			return fmt.Errorf("configuration manager not initialized")
		}

		cfg := currentConfig()
		out := cmd.OutOrStdout()

		root := ConfigMgr.ProjectRoot()
		if root == "" {
			root = "(none)"
		}
		fmt.Fprintf(out, "Dev mode:     %t\n", ConfigMgr.DevMode())
		fmt.Fprintf(out, "Config dir:   %s\n", ConfigMgr.ConfigDir())
		fmt.Fprintf(out, "Project root: %s\n", root)
		fmt.Fprintf(out, "Task file:    %s\n", ConfigMgr.TaskFilePath(cfg))
		fmt.Fprintln(out)
		printSearchPaths(cmd, ConfigMgr.SearchPaths())
		fmt.Fprintln(out)
		fmt.Fprintf(out, "default_priority:            %s\n", cfg.TaskManagement.DefaultPriority)
		fmt.Fprintf(out, "auto_format:                 %t\n", cfg.TaskManagement.AutoFormat)
		fmt.Fprintf(out, "allow_incomplete_in_archive: %t\n", cfg.TaskManagement.AllowIncompleteInArchive)
		fmt.Fprintf(out, "show_completed_by_default:   %t\n", cfg.Display.ShowCompletedByDefault)
		return nil
	},
}

func printSearchPaths(cmd *cobra.Command, sources []core.ConfigSource) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Search paths (highest precedence first):")
	for _, src := range sources {
		state := "missing"
		if src.Exists {
			state = "found"
		}
		fmt.Fprintf(out, "  %-8s %s (%s)\n", src.Scope, src.Path, state)
	}
}

func init() {
	configShowCmd.Flags().StringVar(&configShowFormat, "format", "toml", "Output format: toml, yaml, or json")

	configCmd.AddCommand(configInstallCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configStatusCmd)
	rootCmd.AddCommand(configCmd)
}
