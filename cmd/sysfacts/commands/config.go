package commands

import (
	"encoding/json"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/sysfacts/config"
)

// ConfigCmd inspects sysfacts configuration
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect sysfacts configuration",
	Long: `Display and validate sysfacts configuration.

Configuration sources (later overrides earlier):
1. Default values
2. System config (/etc/sysfacts/config.toml)
3. User config (~/.sysfacts/config.toml)
4. Project config (./sysfacts.toml, searched upwards)
5. Environment variables (SYSFACTS_* prefix)
6. Command line flags

Examples:
  sysfacts config show                  # Effective configuration as TOML
  sysfacts config show --format json    # ... as JSON
  sysfacts config validate              # Check the effective configuration
  sysfacts config where                 # Files checked and loaded`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the effective configuration",
	RunE:  runConfigValidate,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show where configuration is loaded from",
	RunE:  runConfigWhere,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configValidateCmd)
	ConfigCmd.AddCommand(configWhereCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return writeConfig(cmd, cfg, configFormat)
}

func writeConfig(cmd *cobra.Command, cfg *config.Config, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to YAML: %w", err)
		}
		fmt.Fprintf(out, "# sysfacts configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config to TOML: %w", err)
		}
		fmt.Fprintf(out, "# sysfacts configuration\n%s", string(data))

	default:
		return fmt.Errorf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Configuration cascade (later overrides earlier):")
	fmt.Fprintln(out, "  1. [DEFAULT]  Built-in defaults")
	fmt.Fprintln(out, "  2. [SYSTEM]   /etc/sysfacts/config.toml")
	fmt.Fprintln(out, "  3. [USER]     ~/.sysfacts/config.toml")
	fmt.Fprintln(out, "  4. [PROJECT]  ./sysfacts.toml (searches up directories)")
	fmt.Fprintln(out, "  5. [ENV]      SYSFACTS_* environment variables")
	fmt.Fprintln(out)

	for _, src := range config.Sources() {
		var status string
		switch {
		case src.Loaded:
			status = pterm.Green("loaded")
		case src.Error != "":
			status = pterm.Red("error: " + src.Error)
		case src.Exists:
			status = pterm.Yellow("found")
		default:
			status = pterm.Gray("missing")
		}
		fmt.Fprintf(out, "  %-12s %s %s\n", "["+string(src.Kind)+"]", src.Path, status)
	}
	return nil
}
