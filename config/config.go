// Package config loads sysfacts configuration from TOML files and
// SYSFACTS_* environment variables using viper.
package config

import "time"

// Config represents the sysfacts configuration
type Config struct {
	Log      LogConfig      `mapstructure:"log" json:"log" yaml:"log" toml:"log"`
	Resolver ResolverConfig `mapstructure:"resolver" json:"resolver" yaml:"resolver" toml:"resolver"`
	Source   SourceConfig   `mapstructure:"source" json:"source" yaml:"source" toml:"source"`
	Gather   GatherConfig   `mapstructure:"gather" json:"gather" yaml:"gather" toml:"gather"`
	Output   OutputConfig   `mapstructure:"output" json:"output" yaml:"output" toml:"output"`
}

// LogConfig configures diagnostic logging (always stderr)
type LogConfig struct {
	JSON  bool   `mapstructure:"json" json:"json" yaml:"json" toml:"json"`
	Theme string `mapstructure:"theme" json:"theme" yaml:"theme" toml:"theme"` // everforest, gruvbox
}

// ResolverConfig configures domain resolvers
type ResolverConfig struct {
	AcquisitionTimeoutSeconds int `mapstructure:"acquisition_timeout_seconds" json:"acquisition_timeout_seconds" yaml:"acquisition_timeout_seconds" toml:"acquisition_timeout_seconds"`
}

// SourceConfig configures the raw OS data sources
type SourceConfig struct {
	CommandTimeoutSeconds int      `mapstructure:"command_timeout_seconds" json:"command_timeout_seconds" yaml:"command_timeout_seconds" toml:"command_timeout_seconds"`
	OSReleasePaths        []string `mapstructure:"os_release_paths" json:"os_release_paths" yaml:"os_release_paths" toml:"os_release_paths"`
	MeminfoPath           string   `mapstructure:"meminfo_path" json:"meminfo_path" yaml:"meminfo_path" toml:"meminfo_path"`
}

// GatherConfig configures fact evaluation
type GatherConfig struct {
	Workers int `mapstructure:"workers" json:"workers" yaml:"workers" toml:"workers"` // concurrent fact evaluations
}

// OutputConfig configures fact rendering
type OutputConfig struct {
	Format     string `mapstructure:"format" json:"format" yaml:"format" toml:"format"` // text, json, yaml, toml
	ShowLegacy bool   `mapstructure:"show_legacy" json:"show_legacy" yaml:"show_legacy" toml:"show_legacy"`
}

// Supported output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Formats lists every supported output format
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatTOML}

// AcquisitionTimeout returns the per-acquisition deadline
func (c *Config) AcquisitionTimeout() time.Duration {
	return time.Duration(c.Resolver.AcquisitionTimeoutSeconds) * time.Second
}

// CommandTimeout returns the per-command deadline
func (c *Config) CommandTimeout() time.Duration {
	return time.Duration(c.Source.CommandTimeoutSeconds) * time.Second
}
