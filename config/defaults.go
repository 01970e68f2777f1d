package config

import (
	"github.com/spf13/viper"
)

// Default values shared with tests and documentation
const (
	DefaultAcquisitionTimeoutSeconds = 10
	DefaultCommandTimeoutSeconds     = 5
	DefaultGatherWorkers             = 4
	DefaultMeminfoPath               = "/proc/meminfo"
)

// DefaultOSReleasePaths are checked in order; the first readable one wins
var DefaultOSReleasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.json", false)
	v.SetDefault("log.theme", "everforest")

	v.SetDefault("resolver.acquisition_timeout_seconds", DefaultAcquisitionTimeoutSeconds)

	v.SetDefault("source.command_timeout_seconds", DefaultCommandTimeoutSeconds)
	v.SetDefault("source.os_release_paths", DefaultOSReleasePaths)
	v.SetDefault("source.meminfo_path", DefaultMeminfoPath)

	v.SetDefault("gather.workers", DefaultGatherWorkers)

	v.SetDefault("output.format", FormatText)
	v.SetDefault("output.show_legacy", false)
}
