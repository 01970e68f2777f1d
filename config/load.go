package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"github.com/teranos/sysfacts/errors"
)

// ProjectConfigName is the file searched for upward from the working directory
const ProjectConfigName = "sysfacts.toml"

// SourceKind names one layer of the configuration cascade
type SourceKind string

const (
	SourceSystem      SourceKind = "system"      // /etc/sysfacts/config.toml
	SourceUser        SourceKind = "user"        // ~/.sysfacts/config.toml
	SourceProject     SourceKind = "project"     // sysfacts.toml in cwd or a parent
	SourceEnvironment SourceKind = "environment" // SYSFACTS_* env vars
)

// SourceFile describes one file checked while loading configuration
type SourceFile struct {
	Kind   SourceKind `json:"kind" yaml:"kind" toml:"kind"`
	Path   string     `json:"path" yaml:"path" toml:"path"`
	Exists bool       `json:"exists" yaml:"exists" toml:"exists"`
	Loaded bool       `json:"loaded" yaml:"loaded" toml:"loaded"`
	Error  string     `json:"error,omitempty" yaml:"error,omitempty" toml:"error,omitempty"`
}

var (
	mu            sync.Mutex
	globalConfig  *Config
	viperInstance *viper.Viper
	loadedSources []SourceFile
)

// Load reads the sysfacts configuration using Viper. The result is cached
// for the process; call Reset to force a reload.
func Load() (*Config, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalConfig != nil {
		return globalConfig, nil
	}

	config, err := LoadWithViper(initViper())
	if err != nil {
		return nil, err
	}

	globalConfig = config
	return globalConfig, nil
}

// GetViper returns the Viper instance for flag binding and key lookups
func GetViper() *viper.Viper {
	mu.Lock()
	defer mu.Unlock()
	return initViper()
}

// LoadWithViper loads configuration using a provided Viper instance
func LoadWithViper(v *viper.Viper) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &config, nil
}

// LoadFromFile loads configuration from a specific file path on top of the
// defaults, ignoring the cascade and environment.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	config, err := LoadWithViper(v)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load config from %s", configPath)
	}
	return config, nil
}

// Sources returns every file checked by the cascade in precedence order
// (lowest first). Environment overrides are listed last when present.
func Sources() []SourceFile {
	mu.Lock()
	defer mu.Unlock()
	initViper()

	out := make([]SourceFile, len(loadedSources))
	copy(out, loadedSources)
	return out
}

// Reset clears the cached configuration (useful for testing)
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	globalConfig = nil
	viperInstance = nil
	loadedSources = nil
}

// initViper initializes Viper with configuration sources and defaults.
// Callers hold mu.
func initViper() *viper.Viper {
	if viperInstance != nil {
		return viperInstance
	}

	v := viper.New()

	v.SetEnvPrefix("SYSFACTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	loadedSources = mergeConfigFiles(v, cascadePaths())
	if env := environmentOverrides(); len(env) > 0 {
		loadedSources = append(loadedSources, SourceFile{
			Kind:   SourceEnvironment,
			Path:   strings.Join(env, ","),
			Exists: true,
			Loaded: true,
		})
	}

	viperInstance = v
	return v
}

type cascadeEntry struct {
	kind SourceKind
	path string
}

// cascadePaths lists config files in precedence order: system < user < project
func cascadePaths() []cascadeEntry {
	entries := []cascadeEntry{{SourceSystem, "/etc/sysfacts/config.toml"}}

	if homeDir, err := os.UserHomeDir(); err == nil {
		entries = append(entries, cascadeEntry{SourceUser, filepath.Join(homeDir, ".sysfacts", "config.toml")})
	}

	if wd, err := os.Getwd(); err == nil {
		if project := findProjectConfig(wd); project != "" {
			entries = append(entries, cascadeEntry{SourceProject, project})
		}
	}
	return entries
}

// findProjectConfig searches for sysfacts.toml by walking up the directory
// tree from dir. Returns an empty string if none is found.
func findProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, ProjectConfigName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// mergeConfigFiles merges each existing file into v in order, so later
// files override earlier ones. Unreadable files are recorded, not fatal.
func mergeConfigFiles(v *viper.Viper, entries []cascadeEntry) []SourceFile {
	sources := make([]SourceFile, 0, len(entries))

	for _, entry := range entries {
		src := SourceFile{Kind: entry.kind, Path: entry.path}
		if _, err := os.Stat(entry.path); err != nil {
			sources = append(sources, src)
			continue
		}
		src.Exists = true

		tempViper := viper.New()
		tempViper.SetConfigFile(entry.path)
		tempViper.SetConfigType("toml")
		if err := tempViper.ReadInConfig(); err != nil {
			src.Error = err.Error()
			sources = append(sources, src)
			continue
		}

		if err := v.MergeConfigMap(tempViper.AllSettings()); err != nil {
			src.Error = err.Error()
			sources = append(sources, src)
			continue
		}
		src.Loaded = true
		sources = append(sources, src)
	}

	return sources
}

// environmentOverrides returns the SYSFACTS_* variables that are set
func environmentOverrides() []string {
	var names []string
	for _, kv := range os.Environ() {
		if strings.HasPrefix(kv, "SYSFACTS_") {
			name, _, _ := strings.Cut(kv, "=")
			names = append(names, name)
		}
	}
	return names
}
