// Package config loads gitbind settings from a YAML file with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPoolSize is the number of git processes allowed to run at once.
const DefaultPoolSize = 4

// Environment variables consulted by Load.
const (
	EnvConfigPath = "GITBIND_CONFIG"
	EnvGitPath    = "GITBIND_GIT_PATH"
	EnvLogFile    = "GITBIND_LOG_FILE"
)

// Keys settable through Set, in display order.
const (
	KeyGitPath  = "git_path"
	KeyLogFile  = "log_file"
	KeyPoolSize = "pool_size"
	KeyEnv      = "env"
)

var (
	// ErrInvalidConfig is returned when a loaded config fails validation.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrUnknownKey is returned by Get and Set for keys not in Keys.
	ErrUnknownKey = errors.New("unknown configuration key")
)

// Keys lists the configuration keys.
var Keys = []string{KeyGitPath, KeyLogFile, KeyPoolSize, KeyEnv}

// Config holds user settings.
type Config struct {
	GitPath  string   `yaml:"git_path"`
	LogFile  string   `yaml:"log_file,omitempty"`
	PoolSize int      `yaml:"pool_size"`
	Env      []string `yaml:"env,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		GitPath:  "git",
		PoolSize: DefaultPoolSize,
	}
}

// Path returns $GITBIND_CONFIG, or ~/.gitbind/config.yaml.
func Path() string {
	if custom := os.Getenv(EnvConfigPath); custom != "" {
		return custom
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".gitbind", "config.yaml")
}

// Load reads the config at Path and applies environment overrides.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads the config at path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReadFile reads the config at path without applying environment overrides
// or validating it, as needed before editing and saving the file.
func ReadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return cfg, nil
}

// EnvOverride returns the environment variable overriding key, if any is set.
func EnvOverride(key string) (string, bool) {
	var name string
	switch key {
	case KeyGitPath:
		name = EnvGitPath
	case KeyLogFile:
		name = EnvLogFile
	default:
		return "", false
	}
	if os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}

// Get returns the value of key formatted for display. Env entries are joined
// with spaces.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case KeyGitPath:
		return c.GitPath, nil
	case KeyLogFile:
		return c.LogFile, nil
	case KeyPoolSize:
		return strconv.Itoa(c.PoolSize), nil
	case KeyEnv:
		return strings.Join(c.Env, " "), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set parses value into key and validates the result. Env takes
// whitespace-separated KEY=VALUE entries; an empty value clears it.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyGitPath:
		c.GitPath = value
	case KeyLogFile:
		c.LogFile = value
	case KeyPoolSize:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: pool_size must be a number, got %q", ErrInvalidConfig, value)
		}
		c.PoolSize = n
	case KeyEnv:
		c.Env = strings.Fields(value)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return c.Validate()
}

func (c *Config) applyEnv() {
	if gitPath := os.Getenv(EnvGitPath); gitPath != "" {
		c.GitPath = gitPath
	}
	if logFile := os.Getenv(EnvLogFile); logFile != "" {
		c.LogFile = logFile
	}
	c.LogFile = ExpandPath(c.LogFile)
}

// Validate checks the settings for values the executor cannot use.
func (c *Config) Validate() error {
	if c.GitPath == "" {
		return fmt.Errorf("%w: git_path must not be empty", ErrInvalidConfig)
	}
	if c.PoolSize < 1 {
		return fmt.Errorf("%w: pool_size must be positive, got %d", ErrInvalidConfig, c.PoolSize)
	}
	for _, entry := range c.Env {
		if k, _, ok := strings.Cut(entry, "="); !ok || k == "" {
			return fmt.Errorf("%w: env entry %q is not KEY=VALUE", ErrInvalidConfig, entry)
		}
	}
	return nil
}

// SaveTo writes the config to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Save writes the config to Path.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// ExpandPath expands a leading ~ to the home directory.
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
