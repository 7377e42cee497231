// Package config provides hierarchical configuration management for autoconc using koanf.
// Configuration is loaded with priority: environment variables > project config
// (.autoconc/config.yml) > user config (~/.config/autoconc/config.yml) > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "AUTOCONC_"

// Configuration represents the autoconc CLI tool configuration
type Configuration struct {
	// RunnerCommand is the host test runner command line, split shell-style.
	// Can be set via AUTOCONC_RUNNER_COMMAND env var.
	RunnerCommand string `koanf:"runner_command" yaml:"runner_command" validate:"required"`

	// Concurrency is used as --concurrency when the command line has none.
	// Valid values: "" (disabled), "auto", or a positive integer.
	Concurrency string `koanf:"concurrency" yaml:"concurrency" validate:"omitempty,concurrency"`

	// TaskGrouping is used as --task-grouping when the command line has none.
	TaskGrouping string `koanf:"task_grouping" yaml:"task_grouping" validate:"omitempty,oneof=file package"`

	// Strategy forces an engine when the command line has no force flag.
	// Valid values: "auto" (CPU heuristic), "threading", "multiprocessing".
	Strategy string `koanf:"strategy" yaml:"strategy" validate:"omitempty,oneof=auto threading multiprocessing"`

	Quiet   bool `koanf:"quiet" yaml:"quiet"`       // Suppress [AUTO-CONCURRENCY] info lines
	NoColor bool `koanf:"no_color" yaml:"no_color"` // Disable colored output
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectConfigPath overrides the project config path (default: .autoconc/config.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file (used by tests)
	SkipUserConfig bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectConfigPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectConfigPath: projectConfigPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts.ProjectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if present.
func loadUserConfig(k *koanf.Koanf) error {
	userPath, _ := UserConfigPath()
	if !fileExists(userPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userPath, "user"); err != nil {
		return fmt.Errorf("loading user config: %w", err)
	}
	return nil
}

// loadProjectConfig loads the project-level YAML config if present.
// Supports custom path override; a custom path that does not exist is an error.
func loadProjectConfig(k *koanf.Koanf, customPath string) error {
	projectPath := ProjectConfigPath()
	if customPath != "" {
		if !fileExists(customPath) {
			return fmt.Errorf("config file %s does not exist", customPath)
		}
		projectPath = customPath
	}
	if !fileExists(projectPath) {
		return nil
	}
	if err := loadYAMLConfig(k, projectPath, "project"); err != nil {
		return fmt.Errorf("loading project config: %w", err)
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if os.Getenv("NO_COLOR") != "" {
		cfg.NoColor = true
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: AUTOCONC_RUNNER_COMMAND -> runner_command
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}
