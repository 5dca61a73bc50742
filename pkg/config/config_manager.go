package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted by GetSummaryDefaults.
const (
	EnvTargetSize      = "TREEPEEK_TARGET_SIZE"
	EnvItemCap         = "TREEPEEK_ITEM_CAP"
	EnvMaxDepth        = "TREEPEEK_MAX_DEPTH"
	EnvStringThreshold = "TREEPEEK_STRING_THRESHOLD"
	EnvPretty          = "TREEPEEK_PRETTY"
	EnvModel           = "TREEPEEK_MODEL"
)

// DefaultConfigPath is where the config file is looked up when none is given.
const DefaultConfigPath = "~/.treepeek/config.yaml"

// SummaryDefaults represents the default summarization settings
type SummaryDefaults struct {
	TargetSize      int    `yaml:"target_size"`
	ItemCap         int    `yaml:"item_cap"`
	MaxDepth        int    `yaml:"max_depth"`
	StringThreshold int    `yaml:"string_threshold"`
	Pretty          bool   `yaml:"pretty"`
	Model           string `yaml:"model"`
}

// BuiltinDefaults returns the settings used when neither the environment nor
// a config file provide a value.
func BuiltinDefaults() SummaryDefaults {
	return SummaryDefaults{
		TargetSize:      2000,
		ItemCap:         10,
		MaxDepth:        64,
		StringThreshold: 120,
		Model:           "gpt-4o",
	}
}

// Manager provides configuration management functionality
type Manager interface {
	GetString(key string) (string, error)
	GetStringWithDefault(key, defaultValue string) string
	GetInt(key string) (int, error)
	GetIntWithDefault(key string, defaultValue int) int
	GetBoolWithDefault(key string, defaultValue bool) bool
	GetSummaryDefaults() SummaryDefaults
}

// DefaultManager reads the environment first and falls back to the values
// of an optional config file.
type DefaultManager struct {
	file SummaryDefaults
}

// NewConfigManager creates a config manager backed by the environment only
func NewConfigManager() Manager {
	return &DefaultManager{file: BuiltinDefaults()}
}

// NewConfigManagerFromFile creates a config manager whose fallbacks come from
// the YAML file at path. A leading ~ is expanded. A missing file is not an
// error when path is the default location.
func NewConfigManagerFromFile(path string) (Manager, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("failed to expand config path %s: %w", path, err)
	}

	defaults := BuiltinDefaults()
	data, err := os.ReadFile(expanded)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		return &DefaultManager{file: defaults}, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", expanded, err)
	}

	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", expanded, err)
	}
	return &DefaultManager{file: defaults}, nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given .env files (".env" when
// none are given) without overriding variables that are already set.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// GetString gets a configuration value by key, returns error if not found
func (m *DefaultManager) GetString(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("configuration key %s not found", key)
	}
	return value, nil
}

// GetStringWithDefault gets a configuration value by key, returns default if not found
func (m *DefaultManager) GetStringWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetInt gets an integer configuration value by key, returns error if not found or invalid
func (m *DefaultManager) GetInt(key string) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return 0, fmt.Errorf("configuration key %s not found", key)
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("configuration key %s has invalid integer value: %s", key, value)
	}
	return intValue, nil
}

// GetIntWithDefault gets an integer configuration value by key, returns default if not found or invalid
func (m *DefaultManager) GetIntWithDefault(key string, defaultValue int) int {
	intValue, err := m.GetInt(key)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// GetBoolWithDefault gets a boolean configuration value by key, returns default if not found or invalid
func (m *DefaultManager) GetBoolWithDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// GetSummaryDefaults resolves the summarization settings: environment first,
// then the config file, then the built-in defaults. Non-positive numbers are
// ignored at every level.
func (m *DefaultManager) GetSummaryDefaults() SummaryDefaults {
	builtin := BuiltinDefaults()
	return SummaryDefaults{
		TargetSize:      m.positiveInt(EnvTargetSize, m.file.TargetSize, builtin.TargetSize),
		ItemCap:         m.positiveInt(EnvItemCap, m.file.ItemCap, builtin.ItemCap),
		MaxDepth:        m.positiveInt(EnvMaxDepth, m.file.MaxDepth, builtin.MaxDepth),
		StringThreshold: m.positiveInt(EnvStringThreshold, m.file.StringThreshold, builtin.StringThreshold),
		Pretty:          m.GetBoolWithDefault(EnvPretty, m.file.Pretty),
		Model:           m.GetStringWithDefault(EnvModel, firstNonEmpty(m.file.Model, builtin.Model)),
	}
}

func (m *DefaultManager) positiveInt(key string, fileValue, builtin int) int {
	fallback := builtin
	if fileValue > 0 {
		fallback = fileValue
	}
	if v := m.GetIntWithDefault(key, fallback); v > 0 {
		return v
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
