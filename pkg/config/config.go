package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is looked up relative to the working directory.
	DefaultConfigFile = "centroid.yml"

	// EnvConfigFile overrides the config file location.
	EnvConfigFile = "CENTROID_CONFIG"

	envPrefix = "CENTROID_"
)

var validLogLevels = []string{"debug", "info", "warn", "error"}
var validLogFormats = []string{"auto", "console", "json"}

// Config holds all centroid settings.
type Config struct {
	// BindAddress is the interface the server listens on.
	BindAddress string `yaml:"bind_address" json:"bind_address"`

	// Port is the server port.
	Port int `yaml:"port" json:"port"`

	// DatabaseURL selects the run store backend. A postgres:// URL uses
	// Postgres; anything else is treated as a SQLite file path.
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// DatasetsDir is an optional directory of extra CSV datasets.
	DatasetsDir string `yaml:"datasets_dir" json:"datasets_dir"`

	// WatchDatasets reloads DatasetsDir on file changes.
	WatchDatasets bool `yaml:"watch_datasets" json:"watch_datasets"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// LogFormat is one of auto, console, json.
	LogFormat string `yaml:"log_format" json:"log_format"`

	// PageSize is the default record page size for the table and API.
	PageSize int `yaml:"page_size" json:"page_size"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file, if one was read
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func newDefault() *Config {
	return &Config{
		BindAddress: "127.0.0.1",
		Port:        8050,
		DatabaseURL: "centroid.db",
		LogLevel:    "info",
		LogFormat:   "auto",
		PageSize:    10,
		sources:     make(map[string]string),
	}
}

func attributeNames() []string {
	return []string{
		"bind_address", "port", "database_url", "datasets_dir",
		"watch_datasets", "log_level", "log_format", "page_size",
	}
}

// Load builds the configuration from defaults, an optional YAML file and
// CENTROID_* environment variables, in that order. An explicit path (the
// argument, or CENTROID_CONFIG) must exist; the default centroid.yml is
// optional.
func Load(paths ...string) (*Config, error) {
	config := newDefault()
	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	path, required := configFilePath(paths)
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			var fileConfig Config
			if err := yaml.Unmarshal(data, &fileConfig); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
			config.configFilePath = path
			config.applyFileConfig(&fileConfig)
		case required:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := config.applyEnvConfig(); err != nil {
		return nil, err
	}

	return config, nil
}

func configFilePath(paths []string) (path string, required bool) {
	for _, p := range paths {
		if p != "" {
			return p, true
		}
	}
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p, true
	}
	return DefaultConfigFile, false
}

func (c *Config) applyFileConfig(file *Config) {
	source := "file:" + c.configFilePath
	if file.BindAddress != "" {
		c.BindAddress = file.BindAddress
		c.sources["bind_address"] = source
	}
	if file.Port != 0 {
		c.Port = file.Port
		c.sources["port"] = source
	}
	if file.DatabaseURL != "" {
		c.DatabaseURL = file.DatabaseURL
		c.sources["database_url"] = source
	}
	if file.DatasetsDir != "" {
		c.DatasetsDir = file.DatasetsDir
		c.sources["datasets_dir"] = source
	}
	if file.WatchDatasets {
		c.WatchDatasets = true
		c.sources["watch_datasets"] = source
	}
	if file.LogLevel != "" {
		c.LogLevel = file.LogLevel
		c.sources["log_level"] = source
	}
	if file.LogFormat != "" {
		c.LogFormat = file.LogFormat
		c.sources["log_format"] = source
	}
	if file.PageSize != 0 {
		c.PageSize = file.PageSize
		c.sources["page_size"] = source
	}
}

func (c *Config) applyEnvConfig() error {
	if val := os.Getenv(envPrefix + "BIND_ADDRESS"); val != "" {
		c.BindAddress = val
		c.sources["bind_address"] = "env:" + envPrefix + "BIND_ADDRESS"
	}
	if val := os.Getenv(envPrefix + "PORT"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("CENTROID_PORT must be an integer, got %q", val)
		}
		c.Port = i
		c.sources["port"] = "env:" + envPrefix + "PORT"
	}
	if val := os.Getenv(envPrefix + "DATABASE_URL"); val != "" {
		c.DatabaseURL = val
		c.sources["database_url"] = "env:" + envPrefix + "DATABASE_URL"
	}
	if val := os.Getenv(envPrefix + "DATASETS_DIR"); val != "" {
		c.DatasetsDir = val
		c.sources["datasets_dir"] = "env:" + envPrefix + "DATASETS_DIR"
	}
	if val := os.Getenv(envPrefix + "WATCH_DATASETS"); val != "" {
		c.WatchDatasets = val == "true" || val == "1"
		c.sources["watch_datasets"] = "env:" + envPrefix + "WATCH_DATASETS"
	}
	if val := os.Getenv(envPrefix + "LOG_LEVEL"); val != "" {
		c.LogLevel = val
		c.sources["log_level"] = "env:" + envPrefix + "LOG_LEVEL"
	}
	if val := os.Getenv(envPrefix + "LOG_FORMAT"); val != "" {
		c.LogFormat = val
		c.sources["log_format"] = "env:" + envPrefix + "LOG_FORMAT"
	}
	if val := os.Getenv(envPrefix + "PAGE_SIZE"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("CENTROID_PAGE_SIZE must be an integer, got %q", val)
		}
		c.PageSize = i
		c.sources["page_size"] = "env:" + envPrefix + "PAGE_SIZE"
	}
	return nil
}

// ConfigFilePath returns the path of the config file that was read, or
// an empty string when only defaults and environment were used.
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns where an attribute's value came from: "default",
// "file:<path>" or "env:<variable>".
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Addr returns the host:port the server should listen on.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.BindAddress, c.Port)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("database_url must not be empty")
	}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	if !contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("invalid log_format: %s", c.LogFormat)
	}
	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "bind_address", Value: c.BindAddress, Source: c.Source("bind_address")},
		{Name: "port", Value: strconv.Itoa(c.Port), Source: c.Source("port")},
		{Name: "database_url", Value: c.DatabaseURL, Source: c.Source("database_url")},
		{Name: "datasets_dir", Value: c.DatasetsDir, Source: c.Source("datasets_dir")},
		{Name: "watch_datasets", Value: strconv.FormatBool(c.WatchDatasets), Source: c.Source("watch_datasets")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "log_format", Value: c.LogFormat, Source: c.Source("log_format")},
		{Name: "page_size", Value: strconv.Itoa(c.PageSize), Source: c.Source("page_size")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	file := c.configFilePath
	if file == "" {
		file = "(none)"
	}
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", file))
	sb.WriteString(fmt.Sprintf("%-16s %-24s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-16s %-24s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-16s %-24s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
