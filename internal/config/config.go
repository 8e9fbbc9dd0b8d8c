package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config is the complete configuration for the olistcli tools.
type Config struct {
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
	Output  OutputConfig  `yaml:"output" envconfig:"OUTPUT"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
}

// DataConfig locates the CSV extracts.
type DataConfig struct {
	Dir string `yaml:"dir" envconfig:"DIR"`
}

// OutputConfig locates everything the pipeline writes.
type OutputConfig struct {
	Dir      string `yaml:"dir" envconfig:"DIR"`
	DeckFile string `yaml:"deck_file" envconfig:"DECK_FILE"`
}

// LoggingConfig controls the global slog logger.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// ServerConfig configures the report preview server.
type ServerConfig struct {
	Addr            string        `yaml:"addr" envconfig:"ADDR"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
}

// defaultConfig returns the built-in configuration. Defaults live here
// rather than in envconfig `default` tags: envconfig applies tag defaults
// whenever the env var is unset, which would clobber values read from the
// YAML file before the env overlay runs.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Data.Dir = "data/archive"
	cfg.Output.Dir = "output"
	cfg.Output.DeckFile = "olist_consulting_deck.xlsx"
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "text"
	cfg.Logging.Output = "console"
	cfg.Logging.FilePath = "logs/olistcli.log"
	cfg.Server.Addr = "localhost:8090"
	cfg.Server.ReadTimeout = 10 * time.Second
	cfg.Server.WriteTimeout = 30 * time.Second
	cfg.Server.IdleTimeout = 60 * time.Second
	cfg.Server.ShutdownTimeout = 10 * time.Second
	return cfg
}

// Load builds the configuration in three layers: built-in defaults, then
// an optional YAML file, then OLIST_* environment variables. Each layer
// only touches the fields it actually sets, so a file value survives where
// the environment is silent and env wins where set.
func Load() (*Config, error) {
	cfg := defaultConfig()

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		if err := overlayFile(cfg, configFile); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := envconfig.Process("OLIST", cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// overlayFile unmarshals a YAML file over cfg in place. Fields absent from
// the document keep their current values.
func overlayFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse yaml: %w", err)
	}
	return nil
}

// configFilePath returns the config file location, overridable for tests.
func configFilePath() string {
	if path := os.Getenv("OLIST_CONFIG_FILE"); path != "" {
		return path
	}
	return DefaultConfigFile
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Data.Dir) == "" {
		return fmt.Errorf("data dir must not be empty")
	}
	if strings.TrimSpace(c.Output.Dir) == "" {
		return fmt.Errorf("output dir must not be empty")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server addr must not be empty")
	}

	return nil
}
