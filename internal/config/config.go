package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/TWRT/time-quadrant/internal/logging"
)

const (
	DefaultDBPath    = "./quadrant.db"
	DefaultAddr      = ":8080"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	defaultConfigFile = "quadrant.toml"
)

type Config struct {
	DBPath    string `toml:"db_path"`
	Addr      string `toml:"addr"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

func Default() *Config {
	return &Config{
		DBPath:    DefaultDBPath,
		Addr:      DefaultAddr,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
	}
}

// Load merges defaults, the TOML config file and the environment, in that
// order. A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	path := os.Getenv("QUADRANT_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if err := loadFile(path, cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat config %s: %w", path, err)
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("QUADRANT_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("QUADRANT_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("QUADRANT_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("QUADRANT_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

func (c *Config) Validate() error {
	if c.DBPath == "" {
		return errors.New("db path is empty")
	}
	if c.Addr == "" {
		return errors.New("listen address is empty")
	}
	if !logging.ValidLevel(c.LogLevel) {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}
