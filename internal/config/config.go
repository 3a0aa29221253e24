package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const DefaultPath = "configs/config.toml"

type Config struct {
	Log    LogConfig    `toml:"log"`
	Output OutputConfig `toml:"output"`
}

type LogConfig struct {
	Directory string `toml:"directory"`
	Level     string `toml:"level"`
}

type OutputConfig struct {
	// Directory overrides where converted files go. Empty means next to
	// the input file.
	Directory string `toml:"directory"`
}

func Default() *Config {
	return &Config{
		Log: LogConfig{
			Directory: "logs",
			Level:     "info",
		},
	}
}

// Load reads the TOML file at configPath, falls back to defaults when it
// does not exist, and applies CATALOGFMT_* environment overrides (a .env
// file in the working directory is loaded first if present).
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file %s: %w", configPath, err)
	}

	// Set defaults if missing
	if cfg.Log.Directory == "" {
		cfg.Log.Directory = "logs"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if v := os.Getenv("CATALOGFMT_LOG_DIR"); v != "" {
		cfg.Log.Directory = v
	}
	if v := os.Getenv("CATALOGFMT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("CATALOGFMT_OUTPUT_DIR"); v != "" {
		cfg.Output.Directory = v
	}

	return cfg, nil
}
