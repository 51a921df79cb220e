// ABOUTME: Application configuration
// ABOUTME: ENV > yaml > defaults via cleanenv, with an XDG default database path
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	DBPath           string `yaml:"db_path" env:"ROLO_DB_PATH"`
	WebPort          int    `yaml:"web_port" env:"ROLO_WEB_PORT" env-default:"8080"`
	LogLevel         string `yaml:"log_level" env:"ROLO_LOG_LEVEL" env-default:"info"`
	LogFormat        string `yaml:"log_format" env:"ROLO_LOG_FORMAT" env-default:"text"`
	ReminderHorizon  int    `yaml:"reminder_horizon_days" env:"ROLO_REMINDER_HORIZON_DAYS" env-default:"30"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file path comes from ROLO_CONFIG
// (fallback "./rolo.yaml"); a missing fallback file is not an error.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("ROLO_CONFIG")
	explicitPath := path != ""
	if !explicitPath {
		path = "./rolo.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(xdg.DataHome, "rolo", "rolo.db")
	}

	return &cfg, nil
}
