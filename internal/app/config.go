package app

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultSessionTTLDays  = 7
	defaultCacheTTLSeconds = 60
)

type Config struct {
	Server struct {
		Port string `toml:"port"`
	} `toml:"server"`

	Database struct {
		DSN           string `toml:"dsn"`
		MigrationsDir string `toml:"migrations_dir"`
	} `toml:"database"`

	Auth struct {
		SessionTTLDays  int    `toml:"session_ttl_days"`
		RedisURL        string `toml:"redis_url"`
		CacheTTLSeconds int    `toml:"cache_ttl_seconds"`
	} `toml:"auth"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf(
			"error reading config file %s\n> Error: %w\n> Content:\n%s",
			path,
			err,
			string(data),
		)
	}

	if config.Server.Port == "" {
		return nil, fmt.Errorf("Server port is not specified in config, use a value like :3000")
	}
	if config.Database.DSN == "" {
		return nil, fmt.Errorf("Database DSN is not specified in config")
	}
	if config.Database.MigrationsDir == "" {
		config.Database.MigrationsDir = "./migrations"
	}
	if config.Auth.SessionTTLDays <= 0 {
		config.Auth.SessionTTLDays = defaultSessionTTLDays
	}
	if config.Auth.CacheTTLSeconds <= 0 {
		config.Auth.CacheTTLSeconds = defaultCacheTTLSeconds
	}

	return &config, nil
}
