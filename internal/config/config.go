// Package config содержит логику чтения конфигурации клиента магазина.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config содержит параметры конфигурации клиента магазина.
type Config struct {
	RunAddress string `env:"RUN_ADDRESS"`
	APIBaseURL string `env:"API_BASE_URL"`
	StateDir   string `env:"STATE_DIR"`
}

// Parse считывает конфигурацию из флагов командной строки и переменных окружения.
// Переменные окружения имеют приоритет над флагами.
func Parse() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	envRunAddress := cfg.RunAddress
	envAPIBaseURL := cfg.APIBaseURL
	envStateDir := cfg.StateDir

	flag.StringVar(&cfg.RunAddress, "a", "localhost:8081", "address and port for the local HTTP facade")
	flag.StringVar(&cfg.APIBaseURL, "b", "http://localhost:8080/api", "store management API base URL")
	flag.StringVar(&cfg.StateDir, "s", ".storeclient", "directory for persisted session and cart state")

	flag.Parse()

	if envRunAddress != "" {
		cfg.RunAddress = envRunAddress
	}
	if envAPIBaseURL != "" {
		cfg.APIBaseURL = envAPIBaseURL
	}
	if envStateDir != "" {
		cfg.StateDir = envStateDir
	}

	if cfg.RunAddress == "" {
		cfg.RunAddress = "localhost:8081"
	}

	return cfg, nil
}
