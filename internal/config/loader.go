package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// defaultPaths are tried in order when CONFIG_PATH is unset.
var defaultPaths = []string{"./config.yaml", "/etc/council/config.yaml"}

// secretEnv lists variables that may instead be supplied as a file path in
// <NAME>_FILE, the way container secrets are mounted.
var secretEnv = []string{
	"DATABASE_DSN",
	"AUTH_JWT_SECRET",
	"REDIS_PASSWORD",
	"MEMBERSHIP_TOKEN",
	"SMTP_PASSWORD",
}

// Load builds the server configuration. Environment overrides YAML, which
// overrides env-default tags. An explicit CONFIG_PATH must exist; otherwise
// the first default path found is used, and with none present only the
// environment is read.
func Load() (*Config, error) {
	if err := loadSecretFiles(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config

	path, err := configPath()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func configPath() (string, error) {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("file %s: %w", p, err)
		}
		return p, nil
	}
	for _, p := range defaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

// loadSecretFiles copies <NAME>_FILE contents into NAME. A variable set
// directly is left alone.
func loadSecretFiles() error {
	for _, name := range secretEnv {
		file := os.Getenv(name + "_FILE")
		if file == "" || os.Getenv(name) != "" {
			continue
		}
		b, err := os.ReadFile(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("%s_FILE: %s does not exist", name, file)
			}
			return fmt.Errorf("%s_FILE: %w", name, err)
		}
		if err := os.Setenv(name, strings.TrimSpace(string(b))); err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}
	return nil
}
