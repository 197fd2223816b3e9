package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is read when no config file is named and it exists.
const DefaultPath = "./jlptquiz.yaml"

// Load reads configuration from a YAML file and environment variables
// and validates it.
// Priority: ENV > YAML > defaults (via env-default tags).
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// Read is Load without validation, for commands that only touch the
// database. The file is path, else JLPTQUIZ_CONFIG, else DefaultPath. A
// missing file is an error only when it was named explicitly. When no
// provider is configured, one is discovered from the vendors' API key
// variables.
func Read(path string) (*Config, error) {
	var cfg Config

	explicitPath := path != ""
	if !explicitPath {
		path = os.Getenv("JLPTQUIZ_CONFIG")
		explicitPath = path != ""
	}
	if !explicitPath {
		path = DefaultPath
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

	cfg.LLM.Discover()
	return &cfg, nil
}
