package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "tubewatch.yaml"
	DefaultStateFile  = ".tubewatch.state"
	DefaultBaseURL    = "https://www.googleapis.com/youtube/v3"
	DefaultPageSize   = 50
	DefaultRetries    = 3
	DefaultRetryDelay = 3 * time.Second
)

// Duration wraps time.Duration for YAML unmarshaling from strings like "3s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

type Config struct {
	APIKey    string    `yaml:"api_key"`
	APIKeyEnv string    `yaml:"api_key_env"`
	Channels  []string  `yaml:"channels"`
	API       APIConfig `yaml:"api"`
}

type APIConfig struct {
	BaseURL    string   `yaml:"base_url"`
	PageSize   int      `yaml:"page_size"`
	Retries    int      `yaml:"retries"`
	RetryDelay Duration `yaml:"retry_delay"`
}

// Load reads the config file at path, applies defaults, resolves env vars,
// and validates. A missing or malformed file is a fatal configuration error.
func Load(path string) (*Config, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("config path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(&cfg)
	resolveEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.PageSize == 0 {
		cfg.API.PageSize = DefaultPageSize
	}
	if cfg.API.Retries == 0 {
		cfg.API.Retries = DefaultRetries
	}
	if cfg.API.RetryDelay.Duration == 0 {
		cfg.API.RetryDelay.Duration = DefaultRetryDelay
	}
}

func resolveEnv(cfg *Config) {
	if cfg.APIKey == "" && cfg.APIKeyEnv != "" {
		cfg.APIKey = os.Getenv(cfg.APIKeyEnv)
	}
}

func validate(cfg *Config) error {
	if cfg.APIKey == "" {
		if cfg.APIKeyEnv != "" {
			return fmt.Errorf("api_key_env: environment variable %s is empty or unset", cfg.APIKeyEnv)
		}
		return errors.New("api_key: an API key is required")
	}

	if len(cfg.Channels) == 0 {
		return errors.New("channels: at least one channel id must be configured")
	}

	seen := make(map[string]bool, len(cfg.Channels))
	for _, id := range cfg.Channels {
		if strings.TrimSpace(id) == "" {
			return errors.New("channels: empty channel id")
		}
		if strings.ContainsAny(id, " \t") {
			return fmt.Errorf("channels: channel id %q contains whitespace", id)
		}
		if seen[id] {
			return fmt.Errorf("channels: duplicate channel id %q", id)
		}
		seen[id] = true
	}

	if cfg.API.PageSize < 1 || cfg.API.PageSize > 50 {
		return fmt.Errorf("api.page_size: %d is out of range (want 1-50)", cfg.API.PageSize)
	}
	if cfg.API.Retries < 1 {
		return fmt.Errorf("api.retries: %d is out of range (want at least 1)", cfg.API.Retries)
	}

	return nil
}
