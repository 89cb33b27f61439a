// Package config provides YAML-based configuration loading for the parts
// assistant.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration, loaded from config.yaml.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	DB       DBConfig       `yaml:"db"`
	Models   []VehicleModel `yaml:"models"`
	Fallback FallbackConfig `yaml:"fallback"`
	Session  SessionConfig  `yaml:"session"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DBConfig holds the enquiry database settings. The sqlite driver takes a
// file path; mysql takes host/port/database.
type DBConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// VehicleModel is a vehicle model the catalog covers.
type VehicleModel struct {
	ID   int64  `yaml:"id"`
	Name string `yaml:"name"`
}

// FallbackConfig holds the free-form answer model settings. The API key is
// read from the named environment variable, never from the file itself.
type FallbackConfig struct {
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
}

// SessionConfig holds the idle-session expiry settings. A zero TTL disables
// the sweeper.
type SessionConfig struct {
	TTL        time.Duration `yaml:"ttl"`
	SweepEvery time.Duration `yaml:"sweep_every"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// APIKey resolves the fallback model's API key from the environment. An
// empty result means the fallback is disabled.
func (c *Config) APIKey() string {
	if c.Fallback.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(c.Fallback.APIKeyEnv)
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.DB.Driver == "" {
		c.DB.Driver = "sqlite"
	}
	if c.DB.Driver == "sqlite" && c.DB.Path == "" {
		c.DB.Path = "partsbot.db"
	}
	if c.DB.Driver == "mysql" {
		if c.DB.Host == "" {
			c.DB.Host = "127.0.0.1"
		}
		if c.DB.Port == 0 {
			c.DB.Port = 3306
		}
		if c.DB.User == "" {
			c.DB.User = "root"
		}
	}
	if c.Fallback.APIKeyEnv == "" {
		c.Fallback.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.Fallback.Model == "" {
		c.Fallback.Model = "gpt-4o-mini"
	}
	if c.Session.TTL > 0 && c.Session.SweepEvery == 0 {
		c.Session.SweepEvery = 10 * time.Minute
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.DB.Driver {
	case "sqlite":
		if c.DB.Path == "" {
			errs = append(errs, "db.path is required for the sqlite driver")
		}
	case "mysql":
		if c.DB.Database == "" {
			errs = append(errs, "db.database is required for the mysql driver")
		}
	default:
		errs = append(errs, fmt.Sprintf("db.driver must be sqlite or mysql, got %q", c.DB.Driver))
	}
	if len(c.Models) == 0 {
		errs = append(errs, "at least one vehicle model is required")
	}
	for i, m := range c.Models {
		if m.Name == "" {
			errs = append(errs, fmt.Sprintf("models[%d].name is required", i))
		}
		if m.ID == 0 {
			errs = append(errs, fmt.Sprintf("models[%d].id is required", i))
		}
	}
	if c.Session.TTL < 0 {
		errs = append(errs, "session.ttl must not be negative")
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
