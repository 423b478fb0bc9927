// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type DatabaseConfig struct {
	URL string `yaml:"url"` // optional; built-in catalog is served when empty
}

type RedisConfig struct {
	URL      string        `yaml:"url"` // optional; in-process entitlement store when empty
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type ClassifierConfig struct {
	GeminiKey     string        `yaml:"gemini_key"`
	GeminiURL     string        `yaml:"gemini_url"`
	OpenAIKey     string        `yaml:"openai_key"`
	OpenAIBaseURL string        `yaml:"openai_base_url"`
	Model         string        `yaml:"model"`
	Timeout       time.Duration `yaml:"timeout"`
}

type VerificationConfig struct {
	Workers int `yaml:"workers"` // classification worker pool size
	// DemoMode swaps the real classifier for the auto-accept stub.
	// Never defaulted on: it must be set explicitly in config.
	DemoMode  bool          `yaml:"demo_mode"`
	DemoDelay time.Duration `yaml:"demo_delay"`
}

type MethodConfig struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	AccountName   string `yaml:"account_name"`
	AccountNumber string `yaml:"account_number"`
}

type AdminConfig struct {
	Password   string        `yaml:"password"`
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	Database     DatabaseConfig     `yaml:"database"`
	Redis        RedisConfig        `yaml:"redis"`
	Classifier   ClassifierConfig   `yaml:"classifier"`
	Verification VerificationConfig `yaml:"verification"`
	Methods      []MethodConfig     `yaml:"methods"` // overrides the built-in receiving accounts
	Admin        AdminConfig        `yaml:"admin"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	// defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Classifier.Model == "" {
		cfg.Classifier.Model = "gemini-2.5-flash"
	}
	if cfg.Classifier.Timeout <= 0 {
		cfg.Classifier.Timeout = 30 * time.Second
	}
	if cfg.Verification.Workers <= 0 {
		cfg.Verification.Workers = 4
	}
	if cfg.Verification.DemoDelay <= 0 {
		cfg.Verification.DemoDelay = 2 * time.Second
	}
	if cfg.Redis.TTL <= 0 {
		cfg.Redis.TTL = time.Hour
	}
	if cfg.Admin.SessionTTL <= 0 {
		cfg.Admin.SessionTTL = 30 * time.Minute
	}

	// Minimal validation. A receipt classifier is mandatory unless demo mode
	// is switched on explicitly; we refuse to degrade silently.
	if !cfg.Verification.DemoMode && cfg.Classifier.GeminiKey == "" && cfg.Classifier.OpenAIKey == "" {
		return nil, errors.New("no classifier configured: set classifier.gemini_key or classifier.openai_key, or enable verification.demo_mode")
	}
	for i, m := range cfg.Methods {
		if m.ID == "" || m.AccountNumber == "" {
			return nil, fmt.Errorf("methods[%d]: id and account_number are required", i)
		}
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
