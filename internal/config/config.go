package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level accountflow.yaml configuration.
type Config struct {
	Business   BusinessConfig   `yaml:"business"`
	Storage    StorageConfig    `yaml:"storage"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Audit      AuditConfig      `yaml:"audit"`
}

// BusinessConfig identifies the business entity analyses belong to.
type BusinessConfig struct {
	Name      string `yaml:"name"`
	CompanyID string `yaml:"company_id"`
}

// StorageConfig selects where analyses are persisted.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "memory" or "sqlite"
}

// ThresholdsConfig controls when a saved analysis should be flagged for
// human review.
type ThresholdsConfig struct {
	ReviewConfidence float64 `yaml:"review_confidence"`
}

// AuditConfig controls the audit log.
type AuditConfig struct {
	Enabled bool   `yaml:"enabled"`
	Actor   string `yaml:"actor"`
}

// Load reads an accountflow.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Validate checks backend selection and threshold bounds.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "memory", "sqlite":
	default:
		return fmt.Errorf("storage.backend must be memory or sqlite, got %q", c.Storage.Backend)
	}
	if c.Thresholds.ReviewConfidence < 0 || c.Thresholds.ReviewConfidence > 1 {
		return fmt.Errorf("thresholds.review_confidence must be in [0,1], got %g", c.Thresholds.ReviewConfidence)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default(businessName string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name: businessName,
		},
		Storage: StorageConfig{
			Backend: "sqlite",
		},
		Thresholds: ThresholdsConfig{
			ReviewConfidence: 0.70,
		},
		Audit: AuditConfig{
			Enabled: true,
			Actor:   "accountflow-cli",
		},
	}
}
