package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"riskcheck/internal/logging"
)

// Config represents the application configuration
type Config struct {
	App     AppConfig      `yaml:"app"`
	Logging logging.Config `yaml:"logging"`
	Risk    RiskConfig     `yaml:"risk"`
}

// AppConfig represents application configuration
type AppConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Env     string `yaml:"env"`
}

// Band represents the breakpoints of one metric's risk banding. A metric
// value below Medium is low risk, in [Medium, High) medium risk, and at or
// above High high risk.
type Band struct {
	Medium float64 `yaml:"medium"`
	High   float64 `yaml:"high"`
}

// RiskConfig represents overfitting risk engine configuration. Band
// thresholds and level cutoffs live here so tuning them is a configuration
// change, not a code change.
type RiskConfig struct {
	Enabled           bool            `yaml:"enabled"`
	ParamVariationPct float64         `yaml:"param_variation_pct"`
	ScoreCap          float64         `yaml:"score_cap"`
	MediumScore       float64         `yaml:"medium_score"`
	HighScore         float64         `yaml:"high_score"`
	Thresholds        map[string]Band `yaml:"thresholds"`
}

// Default returns the built-in configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Name: "riskcheck",
			Env:  "development",
		},
		Logging: logging.Config{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
		Risk: DefaultRiskConfig(),
	}
}

// DefaultRiskConfig returns the engine defaults.
func DefaultRiskConfig() RiskConfig {
	return RiskConfig{
		Enabled:           true,
		ParamVariationPct: 0.05,
		ScoreCap:          10,
		MediumScore:       2,
		HighScore:         4,
		Thresholds: map[string]Band{
			"parameter_sensitivity":    {Medium: 0.15, High: 0.30},
			"walk_forward_degradation": {Medium: 0.20, High: 0.40},
			"fold_consistency":         {Medium: 0.30, High: 0.50},
		},
	}
}

// Load loads configuration from a YAML file
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks the configuration for internal consistency
func (c *Config) Validate() error {
	if c.Risk.ParamVariationPct <= 0 || c.Risk.ParamVariationPct >= 1 {
		return fmt.Errorf("param_variation_pct must be in (0, 1), got %v", c.Risk.ParamVariationPct)
	}
	if c.Risk.ScoreCap <= 0 {
		return fmt.Errorf("score_cap must be positive, got %v", c.Risk.ScoreCap)
	}
	if c.Risk.MediumScore >= c.Risk.HighScore {
		return fmt.Errorf("medium_score %v must be below high_score %v", c.Risk.MediumScore, c.Risk.HighScore)
	}
	if c.Risk.HighScore > c.Risk.ScoreCap {
		return fmt.Errorf("high_score %v exceeds score_cap %v", c.Risk.HighScore, c.Risk.ScoreCap)
	}
	for name, band := range c.Risk.Thresholds {
		if band.Medium < 0 || band.Medium >= band.High {
			return fmt.Errorf("thresholds for %s: medium %v must be in [0, high %v)", name, band.Medium, band.High)
		}
	}
	return nil
}
