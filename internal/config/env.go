package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const envPrefix = "RISKCHECK_"

// LoadEnvFile loads a .env file into the process environment if one exists.
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// applyEnv overrides file-based settings from the process environment.
func (c *Config) applyEnv() {
	c.App.Env = envString("ENV", c.App.Env)
	c.Logging.Level = envString("LOG_LEVEL", c.Logging.Level)
	c.Logging.Format = envString("LOG_FORMAT", c.Logging.Format)
	c.Logging.Output = envString("LOG_OUTPUT", c.Logging.Output)
	c.Risk.Enabled = envBool("RISK_ENABLED", c.Risk.Enabled)
	c.Risk.ParamVariationPct = envFloat("RISK_PARAM_VARIATION_PCT", c.Risk.ParamVariationPct)
}

func envString(key, defaultValue string) string {
	value := os.Getenv(envPrefix + key)
	if value == "" {
		return defaultValue
	}
	return value
}

func envBool(key string, defaultValue bool) bool {
	value := envString(key, "")
	if value == "" {
		return defaultValue
	}
	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}
	return defaultValue
}

func envFloat(key string, defaultValue float64) float64 {
	value := envString(key, "")
	if value == "" {
		return defaultValue
	}
	if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}
	return defaultValue
}
