// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

// DefaultAdminToken is the development fallback admin credential. Production
// deployments must override it.
const DefaultAdminToken = "demo2024"

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port           string  `mapstructure:"PORT"`
	Env            string  `mapstructure:"APP_ENV"`
	AdminToken     string  `mapstructure:"ADMIN_TOKEN"`
	DBPath         string  `mapstructure:"DB_PATH"`
	StaticDir      string  `mapstructure:"STATIC_DIR"`
	PublicDir      string  `mapstructure:"PUBLIC_DIR"`
	RedisURL       string  `mapstructure:"REDIS_URL"`
	AllowedOrigins string  `mapstructure:"ALLOWED_ORIGINS"`
	UploadMaxMB    int     `mapstructure:"UPLOAD_MAX_MB"`
	TracingEnabled bool    `mapstructure:"TRACING_ENABLED"`
	TraceExporter  string  `mapstructure:"TRACE_EXPORTER"`
	OTLPEndpoint   string  `mapstructure:"OTLP_ENDPOINT"`
	TraceSampler   float64 `mapstructure:"TRACE_SAMPLER_RATIO"`
}

// LoadConfig loads application configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; env vars and defaults cover everything.
	_ = viper.ReadInConfig()

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env != "development" && env != "" {
		viper.SetConfigName("config." + env)
		if err := viper.MergeInConfig(); err != nil {
			log.Printf("No profile-specific config.%s.yml found, continuing with base config", env)
		}
	}

	viper.SetDefault("PORT", "3010")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("ADMIN_TOKEN", DefaultAdminToken)
	viper.SetDefault("DB_PATH", "restaurant.db")
	viper.SetDefault("STATIC_DIR", "static")
	viper.SetDefault("PUBLIC_DIR", "public")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("UPLOAD_MAX_MB", 5)
	viper.SetDefault("TRACING_ENABLED", false)
	viper.SetDefault("TRACE_EXPORTER", "stdout")
	viper.SetDefault("OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("TRACE_SAMPLER_RATIO", 1.0)

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that required configuration values are present and meet security standards.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.AdminToken == "" {
		return errors.New("ADMIN_TOKEN is required")
	}
	if c.DBPath == "" {
		return errors.New("DB_PATH is required")
	}
	if c.UploadMaxMB <= 0 {
		return errors.New("UPLOAD_MAX_MB must be positive")
	}

	isProduction := c.Env == "production" || c.Env == "prod"
	if isProduction {
		if c.AdminToken == DefaultAdminToken {
			return errors.New("ADMIN_TOKEN must be changed from the default value in production")
		}
		if len(c.AdminToken) < 12 {
			return errors.New("ADMIN_TOKEN must be at least 12 characters in production")
		}
		if c.AllowedOrigins == "*" {
			log.Println("WARNING: ALLOWED_ORIGINS is set to '*' in production. This is insecure.")
		}
	}

	return nil
}

// IsProduction reports whether the app runs with a production profile.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
