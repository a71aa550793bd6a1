package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Auth struct {
		SessionSecret     string `yaml:"session_secret" env:"SESSION_SECRET"`
		SessionDuration   string `yaml:"session_duration" env:"SESSION_DURATION"`
		Issuer            string `yaml:"issuer" env:"SESSION_ISSUER"`
		AdminPassword     string `yaml:"admin_password" env:"ADMIN_PASSWORD"`
		DeveloperPassword string `yaml:"developer_password" env:"DEVELOPER_PASSWORD"`
	} `yaml:"auth"`

	Fund struct {
		GlobalGoal    int64 `yaml:"global_goal" env:"FUND_GLOBAL_GOAL"`
		StudentTarget int64 `yaml:"student_target" env:"FUND_STUDENT_TARGET"`
		SeedDefaults  bool  `yaml:"seed_defaults" env:"FUND_SEED_DEFAULTS"`
	} `yaml:"fund"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Config file is optional; env vars can carry the whole configuration
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "fundsphere"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Auth.SessionDuration = "24h"
	config.Auth.Issuer = "fundsphere.app"

	// Campaign goal is fixed at 10 lakhs; per-student target at 5000
	config.Fund.GlobalGoal = 1000000
	config.Fund.StudentTarget = 5000
	config.Fund.SeedDefaults = true

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Auth.SessionSecret == "" {
		return fmt.Errorf("session secret is required")
	}

	if config.Auth.AdminPassword == "" {
		return fmt.Errorf("admin password is required")
	}

	if _, err := time.ParseDuration(config.Auth.SessionDuration); err != nil {
		return fmt.Errorf("invalid session duration format: %w", err)
	}

	if config.Fund.GlobalGoal <= 0 {
		return fmt.Errorf("global goal must be positive")
	}

	if config.Fund.StudentTarget <= 0 {
		return fmt.Errorf("student target must be positive")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

