package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port         string `yaml:"port" env:"SERVER_PORT"`
		Mode         string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout  string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		TxTimeout       string `yaml:"tx_timeout" env:"DB_TX_TIMEOUT"`
		Seed            bool   `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	// Auth mirrors the identity provider settings. The domain is the tenant
	// host, e.g. "example.eu.auth0.com".
	Auth struct {
		Enabled     bool   `yaml:"enabled" env:"AUTH_ENABLED"`
		Domain      string `yaml:"domain" env:"AUTH0_DOMAIN"`
		Audience    string `yaml:"audience" env:"API_AUDIENCE"`
		Algorithm   string `yaml:"algorithm" env:"ALGORITHM"`
		JWKSURL     string `yaml:"jwks_url" env:"AUTH_JWKS_URL"`
		Issuer      string `yaml:"issuer" env:"AUTH_ISSUER"`
		JWKSTimeout string `yaml:"jwks_timeout" env:"AUTH_JWKS_TIMEOUT"`
	} `yaml:"auth"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from an optional .env file, a YAML file and
// environment variables, in that order of increasing precedence.
func LoadConfig(configPath string) (*Config, error) {
	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
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
	config.Server.ReadTimeout = "10s"
	config.Server.WriteTimeout = "10s"

	config.Database.Driver = DriverPostgres
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "abimath"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.TxTimeout = "30s"

	config.Auth.Enabled = false
	config.Auth.Algorithm = "RS256"
	config.Auth.JWKSTimeout = "5s"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	switch config.Database.Driver {
	case DriverPostgres:
		if config.Database.Host == "" {
			return fmt.Errorf("database host is required")
		}
		if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
			return fmt.Errorf("invalid database connection lifetime: %w", err)
		}
		if d, err := time.ParseDuration(config.Database.TxTimeout); err != nil || d <= 0 {
			return fmt.Errorf("invalid database transaction timeout %q", config.Database.TxTimeout)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Auth.Enabled {
		if config.Auth.Domain == "" && (config.Auth.JWKSURL == "" || config.Auth.Issuer == "") {
			return fmt.Errorf("auth domain is required when auth is enabled")
		}
		if config.Auth.Audience == "" {
			return fmt.Errorf("auth audience is required when auth is enabled")
		}
		switch strings.ToUpper(config.Auth.Algorithm) {
		case "RS256", "RS384", "RS512":
		default:
			return fmt.Errorf("unsupported signing algorithm %q", config.Auth.Algorithm)
		}
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

// JWKSURL returns the key set location, derived from the domain unless set
// explicitly.
func (c *Config) JWKSURL() string {
	if c.Auth.JWKSURL != "" {
		return c.Auth.JWKSURL
	}
	return fmt.Sprintf("https://%s/.well-known/jwks.json", c.Auth.Domain)
}

// Issuer returns the expected "iss" claim.
func (c *Config) Issuer() string {
	if c.Auth.Issuer != "" {
		return c.Auth.Issuer
	}
	return "https://" + c.Auth.Domain + "/"
}
