package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"
)

// Create a new instance of the logger
// Configure it to log at the desired level
// and format it as JSON for structured logging
var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.JSONFormatter{})
	environment := GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(logrus.DebugLevel)
	case "production":
		log.SetLevel(logrus.ErrorLevel)
	default:
		// Default to info level for other environments
		log.SetLevel(logrus.InfoLevel)
	}
}

// Config holds the server configuration, loaded from environment variables.
type Config struct {
	// Server Configuration
	Port int    `json:"port"`
	Host string `json:"host"`

	// Database configuration
	DBDriver   string `json:"db_driver"`
	DBPath     string `json:"db_path"`
	DBHost     string `json:"db_host"`
	DBPort     string `json:"db_port"`
	DBName     string `json:"db_name"`
	DBUser     string `json:"db_user"`
	DBPassword string `json:"db_password"`
	DBSSLMode  string `json:"db_sslmode"`

	// Logging configuration
	LogLevel string `json:"log_level"`

	// Security Configuration
	JWTSecret     string `json:"jwt_secret"`
	TokenTTLHours int    `json:"token_ttl_hours"`

	// Password for the bootstrap admin user (development default)
	SeedAdminPassword string `json:"seed_admin_password"`
}

// String returns a string representation of Config with sensitive data masked
func (c *Config) String() string {
	return fmt.Sprintf("Config{Port: %d, Host: %s, DBDriver: %s, DBPath: %s, DBHost: %s, DBPort: %s, DBName: %s, DBUser: %s, DBPassword: [REDACTED], LogLevel: %s, JWTSecret: [REDACTED], TokenTTLHours: %d}",
		c.Port, c.Host, c.DBDriver, c.DBPath, c.DBHost, c.DBPort, c.DBName, c.DBUser, c.LogLevel, c.TokenTTLHours)
}

// LoadConfig reads the server configuration from environment variables.
// Returns an error if any value fails to parse.
func LoadConfig() (*Config, error) {
	log.Info("Loading configuration from environment variables")
	port, err := strconv.Atoi(GetEnvWithDefault("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config := &Config{
		Port:              port,
		Host:              GetEnvWithDefault("APP_HOST", "localhost"),
		DBDriver:          GetEnvWithDefault("DB_DRIVER", "sqlite"),
		DBPath:            GetEnvWithDefault("DB_PATH", "pizzeria.sqlite"),
		DBHost:            GetEnvWithDefault("DB_HOST", "localhost"),
		DBPort:            GetEnvWithDefault("DB_PORT", "5432"),
		DBName:            GetEnvWithDefault("DB_NAME", "pizzeria"),
		DBUser:            GetEnvWithDefault("DB_USER", "pizzeria"),
		DBPassword:        GetEnvWithDefault("DB_PASSWORD", "pizzeria"),
		DBSSLMode:         GetEnvWithDefault("DB_SSLMODE", "disable"),
		LogLevel:          GetEnvWithDefault("LOG_LEVEL", "info"),
		JWTSecret:         GetEnvWithDefault("JWT_SECRET", "secret"),
		TokenTTLHours:     GetEnvAsType("TOKEN_TTL_HOURS", 24),
		SeedAdminPassword: GetEnvWithDefault("SEED_ADMIN_PASSWORD", "admin123"),
	}
	log.Infof("Configuration loaded: %s", config.String())
	return config, nil
}

// ConsoleConfig holds the terminal console configuration.
type ConsoleConfig struct {
	// Base URL of the backend API, without trailing slash
	APIBaseURL string `json:"api_base_url"`

	// Path of the JSON file holding the persisted session
	KeystorePath string `json:"keystore_path"`
}

// LoadConsoleConfig reads the console configuration from environment variables.
// The keystore defaults to a file under the user config directory.
func LoadConsoleConfig() (*ConsoleConfig, error) {
	base := GetEnvWithDefault("PIZZERIA_API_URL", "http://localhost:8080")

	path := os.Getenv("PIZZERIA_KEYSTORE")
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config dir: %w", err)
		}
		path = filepath.Join(dir, "pizzeria-console", "session.json")
	}

	return &ConsoleConfig{APIBaseURL: base, KeystorePath: path}, nil
}

// Helper to get environment with default values
func GetEnvWithDefault(key, defaultValue string) string {
	log.Tracef("Getting environment variable: %s", key)
	value := os.Getenv(key)
	if value == "" {
		log.Warnf("Environment variable %s not set, using default value: %s", key, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsType retrieves an environment variable and converts it to the specified type
// using generic type handling.
func GetEnvAsType[T any](key string, defaultValue T) T {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var result T
	switch any(result).(type) {
	case int:
		intValue, err := strconv.Atoi(value)
		if err != nil {
			return defaultValue
		}
		return any(intValue).(T)
	case string:
		return any(value).(T)
	case bool:
		boolValue, err := strconv.ParseBool(value)
		if err != nil {
			return defaultValue
		}
		return any(boolValue).(T)
	default:
		return defaultValue // Fallback for unsupported types
	}
}
