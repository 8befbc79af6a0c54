package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DB     DBConfig
	Server ServerConfig
	Auth   AuthConfig
	Mail   MailConfig
}

// DBType represents database type
type DBType string

const (
	DBTypePostgreSQL DBType = "postgres"
	DBTypeMemory     DBType = "memory"
)

// DBConfig holds database configuration
type DBConfig struct {
	Type     DBType
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the database connection string
func (c DBConfig) DSN() string {
	if c.Type == DBTypeMemory {
		// SQLite in-memory database
		if c.Name != "" && c.Name != "cityinfo" {
			return fmt.Sprintf("file:%s?mode=memory&cache=shared", c.Name)
		}
		return "file::memory:?cache=shared"
	}
	// PostgreSQL connection string
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// IsMemory returns true if using in-memory database
func (c DBConfig) IsMemory() bool {
	return c.Type == DBTypeMemory
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
}

// AuthConfig holds token signing configuration. SecretKey is the decoded
// symmetric key; the environment carries it base64-encoded.
type AuthConfig struct {
	SecretKey []byte
	Issuer    string
	Audience  string
	TokenTTL  time.Duration
}

// MailConfig holds addresses for the delete notification mail
type MailConfig struct {
	From string
	To   string
}

// Load loads configuration from environment variables.
// Missing or malformed auth settings are a hard error: the server must not
// start with an unverifiable token setup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbType := DBType(getEnv("DB_TYPE", "memory"))
	if dbType != DBTypePostgreSQL && dbType != DBTypeMemory {
		dbType = DBTypeMemory
	}

	auth, err := loadAuth()
	if err != nil {
		return nil, err
	}

	config := &Config{
		DB: DBConfig{
			Type:     dbType,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "cityinfo"),
			Password: getEnv("DB_PASSWORD", "cityinfo_password"),
			Name:     getEnv("DB_NAME", "cityinfo"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnv("APP_PORT", "8080"),
		},
		Auth: auth,
		Mail: MailConfig{
			From: getEnv("MAIL_FROM", "noreply@cityinfo.local"),
			To:   getEnv("MAIL_TO", "admin@cityinfo.local"),
		},
	}

	return config, nil
}

func loadAuth() (AuthConfig, error) {
	secret := os.Getenv("AUTH_SECRET_FOR_KEY")
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("AUTH_SECRET_FOR_KEY is required")
	}
	key, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return AuthConfig{}, fmt.Errorf("AUTH_SECRET_FOR_KEY must be base64: %w", err)
	}

	issuer := os.Getenv("AUTH_ISSUER")
	if issuer == "" {
		return AuthConfig{}, fmt.Errorf("AUTH_ISSUER is required")
	}
	audience := os.Getenv("AUTH_AUDIENCE")
	if audience == "" {
		return AuthConfig{}, fmt.Errorf("AUTH_AUDIENCE is required")
	}

	return AuthConfig{
		SecretKey: key,
		Issuer:    issuer,
		Audience:  audience,
		TokenTTL:  getEnvAsDuration("AUTH_TOKEN_TTL", time.Hour),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
