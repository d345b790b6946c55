package config

import (
	"os"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Mail     MailConfig
	Admin    AdminConfig
	Postgres PostgresConfig
	CORS     CORSConfig
}

type ServerConfig struct {
	Addr string
}

// AuthConfig carries the signing secret and the login policy toggles.
// Values are raw env strings; the auth package parses and validates them
// once at startup.
type AuthConfig struct {
	JWTSecret            string
	JWTAlgorithm         string
	AccessTTL            string
	EnforceExpiry        string
	RequireVerifiedEmail string
	MaxLoginAttempts     string
}

type MailConfig struct {
	Host          string
	Port          string
	Username      string
	Password      string
	From          string
	VerifyBaseURL string
	QueueSize     string
}

type AdminConfig struct {
	Username string
	Password string
}

type PostgresConfig struct {
	DatabaseURL string
	Host        string
	Port        string
	User        string
	Password    string
	Database    string
	SSLMode     string
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr: getenv("SERVER_ADDR", ":8080"),
		},
		Auth: AuthConfig{
			JWTSecret:            os.Getenv("JWT_SECRET"),
			JWTAlgorithm:         getenv("JWT_ALGORITHM", "HS256"),
			AccessTTL:            getenv("JWT_ACCESS_TTL", "60m"),
			EnforceExpiry:        os.Getenv("AUTH_ENFORCE_EXPIRY"),
			RequireVerifiedEmail: os.Getenv("AUTH_REQUIRE_VERIFIED_EMAIL"),
			MaxLoginAttempts:     os.Getenv("AUTH_MAX_LOGIN_ATTEMPTS"),
		},
		Mail: MailConfig{
			Host:          os.Getenv("MAIL_HOST"),
			Port:          getenv("MAIL_PORT", "587"),
			Username:      os.Getenv("MAIL_USERNAME"),
			Password:      os.Getenv("MAIL_PASSWORD"),
			From:          os.Getenv("MAIL_FROM"),
			VerifyBaseURL: getenv("MAIL_VERIFY_BASE_URL", "http://localhost:8080"),
			QueueSize:     os.Getenv("MAIL_QUEUE_SIZE"),
		},
		Admin: AdminConfig{
			Username: os.Getenv("ADMIN_USERNAME"),
			Password: os.Getenv("ADMIN_PASSWORD"),
		},
		Postgres: PostgresConfig{
			DatabaseURL: os.Getenv("DATABASE_URL"),
			Host:        getenv("PGHOST", "localhost"),
			Port:        getenv("PGPORT", "5432"),
			User:        os.Getenv("PGUSER"),
			Password:    os.Getenv("PGPASSWORD"),
			Database:    os.Getenv("PGDATABASE"),
			SSLMode:     getenv("PGSSLMODE", "disable"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		},
	}
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
