package db

import (
	"testing"

	"github.com/glum-catalog/backend/internal/config"
)

func TestBuildPostgresURLPrefersDatabaseURL(t *testing.T) {
	cfg := config.PostgresConfig{
		DatabaseURL: "postgres://u:p@db:5432/app",
		Host:        "ignored",
		Port:        "1",
		User:        "ignored",
		Database:    "ignored",
	}

	dsn, err := buildPostgresURL(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dsn != "postgres://u:p@db:5432/app" {
		t.Fatalf("unexpected dsn: %q", dsn)
	}
}

func TestBuildPostgresURLFromComponents(t *testing.T) {
	cfg := config.PostgresConfig{
		Host:     "db",
		Port:     "5433",
		User:     "glum",
		Password: "s3cret",
		Database: "catalog",
		SSLMode:  "disable",
	}

	dsn, err := buildPostgresURL(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dsn != "postgres://glum:s3cret@db:5433/catalog?sslmode=disable" {
		t.Fatalf("unexpected dsn: %q", dsn)
	}
}

func TestBuildPostgresURLWithoutPassword(t *testing.T) {
	cfg := config.PostgresConfig{
		Host:     "localhost",
		Port:     "5432",
		User:     "glum",
		Database: "catalog",
		SSLMode:  "require",
	}

	dsn, err := buildPostgresURL(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dsn != "postgres://glum@localhost:5432/catalog?sslmode=require" {
		t.Fatalf("unexpected dsn: %q", dsn)
	}
}

func TestBuildPostgresURLMissingRequired(t *testing.T) {
	if _, err := buildPostgresURL(config.PostgresConfig{Host: "db", Port: "5432"}); err == nil {
		t.Fatalf("expected an error without user and database")
	}
}
