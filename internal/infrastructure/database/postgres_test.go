package database

import (
	"testing"

	"github.com/fleetkeeper/fleetkeeper/internal/infrastructure/config"
)

func TestPostgres_Close(t *testing.T) {
	pg := &Postgres{DB: nil}
	if err := pg.Close(); err != nil {
		t.Errorf("Postgres.Close() with nil DB should not error, got %v", err)
	}
}

func TestNewPostgres_InvalidConfig(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:     "invalid-host-that-does-not-exist",
		Port:     99999,
		User:     "invalid",
		Password: "invalid",
		Database: "invalid",
		SSLMode:  "disable",
	}

	pg, err := NewPostgres(cfg)
	if err == nil {
		if pg != nil && pg.DB != nil {
			pg.Close()
		}
		t.Error("NewPostgres() with invalid config should return error")
	}
}
