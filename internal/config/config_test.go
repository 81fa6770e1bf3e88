package config

import (
	"testing"

	"github.com/gigamasta/diabetes-manager/internal/logger"
)

func TestLoad(t *testing.T) {
	t.Run("missing telegram token fails", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "")
		if _, err := Load(); err == nil {
			t.Fatal("expected an error without a token")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
		t.Setenv("DB_DISABLED", "")
		t.Setenv("DB_HOST", "")
		t.Setenv("REDIS_ENABLED", "")
		t.Setenv("OPENFOODFACTS_URL", "")
		t.Setenv("LOG_LEVEL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg.DB.Disabled {
			t.Error("database must be enabled by default")
		}
		if cfg.DB.Host != "localhost" || cfg.DB.Port != "5432" {
			t.Errorf("DB defaults = %s:%s", cfg.DB.Host, cfg.DB.Port)
		}
		if cfg.Redis.Enabled {
			t.Error("redis must be disabled by default")
		}
		if cfg.OpenFoodFactsURL != "https://world.openfoodfacts.org" {
			t.Errorf("OpenFoodFacts URL = %q", cfg.OpenFoodFactsURL)
		}
		if cfg.Logger.Level != logger.LevelInfo {
			t.Errorf("log level = %v, want info", cfg.Logger.Level)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
		t.Setenv("DB_DISABLED", "true")
		t.Setenv("REDIS_ENABLED", "1")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("OPENFOODFACTS_URL", "http://localhost:8080")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if !cfg.DB.Disabled {
			t.Error("DB_DISABLED=true must switch storage off")
		}
		if !cfg.Redis.Enabled {
			t.Error("REDIS_ENABLED=1 must enable redis")
		}
		if cfg.Logger.Level != logger.LevelDebug {
			t.Errorf("log level = %v, want debug", cfg.Logger.Level)
		}
		if cfg.OpenFoodFactsURL != "http://localhost:8080" {
			t.Errorf("OpenFoodFacts URL = %q", cfg.OpenFoodFactsURL)
		}
	})

	t.Run("garbage booleans fall back to defaults", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "test-token")
		t.Setenv("DB_DISABLED", "maybe")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load: %v", err)
		}
		if cfg.DB.Disabled {
			t.Error("unparseable DB_DISABLED must keep the default")
		}
	})
}
