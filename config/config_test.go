package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("DATABASE_DRIVER", "")
		cfg := Load()
		if cfg.Server.Port != 8080 {
			t.Errorf("expected port 8080, got %d", cfg.Server.Port)
		}
		if cfg.RateLimit.MaxAttempts != 5 || cfg.RateLimit.Window != time.Minute {
			t.Errorf("unexpected rate limit defaults: %+v", cfg.RateLimit)
		}
		if cfg.Redis.Enabled {
			t.Error("expected redis to be disabled by default")
		}
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DATABASE_DRIVER", "SQLite")
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("REDIS_ENABLED", "true")
		t.Setenv("JWT_EXPIRY", "5m")
		t.Setenv("BCRYPT_COST", "not-a-number")

		cfg := Load()
		if cfg.Database.Driver != DriverSQLite {
			t.Errorf("expected sqlite driver, got %s", cfg.Database.Driver)
		}
		if cfg.Server.Port != 9090 {
			t.Errorf("expected port 9090, got %d", cfg.Server.Port)
		}
		if !cfg.Redis.Enabled {
			t.Error("expected redis to be enabled")
		}
		if cfg.JWT.AccessTokenExpiry != 5*time.Minute {
			t.Errorf("expected 5m access expiry, got %s", cfg.JWT.AccessTokenExpiry)
		}
		if cfg.Security.BcryptCost != 12 {
			t.Errorf("expected fallback bcrypt cost 12, got %d", cfg.Security.BcryptCost)
		}
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: 8080, Environment: "development"},
			Database: DatabaseConfig{Driver: DriverPostgres, URL: "postgres://localhost/db"},
			JWT: JWTConfig{
				Secret:             defaultJWTSecret,
				AccessTokenExpiry:  time.Minute,
				RefreshTokenExpiry: time.Hour,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid development config", func(*Config) {}, false},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, true},
		{"missing database url", func(c *Config) { c.Database.URL = "" }, true},
		{"default secret in production", func(c *Config) { c.Server.Environment = "production" }, true},
		{"custom secret in production", func(c *Config) {
			c.Server.Environment = "production"
			c.JWT.Secret = "a-real-secret"
		}, false},
		{"non-positive expiry", func(c *Config) { c.JWT.AccessTokenExpiry = 0 }, true},
		{"invalid port", func(c *Config) { c.Server.Port = 70000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := (LogConfig{Level: in}).SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
