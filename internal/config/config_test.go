package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port", func(c *Config) { c.HTTP.Port = 0 }, "http.port"},
		{"addrs", func(c *Config) { c.Database.Addrs = nil }, "database.addrs"},
		{"driver", func(c *Config) { c.Database.Driver = "valkey" }, `database.driver must be "rueidis" or "goredis"`},
		{"error rate", func(c *Config) { c.Dedup.ErrorRate = 1.5 }, "dedup.error_rate"},
		{"pagination", func(c *Config) { c.Pagination.DefaultLimit = 500 }, "pagination.default_limit"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("error %q does not mention %q", err, tc.wantErr)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 || cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("unexpected http timeouts: %+v", cfg.HTTP)
	}
	if cfg.Database.Driver != DriverRueidis {
		t.Errorf("expected driver %q, got %q", DriverRueidis, cfg.Database.Driver)
	}
	if cfg.Database.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Database.ReadinessTimeout)
	}
	if cfg.Storage.KeyPrefix != "app:" {
		t.Errorf("expected KeyPrefix='app:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Cache.RestaurantTTL() != 300*time.Second {
		t.Errorf("expected restaurant TTL 300s, got %v", cfg.Cache.RestaurantTTL())
	}
	if cfg.Dedup.Capacity != 1_000_000 || cfg.Dedup.ErrorRate != 0.0001 {
		t.Errorf("unexpected dedup defaults: %+v", cfg.Dedup)
	}
	if cfg.Pagination.DefaultLimit != 10 || cfg.Pagination.MaxLimit != 100 {
		t.Errorf("unexpected pagination defaults: %+v", cfg.Pagination)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:       HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Database:   DatabaseConfig{Driver: DriverGoRedis, ReadinessTimeout: 15},
		Storage:    StorageConfig{KeyPrefix: "custom:"},
		Cache:      CacheConfig{RestaurantTTLSec: 60},
		Dedup:      DedupConfig{Capacity: 1000, ErrorRate: 0.01},
		Pagination: PaginationConfig{DefaultLimit: 20, MaxLimit: 50},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 || cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("http timeouts overridden: %+v", cfg.HTTP)
	}
	if cfg.Database.Driver != DriverGoRedis {
		t.Errorf("driver overridden: %q", cfg.Database.Driver)
	}
	if cfg.Storage.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Cache.RestaurantTTLSec != 60 || cfg.Dedup.Capacity != 1000 || cfg.Pagination.MaxLimit != 50 {
		t.Errorf("values overridden: %+v %+v %+v", cfg.Cache, cfg.Dedup, cfg.Pagination)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DINEDEX_TEST_ADDR", "redis:6380")

	in := "a: ${DINEDEX_TEST_ADDR}\nb: ${DINEDEX_TEST_UNSET:-fallback}\nc: ${DINEDEX_TEST_UNSET}\n"
	got := string(expandEnvVars([]byte(in)))
	want := "a: redis:6380\nb: fallback\nc: \n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLoad_Local(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache.internal:6379")
	t.Setenv("DB_DRIVER", "goredis")

	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(cfg.Database.Addrs) != 1 || cfg.Database.Addrs[0] != "cache.internal:6379" {
		t.Errorf("addrs = %v", cfg.Database.Addrs)
	}
	if cfg.Database.Driver != DriverGoRedis {
		t.Errorf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Storage.KeyPrefix != "app:" {
		t.Errorf("key prefix = %q", cfg.Storage.KeyPrefix)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("does-not-exist"); err == nil {
		t.Fatal("expected error for missing config")
	}
}
