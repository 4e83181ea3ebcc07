package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear anything the environment might carry in.
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "DATABASE_URL", "DB_URL",
		"CLASSIFY_THRESHOLD", "CLASSIFY_SAMPLE_SIZE", "DATA_DIR",
		"LOG_LEVEL", "LOG_FORMAT", "REQUIRE_API_KEY", "API_KEYS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Server.Addr() = %q, want 0.0.0.0:8080", cfg.Server.Addr())
	}
	if cfg.Database.Enabled() {
		t.Error("Database.Enabled() = true without a URL, want false")
	}
	if cfg.Classify.Threshold != 0.5 {
		t.Errorf("Classify.Threshold = %g, want 0.5", cfg.Classify.Threshold)
	}
	if cfg.Classify.SampleSize != 20 {
		t.Errorf("Classify.SampleSize = %d, want 20", cfg.Classify.SampleSize)
	}
	if cfg.Data.Dir != "data" {
		t.Errorf("Data.Dir = %q, want data", cfg.Data.Dir)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %q/%q, want info/text", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CLASSIFY_THRESHOLD", "0.75")
	t.Setenv("CLASSIFY_SAMPLE_SIZE", "50")
	t.Setenv("DATA_DIR", "/srv/uploads")
	t.Setenv("API_KEYS", "key-one, key-two")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Classify.Threshold != 0.75 {
		t.Errorf("Classify.Threshold = %g, want 0.75", cfg.Classify.Threshold)
	}
	if cfg.Classify.SampleSize != 50 {
		t.Errorf("Classify.SampleSize = %d, want 50", cfg.Classify.SampleSize)
	}
	if cfg.Data.Dir != "/srv/uploads" {
		t.Errorf("Data.Dir = %q, want /srv/uploads", cfg.Data.Dir)
	}
	if len(cfg.Security.APIKeys) != 2 || cfg.Security.APIKeys[1] != "key-two" {
		t.Errorf("Security.APIKeys = %v, want trimmed two-element list", cfg.Security.APIKeys)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
}

func TestLoad_AlternateDatabaseVar(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "postgres://localhost:5432/colsense")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Database.Enabled() {
		t.Error("Database.Enabled() = false, DB_URL alternate must be honored")
	}
}

func TestLoad_InvalidThreshold(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"zero", "0"},
		{"one", "1"},
		{"negative", "-0.5"},
		{"not a number", "high"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CLASSIFY_THRESHOLD", tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with CLASSIFY_THRESHOLD=%q: expected error", tt.value)
			}
		})
	}
}

func TestLoad_APIKeyRequiredWithoutKeys(t *testing.T) {
	t.Setenv("REQUIRE_API_KEY", "true")
	t.Setenv("API_KEYS", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error when auth is required without keys")
	}
	if !strings.Contains(err.Error(), "API_KEYS") {
		t.Errorf("error = %v, want mention of API_KEYS", err)
	}
}

func TestValidate_DatabasePoolOnlyWhenEnabled(t *testing.T) {
	t.Setenv("DB_MAX_CONNS", "0")

	// Pool limits are ignored without a database URL.
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "")
	if _, err := Load(); err != nil {
		t.Errorf("Load() error = %v, pool settings must not apply without a URL", err)
	}

	t.Setenv("DATABASE_URL", "postgres://localhost:5432/colsense")
	if _, err := Load(); err == nil {
		t.Error("Load() expected error for DB_MAX_CONNS=0 with database enabled")
	}
}
