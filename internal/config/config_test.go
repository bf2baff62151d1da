package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultValues(t *testing.T) {
	os.Clearenv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Storage.Backend != BackendSQLite {
		t.Errorf("Expected STORAGE_BACKEND default 'sqlite', got '%s'", cfg.Storage.Backend)
	}
	if cfg.Storage.Key != "conadmin_chile_data" {
		t.Errorf("Expected STORAGE_KEY default 'conadmin_chile_data', got '%s'", cfg.Storage.Key)
	}
	if cfg.Storage.MaxBytes != 5*1024*1024 {
		t.Errorf("Expected STORAGE_MAX_BYTES default 5 MiB, got %d", cfg.Storage.MaxBytes)
	}
	if cfg.Backup.Interval != 5*time.Minute {
		t.Errorf("Expected BACKUP_INTERVAL default 5m, got %s", cfg.Backup.Interval)
	}
	if cfg.AutosaveInterval != 30*time.Second {
		t.Errorf("Expected AUTOSAVE_INTERVAL default 30s, got %s", cfg.AutosaveInterval)
	}
	if cfg.Backup.Retention() != 365*24*time.Hour {
		t.Errorf("Expected retention of 365 days, got %s", cfg.Backup.Retention())
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Expected DB_PORT default 5432, got %d", cfg.Database.Port)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected LOG_LEVEL default 'info', got '%s'", cfg.Log.Level)
	}
	if cfg.Location().String() != "America/Santiago" {
		t.Errorf("Expected TIMEZONE default 'America/Santiago', got '%s'", cfg.Location())
	}
	if cfg.SeedSampleData {
		t.Error("Expected SEED_SAMPLE_DATA default false")
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	os.Clearenv()
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("STORAGE_MAX_BYTES", "0")
	t.Setenv("BACKUP_INTERVAL", "1m")
	t.Setenv("LOGIN_LATENCY", "0s")
	t.Setenv("SEED_SAMPLE_DATA", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Storage.Backend != BackendRedis {
		t.Errorf("Expected STORAGE_BACKEND 'redis', got '%s'", cfg.Storage.Backend)
	}
	if cfg.Redis.Addr != "redis:6380" || cfg.Redis.DB != 2 {
		t.Errorf("Expected redis at redis:6380 db 2, got %s db %d", cfg.Redis.Addr, cfg.Redis.DB)
	}
	if cfg.Storage.MaxBytes != 0 {
		t.Errorf("Expected unlimited storage, got %d", cfg.Storage.MaxBytes)
	}
	if cfg.Backup.Interval != time.Minute {
		t.Errorf("Expected BACKUP_INTERVAL 1m, got %s", cfg.Backup.Interval)
	}
	if cfg.LoginLatency != 0 {
		t.Errorf("Expected LOGIN_LATENCY 0, got %s", cfg.LoginLatency)
	}
	if !cfg.SeedSampleData {
		t.Error("Expected SEED_SAMPLE_DATA true")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Expected LOG_LEVEL 'debug', got '%s'", cfg.Log.Level)
	}
}

func TestLoad_YAMLOverlay(t *testing.T) {
	os.Clearenv()
	path := filepath.Join(t.TempDir(), "conadmin.yaml")
	content := `
storage:
  backend: postgres
database:
  host: db.internal
  name: edificio
backup:
  interval: 10m
autosave_interval: 1m
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("CONADMIN_CONFIG", path)
	t.Setenv("DB_NAME", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Storage.Backend != BackendPostgres {
		t.Errorf("Expected backend from file 'postgres', got '%s'", cfg.Storage.Backend)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("Expected host from file 'db.internal', got '%s'", cfg.Database.Host)
	}
	if cfg.Database.Name != "from-env" {
		t.Errorf("Expected environment to win over file, got '%s'", cfg.Database.Name)
	}
	if cfg.Backup.Interval != 10*time.Minute {
		t.Errorf("Expected backup interval 10m, got %s", cfg.Backup.Interval)
	}
	if cfg.Storage.Key != "conadmin_chile_data" {
		t.Errorf("Expected unset keys to keep defaults, got '%s'", cfg.Storage.Key)
	}
	want := "host=db.internal port=5432 user=postgres password= dbname=from-env sslmode=disable"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("Expected DSN %q, got %q", want, got)
	}
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	os.Clearenv()
	t.Setenv("CONADMIN_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := Load(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"STORAGE_BACKEND":   "floppy",
		"BACKUP_INTERVAL":   "soon",
		"AUTOSAVE_INTERVAL": "0s",
		"REDIS_DB":          "one",
		"SEED_SAMPLE_DATA":  "maybe",
		"TIMEZONE":          "Mars/Olympus",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			os.Clearenv()
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Errorf("Expected error for %s=%s", key, value)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	if value := getEnv("TEST_VAR", "default"); value != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", value)
	}
	if value := getEnv("NON_EXISTENT_VAR", "default-value"); value != "default-value" {
		t.Errorf("Expected 'default-value', got '%s'", value)
	}
}
