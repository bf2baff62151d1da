package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config is the conadmin process configuration.
// Defaults, then the YAML file named by CONADMIN_CONFIG, then environment.
type Config struct {
	Storage  StorageConfig  `yaml:"storage"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	Backup   BackupConfig   `yaml:"backup"`

	AutosaveInterval time.Duration `yaml:"autosave_interval"`
	LoginLatency     time.Duration `yaml:"login_latency"`
	SeedSampleData   bool          `yaml:"seed_sample_data"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	Timezone string `yaml:"timezone"`
	Locale   string `yaml:"locale"`
}

type StorageConfig struct {
	Backend    string `yaml:"backend"`
	Key        string `yaml:"key"`
	BackupKey  string `yaml:"backup_key"`
	AuthKey    string `yaml:"auth_key"`
	MaxBytes   int    `yaml:"max_bytes"` // 0 = unlimited
	SQLitePath string `yaml:"sqlite_path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN is the lib/pq connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type BackupConfig struct {
	Interval      time.Duration `yaml:"interval"`
	RetentionDays int           `yaml:"retention_days"`
}

// Retention is how long completed maintenance survives a quota cleanup.
func (c *BackupConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	cfg := &Config{
		Storage: StorageConfig{
			Backend:    BackendSQLite,
			Key:        "conadmin_chile_data",
			BackupKey:  "conadmin_backup",
			AuthKey:    "conadmin_auth",
			MaxBytes:   5 * 1024 * 1024,
			SQLitePath: "conadmin.db",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			Name:    "conadmin",
			SSLMode: "disable",
		},
		Backup: BackupConfig{
			Interval:      5 * time.Minute,
			RetentionDays: 365,
		},
		AutosaveInterval: 30 * time.Second,
		LoginLatency:     time.Second,
		Timezone:         "America/Santiago",
		Locale:           "es-CL",
	}
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	return cfg
}

// Load builds the configuration and validates it.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("CONADMIN_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile overlays a YAML file; a missing file is not an error.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	c.Storage.Backend = getEnv("STORAGE_BACKEND", c.Storage.Backend)
	c.Storage.Key = getEnv("STORAGE_KEY", c.Storage.Key)
	c.Storage.BackupKey = getEnv("BACKUP_KEY", c.Storage.BackupKey)
	c.Storage.AuthKey = getEnv("AUTH_KEY", c.Storage.AuthKey)
	c.Storage.SQLitePath = getEnv("SQLITE_PATH", c.Storage.SQLitePath)

	c.Redis.Addr = getEnv("REDIS_ADDR", c.Redis.Addr)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)

	c.Database.Host = getEnv("DB_HOST", c.Database.Host)
	c.Database.User = getEnv("DB_USER", c.Database.User)
	c.Database.Password = getEnv("DB_PASSWORD", c.Database.Password)
	c.Database.Name = getEnv("DB_NAME", c.Database.Name)
	c.Database.SSLMode = getEnv("DB_SSLMODE", c.Database.SSLMode)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Timezone = getEnv("TIMEZONE", c.Timezone)
	c.Locale = getEnv("LOCALE", c.Locale)

	ints := []struct {
		key string
		dst *int
	}{
		{"STORAGE_MAX_BYTES", &c.Storage.MaxBytes},
		{"REDIS_DB", &c.Redis.DB},
		{"DB_PORT", &c.Database.Port},
		{"CLEANUP_RETENTION_DAYS", &c.Backup.RetentionDays},
	}
	for _, e := range ints {
		if v := os.Getenv(e.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", e.key, v, err)
			}
			*e.dst = n
		}
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"BACKUP_INTERVAL", &c.Backup.Interval},
		{"AUTOSAVE_INTERVAL", &c.AutosaveInterval},
		{"LOGIN_LATENCY", &c.LoginLatency},
	}
	for _, e := range durations {
		if v := os.Getenv(e.key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("invalid %s %q: %w", e.key, v, err)
			}
			*e.dst = d
		}
	}

	if v := os.Getenv("SEED_SAMPLE_DATA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SEED_SAMPLE_DATA %q: %w", v, err)
		}
		c.SeedSampleData = b
	}
	return nil
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendRedis, BackendSQLite, BackendPostgres:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Storage.Key == "" || c.Storage.BackupKey == "" || c.Storage.AuthKey == "" {
		return errors.New("storage keys must not be empty")
	}
	if c.Storage.MaxBytes < 0 {
		return fmt.Errorf("storage max bytes must not be negative, got %d", c.Storage.MaxBytes)
	}
	if c.Backup.Interval <= 0 {
		return fmt.Errorf("backup interval must be positive, got %s", c.Backup.Interval)
	}
	if c.AutosaveInterval <= 0 {
		return fmt.Errorf("autosave interval must be positive, got %s", c.AutosaveInterval)
	}
	if c.LoginLatency < 0 {
		return fmt.Errorf("login latency must not be negative, got %s", c.LoginLatency)
	}
	if c.Backup.RetentionDays <= 0 {
		return fmt.Errorf("cleanup retention must be positive, got %d days", c.Backup.RetentionDays)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return nil
}

// Location returns the display time zone, UTC if it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
