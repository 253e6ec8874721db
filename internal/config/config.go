package config

import (
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all runtime settings, loaded from the environment with .env
// file support. Every key has a usable default so a local run works out of
// the box.
type Config struct {
	Env string `mapstructure:"ENV"`

	PGHost     string `mapstructure:"PGHOST"`
	PGPort     int    `mapstructure:"PGPORT"`
	PGUser     string `mapstructure:"PGUSER"`
	PGPassword string `mapstructure:"PGPASSWORD"`
	PGDatabase string `mapstructure:"PGDATABASE"`
	PGSchema   string `mapstructure:"PGSCHEMA"`
	DBMaxConns int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns int32  `mapstructure:"DB_MIN_CONNS"`

	DuckDBPath string `mapstructure:"DUCKDB_PATH"`

	RawDir       string `mapstructure:"RAW_DIR"`
	ProcessedDir string `mapstructure:"PROCESSED_DIR"`
	LogsDir      string `mapstructure:"LOGS_DIR"`

	DoctorsXLSX  string `mapstructure:"DOCTORS_XLSX"`
	ApptsXLSX    string `mapstructure:"APPTS_XLSX"`
	DoctorsSheet string `mapstructure:"DOCTORS_SHEET"`
	ApptsSheet   string `mapstructure:"APPTS_SHEET"`
}

// configKeys lists every environment key so Unmarshal picks them up even when
// only set in the process environment.
var configKeys = []string{
	"ENV",
	"PGHOST", "PGPORT", "PGUSER", "PGPASSWORD", "PGDATABASE", "PGSCHEMA",
	"DB_MAX_CONNS", "DB_MIN_CONNS",
	"DUCKDB_PATH",
	"RAW_DIR", "PROCESSED_DIR", "LOGS_DIR",
	"DOCTORS_XLSX", "APPTS_XLSX", "DOCTORS_SHEET", "APPTS_SHEET",
}

// Load reads configuration from the environment, with an optional .env file
// in the working directory.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("PGHOST", "localhost")
	v.SetDefault("PGPORT", 5432)
	v.SetDefault("PGUSER", "postgres")
	v.SetDefault("PGPASSWORD", "postgres")
	v.SetDefault("PGDATABASE", "postgres")
	v.SetDefault("PGSCHEMA", "healthtech")
	v.SetDefault("DB_MAX_CONNS", 4)
	v.SetDefault("DB_MIN_CONNS", 1)
	v.SetDefault("DUCKDB_PATH", "healthtech.duckdb")
	v.SetDefault("RAW_DIR", filepath.Join("data", "raw"))
	v.SetDefault("PROCESSED_DIR", filepath.Join("data", "processed"))
	v.SetDefault("LOGS_DIR", "logs")
	v.SetDefault("DOCTORS_XLSX", "")
	v.SetDefault("APPTS_XLSX", "")
	v.SetDefault("DOCTORS_SHEET", "doctors")
	v.SetDefault("APPTS_SHEET", "appointments")

	for _, key := range configKeys {
		v.BindEnv(key)
	}

	// Try reading .env, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	// Source files default to well-known names under the raw data directory.
	if cfg.DoctorsXLSX == "" {
		cfg.DoctorsXLSX = filepath.Join(cfg.RawDir, "doctors.xlsx")
	}
	if cfg.ApptsXLSX == "" {
		cfg.ApptsXLSX = filepath.Join(cfg.RawDir, "appointments.xlsx")
	}
	return cfg, nil
}

// IsDev reports whether the pipeline runs in development mode (pretty console
// logging).
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// DSN returns the PostgreSQL connection string for the server backend.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.PGUser, c.PGPassword),
		Host:   fmt.Sprintf("%s:%d", c.PGHost, c.PGPort),
		Path:   c.PGDatabase,
	}
	return u.String()
}
