package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Env              string
	Port             string
	DatabaseDriver   string
	DatabaseURL      string
	JWTSecret        string
	JWTIssuer        string
	TokenTTL         time.Duration
	MediaStoragePath string
	MaxUploadBytes   int64
	CorsOrigins      []string
	LogDir           string
	LogRetentionDays int
	StrictOwnership  bool
}

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

var ErrMissingKey = errors.New("missing required config key")

func defaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("JWT_ISSUER", "fitcoach")
	v.SetDefault("TOKEN_TTL", "72h")
	v.SetDefault("MEDIA_STORAGE_PATH", "storage/media")
	v.SetDefault("MAX_UPLOAD_BYTES", 10<<20)
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("LOG_DIR", "storage/logs")
	v.SetDefault("LOG_RETENTION_DAYS", 7)
	v.SetDefault("STRICT_OWNERSHIP", false)
}

// Load reads the process environment. A .env file, if any, should already
// have been loaded into the environment by the caller.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	defaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Env:              strings.ToLower(strings.TrimSpace(v.GetString("APP_ENV"))),
		Port:             strings.TrimSpace(v.GetString("PORT")),
		DatabaseDriver:   strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
		DatabaseURL:      strings.TrimSpace(v.GetString("DATABASE_URL")),
		JWTSecret:        strings.TrimSpace(v.GetString("JWT_SECRET")),
		JWTIssuer:        strings.TrimSpace(v.GetString("JWT_ISSUER")),
		TokenTTL:         v.GetDuration("TOKEN_TTL"),
		MediaStoragePath: v.GetString("MEDIA_STORAGE_PATH"),
		MaxUploadBytes:   v.GetInt64("MAX_UPLOAD_BYTES"),
		CorsOrigins:      parseCSV(v.GetString("CORS_ORIGINS")),
		LogDir:           v.GetString("LOG_DIR"),
		LogRetentionDays: v.GetInt("LOG_RETENTION_DAYS"),
		StrictOwnership:  v.GetBool("STRICT_OWNERSHIP"),
	}
	if cfg.DatabaseURL == "" {
		return Config{}, missing("DATABASE_URL")
	}
	if cfg.JWTSecret == "" {
		return Config{}, missing("JWT_SECRET")
	}
	switch cfg.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	case "postgres", "postgresql":
		cfg.DatabaseDriver = DriverPostgres
	default:
		return Config{}, errors.New("unsupported DATABASE_DRIVER: " + cfg.DatabaseDriver)
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 72 * time.Hour
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10 << 20
	}
	if cfg.LogRetentionDays <= 0 {
		cfg.LogRetentionDays = 7
	}
	if cfg.LogRetentionDays > 7 {
		cfg.LogRetentionDays = 7
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "prod" || c.Env == "production"
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func missing(key string) error {
	return fmt.Errorf("%w: %s", ErrMissingKey, key)
}

func parseCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		value := strings.TrimSpace(part)
		if value != "" {
			items = append(items, value)
		}
	}
	return items
}
