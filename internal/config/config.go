package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Data     DataConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

type AuthConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration

	DefaultAdminUsername string
	DefaultAdminPassword string
}

type DataConfig struct {
	// DatasetFile is the precomputed clustering results workbook.
	DatasetFile string
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     opt("APP_NAME", "tna-analytics"),
		Environment: opt("APP_ENV", "development"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST", "localhost"),
		DBPort:     opt("DB_PORT", "5432"),
		DBName:     opt("DB_NAME", ""),
		DBUser:     opt("DB_USER", ""),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE", "disable"),
	}

	cfg.Auth = AuthConfig{
		AccessSecret:         req("JWT_ACCESS_SECRET"),
		RefreshSecret:        req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:      durationFromEnv("JWT_ACCESS_TTL_MINUTES", 60*time.Minute),
		RefreshExpiresIn:     durationFromEnv("JWT_REFRESH_TTL_MINUTES", 7*24*time.Hour),
		DefaultAdminUsername: opt("DEFAULT_ADMIN_USERNAME", "administrator"),
		DefaultAdminPassword: opt("DEFAULT_ADMIN_PASSWORD", "admin123"),
	}

	cfg.Data = DataConfig{
		DatasetFile: opt("DATASET_FILE", "clustering_results.xlsx"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return fallback
	}
	return time.Duration(minutes) * time.Minute
}
