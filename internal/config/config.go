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
	Redis    RedisConfig
	Artifact ArtifactConfig
	Auth     AuthConfig
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

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	TTL      time.Duration
}

// ArtifactConfig points at the object store holding trained model
// artifacts and uploaded datasets.
type ArtifactConfig struct {
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	UseSSL       bool
	FetchTimeout time.Duration
}

type AuthConfig struct {
	AdminUsername     string
	AdminPasswordHash string
	TokenSecret       string
	TokenExpiresIn    time.Duration
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
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),
	}

	cfg.Redis = RedisConfig{
		Host:     opt("REDIS_HOST"),
		Port:     opt("REDIS_PORT"),
		Password: opt("REDIS_PASSWORD"),
		TTL:      durationSeconds(opt("REDIS_TTL"), 600*time.Second),
	}

	cfg.Artifact = ArtifactConfig{
		Endpoint:     req("ARTIFACT_ENDPOINT"),
		AccessKey:    opt("ARTIFACT_ACCESS_KEY"),
		SecretKey:    opt("ARTIFACT_SECRET_KEY"),
		Bucket:       req("ARTIFACT_BUCKET"),
		UseSSL:       parseBool(opt("ARTIFACT_USE_SSL")),
		FetchTimeout: durationSeconds(opt("ARTIFACT_FETCH_TIMEOUT"), 5*time.Second),
	}

	cfg.Auth = AuthConfig{
		AdminUsername:     req("ADMIN_USERNAME"),
		AdminPasswordHash: req("ADMIN_PASSWORD_HASH"),
		TokenSecret:       req("JWT_SECRET"),
		TokenExpiresIn:    durationSeconds(opt("JWT_EXPIRES_IN"), 3600*time.Second),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func durationSeconds(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return time.Duration(v) * time.Second
}

func parseBool(raw string) bool {
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return v
}
