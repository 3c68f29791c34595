package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Store drivers understood by store.Open.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverRedis    = "redis"
)

const defaultWelcome = "Welcome to the catalog service! See /status for service health."

type Config struct {
	ServiceName       string   `env:"SERVICE_NAME"`
	HTTPListenAddr    string   `env:"HTTP_LISTEN_ADDR" validate:"required"`
	MetricsListenAddr string   `env:"METRICS_LISTEN_ADDR"`
	LogLevel          string   `env:"LOG_LEVEL"`
	CORSOrigins       []string `env:"CORS_ORIGINS"`
	StoreDriver       string   `env:"STORE_DRIVER" validate:"required,oneof=memory postgres mysql redis"`
	DatabaseURL       string   `env:"DATABASE_URL" validate:"required_if=StoreDriver postgres"`
	MySQLDSN          string   `env:"MYSQL_DSN" validate:"required_if=StoreDriver mysql"`
	RedisURL          string   `env:"REDIS_URL" validate:"required_if=StoreDriver redis"`
	// SeedFile points at a YAML product fixture applied on startup when the
	// store is empty.
	SeedFile       string `env:"SEED_FILE"`
	WelcomeMessage string `env:"WELCOME_MESSAGE"`
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	origins := getEnv("CORS_ORIGINS", "http://localhost:3000")
	var corsList []string
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			corsList = append(corsList, trimmed)
		}
	}

	cfg := &Config{
		ServiceName:       getEnv("SERVICE_NAME", "catalog-api"),
		HTTPListenAddr:    getEnv("HTTP_LISTEN_ADDR", ":8080"),
		MetricsListenAddr: getEnv("METRICS_LISTEN_ADDR", ""),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       corsList,
		StoreDriver:       strings.ToLower(getEnv("STORE_DRIVER", DriverMemory)),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		MySQLDSN:          getEnv("MYSQL_DSN", ""),
		RedisURL:          getEnv("REDIS_URL", ""),
		SeedFile:          getEnv("SEED_FILE", ""),
		WelcomeMessage:    getEnv("WELCOME_MESSAGE", defaultWelcome),
	}

	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("env"); name != "" {
			return name
		}
		return f.Name
	})
	return v
}

// Validate checks that the settings needed by the selected store driver are present.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	var missing, invalid []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_if":
			missing = append(missing, fe.Field())
		default:
			invalid = append(invalid, fmt.Sprintf("%s=%q", fe.Field(), fe.Value()))
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(invalid, ", "))
	}
	return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
