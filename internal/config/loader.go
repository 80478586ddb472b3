package config

import (
	"os"
	"reflect"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "config.yaml"
	EnvConfigPath     = "ADK_CONFIG"
)

var defaultConfig = Config{
	HTTP: HTTPServer{
		Address:         ":8080",
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	},
	Auth: Auth{
		AccessTokenTTL:   15 * time.Minute,
		RefreshTokenTTL:  7 * 24 * time.Hour,
		ResetTokenTTL:    time.Hour,
		LockoutThreshold: 5,
		LockoutWindow:    15 * time.Minute,
	},
	Migrations: Migrations{
		SharedDir: "migrations/shared",
		TenantDir: "migrations/tenant",
	},
	LogLevel: "info",
}

// LoadConfig reads the yaml config file, then applies environment
// overrides for the fields tagged with `env`. A .env file is honoured
// when present so local runs need no exported variables.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}

	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultConfig

	raw, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, oops.Wrapf(err, "failed to read config file %s", path)
	}

	if err == nil {
		err = yaml.Unmarshal(raw, &cfg)
		if err != nil {
			return nil, oops.Wrapf(err, "failed to parse config file %s", path)
		}
	}

	applyEnvOverrides(&cfg.Database)
	applyEnvOverrides(&cfg.HTTP)
	applyEnvOverrides(&cfg.Auth)

	err = cfg.Validate()
	if err != nil {
		return nil, oops.Wrapf(err, "failed to validate config")
	}

	return &cfg, nil
}

// applyEnvOverrides sets string fields from the environment variable
// named in their `env` tag, when that variable is present.
func applyEnvOverrides(section any) {
	v := reflect.ValueOf(section).Elem()
	t := v.Type()

	for i := range t.NumField() {
		envName := t.Field(i).Tag.Get("env")
		if envName == "" || v.Field(i).Kind() != reflect.String {
			continue
		}

		if value, ok := os.LookupEnv(envName); ok {
			v.Field(i).SetString(value)
		}
	}
}
