package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/adk-labs/platform/internal/errs"
	"github.com/adk-labs/platform/utils/schemaname"
)

var (
	ErrConfigurationValuesError = errors.New("configuration value error")
	ErrEmptyDatabaseHost        = errors.New("database host must be specified")
	ErrEmptyDatabaseName        = errors.New("database name must be specified")
	ErrEmptyJWTSecret           = errors.New("auth JWT secret must be specified")
	ErrEmptyTokenPepper         = errors.New("auth token pepper must be specified")
	ErrNonPositiveTokenTTL      = errors.New("token TTLs must be positive")
	ErrNonPositiveLockout       = errors.New("lockout threshold and window must be positive")
	ErrInvalidSchemaPrefix      = errors.New("schema prefix must be a safe SQL identifier prefix")
)

// Config holds all application configuration parameters
type Config struct {
	Database         Database     `yaml:"database"`
	DatabaseReplicas []Database   `yaml:"databaseReplicas"`
	HTTP             HTTPServer   `yaml:"http"`
	Auth             Auth         `yaml:"auth"`
	Provisioning     Provisioning `yaml:"provisioning"`
	Migrations       Migrations   `yaml:"migrations"`
	LogLevel         string       `yaml:"logLevel"`
}

func (c *Config) Validate() error {
	for _, validate := range []func() error{
		c.Database.Validate,
		c.Auth.Validate,
		c.Provisioning.Validate,
	} {
		err := validate()
		if err != nil {
			return errs.Wrap(ErrConfigurationValuesError, err)
		}
	}

	return nil
}

// Database holds connection parameters for one PostgreSQL endpoint.
type Database struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     string `yaml:"port" env:"DB_PORT"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	Name     string `yaml:"name" env:"DB_NAME"`
	SSLMode  string `yaml:"sslMode" env:"DB_SSLMODE"`
}

func (d *Database) Validate() error {
	if d.Host == "" {
		return ErrEmptyDatabaseHost
	}

	if d.Name == "" {
		return ErrEmptyDatabaseName
	}

	return nil
}

// DSN renders the connection string consumed by the postgres dialector
// and by goose.
func (d *Database) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		d.Host, d.User, d.Password, d.Name, d.Port, sslMode)
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// Auth holds the credential lifecycle parameters.
type Auth struct {
	// JWTSecret signs access tokens (HS256).
	JWTSecret string `yaml:"jwtSecret" env:"AUTH_JWT_SECRET"`

	// TokenPepper keys the HMAC under which refresh and reset token
	// values are persisted. Rows never hold the raw value.
	TokenPepper string `yaml:"tokenPepper" env:"AUTH_TOKEN_PEPPER"`

	AccessTokenTTL  time.Duration `yaml:"accessTokenTTL"`
	RefreshTokenTTL time.Duration `yaml:"refreshTokenTTL"`
	ResetTokenTTL   time.Duration `yaml:"resetTokenTTL"`

	LockoutThreshold int           `yaml:"lockoutThreshold"`
	LockoutWindow    time.Duration `yaml:"lockoutWindow"`
}

func (a *Auth) Validate() error {
	if a.JWTSecret == "" {
		return ErrEmptyJWTSecret
	}

	if a.TokenPepper == "" {
		return ErrEmptyTokenPepper
	}

	if a.AccessTokenTTL <= 0 || a.RefreshTokenTTL <= 0 || a.ResetTokenTTL <= 0 {
		return ErrNonPositiveTokenTTL
	}

	if a.LockoutThreshold <= 0 || a.LockoutWindow <= 0 {
		return ErrNonPositiveLockout
	}

	return nil
}

// Provisioning holds the tenant schema derivation parameters.
type Provisioning struct {
	SchemaPrefix string `yaml:"schemaPrefix"`
}

func (p *Provisioning) Validate() error {
	if p.SchemaPrefix == "" {
		p.SchemaPrefix = schemaname.DefaultPrefix
	}

	err := schemaname.Validate(p.SchemaPrefix + "probe")
	if err != nil {
		return errs.Wrap(ErrInvalidSchemaPrefix, err)
	}

	return nil
}

type Migrations struct {
	SharedDir string `yaml:"sharedDir"`
	TenantDir string `yaml:"tenantDir"`
}
