package testutils

import (
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/adk-labs/platform/internal/config"
)

const postgresContainer = "testcontainers-postgresql-shared"

// StartPostgres brings up (or reuses) the shared PostgreSQL container
// and points cfg at it.
func StartPostgres(
	tb testing.TB,
	cfg *config.Database,
	opts ...testcontainers.ContainerCustomizer,
) {
	tb.Helper()

	options := append([]testcontainers.ContainerCustomizer{
		postgres.WithDatabase(cfg.Name),
		postgres.WithUsername(cfg.User),
		postgres.WithPassword(cfg.Password),
		postgres.BasicWaitStrategies(),
		testcontainers.WithStartupCommand(testcontainers.NewRawCommand([]string{
			"postgres",
			"-c", "max_connections=1000",
		})),
		testcontainers.WithReuseByName(postgresContainer),
	}, opts...)

	service, err := postgres.Run(tb.Context(),
		"postgres:16-alpine",
		options...,
	)
	assert.NoError(tb, err)

	port, err := service.MappedPort(tb.Context(), nat.Port("5432"))
	assert.NoError(tb, err)

	host, err := service.Host(tb.Context())
	assert.NoError(tb, err)

	cfg.Host = host
	cfg.Port = port.Port()
}
