package containers

import (
	"context"
	"log"
	"path/filepath"
	"runtime"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	image      = "postgres:16.3-alpine"
	dbName     = "playoff_picks"
	dbUser     = "picksuser"
	dbPassword = "secret"

	startupTimeout = 30 * time.Second
)

// DBContainer is a throwaway Postgres loaded with schema/schema.sql.
type DBContainer struct {
	container *postgres.PostgresContainer
}

func NewDBContainer() *DBContainer {
	ctx, cancel := context.WithTimeout(context.Background(), 2*startupTimeout)
	defer cancel()

	container, err := postgres.Run(ctx, image,
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		postgres.WithInitScripts(schemaPath()),
		testcontainers.WithWaitStrategy(
			// postgres restarts once after running the init scripts
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(startupTimeout)),
	)
	if err != nil {
		log.Fatalf("error starting postgres container: %v", err)
	}

	return &DBContainer{container: container}
}

// schemaPath finds the schema relative to this file so tests in any package
// directory load the same file.
func schemaPath() string {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		return filepath.Join("..", "schema", "schema.sql")
	}
	return filepath.Join(filepath.Dir(file), "..", "schema", "schema.sql")
}

func (c *DBContainer) Shutdown() {
	if err := c.container.Terminate(context.Background()); err != nil {
		log.Fatalf("error terminating postgres container: %v", err)
	}
}

func (c *DBContainer) ConnectionString() string {
	// the container is not configured for TLS
	connStr, err := c.container.ConnectionString(context.Background(), "sslmode=disable")
	if err != nil {
		log.Fatalf("error getting postgres connection string: %v", err)
	}
	return connStr
}
