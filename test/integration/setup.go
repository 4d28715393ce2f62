package integration

import (
	"context"
	"testing"
	"time"

	"fastnic/internal/database"
	"fastnic/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, a connection pool and
// the application schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	if err := database.EnsureSchema(ctx, pool, zerolog.Nop()); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB truncates all application tables between test cases.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	if _, err := pool.Exec(ctx, `TRUNCATE ingredients, recipes, products CASCADE`); err != nil {
		t.Fatalf("failed to clean up database: %v", err)
	}
}

// SeedProducts inserts a fixed set of five products.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	products := []model.Product{
		{ID: "P001", Name: "Spaghetti", Category: "pantry"},
		{ID: "P002", Name: "Passata", Category: "pantry"},
		{ID: "P003", Name: "Parmigiano", Category: "dairy"},
		{ID: "P004", Name: "Eggs", Category: "dairy"},
		{ID: "P005", Name: "Guanciale", Category: "meat"},
	}

	ctx := context.Background()
	for _, p := range products {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, category, image_uri, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, NOW(), NOW())`,
			p.ID, p.Name, p.Category, p.ImageURI)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.ID, err)
		}
	}
}
