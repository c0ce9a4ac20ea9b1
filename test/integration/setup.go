package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shop-ledger/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
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

// SetupTestDB creates a PostgreSQL test container and connection pool.
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

	createSchema(t, pool)

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

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS customers (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			products JSONB NOT NULL DEFAULT '[]'::jsonb
		);

		CREATE INDEX IF NOT EXISTS idx_customers_created_at ON customers(created_at DESC);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// CleanupDB removes all customer rows.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE customers")
	if err != nil {
		t.Fatalf("failed to clean up database: %v", err)
	}
}

// SeedCustomers inserts test customers with staggered creation times, oldest
// first, and returns their IDs in insertion order.
func SeedCustomers(t *testing.T, pool *pgxpool.Pool, count int) []string {
	t.Helper()

	ctx := context.Background()
	base := time.Now().UTC().Add(-time.Duration(count) * time.Minute)

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("seed-customer-%d", i+1)
		products := []model.Product{
			{
				ID:     fmt.Sprintf("seed-product-%d", i+1),
				Name:   fmt.Sprintf("Seed Product %d", i+1),
				Price:  float64((i + 1) * 10),
				Status: model.StatusUnpaid,
				Image:  model.PlaceholderImageURL,
				Date:   base.Add(time.Duration(i) * time.Minute).Format(time.RFC3339),
			},
		}

		_, err := pool.Exec(ctx,
			"INSERT INTO customers (id, name, created_at, products) VALUES ($1, $2, $3, $4)",
			id,
			fmt.Sprintf("Seed Customer %d", i+1),
			base.Add(time.Duration(i)*time.Minute),
			products,
		)
		if err != nil {
			t.Fatalf("failed to seed customer %s: %v", id, err)
		}
		ids = append(ids, id)
	}

	return ids
}
