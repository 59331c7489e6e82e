package database

import (
	"context" // For managing request context and cancellation signals
	"fmt"     // For string formatting
	"log"     // For logging messages
	"time"    // For connection pool timing settings

	"nutricare/backend/config" // Import the local config package

	"github.com/jackc/pgx/v5"         // Base pgx package
	"github.com/jackc/pgx/v5/pgconn"  // For pgconn.CommandTag
	"github.com/jackc/pgx/v5/pgxpool" // PostgreSQL driver and connection pool
)

// DBPool defines the interface for database operations we need.
// This allows mocking for tests. It includes methods from pgxpool.Pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
	Begin(ctx context.Context) (pgx.Tx, error) // Needed for cascade deletes
}

// Connect establishes the PostgreSQL connection pool from configuration
// and verifies it with a ping.
func Connect(cfg *config.Config) (DBPool, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not configured")
	}

	log.Println("Attempting to connect to database...")

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		log.Printf("Error parsing database connection string: %v\n", err)
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	// Pool settings sized for a single-admin clinic workload.
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30
	poolConfig.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		log.Printf("Error connecting to the database: %v\n", err)
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Printf("Error pinging database: %v\n", err)
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	log.Println("Database connection pool established successfully!")
	return pool, nil
}
