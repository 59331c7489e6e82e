package database

import (
	"context"
	"fmt"
	"log"
)

// schemaStatements creates the tables the service needs if they do not exist
// yet. Column sets follow the clinic data model: clients own checkups and
// files, booking requests and appointments stand alone.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id            TEXT PRIMARY KEY,
		full_name     TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		phone         TEXT NOT NULL,
		date_of_birth TEXT,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS checkups (
		id                  TEXT PRIMARY KEY,
		client_id           TEXT NOT NULL REFERENCES clients(id),
		date                TEXT NOT NULL,
		weight              NUMERIC(5,2) NOT NULL,
		height              INTEGER NOT NULL,
		waist_circumference INTEGER,
		blood_pressure      TEXT,
		blood_sugar         NUMERIC(5,1),
		cholesterol         NUMERIC(5,1),
		bmi                 NUMERIC(4,1) NOT NULL,
		notes               TEXT,
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS booking_requests (
		id               TEXT PRIMARY KEY,
		full_name        TEXT NOT NULL,
		email            TEXT NOT NULL,
		phone            TEXT NOT NULL,
		appointment_date TEXT NOT NULL,
		appointment_time TEXT NOT NULL,
		health_goals     TEXT,
		status           TEXT NOT NULL DEFAULT 'pending',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS appointments (
		id               TEXT PRIMARY KEY,
		client_name      TEXT NOT NULL,
		email            TEXT NOT NULL,
		phone            TEXT NOT NULL,
		appointment_date TEXT NOT NULL,
		appointment_time TEXT NOT NULL,
		payment_status   TEXT NOT NULL DEFAULT 'pending',
		payment_id       TEXT,
		notes            TEXT,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS client_files (
		id          TEXT PRIMARY KEY,
		client_id   TEXT NOT NULL REFERENCES clients(id),
		file_name   TEXT NOT NULL,
		file_url    TEXT NOT NULL,
		file_type   TEXT NOT NULL,
		file_size   INTEGER NOT NULL,
		uploaded_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// EnsureSchema runs the idempotent DDL at startup.
func EnsureSchema(ctx context.Context, db DBPool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			log.Printf("Error applying schema statement: %v", err)
			return fmt.Errorf("failed to ensure database schema: %w", err)
		}
	}
	log.Println("Database schema ensured")
	return nil
}
