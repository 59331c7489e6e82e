package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5" // For pgx errors

	"nutricare/backend/cache"
	"nutricare/backend/database"
	"nutricare/backend/models"
	"nutricare/backend/storage"
)

// ClientService handles business logic for the client aggregate, including
// the cascade that removes a client's checkups and files with the client.
type ClientService struct {
	validator *validator.Validate
	db        database.DBPool
	cache     cache.Cache       // Optional; nil disables caching
	store     storage.FileStore // Optional; used for blob cleanup on cascade delete
}

// NewClientService creates a new ClientService instance.
func NewClientService(db database.DBPool, c cache.Cache, store storage.FileStore) *ClientService {
	return &ClientService{
		validator: validator.New(),
		db:        db,
		cache:     c,
		store:     store,
	}
}

const clientColumns = "id, full_name, email, phone, date_of_birth, created_at"

// ListClients returns clients, optionally filtered by a case-insensitive
// substring match over full name and email. The unfiltered list is served
// from cache when possible; mutations invalidate it.
func (s *ClientService) ListClients(ctx context.Context, search string) ([]models.Client, error) {
	if search == "" && s.cache != nil {
		if cached, err := s.cache.Get(ctx, cache.ClientListKey); err == nil {
			var clients []models.Client
			if err := json.Unmarshal([]byte(cached), &clients); err == nil {
				return clients, nil
			}
			log.Printf("Discarding malformed cache entry for %s", cache.ClientListKey)
		}
	}

	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC`
	args := []any{}
	if search != "" {
		query = `SELECT ` + clientColumns + ` FROM clients
			WHERE full_name ILIKE $1 OR email ILIKE $1
			ORDER BY created_at DESC`
		args = append(args, "%"+search+"%")
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		log.Printf("Error querying clients: %v", err)
		return nil, fmt.Errorf("database error fetching clients: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.FullName, &c.Email, &c.Phone, &c.DateOfBirth, &c.CreatedAt); err != nil {
			log.Printf("Error scanning client row: %v", err)
			return nil, fmt.Errorf("error processing client data: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error after iterating client rows: %v", err)
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	if search == "" && s.cache != nil {
		if data, err := json.Marshal(clients); err == nil {
			if err := s.cache.Set(ctx, cache.ClientListKey, string(data), cache.DefaultTTL); err != nil {
				log.Printf("Failed to cache client list: %v", err)
			}
		}
	}

	return clients, nil
}

// CreateClient validates the request and inserts a new client.
// A duplicate email is rejected with ErrEmailExists and leaves the existing
// client unmodified.
func (s *ClientService) CreateClient(ctx context.Context, req models.CreateClientRequest) (*models.Client, error) {
	if err := s.validator.Struct(req); err != nil {
		log.Printf("Validation error creating client %s: %v", req.Email, err)
		return nil, fmt.Errorf("invalid client data: %w", err)
	}

	var exists bool
	checkQuery := `SELECT EXISTS(SELECT 1 FROM clients WHERE email = $1)`
	if err := s.db.QueryRow(ctx, checkQuery, req.Email).Scan(&exists); err != nil {
		log.Printf("Error checking client existence for email %s: %v", req.Email, err)
		return nil, fmt.Errorf("database error checking client existence: %w", err)
	}
	if exists {
		log.Printf("Create client rejected: email '%s' already exists", req.Email)
		return nil, ErrEmailExists
	}

	client := &models.Client{
		ID:          uuid.NewString(),
		FullName:    req.FullName,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: req.DateOfBirth,
	}

	insertQuery := `
		INSERT INTO clients (id, full_name, email, phone, date_of_birth)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := s.db.QueryRow(ctx, insertQuery,
		client.ID, client.FullName, client.Email, client.Phone, client.DateOfBirth,
	).Scan(&client.CreatedAt)
	if err != nil {
		log.Printf("Error inserting client %s: %v", req.Email, err)
		return nil, fmt.Errorf("failed to create client in database: %w", err)
	}

	s.invalidate(ctx, cache.ClientListKey)
	log.Printf("Client created successfully: %s (ID: %s)", client.Email, client.ID)
	return client, nil
}

// GetClient fetches one client by id.
func (s *ClientService) GetClient(ctx context.Context, id string) (*models.Client, error) {
	var c models.Client
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.FullName, &c.Email, &c.Phone, &c.DateOfBirth, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Client not found: ID %s", id)
			return nil, ErrNotFound
		}
		log.Printf("Error fetching client %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching client: %w", err)
	}
	return &c, nil
}

// UpdateClient applies a partial update; only supplied fields change.
// Changing the email to one held by another client fails with ErrEmailExists.
func (s *ClientService) UpdateClient(ctx context.Context, id string, req models.UpdateClientRequest) (*models.Client, error) {
	if err := s.validator.Struct(req); err != nil {
		log.Printf("Validation error updating client %s: %v", id, err)
		return nil, fmt.Errorf("invalid client data: %w", err)
	}

	client, err := s.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != client.Email {
		var exists bool
		checkQuery := `SELECT EXISTS(SELECT 1 FROM clients WHERE email = $1 AND id <> $2)`
		if err := s.db.QueryRow(ctx, checkQuery, *req.Email, id).Scan(&exists); err != nil {
			log.Printf("Error checking email uniqueness for client %s: %v", id, err)
			return nil, fmt.Errorf("database error checking client existence: %w", err)
		}
		if exists {
			log.Printf("Update client %s rejected: email '%s' already exists", id, *req.Email)
			return nil, ErrEmailExists
		}
		client.Email = *req.Email
	}
	if req.FullName != nil {
		client.FullName = *req.FullName
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.DateOfBirth != nil {
		client.DateOfBirth = req.DateOfBirth
	}

	updateQuery := `
		UPDATE clients
		SET full_name = $1, email = $2, phone = $3, date_of_birth = $4
		WHERE id = $5
	`
	if _, err := s.db.Exec(ctx, updateQuery,
		client.FullName, client.Email, client.Phone, client.DateOfBirth, id,
	); err != nil {
		log.Printf("Error updating client %s: %v", id, err)
		return nil, fmt.Errorf("failed to update client in database: %w", err)
	}

	s.invalidate(ctx, cache.ClientListKey)
	log.Printf("Client updated successfully: ID %s", id)
	return client, nil
}

// DeleteClient removes a client and cascades to its checkups and files in a
// single transaction. Blob removal happens after commit and is best-effort;
// an orphaned blob is harmless, a dangling row is not.
func (s *ClientService) DeleteClient(ctx context.Context, id string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		log.Printf("Error starting transaction for deleting client %s: %v", id, err)
		return fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Collect blob URLs before the rows disappear.
	fileURLs := []string{}
	rows, err := tx.Query(ctx, `SELECT file_url FROM client_files WHERE client_id = $1`, id)
	if err != nil {
		log.Printf("Error querying files for client %s: %v", id, err)
		return fmt.Errorf("database error fetching client files: %w", err)
	}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			rows.Close()
			return fmt.Errorf("error processing client file data: %w", err)
		}
		fileURLs = append(fileURLs, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("database iteration error: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM checkups WHERE client_id = $1`, id); err != nil {
		log.Printf("Error deleting checkups for client %s: %v", id, err)
		return fmt.Errorf("failed to delete client checkups: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM client_files WHERE client_id = $1`, id); err != nil {
		log.Printf("Error deleting file records for client %s: %v", id, err)
		return fmt.Errorf("failed to delete client files: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting client %s: %v", id, err)
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Printf("Delete client: ID %s not found", id)
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		log.Printf("Error committing client delete for %s: %v", id, err)
		return fmt.Errorf("failed to commit client delete: %w", err)
	}

	if s.store != nil {
		for _, u := range fileURLs {
			if err := s.store.Remove(u); err != nil {
				log.Printf("Failed to remove blob %s for deleted client %s: %v", u, id, err)
			}
		}
	}

	s.invalidate(ctx, cache.ClientListKey, cache.ClientCheckupsKey(id))
	log.Printf("Client deleted successfully: ID %s", id)
	return nil
}

// invalidate drops cache keys after a mutation, logging but not failing on
// cache errors.
func (s *ClientService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("Cache invalidation failed for %v: %v", keys, err)
	}
}
