package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nutricare/backend/cache"
	"nutricare/backend/database"
	"nutricare/backend/models"
)

// CheckupService handles business logic for checkups. The BMI stored on a
// checkup is always derived from its current weight and height through
// models.CalculateBMI; it is recomputed on every create and on any update
// that touches either input.
type CheckupService struct {
	validator *validator.Validate
	db        database.DBPool
	cache     cache.Cache // Optional; nil disables caching
}

// NewCheckupService creates a new CheckupService instance.
func NewCheckupService(db database.DBPool, c cache.Cache) *CheckupService {
	return &CheckupService{
		validator: validator.New(),
		db:        db,
		cache:     c,
	}
}

const checkupColumns = "id, client_id, date, weight, height, waist_circumference, blood_pressure, blood_sugar, cholesterol, bmi, notes, created_at"

func scanCheckup(row pgx.Row, ch *models.Checkup) error {
	return row.Scan(
		&ch.ID, &ch.ClientID, &ch.Date, &ch.Weight, &ch.Height,
		&ch.WaistCircumference, &ch.BloodPressure, &ch.BloodSugar,
		&ch.Cholesterol, &ch.BMI, &ch.Notes, &ch.CreatedAt,
	)
}

// ListCheckups returns a client's checkup history, newest first, served from
// cache when possible.
func (s *CheckupService) ListCheckups(ctx context.Context, clientID string) ([]models.Checkup, error) {
	key := cache.ClientCheckupsKey(clientID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			var checkups []models.Checkup
			if err := json.Unmarshal([]byte(cached), &checkups); err == nil {
				return checkups, nil
			}
			log.Printf("Discarding malformed cache entry for %s", key)
		}
	}

	query := `SELECT ` + checkupColumns + ` FROM checkups
		WHERE client_id = $1
		ORDER BY date DESC, created_at DESC`
	rows, err := s.db.Query(ctx, query, clientID)
	if err != nil {
		log.Printf("Error querying checkups for client %s: %v", clientID, err)
		return nil, fmt.Errorf("database error fetching checkups: %w", err)
	}
	defer rows.Close()

	checkups := []models.Checkup{}
	for rows.Next() {
		var ch models.Checkup
		if err := scanCheckup(rows, &ch); err != nil {
			log.Printf("Error scanning checkup row: %v", err)
			return nil, fmt.Errorf("error processing checkup data: %w", err)
		}
		checkups = append(checkups, ch)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error after iterating checkup rows: %v", err)
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(checkups); err == nil {
			if err := s.cache.Set(ctx, key, string(data), cache.DefaultTTL); err != nil {
				log.Printf("Failed to cache checkups for client %s: %v", clientID, err)
			}
		}
	}

	return checkups, nil
}

// CreateCheckup validates the measurements, computes the BMI server-side and
// inserts the checkup under the given client. Any bmi value a caller may have
// sent is structurally ignored: the request type carries no such field.
func (s *CheckupService) CreateCheckup(ctx context.Context, clientID string, req models.CreateCheckupRequest) (*models.Checkup, error) {
	if err := s.validator.Struct(req); err != nil {
		log.Printf("Validation error creating checkup for client %s: %v", clientID, err)
		return nil, fmt.Errorf("invalid checkup data: %w", err)
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`, clientID).Scan(&exists); err != nil {
		log.Printf("Error checking client existence %s: %v", clientID, err)
		return nil, fmt.Errorf("database error checking client existence: %w", err)
	}
	if !exists {
		log.Printf("Create checkup rejected: client %s not found", clientID)
		return nil, ErrNotFound
	}

	bmi, ok := models.CalculateBMI(req.Weight, req.Height)
	if !ok {
		// Unreachable past validation, but the undefined case must never
		// be persisted as a number.
		return nil, fmt.Errorf("invalid checkup data: %w", errors.New("weight and height must be positive"))
	}

	checkup := &models.Checkup{
		ID:                 uuid.NewString(),
		ClientID:           clientID,
		Date:               req.Date,
		Weight:             req.Weight,
		Height:             req.Height,
		WaistCircumference: req.WaistCircumference,
		BloodPressure:      req.BloodPressure,
		BloodSugar:         req.BloodSugar,
		Cholesterol:        req.Cholesterol,
		BMI:                bmi,
		Notes:              req.Notes,
	}

	insertQuery := `
		INSERT INTO checkups (id, client_id, date, weight, height, waist_circumference, blood_pressure, blood_sugar, cholesterol, bmi, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`
	err := s.db.QueryRow(ctx, insertQuery,
		checkup.ID, checkup.ClientID, checkup.Date, checkup.Weight, checkup.Height,
		checkup.WaistCircumference, checkup.BloodPressure, checkup.BloodSugar,
		checkup.Cholesterol, checkup.BMI, checkup.Notes,
	).Scan(&checkup.CreatedAt)
	if err != nil {
		log.Printf("Error inserting checkup for client %s: %v", clientID, err)
		return nil, fmt.Errorf("failed to create checkup in database: %w", err)
	}

	s.invalidate(ctx, cache.ClientCheckupsKey(clientID))
	log.Printf("Checkup created for client %s: ID %s (bmi %.1f)", clientID, checkup.ID, checkup.BMI)
	return checkup, nil
}

// UpdateCheckup applies a partial update to a checkup scoped under its
// client. When weight or height changes the BMI is recomputed; it can never
// go stale relative to its inputs.
func (s *CheckupService) UpdateCheckup(ctx context.Context, clientID, checkupID string, req models.UpdateCheckupRequest) (*models.Checkup, error) {
	if err := s.validator.Struct(req); err != nil {
		log.Printf("Validation error updating checkup %s: %v", checkupID, err)
		return nil, fmt.Errorf("invalid checkup data: %w", err)
	}

	var checkup models.Checkup
	query := `SELECT ` + checkupColumns + ` FROM checkups WHERE id = $1 AND client_id = $2`
	if err := scanCheckup(s.db.QueryRow(ctx, query, checkupID, clientID), &checkup); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Checkup not found: ID %s (client %s)", checkupID, clientID)
			return nil, ErrNotFound
		}
		log.Printf("Error fetching checkup %s: %v", checkupID, err)
		return nil, fmt.Errorf("database error fetching checkup: %w", err)
	}

	recompute := false
	if req.Date != nil {
		checkup.Date = *req.Date
	}
	if req.Weight != nil {
		checkup.Weight = *req.Weight
		recompute = true
	}
	if req.Height != nil {
		checkup.Height = *req.Height
		recompute = true
	}
	if req.WaistCircumference != nil {
		checkup.WaistCircumference = req.WaistCircumference
	}
	if req.BloodPressure != nil {
		checkup.BloodPressure = req.BloodPressure
	}
	if req.BloodSugar != nil {
		checkup.BloodSugar = req.BloodSugar
	}
	if req.Cholesterol != nil {
		checkup.Cholesterol = req.Cholesterol
	}
	if req.Notes != nil {
		checkup.Notes = req.Notes
	}

	if recompute {
		bmi, ok := models.CalculateBMI(checkup.Weight, checkup.Height)
		if !ok {
			return nil, fmt.Errorf("invalid checkup data: %w", errors.New("weight and height must be positive"))
		}
		checkup.BMI = bmi
	}

	updateQuery := `
		UPDATE checkups
		SET date = $1, weight = $2, height = $3, waist_circumference = $4,
		    blood_pressure = $5, blood_sugar = $6, cholesterol = $7, bmi = $8, notes = $9
		WHERE id = $10
	`
	if _, err := s.db.Exec(ctx, updateQuery,
		checkup.Date, checkup.Weight, checkup.Height, checkup.WaistCircumference,
		checkup.BloodPressure, checkup.BloodSugar, checkup.Cholesterol, checkup.BMI, checkup.Notes,
		checkupID,
	); err != nil {
		log.Printf("Error updating checkup %s: %v", checkupID, err)
		return nil, fmt.Errorf("failed to update checkup in database: %w", err)
	}

	s.invalidate(ctx, cache.ClientCheckupsKey(clientID))
	log.Printf("Checkup updated: ID %s (bmi %.1f)", checkupID, checkup.BMI)
	return &checkup, nil
}

// DeleteCheckup removes a checkup by id. The route is not scoped under a
// client, so the owning client id comes back from the delete for cache
// invalidation.
func (s *CheckupService) DeleteCheckup(ctx context.Context, id string) error {
	var clientID string
	err := s.db.QueryRow(ctx, `DELETE FROM checkups WHERE id = $1 RETURNING client_id`, id).Scan(&clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Delete checkup: ID %s not found", id)
			return ErrNotFound
		}
		log.Printf("Error deleting checkup %s: %v", id, err)
		return fmt.Errorf("failed to delete checkup: %w", err)
	}

	s.invalidate(ctx, cache.ClientCheckupsKey(clientID))
	log.Printf("Checkup deleted: ID %s (client %s)", id, clientID)
	return nil
}

func (s *CheckupService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Printf("Cache invalidation failed for %v: %v", keys, err)
	}
}
