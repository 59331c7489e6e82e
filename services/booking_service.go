package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nutricare/backend/database"
	"nutricare/backend/models"
)

// BookingService handles the booking-request workflow: public submission,
// the pending -> confirmed/cancelled state machine, and the client
// provisioning side effect of a confirmation.
type BookingService struct {
	validator *validator.Validate
	db        database.DBPool
	clients   *ClientService // Used to provision a client on confirmation
}

// NewBookingService creates a new BookingService instance.
func NewBookingService(db database.DBPool, clients *ClientService) *BookingService {
	return &BookingService{
		validator: validator.New(),
		db:        db,
		clients:   clients,
	}
}

const bookingColumns = "id, full_name, email, phone, appointment_date, appointment_time, health_goals, status, created_at"

func scanBooking(row pgx.Row, b *models.BookingRequest) error {
	return row.Scan(
		&b.ID, &b.FullName, &b.Email, &b.Phone,
		&b.AppointmentDate, &b.AppointmentTime, &b.HealthGoals,
		&b.Status, &b.CreatedAt,
	)
}

// ListBookings returns all booking requests, newest appointment first.
func (s *BookingService) ListBookings(ctx context.Context) ([]models.BookingRequest, error) {
	query := `SELECT ` + bookingColumns + ` FROM booking_requests
		ORDER BY appointment_date DESC, appointment_time DESC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		log.Printf("Error querying booking requests: %v", err)
		return nil, fmt.Errorf("database error fetching booking requests: %w", err)
	}
	defer rows.Close()

	bookings := []models.BookingRequest{}
	for rows.Next() {
		var b models.BookingRequest
		if err := scanBooking(rows, &b); err != nil {
			log.Printf("Error scanning booking row: %v", err)
			return nil, fmt.Errorf("error processing booking data: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error after iterating booking rows: %v", err)
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return bookings, nil
}

// CreateBooking records a booking request from the public site with the
// default pending status.
func (s *BookingService) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (*models.BookingRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		log.Printf("Validation error creating booking for %s: %v", req.Email, err)
		return nil, fmt.Errorf("invalid booking data: %w", err)
	}

	booking := &models.BookingRequest{
		ID:              uuid.NewString(),
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		HealthGoals:     req.HealthGoals,
		Status:          string(models.BookingStatusPending),
	}

	insertQuery := `
		INSERT INTO booking_requests (id, full_name, email, phone, appointment_date, appointment_time, health_goals, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := s.db.QueryRow(ctx, insertQuery,
		booking.ID, booking.FullName, booking.Email, booking.Phone,
		booking.AppointmentDate, booking.AppointmentTime, booking.HealthGoals, booking.Status,
	).Scan(&booking.CreatedAt)
	if err != nil {
		log.Printf("Error inserting booking for %s: %v", req.Email, err)
		return nil, fmt.Errorf("failed to create booking request in database: %w", err)
	}

	log.Printf("Booking request created: ID %s (%s %s)", booking.ID, booking.AppointmentDate, booking.AppointmentTime)
	return booking, nil
}

// UpdateStatus drives the state machine. Only pending -> confirmed and
// pending -> cancelled are defined; confirmed and cancelled are terminal and
// any attempt to leave them fails with ErrInvalidTransition.
//
// Confirming provisions a client from the booking's contact fields.
// Confirmation and provisioning are deliberately not one transaction: the
// status change commits first and the provisioning outcome is reported in
// the result. A duplicate email is the documented success no-op; any other
// provisioning failure leaves the confirmation standing and surfaces the
// reason instead of swallowing it.
func (s *BookingService) UpdateStatus(ctx context.Context, id string, req models.UpdateBookingStatusRequest) (*models.BookingConfirmation, error) {
	if err := s.validator.Struct(req); err != nil {
		log.Printf("Validation error updating booking %s: %v", id, err)
		return nil, fmt.Errorf("invalid status data: %w", err)
	}

	var booking models.BookingRequest
	query := `SELECT ` + bookingColumns + ` FROM booking_requests WHERE id = $1`
	if err := scanBooking(s.db.QueryRow(ctx, query, id), &booking); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Booking request not found: ID %s", id)
			return nil, ErrNotFound
		}
		log.Printf("Error fetching booking %s: %v", id, err)
		return nil, fmt.Errorf("database error fetching booking request: %w", err)
	}

	target := models.BookingStatus(req.Status)
	if booking.Status != string(models.BookingStatusPending) ||
		(target != models.BookingStatusConfirmed && target != models.BookingStatusCancelled) {
		log.Printf("Rejected booking transition %s -> %s for ID %s", booking.Status, target, id)
		return nil, ErrInvalidTransition
	}

	if _, err := s.db.Exec(ctx,
		`UPDATE booking_requests SET status = $1 WHERE id = $2`,
		string(target), id,
	); err != nil {
		log.Printf("Error updating booking status for %s: %v", id, err)
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	booking.Status = string(target)
	log.Printf("Booking request %s transitioned to %s", id, target)

	result := &models.BookingConfirmation{Booking: &booking}
	if target != models.BookingStatusConfirmed {
		return result, nil
	}

	// Provision the client. No dateOfBirth is known at this point.
	_, err := s.clients.CreateClient(ctx, models.CreateClientRequest{
		FullName: booking.FullName,
		Email:    booking.Email,
		Phone:    booking.Phone,
	})
	switch {
	case err == nil:
		result.ClientProvisioned = true
		log.Printf("Provisioned client for confirmed booking %s (%s)", id, booking.Email)
	case errors.Is(err, ErrEmailExists):
		// Documented no-op: the client is already on record.
		log.Printf("Booking %s confirmed for existing client %s", id, booking.Email)
	default:
		// Confirmation stands; report the partial success.
		result.ProvisionError = err.Error()
		log.Printf("Booking %s confirmed but client provisioning failed: %v", id, err)
	}

	return result, nil
}

// DeleteBooking removes a booking request from any state. Side effects of an
// earlier confirmation (the provisioned client) are not reversed.
func (s *BookingService) DeleteBooking(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM booking_requests WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting booking %s: %v", id, err)
		return fmt.Errorf("failed to delete booking request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Printf("Delete booking: ID %s not found", id)
		return ErrNotFound
	}

	log.Printf("Booking request deleted: ID %s", id)
	return nil
}
