package services

import (
	"context"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"nutricare/backend/database"
	"nutricare/backend/models"
)

// AppointmentService handles the standalone appointment entity created by
// the public booking form. Appointments have no modeled state transitions
// beyond creation; payment status stays informational.
type AppointmentService struct {
	validator *validator.Validate
	db        database.DBPool
}

// NewAppointmentService creates a new AppointmentService instance.
func NewAppointmentService(db database.DBPool) *AppointmentService {
	return &AppointmentService{
		validator: validator.New(),
		db:        db,
	}
}

const appointmentColumns = "id, client_name, email, phone, appointment_date, appointment_time, payment_status, payment_id, notes, created_at"

// ListAppointments returns all appointments, newest appointment first.
func (s *AppointmentService) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments
		ORDER BY appointment_date DESC, appointment_time DESC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		log.Printf("Error querying appointments: %v", err)
		return nil, fmt.Errorf("database error fetching appointments: %w", err)
	}
	defer rows.Close()

	appointments := []models.Appointment{}
	for rows.Next() {
		var a models.Appointment
		if err := rows.Scan(
			&a.ID, &a.ClientName, &a.Email, &a.Phone,
			&a.AppointmentDate, &a.AppointmentTime,
			&a.PaymentStatus, &a.PaymentID, &a.Notes, &a.CreatedAt,
		); err != nil {
			log.Printf("Error scanning appointment row: %v", err)
			return nil, fmt.Errorf("error processing appointment data: %w", err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error after iterating appointment rows: %v", err)
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return appointments, nil
}

// CreateAppointment records an appointment with payment status pending.
func (s *AppointmentService) CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	if err := s.validator.Struct(req); err != nil {
		log.Printf("Validation error creating appointment for %s: %v", req.Email, err)
		return nil, fmt.Errorf("invalid appointment data: %w", err)
	}

	appointment := &models.Appointment{
		ID:              uuid.NewString(),
		ClientName:      req.ClientName,
		Email:           req.Email,
		Phone:           req.Phone,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		PaymentStatus:   string(models.PaymentStatusPending),
		Notes:           req.Notes,
	}

	insertQuery := `
		INSERT INTO appointments (id, client_name, email, phone, appointment_date, appointment_time, payment_status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at
	`
	err := s.db.QueryRow(ctx, insertQuery,
		appointment.ID, appointment.ClientName, appointment.Email, appointment.Phone,
		appointment.AppointmentDate, appointment.AppointmentTime,
		appointment.PaymentStatus, appointment.Notes,
	).Scan(&appointment.CreatedAt)
	if err != nil {
		log.Printf("Error inserting appointment for %s: %v", req.Email, err)
		return nil, fmt.Errorf("failed to create appointment in database: %w", err)
	}

	log.Printf("Appointment created: ID %s (%s %s)", appointment.ID, appointment.AppointmentDate, appointment.AppointmentTime)
	return appointment, nil
}

// DeleteAppointment removes an appointment by id.
func (s *AppointmentService) DeleteAppointment(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		log.Printf("Error deleting appointment %s: %v", id, err)
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		log.Printf("Delete appointment: ID %s not found", id)
		return ErrNotFound
	}

	log.Printf("Appointment deleted: ID %s", id)
	return nil
}
