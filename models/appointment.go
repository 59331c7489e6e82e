package models

import (
	"time"
)

// PaymentStatus represents the payment state recorded on an appointment.
// No gateway is integrated; the field is informational and defaults to
// pending at creation.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// Appointment represents the structure for the 'appointments' table.
// A scheduled consultation slot created from the public booking form; it is
// a parallel entity to BookingRequest with no modeled state transitions
// beyond creation.
type Appointment struct {
	ID              string    `json:"id" db:"id"`
	ClientName      string    `json:"clientName" db:"client_name"`
	Email           string    `json:"email" db:"email"`
	Phone           string    `json:"phone" db:"phone"`
	AppointmentDate string    `json:"appointmentDate" db:"appointment_date"`
	AppointmentTime string    `json:"appointmentTime" db:"appointment_time"`
	PaymentStatus   string    `json:"paymentStatus" db:"payment_status"`
	PaymentID       *string   `json:"paymentId,omitempty" db:"payment_id"`
	Notes           *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// CreateAppointmentRequest defines the structure for booking an appointment.
type CreateAppointmentRequest struct {
	ClientName      string  `json:"clientName" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           string  `json:"phone" validate:"required"`
	AppointmentDate string  `json:"appointmentDate" validate:"required"`
	AppointmentTime string  `json:"appointmentTime" validate:"required"`
	Notes           *string `json:"notes,omitempty"`
}
