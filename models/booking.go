package models

import (
	"time"
)

// BookingStatus represents the possible statuses of a booking request.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Submitted from the public site, awaiting admin action
	BookingStatusConfirmed BookingStatus = "confirmed" // Confirmed by admin; terminal
	BookingStatusCancelled BookingStatus = "cancelled" // Cancelled by admin; terminal
)

// ValidBookingStatus reports whether s is one of the known statuses.
func ValidBookingStatus(s string) bool {
	switch BookingStatus(s) {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// BookingRequest represents the structure for the 'booking_requests' table.
// A prospective appointment submitted from the public site. Confirming a
// pending request provisions a Client as a one-way side effect; no
// back-reference is persisted.
type BookingRequest struct {
	ID              string    `json:"id" db:"id"`
	FullName        string    `json:"fullName" db:"full_name"`
	Email           string    `json:"email" db:"email"`
	Phone           string    `json:"phone" db:"phone"`
	AppointmentDate string    `json:"appointmentDate" db:"appointment_date"`
	AppointmentTime string    `json:"appointmentTime" db:"appointment_time"`
	HealthGoals     *string   `json:"healthGoals,omitempty" db:"health_goals"`
	Status          string    `json:"status" db:"status"` // pending, confirmed, cancelled
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

// CreateBookingRequest defines the structure for the public booking form.
type CreateBookingRequest struct {
	FullName        string  `json:"fullName" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           string  `json:"phone" validate:"required"`
	AppointmentDate string  `json:"appointmentDate" validate:"required"`
	AppointmentTime string  `json:"appointmentTime" validate:"required"`
	HealthGoals     *string `json:"healthGoals,omitempty"`
}

// UpdateBookingStatusRequest carries the requested state transition.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed cancelled"`
}

// BookingConfirmation is the result of confirming a booking request.
// Confirmation and client provisioning are deliberately not transactionally
// coupled: the confirmation can succeed while provisioning fails, and the
// second step's outcome is reported rather than rolled back.
type BookingConfirmation struct {
	Booking           *BookingRequest `json:"booking"`
	ClientProvisioned bool            `json:"clientProvisioned"`        // False when the client already existed or provisioning failed
	ProvisionError    string          `json:"provisionError,omitempty"` // Set only for non-duplicate provisioning failures
}
