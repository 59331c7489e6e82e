package models

import (
	"time" // Package for time operations
)

// Client represents the structure for the 'clients' table.
// A client is a person receiving nutrition services; it is the root aggregate
// for checkups and uploaded files.
type Client struct {
	ID          string    `json:"id" db:"id"`                               // Primary key, server-generated UUID string
	FullName    string    `json:"fullName" db:"full_name"`                  // Client's full name, required
	Email       string    `json:"email" db:"email"`                         // Client's email, unique and required
	Phone       string    `json:"phone" db:"phone"`                         // Client's phone number, required
	DateOfBirth *string   `json:"dateOfBirth,omitempty" db:"date_of_birth"` // Date of birth (optional, pointer for NULL)
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`                // Timestamp of record creation, immutable
}

// CreateClientRequest defines the structure for creating a new client.
type CreateClientRequest struct {
	FullName    string  `json:"fullName" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Phone       string  `json:"phone" validate:"required"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"` // Optional; booking-confirmation clients never have one
}

// UpdateClientRequest defines the structure for partially updating a client.
// All fields are optional, only provided fields will be updated.
type UpdateClientRequest struct {
	FullName    *string `json:"fullName,omitempty" validate:"omitempty,min=1"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,min=1"`
	DateOfBirth *string `json:"dateOfBirth,omitempty"`
}
