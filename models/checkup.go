package models

import (
	"time"
)

// Checkup represents the structure for the 'checkups' table.
// One point-in-time medical measurement for a client. The BMI column is
// always computed server-side from weight and height; it is never accepted
// from a request (the request DTOs carry no bmi field).
type Checkup struct {
	ID                 string    `json:"id" db:"id"`
	ClientID           string    `json:"clientId" db:"client_id"` // Owning client, not reassignable
	Date               string    `json:"date" db:"date"`          // Checkup date (YYYY-MM-DD)
	Weight             float64   `json:"weight" db:"weight"`      // Weight in kg, positive
	Height             int       `json:"height" db:"height"`      // Height in cm, positive
	WaistCircumference *int      `json:"waistCircumference,omitempty" db:"waist_circumference"`
	BloodPressure      *string   `json:"bloodPressure,omitempty" db:"blood_pressure"` // Conventionally "systolic/diastolic"
	BloodSugar         *float64  `json:"bloodSugar,omitempty" db:"blood_sugar"`
	Cholesterol        *float64  `json:"cholesterol,omitempty" db:"cholesterol"`
	BMI                float64   `json:"bmi" db:"bmi"` // Server-computed, 1 decimal place
	Notes              *string   `json:"notes,omitempty" db:"notes"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
}

// CreateCheckupRequest defines the structure for recording a new checkup.
type CreateCheckupRequest struct {
	Date               string   `json:"date" validate:"required"`
	Weight             float64  `json:"weight" validate:"required,gt=0"`
	Height             int      `json:"height" validate:"required,gt=0"`
	WaistCircumference *int     `json:"waistCircumference,omitempty" validate:"omitempty,gt=0"`
	BloodPressure      *string  `json:"bloodPressure,omitempty"`
	BloodSugar         *float64 `json:"bloodSugar,omitempty" validate:"omitempty,gt=0"`
	Cholesterol        *float64 `json:"cholesterol,omitempty" validate:"omitempty,gt=0"`
	Notes              *string  `json:"notes,omitempty"`
}

// UpdateCheckupRequest defines the structure for partially updating a checkup.
// If weight or height is supplied the BMI is recomputed server-side.
type UpdateCheckupRequest struct {
	Date               *string  `json:"date,omitempty" validate:"omitempty,min=1"`
	Weight             *float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
	Height             *int     `json:"height,omitempty" validate:"omitempty,gt=0"`
	WaistCircumference *int     `json:"waistCircumference,omitempty" validate:"omitempty,gt=0"`
	BloodPressure      *string  `json:"bloodPressure,omitempty"`
	BloodSugar         *float64 `json:"bloodSugar,omitempty" validate:"omitempty,gt=0"`
	Cholesterol        *float64 `json:"cholesterol,omitempty" validate:"omitempty,gt=0"`
	Notes              *string  `json:"notes,omitempty"`
}
