package services

import "errors"

// Sentinel errors shared by all services. Handlers map these onto HTTP
// statuses; everything else surfaces as an internal error.
var (
	// ErrNotFound is returned for any operation on a nonexistent id,
	// including deletes (a delete of a missing record is reported, not
	// silently ignored, so the UI can distinguish "already gone").
	ErrNotFound = errors.New("record not found")

	// ErrEmailExists is returned when creating or updating a client would
	// violate the unique-email invariant.
	ErrEmailExists = errors.New("a client with this email already exists")

	// ErrInvalidTransition is returned when a booking request is asked to
	// leave a terminal state (confirmed or cancelled).
	ErrInvalidTransition = errors.New("booking status transition not allowed")

	// ErrFileTooLarge is returned when an upload exceeds the 10 MiB cap.
	// Distinct from generic validation failure so the UI can report it.
	ErrFileTooLarge = errors.New("file exceeds the maximum allowed size of 10 MiB")
)
