package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"

	"nutricare/backend/models"
)

// The booking service provisions clients through a real ClientService wired
// to the same mock pool, so provisioning queries show up as expectations here.
func setupBookingTest(t *testing.T) (*BookingService, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("Failed to create mock pool: %v", err)
	}
	return NewBookingService(mock, NewClientService(mock, nil, nil)), mock
}

func bookingRow(id, status string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "full_name", "email", "phone", "appointment_date",
		"appointment_time", "health_goals", "status", "created_at",
	}).AddRow(id, "Marko Ilic", "marko@example.com", "+381601112233",
		"2026-09-15", "10:00", nil, status, time.Now())
}

func TestBookingService_Confirm_ProvisionsClient(t *testing.T) {
	svc, mock := setupBookingTest(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM booking_requests WHERE id = $1`)).
		WithArgs("b1").
		WillReturnRows(bookingRow("b1", "pending"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE booking_requests SET status = $1 WHERE id = $2`)).
		WithArgs("confirmed", "b1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	// Provisioning: no client with this email yet.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM clients WHERE email = $1)`)).
		WithArgs("marko@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO clients`)).
		WithArgs(pgxmock.AnyArg(), "Marko Ilic", "marko@example.com", "+381601112233", (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	result, err := svc.UpdateStatus(context.Background(), "b1", models.UpdateBookingStatusRequest{Status: "confirmed"})
	if err != nil {
		t.Fatalf("Expected no error during confirmation, but got: %v", err)
	}
	if result.Booking.Status != "confirmed" {
		t.Errorf("Expected booking status confirmed, but got %s", result.Booking.Status)
	}
	if !result.ClientProvisioned {
		t.Error("Expected a client to be provisioned")
	}
	if result.ProvisionError != "" {
		t.Errorf("Expected no provision error, but got %q", result.ProvisionError)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestBookingService_Confirm_ExistingClientIsNoOp(t *testing.T) {
	svc, mock := setupBookingTest(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM booking_requests WHERE id = $1`)).
		WithArgs("b1").
		WillReturnRows(bookingRow("b1", "pending"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE booking_requests SET status = $1 WHERE id = $2`)).
		WithArgs("confirmed", "b1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	// The email is already on record: documented success no-op.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM clients WHERE email = $1)`)).
		WithArgs("marko@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	result, err := svc.UpdateStatus(context.Background(), "b1", models.UpdateBookingStatusRequest{Status: "confirmed"})
	if err != nil {
		t.Fatalf("Expected no error during confirmation, but got: %v", err)
	}
	if result.ClientProvisioned {
		t.Error("Expected no new client for an existing email")
	}
	if result.ProvisionError != "" {
		t.Errorf("Duplicate email is a no-op, but got provision error %q", result.ProvisionError)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestBookingService_Confirm_FromTerminalState(t *testing.T) {
	svc, mock := setupBookingTest(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM booking_requests WHERE id = $1`)).
		WithArgs("b1").
		WillReturnRows(bookingRow("b1", "cancelled"))

	_, err := svc.UpdateStatus(context.Background(), "b1", models.UpdateBookingStatusRequest{Status: "confirmed"})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("Expected ErrInvalidTransition, but got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestBookingService_Cancel_NoProvisioning(t *testing.T) {
	svc, mock := setupBookingTest(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM booking_requests WHERE id = $1`)).
		WithArgs("b1").
		WillReturnRows(bookingRow("b1", "pending"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE booking_requests SET status = $1 WHERE id = $2`)).
		WithArgs("cancelled", "b1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	result, err := svc.UpdateStatus(context.Background(), "b1", models.UpdateBookingStatusRequest{Status: "cancelled"})
	if err != nil {
		t.Fatalf("Expected no error during cancellation, but got: %v", err)
	}
	if result.Booking.Status != "cancelled" {
		t.Errorf("Expected booking status cancelled, but got %s", result.Booking.Status)
	}
	if result.ClientProvisioned {
		t.Error("Cancellation must not provision a client")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestBookingService_DeleteBooking_NotFound(t *testing.T) {
	svc, mock := setupBookingTest(t)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM booking_requests WHERE id = $1`)).
		WithArgs("missing-id").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := svc.DeleteBooking(context.Background(), "missing-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, but got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}
