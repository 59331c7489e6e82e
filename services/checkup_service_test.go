package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"

	"nutricare/backend/models"
)

func setupCheckupTest(t *testing.T) (*CheckupService, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("Failed to create mock pool: %v", err)
	}
	return NewCheckupService(mock, nil), mock
}

func TestCheckupService_CreateCheckup_ComputesBMI(t *testing.T) {
	svc, mock := setupCheckupTest(t)
	defer mock.Close()

	req := models.CreateCheckupRequest{
		Date:   "2026-08-01",
		Weight: 80,
		Height: 160,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`)).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	// 80 kg at 160 cm rounds to 31.3.
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO checkups`)).
		WithArgs(pgxmock.AnyArg(), "c1", req.Date, req.Weight, req.Height,
			(*int)(nil), (*string)(nil), (*float64)(nil), (*float64)(nil), 31.3, (*string)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	checkup, err := svc.CreateCheckup(context.Background(), "c1", req)
	if err != nil {
		t.Fatalf("Expected no error during create, but got: %v", err)
	}
	if checkup.BMI != 31.3 {
		t.Errorf("Expected computed bmi 31.3, but got %v", checkup.BMI)
	}
	if models.CategoryForBMI(checkup.BMI) != models.BMIObese {
		t.Errorf("Expected obese category for bmi %v", checkup.BMI)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestCheckupService_CreateCheckup_ClientNotFound(t *testing.T) {
	svc, mock := setupCheckupTest(t)
	defer mock.Close()

	req := models.CreateCheckupRequest{
		Date:   "2026-08-01",
		Weight: 70,
		Height: 170,
	}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`)).
		WithArgs("missing-id").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.CreateCheckup(context.Background(), "missing-id", req)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, but got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestCheckupService_UpdateCheckup_RecomputesBMI(t *testing.T) {
	svc, mock := setupCheckupTest(t)
	defer mock.Close()

	newWeight := 60.0
	req := models.UpdateCheckupRequest{Weight: &newWeight}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM checkups WHERE id = $1 AND client_id = $2`)).
		WithArgs("ch1", "c1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "client_id", "date", "weight", "height", "waist_circumference",
			"blood_pressure", "blood_sugar", "cholesterol", "bmi", "notes", "created_at",
		}).AddRow("ch1", "c1", "2026-08-01", 80.0, 160, nil, nil, nil, nil, 31.3, nil, time.Now()))

	// Weight change: 60 kg at 160 cm rounds to 23.4.
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE checkups`)).
		WithArgs("2026-08-01", 60.0, 160, (*int)(nil), (*string)(nil),
			(*float64)(nil), (*float64)(nil), 23.4, (*string)(nil), "ch1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	checkup, err := svc.UpdateCheckup(context.Background(), "c1", "ch1", req)
	if err != nil {
		t.Fatalf("Expected no error during update, but got: %v", err)
	}
	if checkup.BMI != 23.4 {
		t.Errorf("Expected recomputed bmi 23.4, but got %v", checkup.BMI)
	}
	if checkup.Weight != 60.0 {
		t.Errorf("Expected weight 60, but got %v", checkup.Weight)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestCheckupService_UpdateCheckup_NotesOnlyKeepsBMI(t *testing.T) {
	svc, mock := setupCheckupTest(t)
	defer mock.Close()

	notes := "follow-up in two weeks"
	req := models.UpdateCheckupRequest{Notes: &notes}

	mock.ExpectQuery(regexp.QuoteMeta(`FROM checkups WHERE id = $1 AND client_id = $2`)).
		WithArgs("ch1", "c1").
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "client_id", "date", "weight", "height", "waist_circumference",
			"blood_pressure", "blood_sugar", "cholesterol", "bmi", "notes", "created_at",
		}).AddRow("ch1", "c1", "2026-08-01", 80.0, 160, nil, nil, nil, nil, 31.3, nil, time.Now()))

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE checkups`)).
		WithArgs("2026-08-01", 80.0, 160, (*int)(nil), (*string)(nil),
			(*float64)(nil), (*float64)(nil), 31.3, &notes, "ch1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	checkup, err := svc.UpdateCheckup(context.Background(), "c1", "ch1", req)
	if err != nil {
		t.Fatalf("Expected no error during update, but got: %v", err)
	}
	if checkup.BMI != 31.3 {
		t.Errorf("Expected bmi to stay 31.3, but got %v", checkup.BMI)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestCheckupService_DeleteCheckup_NotFound(t *testing.T) {
	svc, mock := setupCheckupTest(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM checkups WHERE id = $1 RETURNING client_id`)).
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	err := svc.DeleteCheckup(context.Background(), "missing-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, but got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}
