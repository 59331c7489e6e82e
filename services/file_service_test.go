package services

import (
	"context"
	"errors"
	"io"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"

	"nutricare/backend/models"
)

// fakeStore records saves and removes without touching the filesystem.
type fakeStore struct {
	saved   []string
	removed []string
	saveErr error
}

func (f *fakeStore) Save(fileName string, r io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	f.saved = append(f.saved, fileName)
	return "/uploads/" + fileName, nil
}

func (f *fakeStore) Remove(fileURL string) error {
	f.removed = append(f.removed, fileURL)
	return nil
}

func setupFileTest(t *testing.T) (*FileService, pgxmock.PgxPoolIface, *fakeStore) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("Failed to create mock pool: %v", err)
	}
	store := &fakeStore{}
	return NewFileService(mock, store), mock, store
}

func TestFileService_UploadFile_AtCap(t *testing.T) {
	svc, mock, store := setupFileTest(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`)).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO client_files`)).
		WithArgs(pgxmock.AnyArg(), "c1", "scan.pdf", pgxmock.AnyArg(), "application/pdf", int64(models.MaxFileSize)).
		WillReturnRows(pgxmock.NewRows([]string{"uploaded_at"}).AddRow(time.Now()))

	// Exactly at the cap is allowed. The reader is not the full payload; the
	// declared size is what the cap applies to.
	file, err := svc.UploadFile(context.Background(), "c1", "scan.pdf", "application/pdf",
		models.MaxFileSize, strings.NewReader("pdf bytes"))
	if err != nil {
		t.Fatalf("Expected no error at the size cap, but got: %v", err)
	}
	if file.FileSize != models.MaxFileSize {
		t.Errorf("Expected file size %d, but got %d", int64(models.MaxFileSize), file.FileSize)
	}
	if len(store.saved) != 1 {
		t.Errorf("Expected one stored blob, but got %d", len(store.saved))
	}
	if !strings.HasPrefix(file.FileURL, "/uploads/") {
		t.Errorf("Expected an /uploads/ URL, but got %s", file.FileURL)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestFileService_UploadFile_OverCap(t *testing.T) {
	svc, mock, store := setupFileTest(t)
	defer mock.Close()

	// One byte over the cap: rejected before any database or store work.
	_, err := svc.UploadFile(context.Background(), "c1", "scan.pdf", "application/pdf",
		models.MaxFileSize+1, strings.NewReader("pdf bytes"))
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Expected ErrFileTooLarge, but got: %v", err)
	}
	if len(store.saved) != 0 {
		t.Errorf("Expected no stored blob, but got %d", len(store.saved))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestFileService_UploadFile_ClientNotFound(t *testing.T) {
	svc, mock, _ := setupFileTest(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`)).
		WithArgs("missing-id").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))

	_, err := svc.UploadFile(context.Background(), "missing-id", "scan.pdf", "application/pdf",
		1024, strings.NewReader("pdf bytes"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, but got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestFileService_UploadFile_InsertFailureRemovesBlob(t *testing.T) {
	svc, mock, store := setupFileTest(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`)).
		WithArgs("c1").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO client_files`)).
		WithArgs(pgxmock.AnyArg(), "c1", "scan.pdf", pgxmock.AnyArg(), "application/pdf", int64(1024)).
		WillReturnError(errors.New("insert failed"))

	_, err := svc.UploadFile(context.Background(), "c1", "scan.pdf", "application/pdf",
		1024, strings.NewReader("pdf bytes"))
	if err == nil {
		t.Fatal("Expected an error when the insert fails, but got nil")
	}
	if len(store.removed) != 1 {
		t.Errorf("Expected the orphaned blob to be removed, but got %d removals", len(store.removed))
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestFileService_DeleteFile_RemovesBlob(t *testing.T) {
	svc, mock, store := setupFileTest(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM client_files WHERE id = $1 RETURNING file_url`)).
		WithArgs("f1").
		WillReturnRows(pgxmock.NewRows([]string{"file_url"}).AddRow("/uploads/f1_scan.pdf"))

	if err := svc.DeleteFile(context.Background(), "f1"); err != nil {
		t.Fatalf("Expected no error during delete, but got: %v", err)
	}
	if len(store.removed) != 1 || store.removed[0] != "/uploads/f1_scan.pdf" {
		t.Errorf("Expected the blob to be removed, but got %v", store.removed)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}

func TestFileService_DeleteFile_NotFound(t *testing.T) {
	svc, mock, _ := setupFileTest(t)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM client_files WHERE id = $1 RETURNING file_url`)).
		WithArgs("missing-id").
		WillReturnError(pgx.ErrNoRows)

	err := svc.DeleteFile(context.Background(), "missing-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, but got: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("There were unfulfilled expectations: %s", err)
	}
}
