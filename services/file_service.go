package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nutricare/backend/database"
	"nutricare/backend/models"
	"nutricare/backend/storage"
)

// FileService handles uploaded client documents: metadata rows in the
// database, blobs in the file store. The 10 MiB cap is enforced here
// regardless of any client-side pre-check.
type FileService struct {
	db    database.DBPool
	store storage.FileStore
}

// NewFileService creates a new FileService instance.
func NewFileService(db database.DBPool, store storage.FileStore) *FileService {
	return &FileService{
		db:    db,
		store: store,
	}
}

const fileColumns = "id, client_id, file_name, file_url, file_type, file_size, uploaded_at"

// ListFiles returns the documents attached to a client.
func (s *FileService) ListFiles(ctx context.Context, clientID string) ([]models.ClientFile, error) {
	query := `SELECT ` + fileColumns + ` FROM client_files
		WHERE client_id = $1
		ORDER BY uploaded_at DESC`
	rows, err := s.db.Query(ctx, query, clientID)
	if err != nil {
		log.Printf("Error querying files for client %s: %v", clientID, err)
		return nil, fmt.Errorf("database error fetching client files: %w", err)
	}
	defer rows.Close()

	files := []models.ClientFile{}
	for rows.Next() {
		var f models.ClientFile
		if err := rows.Scan(&f.ID, &f.ClientID, &f.FileName, &f.FileURL, &f.FileType, &f.FileSize, &f.UploadedAt); err != nil {
			log.Printf("Error scanning file row: %v", err)
			return nil, fmt.Errorf("error processing file data: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		log.Printf("Error after iterating file rows: %v", err)
		return nil, fmt.Errorf("database iteration error: %w", err)
	}

	return files, nil
}

// UploadFile stores the blob and records its metadata under the client.
// A payload of exactly models.MaxFileSize is accepted; anything larger is
// rejected with ErrFileTooLarge before the blob is written.
func (s *FileService) UploadFile(ctx context.Context, clientID, fileName, fileType string, size int64, r io.Reader) (*models.ClientFile, error) {
	if fileName == "" {
		return nil, errors.New("invalid file data: file name is required")
	}
	if size <= 0 {
		return nil, errors.New("invalid file data: file is empty")
	}
	if size > models.MaxFileSize {
		log.Printf("Upload rejected for client %s: %s is %d bytes", clientID, fileName, size)
		return nil, ErrFileTooLarge
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`, clientID).Scan(&exists); err != nil {
		log.Printf("Error checking client existence %s: %v", clientID, err)
		return nil, fmt.Errorf("database error checking client existence: %w", err)
	}
	if !exists {
		log.Printf("Upload rejected: client %s not found", clientID)
		return nil, ErrNotFound
	}

	file := &models.ClientFile{
		ID:       uuid.NewString(),
		ClientID: clientID,
		FileName: fileName,
		FileType: fileType,
		FileSize: size,
	}

	url, err := s.store.Save(file.ID+"_"+fileName, r)
	if err != nil {
		log.Printf("Error storing blob for client %s: %v", clientID, err)
		return nil, fmt.Errorf("failed to store uploaded file: %w", err)
	}
	file.FileURL = url

	insertQuery := `
		INSERT INTO client_files (id, client_id, file_name, file_url, file_type, file_size)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING uploaded_at
	`
	err = s.db.QueryRow(ctx, insertQuery,
		file.ID, file.ClientID, file.FileName, file.FileURL, file.FileType, file.FileSize,
	).Scan(&file.UploadedAt)
	if err != nil {
		// Don't leave an unreferenced blob behind.
		if rmErr := s.store.Remove(file.FileURL); rmErr != nil {
			log.Printf("Failed to remove orphaned blob %s: %v", file.FileURL, rmErr)
		}
		log.Printf("Error inserting file record for client %s: %v", clientID, err)
		return nil, fmt.Errorf("failed to record uploaded file: %w", err)
	}

	log.Printf("File uploaded for client %s: %s (%d bytes)", clientID, file.FileName, file.FileSize)
	return file, nil
}

// DeleteFile removes the metadata row and then the blob behind it.
func (s *FileService) DeleteFile(ctx context.Context, id string) error {
	var fileURL string
	err := s.db.QueryRow(ctx, `DELETE FROM client_files WHERE id = $1 RETURNING file_url`, id).Scan(&fileURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Printf("Delete file: ID %s not found", id)
			return ErrNotFound
		}
		log.Printf("Error deleting file %s: %v", id, err)
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	if err := s.store.Remove(fileURL); err != nil {
		// The row is gone; an orphaned blob is logged, not fatal.
		log.Printf("Failed to remove blob %s for deleted file %s: %v", fileURL, id, err)
	}

	log.Printf("File deleted: ID %s", id)
	return nil
}
