package models

import (
	"time"
)

// MaxFileSize is the hard cap on uploaded client files: 10 MiB.
// A payload of exactly this size is accepted; one byte more is rejected.
const MaxFileSize = 10 << 20

// ClientFile represents the structure for the 'client_files' table.
// An uploaded document attached to a client. Files are created by upload and
// deleted explicitly; there is no update operation.
type ClientFile struct {
	ID         string    `json:"id" db:"id"`
	ClientID   string    `json:"clientId" db:"client_id"` // Owning client
	FileName   string    `json:"fileName" db:"file_name"`
	FileURL    string    `json:"fileUrl" db:"file_url"`   // Location in the blob store
	FileType   string    `json:"fileType" db:"file_type"` // MIME type as reported at upload
	FileSize   int64     `json:"fileSize" db:"file_size"` // Size in bytes
	UploadedAt time.Time `json:"uploadedAt" db:"uploaded_at"`
}
