package model

import "time"

// Document statuses. Transitions only move forward:
// uploaded -> processing -> processed | ocr_failed.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
	StatusOCRFailed  = "ocr_failed"
	StatusError      = "error"
)

// Document represents a stored file in the system.
// This is a pure domain model with no database-specific dependencies or tags.
// It can be used across layers (HTTP, service, storage) without coupling to persistence.
type Document struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type"`
	Status      string    `json:"status"`
	PageCount   int       `json:"page_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DocumentRow is a denormalized listing row: owner and folder data are inlined
// so the result can be rendered directly without follow-up queries.
type DocumentRow struct {
	Document
	OwnerName   string  `json:"owner_name"`
	OwnerEmail  string  `json:"owner_email"`
	FolderID    *string `json:"folder_id"`
	FolderName  *string `json:"folder_name"`
	FolderColor *string `json:"folder_color"`
}

// DocumentDetail extends a listing row with related record counts and OCR
// output for the admin detail view.
type DocumentDetail struct {
	DocumentRow
	OwnerRole     string        `json:"owner_role"`
	OCRPagesCount int           `json:"ocr_pages_count"`
	TagsCount     int           `json:"tags_count"`
	Tags          []DocumentTag `json:"tags"`
	OCRResults    []OcrResult   `json:"ocr_results"`
}

// DocumentTag is a free-form label attached to a document.
type DocumentTag struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	Tag        string    `json:"tag"`
	Color      string    `json:"color"`
	CreatedAt  time.Time `json:"created_at"`
}
