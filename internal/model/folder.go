package model

import "time"

// Folder groups documents for display purposes. DocumentCount is derived by
// counting junction rows; it is never stored.
type Folder struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Color         string    `json:"color"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	DocumentCount int       `json:"document_count"`
}
