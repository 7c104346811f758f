package repository

import (
	"context"

	"docsafe/internal/model"
)

// OcrRepository persists recognized text per document page.
type OcrRepository interface {
	// SaveResult inserts one OCR result row.
	SaveResult(ctx context.Context, r *model.OcrResult) error

	// ListByDocument returns all OCR results for a document ordered by page.
	ListByDocument(ctx context.Context, documentID string) ([]model.OcrResult, error)
}
