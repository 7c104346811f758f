package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"docsafe/internal/model"
	"docsafe/internal/repository"
)

// OcrPostgres is a PostgreSQL implementation of repository.OcrRepository.
type OcrPostgres struct {
	db *sql.DB
}

// NewOcrPostgres creates a new OcrPostgres repository.
func NewOcrPostgres(db *sql.DB) *OcrPostgres {
	return &OcrPostgres{db: db}
}

var _ repository.OcrRepository = (*OcrPostgres)(nil)

// SaveResult inserts one OCR result row.
func (r *OcrPostgres) SaveResult(ctx context.Context, res *model.OcrResult) error {
	raw, err := json.Marshal(res.RawData)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO ocr_results (id, document_id, page_number, text_content, confidence, language, raw_data, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err = r.db.ExecContext(ctx, q, res.ID, res.DocumentID, res.PageNumber, res.TextContent, res.Confidence, res.Language, raw, res.ProcessedAt)
	return err
}

// ListByDocument returns all OCR results for a document ordered by page.
func (r *OcrPostgres) ListByDocument(ctx context.Context, documentID string) ([]model.OcrResult, error) {
	const q = `
		SELECT id, document_id, page_number, COALESCE(text_content, ''), COALESCE(confidence, 0), COALESCE(language, ''), raw_data, processed_at
		FROM ocr_results
		WHERE document_id = $1
		ORDER BY page_number
	`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]model.OcrResult, 0)
	for rows.Next() {
		var (
			res model.OcrResult
			raw []byte
		)
		if err := rows.Scan(&res.ID, &res.DocumentID, &res.PageNumber, &res.TextContent, &res.Confidence, &res.Language, &raw, &res.ProcessedAt); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &res.RawData); err != nil {
				return nil, err
			}
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
