package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"docsafe/internal/model"
	"docsafe/internal/repository"
)

// RecognitionQueue accepts documents for background recognition. Satisfied by
// *ocr.Pool.
type RecognitionQueue interface {
	Enqueue(documentID string) error
}

// OcrService drives the recognition lifecycle of a document.
type OcrService interface {
	// Trigger marks the document as processing and hands it to the queue.
	// The call returns as soon as the job is accepted; recognition itself
	// runs in the background.
	Trigger(ctx context.Context, documentID string) (*model.Document, error)

	// Results returns the stored recognition output for a document, ordered
	// by page.
	Results(ctx context.Context, documentID string) ([]model.OcrResult, error)
}

type ocrService struct {
	docs    repository.DocumentRepository
	results repository.OcrRepository
	queue   RecognitionQueue
}

// NewOcrService constructs a new OcrService.
func NewOcrService(docs repository.DocumentRepository, results repository.OcrRepository, queue RecognitionQueue) OcrService {
	return &ocrService{docs: docs, results: results, queue: queue}
}

func (s *ocrService) Trigger(ctx context.Context, documentID string) (*model.Document, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.docs.UpdateStatus(ctx, documentID, model.StatusProcessing); err != nil {
		return nil, fmt.Errorf("mark processing: %w", err)
	}
	if err := s.queue.Enqueue(documentID); err != nil {
		// The job never entered the queue; put the document back where it was.
		_ = s.docs.UpdateStatus(ctx, documentID, doc.Status)
		return nil, fmt.Errorf("enqueue recognition: %w", err)
	}

	doc.Status = model.StatusProcessing
	return doc, nil
}

func (s *ocrService) Results(ctx context.Context, documentID string) ([]model.OcrResult, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	return s.results.ListByDocument(ctx, documentID)
}
