package ocr

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docsafe/internal/model"
)

// Engine recognizes text in a stored document. The real recognition work is
// delegated; this service only orchestrates it.
type Engine interface {
	Recognize(ctx context.Context, doc *model.Document) (*model.OcrResult, error)
}

// SimulatedEngine is a stand-in recognition engine. It sleeps for a fixed
// delay and produces a canned single-page result, so the full status
// lifecycle can be exercised without a recognition backend.
type SimulatedEngine struct {
	Delay time.Duration
}

var _ Engine = (*SimulatedEngine)(nil)

// Recognize returns a mock result after the configured delay. It honors
// context cancellation during the simulated processing time.
func (e *SimulatedEngine) Recognize(ctx context.Context, doc *model.Document) (*model.OcrResult, error) {
	select {
	case <-time.After(e.Delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	now := time.Now().UTC()
	text := fmt.Sprintf(`Documento procesado con OCR - %s

Este es un texto de ejemplo extraído del documento.
Se detectaron los siguientes elementos:
- Fecha: %s
- Documento: Factura/Recibo
- Estado: Procesado correctamente

El procesamiento OCR se completó exitosamente.`, now.Format(time.RFC3339), now.Format("02/01/2006"))

	return &model.OcrResult{
		ID:          uuid.New().String(),
		DocumentID:  doc.ID,
		PageNumber:  1,
		TextContent: text,
		Confidence:  85.5,
		Language:    "es",
		RawData: map[string]any{
			"engine":               "mock-ocr",
			"processed_at":         now.Format(time.RFC3339),
			"confidence_threshold": 75,
			"pages_processed":      1,
		},
		ProcessedAt: now,
	}, nil
}
