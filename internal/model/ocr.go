package model

import "time"

// OcrResult is one page of recognized text for a document.
type OcrResult struct {
	ID          string         `json:"id"`
	DocumentID  string         `json:"document_id"`
	PageNumber  int            `json:"page_number"`
	TextContent string         `json:"text_content"`
	Confidence  float64        `json:"confidence"`
	Language    string         `json:"language"`
	RawData     map[string]any `json:"raw_data"`
	ProcessedAt time.Time      `json:"processed_at"`
}
