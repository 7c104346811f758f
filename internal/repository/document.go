package repository

import (
	"context"
	"time"

	"docsafe/internal/model"
)

// DocumentUpdate carries the admin-editable document fields. Nil pointers
// leave the column untouched.
type DocumentUpdate struct {
	Title  *string
	Status *string
}

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// FindDetailByID returns a document with owner, folder, tags and OCR
	// results inlined for the admin detail view.
	FindDetailByID(ctx context.Context, id string) (*model.DocumentDetail, error)

	// List returns one page of denormalized rows plus the total count for the
	// given filter. The filter must already be normalized.
	List(ctx context.Context, f DocumentFilter) (*PageResult[model.DocumentRow], error)

	// Update applies the given field updates and bumps updated_at.
	Update(ctx context.Context, id string, upd DocumentUpdate) error

	// UpdateStatus sets the document status.
	UpdateStatus(ctx context.Context, id, status string) error

	// ListMeta loads status, file_size and created_at for every document.
	// Used by the statistics snapshot.
	ListMeta(ctx context.Context) ([]model.Document, error)

	// CreatedSince returns documents created at or after the given instant,
	// optionally restricted to one owner.
	CreatedSince(ctx context.Context, since time.Time, ownerID string) ([]model.Document, error)

	// Delete removes a document row together with its dependent rows
	// (OCR results, tags, shares, folder associations).
	Delete(ctx context.Context, id string) error
}
