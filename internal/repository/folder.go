package repository

import (
	"context"

	"docsafe/internal/model"
)

// FolderUpdate carries the editable folder fields. Nil pointers leave the
// column untouched.
type FolderUpdate struct {
	Name        *string
	Description *string
	Color       *string
}

// FolderRepository defines data access for folders and the folder-document
// junction table.
type FolderRepository interface {
	// Create inserts a folder and returns the stored row.
	Create(ctx context.Context, f *model.Folder) (*model.Folder, error)

	// FindByID returns a folder by its ID without the derived document count.
	FindByID(ctx context.Context, id string) (*model.Folder, error)

	// List returns all folders ordered by name with document_count derived
	// from the junction table.
	List(ctx context.Context) ([]model.Folder, error)

	// Update applies the given field updates.
	Update(ctx context.Context, id string, upd FolderUpdate) error

	// Delete removes the folder and its associations. Documents themselves
	// are left untouched.
	Delete(ctx context.Context, id string) error

	// DocumentIDs returns the IDs of all documents associated with a folder.
	DocumentIDs(ctx context.Context, folderID string) ([]string, error)

	// MoveDocuments reassigns the given documents to the target folder inside
	// one transaction: existing associations are deleted and, unless folderID
	// is nil, one junction row per document is inserted.
	MoveDocuments(ctx context.Context, documentIDs []string, folderID *string) error
}
