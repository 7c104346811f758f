package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docsafe/internal/model"
	"docsafe/internal/repository"
)

var (
	ErrFolderNotFound     = errors.New("folder not found")
	ErrFolderNameRequired = errors.New("folder name is required")
	ErrNoDocuments        = errors.New("document ids are required")
)

// FolderCreateParams are the fields accepted when creating a folder.
type FolderCreateParams struct {
	Name        string
	Description string
	Color       string
}

// FolderService defines the use cases for folders and the documents grouped
// under them.
type FolderService interface {
	// Create inserts a new folder owned by the acting user.
	Create(ctx context.Context, actorID string, params FolderCreateParams) (*model.Folder, error)

	// List returns all folders with their derived document counts.
	List(ctx context.Context) ([]model.Folder, error)

	// Update applies partial edits to a folder.
	Update(ctx context.Context, actorID, id string, upd repository.FolderUpdate) (*model.Folder, error)

	// Delete removes a folder and its associations without deleting the
	// documents themselves.
	Delete(ctx context.Context, actorID, id string) error

	// Move reassigns documents to a folder in one transaction. A nil folderID
	// removes the documents from whatever folder they are in.
	Move(ctx context.Context, actorID string, documentIDs []string, folderID *string) error
}

type folderService struct {
	folders    repository.FolderRepository
	activities repository.ActivityRepository
}

// NewFolderService constructs a new FolderService.
func NewFolderService(folders repository.FolderRepository, activities repository.ActivityRepository) FolderService {
	return &folderService{folders: folders, activities: activities}
}

func (s *folderService) Create(ctx context.Context, actorID string, params FolderCreateParams) (*model.Folder, error) {
	if params.Name == "" {
		return nil, ErrFolderNameRequired
	}
	color := params.Color
	if color == "" {
		color = "#3B82F6"
	}
	folder := &model.Folder{
		ID:          uuid.New().String(),
		Name:        params.Name,
		Description: params.Description,
		Color:       color,
		CreatedBy:   actorID,
		CreatedAt:   time.Now().UTC(),
	}
	stored, err := s.folders.Create(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	s.logActivity(ctx, actorID, "folder_created", "folder", stored.ID, map[string]any{"name": stored.Name})
	return stored, nil
}

func (s *folderService) List(ctx context.Context) ([]model.Folder, error) {
	return s.folders.List(ctx)
}

func (s *folderService) Update(ctx context.Context, actorID, id string, upd repository.FolderUpdate) (*model.Folder, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if upd.Name != nil && *upd.Name == "" {
		return nil, ErrFolderNameRequired
	}
	if err := s.folders.Update(ctx, id, upd); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	folder, err := s.folders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrFolderNotFound
		}
		return nil, err
	}
	s.logActivity(ctx, actorID, "folder_updated", "folder", id, nil)
	return folder, nil
}

func (s *folderService) Delete(ctx context.Context, actorID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.folders.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFolderNotFound
		}
		return err
	}
	s.logActivity(ctx, actorID, "folder_deleted", "folder", id, nil)
	return nil
}

func (s *folderService) Move(ctx context.Context, actorID string, documentIDs []string, folderID *string) error {
	if len(documentIDs) == 0 {
		return ErrNoDocuments
	}
	if folderID != nil {
		if _, err := s.folders.FindByID(ctx, *folderID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrFolderNotFound
			}
			return err
		}
	}
	if err := s.folders.MoveDocuments(ctx, documentIDs, folderID); err != nil {
		return fmt.Errorf("move documents: %w", err)
	}

	meta := map[string]any{"document_count": len(documentIDs)}
	if folderID != nil {
		meta["folder_id"] = *folderID
	}
	s.logActivity(ctx, actorID, "documents_moved", "folder", "", meta)
	return nil
}

func (s *folderService) logActivity(ctx context.Context, userID, action, entityType, entityID string, metadata map[string]any) {
	_ = s.activities.Insert(ctx, &model.Activity{
		ID:         uuid.New().String(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
		CreatedAt:  time.Now().UTC(),
	})
}
