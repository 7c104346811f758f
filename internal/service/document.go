package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docsafe/internal/model"
	"docsafe/internal/repository"
	"docsafe/internal/storage"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("document not found")
	ErrReaderNil  = errors.New("reader is nil")
)

// DefaultPresignExpiry is used when no download expiry is configured.
const DefaultPresignExpiry = 15 * time.Minute

// DocumentListResult is the service-level DTO for paginated documents.
// Page and Limit carry the normalized paging values back to the caller so the
// response envelope can echo them.
type DocumentListResult struct {
	Documents []model.DocumentRow `json:"data"`
	Total     int                 `json:"total"`
	Pages     int                 `json:"pages"`
	Page      int                 `json:"page"`
	Limit     int                 `json:"limit"`
}

// DocumentUpdateParams carries the admin-editable fields. Nil pointers leave
// a field untouched. SetFolder distinguishes "leave folder as is" from
// "move to FolderID" where a nil FolderID removes the document from its folder.
type DocumentUpdateParams struct {
	Title     *string
	Status    *string
	SetFolder bool
	FolderID  *string
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload stores the content in object storage and saves metadata with
	// status "uploaded". Storage is rolled back if the metadata save fails.
	// originalFilename is used only to extract the extension; the stored key
	// is a UUID plus that extension.
	Upload(ctx context.Context, ownerID, title, originalFilename, contentType string, r io.Reader, size int64) (*model.Document, error)

	// List returns one page of denormalized rows for the given filter. A
	// filter naming an empty folder short-circuits to an empty page without
	// touching the documents table.
	List(ctx context.Context, f repository.DocumentFilter, defaultLimit int) (*DocumentListResult, error)

	// Get returns a single document by its ID.
	Get(ctx context.Context, id string) (*model.Document, error)

	// GetDetail returns a document with owner, folder, tags and OCR results
	// inlined for the admin detail view.
	GetDetail(ctx context.Context, id string) (*model.DocumentDetail, error)

	// DownloadURL returns a time-limited presigned URL for the stored object.
	DownloadURL(ctx context.Context, id string) (string, error)

	// Update applies admin edits and, when requested, reassigns the folder.
	Update(ctx context.Context, actorID, id string, params DocumentUpdateParams) (*model.Document, error)

	// Delete removes the object from storage and the document row with its
	// dependent rows.
	Delete(ctx context.Context, actorID, id string) error
}

type documentService struct {
	store         storage.Storage
	docs          repository.DocumentRepository
	folders       repository.FolderRepository
	activities    repository.ActivityRepository
	presignExpiry time.Duration
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, docs repository.DocumentRepository, folders repository.FolderRepository, activities repository.ActivityRepository, presignExpiry time.Duration) DocumentService {
	if presignExpiry <= 0 {
		presignExpiry = DefaultPresignExpiry
	}
	return &documentService{
		store:         store,
		docs:          docs,
		folders:       folders,
		activities:    activities,
		presignExpiry: presignExpiry,
	}
}

func (s *documentService) Upload(ctx context.Context, ownerID, title, originalFilename, contentType string, r io.Reader, size int64) (*model.Document, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	ext := filepath.Ext(originalFilename)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("documents", genName))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": originalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	if title == "" {
		title = originalFilename
	}
	now := time.Now().UTC()
	doc := &model.Document{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Title:       title,
		Filename:    originalFilename,
		StoragePath: objInfo.Key,
		FileSize:    objInfo.Size,
		MimeType:    contentType,
		Status:      model.StatusUploaded,
		PageCount:   1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stored, err := s.docs.Create(ctx, doc)
	if err != nil {
		// Rollback: delete the object from storage
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	s.logActivity(ctx, ownerID, "document_uploaded", "document", stored.ID, map[string]any{
		"filename":  stored.Filename,
		"file_size": stored.FileSize,
	})
	return stored, nil
}

func (s *documentService) List(ctx context.Context, f repository.DocumentFilter, defaultLimit int) (*DocumentListResult, error) {
	f = f.Normalized(defaultLimit)

	if f.FolderID != "" {
		ids, err := s.folders.DocumentIDs(ctx, f.FolderID)
		if err != nil {
			return nil, fmt.Errorf("resolve folder documents: %w", err)
		}
		// An empty folder yields an empty page; no document query runs.
		if len(ids) == 0 {
			return &DocumentListResult{
				Documents: []model.DocumentRow{},
				Total:     0,
				Pages:     0,
				Page:      f.Page,
				Limit:     f.Limit,
			}, nil
		}
		f.IDs = ids
	}

	res, err := s.docs.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{
		Documents: res.Items,
		Total:     res.Total,
		Pages:     (res.Total + f.Limit - 1) / f.Limit,
		Page:      f.Page,
		Limit:     f.Limit,
	}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) GetDetail(ctx context.Context, id string) (*model.DocumentDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	detail, err := s.docs.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return detail, nil
}

func (s *documentService) DownloadURL(ctx context.Context, id string) (string, error) {
	doc, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	url, err := s.store.PresignGet(ctx, doc.StoragePath, s.presignExpiry)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}
	return url, nil
}

func (s *documentService) Update(ctx context.Context, actorID, id string, params DocumentUpdateParams) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if params.Title != nil || params.Status != nil {
		err := s.docs.Update(ctx, id, repository.DocumentUpdate{
			Title:  params.Title,
			Status: params.Status,
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}
	if params.SetFolder {
		if err := s.folders.MoveDocuments(ctx, []string{id}, params.FolderID); err != nil {
			return nil, fmt.Errorf("reassign folder: %w", err)
		}
	}

	doc, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.logActivity(ctx, actorID, "document_updated", "document", id, nil)
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, actorID, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	// Delete from storage first; if this fails, keep DB row to avoid losing the storage reference
	if err := s.store.Delete(ctx, doc.StoragePath); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	if err := s.docs.Delete(ctx, id); err != nil {
		return err
	}
	s.logActivity(ctx, actorID, "document_deleted", "document", id, map[string]any{
		"filename": doc.Filename,
	})
	return nil
}

// logActivity appends an audit record. Audit failures never fail the
// operation they describe.
func (s *documentService) logActivity(ctx context.Context, userID, action, entityType, entityID string, metadata map[string]any) {
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
