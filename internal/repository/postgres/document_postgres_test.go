package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"docsafe/internal/model"
	"docsafe/internal/repository"
)

var docColumns = []string{
	"id", "owner_id", "title", "filename", "storage_path", "file_size",
	"mime_type", "status", "page_count", "created_at", "updated_at",
}

var docRowColumns = append(append([]string{}, docColumns...),
	"first_name", "last_name", "email", "role", "folder_id", "folder_name", "folder_color")

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          "test-uuid",
		OwnerID:     "owner-uuid",
		Title:       "Factura enero",
		Filename:    "factura.pdf",
		StoragePath: "documents/factura.pdf",
		FileSize:    123,
		MimeType:    "application/pdf",
		Status:      model.StatusUploaded,
		PageCount:   1,
		CreatedAt:   now,
	}

	rows := sqlmock.NewRows(docColumns).
		AddRow(doc.ID, doc.OwnerID, doc.Title, doc.Filename, doc.StoragePath, doc.FileSize,
			doc.MimeType, doc.Status, doc.PageCount, doc.CreatedAt, doc.UpdatedAt)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.OwnerID, doc.Title, doc.Filename, doc.StoragePath, doc.FileSize,
			doc.MimeType, doc.Status, doc.PageCount, doc.CreatedAt, doc.UpdatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, model.StatusUploaded, result.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(docColumns).
			AddRow("test-id", "", "Titulo", "file.pdf", "documents/file.pdf", 100,
				"application/pdf", model.StatusProcessed, 1, time.Now(), time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents").
			WithArgs("test-id").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, "test-id", doc.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.Nil(t, doc)
		assert.True(t, IsNoRowsError(err))
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("search matches title or filename case-insensitively", func(t *testing.T) {
		f := repository.DocumentFilter{Search: "factura"}.Normalized(10)

		mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents d WHERE \(d\.title ILIKE \$1 OR d\.filename ILIKE \$1\)`).
			WithArgs("%factura%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows(docRowColumns).
			AddRow("d1", "", "Factura enero", "factura.pdf", "documents/x.pdf", 10,
				"application/pdf", model.StatusUploaded, 1, time.Now(), time.Now(),
				"Ana", "Diaz", "ana@x.com", "empleado", nil, nil, nil)

		mock.ExpectQuery(`ORDER BY d\.created_at DESC, d\.id DESC LIMIT \$2 OFFSET \$3`).
			WithArgs("%factura%", 10, 0).
			WillReturnRows(rows)

		res, err := repo.List(ctx, f)

		assert.NoError(t, err)
		assert.Equal(t, 1, res.Total)
		assert.Len(t, res.Items, 1)
		assert.Equal(t, "Ana Diaz", res.Items[0].OwnerName)
		assert.Nil(t, res.Items[0].FolderID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("status and id predicates expand positionally", func(t *testing.T) {
		f := repository.DocumentFilter{
			Status: []string{model.StatusUploaded, model.StatusProcessed},
			IDs:    []string{"d1", "d2"},
		}.Normalized(10)

		mock.ExpectQuery(`d\.status IN \(\$1, \$2\) AND d\.id IN \(\$3, \$4\)`).
			WithArgs(model.StatusUploaded, model.StatusProcessed, "d1", "d2").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`d\.status IN \(\$1, \$2\) AND d\.id IN \(\$3, \$4\)`).
			WithArgs(model.StatusUploaded, model.StatusProcessed, "d1", "d2", 10, 0).
			WillReturnRows(sqlmock.NewRows(docRowColumns))

		res, err := repo.List(ctx, f)

		assert.NoError(t, err)
		assert.Equal(t, 0, res.Total)
		assert.Empty(t, res.Items)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("month bounds concatenate day of month", func(t *testing.T) {
		f := repository.DocumentFilter{DateFrom: "2026-01", DateTo: "2026-03"}.Normalized(10)

		mock.ExpectQuery(`d\.created_at >= \$1 AND d\.created_at < \$2`).
			WithArgs("2026-01-01", "2026-03-31").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
		mock.ExpectQuery(`d\.created_at >= \$1 AND d\.created_at < \$2`).
			WithArgs("2026-01-01", "2026-03-31", 10, 0).
			WillReturnRows(sqlmock.NewRows(docRowColumns))

		_, err := repo.List(ctx, f)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestDocumentPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()
	title := "Renombrado"

	t.Run("updates and bumps updated_at", func(t *testing.T) {
		mock.ExpectExec(`UPDATE documents SET title = \$1, updated_at = \$2 WHERE id = \$3`).
			WithArgs(title, sqlmock.AnyArg(), "d1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, "d1", repository.DocumentUpdate{Title: &title})
		assert.NoError(t, err)
	})

	t.Run("missing row", func(t *testing.T) {
		mock.ExpectExec(`UPDATE documents SET`).
			WithArgs(title, sqlmock.AnyArg(), "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, "missing", repository.DocumentUpdate{Title: &title})
		assert.True(t, IsNoRowsError(err))
	})

	t.Run("no fields is a no-op", func(t *testing.T) {
		err := repo.Update(ctx, "d1", repository.DocumentUpdate{})
		assert.NoError(t, err)
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("removes dependents then the row in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM ocr_results`).WithArgs("d1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM document_tags`).WithArgs("d1").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM shared_documents`).WithArgs("d1").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM folder_documents`).WithArgs("d1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM documents`).WithArgs("d1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := repo.Delete(ctx, "d1")

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing document rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM ocr_results`).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM document_tags`).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM shared_documents`).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM folder_documents`).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`DELETE FROM documents`).WithArgs("missing").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := repo.Delete(ctx, "missing")

		assert.True(t, IsNoRowsError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
