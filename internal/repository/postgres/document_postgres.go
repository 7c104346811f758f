package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"docsafe/internal/model"
	"docsafe/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// IsNoRowsError reports whether err means the queried row does not exist.
func IsNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, owner_id, title, filename, storage_path, file_size, mime_type, status, page_count, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, COALESCE(owner_id::text, ''), title, filename, storage_path, file_size, mime_type, status, page_count, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.OwnerID,
		doc.Title,
		doc.Filename,
		doc.StoragePath,
		doc.FileSize,
		doc.MimeType,
		doc.Status,
		doc.PageCount,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	var out model.Document
	if err := scanDocument(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT id, COALESCE(owner_id::text, ''), title, filename, storage_path, file_size, mime_type, status, page_count, created_at, updated_at
		FROM documents
		WHERE id = $1
	`
	var d model.Document
	if err := scanDocument(r.db.QueryRowContext(ctx, q, id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// FindDetailByID fetches a document with owner, folder, tags and OCR results inlined.
func (r *DocumentPostgres) FindDetailByID(ctx context.Context, id string) (*model.DocumentDetail, error) {
	const q = `
		SELECT d.id, COALESCE(d.owner_id::text, ''), d.title, d.filename, d.storage_path, d.file_size, d.mime_type, d.status, d.page_count, d.created_at, d.updated_at,
		       u.first_name, u.last_name, u.email, u.role,
		       f.id, f.name, f.color
		FROM documents d
		LEFT JOIN users u ON u.id = d.owner_id
		LEFT JOIN folder_documents fd ON fd.document_id = d.id
		LEFT JOIN document_folders f ON f.id = fd.folder_id
		WHERE d.id = $1
	`
	var (
		det       model.DocumentDetail
		ownerRole sql.NullString
	)
	if err := scanDocumentRow(r.db.QueryRowContext(ctx, q, id), &det.DocumentRow, &ownerRole); err != nil {
		return nil, err
	}
	det.OwnerRole = ownerRole.String
	if det.OwnerRole == "" {
		det.OwnerRole = model.RoleEmpleado
	}

	tags, err := r.listTags(ctx, id)
	if err != nil {
		return nil, err
	}
	det.Tags = tags
	det.TagsCount = len(tags)

	ocr, err := r.listOcrResults(ctx, id)
	if err != nil {
		return nil, err
	}
	det.OCRResults = ocr
	det.OCRPagesCount = len(ocr)

	return &det, nil
}

// List returns one page of denormalized rows plus the total count.
// The filter is expected to be normalized by the service layer.
func (r *DocumentPostgres) List(ctx context.Context, f repository.DocumentFilter) (*repository.PageResult[model.DocumentRow], error) {
	where, args := buildDocumentWhere(f)

	qCount := `SELECT COUNT(*) FROM documents d` + where
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := `
		SELECT d.id, COALESCE(d.owner_id::text, ''), d.title, d.filename, d.storage_path, d.file_size, d.mime_type, d.status, d.page_count, d.created_at, d.updated_at,
		       u.first_name, u.last_name, u.email, u.role,
		       f.id, f.name, f.color
		FROM documents d
		LEFT JOIN users u ON u.id = d.owner_id
		LEFT JOIN folder_documents fd ON fd.document_id = d.id
		LEFT JOIN document_folders f ON f.id = fd.folder_id` +
		where +
		fmt.Sprintf(" ORDER BY d.%s %s, d.id DESC", f.SortBy, strings.ToUpper(f.SortOrder)) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, f.Limit, f.Offset())

	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentRow, 0)
	for rows.Next() {
		var (
			dr   model.DocumentRow
			role sql.NullString
		)
		if err := scanDocumentRow(rows, &dr, &role); err != nil {
			return nil, err
		}
		items = append(items, dr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.DocumentRow]{Items: items, Total: total}, nil
}

// Update applies non-nil field updates and bumps updated_at.
func (r *DocumentPostgres) Update(ctx context.Context, id string, upd repository.DocumentUpdate) error {
	sets := []string{}
	args := []any{}
	if upd.Title != nil {
		args = append(args, *upd.Title)
		sets = append(sets, "title = $"+strconv.Itoa(len(args)))
	}
	if upd.Status != nil {
		args = append(args, *upd.Status)
		sets = append(sets, "status = $"+strconv.Itoa(len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, time.Now().UTC())
	sets = append(sets, "updated_at = $"+strconv.Itoa(len(args)))
	args = append(args, id)

	q := "UPDATE documents SET " + strings.Join(sets, ", ") + " WHERE id = $" + strconv.Itoa(len(args))
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus sets the document status and bumps updated_at.
func (r *DocumentPostgres) UpdateStatus(ctx context.Context, id, status string) error {
	const q = `UPDATE documents SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, q, status, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListMeta loads status, file_size and created_at for every document.
func (r *DocumentPostgres) ListMeta(ctx context.Context) ([]model.Document, error) {
	const q = `SELECT id, status, file_size, created_at FROM documents`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Status, &d.FileSize, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// CreatedSince returns documents created at or after the given instant.
func (r *DocumentPostgres) CreatedSince(ctx context.Context, since time.Time, ownerID string) ([]model.Document, error) {
	q := `SELECT id, status, file_size, created_at FROM documents WHERE created_at >= $1`
	args := []any{since}
	if ownerID != "" {
		q += ` AND owner_id = $2`
		args = append(args, ownerID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(&d.ID, &d.Status, &d.FileSize, &d.CreatedAt); err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// Delete removes a document together with its dependent rows inside one
// transaction. It returns sql.ErrNoRows if the document does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM ocr_results WHERE document_id = $1`,
		`DELETE FROM document_tags WHERE document_id = $1`,
		`DELETE FROM shared_documents WHERE document_id = $1`,
		`DELETE FROM folder_documents WHERE document_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, q, id); err != nil {
			return err
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return tx.Commit()
}

func (r *DocumentPostgres) listTags(ctx context.Context, documentID string) ([]model.DocumentTag, error) {
	const q = `SELECT id, document_id, tag, color, created_at FROM document_tags WHERE document_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, q, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]model.DocumentTag, 0)
	for rows.Next() {
		var t model.DocumentTag
		if err := rows.Scan(&t.ID, &t.DocumentID, &t.Tag, &t.Color, &t.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

func (r *DocumentPostgres) listOcrResults(ctx context.Context, documentID string) ([]model.OcrResult, error) {
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

// buildDocumentWhere renders the WHERE clause and its positional arguments for
// the normalized filter. The same clause backs the COUNT and page queries.
func buildDocumentWhere(f repository.DocumentFilter) (string, []any) {
	conds := []string{}
	args := []any{}

	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if f.Search != "" {
		p := next("%" + f.Search + "%")
		conds = append(conds, fmt.Sprintf("(d.title ILIKE %s OR d.filename ILIKE %s)", p, p))
	}
	if len(f.Status) > 0 {
		ps := make([]string, len(f.Status))
		for i, s := range f.Status {
			ps[i] = next(s)
		}
		conds = append(conds, "d.status IN ("+strings.Join(ps, ", ")+")")
	}
	// No category relation is wired up yet; category predicates match the
	// document mime type, same as document_type.
	if len(f.Category) > 0 {
		ps := make([]string, len(f.Category))
		for i, c := range f.Category {
			ps[i] = next(c)
		}
		conds = append(conds, "d.mime_type IN ("+strings.Join(ps, ", ")+")")
	}
	if f.MimeType != "" {
		conds = append(conds, "d.mime_type = "+next(f.MimeType))
	}
	if f.OwnerID != "" {
		conds = append(conds, "d.owner_id = "+next(f.OwnerID))
	}
	if f.DateFrom != "" {
		// "YYYY-MM" month bounds approximated by day-of-month concatenation,
		// matching the historical filter behavior.
		conds = append(conds, "d.created_at >= "+next(f.DateFrom+"-01"))
	}
	if f.DateTo != "" {
		conds = append(conds, "d.created_at < "+next(f.DateTo+"-31"))
	}
	if len(f.IDs) > 0 {
		ps := make([]string, len(f.IDs))
		for i, id := range f.IDs {
			ps[i] = next(id)
		}
		conds = append(conds, "d.id IN ("+strings.Join(ps, ", ")+")")
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner, d *model.Document) error {
	return row.Scan(
		&d.ID,
		&d.OwnerID,
		&d.Title,
		&d.Filename,
		&d.StoragePath,
		&d.FileSize,
		&d.MimeType,
		&d.Status,
		&d.PageCount,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
}

func scanDocumentRow(row rowScanner, dr *model.DocumentRow, ownerRole *sql.NullString) error {
	var (
		firstName, lastName, email        sql.NullString
		folderID, folderName, folderColor sql.NullString
	)
	if err := row.Scan(
		&dr.ID,
		&dr.OwnerID,
		&dr.Title,
		&dr.Filename,
		&dr.StoragePath,
		&dr.FileSize,
		&dr.MimeType,
		&dr.Status,
		&dr.PageCount,
		&dr.CreatedAt,
		&dr.UpdatedAt,
		&firstName,
		&lastName,
		&email,
		ownerRole,
		&folderID,
		&folderName,
		&folderColor,
	); err != nil {
		return err
	}

	owner := model.User{FirstName: firstName.String, LastName: lastName.String}
	dr.OwnerName = owner.FullName()
	dr.OwnerEmail = email.String
	if folderID.Valid {
		dr.FolderID = &folderID.String
		dr.FolderName = &folderName.String
		dr.FolderColor = &folderColor.String
	}
	return nil
}
