package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"docsafe/internal/model"
	"docsafe/internal/repository"
)

// FolderPostgres is a PostgreSQL implementation of repository.FolderRepository.
type FolderPostgres struct {
	db *sql.DB
}

// NewFolderPostgres creates a new FolderPostgres repository.
func NewFolderPostgres(db *sql.DB) *FolderPostgres {
	return &FolderPostgres{db: db}
}

var _ repository.FolderRepository = (*FolderPostgres)(nil)

// Create inserts a folder row and returns the stored record.
func (r *FolderPostgres) Create(ctx context.Context, f *model.Folder) (*model.Folder, error) {
	const q = `
		INSERT INTO document_folders (id, name, description, color, created_by, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6)
		RETURNING id, name, description, color, COALESCE(created_by::text, ''), created_at
	`
	row := r.db.QueryRowContext(ctx, q, f.ID, f.Name, f.Description, f.Color, f.CreatedBy, f.CreatedAt)
	var out model.Folder
	if err := row.Scan(&out.ID, &out.Name, &out.Description, &out.Color, &out.CreatedBy, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single folder without the derived document count.
func (r *FolderPostgres) FindByID(ctx context.Context, id string) (*model.Folder, error) {
	const q = `
		SELECT id, name, description, color, COALESCE(created_by::text, ''), created_at
		FROM document_folders
		WHERE id = $1
	`
	var f model.Folder
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&f.ID, &f.Name, &f.Description, &f.Color, &f.CreatedBy, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns all folders ordered by name, each with its junction row count.
func (r *FolderPostgres) List(ctx context.Context) ([]model.Folder, error) {
	const q = `
		SELECT f.id, f.name, f.description, f.color, COALESCE(f.created_by::text, ''), f.created_at,
		       COUNT(fd.document_id)
		FROM document_folders f
		LEFT JOIN folder_documents fd ON fd.folder_id = f.id
		GROUP BY f.id, f.name, f.description, f.color, f.created_by, f.created_at
		ORDER BY f.name
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := make([]model.Folder, 0)
	for rows.Next() {
		var f model.Folder
		if err := rows.Scan(&f.ID, &f.Name, &f.Description, &f.Color, &f.CreatedBy, &f.CreatedAt, &f.DocumentCount); err != nil {
			return nil, err
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// Update applies non-nil field updates.
func (r *FolderPostgres) Update(ctx context.Context, id string, upd repository.FolderUpdate) error {
	sets := []string{}
	args := []any{}
	if upd.Name != nil {
		args = append(args, *upd.Name)
		sets = append(sets, "name = $"+strconv.Itoa(len(args)))
	}
	if upd.Description != nil {
		args = append(args, *upd.Description)
		sets = append(sets, "description = $"+strconv.Itoa(len(args)))
	}
	if upd.Color != nil {
		args = append(args, *upd.Color)
		sets = append(sets, "color = $"+strconv.Itoa(len(args)))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)

	q := "UPDATE document_folders SET " + strings.Join(sets, ", ") + " WHERE id = $" + strconv.Itoa(len(args))
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

// Delete removes the folder and its junction rows inside one transaction.
// Associated documents are only unlinked, never deleted.
func (r *FolderPostgres) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM folder_documents WHERE folder_id = $1`, id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM document_folders WHERE id = $1`, id)
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

// DocumentIDs returns the IDs of all documents associated with a folder.
func (r *FolderPostgres) DocumentIDs(ctx context.Context, folderID string) ([]string, error) {
	const q = `SELECT document_id FROM folder_documents WHERE folder_id = $1`
	rows, err := r.db.QueryContext(ctx, q, folderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MoveDocuments reassigns the given documents to the target folder. Delete and
// insert run in one transaction so a failure cannot leave documents orphaned
// from their prior folder.
func (r *FolderPostgres) MoveDocuments(ctx context.Context, documentIDs []string, folderID *string) error {
	if len(documentIDs) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ps := make([]string, len(documentIDs))
	args := make([]any, len(documentIDs))
	for i, id := range documentIDs {
		ps[i] = "$" + strconv.Itoa(i+1)
		args[i] = id
	}
	qDel := `DELETE FROM folder_documents WHERE document_id IN (` + strings.Join(ps, ", ") + `)`
	if _, err := tx.ExecContext(ctx, qDel, args...); err != nil {
		return err
	}

	if folderID != nil {
		const qIns = `INSERT INTO folder_documents (folder_id, document_id) VALUES ($1, $2)`
		for _, id := range documentIDs {
			if _, err := tx.ExecContext(ctx, qIns, *folderID, id); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
