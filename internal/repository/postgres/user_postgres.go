package postgres

import (
	"context"
	"database/sql"

	"docsafe/internal/model"
	"docsafe/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
// Rows mirror identity-provider accounts; the provider stays the source of
// truth for authentication.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

const userColumns = `id, external_id, first_name, last_name, email, username, role, avatar_url, created_at, updated_at, last_sign_in_at`

// Upsert inserts the user or refreshes the mirror row keyed by external_id.
func (r *UserPostgres) Upsert(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, external_id, first_name, last_name, email, username, role, avatar_url, created_at, updated_at, last_sign_in_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (external_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			email = EXCLUDED.email,
			username = EXCLUDED.username,
			role = EXCLUDED.role,
			avatar_url = EXCLUDED.avatar_url,
			updated_at = EXCLUDED.updated_at,
			last_sign_in_at = EXCLUDED.last_sign_in_at
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, q,
		u.ID, u.ExternalID, u.FirstName, u.LastName, u.Email, u.Username, u.Role, u.AvatarURL,
		u.CreatedAt, u.UpdatedAt, u.LastSignInAt,
	)
	var out model.User
	if err := scanUser(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByExternalID returns the mirrored user for an identity-provider ID.
func (r *UserPostgres) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE external_id = $1`
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, externalID), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID returns a user by its local ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all mirrored users, newest first.
func (r *UserPostgres) List(ctx context.Context) ([]model.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteByExternalID removes the mirror row for an identity-provider ID.
// It returns nil if the row did not exist.
func (r *UserPostgres) DeleteByExternalID(ctx context.Context, externalID string) error {
	const q = `DELETE FROM users WHERE external_id = $1`
	_, err := r.db.ExecContext(ctx, q, externalID)
	return err
}

func scanUser(row rowScanner, u *model.User) error {
	var lastSignIn sql.NullTime
	if err := row.Scan(
		&u.ID,
		&u.ExternalID,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.Username,
		&u.Role,
		&u.AvatarURL,
		&u.CreatedAt,
		&u.UpdatedAt,
		&lastSignIn,
	); err != nil {
		return err
	}
	if lastSignIn.Valid {
		t := lastSignIn.Time
		u.LastSignInAt = &t
	}
	return nil
}
