package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"docsafe/internal/model"
	"docsafe/internal/repository"
)

// ActivityPostgres is a PostgreSQL implementation of repository.ActivityRepository.
type ActivityPostgres struct {
	db *sql.DB
}

// NewActivityPostgres creates a new ActivityPostgres repository.
func NewActivityPostgres(db *sql.DB) *ActivityPostgres {
	return &ActivityPostgres{db: db}
}

var _ repository.ActivityRepository = (*ActivityPostgres)(nil)

// Insert appends one activity record.
func (r *ActivityPostgres) Insert(ctx context.Context, a *model.Activity) error {
	raw, err := json.Marshal(a.Metadata)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO activities (id, user_id, action, entity_type, entity_id, metadata, created_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, NULLIF($4, ''), NULLIF($5, ''), $6, $7)
	`
	_, err = r.db.ExecContext(ctx, q, a.ID, a.UserID, a.Action, a.EntityType, a.EntityID, raw, a.CreatedAt)
	return err
}

// CreatedSince returns activities created at or after the given instant.
func (r *ActivityPostgres) CreatedSince(ctx context.Context, since time.Time, userID string) ([]model.Activity, error) {
	q := `
		SELECT id, COALESCE(user_id::text, ''), action, COALESCE(entity_type, ''), COALESCE(entity_id, ''), metadata, created_at
		FROM activities
		WHERE created_at >= $1
	`
	args := []any{since}
	if userID != "" {
		q += ` AND user_id = $2`
		args = append(args, userID)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := make([]model.Activity, 0)
	for rows.Next() {
		var (
			a   model.Activity
			raw []byte
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.EntityType, &a.EntityID, &raw, &a.CreatedAt); err != nil {
			return nil, err
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &a.Metadata); err != nil {
				return nil, err
			}
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
