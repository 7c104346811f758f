package repository

import (
	"context"
	"time"

	"docsafe/internal/model"
)

// ActivityRepository is the append-only audit trail.
type ActivityRepository interface {
	// Insert appends one activity record.
	Insert(ctx context.Context, a *model.Activity) error

	// CreatedSince returns activities created at or after the given instant,
	// optionally restricted to one user.
	CreatedSince(ctx context.Context, since time.Time, userID string) ([]model.Activity, error)
}
