package repository

import (
	"context"

	"docsafe/internal/model"
)

// UserRepository maintains the local mirror of identity-provider accounts.
type UserRepository interface {
	// Upsert inserts the user or refreshes the mirror row keyed by external ID.
	Upsert(ctx context.Context, u *model.User) (*model.User, error)

	// FindByExternalID returns the mirrored user for an identity-provider ID.
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)

	// FindByID returns a user by its local ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// List returns all mirrored users ordered by creation time, newest first.
	List(ctx context.Context) ([]model.User, error)

	// DeleteByExternalID removes the mirror row for an identity-provider ID.
	DeleteByExternalID(ctx context.Context, externalID string) error
}
