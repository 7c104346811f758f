package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docsafe/internal/identity"
	"docsafe/internal/model"
	"docsafe/internal/repository"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailRequired = errors.New("email is required")
	ErrInvalidRole   = errors.New("invalid role")
)

// AccountProvider is the slice of the identity-provider admin API the user
// service needs. Satisfied by *identity.Client.
type AccountProvider interface {
	ListAccounts(ctx context.Context, page, limit int, search string) ([]identity.Account, int, error)
	CreateAccount(ctx context.Context, params identity.CreateAccountParams) (*identity.Account, error)
	UpdateRole(ctx context.Context, accountID, role string) error
	DeleteAccount(ctx context.Context, accountID string) error
}

// UserListResult is the service-level DTO for paginated users.
type UserListResult struct {
	Users []model.User `json:"data"`
	Total int          `json:"total"`
	Pages int          `json:"pages"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// UserService manages accounts at the identity provider and keeps the local
// mirror rows in sync. The provider is the source of truth.
type UserService interface {
	// List fetches one provider page and refreshes the mirror row for every
	// account returned.
	List(ctx context.Context, page, limit int, search string) (*UserListResult, error)

	// Create provisions a provider account and mirrors it locally.
	Create(ctx context.Context, params identity.CreateAccountParams) (*model.User, error)

	// UpdateRole changes the role at the provider and in the mirror.
	UpdateRole(ctx context.Context, externalID, role string) (*model.User, error)

	// Delete removes the account at the provider, then the mirror row.
	Delete(ctx context.Context, externalID string) error

	// FindByExternalID resolves the mirror row for a verified token subject.
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
}

type userService struct {
	provider AccountProvider
	users    repository.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(provider AccountProvider, users repository.UserRepository) UserService {
	return &userService{provider: provider, users: users}
}

func (s *userService) List(ctx context.Context, page, limit int, search string) (*UserListResult, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}

	accounts, total, err := s.provider.ListAccounts(ctx, page, limit, search)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(accounts))
	for _, acc := range accounts {
		stored, err := s.users.Upsert(ctx, accountToUser(acc))
		if err != nil {
			return nil, fmt.Errorf("mirror account %s: %w", acc.ID, err)
		}
		users = append(users, *stored)
	}

	return &UserListResult{
		Users: users,
		Total: total,
		Pages: (total + limit - 1) / limit,
		Page:  page,
		Limit: limit,
	}, nil
}

func (s *userService) Create(ctx context.Context, params identity.CreateAccountParams) (*model.User, error) {
	if params.Email == "" {
		return nil, ErrEmailRequired
	}
	if params.Role == "" {
		params.Role = model.RoleEmpleado
	}
	if params.Role != model.RoleAdmin && params.Role != model.RoleEmpleado {
		return nil, ErrInvalidRole
	}

	acc, err := s.provider.CreateAccount(ctx, params)
	if err != nil {
		return nil, err
	}
	stored, err := s.users.Upsert(ctx, accountToUser(*acc))
	if err != nil {
		return nil, fmt.Errorf("mirror account %s: %w", acc.ID, err)
	}
	return stored, nil
}

func (s *userService) UpdateRole(ctx context.Context, externalID, role string) (*model.User, error) {
	if externalID == "" {
		return nil, ErrIDRequired
	}
	if role != model.RoleAdmin && role != model.RoleEmpleado {
		return nil, ErrInvalidRole
	}

	user, err := s.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if err := s.provider.UpdateRole(ctx, externalID, role); err != nil {
		return nil, err
	}

	user.Role = role
	user.UpdatedAt = time.Now().UTC()
	stored, err := s.users.Upsert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("mirror role change: %w", err)
	}
	return stored, nil
}

func (s *userService) Delete(ctx context.Context, externalID string) error {
	if externalID == "" {
		return ErrIDRequired
	}
	if err := s.provider.DeleteAccount(ctx, externalID); err != nil {
		return err
	}
	return s.users.DeleteByExternalID(ctx, externalID)
}

func (s *userService) FindByExternalID(ctx context.Context, externalID string) (*model.User, error) {
	if externalID == "" {
		return nil, ErrIDRequired
	}
	user, err := s.users.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// accountToUser maps a provider account onto the mirror row shape. Provider
// timestamps are unix milliseconds.
func accountToUser(acc identity.Account) *model.User {
	role := acc.Role
	if role == "" {
		role = model.RoleEmpleado
	}
	now := time.Now().UTC()
	u := &model.User{
		ID:         uuid.New().String(),
		ExternalID: acc.ID,
		FirstName:  acc.FirstName,
		LastName:   acc.LastName,
		Email:      acc.Email,
		Username:   acc.Username,
		Role:       role,
		AvatarURL:  acc.AvatarURL,
		CreatedAt:  time.UnixMilli(acc.CreatedAt).UTC(),
		UpdatedAt:  now,
	}
	if acc.LastSignInAt != nil {
		t := time.UnixMilli(*acc.LastSignInAt).UTC()
		u.LastSignInAt = &t
	}
	return u
}
