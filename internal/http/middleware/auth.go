package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docsafe/internal/identity"
	"docsafe/internal/model"
)

// IdentityLocalKey is the key under which the resolved caller identity is
// stored in Fiber's context locals.
const IdentityLocalKey = "identity"

// TokenVerifier validates a bearer token and returns the provider account ID.
// Satisfied by *identity.Verifier.
type TokenVerifier interface {
	Verify(tokenString string) (string, error)
}

// UserResolver maps a provider account ID to the local mirror row. Satisfied
// by service.UserService.
type UserResolver interface {
	FindByExternalID(ctx context.Context, externalID string) (*model.User, error)
}

// Auth verifies the Authorization bearer token, resolves the caller's mirror
// row and stores an identity.Identity in context locals. Requests without a
// valid token or a known user are rejected with 401.
func Auth(verifier TokenVerifier, users UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		externalID, err := verifier.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		user, err := users.FindByExternalID(c.UserContext(), externalID)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "unknown user")
		}

		c.Locals(IdentityLocalKey, identity.Identity{
			ID:         user.ID,
			ExternalID: user.ExternalID,
			Role:       user.Role,
		})
		return c.Next()
	}
}

// RequireCapability rejects the request with 403 unless the resolved identity
// holds the capability. It must run after Auth.
func RequireCapability(capability identity.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFromCtx(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
		}
		if !id.Can(capability) {
			return fiber.NewError(fiber.StatusForbidden, "insufficient permissions")
		}
		return c.Next()
	}
}

// IdentityFromCtx extracts the identity stored by Auth.
func IdentityFromCtx(c *fiber.Ctx) (identity.Identity, bool) {
	id, ok := c.Locals(IdentityLocalKey).(identity.Identity)
	return id, ok
}
