package handler

import (
	"github.com/gofiber/fiber/v2"

	"docsafe/internal/identity"
	"docsafe/internal/service"
)

// ListUsers proxies the identity provider's account listing and refreshes the
// local mirror.
func ListUsers(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := userSvc.List(c.UserContext(), queryInt(c, "page"), queryInt(c, "limit"), c.Query("search"))
		if err != nil {
			return writeServiceError(c, err, "users could not be retrieved")
		}
		return respondPage(c, res.Users, res.Total, res.Pages, res.Page, res.Limit)
	}
}

type createUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// CreateUser provisions an account at the identity provider.
func CreateUser(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createUserRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		user, err := userSvc.Create(c.UserContext(), identity.CreateAccountParams{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Password:  req.Password,
			Role:      req.Role,
		})
		if err != nil {
			return writeServiceError(c, err, "user could not be created")
		}
		return respondData(c, fiber.StatusCreated, user)
	}
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

// UpdateUserRole changes an account's role at the provider and in the mirror.
func UpdateUserRole(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req updateRoleRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		user, err := userSvc.UpdateRole(c.UserContext(), c.Params("userId"), req.Role)
		if err != nil {
			return writeServiceError(c, err, "user could not be updated")
		}
		return respondData(c, fiber.StatusOK, user)
	}
}

// DeleteUser removes the account at the provider, then the mirror row.
func DeleteUser(userSvc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		externalID := c.Params("userId")
		if err := userSvc.Delete(c.UserContext(), externalID); err != nil {
			return writeServiceError(c, err, "user could not be deleted")
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"deleted": externalID})
	}
}
