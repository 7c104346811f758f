package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docsafe/internal/repository"
	"docsafe/internal/service"
)

// ListFolders returns all folders with derived document counts.
func ListFolders(folderSvc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folders, err := folderSvc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, "folders could not be retrieved")
		}
		return respondData(c, fiber.StatusOK, folders)
	}
}

type folderRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// CreateFolder creates a folder owned by the acting admin.
func CreateFolder(folderSvc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req folderRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		id := identityFromCtx(c)
		folder, err := folderSvc.Create(c.UserContext(), id.ID, service.FolderCreateParams{
			Name:        req.Name,
			Description: req.Description,
			Color:       req.Color,
		})
		if err != nil {
			return writeServiceError(c, err, "folder could not be created")
		}
		return respondData(c, fiber.StatusCreated, folder)
	}
}

type folderUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

// UpdateFolder applies partial edits to a folder.
func UpdateFolder(folderSvc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folderID := c.Params("id")
		if _, err := uuid.Parse(folderID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req folderUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		id := identityFromCtx(c)
		folder, err := folderSvc.Update(c.UserContext(), id.ID, folderID, repository.FolderUpdate{
			Name:        req.Name,
			Description: req.Description,
			Color:       req.Color,
		})
		if err != nil {
			return writeServiceError(c, err, "folder could not be updated")
		}
		return respondData(c, fiber.StatusOK, folder)
	}
}

// DeleteFolder removes a folder. Documents inside it become unfiled.
func DeleteFolder(folderSvc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		folderID := c.Params("id")
		if _, err := uuid.Parse(folderID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		id := identityFromCtx(c)
		if err := folderSvc.Delete(c.UserContext(), id.ID, folderID); err != nil {
			return writeServiceError(c, err, "folder could not be deleted")
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"deleted": folderID})
	}
}
