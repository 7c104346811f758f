package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docsafe/internal/service"
)

// AdminListDocuments serves the admin listing with the larger page size.
func AdminListDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := parseDocumentFilter(c)

		res, err := docSvc.List(c.UserContext(), filter, adminListLimit)
		if err != nil {
			return writeServiceError(c, err, "documents could not be retrieved")
		}
		return respondPage(c, res.Documents, res.Total, res.Pages, res.Page, res.Limit)
	}
}

// AdminGetDocument returns the full detail view: owner, folder, tags and
// recognition output.
func AdminGetDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docID := c.Params("id")
		if _, err := uuid.Parse(docID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		detail, err := docSvc.GetDetail(c.UserContext(), docID)
		if err != nil {
			return writeServiceError(c, err, "document could not be retrieved")
		}
		return respondData(c, fiber.StatusOK, detail)
	}
}

type adminDocumentUpdateRequest struct {
	Title    *string `json:"title"`
	Status   *string `json:"status"`
	FolderID *string `json:"folder_id"`
	// SetFolder distinguishes "leave the folder alone" from "remove from
	// folder"; folder_id=null with set_folder=true unfiles the document.
	SetFolder bool `json:"set_folder"`
}

// AdminUpdateDocument applies admin edits and optional folder reassignment.
func AdminUpdateDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docID := c.Params("id")
		if _, err := uuid.Parse(docID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req adminDocumentUpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		id := identityFromCtx(c)
		doc, err := docSvc.Update(c.UserContext(), id.ID, docID, service.DocumentUpdateParams{
			Title:     req.Title,
			Status:    req.Status,
			SetFolder: req.SetFolder || req.FolderID != nil,
			FolderID:  req.FolderID,
		})
		if err != nil {
			return writeServiceError(c, err, "document could not be updated")
		}
		return respondData(c, fiber.StatusOK, doc)
	}
}

// AdminDeleteDocument hard-deletes a document and its stored object.
func AdminDeleteDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docID := c.Params("id")
		if _, err := uuid.Parse(docID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		id := identityFromCtx(c)
		if err := docSvc.Delete(c.UserContext(), id.ID, docID); err != nil {
			return writeServiceError(c, err, "document could not be deleted")
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"deleted": docID})
	}
}
