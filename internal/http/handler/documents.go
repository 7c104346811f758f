package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docsafe/internal/service"
)

const (
	publicListLimit = 10
	adminListLimit  = 20
)

// ListDocuments serves the filtered document listing together with the folder
// list the dashboard renders alongside it.
func ListDocuments(docSvc service.DocumentService, folderSvc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := parseDocumentFilter(c)

		res, err := docSvc.List(c.UserContext(), filter, publicListLimit)
		if err != nil {
			return writeServiceError(c, err, "documents could not be retrieved")
		}
		folders, err := folderSvc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err, "documents could not be retrieved")
		}

		data := fiber.Map{
			"documents": res.Documents,
			"folders":   folders,
		}
		return respondPage(c, data, res.Total, res.Pages, res.Page, res.Limit)
	}
}

// ConsultationDocuments is the simplified listing without the folders payload.
func ConsultationDocuments(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := parseDocumentFilter(c)

		res, err := docSvc.List(c.UserContext(), filter, publicListLimit)
		if err != nil {
			return writeServiceError(c, err, "documents could not be retrieved")
		}
		return respondPage(c, res.Documents, res.Total, res.Pages, res.Page, res.Limit)
	}
}

// UploadDocument accepts a multipart upload (field name: file, optional field
// title) and stores it under the authenticated owner.
func UploadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}
		title := c.FormValue("title")

		id := identityFromCtx(c)
		doc, err := docSvc.Upload(c.UserContext(), id.ID, title, fh.Filename, ct, f, fh.Size)
		if err != nil {
			return writeServiceError(c, err, "document could not be uploaded")
		}
		return respondData(c, fiber.StatusCreated, doc)
	}
}

// DownloadDocument issues a time-limited presigned URL for the stored object.
func DownloadDocument(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docID := c.Params("id")
		if _, err := uuid.Parse(docID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		url, err := docSvc.DownloadURL(c.UserContext(), docID)
		if err != nil {
			return writeServiceError(c, err, "download link could not be generated")
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"download_url": url})
	}
}

type moveDocumentsRequest struct {
	DocumentIDs []string `json:"document_ids"`
	FolderID    *string  `json:"folder_id"`
}

// MoveDocuments reassigns documents to a folder (or to none when folder_id is
// null) in one transaction. Also mounted as PUT /api/documents for backward
// compatibility.
func MoveDocuments(folderSvc service.FolderService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req moveDocumentsRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		id := identityFromCtx(c)
		if err := folderSvc.Move(c.UserContext(), id.ID, req.DocumentIDs, req.FolderID); err != nil {
			return writeServiceError(c, err, "documents could not be moved")
		}
		return respondData(c, fiber.StatusOK, fiber.Map{"moved": len(req.DocumentIDs)})
	}
}

// DeleteDocumentByQuery removes one document addressed by the id query param.
func DeleteDocumentByQuery(docSvc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		docID := c.Query("id")
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

type triggerOCRRequest struct {
	DocumentID string `json:"document_id"`
}

// TriggerOCR marks a document as processing and queues it for background
// recognition. The response returns before recognition runs; clients poll the
// document status.
func TriggerOCR(ocrSvc service.OcrService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req triggerOCRRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		if _, err := uuid.Parse(req.DocumentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		doc, err := ocrSvc.Trigger(c.UserContext(), req.DocumentID)
		if err != nil {
			return writeServiceError(c, err, "recognition could not be queued")
		}
		return respondData(c, fiber.StatusAccepted, fiber.Map{
			"id":     doc.ID,
			"status": doc.Status,
		})
	}
}
