package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docsafe/internal/http/middleware"
	"docsafe/internal/identity"
	"docsafe/internal/repository"
	"docsafe/internal/service"
)

// successPayload is the standardized success response body. Pagination is
// present only on listing endpoints.
type successPayload struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data"`
	Pagination *pagination `json:"pagination,omitempty"`
}

type pagination struct {
	Total       int `json:"total"`
	Pages       int `json:"pages"`
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
}

func respondData(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(successPayload{Success: true, Data: data})
}

func respondPage(c *fiber.Ctx, data any, total, pages, page, limit int) error {
	return c.Status(fiber.StatusOK).JSON(successPayload{
		Success: true,
		Data:    data,
		Pagination: &pagination{
			Total:       total,
			Pages:       pages,
			CurrentPage: page,
			PerPage:     limit,
		},
	})
}

// writeServiceError maps well-known service errors onto the error envelope.
// Everything else collapses to a single opaque message per endpoint.
func writeServiceError(c *fiber.Ctx, err error, fallbackMessage string) error {
	switch {
	case errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrFolderNotFound),
		errors.Is(err, service.ErrUserNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, service.ErrIDRequired),
		errors.Is(err, service.ErrReaderNil),
		errors.Is(err, service.ErrFolderNameRequired),
		errors.Is(err, service.ErrNoDocuments),
		errors.Is(err, service.ErrEmailRequired),
		errors.Is(err, service.ErrInvalidRole):
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", fallbackMessage)
	}
}

// identityFromCtx returns the caller resolved by the auth middleware.
func identityFromCtx(c *fiber.Ctx) identity.Identity {
	id, _ := middleware.IdentityFromCtx(c)
	return id
}

// parseDocumentFilter reads the listing query parameters. Multi-value fields
// accept comma-separated lists. Invalid numbers fall back to zero so the
// service applies its defaults.
func parseDocumentFilter(c *fiber.Ctx) repository.DocumentFilter {
	return repository.DocumentFilter{
		Search:    c.Query("search"),
		Status:    splitCSV(c.Query("status")),
		Category:  splitCSV(c.Query("category")),
		FolderID:  c.Query("folder_id"),
		OwnerID:   c.Query("owner_id"),
		DateFrom:  c.Query("date_from"),
		DateTo:    c.Query("date_to"),
		MimeType:  c.Query("mime_type"),
		Page:      queryInt(c, "page"),
		Limit:     queryInt(c, "limit"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func queryInt(c *fiber.Ctx, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}
