package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"docsafe/internal/http/middleware"
	"docsafe/internal/identity"
	"docsafe/internal/model"
	"docsafe/internal/repository"
	"docsafe/internal/service"
	serviceMocks "docsafe/internal/service/mocks"
)

// withIdentity injects an admin caller so handlers that read the acting user
// can run without the auth middleware.
func withIdentity(app *fiber.App, userID string) {
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(middleware.IdentityLocalKey, identity.Identity{
			ID:   userID,
			Role: model.RoleAdmin,
		})
		return c.Next()
	})
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	app := fiber.New()
	app.Get("/health", HealthCheck(db))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "SERVICE_UNAVAILABLE", body.Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListDocuments(t *testing.T) {
	mockDocs := new(serviceMocks.MockDocumentService)
	mockFolders := new(serviceMocks.MockFolderService)
	app := fiber.New()
	app.Get("/api/documents", ListDocuments(mockDocs, mockFolders))

	t.Run("success with pagination envelope", func(t *testing.T) {
		expected := &service.DocumentListResult{
			Documents: []model.DocumentRow{{Document: model.Document{ID: uuid.New().String(), Filename: "test.pdf"}}},
			Total:     11,
			Pages:     2,
			Page:      1,
			Limit:     10,
		}
		mockDocs.On("List", mock.Anything, mock.Anything, publicListLimit).Return(expected, nil).Once()
		mockFolders.On("List", mock.Anything).Return([]model.Folder{{ID: "f1", Name: "Facturas"}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents?page=1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Success    bool `json:"success"`
			Pagination struct {
				Total       int `json:"total"`
				Pages       int `json:"pages"`
				CurrentPage int `json:"current_page"`
				PerPage     int `json:"per_page"`
			} `json:"pagination"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.True(t, body.Success)
		assert.Equal(t, 11, body.Pagination.Total)
		assert.Equal(t, 2, body.Pagination.Pages)
		assert.Equal(t, 1, body.Pagination.CurrentPage)
		assert.Equal(t, 10, body.Pagination.PerPage)
		mockDocs.AssertExpectations(t)
		mockFolders.AssertExpectations(t)
	})

	t.Run("filter passthrough", func(t *testing.T) {
		mockDocs.On("List", mock.Anything, mock.MatchedBy(func(f repository.DocumentFilter) bool {
			return f.Search == "factura" && f.FolderID == "f1" &&
				len(f.Status) == 2 && f.Status[0] == "uploaded" && f.Status[1] == "processed"
		}), publicListLimit).Return(&service.DocumentListResult{Documents: []model.DocumentRow{}, Page: 1, Limit: 10}, nil).Once()
		mockFolders.On("List", mock.Anything).Return([]model.Folder{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents?search=factura&folder_id=f1&status=uploaded,processed", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockDocs.AssertExpectations(t)
	})

	t.Run("service error collapses", func(t *testing.T) {
		mockDocs.On("List", mock.Anything, mock.Anything, publicListLimit).Return(nil, errors.New("boom")).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.Equal(t, "documents could not be retrieved", body.Error.Message)
		mockDocs.AssertExpectations(t)
	})
}

func TestUploadDocument(t *testing.T) {
	mockDocs := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	withIdentity(app, "user-1")
	app.Post("/api/documents/upload", UploadDocument(mockDocs))

	t.Run("success", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		part, _ := writer.CreateFormFile("file", "test.pdf")
		part.Write([]byte("hello world"))
		writer.WriteField("title", "Factura enero")
		writer.Close()

		expected := &model.Document{ID: uuid.New().String(), Filename: "test.pdf", Status: model.StatusUploaded}
		mockDocs.On("Upload", mock.Anything, "user-1", "Factura enero", "test.pdf", mock.Anything, mock.Anything, mock.Anything).
			Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockDocs.AssertExpectations(t)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})
}

func TestDownloadDocument(t *testing.T) {
	mockDocs := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents/:id/download", DownloadDocument(mockDocs))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockDocs.On("DownloadURL", mock.Anything, id).Return("https://storage/presigned", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id+"/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Data map[string]string `json:"data"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "https://storage/presigned", body.Data["download_url"])
		mockDocs.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/documents/not-a-uuid/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockDocs.On("DownloadURL", mock.Anything, id).Return("", service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id+"/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockDocs.AssertExpectations(t)
	})
}

func TestMoveDocuments(t *testing.T) {
	mockFolders := new(serviceMocks.MockFolderService)
	app := fiber.New()
	withIdentity(app, "admin-1")
	app.Post("/api/documents/move", MoveDocuments(mockFolders))

	t.Run("move into folder", func(t *testing.T) {
		folderID := uuid.New().String()
		mockFolders.On("Move", mock.Anything, "admin-1", []string{"d1", "d2"}, mock.MatchedBy(func(id *string) bool {
			return id != nil && *id == folderID
		})).Return(nil).Once()

		payload, _ := json.Marshal(map[string]any{
			"document_ids": []string{"d1", "d2"},
			"folder_id":    folderID,
		})
		req := httptest.NewRequest(http.MethodPost, "/api/documents/move", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockFolders.AssertExpectations(t)
	})

	t.Run("remove from folder with null folder_id", func(t *testing.T) {
		mockFolders.On("Move", mock.Anything, "admin-1", []string{"d1"}, (*string)(nil)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/move",
			strings.NewReader(`{"document_ids":["d1"],"folder_id":null}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockFolders.AssertExpectations(t)
	})

	t.Run("empty ids rejected", func(t *testing.T) {
		mockFolders.On("Move", mock.Anything, "admin-1", mock.Anything, mock.Anything).
			Return(service.ErrNoDocuments).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/move",
			strings.NewReader(`{"document_ids":[]}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockFolders.AssertExpectations(t)
	})
}

func TestTriggerOCR(t *testing.T) {
	mockOCR := new(serviceMocks.MockOcrService)
	app := fiber.New()
	app.Post("/api/documents/ocr", TriggerOCR(mockOCR))

	t.Run("accepted", func(t *testing.T) {
		id := uuid.New().String()
		mockOCR.On("Trigger", mock.Anything, id).
			Return(&model.Document{ID: id, Status: model.StatusProcessing}, nil).Once()

		payload, _ := json.Marshal(map[string]string{"document_id": id})
		req := httptest.NewRequest(http.MethodPost, "/api/documents/ocr", bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
		var body struct {
			Data map[string]string `json:"data"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, model.StatusProcessing, body.Data["status"])
		mockOCR.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/documents/ocr",
			strings.NewReader(`{"document_id":"nope"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAdminGetDocument(t *testing.T) {
	mockDocs := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/admin/documents/:id", AdminGetDocument(mockDocs))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		detail := &model.DocumentDetail{
			DocumentRow:   model.DocumentRow{Document: model.Document{ID: id}},
			OCRPagesCount: 1,
		}
		mockDocs.On("GetDetail", mock.Anything, id).Return(detail, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/admin/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockDocs.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockDocs.On("GetDetail", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/admin/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockDocs.AssertExpectations(t)
	})
}

func TestAdminUpdateDocument(t *testing.T) {
	mockDocs := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	withIdentity(app, "admin-1")
	app.Put("/api/admin/documents/:id", AdminUpdateDocument(mockDocs))

	t.Run("title and folder change", func(t *testing.T) {
		id := uuid.New().String()
		folderID := uuid.New().String()
		mockDocs.On("Update", mock.Anything, "admin-1", id, mock.MatchedBy(func(p service.DocumentUpdateParams) bool {
			return p.Title != nil && *p.Title == "Renamed" && p.SetFolder && p.FolderID != nil && *p.FolderID == folderID
		})).Return(&model.Document{ID: id, Title: "Renamed"}, nil).Once()

		payload, _ := json.Marshal(map[string]any{"title": "Renamed", "folder_id": folderID})
		req := httptest.NewRequest(http.MethodPut, "/api/admin/documents/"+id, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockDocs.AssertExpectations(t)
	})
}

func TestDeleteDocumentByQuery(t *testing.T) {
	mockDocs := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	withIdentity(app, "admin-1")
	app.Delete("/api/documents", DeleteDocumentByQuery(mockDocs))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockDocs.On("Delete", mock.Anything, "admin-1", id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/documents?id="+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockDocs.AssertExpectations(t)
	})

	t.Run("missing id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/api/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestFolderHandlers(t *testing.T) {
	mockFolders := new(serviceMocks.MockFolderService)
	app := fiber.New()
	withIdentity(app, "admin-1")
	app.Post("/api/admin/folders", CreateFolder(mockFolders))
	app.Delete("/api/admin/folders/:id", DeleteFolder(mockFolders))

	t.Run("create", func(t *testing.T) {
		mockFolders.On("Create", mock.Anything, "admin-1", service.FolderCreateParams{
			Name: "Facturas", Color: "#FF0000",
		}).Return(&model.Folder{ID: uuid.New().String(), Name: "Facturas"}, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/folders",
			strings.NewReader(`{"name":"Facturas","color":"#FF0000"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockFolders.AssertExpectations(t)
	})

	t.Run("create without name", func(t *testing.T) {
		mockFolders.On("Create", mock.Anything, "admin-1", mock.Anything).
			Return(nil, service.ErrFolderNameRequired).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/admin/folders", strings.NewReader(`{"name":""}`))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockFolders.AssertExpectations(t)
	})

	t.Run("delete", func(t *testing.T) {
		id := uuid.New().String()
		mockFolders.On("Delete", mock.Anything, "admin-1", id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/admin/folders/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockFolders.AssertExpectations(t)
	})
}

func TestAdminStats(t *testing.T) {
	mockStats := new(serviceMocks.MockStatsService)
	app := fiber.New()
	app.Get("/api/admin/stats", AdminStats(mockStats))

	stats := &model.AdminStats{
		TotalDocuments:        3,
		DocumentsByStatus:     map[string]int{"processed": 2, "uploaded": 1},
		DocumentsByCategory:   map[string]int{"General": 3},
		DocumentsByFolder:     map[string]int{"Facturas": 2, "Sin carpeta": 1},
		StorageUsage:          2048,
		StorageUsageFormatted: "2.0 KB",
	}
	mockStats.On("AdminStats", mock.Anything).Return(stats, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data model.AdminStats `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, 3, body.Data.TotalDocuments)
	assert.Equal(t, 1, body.Data.DocumentsByFolder["Sin carpeta"])
	mockStats.AssertExpectations(t)
}

func TestCharts(t *testing.T) {
	mockCharts := new(serviceMocks.MockChartsService)
	app := fiber.New()
	app.Get("/api/charts", Charts(mockCharts))

	data := &model.ChartData{
		DailyActivity:      []model.DailyActivity{{Date: "2026-08-30", Documents: 1}},
		HourlyActivity:     make([]model.HourlyActivity, 24),
		StatusDistribution: []model.StatusDistribution{{Status: "processed", Count: 1, Percentage: 100}},
	}

	t.Run("all series", func(t *testing.T) {
		mockCharts.On("ChartData", mock.Anything, 0).Return(data, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/charts", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockCharts.AssertExpectations(t)
	})

	t.Run("single series", func(t *testing.T) {
		mockCharts.On("ChartData", mock.Anything, 14).Return(data, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/charts?type=daily&days=14", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Data map[string]json.RawMessage `json:"data"`
		}
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Contains(t, body.Data, "daily_activity")
		assert.NotContains(t, body.Data, "hourly_activity")
		mockCharts.AssertExpectations(t)
	})
}

func TestListUsers(t *testing.T) {
	mockUsers := new(serviceMocks.MockUserService)
	app := fiber.New()
	app.Get("/api/admin/users", ListUsers(mockUsers))

	res := &service.UserListResult{
		Users: []model.User{{ID: "u1", Email: "a@b.c", Role: model.RoleEmpleado}},
		Total: 1, Pages: 1, Page: 1, Limit: 20,
	}
	mockUsers.On("List", mock.Anything, 2, 5, "ana").Return(res, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/users?page=2&limit=5&search=ana", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	mockUsers.AssertExpectations(t)
}
