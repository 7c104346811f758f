package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docsafe/internal/http/middleware"
	"docsafe/internal/identity"
	"docsafe/internal/service"
)

// Services bundles the injected service implementations for route wiring.
type Services struct {
	Documents service.DocumentService
	Folders   service.FolderService
	Users     service.UserService
	Stats     service.StatsService
	Charts    service.ChartsService
	OCR       service.OcrService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers stay
// minimal; business logic lives in the services.
func RegisterRoutes(app *fiber.App, db *sql.DB, verifier middleware.TokenVerifier, svcs Services) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoints: readiness checks DB connectivity, liveness is trivial
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api", middleware.Auth(verifier, svcs.Users))

	docs := api.Group("/documents")
	docs.Get("/", middleware.RequireCapability(identity.CapDocumentsRead), ListDocuments(svcs.Documents, svcs.Folders))
	docs.Get("/consultation", middleware.RequireCapability(identity.CapDocumentsRead), ConsultationDocuments(svcs.Documents))
	docs.Post("/upload", middleware.RequireCapability(identity.CapDocumentsWrite), UploadDocument(svcs.Documents))
	docs.Get("/:id/download", middleware.RequireCapability(identity.CapDocumentsRead), DownloadDocument(svcs.Documents))
	docs.Post("/move", middleware.RequireCapability(identity.CapDocumentsWrite), MoveDocuments(svcs.Folders))
	docs.Post("/ocr", middleware.RequireCapability(identity.CapDocumentsWrite), TriggerOCR(svcs.OCR))
	// Legacy aliases kept for older clients.
	docs.Put("/", middleware.RequireCapability(identity.CapDocumentsWrite), MoveDocuments(svcs.Folders))
	docs.Delete("/", middleware.RequireCapability(identity.CapDocumentsWrite), DeleteDocumentByQuery(svcs.Documents))

	admin := api.Group("/admin")

	adminDocs := admin.Group("/documents", middleware.RequireCapability(identity.CapAdminDocuments))
	adminDocs.Get("/", AdminListDocuments(svcs.Documents))
	adminDocs.Get("/:id", AdminGetDocument(svcs.Documents))
	adminDocs.Put("/:id", AdminUpdateDocument(svcs.Documents))
	adminDocs.Delete("/:id", AdminDeleteDocument(svcs.Documents))

	adminFolders := admin.Group("/folders", middleware.RequireCapability(identity.CapAdminFolders))
	adminFolders.Get("/", ListFolders(svcs.Folders))
	adminFolders.Post("/", CreateFolder(svcs.Folders))
	adminFolders.Put("/:id", UpdateFolder(svcs.Folders))
	adminFolders.Delete("/:id", DeleteFolder(svcs.Folders))
	adminFolders.Post("/move", MoveDocuments(svcs.Folders))

	admin.Get("/stats", middleware.RequireCapability(identity.CapAdminStats), AdminStats(svcs.Stats))

	adminUsers := admin.Group("/users", middleware.RequireCapability(identity.CapAdminUsers))
	adminUsers.Get("/", ListUsers(svcs.Users))
	adminUsers.Post("/", CreateUser(svcs.Users))
	adminUsers.Patch("/:userId", UpdateUserRole(svcs.Users))
	adminUsers.Delete("/:userId", DeleteUser(svcs.Users))

	api.Get("/charts", middleware.RequireCapability(identity.CapAdminStats), Charts(svcs.Charts))
}
