package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docregistry/internal/service"
)

// RegisterRoutes attaches the health and document routes to app.
func RegisterRoutes(app *fiber.App, db *sql.DB, docSvc service.DocumentService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents", SearchDocuments(docSvc))
	app.Post("/documents/search", SearchDocumentsByBody(docSvc))
	app.Post("/documents", CreateDocument(docSvc))
	app.Get("/documents/:id", GetDocument(docSvc))
	app.Put("/documents/:id", UpdateDocument(docSvc))
	app.Delete("/documents/:id", DeleteDocument(docSvc))
}
