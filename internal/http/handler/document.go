package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"docregistry/internal/model"
	"docregistry/internal/service"
)

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// GetDocument returns an active document with its page index.
//
// @Summary Get document by id
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} model.DocumentView
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		}
		view, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "INTERNAL_ERROR")
		}
		return c.JSON(view)
	}
}

// SearchDocuments pages through active documents matching any of the query terms.
//
// @Summary Search documents
// @Tags documents
// @Produce json
// @Param id query int false "Document ID"
// @Param serial_code query string false "Serial code, exact match"
// @Param publication_code query string false "Publication code, exact match"
// @Param author_or_email query string false "Substring of author name or email"
// @Param page query int false "1-based page" default(1)
// @Success 200 {object} model.DocumentPage
// @Failure 400 {object} errorPayload
// @Router /documents [get]
func SearchDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := model.DocumentFilter{
			SerialCode:      queryPtr(c, "serial_code"),
			PublicationCode: queryPtr(c, "publication_code"),
			AuthorOrEmail:   queryPtr(c, "author_or_email"),
		}
		if raw := strings.TrimSpace(c.Query("id")); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
			}
			filter.ID = &id
		}
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "page must be a positive integer")
		}
		filter.Page = page

		return search(c, svc, filter)
	}
}

// SearchDocumentsByBody is SearchDocuments with the filter given as a JSON body.
//
// @Summary Search documents (JSON filter)
// @Tags documents
// @Accept json
// @Produce json
// @Param filter body searchRequest true "Search filter"
// @Success 200 {object} model.DocumentPage
// @Failure 400 {object} errorPayload
// @Router /documents/search [post]
func SearchDocumentsByBody(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req searchRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON search filter")
		}
		return search(c, svc, req.toFilter())
	}
}

func search(c *fiber.Ctx, svc service.DocumentService, filter model.DocumentFilter) error {
	res, err := svc.Search(c.UserContext(), filter)
	if err != nil {
		return writeServiceError(c, err, "INTERNAL_ERROR")
	}
	return c.JSON(res)
}

// queryPtr returns nil when the query parameter was not sent at all.
func queryPtr(c *fiber.Ctx, key string) *string {
	if !c.Context().QueryArgs().Has(key) {
		return nil
	}
	v := c.Query(key)
	return &v
}

// CreateDocument registers a document together with its page index.
//
// @Summary Create document
// @Tags documents
// @Accept json
// @Produce json
// @Param document body documentRequest true "Document and pages"
// @Success 201 {object} model.DocumentView
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /documents [post]
func CreateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req documentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON document")
		}
		view, err := svc.Create(c.UserContext(), req.toInput())
		if err != nil {
			return writeServiceError(c, err, "SAVE_FAILED")
		}
		return c.Status(fiber.StatusCreated).JSON(view)
	}
}

// UpdateDocument replaces a document's fields and its whole page index.
//
// @Summary Update document
// @Tags documents
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param document body documentRequest true "Document and pages"
// @Success 200 {object} model.DocumentView
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /documents/{id} [put]
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		}
		var req documentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body must be a JSON document")
		}
		view, err := svc.Update(c.UserContext(), id, req.toInput())
		if err != nil {
			return writeServiceError(c, err, "SAVE_FAILED")
		}
		return c.JSON(view)
	}
}

// DeleteDocument soft-deletes a document and drops its page index.
//
// @Summary Delete document
// @Tags documents
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} model.Document
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "id must be a positive integer")
		}
		doc, err := svc.Delete(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err, "INTERNAL_ERROR")
		}
		return c.JSON(doc)
	}
}
