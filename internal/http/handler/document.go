package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bukusaku/internal/http/middleware"
	"bukusaku/internal/model"
	"bukusaku/internal/service"
)

type updateStatusRequest struct {
	Status        string `json:"status"`
	RejectionNote string `json:"rejection_note"`
}

// splitList turns a comma separated form value into its entries.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// UploadDocument accepts multipart/form-data with fields file, title,
// category and tags (the last two comma separated).
func UploadDocument(svc service.DocumentService) fiber.Handler {
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

		doc, err := svc.Upload(c.UserContext(), service.UploadInput{
			Actor:       middleware.CurrentUser(c),
			Title:       c.FormValue("title"),
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			Category:    splitList(c.FormValue("category")),
			Tags:        splitList(c.FormValue("tags")),
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListDocuments lists documents visible to the caller, optionally filtered by
// a title substring in the search (or q) query parameter.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query := c.Query("search")
		if query == "" {
			query = c.Query("q")
		}
		views, err := svc.List(c.UserContext(), middleware.CurrentUser(c), query)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"items": views, "total": len(views)})
	}
}

// UpdateDocumentStatus transitions a document to approved or rejected.
func UpdateDocumentStatus(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req updateStatusRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		doc, err := svc.UpdateStatus(c.UserContext(), id, middleware.CurrentUser(c), model.Status(req.Status), req.RejectionNote)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument sets the soft-delete marker on a document.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id, middleware.CurrentUser(c)); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DocumentHistory returns a document's audit trail, oldest entry first.
func DocumentHistory(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		entries, err := svc.History(c.UserContext(), id, middleware.CurrentUser(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(entries)
	}
}
