package handler

import (
	"github.com/gofiber/fiber/v2"

	"bukusaku/internal/http/middleware"
	"bukusaku/internal/service"
)

type createCategoryRequest struct {
	Name string `json:"name"`
}

// ListCategories returns every category.
func ListCategories(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cats, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(cats)
	}
}

// CreateCategory adds a category with a unique name.
func CreateCategory(svc service.CategoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createCategoryRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		cat, err := svc.Create(c.UserContext(), req.Name, middleware.CurrentUser(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}
