package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"bukusaku/internal/http/middleware"
	"bukusaku/internal/service"
)

// AddFavorite bookmarks a document for the caller.
func AddFavorite(svc service.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("docID")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Add(c.UserContext(), id, middleware.CurrentUser(c)); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RemoveFavorite removes a bookmark. Removing an absent bookmark is a no-op.
func RemoveFavorite(svc service.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("docID")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Remove(c.UserContext(), id, middleware.CurrentUser(c)); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListFavorites returns the caller's bookmarked documents.
func ListFavorites(svc service.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		views, err := svc.List(c.UserContext(), middleware.CurrentUser(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(views)
	}
}

// ListFavoriteIDs returns just the bookmarked document IDs, for clients that
// only need to mark rows in an existing listing.
func ListFavoriteIDs(svc service.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ids, err := svc.ListIDs(c.UserContext(), middleware.CurrentUser(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(ids)
	}
}
