package handler

import (
	"github.com/gofiber/fiber/v2"

	"bukusaku/internal/http/middleware"
	"bukusaku/internal/service"
)

type registerRequest struct {
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	Position     string `json:"position"`
	Passkey      string `json:"passkey"`
	Organization string `json:"organization"`
	Address      string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. The request shape depends on the requested
// role; validation lives in the service.
func Register(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req registerRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		u, err := svc.Register(c.UserContext(), service.RegisterInput{
			Username:     req.Username,
			Name:         req.Name,
			Email:        req.Email,
			Password:     req.Password,
			Role:         req.Role,
			Position:     req.Position,
			Passkey:      req.Passkey,
			Organization: req.Organization,
			Address:      req.Address,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// Login verifies credentials and returns a bearer token.
func Login(svc service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// Me returns the authenticated account.
func Me() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(middleware.CurrentUser(c))
	}
}
