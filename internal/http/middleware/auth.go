package middleware

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bukusaku/internal/auth"
	"bukusaku/internal/model"
	"bukusaku/internal/repository"
)

// CurrentUserKey is the locals key the authenticated account is stored under.
const CurrentUserKey = "current_user"

const bearerPrefix = "Bearer "

// Authenticate validates the bearer token and loads the account it names.
// The account is fetched on every request so a deactivation takes effect
// immediately, even for tokens issued before it.
func Authenticate(tokens *auth.TokenManager, users repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		u, err := users.FindByID(c.UserContext(), claims.Subject)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fiber.NewError(fiber.StatusUnauthorized, "unknown account")
			}
			return err
		}
		if !u.IsActive {
			return fiber.NewError(fiber.StatusForbidden, "account is deactivated")
		}

		c.Locals(CurrentUserKey, u)
		return c.Next()
	}
}

// CurrentUser returns the account stored by Authenticate, or nil outside an
// authenticated route.
func CurrentUser(c *fiber.Ctx) *model.User {
	u, _ := c.Locals(CurrentUserKey).(*model.User)
	return u
}
