package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"bukusaku/internal/auth"
	"bukusaku/internal/http/middleware"
	"bukusaku/internal/repository"
	"bukusaku/internal/service"
)

// Deps bundles everything route registration needs.
type Deps struct {
	DB     *sql.DB
	Tokens *auth.TokenManager
	Users  repository.UserRepository

	Auth          service.AuthService
	Documents     service.DocumentService
	Categories    service.CategoryService
	Notifications service.NotificationService
	Favorites     service.FavoriteService
	Accounts      service.UserService
}

// RegisterRoutes attaches all HTTP routes. Everything except auth, health and
// the docs pages sits behind the bearer-token middleware.
func RegisterRoutes(app *fiber.App, d Deps) {
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

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	app.Post("/auth/register", Register(d.Auth))
	app.Post("/auth/login", Login(d.Auth))

	authn := middleware.Authenticate(d.Tokens, d.Users)

	app.Get("/auth/me", authn, Me())

	docs := app.Group("/documents", authn)
	docs.Get("/", ListDocuments(d.Documents))
	docs.Get("/search", ListDocuments(d.Documents))
	docs.Post("/", UploadDocument(d.Documents))
	docs.Put("/:id/status", UpdateDocumentStatus(d.Documents))
	docs.Delete("/:id", DeleteDocument(d.Documents))
	docs.Get("/:id/history", DocumentHistory(d.Documents))

	favs := app.Group("/favorites", authn)
	favs.Get("/", ListFavorites(d.Favorites))
	favs.Get("/ids", ListFavoriteIDs(d.Favorites))
	favs.Post("/:docID", AddFavorite(d.Favorites))
	favs.Delete("/:docID", RemoveFavorite(d.Favorites))

	cats := app.Group("/categories", authn)
	cats.Get("/", ListCategories(d.Categories))
	cats.Post("/", CreateCategory(d.Categories))

	notifs := app.Group("/notifications", authn)
	notifs.Get("/", ListNotifications(d.Notifications))
	notifs.Put("/read-all", MarkAllNotificationsRead(d.Notifications))
	notifs.Put("/:id/read", MarkNotificationRead(d.Notifications))

	users := app.Group("/users", authn)
	users.Get("/", ListUsers(d.Accounts))
	users.Delete("/:id", DeleteUser(d.Accounts))
}
