package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akorchagin/product-catalog/internal/events"
	"github.com/akorchagin/product-catalog/internal/logging"
	auth "github.com/akorchagin/product-catalog/internal/middleware/auth"
	"github.com/akorchagin/product-catalog/internal/models"
)

type Deps struct {
	AuthHandler    *AuthHTTP
	CatalogHandler *CatalogHTTP
	Gate           *auth.Gate
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.POST("/auth/register", d.AuthHandler.Register)
	api.POST("/auth/login", d.AuthHandler.Login)

	protected := api.Group("", d.Gate.RequireAuth)
	protected.GET("/products", d.CatalogHandler.GetProducts)
	protected.GET("/categories", d.CatalogHandler.GetCategories)

	admin := protected.Group("", d.Gate.RequireRoles(models.RoleAdmin))
	admin.POST("/products", d.CatalogHandler.CreateProduct)
}

// publish sends an audit event and only logs on failure; the request
// never fails because of the event stream.
func publish(c echo.Context, p events.Producer, topic, key string, event map[string]any) {
	ctx := c.Request().Context()
	if err := p.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("event_publish_failed", "topic", topic, "error", err)
	}
}
