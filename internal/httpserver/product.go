package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/akorchagin/product-catalog/internal/events"
	"github.com/akorchagin/product-catalog/internal/logging"
	auth "github.com/akorchagin/product-catalog/internal/middleware/auth"
	"github.com/akorchagin/product-catalog/internal/models"
	"github.com/akorchagin/product-catalog/internal/service"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Producer events.Producer
}

type createProductRequest struct {
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

func (h *CatalogHTTP) GetProducts(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_products")

	q := service.ListQuery{
		Search:    c.QueryParam("search"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
	}

	products, err := h.Svc.ListProducts(ctx, q)
	if err != nil {
		he := translate(err)
		if he.Code >= 500 {
			l.Error("get_products_failed", "status", he.Code, "error", err)
		} else {
			l.Warn("get_products_failed", "status", he.Code, "error", err)
		}
		return he
	}
	if products == nil {
		products = []models.Product{}
	}

	return c.JSON(http.StatusOK, products)
}

func (h *CatalogHTTP) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_product")

	id, ok := auth.IdentityFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "access denied: no token provided")
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_product_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid body")
	}

	product, err := h.Svc.CreateProduct(ctx, service.CreateProductInput{
		Title:       req.Title,
		Price:       req.Price,
		Description: req.Description,
		Category:    req.Category,
		Image:       req.Image,
	}, id.UserID)
	if err != nil {
		he := translate(err)
		if he.Code >= 500 {
			l.Error("create_product_failed", "status", he.Code, "error", err)
		} else {
			l.Warn("create_product_failed", "status", he.Code, "error", err)
		}
		return he
	}

	publish(c, h.Producer, events.TopicProductEvents, fmt.Sprint(product.ID), map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"title":      product.Title,
		"user_id":    id.UserID,
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"message":   "Product added successfully",
		"productId": product.ID,
	})
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_categories")

	categories, err := h.Svc.ListCategories(ctx)
	if err != nil {
		l.Error("get_categories_failed", "status", 500, "error", err)
		return translate(err)
	}
	if categories == nil {
		categories = []string{}
	}

	return c.JSON(http.StatusOK, echo.Map{"categories": categories})
}
