package service

import (
	"context"
	"fmt"
	"math"

	"github.com/akorchagin/product-catalog/internal/logging"
	"github.com/akorchagin/product-catalog/internal/models"
	"github.com/akorchagin/product-catalog/internal/repo"
)

// sortColumns is the closed set of client-facing sort keys. Ordering is
// only ever built from these values, never from the raw query string.
var sortColumns = map[string]string{
	"id":           "id",
	"title":        "title",
	"price":        "price",
	"category":     "category",
	"rating_rate":  "rating_rate",
	"rating_count": "rating_count",
	"created_at":   "created_at",
}

const placeholderImage = "https://via.placeholder.com/150"

type CatalogService struct {
	Repo *repo.GormRepo
}

type ListQuery struct {
	Search    string
	SortBy    string
	SortOrder string
}

type CreateProductInput struct {
	Title       string
	Price       float64
	Description string
	Category    string
	Image       string
}

func (s *CatalogService) ListProducts(ctx context.Context, q ListQuery) ([]models.Product, error) {
	filter := repo.ProductFilter{Search: q.Search}

	if q.SortBy != "" {
		column, ok := sortColumns[q.SortBy]
		if !ok {
			return nil, fmt.Errorf("%w: unknown sort key %q", ErrValidation, q.SortBy)
		}
		filter.Column = column
	}

	switch q.SortOrder {
	case "", "asc":
	case "desc":
		filter.Descending = true
	default:
		return nil, fmt.Errorf("%w: sort order must be asc or desc", ErrValidation)
	}

	return s.Repo.ListProducts(ctx, filter)
}

func (s *CatalogService) CreateProduct(ctx context.Context, in CreateProductInput, creatorID uint) (*models.Product, error) {
	l := logging.FromContext(ctx).With("svc", "catalog.create_product")

	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price cannot be negative", ErrValidation)
	}

	image := in.Image
	if image == "" {
		image = placeholderImage
	}

	product := models.Product{
		Title:       in.Title,
		Price:       RoundPrice(in.Price),
		Description: in.Description,
		Category:    in.Category,
		Image:       image,
		UserID:      &creatorID,
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		l.Error("create_product_error", "reason", "insert failed", "error", err)
		return nil, err
	}

	l.Info("product_created", "product_id", product.ID, "title", product.Title)
	return &product, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return s.Repo.DistinctCategories(ctx)
}

// RoundPrice normalizes to two-decimal fixed point, matching currency
// display.
func RoundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}
