package repo

import (
	"context"
	"strings"

	"github.com/akorchagin/product-catalog/internal/models"
)

// ProductFilter carries an already validated listing request: Column and
// Descending come from the service layer's closed sort-key set, never
// straight from client input.
type ProductFilter struct {
	Search     string
	Column     string
	Descending bool
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	q := r.DB.WithContext(ctx).Model(&models.Product{})

	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where(
			"LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?",
			term, term, term,
		)
	}

	if f.Column != "" {
		dir := " ASC"
		if f.Descending {
			dir = " DESC"
		}
		q = q.Order(f.Column + dir)
	}

	var items []models.Product
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, p *models.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) CountProducts(ctx context.Context) (int64, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *GormRepo) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Distinct("category").
		Where("category <> ''").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
