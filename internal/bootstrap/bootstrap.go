package bootstrap

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/akorchagin/product-catalog/internal/feed"
	"github.com/akorchagin/product-catalog/internal/hash"
	"github.com/akorchagin/product-catalog/internal/logging"
	"github.com/akorchagin/product-catalog/internal/models"
	"github.com/akorchagin/product-catalog/internal/repo"
)

// Sample record appended to the feed on first-run seeding.
var sampleLaptop = models.Product{
	Title:       "Gaming Laptop",
	Price:       999.99,
	Description: "High-performance gaming laptop with RTX graphics",
	Category:    "laptop",
	Image:       "https://via.placeholder.com/300",
	RatingRate:  4.5,
	RatingCount: 50,
}

const (
	adminUsername = "admin"
	adminEmail    = "admin@example.com"
)

type Bootstrap struct {
	DB   *gorm.DB
	Repo *repo.GormRepo
	Feed *feed.Client

	// AdminPassword seeds the first-run admin account. Shipping a known
	// default is a documented convenience; rotate it in any real
	// deployment.
	AdminPassword string
}

// Run is the explicit, idempotent first-run initialization: schema,
// admin account, catalog seed. Only a migration failure is fatal; admin
// and catalog seeding failures are logged and startup continues.
func (b *Bootstrap) Run(ctx context.Context) error {
	l := logging.FromContext(ctx).With("svc", "bootstrap")

	if err := b.DB.WithContext(ctx).AutoMigrate(&models.User{}, &models.Product{}); err != nil {
		return fmt.Errorf("bootstrap: migrate schema: %w", err)
	}

	if err := b.ensureAdmin(ctx); err != nil {
		l.Error("admin_seed_failed", "error", err)
	}

	b.seedCatalog(ctx)
	return nil
}

func (b *Bootstrap) ensureAdmin(ctx context.Context) error {
	l := logging.FromContext(ctx).With("svc", "bootstrap")

	exists, err := b.Repo.AdminExists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	pwHash, err := hash.HashPassword(b.AdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:     adminUsername,
		Email:        adminEmail,
		PasswordHash: pwHash,
		Role:         models.RoleAdmin,
	}
	if err := b.Repo.CreateUser(ctx, &admin); err != nil {
		return err
	}

	l.Warn("default_admin_created",
		"username", adminUsername,
		"note", "rotate the bootstrap admin password before exposing this service")
	return nil
}

// seedCatalog runs row by row without a transaction; a mid-seed failure
// leaves a partial catalog, which is accepted.
func (b *Bootstrap) seedCatalog(ctx context.Context) {
	l := logging.FromContext(ctx).With("svc", "bootstrap")

	total, err := b.Repo.CountProducts(ctx)
	if err != nil {
		l.Error("catalog_seed_failed", "reason", "cannot count products", "error", err)
		return
	}
	if total > 0 {
		return
	}

	feedProducts, err := b.Feed.Fetch(ctx)
	if err != nil {
		l.Error("catalog_seed_failed", "reason", "feed unavailable", "error", err)
		return
	}

	seeded := 0
	for _, fp := range feedProducts {
		p := models.Product{
			Title:       fp.Title,
			Price:       fp.Price,
			Description: fp.Description,
			Category:    fp.Category,
			Image:       fp.Image,
			RatingRate:  fp.Rating.Rate,
			RatingCount: fp.Rating.Count,
		}
		if err := b.Repo.CreateProduct(ctx, &p); err != nil {
			l.Error("catalog_seed_row_failed", "title", fp.Title, "error", err)
			continue
		}
		seeded++
	}

	sample := sampleLaptop
	if err := b.Repo.CreateProduct(ctx, &sample); err != nil {
		l.Error("catalog_seed_row_failed", "title", sample.Title, "error", err)
	} else {
		seeded++
	}

	l.Info("catalog_seeded", "products", seeded)
}
