package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/akorchagin/product-catalog/internal/feed"
	"github.com/akorchagin/product-catalog/internal/hash"
	"github.com/akorchagin/product-catalog/internal/models"
	"github.com/akorchagin/product-catalog/internal/repo"
)

const stubFeedBody = `[
  {"title":"Feed Product A","price":10.5,"description":"a","category":"cat-a","image":"https://example.test/a.jpg","rating":{"rate":4.0,"count":10}},
  {"title":"Feed Product B","price":20,"description":"b","category":"cat-b","image":"https://example.test/b.jpg","rating":{"rate":3.5,"count":5}}
]`

func newBootstrap(t *testing.T, feedURL string) (*Bootstrap, *repo.GormRepo) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	gormRepo := &repo.GormRepo{DB: db}
	return &Bootstrap{
		DB:            db,
		Repo:          gormRepo,
		Feed:          feed.NewClient(feedURL),
		AdminPassword: "admin123",
	}, gormRepo
}

func stubFeedServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(stubFeedBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBootstrap_SeedsAdminAndCatalog(t *testing.T) {
	srv := stubFeedServer(t, nil)
	boot, gormRepo := newBootstrap(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, boot.Run(ctx))

	admin, err := gormRepo.FindUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.True(t, hash.CheckPassword(admin.PasswordHash, "admin123"))

	total, err := gormRepo.CountProducts(ctx)
	require.NoError(t, err)
	// Two feed rows plus the sample laptop.
	assert.EqualValues(t, 3, total)

	products, err := gormRepo.ListProducts(ctx, repo.ProductFilter{Search: "gaming laptop"})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, 999.99, products[0].Price)
	assert.Nil(t, products[0].UserID)
}

func TestBootstrap_IsIdempotent(t *testing.T) {
	hits := 0
	srv := stubFeedServer(t, &hits)
	boot, gormRepo := newBootstrap(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, boot.Run(ctx))
	require.NoError(t, boot.Run(ctx))

	var admins int64
	require.NoError(t, boot.DB.Model(&models.User{}).
		Where("role = ?", models.RoleAdmin).Count(&admins).Error)
	assert.EqualValues(t, 1, admins)

	total, err := gormRepo.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	assert.Equal(t, 1, hits, "feed must only be fetched on first run")
}

func TestBootstrap_KeepsExistingAdmin(t *testing.T) {
	srv := stubFeedServer(t, nil)
	boot, gormRepo := newBootstrap(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, boot.DB.AutoMigrate(&models.User{}, &models.Product{}))
	pwHash, err := hash.HashPassword("custom")
	require.NoError(t, err)
	require.NoError(t, gormRepo.CreateUser(ctx, &models.User{
		Username:     "owner",
		Email:        "owner@x.com",
		PasswordHash: pwHash,
		Role:         models.RoleAdmin,
	}))

	require.NoError(t, boot.Run(ctx))

	_, err = gormRepo.FindUserByUsername(ctx, "admin")
	assert.ErrorIs(t, err, repo.ErrUserNotFound)
}

func TestBootstrap_FeedFailureDoesNotAbortStartup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	boot, gormRepo := newBootstrap(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, boot.Run(ctx))

	// Admin seeding is independent of the feed.
	admin, err := gormRepo.FindUserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)

	total, err := gormRepo.CountProducts(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestBootstrap_SkipsSeedWhenCatalogNotEmpty(t *testing.T) {
	hits := 0
	srv := stubFeedServer(t, &hits)
	boot, gormRepo := newBootstrap(t, srv.URL)
	ctx := context.Background()

	require.NoError(t, boot.DB.AutoMigrate(&models.User{}, &models.Product{}))
	require.NoError(t, gormRepo.CreateProduct(ctx, &models.Product{Title: "Existing", Price: 1}))

	require.NoError(t, boot.Run(ctx))

	total, err := gormRepo.CountProducts(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Zero(t, hits)
}
