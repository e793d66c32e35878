package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/akorchagin/product-catalog/internal/bootstrap"
	"github.com/akorchagin/product-catalog/internal/config"
	"github.com/akorchagin/product-catalog/internal/db"
	"github.com/akorchagin/product-catalog/internal/events"
	"github.com/akorchagin/product-catalog/internal/feed"
	"github.com/akorchagin/product-catalog/internal/httpserver"
	"github.com/akorchagin/product-catalog/internal/logging"
	auth "github.com/akorchagin/product-catalog/internal/middleware/auth"
	"github.com/akorchagin/product-catalog/internal/middleware/requestlog"
	"github.com/akorchagin/product-catalog/internal/repo"
	"github.com/akorchagin/product-catalog/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "product-catalog")
	slog.SetDefault(logger)

	if cfg.SecretDefaulted() {
		logger.Warn("JWT_SECRET is not set, using the built-in default; do not run this in production")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	database, err := db.Open(ctx, cfg.DatabaseURL, cfg.SQLitePath)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}

	gormRepo := &repo.GormRepo{DB: database}

	boot := &bootstrap.Bootstrap{
		DB:            database,
		Repo:          gormRepo,
		Feed:          feed.NewClient(cfg.FeedURL),
		AdminPassword: cfg.AdminPassword,
	}
	bootCtx, bootCancel := context.WithTimeout(
		logging.IntoContext(context.Background(), logger), 60*time.Second)
	err = boot.Run(bootCtx)
	bootCancel()
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	var producer events.Producer = events.NopProducer{}
	if len(cfg.KafkaBrokers) > 0 {
		producer = events.NewKafkaProducer(cfg.KafkaBrokers)
		logger.Info("kafka producer enabled", "brokers", cfg.KafkaBrokers)
	}

	authSvc := &service.AuthService{Repo: gormRepo, JWTSecret: cfg.JWTSecret}
	catalogSvc := &service.CatalogService{Repo: gormRepo}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(requestlog.Logger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: catalogSvc, Producer: producer},
		Gate:           auth.NewGate(cfg.JWTSecret),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)

	if err := producer.Close(); err != nil {
		logger.Error("producer close failed", "error", err)
	}
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info("server stopped")
}
