// @title Go2gether Creator Hub API
// @version 1.0
// @description Creator profiles, trip template authoring, discovery and affiliate links

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/cors"

	_ "GO2GETHER_CREATOR-HUB/docs" // This is required for swagger
	"GO2GETHER_CREATOR-HUB/internal/auth"
	"GO2GETHER_CREATOR-HUB/internal/config"
	"GO2GETHER_CREATOR-HUB/internal/db"
	"GO2GETHER_CREATOR-HUB/internal/events"
	"GO2GETHER_CREATOR-HUB/internal/handlers"
	"GO2GETHER_CREATOR-HUB/internal/repository"
	"GO2GETHER_CREATOR-HUB/internal/routes"
	"GO2GETHER_CREATOR-HUB/internal/services"
	"GO2GETHER_CREATOR-HUB/internal/utils"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := utils.NewLogger(cfg.Log, os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("database connected", slog.String("host", cfg.Database.Host), slog.String("db", cfg.Database.Name))

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, pool); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	// --- Domain wiring ---
	bus := events.NewBus(logger)
	bus.Subscribe(events.LogSubscriber(logger))

	users := repository.NewUserRepository(pool)
	creatorRepo := repository.NewCreatorRepository(pool)
	templateRepo := repository.NewTemplateRepository(pool)
	affiliateRepo := repository.NewAffiliateRepository(pool)

	tokens := auth.NewTokenManager(cfg.JWT)
	authService := services.NewAuthService(users, tokens, logger)
	creatorService := services.NewCreatorService(creatorRepo, cfg.Creator.DefaultCommissionRate, bus, logger)
	templateService := services.NewTemplateService(creatorService, templateRepo, bus, logger)
	discoveryService := services.NewDiscoveryService(templateRepo, affiliateRepo, logger)
	affiliateService := services.NewAffiliateService(creatorService, templateRepo, affiliateRepo, bus, logger)

	// --- HTTP Handlers ---
	h := routes.Handlers{
		Health:     handlers.NewHealthHandler(pool),
		Auth:       handlers.NewAuthHandler(authService),
		Creators:   handlers.NewCreatorHandler(creatorService),
		Templates:  handlers.NewTemplateHandler(templateService),
		Discovery:  handlers.NewDiscoveryHandler(discoveryService),
		Affiliates: handlers.NewAffiliateHandler(affiliateService),
	}
	if cfg.IsGoogleOAuthConfigured() {
		h.GoogleAuth = handlers.NewGoogleAuthHandler(authService, cfg.GoogleOAuth)
	}
	router := routes.SetupRoutes(h, authService, logger)

	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}
