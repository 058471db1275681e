package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/DenisMukonin/Project-Portfolio/internal/config"
	"github.com/DenisMukonin/Project-Portfolio/internal/github"
	"github.com/DenisMukonin/Project-Portfolio/internal/handler"
	"github.com/DenisMukonin/Project-Portfolio/internal/ratelimit"
	"github.com/DenisMukonin/Project-Portfolio/internal/repository"
	"github.com/DenisMukonin/Project-Portfolio/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.Migrate(db); err != nil {
		return err
	}
	slog.Info("database ready")

	limiter, err := ratelimit.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	defer limiter.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := limiter.Ping(pingCtx); err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	slog.Info("redis ready")

	userRepo := repository.NewUserRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	experienceRepo := repository.NewExperienceRepository(db)
	educationRepo := repository.NewEducationRepository(db)
	viewRepo := repository.NewViewEventRepository(db)

	githubClient := github.NewClient()

	authSvc := service.NewAuthService(userRepo, githubClient, service.AuthConfig{
		GitHubClientID:     cfg.GitHubClientID,
		GitHubClientSecret: cfg.GitHubClientSecret,
		JWTSecret:          cfg.JWTSecret,
		FrontendURL:        cfg.FrontendURL,
	})
	userSvc := service.NewUserService(userRepo)
	portfolioSvc := service.NewPortfolioService(portfolioRepo, userRepo)
	projectSvc := service.NewProjectService(portfolioRepo, projectRepo)
	experienceSvc := service.NewExperienceService(portfolioRepo, experienceRepo)
	educationSvc := service.NewEducationService(portfolioRepo, educationRepo)
	reorderSvc := service.NewReorderService(portfolioRepo, projectRepo, experienceRepo, educationRepo)
	syncSvc := service.NewSyncService(portfolioRepo, userRepo, projectRepo, githubClient, limiter, cfg.SyncLockTTL)
	analyticsSvc := service.NewAnalyticsService(portfolioRepo, viewRepo, limiter, cfg.TrackCooldown)
	publicSvc := service.NewPublicService(portfolioRepo, userRepo, projectRepo, experienceRepo, educationRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	portfolioHandler := handler.NewPortfolioHandler(portfolioSvc)
	projectHandler := handler.NewProjectHandler(projectSvc)
	experienceHandler := handler.NewExperienceHandler(experienceSvc)
	educationHandler := handler.NewEducationHandler(educationSvc)
	reorderHandler := handler.NewReorderHandler(reorderSvc)
	syncHandler := handler.NewSyncHandler(syncSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	publicHandler := handler.NewPublicHandler(publicSvc)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Validator = handler.NewAppValidator()

	e.Use(echomw.RequestID())
	e.Use(handler.RequestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderAccept, echo.HeaderAuthorization, echo.HeaderContentType},
		ExposeHeaders:    []string{echo.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")

	// Public routes
	api.GET("/auth/github", authHandler.GitHubRedirect)
	api.GET("/auth/github/callback", authHandler.GitHubCallback)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.GET("/templates", handler.Templates)
	api.GET("/public/:slug", publicHandler.Get)
	api.POST("/analytics/track", analyticsHandler.Track)

	// Protected routes
	auth := api.Group("", handler.JWTAuth(authSvc))
	auth.GET("/auth/me", authHandler.Me)
	auth.PUT("/users/me", userHandler.Update)
	auth.DELETE("/users/me", userHandler.Delete)

	auth.GET("/portfolios", portfolioHandler.List)
	auth.POST("/portfolios", portfolioHandler.Create)
	auth.GET("/portfolios/:id", portfolioHandler.Get)
	auth.PUT("/portfolios/:id", portfolioHandler.Update)
	auth.DELETE("/portfolios/:id", portfolioHandler.Delete)
	auth.POST("/portfolios/:id/publish", portfolioHandler.Publish)

	auth.GET("/portfolios/:id/projects", projectHandler.List)
	auth.POST("/portfolios/:id/projects", projectHandler.Create)
	auth.POST("/portfolios/:id/projects/reorder", reorderHandler.Projects)
	auth.PUT("/portfolios/:id/projects/:projectId", projectHandler.Update)
	auth.DELETE("/portfolios/:id/projects/:projectId", projectHandler.Delete)
	auth.POST("/portfolios/:id/github/sync", syncHandler.Sync)

	auth.GET("/portfolios/:id/experiences", experienceHandler.List)
	auth.POST("/portfolios/:id/experiences", experienceHandler.Create)
	auth.POST("/portfolios/:id/experiences/reorder", reorderHandler.Experiences)
	auth.PUT("/portfolios/:id/experiences/:experienceId", experienceHandler.Update)
	auth.DELETE("/portfolios/:id/experiences/:experienceId", experienceHandler.Delete)

	auth.GET("/portfolios/:id/education", educationHandler.List)
	auth.POST("/portfolios/:id/education", educationHandler.Create)
	auth.POST("/portfolios/:id/education/reorder", reorderHandler.Education)
	auth.PUT("/portfolios/:id/education/:educationId", educationHandler.Update)
	auth.DELETE("/portfolios/:id/education/:educationId", educationHandler.Delete)

	auth.GET("/portfolios/:id/analytics", analyticsHandler.Stats)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		slog.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
	}

	slog.Info("server stopped")
	return nil
}
