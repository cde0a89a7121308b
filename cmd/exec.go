package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"donorhub/config"
	"donorhub/handlers"
	"donorhub/internal/gateway"
	"donorhub/internal/imagehost"
	"donorhub/internal/schedule"
	"donorhub/internal/session"
	"donorhub/security"
	"donorhub/services"
	"donorhub/utils"
)

func Start() error {
	cfg := config.LoadConfig()

	log := newLogger(cfg.Environment)
	log.Info().Str("environment", cfg.Environment).Msg("starting donorhub")

	redisClient, err := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	gw := gateway.NewClient(&gateway.ClientConfig{
		BaseURL: cfg.GatewayBaseURL,
		Timeout: cfg.GatewayTimeout,
	}, &log)

	host := imagehost.NewClient(&imagehost.ClientConfig{
		UploadURL:    cfg.ImageUploadURL,
		UploadPreset: cfg.ImageUploadPreset,
		Timeout:      cfg.ImageTimeout,
	}, &log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Catalog is loaded once up front; a failure here is not fatal because
	// the scheduled refresh keeps retrying.
	catalog := services.NewCatalog(gw, &log)
	if err := catalog.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("initial catalog load failed; starting with empty lists")
	}

	countdown := services.NewCountdown(catalog)

	store := session.NewStore(redisClient, cfg.SessionTTL, &log)
	views := services.NewViewRegistry(catalog, countdown, gw, host, &log)
	defer views.CloseAll()
	anonView := services.NewEventView(catalog, countdown, gw, host, nil, &log)
	notifier := services.NewNotifier(gw, redisClient, &log)
	donations := services.NewDonations(gw, &log)
	guard := security.NewActionGuard(redisClient, cfg.ActionLockTTL, &log)
	limiter := security.NewRateLimiter(redisClient, cfg.RequestsPerMin)

	refresher := schedule.NewRefresher(&log)
	if err := refresher.Every(cfg.CatalogRefresh, "catalog", func() {
		refreshCtx, cancel := context.WithTimeout(ctx, cfg.GatewayTimeout*2)
		defer cancel()
		if err := catalog.Refresh(refreshCtx); err != nil {
			log.Warn().Err(err).Msg("scheduled catalog refresh failed")
		}
	}); err != nil {
		return err
	}
	refresher.Start()
	defer refresher.Stop()

	authHandler := handlers.NewAuthHandler(gw, store, views, notifier, &log)
	eventsHandler := handlers.NewEventsHandler(views, anonView, guard, &log)
	galleryHandler := handlers.NewGalleryHandler(views, anonView, guard, &log)
	notificationsHandler := handlers.NewNotificationsHandler(notifier, &log)
	campaignsHandler := handlers.NewCampaignsHandler(donations, &log)

	e := echo.New()
	e.Use(handlers.SessionMiddleware(store))
	e.Use(limiter.PerClientLimit())

	// Auth
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/logout", authHandler.Logout)

	// Events page
	e.GET("/api/view/events", eventsHandler.GetPage)
	e.POST("/api/view/events/:id/join", eventsHandler.Join)
	e.POST("/api/view/events/:id/reminder/open", eventsHandler.OpenReminder)
	e.POST("/api/view/events/:id/reminder", eventsHandler.SubmitReminder)
	e.DELETE("/api/view/events/:id/reminder", eventsHandler.CancelReminder)
	e.GET("/api/view/events/:id/certificate", eventsHandler.Certificate)

	// Gallery
	e.POST("/api/view/events/:id/gallery", galleryHandler.Upload)
	e.DELETE("/api/view/events/:id/gallery", galleryHandler.Delete)

	// Notifications
	e.GET("/api/view/notifications", notificationsHandler.List)
	e.PUT("/api/view/notifications/mark-read", notificationsHandler.MarkRead)

	// Campaigns and donations
	e.GET("/api/view/campaigns", campaignsHandler.List)
	e.GET("/api/view/donations", campaignsHandler.MyDonations)

	// Poll intervals for the browser client's "live" data loops.
	e.GET("/api/view/config", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"notificationPollSeconds": int(cfg.NotificationRefresh.Seconds()),
			"catalogRefreshSeconds":   int(cfg.CatalogRefresh.Seconds()),
		})
	})

	if cfg.EnableMetrics {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	e.GET("/health", func(c echo.Context) error {
		if err := utils.RedisHealthCheck(redisClient); err != nil {
			return c.JSON(503, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(200, map[string]string{"status": "healthy"})
	})

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: e,
	}

	go handleShutdown(cancel, &log)

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func newLogger(environment string) zerolog.Logger {
	if environment == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

func handleShutdown(cancel context.CancelFunc, log *zerolog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info().Msg("shutdown signal received, cleaning up")
	cancel()
}
