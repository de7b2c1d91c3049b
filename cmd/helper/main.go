// Command helper serves the disaster-preparedness API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/disaster-helper/internal/adapter/http"
	"github.com/couchcryptid/disaster-helper/internal/config"
	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
	"github.com/couchcryptid/disaster-helper/internal/pipeline"
	"github.com/couchcryptid/disaster-helper/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env file", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := connect(ctx, cfg, metrics, logger)
	if err != nil {
		logger.Error("failed to initialise dependencies", "error", err)
		os.Exit(1)
	}
	defer deps.close(logger)

	alerts := service.NewAlerts(deps.backend, deps.publisher, metrics, logger)
	svc := httpadapter.Services{
		Alerts:     alerts,
		Resources:  service.NewResources(deps.backend),
		Contacts:   service.NewContacts(deps.backend),
		Profile:    service.NewProfile(deps.backend),
		Chat:       service.NewChat(deps.backend, domain.DefaultKeywordMatcher(), deps.generator, metrics, logger),
		Shop:       service.NewShop(deps.backend, domain.DefaultCatalog(), cfg.ShippingCents, logger),
		Weather:    service.NewWeather(deps.weather, home(cfg), metrics, logger),
		SOS:        service.NewSOS(cfg.EmergencyNumber, deps.geocoder, logger),
		Blog:       service.NewBlog(deps.blog),
		Documents:  service.NewDocuments(deps.documents, logger),
		Volunteers: service.NewVolunteers(deps.volunteers),
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, deps.readiness, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start advisory sync.
	if cfg.AdvisorySyncEnabled {
		p := pipeline.New(deps.advisories, alerts, pipeline.Options{
			Session:  cfg.AdvisorySyncSession,
			Home:     home(cfg),
			Interval: cfg.AdvisorySyncInterval,
		}, nil, logger, metrics)
		go func() {
			if err := p.Run(ctx); err != nil {
				logger.Error("advisory sync error", "error", err)
			}
		}()
	} else {
		logger.Info("advisory sync disabled")
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}

func home(cfg *config.Config) domain.Coordinates {
	return domain.Coordinates{Lat: cfg.DefaultLat, Lon: cfg.DefaultLon}
}
