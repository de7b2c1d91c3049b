package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/couchcryptid/disaster-helper/internal/adapter/formspree"
	"github.com/couchcryptid/disaster-helper/internal/adapter/gemini"
	kafkaadapter "github.com/couchcryptid/disaster-helper/internal/adapter/kafka"
	"github.com/couchcryptid/disaster-helper/internal/adapter/mapbox"
	minioadapter "github.com/couchcryptid/disaster-helper/internal/adapter/minio"
	"github.com/couchcryptid/disaster-helper/internal/adapter/nws"
	"github.com/couchcryptid/disaster-helper/internal/adapter/postgres"
	redisadapter "github.com/couchcryptid/disaster-helper/internal/adapter/redis"
	"github.com/couchcryptid/disaster-helper/internal/config"
	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/observability"
	"github.com/couchcryptid/disaster-helper/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// dependencies are the collaborators built from configuration. Optional
// ones stay nil interfaces when their feature is off.
type dependencies struct {
	backend    store.Backend
	publisher  domain.AlertPublisher
	weather    domain.WeatherProvider
	advisories domain.AdvisorySource
	generator  domain.ReplyGenerator
	geocoder   domain.Geocoder
	blog       domain.BlogStore
	documents  domain.DocumentStore
	volunteers domain.VolunteerSubmitter
	readiness  observability.ReadinessGroup
	closers    []io.Closer
}

func connect(ctx context.Context, cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger) (*dependencies, error) {
	d := &dependencies{}

	switch cfg.StoreBackend {
	case config.StoreRedis:
		rb, err := redisadapter.Connect(ctx, &goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.RedisPrefix)
		if err != nil {
			return nil, err
		}
		d.backend = store.NewInstrumented(rb, metrics)
		d.readiness = append(d.readiness, rb)
		d.closers = append(d.closers, rb)
		logger.Info("snapshot store: redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	default:
		mem := store.NewMemory()
		d.backend = store.NewInstrumented(mem, metrics)
		d.readiness = append(d.readiness, mem)
		logger.Info("snapshot store: memory")
	}

	if cfg.AlertEventsEnabled {
		w := kafkaadapter.NewWriter(cfg, logger)
		d.publisher = w
		d.closers = append(d.closers, w)
		logger.Info("alert events enabled", "topic", cfg.KafkaAlertTopic, "brokers", cfg.KafkaBrokers)
	}

	nwsClient := nws.NewClient(cfg.WeatherBaseURL, cfg.WeatherUserAgent, cfg.WeatherTimeout, metrics, logger)
	d.weather = nws.NewCachedProvider(nwsClient, cfg.WeatherCacheSize, cfg.WeatherCacheTTL, metrics)
	d.advisories = nwsClient

	if cfg.GeminiEnabled {
		g, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, logger)
		if err != nil {
			logger.Warn("gemini unavailable, chat uses keyword replies only", "error", err)
		} else {
			d.generator = g
			logger.Info("gemini chat enabled", "model", cfg.GeminiModel)
		}
	}

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		cached, err := mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		if err != nil {
			return nil, fmt.Errorf("mapbox cache: %w", err)
		}
		d.geocoder = cached
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	if cfg.BlogEnabled() {
		bs, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := bs.RunMigrations(ctx); err != nil {
			_ = bs.Close()
			return nil, err
		}
		d.blog = bs
		d.readiness = append(d.readiness, bs)
		d.closers = append(d.closers, bs)
		logger.Info("blog posts enabled")
	}

	if cfg.DocumentsEnabled() {
		b, err := minioadapter.NewBucket(minioadapter.Config{
			Endpoint:   cfg.MinioEndpoint,
			AccessKey:  cfg.MinioAccessKey,
			SecretKey:  cfg.MinioSecretKey,
			Bucket:     cfg.MinioBucket,
			UseSSL:     cfg.MinioUseSSL,
			PublicBase: cfg.MinioPublicBase,
		}, logger)
		if err != nil {
			return nil, err
		}
		d.documents = b
		d.readiness = append(d.readiness, b)
		logger.Info("document uploads enabled", "bucket", cfg.MinioBucket)
	}

	if cfg.VolunteersEnabled() {
		d.volunteers = formspree.NewClient(cfg.FormspreeURL, cfg.FormspreeTimeout, logger)
		logger.Info("volunteer sign-up enabled")
	}

	return d, nil
}

func (d *dependencies) close(logger *slog.Logger) {
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			logger.Error("close error", "error", err)
		}
	}
}
