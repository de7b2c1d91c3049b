package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Snapshot store.
	StoreBackend  string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// Alert event publishing.
	AlertEventsEnabled bool
	KafkaBrokers       []string
	KafkaAlertTopic    string

	// Weather provider.
	WeatherBaseURL   string
	WeatherUserAgent string
	WeatherTimeout   time.Duration
	WeatherCacheSize int
	WeatherCacheTTL  time.Duration
	DefaultLat       float64
	DefaultLon       float64

	// Generative-text assistant.
	GeminiAPIKey  string
	GeminiModel   string
	GeminiEnabled bool

	// Blog posts (hosted table). Empty disables the feature.
	DatabaseURL string

	// Document bucket. Empty endpoint disables the feature.
	MinioEndpoint   string
	MinioAccessKey  string
	MinioSecretKey  string
	MinioBucket     string
	MinioUseSSL     bool
	MinioPublicBase string

	// Mapbox reverse geocoding for SOS links.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int

	// Volunteer form endpoint. Empty disables the feature.
	FormspreeURL     string
	FormspreeTimeout time.Duration

	EmergencyNumber string
	ShippingCents   int64

	// Advisory sync pipeline.
	AdvisorySyncEnabled  bool
	AdvisorySyncInterval time.Duration
	AdvisorySyncSession  string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	redisDB, err := parseInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := parsePositiveDuration("WEATHER_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	weatherCacheTTL, err := parsePositiveDuration("WEATHER_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}
	mapboxTimeout, err := parsePositiveDuration("MAPBOX_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	formspreeTimeout, err := parsePositiveDuration("FORMSPREE_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	syncInterval, err := parsePositiveDuration("ADVISORY_SYNC_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	defaultLat, err := parseFloat("DEFAULT_LAT", 40.7128)
	if err != nil {
		return nil, err
	}
	defaultLon, err := parseFloat("DEFAULT_LON", -74.0060)
	if err != nil {
		return nil, err
	}
	shipping, err := parseInt("SHIPPING_CENTS", 599)
	if err != nil {
		return nil, err
	}
	if shipping < 0 {
		return nil, errors.New("invalid SHIPPING_CENTS: must not be negative")
	}

	geminiKey := os.Getenv("GEMINI_API_KEY")
	mapboxToken := os.Getenv("MAPBOX_TOKEN")

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		StoreBackend:  sharedcfg.EnvOrDefault("STORE_BACKEND", StoreMemory),
		RedisAddr:     sharedcfg.EnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,
		RedisPrefix:   os.Getenv("REDIS_KEY_PREFIX"),

		AlertEventsEnabled: parseBool("ALERT_EVENTS_ENABLED", false),
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAlertTopic:    sharedcfg.EnvOrDefault("KAFKA_ALERT_TOPIC", "disaster-alerts"),

		WeatherBaseURL:   sharedcfg.EnvOrDefault("WEATHER_BASE_URL", "https://api.weather.gov"),
		WeatherUserAgent: sharedcfg.EnvOrDefault("WEATHER_USER_AGENT", "disaster-helper (ops@disaster-helper.local)"),
		WeatherTimeout:   weatherTimeout,
		WeatherCacheSize: parseCacheSize("WEATHER_CACHE_SIZE", 256),
		WeatherCacheTTL:  weatherCacheTTL,
		DefaultLat:       defaultLat,
		DefaultLon:       defaultLon,

		GeminiAPIKey:  geminiKey,
		GeminiModel:   sharedcfg.EnvOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiEnabled: parseBool("GEMINI_ENABLED", geminiKey != ""),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		MinioEndpoint:   os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:  os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey:  os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:     sharedcfg.EnvOrDefault("MINIO_BUCKET", "documents"),
		MinioUseSSL:     parseBool("MINIO_USE_SSL", false),
		MinioPublicBase: os.Getenv("MINIO_PUBLIC_BASE"),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   parseBool("MAPBOX_ENABLED", mapboxToken != ""),
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: parseCacheSize("MAPBOX_CACHE_SIZE", 1000),

		FormspreeURL:     os.Getenv("FORMSPREE_URL"),
		FormspreeTimeout: formspreeTimeout,

		EmergencyNumber: sharedcfg.EnvOrDefault("EMERGENCY_NUMBER", "911"),
		ShippingCents:   int64(shipping),

		AdvisorySyncEnabled:  parseBool("ADVISORY_SYNC_ENABLED", false),
		AdvisorySyncInterval: syncInterval,
		AdvisorySyncSession:  sharedcfg.EnvOrDefault("ADVISORY_SYNC_SESSION", "default"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("invalid STORE_BACKEND %q: want %q or %q", c.StoreBackend, StoreMemory, StoreRedis)
	}
	if c.StoreBackend == StoreRedis && c.RedisAddr == "" {
		return errors.New("REDIS_ADDR is required when STORE_BACKEND is redis")
	}
	if c.AlertEventsEnabled && len(c.KafkaBrokers) == 0 {
		return errors.New("KAFKA_BROKERS is required when ALERT_EVENTS_ENABLED is true")
	}
	if c.AlertEventsEnabled && c.KafkaAlertTopic == "" {
		return errors.New("KAFKA_ALERT_TOPIC is required when ALERT_EVENTS_ENABLED is true")
	}
	if c.GeminiEnabled && c.GeminiAPIKey == "" {
		return errors.New("GEMINI_ENABLED is true but GEMINI_API_KEY is not set")
	}
	if c.MapboxEnabled && c.MapboxToken == "" {
		return errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}
	if c.MinioEndpoint != "" && (c.MinioAccessKey == "" || c.MinioSecretKey == "") {
		return errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when MINIO_ENDPOINT is set")
	}
	if c.DefaultLat < -90 || c.DefaultLat > 90 {
		return errors.New("invalid DEFAULT_LAT: must be within [-90, 90]")
	}
	if c.DefaultLon < -180 || c.DefaultLon > 180 {
		return errors.New("invalid DEFAULT_LON: must be within [-180, 180]")
	}
	return nil
}

// DocumentsEnabled reports whether a document bucket is configured.
func (c *Config) DocumentsEnabled() bool { return c.MinioEndpoint != "" }

// BlogEnabled reports whether a blog-post database is configured.
func (c *Config) BlogEnabled() bool { return c.DatabaseURL != "" }

// VolunteersEnabled reports whether a volunteer form endpoint is configured.
func (c *Config) VolunteersEnabled() bool { return c.FormspreeURL != "" }

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be a positive duration", key)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

// parseBool treats an unset variable as def and anything but "true" as false,
// matching the MAPBOX_ENABLED convention.
func parseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		return v == "true"
	}
	return def
}

func parseCacheSize(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}
