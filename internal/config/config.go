package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the configuration settings for the homestead service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - APIPort: The port for the public API server.
// - HealthPort: The port for the monitoring (healthz/metrics) server.
// - ProviderType: The geocoding provider to use (google, nominatim).
// - MapsAPIKey: The API key for the maps/places provider (required for Google).
// - StabilizationWait: Delay between the map surface reporting ready and nearby lookups.
// - EnrichWait: Upper bound on how long a detail request waits for enrichment.
// - CacheTTL: TTL for the cached listings collection.
// - MailEndpoint: URL of the transactional email endpoint.
// - AuthEndpoint / AuthKey: Hosted identity provider endpoint and API key.
// - Redis: Redis connection settings for the listings cache.
// - Storage: S3 bucket settings for image uploads.
// - Database: PostgreSQL connection settings for the document store.
type Config struct {
	Env               string
	APIPort           int
	HealthPort        int
	ProviderType      string
	MapsAPIKey        string
	StabilizationWait time.Duration
	EnrichWait        time.Duration
	CacheTTL          time.Duration
	MailEndpoint      string
	AuthEndpoint      string
	AuthKey           string
	Redis             RedisConfig
	Storage           StorageConfig
	Database          PostgresConfig
}

// RedisConfig holds the connection details for the listings cache.
type RedisConfig struct {
	Addr     string // Addr is the redis server address, empty disables caching.
	Password string // Password is the redis auth password.
	DB       int    // DB is the redis database number.
}

// StorageConfig holds the S3 bucket settings for image uploads.
type StorageConfig struct {
	Bucket string // Bucket name, empty disables uploads.
	Region string // AWS region of the bucket.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// MustLoad loads the configuration from the environment and returns a Config struct.
// It panics when a numeric or duration value cannot be parsed.
func MustLoad() *Config {
	_ = godotenv.Load()

	apiPort, err := strconv.Atoi(setDefaultEnv("HOMESTEAD_API_PORT", "8081"))
	if err != nil {
		panic("failed to parse port for API server from configuration")
	}

	healthPort, err := strconv.Atoi(setDefaultEnv("HOMESTEAD_HEALTH_PORT", "8080"))
	if err != nil {
		panic("failed to parse port for monitoring server from configuration")
	}

	stabilization, err := time.ParseDuration(setDefaultEnv("HOMESTEAD_STABILIZATION_WAIT", "2s"))
	if err != nil {
		panic("failed to parse stabilization wait from configuration")
	}

	enrichWait, err := time.ParseDuration(setDefaultEnv("HOMESTEAD_ENRICH_WAIT", "10s"))
	if err != nil {
		panic("failed to parse enrich wait from configuration")
	}

	cacheTTL, err := time.ParseDuration(setDefaultEnv("HOMESTEAD_CACHE_TTL", "5m"))
	if err != nil {
		panic("failed to parse cache TTL from configuration")
	}

	redisDB, err := strconv.Atoi(setDefaultEnv("REDIS_DB", "0"))
	if err != nil {
		panic("failed to parse redis database number from configuration")
	}

	return &Config{
		Env:               setDefaultEnv("HOMESTEAD_ENV", "production"),
		APIPort:           apiPort,
		HealthPort:        healthPort,
		ProviderType:      setDefaultEnv("HOMESTEAD_PROVIDER_TYPE", "google"),
		MapsAPIKey:        os.Getenv("HOMESTEAD_MAPS_KEY"),
		StabilizationWait: stabilization,
		EnrichWait:        enrichWait,
		CacheTTL:          cacheTTL,
		MailEndpoint:      os.Getenv("HOMESTEAD_MAIL_ENDPOINT"),
		AuthEndpoint:      os.Getenv("HOMESTEAD_AUTH_ENDPOINT"),
		AuthKey:           os.Getenv("HOMESTEAD_AUTH_KEY"),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Storage: StorageConfig{
			Bucket: os.Getenv("S3_IMAGE_BUCKET"),
			Region: setDefaultEnv("AWS_REGION", "us-east-1"),
		},
		Database: PostgresConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     setDefaultEnv("DB_PORT", "5432"),
			User:     os.Getenv("DB_USERNAME"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
	}
}

func setDefaultEnv(key, override string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = override
	}

	return value
}
