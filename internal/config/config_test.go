package config_test

import (
	"testing"
	"time"

	"github.com/lexirealty/homestead/internal/config"
	"github.com/stretchr/testify/assert"
)

func Test_MustLoadFromEnv(t *testing.T) {
	t.Setenv("HOMESTEAD_ENV", "local")
	t.Setenv("HOMESTEAD_API_PORT", "9091")
	t.Setenv("HOMESTEAD_PROVIDER_TYPE", "nominatim")
	t.Setenv("HOMESTEAD_MAPS_KEY", "testAPIKey")
	t.Setenv("HOMESTEAD_STABILIZATION_WAIT", "500ms")
	t.Setenv("HOMESTEAD_ENRICH_WAIT", "3s")
	t.Setenv("HOMESTEAD_CACHE_TTL", "10m")
	t.Setenv("HOMESTEAD_MAIL_ENDPOINT", "https://mail.example.com/send")
	t.Setenv("HOMESTEAD_AUTH_ENDPOINT", "https://identity.example.com")
	t.Setenv("HOMESTEAD_AUTH_KEY", "authKey")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_PASSWORD", "redispass")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("S3_IMAGE_BUCKET", "homestead-images")
	t.Setenv("AWS_REGION", "us-west-2")
	t.Setenv("DB_HOST", "testHost")
	t.Setenv("DB_PORT", "12345")
	t.Setenv("DB_USERNAME", "admin")
	t.Setenv("DB_PASSWORD", "adminpass")
	t.Setenv("DB_NAME", "testName")

	cfg := config.MustLoad()

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, 9091, cfg.APIPort)
	assert.Equal(t, 8080, cfg.HealthPort)
	assert.Equal(t, "nominatim", cfg.ProviderType)
	assert.Equal(t, "testAPIKey", cfg.MapsAPIKey)
	assert.Equal(t, 500*time.Millisecond, cfg.StabilizationWait)
	assert.Equal(t, 3*time.Second, cfg.EnrichWait)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "https://mail.example.com/send", cfg.MailEndpoint)
	assert.Equal(t, "https://identity.example.com", cfg.AuthEndpoint)
	assert.Equal(t, "authKey", cfg.AuthKey)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "redispass", cfg.Redis.Password)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "homestead-images", cfg.Storage.Bucket)
	assert.Equal(t, "us-west-2", cfg.Storage.Region)
	assert.Equal(t, "testHost", cfg.Database.Host)
	assert.Equal(t, "12345", cfg.Database.Port)
	assert.Equal(t, "admin", cfg.Database.User)
	assert.Equal(t, "adminpass", cfg.Database.Password)
	assert.Equal(t, "testName", cfg.Database.Name)
}

func Test_MustLoadDefaults(t *testing.T) {
	cfg := config.MustLoad()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, 8081, cfg.APIPort)
	assert.Equal(t, 8080, cfg.HealthPort)
	assert.Equal(t, "google", cfg.ProviderType)
	assert.Equal(t, 2*time.Second, cfg.StabilizationWait)
	assert.Equal(t, 10*time.Second, cfg.EnrichWait)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
	assert.Equal(t, "5432", cfg.Database.Port)
}

func TestMustLoad_APIPortError(t *testing.T) {
	t.Setenv("HOMESTEAD_API_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for API server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_HealthPortError(t *testing.T) {
	t.Setenv("HOMESTEAD_HEALTH_PORT", "error_value")

	assert.PanicsWithValue(t, "failed to parse port for monitoring server from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_StabilizationWaitError(t *testing.T) {
	t.Setenv("HOMESTEAD_STABILIZATION_WAIT", "error_value")

	assert.PanicsWithValue(t, "failed to parse stabilization wait from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_EnrichWaitError(t *testing.T) {
	t.Setenv("HOMESTEAD_ENRICH_WAIT", "error_value")

	assert.PanicsWithValue(t, "failed to parse enrich wait from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_CacheTTLError(t *testing.T) {
	t.Setenv("HOMESTEAD_CACHE_TTL", "error_value")

	assert.PanicsWithValue(t, "failed to parse cache TTL from configuration", func() {
		config.MustLoad()
	})
}

func TestMustLoad_RedisDBError(t *testing.T) {
	t.Setenv("REDIS_DB", "error_value")

	assert.PanicsWithValue(t, "failed to parse redis database number from configuration", func() {
		config.MustLoad()
	})
}
