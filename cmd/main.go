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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lexirealty/homestead/internal/auth"
	"github.com/lexirealty/homestead/internal/config"
	"github.com/lexirealty/homestead/internal/enrich"
	"github.com/lexirealty/homestead/internal/geocoding"
	"github.com/lexirealty/homestead/internal/imagestore"
	"github.com/lexirealty/homestead/internal/mailer"
	"github.com/lexirealty/homestead/internal/metrics"
	"github.com/lexirealty/homestead/internal/places"
	"github.com/lexirealty/homestead/internal/redisx"
	"github.com/lexirealty/homestead/internal/repository"
	"github.com/lexirealty/homestead/internal/server"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"googlemaps.github.io/maps"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Initialize the database connection.
	dtb, err := repository.NewDatabase(
		ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// Create a new repository instance using the database connection.
	repo := repository.NewRepository(dtb, logger)

	// Create geocoding provider using factory pattern based on configuration.
	// This allows runtime selection between providers (Google, Nominatim).
	rateLimit := 50
	providerConfig := geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.ProviderType),
		APIKey:    cfg.MapsAPIKey,
		RateLimit: rateLimit,
		Logger:    logger,
	}

	geoProvider, err := geocoding.NewProvider(providerConfig)
	if err != nil {
		log.Fatalf("Failed to create geocoding provider: %v", err)
	}
	logger.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.ProviderType)

	// The nearby-place finder needs the maps/places API; without a key the
	// listing view degrades to no proximity data.
	deps := server.Deps{
		Log:        logger,
		Repo:       repo,
		CacheTTL:   cfg.CacheTTL,
		EnrichWait: cfg.EnrichWait,
	}

	deps.Coordinator = enrich.NewCoordinator(
		logger, geoProvider, cfg.ProviderType, repo, appMetrics, cfg.StabilizationWait,
	)

	if cfg.MapsAPIKey != "" {
		mapsClient, errMaps := maps.NewClient(maps.WithAPIKey(cfg.MapsAPIKey), maps.WithRateLimit(rateLimit))
		if errMaps != nil {
			log.Fatalf("Failed to create maps client: %v", errMaps)
		}
		deps.Searcher = places.NewFinder(mapsClient, logger)
	} else {
		logger.WarnContext(ctx, "No maps API key configured, nearby-place lookups disabled")
	}

	if cfg.Redis.Addr != "" {
		cache := redisx.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if errPing := cache.Ping(ctx); errPing != nil {
			logger.WarnContext(ctx, "Redis unreachable, listings cache disabled", "error", errPing)
		} else {
			deps.Cache = cache
		}
	}

	if cfg.MailEndpoint != "" {
		deps.Mailer = mailer.New(cfg.MailEndpoint, logger)
	}

	if cfg.AuthEndpoint != "" {
		deps.Auth = auth.NewClient(cfg.AuthEndpoint, cfg.AuthKey, logger)
	}

	if cfg.Storage.Bucket != "" {
		images, errImg := imagestore.New(ctx, cfg.Storage.Bucket, cfg.Storage.Region, logger)
		if errImg != nil {
			log.Fatalf("Failed to create image store: %v", errImg)
		}
		deps.Images = images
	}

	// Log that the application has started.
	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Start the monitoring server in a goroutine to allow main to listen for signals.
	go startMonitoringServer(ctx, logger, reg, dtb, cfg.HealthPort)

	go startAPIServer(ctx, logger, server.NewRouter(deps), cfg.APIPort)

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	// Log that a shutdown signal has been received.
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	// Log graceful shutdown completion.
	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// startAPIServer starts the public API server on the given port.
func startAPIServer(ctx context.Context, log *slog.Logger, handler http.Handler, port int) {
	readTimeout := 5
	writeTimeout := 30
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      handler,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}

	log.InfoContext(ctx, "Starting API server", "port", port)
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "API server failed", "error", err)
	}
}

// startMonitoringServer starts an HTTP server that provides health check and metrics endpoints.
// It listens on the specified port and logs the server's status and any errors encountered.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb *pgxpool.Pool,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		log.DebugContext(ctx, "Performing health checks...")
		status, body := http.StatusOK, "OK"
		if err := dtb.Ping(ctx); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		_, err := writer.Write([]byte(body))
		if err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
