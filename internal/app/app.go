package app

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"edgestats/internal/config"
	apierrors "edgestats/internal/errors"
	"edgestats/internal/featurestore"
	"edgestats/internal/infrastructure"
	customMiddleware "edgestats/internal/middleware"
	"edgestats/internal/services"
	handlers "edgestats/internal/transport/http"
)

var (
	// BuildTime is set at link time.
	BuildTime = ""
	// BuildID is set at link time; generateBuildID fills it otherwise.
	BuildID = ""
)

func generateBuildID() string {
	h := sha256.New()
	h.Write([]byte(config.AppVersion))
	h.Write([]byte(time.Now().Format("2006-01-02")))
	return fmt.Sprintf("%x", h.Sum(nil))[:12]
}

// Application represents the main application container
type Application struct {
	Config         *config.Config
	Router         *chi.Mux
	Server         *http.Server
	Provider       featurestore.Provider
	FeatureService *services.FeatureService
	HealthService  *services.HealthService
	Metrics        *infrastructure.PipelineMetrics
	ErrorHandler   *apierrors.ErrorHandler
	Logger         *slog.Logger
	OTelProviders  *infrastructure.OTelProviders
}

// New loads the configuration, initializes logging and builds the
// application.
func New() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return NewApplication(cfg, logger)
}

// NewApplication wires every component from cfg.
func NewApplication(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))

	if err := cfg.Paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.NewPipelineMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, false),
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// NewProvider picks the local directory provider when one is configured and
// the HTTP provider otherwise.
func NewProvider(cfg config.FeatureStoreConfig, logger *slog.Logger) featurestore.Provider {
	if cfg.LocalDir != "" {
		logger.Info("reading feature store from local directory", slog.String("dir", cfg.LocalDir))
		return featurestore.NewDirProvider(cfg.LocalDir)
	}
	return featurestore.NewHTTPProvider(featurestore.HTTPConfig{
		GameURLTemplate:   cfg.GameURL,
		PlayerURLTemplate: cfg.PlayerURL,
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Burst:             cfg.Burst,
		UserAgent:         cfg.UserAgent,
		CacheDir:          cfg.RawCacheDir,
	}, logger)
}

func (a *Application) initializeServices() error {
	a.Provider = NewProvider(a.Config.FeatureStore, a.Logger)

	featureService, err := services.NewFeatureService(a.Provider, services.FeatureServiceConfig{
		Pipeline:     a.Config.Pipeline,
		Metrics:      a.Metrics,
		BuildTimeout: a.Config.Server.OperationTimeout,
	}, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize feature service: %w", err)
	}
	a.FeatureService = featureService

	buildID := BuildID
	if buildID == "" {
		buildID = generateBuildID()
	}
	a.HealthService = services.NewHealthService(services.BuildInfo{
		Version:   config.AppVersion,
		BuildTime: BuildTime,
		BuildID:   buildID,
	}, a.Config.Paths, featureService, a.Logger)

	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		// Ordering: RequestID → RealIP → OTel → Logger → Recoverer → Timeout
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.ErrorHandler))
		r.Use(customMiddleware.SecurityHeaders)

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.corsConfig()))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}

		a.setupAPIRoutes(r)
	})

	r.Handle("/metrics", handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.ErrorHandler))

	a.Router = r
}

func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.ReadTimeout, a.Logger))

			healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger, a.ErrorHandler)
			r.Mount("/health", healthHandler.Routes())
			r.Get("/version", healthHandler.Version)
		})

		// Cold loads fetch every season, so feature routes get the longer
		// operation timeout.
		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.Timeout(a.Config.Server.OperationTimeout, a.Logger))
			r.Use(customMiddleware.Compress(5))

			featureHandler := handlers.NewFeatureHandler(a.FeatureService, a.Logger, a.ErrorHandler)
			r.Mount("/features", featureHandler.Routes())
		})
	})
}

func (a *Application) corsConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			customMiddleware.RequestIDHeader,
		},
		ExposedHeaders: []string{customMiddleware.RequestIDHeader},
		MaxAge:         300,
		Logger:         a.Logger,
	}
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Warm loads the default season window into the cache. Failures are logged;
// the next request retries.
func (a *Application) Warm(ctx context.Context) {
	start := time.Now()
	tables, err := a.FeatureService.LoadFeatureStore(ctx, nil)
	if err != nil {
		a.Logger.WarnContext(ctx, "cache warm-up failed", slog.String("error", err.Error()))
		return
	}
	a.Logger.InfoContext(ctx, "cache warmed",
		slog.Any("seasons", tables.Seasons),
		slog.Duration("duration", time.Since(start)))
}

// Run serves until ctx is canceled or the server fails, then shuts down.
func (a *Application) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "HTTP server listening",
			slog.String("address", a.Server.Addr),
			slog.String("level", a.Config.Logging.Level))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	if a.Config.Pipeline.WarmOnStart {
		g.Go(func() error {
			a.Warm(gctx)
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	if err := infrastructure.CloseLogFile(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}
	return nil
}
