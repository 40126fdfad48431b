package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"weatherwidget.app/internal/adapters/api"
	"weatherwidget.app/internal/adapters/infrastructure"
	"weatherwidget.app/internal/adapters/render"
	"weatherwidget.app/internal/config"
	"weatherwidget.app/internal/core/weather"
	"weatherwidget.app/internal/ports"
	"weatherwidget.app/pkg/logger"
)

type Application struct {
	config *config.Config

	// Use Cases
	weatherUseCase *weather.UseCase

	// Adapters
	httpServer  *http.Server
	httpAdapter *api.HTTPServerAdapter
	router      *gin.Engine

	// Infrastructure
	deps  *DependencyContainer
	ports *ports.ApplicationPorts
}

func NewApplication() (*Application, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	logger.NewWithOptions(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}).Install()

	deps, err := NewDependencyContainer(cfg, DependencyOptions{})
	if err != nil {
		return nil, fmt.Errorf("create dependency container: %w", err)
	}

	return NewApplicationWithDependencies(cfg, deps, prometheus.DefaultGatherer)
}

// NewApplicationWithDependencies creates an application with provided dependencies (for testing)
func NewApplicationWithDependencies(cfg *config.Config, deps *DependencyContainer, gatherer prometheus.Gatherer) (*Application, error) {
	app := &Application{
		config: cfg,
		deps:   deps,
		ports:  deps.ApplicationPorts(),
	}

	if err := app.initializeUseCases(); err != nil {
		return nil, fmt.Errorf("initialize use cases: %w", err)
	}

	if err := app.initializeAdapters(gatherer); err != nil {
		return nil, fmt.Errorf("initialize adapters: %w", err)
	}

	return app, nil
}

func (a *Application) initializeUseCases() error {
	slog.Info("Initializing use cases...")

	weatherUseCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherProvider: a.ports.WeatherProvider,
		Logger:          a.ports.Logger,
		Metrics:         a.ports.LookupMetrics,
	})
	if err != nil {
		return fmt.Errorf("create weather use case: %w", err)
	}
	a.weatherUseCase = weatherUseCase

	slog.Info("Use cases initialized successfully")
	return nil
}

func (a *Application) initializeAdapters(gatherer prometheus.Gatherer) error {
	slog.Info("Initializing adapters...")

	renderer, err := render.NewRenderer()
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	// Create system health checker
	systemHealthChecker := infrastructure.NewSystemHealthChecker(infrastructure.SystemHealthCheckerConfig{
		WeatherAPIChecker: infrastructure.NewWeatherAPIHealthChecker(a.ports.WeatherProvider, a.ports.ConfigProvider),
		WidgetChecker:     infrastructure.NewWidgetHealthChecker(a.deps.Metrics()),
		ConfigProvider:    a.ports.ConfigProvider,
	})

	httpAdapter, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{
			Port:           a.config.Server.Port,
			AllowedOrigins: a.config.Server.AllowedOrigins,
			DefaultCity:    a.config.Widget.DefaultCity,
		},
		WeatherUseCase: a.weatherUseCase,
		Renderer:       renderer,
		HealthChecker:  systemHealthChecker,
		SessionMetrics: a.ports.SessionMetrics,
		Gatherer:       gatherer,
		Logger:         a.ports.Logger,
	})
	if err != nil {
		return fmt.Errorf("create HTTP adapter: %w", err)
	}

	a.httpAdapter = httpAdapter
	a.router = httpAdapter.GetRouter()

	a.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.config.Server.Port),
		Handler:      httpAdapter.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	slog.Info("Adapters initialized successfully")
	return nil
}

func (a *Application) Start(ctx context.Context) error {
	slog.Info("Starting HTTP server", "port", a.config.Server.Port)
	if err := a.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

func (a *Application) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down application...")

	var shutdownErr error
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.Error("Error shutting down HTTP server", "error", err)
		shutdownErr = fmt.Errorf("shutdown HTTP server: %w", err)
	}

	// WebSocket connections are hijacked and not covered by http.Server.Shutdown
	if err := a.httpAdapter.Shutdown(ctx); err != nil {
		slog.Error("Error closing widget sessions", "error", err)
		if shutdownErr == nil {
			shutdownErr = fmt.Errorf("close widget sessions: %w", err)
		}
	}

	if err := a.deps.Cleanup(); err != nil {
		slog.Warn("Error releasing resources", "error", err)
	}

	slog.Info("Application shutdown complete")
	return shutdownErr
}

// Config returns the application configuration
func (a *Application) Config() *config.Config {
	return a.config
}

// Handler returns the HTTP handler served by the application
func (a *Application) Handler() http.Handler {
	return a.httpAdapter.Handler()
}

// GetRouter returns the Gin router for testing
func (a *Application) GetRouter() *gin.Engine {
	return a.router
}

// GetWeatherUseCase returns the weather use case for testing
func (a *Application) GetWeatherUseCase() *weather.UseCase {
	return a.weatherUseCase
}
