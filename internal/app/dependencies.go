package app

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"weatherwidget.app/internal/adapters/external"
	"weatherwidget.app/internal/adapters/infrastructure"
	"weatherwidget.app/internal/config"
	"weatherwidget.app/internal/ports"
)

type DependencyContainer struct {
	config     *config.Config
	fileLogger *infrastructure.FileLoggerAdapter
	metrics    *infrastructure.MetricsCollector
	ports      *ports.ApplicationPorts
}

// DependencyOptions overrides the process-wide defaults, mostly for tests
type DependencyOptions struct {
	// Registerer receives the widget metrics; prometheus.DefaultRegisterer when nil
	Registerer prometheus.Registerer
	// Logger is the base slog logger; slog.Default when nil
	Logger *slog.Logger
	// WeatherProvider replaces the OpenWeatherMap adapter
	WeatherProvider ports.WeatherProvider
}

func NewDependencyContainer(cfg *config.Config, opts DependencyOptions) (*DependencyContainer, error) {
	container := &DependencyContainer{config: cfg}

	if err := container.initializePorts(opts); err != nil {
		_ = container.Cleanup()
		return nil, fmt.Errorf("initialize ports: %w", err)
	}

	return container, nil
}

func (c *DependencyContainer) initializePorts(opts DependencyOptions) error {
	slog.Info("Initializing ports...")

	var logger ports.Logger = infrastructure.NewSlogLoggerAdapter(opts.Logger)

	// Upstream calls are additionally recorded to a file when a path is configured
	providerLogger := logger
	if c.config.Weather.EnableLogging && c.config.Weather.LogFilePath != "" {
		fileLogger, err := infrastructure.NewFileLoggerAdapter(c.config.Weather.LogFilePath)
		if err != nil {
			slog.Warn("Failed to create file logger, falling back to slog", "error", err)
		} else {
			c.fileLogger = fileLogger
			providerLogger = infrastructure.TeeLogger{logger, fileLogger}
			slog.Info("File logging enabled", "path", c.config.Weather.LogFilePath)
		}
	}

	provider := opts.WeatherProvider
	if provider == nil {
		provider = external.NewOpenWeatherMapProviderAdapter(external.OpenWeatherMapProviderParams{
			APIKey:  c.config.Weather.APIKey,
			BaseURL: c.config.Weather.BaseURL,
			Units:   c.config.Weather.Units,
			Timeout: c.config.Weather.RequestTimeout(),
			Logger:  logger,
		})
	}

	if c.config.Weather.EnableLogging {
		provider = external.NewWeatherProviderLoggingDecorator(provider, providerLogger)
		slog.Info("Weather provider logging enabled")
	}

	registerer := opts.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	c.metrics = infrastructure.NewMetricsCollector(registerer)

	c.ports = &ports.ApplicationPorts{
		WeatherProvider: provider,
		LookupMetrics:   c.metrics,
		SessionMetrics:  c.metrics,
		ConfigProvider:  infrastructure.NewConfigProviderAdapter(c.config),
		Logger:          logger,
	}

	slog.Info("Ports initialized successfully", "provider", provider.GetProviderName())
	return nil
}

func (c *DependencyContainer) ApplicationPorts() *ports.ApplicationPorts {
	return c.ports
}

// Metrics returns the collector behind both metrics ports
func (c *DependencyContainer) Metrics() *infrastructure.MetricsCollector {
	return c.metrics
}

// Cleanup releases resources opened by the container
func (c *DependencyContainer) Cleanup() error {
	if c.fileLogger != nil {
		return c.fileLogger.Close()
	}
	return nil
}
