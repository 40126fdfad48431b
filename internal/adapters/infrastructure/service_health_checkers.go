package infrastructure

import (
	"context"

	"weatherwidget.app/internal/ports"
)

// WeatherAPIHealthChecker reports whether the upstream provider is wired and
// how it is configured. It never calls the upstream API.
type WeatherAPIHealthChecker struct {
	weatherProvider ports.WeatherProvider
	configProvider  ports.ConfigProvider
}

// NewWeatherAPIHealthChecker creates a new weather API health checker
func NewWeatherAPIHealthChecker(weatherProvider ports.WeatherProvider, configProvider ports.ConfigProvider) *WeatherAPIHealthChecker {
	return &WeatherAPIHealthChecker{weatherProvider: weatherProvider, configProvider: configProvider}
}

// Check verifies the weather provider is available
func (w *WeatherAPIHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	if w.weatherProvider == nil {
		return ports.HealthStatus{
			Component: "weatherAPI",
			Status:    ports.StatusUnhealthy,
			Error:     "weather provider is not available",
			Details:   map[string]interface{}{"connected": false},
		}
	}

	details := map[string]interface{}{
		"provider": w.weatherProvider.GetProviderName(),
	}
	if w.configProvider != nil {
		weatherConfig := w.configProvider.GetWeatherConfig()
		details["baseURL"] = weatherConfig.BaseURL
		details["units"] = weatherConfig.Units
		details["timeout"] = weatherConfig.RequestTimeout.String()
	}

	return ports.HealthStatus{
		Component: "weatherAPI",
		Status:    ports.StatusHealthy,
		Details:   details,
	}
}

// StatsSource exposes running counters for the health report
type StatsSource interface {
	GetStats() map[string]interface{}
}

// WidgetHealthChecker reports live widget counters
type WidgetHealthChecker struct {
	stats StatsSource
}

// NewWidgetHealthChecker creates a new widget health checker
func NewWidgetHealthChecker(stats StatsSource) *WidgetHealthChecker {
	return &WidgetHealthChecker{stats: stats}
}

// Check always reports healthy; the details carry the counters
func (w *WidgetHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "widget",
		Status:    ports.StatusHealthy,
	}
	if w.stats != nil {
		status.Details = w.stats.GetStats()
	}
	return status
}
