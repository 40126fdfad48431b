package infrastructure

import (
	"context"

	"weatherwidget.app/internal/ports"
)

// SystemHealthChecker aggregates all health checks
type SystemHealthChecker struct {
	weatherAPIChecker ports.HealthChecker
	widgetChecker     ports.HealthChecker
	configProvider    ports.ConfigProvider
}

// SystemHealthCheckerConfig holds the configuration for creating a system health checker
type SystemHealthCheckerConfig struct {
	WeatherAPIChecker ports.HealthChecker
	WidgetChecker     ports.HealthChecker
	ConfigProvider    ports.ConfigProvider
}

// NewSystemHealthChecker creates a new system health checker
func NewSystemHealthChecker(config SystemHealthCheckerConfig) *SystemHealthChecker {
	return &SystemHealthChecker{
		weatherAPIChecker: config.WeatherAPIChecker,
		widgetChecker:     config.WidgetChecker,
		configProvider:    config.ConfigProvider,
	}
}

// CheckAll performs health checks on all components
func (s *SystemHealthChecker) CheckAll(ctx context.Context) map[string]ports.HealthStatus {
	results := make(map[string]ports.HealthStatus)

	if s.weatherAPIChecker != nil {
		results["weatherAPI"] = s.weatherAPIChecker.Check(ctx)
	}

	if s.widgetChecker != nil {
		results["widget"] = s.widgetChecker.Check(ctx)
	}

	if s.configProvider != nil {
		appConfig := s.configProvider.GetAppConfig()
		widgetConfig := s.configProvider.GetWidgetConfig()
		results["config"] = ports.HealthStatus{
			Component: "config",
			Status:    ports.StatusHealthy,
			Details: map[string]interface{}{
				"appBaseURL":  appConfig.BaseURL,
				"defaultCity": widgetConfig.DefaultCity,
			},
		}
	}

	return results
}
