package infrastructure

import (
	"weatherwidget.app/internal/config"
	"weatherwidget.app/internal/ports"
)

// ConfigProviderAdapter implements the ConfigProvider port
type ConfigProviderAdapter struct {
	config *config.Config
}

// NewConfigProviderAdapter creates a new config provider adapter
func NewConfigProviderAdapter(cfg *config.Config) *ConfigProviderAdapter {
	return &ConfigProviderAdapter{
		config: cfg,
	}
}

// GetAppConfig returns application configuration
func (c *ConfigProviderAdapter) GetAppConfig() ports.AppConfig {
	return ports.AppConfig{
		BaseURL: c.config.AppBaseURL,
	}
}

// GetWeatherConfig returns upstream weather API configuration. The API key
// is not part of it.
func (c *ConfigProviderAdapter) GetWeatherConfig() ports.WeatherConfig {
	return ports.WeatherConfig{
		BaseURL:        c.config.Weather.BaseURL,
		Units:          c.config.Weather.Units,
		RequestTimeout: c.config.Weather.RequestTimeout(),
	}
}

// GetWidgetConfig returns widget defaults
func (c *ConfigProviderAdapter) GetWidgetConfig() ports.WidgetConfig {
	return ports.WidgetConfig{
		DefaultCity: c.config.Widget.DefaultCity,
	}
}
