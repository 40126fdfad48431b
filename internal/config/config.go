package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"weatherwidget.app/pkg/errors"
	"weatherwidget.app/pkg/validation"
)

const (
	maxPortNumber         = 65535
	maxRequestTimeoutSecs = 120
	metricUnits           = "metric"
)

// Config represents the application configuration structure
type Config struct {
	Server     ServerConfig  `split_words:"true"`
	Weather    WeatherConfig `split_words:"true"`
	Widget     WidgetConfig  `split_words:"true"`
	Log        LogConfig     `split_words:"true"`
	AppBaseURL string        `envconfig:"APP_URL" default:"http://localhost:8080"`
}

type ServerConfig struct {
	Port           int      `envconfig:"SERVER_PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
}

type WeatherConfig struct {
	APIKey                string `envconfig:"OPENWEATHERMAP_API_KEY" required:"true"`
	BaseURL               string `envconfig:"OPENWEATHERMAP_API_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	Units                 string `envconfig:"WEATHER_UNITS" default:"metric"`
	RequestTimeoutSeconds int    `envconfig:"WEATHER_REQUEST_TIMEOUT_SECONDS" default:"10"`
	EnableLogging         bool   `envconfig:"WEATHER_ENABLE_LOGGING" default:"true"`
	LogFilePath           string `envconfig:"WEATHER_LOG_FILE_PATH" default:""`
}

// RequestTimeout returns the upstream HTTP client timeout
func (w WeatherConfig) RequestTimeout() time.Duration {
	return time.Duration(w.RequestTimeoutSeconds) * time.Second
}

type WidgetConfig struct {
	DefaultCity string `envconfig:"WIDGET_DEFAULT_CITY" default:"Chennai"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Widget.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.validateAppBaseURL(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAppBaseURL() error {
	if c.AppBaseURL == "" {
		return errors.NewConfigurationError("APP_URL cannot be empty", nil)
	}
	if !validation.IsHTTPURL(c.AppBaseURL) {
		return errors.NewConfigurationError("APP_URL must start with http:// or https://", nil)
	}
	return nil
}

func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > maxPortNumber {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	if len(s.AllowedOrigins) == 0 {
		return errors.NewConfigurationError("CORS_ALLOWED_ORIGINS must list at least one origin", nil)
	}
	return nil
}

func (w *WeatherConfig) Validate() error {
	if !validation.IsNotEmpty(w.APIKey) {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_KEY cannot be empty", nil)
	}
	if w.BaseURL == "" {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_BASE_URL cannot be empty", nil)
	}
	if !validation.IsHTTPURL(w.BaseURL) {
		return errors.NewConfigurationError("OPENWEATHERMAP_API_BASE_URL must start with http:// or https://", nil)
	}
	// Temperatures are rendered as °C and wind as km/h, so only the metric system is meaningful.
	if w.Units != metricUnits {
		return errors.NewConfigurationError(fmt.Sprintf("WEATHER_UNITS must be %q", metricUnits), nil)
	}
	if w.RequestTimeoutSeconds < 1 || w.RequestTimeoutSeconds > maxRequestTimeoutSecs {
		return errors.NewConfigurationError("WEATHER_REQUEST_TIMEOUT_SECONDS must be between 1 and 120", nil)
	}
	return nil
}

func (w *WidgetConfig) Validate() error {
	if !validation.IsNotEmpty(w.DefaultCity) {
		return errors.NewConfigurationError("WIDGET_DEFAULT_CITY cannot be empty", nil)
	}
	return nil
}

func (l *LogConfig) Validate() error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, strings.ToLower(l.Level)) {
		return errors.NewConfigurationError(
			fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLevels, ", ")), nil)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, strings.ToLower(l.Format)) {
		return errors.NewConfigurationError(
			fmt.Sprintf("LOG_FORMAT must be one of: %s", strings.Join(validFormats, ", ")), nil)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
