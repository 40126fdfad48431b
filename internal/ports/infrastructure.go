package ports

import "time"

// WeatherConfig represents upstream weather API configuration
type WeatherConfig struct {
	BaseURL        string
	Units          string
	RequestTimeout time.Duration
}

// AppConfig represents application configuration
type AppConfig struct {
	BaseURL string
}

// WidgetConfig represents widget defaults
type WidgetConfig struct {
	DefaultCity string
}

// ConfigProvider defines the contract for configuration management
type ConfigProvider interface {
	GetWeatherConfig() WeatherConfig
	GetAppConfig() AppConfig
	GetWidgetConfig() WidgetConfig
}

// Logger defines the contract for structured logging
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
}

// Field represents a log field
type Field struct {
	Key   string
	Value interface{}
}

// F creates a log field
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// SessionMetrics tracks live widget sessions
type SessionMetrics interface {
	SessionOpened()
	SessionClosed()
	SubmitDiscarded()
}
