package ports

import (
	"context"
	"time"
)

// WeatherData is the provider-neutral current-conditions payload
type WeatherData struct {
	Temperature   float64
	Humidity      int
	WindSpeed     float64
	Latitude      float64
	Longitude     float64
	City          string
	Country       string
	ConditionCode string
	Description   string
	Timestamp     time.Time
}

// WeatherProvider defines the contract for weather data providers.
// A city the provider does not know yields a NotFound AppError; every other
// failure yields an ExternalAPI AppError.
type WeatherProvider interface {
	GetCurrentWeather(ctx context.Context, city string) (*WeatherData, error)
	GetProviderName() string
}

// Lookup outcomes reported to LookupMetrics
const (
	OutcomeReady    = "ready"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// LookupMetrics records the result of each weather lookup
type LookupMetrics interface {
	ObserveLookup(outcome string, duration time.Duration)
}
