package weather

import (
	"context"
	"fmt"
	"time"

	"weatherwidget.app/internal/ports"
	"weatherwidget.app/pkg/errors"
)

type UseCase struct {
	weatherProvider ports.WeatherProvider
	logger          ports.Logger
	metrics         ports.LookupMetrics
}

type UseCaseDependencies struct {
	WeatherProvider ports.WeatherProvider
	Logger          ports.Logger
	Metrics         ports.LookupMetrics
}

func NewUseCase(deps UseCaseDependencies) (*UseCase, error) {
	if deps.WeatherProvider == nil {
		return nil, errors.NewValidationError("weather provider is required")
	}
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("metrics is required")
	}

	return &UseCase{
		weatherProvider: deps.WeatherProvider,
		logger:          deps.Logger,
		metrics:         deps.Metrics,
	}, nil
}

// Lookup fetches current weather for request.City and maps it to a Record.
// The returned error is a NotFound AppError when the city is unknown and an
// ExternalAPI AppError for every other failure.
func (uc *UseCase) Lookup(ctx context.Context, request LookupRequest) (*Record, error) {
	uc.logger.Debug("Looking up weather", ports.F("city", request.City))

	start := time.Now()
	data, err := uc.weatherProvider.GetCurrentWeather(ctx, request.City)
	duration := time.Since(start)

	if err != nil {
		if errors.IsNotFoundError(err) {
			uc.metrics.ObserveLookup(ports.OutcomeNotFound, duration)
			uc.logger.Info("City not found", ports.F("city", request.City))
			return nil, err
		}

		uc.metrics.ObserveLookup(ports.OutcomeError, duration)
		if !errors.IsExternalAPIError(err) {
			err = errors.NewExternalAPIError("weather provider failed", err)
		}
		return nil, fmt.Errorf("lookup weather for city %q: %w", request.City, err)
	}

	if data == nil {
		uc.metrics.ObserveLookup(ports.OutcomeError, duration)
		return nil, errors.NewExternalAPIError("weather provider returned no data", nil)
	}

	uc.metrics.ObserveLookup(ports.OutcomeReady, duration)
	record := toRecord(data)

	uc.logger.Debug("Weather retrieved successfully",
		ports.F("city", record.City),
		ports.F("temperature", record.Temperature),
		ports.F("icon", string(record.Icon)))
	return record, nil
}

func toRecord(data *ports.WeatherData) *Record {
	fetchedAt := data.Timestamp
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	return &Record{
		Temperature: TruncateTemperature(data.Temperature),
		City:        data.City,
		Country:     data.Country,
		Latitude:    data.Latitude,
		Longitude:   data.Longitude,
		Humidity:    data.Humidity,
		WindSpeed:   data.WindSpeed,
		Icon:        IconFor(data.ConditionCode),
		Condition:   data.ConditionCode,
		FetchedAt:   fetchedAt,
	}
}
