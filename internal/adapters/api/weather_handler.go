package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"weatherwidget.app/internal/adapters/render"
	"weatherwidget.app/internal/core/weather"
	"weatherwidget.app/internal/core/widget"
	"weatherwidget.app/internal/ports"
	"weatherwidget.app/pkg/errors"
)

// WeatherResponse represents the HTTP response for weather data
type WeatherResponse struct {
	Temperature int       `json:"temperature"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"windSpeed"`
	Icon        string    `json:"icon"`
	IconURL     string    `json:"iconUrl"`
	Condition   string    `json:"condition"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

func newWeatherResponse(r weather.Record) WeatherResponse {
	return WeatherResponse{
		Temperature: r.Temperature,
		City:        r.City,
		Country:     r.Country,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Humidity:    r.Humidity,
		WindSpeed:   r.WindSpeed,
		Icon:        string(r.Icon),
		IconURL:     render.IconURL(r.Icon),
		Condition:   r.Condition,
		FetchedAt:   r.FetchedAt,
	}
}

// getWeather handles GET /api/weather requests
func (s *HTTPServerAdapter) getWeather(c *gin.Context) {
	city := c.Query("city")
	if city == "" {
		s.handleError(c, errors.NewValidationError("city parameter is required"))
		return
	}

	s.logger.Debug("Getting weather for city", ports.F("city", city))

	record, err := s.weatherUseCase.Lookup(c.Request.Context(), weather.LookupRequest{City: city})
	if errors.IsNotFoundError(err) {
		s.handleError(c, errors.NewNotFoundError(widget.NotFoundMessage))
		return
	}
	if err != nil {
		s.logger.Error("Weather use case error", ports.F("error", err), ports.F("city", city))
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newWeatherResponse(*record))
}
