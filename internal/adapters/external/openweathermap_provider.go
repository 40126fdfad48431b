// Package external provides adapters for external services
// These adapters implement ports for the OpenWeatherMap current-weather API.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weatherwidget.app/internal/ports"
	"weatherwidget.app/pkg/errors"
	"weatherwidget.app/pkg/validation"
)

const (
	defaultOpenWeatherMapBaseURL = "https://api.openweathermap.org/data/2.5"
	defaultRequestTimeout        = 10 * time.Second

	// notFoundCode is what OpenWeatherMap puts in "cod" for an unknown city
	notFoundCode = "404"
)

// HTTPClient interface for HTTP requests (for testing)
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// OpenWeatherMapProviderAdapter implements WeatherProvider port for OpenWeatherMap
type OpenWeatherMapProviderAdapter struct {
	apiKey  string
	baseURL string
	units   string
	client  HTTPClient
	logger  ports.Logger
}

// OpenWeatherMapProviderParams holds parameters for creating OpenWeatherMap provider
type OpenWeatherMapProviderParams struct {
	APIKey  string
	BaseURL string
	Units   string
	Timeout time.Duration
	Logger  ports.Logger
	// Client overrides the default http.Client built from Timeout
	Client HTTPClient
}

// responseCode is the "cod" field, which the API sends as a number on success
// and as a string on errors.
type responseCode string

func (c *responseCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*c = responseCode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cod is neither string nor number: %w", err)
	}
	*c = responseCode(n.String())
	return nil
}

// OpenWeatherMapResponse represents the response from OpenWeatherMap API
type OpenWeatherMapResponse struct {
	Cod     responseCode `json:"cod"`
	Message string       `json:"message"`
	Name    string       `json:"name"`
	Dt      int64        `json:"dt"`
	Coord   struct {
		Lat float64 `json:"lat" validate:"min=-90,max=90"`
		Lon float64 `json:"lon" validate:"min=-180,max=180"`
	} `json:"coord"`
	Main struct {
		Temp     *float64 `json:"temp" validate:"required"`
		Humidity int      `json:"humidity" validate:"min=0,max=100"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed" validate:"min=0"`
	} `json:"wind"`
	Weather []struct {
		Icon        string `json:"icon"`
		Description string `json:"description"`
	} `json:"weather" validate:"required,min=1"`
	Sys struct {
		Country string `json:"country"`
	} `json:"sys"`
}

// NewOpenWeatherMapProviderAdapter creates a new OpenWeatherMap provider adapter
func NewOpenWeatherMapProviderAdapter(params OpenWeatherMapProviderParams) ports.WeatherProvider {
	baseURL := strings.TrimRight(params.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultOpenWeatherMapBaseURL
	}

	units := params.Units
	if units == "" {
		units = "metric"
	}

	client := params.Client
	if client == nil {
		timeout := params.Timeout
		if timeout <= 0 {
			timeout = defaultRequestTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &OpenWeatherMapProviderAdapter{
		apiKey:  params.APIKey,
		baseURL: baseURL,
		units:   units,
		client:  client,
		logger:  params.Logger,
	}
}

// GetCurrentWeather retrieves weather data from OpenWeatherMap.
// The city is sent as typed, including the empty string.
func (p *OpenWeatherMapProviderAdapter) GetCurrentWeather(ctx context.Context, city string) (*ports.WeatherData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.requestURL(city), nil)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to build OpenWeatherMap request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, errors.NewExternalAPIError("failed to call OpenWeatherMap", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			p.logger.Warn("Failed to close OpenWeatherMap response body", ports.F("error", closeErr))
		}
	}()

	var apiResp OpenWeatherMapResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("failed to decode OpenWeatherMap response (status %d)", resp.StatusCode), err)
	}

	if apiResp.Cod == notFoundCode {
		return nil, errors.NewNotFoundError("city not found")
	}

	if resp.StatusCode != http.StatusOK || (apiResp.Cod != "" && apiResp.Cod != "200") {
		return nil, errors.NewExternalAPIError(
			fmt.Sprintf("OpenWeatherMap returned status %d cod %q: %s", resp.StatusCode, apiResp.Cod, apiResp.Message), nil)
	}

	if err := validation.Struct(apiResp); err != nil {
		return nil, errors.NewExternalAPIError("malformed OpenWeatherMap response", err)
	}

	return toWeatherData(&apiResp), nil
}

// GetProviderName returns the name of this weather provider
func (p *OpenWeatherMapProviderAdapter) GetProviderName() string {
	return "openweathermap"
}

func (p *OpenWeatherMapProviderAdapter) requestURL(city string) string {
	query := url.Values{}
	query.Set("q", city)
	query.Set("appid", p.apiKey)
	query.Set("units", p.units)
	return p.baseURL + "/weather?" + query.Encode()
}

func toWeatherData(apiResp *OpenWeatherMapResponse) *ports.WeatherData {
	condition := apiResp.Weather[0]

	timestamp := time.Now().UTC()
	if apiResp.Dt > 0 {
		timestamp = time.Unix(apiResp.Dt, 0).UTC()
	}

	return &ports.WeatherData{
		Temperature:   *apiResp.Main.Temp,
		Humidity:      apiResp.Main.Humidity,
		WindSpeed:     apiResp.Wind.Speed,
		Latitude:      apiResp.Coord.Lat,
		Longitude:     apiResp.Coord.Lon,
		City:          apiResp.Name,
		Country:       apiResp.Sys.Country,
		ConditionCode: condition.Icon,
		Description:   condition.Description,
		Timestamp:     timestamp,
	}
}
