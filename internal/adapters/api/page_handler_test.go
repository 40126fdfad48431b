package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherwidget.app/internal/ports"
	"weatherwidget.app/pkg/errors"
)

func TestPageHandler_DefaultCityOnMount(t *testing.T) {
	ts := setupTestServer(t)
	ts.provider.EXPECT().GetCurrentWeather(mock.Anything, "Chennai").Return(chennaiData(), nil).Once()

	w := ts.get("/")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, `value="Chennai"`)
	assert.Contains(t, body, `<div class="temp">29°C</div>`)
	assert.Contains(t, body, `<div class="humidity-percent">79%</div>`)
	assert.Contains(t, body, `<div class="wind-percent">4.12 km/h</div>`)
	assert.NotContains(t, body, "Loading...")
}

func TestPageHandler_CityQuery(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		city     string
		err      error
		expected string
	}{
		{"not_found", "/?city=Atlantis", "Atlantis", errors.NewNotFoundError("city not found"), `<div class="city-not-found">City Not Found</div>`},
		{"failure", "/?city=London", "London", errors.NewExternalAPIError("boom", nil), `<div class="error-message">Something went wrong.</div>`},
		{"empty_city_is_submitted", "/?city=", "", errors.NewExternalAPIError("cod 400", nil), `<div class="error-message">Something went wrong.</div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t)
			ts.provider.EXPECT().GetCurrentWeather(mock.Anything, tt.city).Return(nil, tt.err).Once()

			w := ts.get(tt.path)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tt.expected)
			assert.NotContains(t, w.Body.String(), "weather-box")
		})
	}
}

func TestAssetHandler(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.get("/assets/icons/snow.svg")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "<svg")
	assert.NotEmpty(t, w.Header().Get("Cache-Control"))

	w = ts.get("/assets/icons/thunder.svg")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthHandler(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		ts := setupTestServer(t)

		w := ts.get("/health")

		assert.Equal(t, http.StatusOK, w.Code)
		var response struct {
			Status     string                        `json:"status"`
			Components map[string]ports.HealthStatus `json:"components"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, ports.StatusHealthy, response.Components["config"].Status)
	})

	t.Run("unhealthy", func(t *testing.T) {
		ts := setupTestServer(t, withHealth(stubHealthChecker{
			"weatherAPI": {Component: "weatherAPI", Status: ports.StatusUnhealthy, Error: "weather provider is not available"},
		}))

		w := ts.get("/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"unhealthy"`)
	})
}
