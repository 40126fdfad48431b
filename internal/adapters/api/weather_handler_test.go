package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherwidget.app/pkg/errors"
)

func TestWeatherHandler_GetWeather_Success(t *testing.T) {
	ts := setupTestServer(t)
	ts.provider.EXPECT().GetCurrentWeather(mock.Anything, "Chennai").Return(chennaiData(), nil)

	w := ts.get("/api/weather?city=Chennai")

	assert.Equal(t, http.StatusOK, w.Code)

	var response WeatherResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 29, response.Temperature)
	assert.Equal(t, "Chennai", response.City)
	assert.Equal(t, "IN", response.Country)
	assert.Equal(t, 13.0878, response.Latitude)
	assert.Equal(t, 80.2785, response.Longitude)
	assert.Equal(t, 79, response.Humidity)
	assert.Equal(t, 4.12, response.WindSpeed)
	assert.Equal(t, "drizzle", response.Icon)
	assert.Equal(t, "/assets/icons/drizzle.svg", response.IconURL)
	assert.Equal(t, "04n", response.Condition)
	assert.False(t, response.FetchedAt.IsZero())
}

func TestWeatherHandler_GetWeather_MissingCity(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.get("/api/weather")

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "city parameter is required", response.Error)
}

func TestWeatherHandler_GetWeather_NotFound(t *testing.T) {
	ts := setupTestServer(t)
	ts.provider.EXPECT().GetCurrentWeather(mock.Anything, "Atlantis").
		Return(nil, errors.NewNotFoundError("city not found"))

	w := ts.get("/api/weather?city=Atlantis")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "City Not Found", response.Error)
}

func TestWeatherHandler_GetWeather_UpstreamFailure(t *testing.T) {
	ts := setupTestServer(t)
	ts.provider.EXPECT().GetCurrentWeather(mock.Anything, "London").
		Return(nil, errors.NewExternalAPIError("failed to call OpenWeatherMap", stderrors.New("dial tcp 10.0.0.1:443: i/o timeout")))

	w := ts.get("/api/weather?city=London")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Something went wrong.", response.Error)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
}
