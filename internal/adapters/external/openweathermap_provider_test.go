package external

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"weatherwidget.app/internal/mocks"
	"weatherwidget.app/pkg/errors"
)

const chennaiBody = `{
	"coord": {"lon": 80.2785, "lat": 13.0878},
	"weather": [{"id": 803, "main": "Clouds", "description": "broken clouds", "icon": "04n"}],
	"main": {"temp": 29.8, "feels_like": 35.1, "humidity": 79},
	"wind": {"speed": 4.12, "deg": 230},
	"dt": 1791993600,
	"sys": {"country": "IN"},
	"name": "Chennai",
	"cod": 200
}`

// Helper function to set up logger mock with variadic argument expectations
func setupLoggerMock(t *testing.T) *mocks.Logger {
	mockLogger := mocks.NewLogger(t)

	args := []interface{}{}
	for i := 0; i < 6; i++ {
		mockLogger.EXPECT().Debug(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Info(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Warn(mock.Anything, args...).Maybe()
		mockLogger.EXPECT().Error(mock.Anything, args...).Maybe()
		args = append(args, mock.Anything)
	}

	return mockLogger
}

func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, err := w.Write([]byte(body))
		assert.NoError(t, err)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestProvider(t *testing.T, baseURL string) *OpenWeatherMapProviderAdapter {
	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:  "test-api-key",
		BaseURL: baseURL,
		Logger:  setupLoggerMock(t),
	})
	return provider.(*OpenWeatherMapProviderAdapter)
}

func TestOpenWeatherMapProvider_GetCurrentWeather_Success(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "Chennai", r.URL.Query().Get("q"))
		assert.Equal(t, "test-api-key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(chennaiBody))
		assert.NoError(t, err)
	}))
	defer mockServer.Close()

	provider := newTestProvider(t, mockServer.URL)

	weather, err := provider.GetCurrentWeather(context.Background(), "Chennai")

	require.NoError(t, err)
	assert.Equal(t, 29.8, weather.Temperature)
	assert.Equal(t, 79, weather.Humidity)
	assert.Equal(t, 4.12, weather.WindSpeed)
	assert.Equal(t, 13.0878, weather.Latitude)
	assert.Equal(t, 80.2785, weather.Longitude)
	assert.Equal(t, "Chennai", weather.City)
	assert.Equal(t, "IN", weather.Country)
	assert.Equal(t, "04n", weather.ConditionCode)
	assert.Equal(t, "broken clouds", weather.Description)
	assert.Equal(t, time.Unix(1791993600, 0).UTC(), weather.Timestamp)
}

func TestOpenWeatherMapProvider_GetCurrentWeather_SparsePayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty_sys", `{"weather":[{"icon":"01d"}],"main":{"temp":3.5,"humidity":40},"sys":{},"name":"X","cod":200}`},
		{"empty_name_and_country", `{"weather":[{"icon":"13n"}],"main":{"temp":-2.7,"humidity":90},"sys":{"country":""},"name":"","cod":200}`},
		{"no_sys_no_name", `{"weather":[{"icon":"50d"}],"main":{"temp":0,"humidity":0},"cod":200}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, http.StatusOK, tt.body)
			provider := newTestProvider(t, server.URL)

			weather, err := provider.GetCurrentWeather(context.Background(), "X")

			require.NoError(t, err)
			require.NotNil(t, weather)
			assert.Empty(t, weather.Country)
			assert.NotEmpty(t, weather.ConditionCode)
		})
	}
}

func TestOpenWeatherMapProvider_GetCurrentWeather_EscapesCity(t *testing.T) {
	var rawQuery string
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		assert.Equal(t, "São Paulo&units=imperial", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		_, _ = w.Write([]byte(chennaiBody))
	}))
	defer mockServer.Close()

	provider := newTestProvider(t, mockServer.URL)

	_, err := provider.GetCurrentWeather(context.Background(), "São Paulo&units=imperial")

	require.NoError(t, err)
	assert.NotContains(t, rawQuery, "&units=imperial")
}

func TestOpenWeatherMapProvider_GetCurrentWeather_EmptyCityIsSent(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, r.URL.Query().Has("q"))
		assert.Equal(t, "", r.URL.Query().Get("q"))
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"cod":"400","message":"Nothing to geocode"}`))
	}))
	defer mockServer.Close()

	provider := newTestProvider(t, mockServer.URL)

	weather, err := provider.GetCurrentWeather(context.Background(), "")

	assert.Nil(t, weather)
	assert.True(t, errors.IsExternalAPIError(err))
	assert.Contains(t, err.Error(), "Nothing to geocode")
}

func TestOpenWeatherMapProvider_GetCurrentWeather_NotFound(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"status_404_string_cod", http.StatusNotFound, `{"cod":"404","message":"city not found"}`},
		{"status_200_string_cod", http.StatusOK, `{"cod":"404","message":"city not found"}`},
		{"numeric_cod", http.StatusNotFound, `{"cod":404,"message":"city not found"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.status, tt.body)
			provider := newTestProvider(t, server.URL)

			weather, err := provider.GetCurrentWeather(context.Background(), "Atlantis")

			assert.Nil(t, weather)
			assert.True(t, errors.IsNotFoundError(err))
		})
	}
}

func TestOpenWeatherMapProvider_GetCurrentWeather_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"unauthorized", http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`},
		{"server_error_html", http.StatusInternalServerError, `<html>oops</html>`},
		{"non_json_ok", http.StatusOK, `not json`},
		{"empty_body", http.StatusOK, ``},
		{"missing_temperature", http.StatusOK, `{"cod":200,"name":"X","main":{"humidity":10},"weather":[{"icon":"01d"}],"sys":{"country":"GB"}}`},
		{"no_weather_entries", http.StatusOK, `{"cod":200,"name":"X","main":{"temp":1,"humidity":10},"weather":[],"sys":{"country":"GB"}}`},
		{"humidity_out_of_range", http.StatusOK, `{"cod":200,"name":"X","main":{"temp":1,"humidity":140},"weather":[{"icon":"01d"}],"sys":{"country":"GB"}}`},
		{"error_cod_with_ok_status", http.StatusOK, `{"cod":"429","message":"rate limited"}`},
		{"cod_wrong_type", http.StatusOK, `{"cod":{"x":1}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.status, tt.body)
			provider := newTestProvider(t, server.URL)

			weather, err := provider.GetCurrentWeather(context.Background(), "London")

			assert.Nil(t, weather)
			assert.True(t, errors.IsExternalAPIError(err), "got %v", err)
			assert.False(t, errors.IsNotFoundError(err))
		})
	}
}

func TestOpenWeatherMapProvider_GetCurrentWeather_NetworkError(t *testing.T) {
	server := newTestServer(t, http.StatusOK, chennaiBody)
	baseURL := server.URL
	server.Close()

	provider := newTestProvider(t, baseURL)

	weather, err := provider.GetCurrentWeather(context.Background(), "London")

	assert.Nil(t, weather)
	assert.True(t, errors.IsExternalAPIError(err))
}

func TestOpenWeatherMapProvider_GetCurrentWeather_ContextCanceled(t *testing.T) {
	server := newTestServer(t, http.StatusOK, chennaiBody)
	provider := newTestProvider(t, server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	weather, err := provider.GetCurrentWeather(ctx, "London")

	assert.Nil(t, weather)
	assert.True(t, errors.IsExternalAPIError(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenWeatherMapProvider_GetCurrentWeather_Timeout(t *testing.T) {
	release := make(chan struct{})
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer mockServer.Close()
	defer close(release)

	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey:  "test-api-key",
		BaseURL: mockServer.URL,
		Timeout: 50 * time.Millisecond,
		Logger:  setupLoggerMock(t),
	})

	weather, err := provider.GetCurrentWeather(context.Background(), "London")

	assert.Nil(t, weather)
	assert.True(t, errors.IsExternalAPIError(err))
}

type failingClient struct{ err error }

func (c failingClient) Do(*http.Request) (*http.Response, error) { return nil, c.err }

func TestOpenWeatherMapProvider_CustomClient(t *testing.T) {
	cause := stderrors.New("tls handshake timeout")
	provider := NewOpenWeatherMapProviderAdapter(OpenWeatherMapProviderParams{
		APIKey: "k",
		Logger: setupLoggerMock(t),
		Client: failingClient{err: cause},
	})

	_, err := provider.GetCurrentWeather(context.Background(), "London")

	assert.True(t, errors.IsExternalAPIError(err))
	assert.ErrorIs(t, err, cause)
}

func TestOpenWeatherMapProvider_Defaults(t *testing.T) {
	provider := newTestProvider(t, "")

	assert.Equal(t, defaultOpenWeatherMapBaseURL, provider.baseURL)
	assert.Equal(t, "metric", provider.units)
	assert.Equal(t, "openweathermap", provider.GetProviderName())
	assert.Equal(t,
		"https://api.openweathermap.org/data/2.5/weather?appid=test-api-key&q=London&units=metric",
		provider.requestURL("London"))
}

func TestResponseCode_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		input    string
		expected responseCode
	}{
		{`"404"`, "404"},
		{`404`, "404"},
		{`200`, "200"},
		{`""`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var code responseCode
			require.NoError(t, code.UnmarshalJSON([]byte(tt.input)))
			assert.Equal(t, tt.expected, code)
		})
	}
}
