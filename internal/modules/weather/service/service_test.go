package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feeddeck/internal/modules/weather/domain"
)

const forecastBody = `{
  "daily": {
    "time": ["2024-05-01", "2024-05-02"],
    "weather_code": [3, 61],
    "temperature_2m_max": [22.5, 19.1],
    "temperature_2m_min": [14.2, 13.0],
    "precipitation_probability_max": [10, 80]
  }
}`

const forecastBodyNoPrecip = `{
  "daily": {
    "time": ["2024-05-01", "2024-05-02"],
    "weather_code": [0, 1],
    "temperature_2m_max": [25.0, 26.3],
    "temperature_2m_min": [16.0, 17.2]
  }
}`

func TestFetchForecasts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "forecast_days=2")
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	svc := New(srv.Client(), srv.URL)

	forecasts := svc.FetchForecasts(context.Background(), []domain.City{
		{Name: "Tokyo", Latitude: 35.6762, Longitude: 139.6503},
	})

	require.Len(t, forecasts, 1)
	assert.Equal(t, "Tokyo", forecasts[0].CityName)
	require.Len(t, forecasts[0].Daily, 2)

	first := forecasts[0].Daily[0]
	assert.Equal(t, "2024-05-01", first.Date)
	assert.Equal(t, 3, first.WeatherCode)
	assert.Equal(t, 22.5, first.TempMax)
	assert.Equal(t, 14.2, first.TempMin)
	assert.Equal(t, 10, first.PrecipProbability)
}

func TestFetchForecastsPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The Osaka coordinates fail, the rest succeed
		if strings.Contains(r.URL.RawQuery, "latitude=34.") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(forecastBody))
	}))
	defer srv.Close()

	svc := New(srv.Client(), srv.URL)

	forecasts := svc.FetchForecasts(context.Background(), []domain.City{
		{Name: "Tokyo", Latitude: 35.6762, Longitude: 139.6503},
		{Name: "Osaka", Latitude: 34.6937, Longitude: 135.5023},
		{Name: "Fukuoka", Latitude: 33.5904, Longitude: 130.4017},
	})

	require.Len(t, forecasts, 2, "failed city is omitted, not fatal")
	assert.Equal(t, "Tokyo", forecasts[0].CityName)
	assert.Equal(t, "Fukuoka", forecasts[1].CityName, "city order preserved")
}

func TestFetchForecastsAllFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	svc := New(srv.Client(), srv.URL)

	forecasts := svc.FetchForecasts(context.Background(), []domain.City{
		{Name: "Tokyo"},
	})
	assert.Empty(t, forecasts)
}

func TestFetchForecastsMissingPrecipitationDefaultsToZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(forecastBodyNoPrecip))
	}))
	defer srv.Close()

	svc := New(srv.Client(), srv.URL)

	forecasts := svc.FetchForecasts(context.Background(), []domain.City{{Name: "Tokyo"}})
	require.Len(t, forecasts, 1)
	for _, day := range forecasts[0].Daily {
		assert.Equal(t, 0, day.PrecipProbability)
	}
}
