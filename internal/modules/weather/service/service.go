package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/oops"

	"feeddeck/internal/modules/weather/domain"
)

// forecastDays is the requested forecast window per city.
const forecastDays = 2

// Service fetches per-city forecasts from an open-meteo style endpoint.
type Service struct {
	client  *http.Client
	baseURL string
}

// New creates a new weather service
func New(client *http.Client, baseURL string) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{client: client, baseURL: baseURL}
}

// forecastResponse mirrors the upstream JSON: parallel arrays indexed by
// forecast day.
type forecastResponse struct {
	Daily struct {
		Time              []string  `json:"time"`
		WeatherCode       []int     `json:"weather_code"`
		TemperatureMax    []float64 `json:"temperature_2m_max"`
		TemperatureMin    []float64 `json:"temperature_2m_min"`
		PrecipProbability []int     `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// FetchForecasts retrieves forecasts for every city concurrently. A
// failed city is omitted from the result, never aborts the batch; city
// order is otherwise preserved.
func (s *Service) FetchForecasts(ctx context.Context, cities []domain.City) []domain.CityForecast {
	results := make([]*domain.CityForecast, len(cities))

	var wg sync.WaitGroup
	for i, city := range cities {
		wg.Add(1)
		go func(i int, city domain.City) {
			defer wg.Done()
			forecast, err := s.fetchCity(ctx, city)
			if err != nil {
				slog.Warn("Forecast fetch failed", "city", city.Name, "error", err)
				return
			}
			results[i] = forecast
		}(i, city)
	}
	wg.Wait()

	return lo.FilterMap(results, func(f *domain.CityForecast, _ int) (domain.CityForecast, bool) {
		if f == nil {
			return domain.CityForecast{}, false
		}
		return *f, true
	})
}

func (s *Service) fetchCity(ctx context.Context, city domain.City) (*domain.CityForecast, error) {
	url := fmt.Sprintf(
		"%s/v1/forecast?latitude=%.4f&longitude=%.4f&daily=weather_code,temperature_2m_max,temperature_2m_min,precipitation_probability_max&timezone=Asia%%2FTokyo&forecast_days=%d",
		s.baseURL, city.Latitude, city.Longitude, forecastDays,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, oops.With("city", city.Name).Wrap(err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, oops.With("city", city.Name, "context", "forecast request failed").Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, oops.With("city", city.Name, "status", resp.StatusCode).Errorf("unexpected forecast status")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, oops.With("city", city.Name, "context", "reading forecast body").Wrap(err)
	}

	var parsed forecastResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, oops.With("city", city.Name, "context", "decoding forecast").Wrap(err)
	}

	return &domain.CityForecast{
		CityName: city.Name,
		Daily:    zipDaily(parsed),
	}, nil
}

// zipDaily joins the response's parallel arrays by index. Temperature
// and weather-code arrays bound the window; a missing precipitation
// probability defaults to 0.
func zipDaily(resp forecastResponse) []domain.DailyForecast {
	d := resp.Daily

	n := len(d.Time)
	if len(d.WeatherCode) < n {
		n = len(d.WeatherCode)
	}
	if len(d.TemperatureMax) < n {
		n = len(d.TemperatureMax)
	}
	if len(d.TemperatureMin) < n {
		n = len(d.TemperatureMin)
	}

	daily := make([]domain.DailyForecast, 0, n)
	for i := 0; i < n; i++ {
		precip := 0
		if i < len(d.PrecipProbability) {
			precip = d.PrecipProbability[i]
		}
		daily = append(daily, domain.DailyForecast{
			Date:              d.Time[i],
			WeatherCode:       d.WeatherCode[i],
			TempMax:           d.TemperatureMax[i],
			TempMin:           d.TemperatureMin[i],
			PrecipProbability: precip,
		})
	}
	return daily
}
