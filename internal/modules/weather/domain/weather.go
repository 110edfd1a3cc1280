package domain

// City is one fixed forecast location.
type City struct {
	Name      string  `json:"name" koanf:"name"`
	Latitude  float64 `json:"latitude" koanf:"latitude"`
	Longitude float64 `json:"longitude" koanf:"longitude"`
}

// DailyForecast is the forecast for a single calendar day.
type DailyForecast struct {
	Date              string  `json:"date"`
	WeatherCode       int     `json:"weather_code"`
	TempMax           float64 `json:"temp_max"`
	TempMin           float64 `json:"temp_min"`
	PrecipProbability int     `json:"precipitation_probability"`
}

// CityForecast groups the daily forecasts for one city, in day order.
type CityForecast struct {
	CityName string          `json:"city"`
	Daily    []DailyForecast `json:"daily"`
}
