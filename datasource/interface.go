package datasource

import (
	"context"

	"weather-dashboard/models"
)

// WeatherProvider is an interface for services that can fetch current
// conditions and forecast data for a city
type WeatherProvider interface {
	// FetchCurrent fetches current weather conditions for a city
	FetchCurrent(ctx context.Context, city string) (models.CurrentConditions, error)

	// FetchForecast fetches forecast for a city covering the specified number of days
	FetchForecast(ctx context.Context, city string, days int) (models.ForecastTable, error)

	// Name returns the provider's name
	Name() string
}
