package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"weather-dashboard/models"
)

// OpenWeatherMapProvider implements the WeatherProvider interface against
// the OpenWeatherMap current-weather and 5-day/3-hour forecast endpoints.
// Requests always ask for metric units; unit conversion is a display concern.
type OpenWeatherMapProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenWeatherMapProvider creates a new OpenWeatherMap provider
func NewOpenWeatherMapProvider(apiKey string) *OpenWeatherMapProvider {
	return &OpenWeatherMapProvider{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name returns the provider name
func (p *OpenWeatherMapProvider) Name() string {
	return "OpenWeatherMap"
}

// apiError is the error payload OpenWeatherMap returns on non-200 responses
type apiError struct {
	Message string `json:"message"`
}

// get issues one API request and returns the response body, with non-200
// statuses converted into the error taxonomy.
func (p *OpenWeatherMapProvider) get(ctx context.Context, op, path, city string) ([]byte, error) {
	endpoint := fmt.Sprintf("%s%s", p.baseURL, path)
	params := url.Values{}
	params.Add("q", city)
	params.Add("appid", p.apiKey)
	params.Add("units", "metric")

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Op: op, Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		var payload apiError
		// Best effort; classification falls back to the status text
		_ = json.Unmarshal(body, &payload)
		return nil, classifyStatus(op, resp.StatusCode, payload.Message)
	}

	return body, nil
}

// FetchCurrent fetches current weather conditions for a city
func (p *OpenWeatherMapProvider) FetchCurrent(ctx context.Context, city string) (models.CurrentConditions, error) {
	body, err := p.get(ctx, "current", "/weather", city)
	if err != nil {
		return models.CurrentConditions{}, err
	}

	var response struct {
		Coord struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Dt   int64  `json:"dt"`
		Name string `json:"name"`
		Sys  struct {
			Country string `json:"country"`
		} `json:"sys"`
	}

	if err := json.Unmarshal(body, &response); err != nil {
		return models.CurrentConditions{}, fmt.Errorf("failed to parse current weather response: %w", err)
	}

	// Extract weather description and icon if available
	description := ""
	icon := ""
	if len(response.Weather) > 0 {
		description = response.Weather[0].Description
		icon = response.Weather[0].Icon
	}

	return models.CurrentConditions{
		City:        formatLocation(response.Name, response.Sys.Country),
		Temperature: response.Main.Temp,
		Humidity:    response.Main.Humidity,
		Description: description,
		Icon:        icon,
		Latitude:    response.Coord.Lat,
		Longitude:   response.Coord.Lon,
		Timestamp:   time.Unix(response.Dt, 0),
	}, nil
}

// FetchForecast fetches forecast for a city covering the specified number
// of days. The endpoint returns 3-hour steps, 8 per day, up to 5 days.
func (p *OpenWeatherMapProvider) FetchForecast(ctx context.Context, city string, days int) (models.ForecastTable, error) {
	body, err := p.get(ctx, "forecast", "/forecast", city)
	if err != nil {
		return models.ForecastTable{}, err
	}

	var response forecastResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return models.ForecastTable{}, fmt.Errorf("failed to parse forecast response: %w", err)
	}

	return shapeForecast(&response, days), nil
}

// formatLocation joins city name and country the way the API reports them
func formatLocation(name, country string) string {
	if country != "" {
		return fmt.Sprintf("%s,%s", name, country)
	}
	return name
}

// Verify OpenWeatherMapProvider implements the WeatherProvider interface
var _ WeatherProvider = (*OpenWeatherMapProvider)(nil)
