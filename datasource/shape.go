package datasource

import (
	"time"

	"weather-dashboard/models"
)

// forecastResponse mirrors the 5-day/3-hour forecast payload
type forecastResponse struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	List []forecastEntry `json:"list"`
}

// forecastEntry is one raw 3-hour sample
type forecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Pop float64 `json:"pop"` // probability of precipitation, 0-1
}

// shapeForecast flattens raw 3-hour samples into a ForecastTable.
// Samples keep the API's order, which is already chronological. POP is
// rescaled from the upstream 0-1 fraction to the 0-100 range; values are
// otherwise passed through without clamping.
func shapeForecast(resp *forecastResponse, days int) models.ForecastTable {
	// 8 entries per day, as they come in 3-hour intervals
	maxEntries := days * 8
	if maxEntries > len(resp.List) {
		maxEntries = len(resp.List)
	}

	table := models.ForecastTable{
		City:    formatLocation(resp.City.Name, resp.City.Country),
		Samples: make([]models.ForecastSample, 0, maxEntries),
		Updated: time.Now(),
	}

	for i := 0; i < maxEntries; i++ {
		entry := resp.List[i]

		description := ""
		if len(entry.Weather) > 0 {
			description = entry.Weather[0].Description
		}

		table.Samples = append(table.Samples, models.ForecastSample{
			Timestamp:   time.Unix(entry.Dt, 0),
			Temperature: entry.Main.Temp,
			Humidity:    entry.Main.Humidity,
			WindSpeed:   entry.Wind.Speed,
			PrecipProb:  entry.Pop * 100,
			Description: description,
		})
	}

	return table
}
