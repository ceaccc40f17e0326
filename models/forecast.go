package models

import (
	"time"
)

// ForecastSample represents one 3-hour forecast slot with weather conditions
type ForecastSample struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"` // in Celsius
	Humidity    float64   `json:"humidity"`    // percentage
	WindSpeed   float64   `json:"windSpeed"`   // in m/s
	PrecipProb  float64   `json:"precipProb"`  // probability of precipitation, 0-100
	Description string    `json:"description"` // short text description
}

// ForecastTable represents an ordered forecast for one city
type ForecastTable struct {
	City    string           `json:"city"`
	Samples []ForecastSample `json:"samples"` // insertion order is chronological order
	Updated time.Time        `json:"updated"` // when this forecast was fetched
}

// ChronologicallyOrdered reports whether sample timestamps are strictly increasing.
func (t ForecastTable) ChronologicallyOrdered() bool {
	for i := 1; i < len(t.Samples); i++ {
		if !t.Samples[i].Timestamp.After(t.Samples[i-1].Timestamp) {
			return false
		}
	}
	return true
}
