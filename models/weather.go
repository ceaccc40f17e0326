package models

import (
	"strings"
	"time"
)

// Units selects the temperature unit system used for display.
// Temperatures are stored in Celsius internally; Fahrenheit is a
// presentation-time conversion.
type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

// ParseUnits maps user input to a unit system, defaulting to metric.
func ParseUnits(s string) Units {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "imperial", "f", "°f", "fahrenheit":
		return Imperial
	}
	return Metric
}

// Label returns the display symbol for temperatures in this unit system.
func (u Units) Label() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

// DisplayTemp converts a stored Celsius temperature into this unit system.
func (u Units) DisplayTemp(celsius float64) float64 {
	if u == Imperial {
		return CelsiusToFahrenheit(celsius)
	}
	return celsius
}

// CelsiusToFahrenheit converts a temperature from Celsius to Fahrenheit.
func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

// CityQuery identifies one city the dashboard is tracking
type CityQuery struct {
	Name  string `json:"name"`
	Units Units  `json:"units"`
}

// CurrentConditions represents a single real-time weather snapshot for a city
type CurrentConditions struct {
	City        string    `json:"city"`
	Temperature float64   `json:"temperature"` // in Celsius
	Humidity    float64   `json:"humidity"`    // percentage
	Description string    `json:"description"` // short text description
	Icon        string    `json:"icon"`        // icon code
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Timestamp   time.Time `json:"timestamp"` // time reported by the provider
}
