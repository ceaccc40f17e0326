package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		input string
		want  Units
	}{
		{"metric", Metric},
		{"imperial", Imperial},
		{"IMPERIAL", Imperial},
		{"°F", Imperial},
		{"f", Imperial},
		{"fahrenheit", Imperial},
		{"°C", Metric},
		{"", Metric},
		{"nonsense", Metric},
		{"  imperial  ", Imperial},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseUnits(tt.input))
		})
	}
}

func TestUnitsLabel(t *testing.T) {
	assert.Equal(t, "°C", Metric.Label())
	assert.Equal(t, "°F", Imperial.Label())
}

func TestCelsiusToFahrenheit(t *testing.T) {
	tests := []struct {
		name    string
		celsius float64
		want    float64
	}{
		{"freezing", 0, 32},
		{"boiling", 100, 212},
		{"body_temp", 37, 98.6},
		{"negative", -40, -40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CelsiusToFahrenheit(tt.celsius), 0.001)
		})
	}
}

func TestDisplayTemp(t *testing.T) {
	assert.InDelta(t, 21.5, Metric.DisplayTemp(21.5), 0.001)
	assert.InDelta(t, 70.7, Imperial.DisplayTemp(21.5), 0.001)
}
