package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleAt builds one forecast sample at the given hour offset
func sampleAt(hours int, temp, wind, pop float64) ForecastSample {
	base := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	return ForecastSample{
		Timestamp:   base.Add(time.Duration(hours) * time.Hour),
		Temperature: temp,
		Humidity:    60,
		WindSpeed:   wind,
		PrecipProb:  pop,
	}
}

func TestChronologicallyOrdered(t *testing.T) {
	tests := []struct {
		name    string
		samples []ForecastSample
		want    bool
	}{
		{"empty", nil, true},
		{"single", []ForecastSample{sampleAt(0, 20, 3, 10)}, true},
		{
			"increasing",
			[]ForecastSample{sampleAt(0, 20, 3, 10), sampleAt(3, 21, 3, 10), sampleAt(6, 22, 3, 10)},
			true,
		},
		{
			"duplicate_timestamp",
			[]ForecastSample{sampleAt(0, 20, 3, 10), sampleAt(0, 21, 3, 10)},
			false,
		},
		{
			"decreasing",
			[]ForecastSample{sampleAt(3, 20, 3, 10), sampleAt(0, 21, 3, 10)},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := ForecastTable{City: "Berlin,DE", Samples: tt.samples}
			assert.Equal(t, tt.want, table.ChronologicallyOrdered())
		})
	}
}

func TestInsights(t *testing.T) {
	table := ForecastTable{
		City: "Berlin,DE",
		Samples: []ForecastSample{
			sampleAt(0, 10, 2, 20),
			sampleAt(3, 20, 4, 60),
			sampleAt(6, 15, 6, 80),
		},
	}

	in, ok := table.Insights()
	require.True(t, ok)

	assert.InDelta(t, 15.0, in.AvgTemperature, 0.001)
	assert.InDelta(t, 20.0, in.MaxTemperature, 0.001)
	assert.InDelta(t, 10.0, in.MinTemperature, 0.001)
	assert.InDelta(t, 4.0, in.AvgWindSpeed, 0.001)
	assert.Equal(t, 2, in.RainyPeriods)
}

func TestInsightsRainyThresholdIsExclusive(t *testing.T) {
	table := ForecastTable{
		Samples: []ForecastSample{
			sampleAt(0, 10, 2, 50),   // exactly 50 does not count
			sampleAt(3, 10, 2, 50.1), // just above does
		},
	}

	in, ok := table.Insights()
	require.True(t, ok)
	assert.Equal(t, 1, in.RainyPeriods)
}

func TestInsightsEmptyTable(t *testing.T) {
	_, ok := ForecastTable{City: "Berlin,DE"}.Insights()
	assert.False(t, ok)
}
