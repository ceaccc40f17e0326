package models

// rainyThreshold is the precipitation probability above which a 3-hour
// slot counts as a rainy period.
const rainyThreshold = 50.0

// ForecastInsights summarizes a forecast table over its full window
type ForecastInsights struct {
	AvgTemperature float64 `json:"avgTemperature"` // in Celsius
	MaxTemperature float64 `json:"maxTemperature"` // in Celsius
	MinTemperature float64 `json:"minTemperature"` // in Celsius
	AvgWindSpeed   float64 `json:"avgWindSpeed"`   // in m/s
	RainyPeriods   int     `json:"rainyPeriods"`   // samples with PrecipProb > 50
}

// Insights computes summary statistics for the table.
// The second return value is false when the table has no samples.
func (t ForecastTable) Insights() (ForecastInsights, bool) {
	if len(t.Samples) == 0 {
		return ForecastInsights{}, false
	}

	in := ForecastInsights{
		MaxTemperature: t.Samples[0].Temperature,
		MinTemperature: t.Samples[0].Temperature,
	}

	var tempSum, windSum float64
	for _, s := range t.Samples {
		tempSum += s.Temperature
		windSum += s.WindSpeed

		if s.Temperature > in.MaxTemperature {
			in.MaxTemperature = s.Temperature
		}
		if s.Temperature < in.MinTemperature {
			in.MinTemperature = s.Temperature
		}
		if s.PrecipProb > rainyThreshold {
			in.RainyPeriods++
		}
	}

	n := float64(len(t.Samples))
	in.AvgTemperature = tempSum / n
	in.AvgWindSpeed = windSum / n

	return in, true
}
