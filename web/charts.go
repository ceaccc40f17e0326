package web

import (
	"fmt"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"weather-dashboard/models"
)

// chartHTML is one rendered chart, ready for template embedding
type chartHTML struct {
	Element template.HTML
	Script  template.HTML
}

// chartSpec selects one metric out of a forecast sample
type chartSpec struct {
	title string
	yName string
	value func(models.ForecastSample) float64
}

// buildCharts renders the four dashboard time-series charts, one line per
// active city, all sharing the primary city's time axis.
func buildCharts(cities []labeledCity, units models.Units) []chartHTML {
	if len(cities) == 0 || len(cities[0].cw.Table.Samples) == 0 {
		return nil
	}

	specs := []chartSpec{
		{
			title: "Temperature Trend (Next 5 Days)",
			yName: fmt.Sprintf("Temperature (%s)", units.Label()),
			value: func(s models.ForecastSample) float64 { return units.DisplayTemp(s.Temperature) },
		},
		{
			title: "Humidity Trend",
			yName: "Humidity (%)",
			value: func(s models.ForecastSample) float64 { return s.Humidity },
		},
		{
			title: "Wind Speed Trend",
			yName: "Wind Speed (m/s)",
			value: func(s models.ForecastSample) float64 { return s.WindSpeed },
		},
		{
			title: "Precipitation Probability",
			yName: "Rain Chance (%)",
			value: func(s models.ForecastSample) float64 { return s.PrecipProb },
		},
	}

	axis := make([]string, 0, len(cities[0].cw.Table.Samples))
	for _, s := range cities[0].cw.Table.Samples {
		axis = append(axis, s.Timestamp.Format("Jan 2 15:04"))
	}

	out := make([]chartHTML, 0, len(specs))
	for _, spec := range specs {
		out = append(out, buildChart(spec, axis, cities))
	}
	return out
}

// buildChart renders one line chart as an embeddable snippet
func buildChart(spec chartSpec, axis []string, cities []labeledCity) chartHTML {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "980px", Height: "320px"}),
		charts.WithTitleOpts(opts.Title{Title: spec.title}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: spec.yName}),
	)

	line.SetXAxis(axis)
	for _, lc := range cities {
		data := make([]opts.LineData, 0, len(lc.cw.Table.Samples))
		for _, sample := range lc.cw.Table.Samples {
			data = append(data, opts.LineData{Value: spec.value(sample)})
		}
		line.AddSeries(lc.label, data, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	}

	snippet := line.RenderSnippet()
	return chartHTML{
		Element: template.HTML(snippet.Element),
		Script:  template.HTML(snippet.Script),
	}
}
