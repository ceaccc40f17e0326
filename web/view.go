package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"unicode"

	"weather-dashboard/dashboard"
	"weather-dashboard/models"
)

// iconURLFormat serves OpenWeatherMap condition icons
const iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"

// authBannerMessage is shown as a persistent banner when the API key is rejected
const authBannerMessage = "The weather API rejected the configured API key. Data cannot be refreshed until the key is fixed."

// viewData is everything the dashboard template needs
type viewData struct {
	Loading    bool
	Units      models.Units
	UnitLabel  string
	IsImperial bool
	AuthError  string // persistent banner, empty when the key works
	Compare    bool
	Primary    *cityView
	Secondary  *cityView
	Charts     []chartHTML
	TableRows  []tableRow
	Insights   []insightsView
	MapMarkers template.JS
	Saved      []string
	Controls   dashboard.Controls
	UpdatedAt  string
}

// cityView is the current-conditions summary block for one city
type cityView struct {
	Name        string
	Temperature string
	Humidity    string
	Description string
	IconURL     string
	UpdatedAt   string
	Err         string // inline error message, empty on success
}

// tableRow is one forecast table line with 2-decimal numeric formatting
type tableRow struct {
	City        string
	Time        string
	Temperature string
	Humidity    string
	WindSpeed   string
	PrecipProb  string
	Description string
}

// insightsView is the 5-day summary block for one city
type insightsView struct {
	City         string
	AvgTemp      string
	MaxTemp      string
	MinTemp      string
	AvgWind      string
	RainyPeriods int
}

// labeledCity pairs a successfully fetched city with its chart label
type labeledCity struct {
	label string
	cw    dashboard.CityWeather
}

// mapMarker is one Leaflet marker, serialized into the page script
type mapMarker struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// fmt2 formats a number with exactly 2 decimal places
func fmt2(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// loadingView is shown before the first refresh cycle has published
func loadingView(controls dashboard.Controls, saved []string) viewData {
	return viewData{
		Loading:    true,
		Units:      controls.Units,
		UnitLabel:  controls.Units.Label(),
		IsImperial: controls.Units == models.Imperial,
		Saved:      saved,
		Controls:   controls,
	}
}

// buildView assembles template data from the latest snapshot
func buildView(snap dashboard.Snapshot, controls dashboard.Controls, saved []string) viewData {
	units := snap.Units
	view := viewData{
		Units:      units,
		UnitLabel:  units.Label(),
		IsImperial: units == models.Imperial,
		Compare:    snap.Secondary != nil,
		Saved:      saved,
		Controls:   controls,
		UpdatedAt:  snap.TakenAt.Format("Jan 2 15:04:05"),
	}

	primary := buildCityView(snap.Primary, units)
	view.Primary = &primary
	if snap.Primary.ErrKind == dashboard.ErrorAuth {
		view.AuthError = authBannerMessage
	}

	cities := []dashboard.CityWeather{snap.Primary}
	if snap.Secondary != nil {
		secondary := buildCityView(*snap.Secondary, units)
		view.Secondary = &secondary
		if snap.Secondary.ErrKind == dashboard.ErrorAuth {
			view.AuthError = authBannerMessage
		}
		cities = append(cities, *snap.Secondary)
	}

	labeled := labelCities(cities)
	view.Charts = buildCharts(labeled, units)
	view.TableRows = buildTableRows(labeled, units)
	view.Insights = buildInsights(labeled, units)
	view.MapMarkers = buildMarkers(labeled)

	return view
}

// buildCityView renders one current-conditions block, or its inline error
func buildCityView(cw dashboard.CityWeather, units models.Units) cityView {
	v := cityView{Name: cw.Query.Name}

	switch cw.ErrKind {
	case dashboard.ErrorNone:
	case dashboard.ErrorNotFound:
		v.Err = fmt.Sprintf("City '%s' not found.", cw.Query.Name)
		return v
	case dashboard.ErrorAuth:
		v.Err = "Weather data unavailable: the API key was rejected."
		return v
	default:
		v.Err = "Could not fetch weather data. The next cycle will retry."
		return v
	}

	v.Name = cw.Current.City
	v.Temperature = fmt2(units.DisplayTemp(cw.Current.Temperature))
	v.Humidity = fmt2(cw.Current.Humidity)
	v.Description = titleCase(cw.Current.Description)
	if cw.Current.Icon != "" {
		v.IconURL = fmt.Sprintf(iconURLFormat, cw.Current.Icon)
	}
	v.UpdatedAt = cw.Current.Timestamp.Format("Jan 2 15:04")
	return v
}

// labelCities labels each successfully fetched city for the shared charts
// and table. Two identical city names stay independently labeled.
func labelCities(cities []dashboard.CityWeather) []labeledCity {
	out := make([]labeledCity, 0, len(cities))
	seen := make(map[string]bool)

	for _, cw := range cities {
		if !cw.OK() {
			continue
		}

		label := cw.Current.City
		if label == "" {
			label = cw.Query.Name
		}
		if seen[label] {
			label += " (comparison)"
		}
		seen[label] = true

		out = append(out, labeledCity{label: label, cw: cw})
	}
	return out
}

// buildTableRows flattens all active cities into one table, primary first
func buildTableRows(cities []labeledCity, units models.Units) []tableRow {
	var rows []tableRow
	for _, lc := range cities {
		for _, sample := range lc.cw.Table.Samples {
			rows = append(rows, tableRow{
				City:        lc.label,
				Time:        sample.Timestamp.Format("2006-01-02 15:04"),
				Temperature: fmt2(units.DisplayTemp(sample.Temperature)),
				Humidity:    fmt2(sample.Humidity),
				WindSpeed:   fmt2(sample.WindSpeed),
				PrecipProb:  fmt2(sample.PrecipProb),
				Description: sample.Description,
			})
		}
	}
	return rows
}

// buildInsights renders the 5-day summary block for each active city
func buildInsights(cities []labeledCity, units models.Units) []insightsView {
	out := make([]insightsView, 0, len(cities))
	for _, lc := range cities {
		in := lc.cw.Insights
		out = append(out, insightsView{
			City:         lc.label,
			AvgTemp:      fmt2(units.DisplayTemp(in.AvgTemperature)) + " " + units.Label(),
			MaxTemp:      fmt2(units.DisplayTemp(in.MaxTemperature)) + " " + units.Label(),
			MinTemp:      fmt2(units.DisplayTemp(in.MinTemperature)) + " " + units.Label(),
			AvgWind:      fmt2(in.AvgWindSpeed) + " m/s",
			RainyPeriods: in.RainyPeriods,
		})
	}
	return out
}

// buildMarkers serializes one map marker per active city
func buildMarkers(cities []labeledCity) template.JS {
	markers := make([]mapMarker, 0, len(cities))
	for _, lc := range cities {
		markers = append(markers, mapMarker{
			Lat:  lc.cw.Current.Latitude,
			Lon:  lc.cw.Current.Longitude,
			Name: lc.label,
		})
	}

	data, err := json.Marshal(markers)
	if err != nil {
		return template.JS("[]")
	}
	return template.JS(data)
}

// displaySnapshot returns a copy of snap with temperatures converted to
// the active unit system. Humidity, wind and POP are unit-independent.
func displaySnapshot(snap dashboard.Snapshot) dashboard.Snapshot {
	if snap.Units != models.Imperial {
		return snap
	}

	snap.Primary = displayCity(snap.Primary)
	if snap.Secondary != nil {
		converted := displayCity(*snap.Secondary)
		snap.Secondary = &converted
	}
	return snap
}

// displayCity converts one city's temperatures without touching the
// snapshot the store still holds.
func displayCity(cw dashboard.CityWeather) dashboard.CityWeather {
	if !cw.OK() {
		return cw
	}

	cw.Current.Temperature = models.CelsiusToFahrenheit(cw.Current.Temperature)

	samples := make([]models.ForecastSample, len(cw.Table.Samples))
	copy(samples, cw.Table.Samples)
	for i := range samples {
		samples[i].Temperature = models.CelsiusToFahrenheit(samples[i].Temperature)
	}
	cw.Table.Samples = samples

	cw.Insights.AvgTemperature = models.CelsiusToFahrenheit(cw.Insights.AvgTemperature)
	cw.Insights.MaxTemperature = models.CelsiusToFahrenheit(cw.Insights.MaxTemperature)
	cw.Insights.MinTemperature = models.CelsiusToFahrenheit(cw.Insights.MinTemperature)
	return cw
}

// titleCase uppercases the first letter of each word in a description
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
