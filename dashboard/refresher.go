package dashboard

import (
	"context"
	"errors"
	"log"
	"sync/atomic"
	"time"

	"weather-dashboard/datasource"
	"weather-dashboard/models"
)

const (
	// DefaultInterval is the wall-clock time between refresh cycles
	DefaultInterval = 60 * time.Second

	// defaultFetchTimeout bounds one full fetch cycle
	defaultFetchTimeout = 30 * time.Second

	// forecastDays covers the full window the forecast endpoint offers
	forecastDays = 5
)

// Refresher runs the fetch-shape-publish pipeline on a fixed interval.
// The interval timer is rearmed only after a cycle finishes, so cycles
// never overlap; Kick runs a cycle immediately on city or unit changes.
type Refresher struct {
	provider     datasource.WeatherProvider
	store        *Store
	interval     time.Duration
	fetchTimeout time.Duration
	seq          atomic.Uint64
	kick         chan struct{}
}

// NewRefresher creates a refresh driver for the given provider and store
func NewRefresher(provider datasource.WeatherProvider, store *Store, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Refresher{
		provider:     provider,
		store:        store,
		interval:     interval,
		fetchTimeout: defaultFetchTimeout,
		kick:         make(chan struct{}, 1),
	}
}

// Kick requests an immediate refresh cycle. The request coalesces with
// any already-pending kick and never blocks the caller.
func (r *Refresher) Kick() {
	select {
	case r.kick <- struct{}{}:
	default:
	}
}

// Run drives the refresh loop until the context is canceled.
// Fetch errors are captured into the snapshot, never returned, so the
// loop always reaches its next scheduled cycle.
func (r *Refresher) Run(ctx context.Context) {
	// Fetch immediately on startup
	r.runCycle(ctx)

	timer := time.NewTimer(r.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		case <-r.kick:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}

		r.runCycle(ctx)
		timer.Reset(r.interval)
	}
}

// runCycle executes one fetch-shape-publish pass for the active controls
func (r *Refresher) runCycle(ctx context.Context) {
	seq := r.seq.Add(1)
	controls := r.store.Controls()

	ctx, cancel := context.WithTimeout(ctx, r.fetchTimeout)
	defer cancel()

	snap := Snapshot{
		Seq:     seq,
		TakenAt: time.Now(),
		Units:   controls.Units,
	}

	snap.Primary = r.fetchCity(ctx, controls.Primary, controls.Units)
	if controls.Secondary != "" {
		secondary := r.fetchCity(ctx, controls.Secondary, controls.Units)
		snap.Secondary = &secondary
	}

	if r.store.Publish(snap) {
		log.Printf("Refresh cycle %d complete for %s", seq, controls.Primary)
	} else {
		log.Printf("Refresh cycle %d discarded, a newer cycle already published", seq)
	}
}

// fetchCity fetches both endpoints for one city. Either everything
// succeeds or the result carries a single classified error; no partial
// data leaks into rendering.
func (r *Refresher) fetchCity(ctx context.Context, city string, units models.Units) CityWeather {
	cw := CityWeather{
		Query: models.CityQuery{Name: city, Units: units},
	}

	current, err := r.provider.FetchCurrent(ctx, city)
	if err != nil {
		log.Printf("Error fetching current conditions for %s from %s: %v", city, r.provider.Name(), err)
		return cityError(cw, err)
	}

	table, err := r.provider.FetchForecast(ctx, city, forecastDays)
	if err != nil {
		log.Printf("Error fetching forecast for %s from %s: %v", city, r.provider.Name(), err)
		return cityError(cw, err)
	}

	cw.Current = current
	cw.Table = table
	cw.Insights, _ = table.Insights()
	return cw
}

// cityError returns the query half of a CityWeather with the error classified
func cityError(cw CityWeather, err error) CityWeather {
	return CityWeather{
		Query:      cw.Query,
		ErrKind:    classifyError(err),
		ErrMessage: err.Error(),
	}
}

// classifyError maps provider errors onto the display taxonomy
func classifyError(err error) ErrorKind {
	switch {
	case errors.Is(err, datasource.ErrCityNotFound):
		return ErrorNotFound
	case errors.Is(err, datasource.ErrUnauthorized):
		return ErrorAuth
	}
	return ErrorNetwork
}
