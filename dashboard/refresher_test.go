package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/datasource"
	"weather-dashboard/models"
)

// fakeProvider serves canned data and signals each current-weather fetch
type fakeProvider struct {
	mu          sync.Mutex
	currentErr  error
	forecastErr error
	fetches     chan string // receives the city of every FetchCurrent call
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{fetches: make(chan string, 64)}
}

func (f *fakeProvider) setErrors(currentErr, forecastErr error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.currentErr = currentErr
	f.forecastErr = forecastErr
}

func (f *fakeProvider) FetchCurrent(ctx context.Context, city string) (models.CurrentConditions, error) {
	select {
	case f.fetches <- city:
	default:
	}

	f.mu.Lock()
	err := f.currentErr
	f.mu.Unlock()
	if err != nil {
		return models.CurrentConditions{}, err
	}

	return models.CurrentConditions{
		City:        city,
		Temperature: 21.4,
		Humidity:    58,
		Description: "clear sky",
		Latitude:    52.52,
		Longitude:   13.41,
		Timestamp:   time.Now(),
	}, nil
}

func (f *fakeProvider) FetchForecast(ctx context.Context, city string, days int) (models.ForecastTable, error) {
	f.mu.Lock()
	err := f.forecastErr
	f.mu.Unlock()
	if err != nil {
		return models.ForecastTable{}, err
	}

	base := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	table := models.ForecastTable{City: city, Updated: time.Now()}
	for i := 0; i < days*8; i++ {
		table.Samples = append(table.Samples, models.ForecastSample{
			Timestamp:   base.Add(time.Duration(i) * 3 * time.Hour),
			Temperature: 20 + float64(i%8),
			Humidity:    60,
			WindSpeed:   3,
			PrecipProb:  float64(i%10) * 10,
		})
	}
	return table, nil
}

func (f *fakeProvider) Name() string {
	return "Fake"
}

func TestRunCyclePublishesSnapshot(t *testing.T) {
	provider := newFakeProvider()
	store := NewStore(Controls{Primary: "Berlin,DE"})
	r := NewRefresher(provider, store, time.Hour)

	r.runCycle(context.Background())

	snap, ok := store.Latest()
	require.True(t, ok)
	assert.Equal(t, uint64(1), snap.Seq)
	assert.Equal(t, models.Metric, snap.Units)
	assert.Nil(t, snap.Secondary)

	require.True(t, snap.Primary.OK())
	assert.Equal(t, "Berlin,DE", snap.Primary.Current.City)
	assert.Len(t, snap.Primary.Table.Samples, 40)
	assert.NotZero(t, snap.Primary.Insights.AvgTemperature)
}

func TestRunCycleComparisonMode(t *testing.T) {
	provider := newFakeProvider()
	store := NewStore(Controls{Primary: "Berlin,DE", Secondary: "London,GB"})
	r := NewRefresher(provider, store, time.Hour)

	r.runCycle(context.Background())

	snap, ok := store.Latest()
	require.True(t, ok)
	require.NotNil(t, snap.Secondary)
	assert.Equal(t, "Berlin,DE", snap.Primary.Current.City)
	assert.Equal(t, "London,GB", snap.Secondary.Current.City)
}

func TestRunCycleAllOrNothing(t *testing.T) {
	// Current succeeds but forecast fails: the city must carry an error
	// and no partial data
	provider := newFakeProvider()
	provider.setErrors(nil, errors.New("boom"))

	store := NewStore(Controls{Primary: "Berlin,DE"})
	r := NewRefresher(provider, store, time.Hour)

	r.runCycle(context.Background())

	snap, ok := store.Latest()
	require.True(t, ok)
	assert.False(t, snap.Primary.OK())
	assert.Equal(t, ErrorNetwork, snap.Primary.ErrKind)
	assert.Empty(t, snap.Primary.Current.City)
	assert.Empty(t, snap.Primary.Table.Samples)
}

func TestRunCycleErrorClassification(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"not_found", fmt.Errorf("current: %w", datasource.ErrCityNotFound), ErrorNotFound},
		{"auth", fmt.Errorf("current: %w", datasource.ErrUnauthorized), ErrorAuth},
		{"request", &datasource.RequestError{Op: "current", Err: errors.New("timeout")}, ErrorNetwork},
		{"other", errors.New("weird"), ErrorNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newFakeProvider()
			provider.setErrors(tt.err, nil)

			store := NewStore(Controls{Primary: "Nonexistentville1234"})
			r := NewRefresher(provider, store, time.Hour)
			r.runCycle(context.Background())

			snap, ok := store.Latest()
			require.True(t, ok)
			assert.Equal(t, tt.want, snap.Primary.ErrKind)
			assert.NotEmpty(t, snap.Primary.ErrMessage)
		})
	}
}

func TestRunCycleFailedCityDoesNotAffectOther(t *testing.T) {
	provider := newFakeProvider()
	store := NewStore(Controls{Primary: "Berlin,DE", Secondary: "London,GB"})
	r := NewRefresher(provider, store, time.Hour)

	// First cycle succeeds for both, second fails for both fetches; the
	// snapshot is still rebuilt whole with per-city errors
	r.runCycle(context.Background())
	provider.setErrors(fmt.Errorf("current: %w", datasource.ErrCityNotFound), nil)
	r.runCycle(context.Background())

	snap, ok := store.Latest()
	require.True(t, ok)
	assert.Equal(t, uint64(2), snap.Seq)
	assert.Equal(t, ErrorNotFound, snap.Primary.ErrKind)
	require.NotNil(t, snap.Secondary)
	assert.Equal(t, ErrorNotFound, snap.Secondary.ErrKind)
}

func TestRunKeepsSchedulingAfterErrors(t *testing.T) {
	provider := newFakeProvider()
	provider.setErrors(errors.New("connection refused"), nil)

	store := NewStore(Controls{Primary: "Berlin,DE"})
	r := NewRefresher(provider, store, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(ctx)
	}()

	// The loop must keep firing cycles even though every fetch fails
	for i := 0; i < 3; i++ {
		select {
		case <-provider.fetches:
		case <-time.After(2 * time.Second):
			t.Fatalf("refresh loop stopped after %d cycles", i)
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("refresh loop did not stop on context cancel")
	}

	snap, ok := store.Latest()
	require.True(t, ok)
	assert.Equal(t, ErrorNetwork, snap.Primary.ErrKind)
}

func TestKickTriggersImmediateCycle(t *testing.T) {
	provider := newFakeProvider()
	store := NewStore(Controls{Primary: "Berlin,DE"})
	r := NewRefresher(provider, store, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		r.Run(ctx)
	}()

	// Startup cycle
	select {
	case <-provider.fetches:
	case <-time.After(2 * time.Second):
		t.Fatal("no startup cycle")
	}

	// A controls change must not wait for the hour-long interval
	store.SetControls(Controls{Primary: "London,GB"})
	r.Kick()

	select {
	case city := <-provider.fetches:
		assert.Equal(t, "London,GB", city)
	case <-time.After(2 * time.Second):
		t.Fatal("kick did not trigger an immediate cycle")
	}

	cancel()
	<-done
}
