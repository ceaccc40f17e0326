package dashboard

import (
	"sync"
	"time"

	"weather-dashboard/models"
)

// ErrorKind classifies a fetch failure for display purposes
type ErrorKind string

const (
	ErrorNone     ErrorKind = ""
	ErrorNotFound ErrorKind = "not_found" // user-correctable, shown inline
	ErrorAuth     ErrorKind = "auth"      // API key rejected, shown as a banner
	ErrorNetwork  ErrorKind = "network"   // transient, cleared on the next good cycle
)

// CityWeather is one city's half of a snapshot: either fully populated
// or carrying a classified error, never partially filled.
type CityWeather struct {
	Query      models.CityQuery         `json:"query"`
	Current    models.CurrentConditions `json:"current"`
	Table      models.ForecastTable     `json:"table"`
	Insights   models.ForecastInsights  `json:"insights"`
	ErrKind    ErrorKind                `json:"errKind,omitempty"`
	ErrMessage string                   `json:"errMessage,omitempty"`
}

// OK reports whether this city's data was fetched successfully
func (cw CityWeather) OK() bool {
	return cw.ErrKind == ErrorNone
}

// Snapshot is the full dashboard state built by one refresh cycle.
// Snapshots are immutable; every cycle replaces the previous one whole,
// so no cross-cycle history is retained.
type Snapshot struct {
	Seq       uint64       `json:"seq"`
	TakenAt   time.Time    `json:"takenAt"`
	Units     models.Units `json:"units"`
	Primary   CityWeather  `json:"primary"`
	Secondary *CityWeather `json:"secondary,omitempty"` // nil outside comparison mode
}

// Controls holds the user-selected cities and unit system
type Controls struct {
	Primary   string       `json:"primary"`
	Secondary string       `json:"secondary"` // empty disables comparison mode
	Units     models.Units `json:"units"`
}

// Store holds the latest snapshot and the active controls
type Store struct {
	mutex       sync.RWMutex
	snapshot    Snapshot
	hasSnapshot bool
	controls    Controls
}

// NewStore creates a store with the given initial controls
func NewStore(initial Controls) *Store {
	if initial.Units == "" {
		initial.Units = models.Metric
	}
	return &Store{controls: initial}
}

// Publish stores a snapshot unless a newer cycle already published one.
// Stale in-flight cycles are discarded: last-writer-wins by sequence.
func (s *Store) Publish(snap Snapshot) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.hasSnapshot && snap.Seq <= s.snapshot.Seq {
		return false
	}

	s.snapshot = snap
	s.hasSnapshot = true
	return true
}

// Latest retrieves the most recent snapshot, if any has been published
func (s *Store) Latest() (Snapshot, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.snapshot, s.hasSnapshot
}

// Controls retrieves the active controls
func (s *Store) Controls() Controls {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return s.controls
}

// SetControls replaces the active controls. The next cycle rebuilds the
// snapshot from scratch, so nothing is invalidated retroactively.
func (s *Store) SetControls(c Controls) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if c.Units == "" {
		c.Units = models.Metric
	}
	s.controls = c
}
