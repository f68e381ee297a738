package dashboard

import "github.com/i474232898/weather-dashboard/internal/weather"

// State is the outcome of the latest lookup in a session. It is one of Idle,
// Loading, Loaded or Failed.
type State interface {
	isState()
}

// Idle means nothing has been looked up yet.
type Idle struct{}

// Loading means a lookup for City is in flight.
type Loading struct {
	City string
}

// Loaded holds the snapshot of the latest successful lookup.
type Loaded struct {
	Snapshot weather.Snapshot
}

// Failed holds the user-facing message of the latest failed lookup.
type Failed struct {
	Message string
}

func (Idle) isState()    {}
func (Loading) isState() {}
func (Loaded) isState()  {}
func (Failed) isState()  {}
