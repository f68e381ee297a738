package dashboard

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// ErrLookupInProgress is returned by Submit while the session is Loading.
var ErrLookupInProgress = errors.New("lookup already in progress")

// Looker resolves a city name to a snapshot.
type Looker interface {
	Lookup(ctx context.Context, city string) (weather.Snapshot, error)
}

// Session is one browser's dashboard: the text of the city field and the
// state of the latest lookup. It is safe for concurrent use.
type Session struct {
	mu    sync.Mutex
	city  string
	state State
}

// NewSession returns an Idle session with an empty field.
func NewSession() *Session {
	return &Session{state: Idle{}}
}

// SetCity records the current text of the city field.
func (s *Session) SetCity(city string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.city = city
}

// City returns the current text of the city field.
func (s *Session) City() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.city
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submit starts a lookup for city. Blank input is a no-op: started is false,
// err is nil and the state is untouched. While a lookup is in flight Submit
// returns ErrLookupInProgress. Otherwise the session moves to Loading and
// city is returned unchanged as the query; the caller must report the result
// via Finish.
func (s *Session) Submit(city string) (query string, started bool, err error) {
	if strings.TrimSpace(city) == "" {
		return "", false, nil
	}
	query = city

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, loading := s.state.(Loading); loading {
		return "", false, ErrLookupInProgress
	}
	s.state = Loading{City: query}
	return query, true, nil
}

// Finish ends the in-flight lookup. Any error becomes Failed with
// weather.LookupFailedMessage.
func (s *Session) Finish(snap weather.Snapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.state = Failed{Message: weather.LookupFailedMessage}
		return
	}
	s.state = Loaded{Snapshot: snap}
}

// Search runs Submit, the lookup and Finish in the calling goroutine.
func (s *Session) Search(ctx context.Context, city string, looker Looker) error {
	query, started, err := s.Submit(city)
	if err != nil || !started {
		return err
	}
	snap, lookupErr := looker.Lookup(ctx, query)
	s.Finish(snap, lookupErr)
	return nil
}
