package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/metrics"
)

type stubProvider struct {
	snap  Snapshot
	err   error
	calls []string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Lookup(_ context.Context, city string) (Snapshot, error) {
	s.calls = append(s.calls, city)
	return s.snap, s.err
}

func TestServiceLookupSuccess(t *testing.T) {
	want := Snapshot{LocationName: "Lisbon", TemperatureC: 21.4}
	p := &stubProvider{snap: want}
	m := metrics.New()
	svc := NewService(p, nil, m)

	got, err := svc.Lookup(context.Background(), " Lisbon ")
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, []string{" Lisbon "}, p.calls, "city must reach the provider untouched")

	n, err := testutil.GatherAndCount(m.Registry(), "weather_dashboard_lookups_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestServiceLookupCollapsesFailures(t *testing.T) {
	causes := []error{
		errors.New("dial tcp: connection refused"),
		errors.New("unexpected status code: 401"),
		errors.New("unexpected status code: 404"),
		context.DeadlineExceeded,
	}

	for _, cause := range causes {
		t.Run(cause.Error(), func(t *testing.T) {
			svc := NewService(&stubProvider{err: cause}, nil, nil)

			snap, err := svc.Lookup(context.Background(), "Atlantis")
			assert.Equal(t, Snapshot{}, snap)
			assert.Equal(t, ErrLookupFailed, err)
			assert.False(t, errors.Is(err, cause), "cause must not leak to callers")
		})
	}
}

func TestServiceLookupWithoutProvider(t *testing.T) {
	svc := NewService(nil, nil, nil)

	_, err := svc.Lookup(context.Background(), "Lisbon")
	assert.ErrorIs(t, err, ErrLookupFailed)
}
