package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-dashboard/internal/metrics"
	"github.com/i474232898/weather-dashboard/internal/store"
)

func TestSweepPurgesExpiredSessions(t *testing.T) {
	sessions := store.NewSessionStore(0, time.Nanosecond)
	sessions.Create()
	sessions.Create()
	time.Sleep(time.Millisecond)

	m := metrics.New()
	s := New(sessions, time.Hour, m, nil)
	s.sweep()

	assert.Zero(t, sessions.Len())

	families, err := m.Registry().Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			switch {
			case metric.GetGauge() != nil:
				values[mf.GetName()] = metric.GetGauge().GetValue()
			case metric.GetCounter() != nil:
				values[mf.GetName()] = metric.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 0.0, values["weather_dashboard_sessions_active"])
	assert.Equal(t, 2.0, values["weather_dashboard_sessions_purged_total"])
}

func TestSweepKeepsLiveSessions(t *testing.T) {
	sessions := store.NewSessionStore(0, time.Hour)
	sessions.Create()

	s := New(sessions, 0, nil, nil)
	assert.Equal(t, defaultInterval, s.interval)

	s.sweep()
	assert.Equal(t, 1, sessions.Len())
}

func TestStartStop(t *testing.T) {
	sessions := store.NewSessionStore(0, time.Hour)
	s := New(sessions, time.Hour, nil, nil)

	require.NoError(t, s.Start())
	s.Stop()
}
