package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveLookup(t *testing.T) {
	m := New()

	m.ObserveLookup(OutcomeLoaded, 20*time.Millisecond)
	m.ObserveLookup(OutcomeFailed, 5*time.Millisecond)
	m.ObserveLookup(OutcomeFailed, 5*time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.lookups.WithLabelValues(OutcomeLoaded)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.lookups.WithLabelValues(OutcomeFailed)))
}

func TestSessionsGauges(t *testing.T) {
	m := New()

	m.SetSessions(7)
	m.AddPurged(3)
	m.AddPurged(0)

	assert.Equal(t, 7.0, testutil.ToFloat64(m.sessions))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.sessionsPurged))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveLookup(OutcomeLoaded, time.Second)
		m.SetSessions(1)
		m.AddPurged(1)
	})
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveLookup(OutcomeLoaded, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `weather_dashboard_lookups_total{outcome="loaded"} 1`))
}
