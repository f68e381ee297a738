package weather

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/i474232898/weather-dashboard/internal/metrics"
)

// Service performs lookups against a single provider and collapses every
// failure into ErrLookupFailed.
type Service struct {
	provider Provider
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// NewService creates a new Service. logger and m may be nil.
func NewService(provider Provider, logger *slog.Logger, m *metrics.Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		provider: provider,
		logger:   logger,
		metrics:  m,
	}
}

// Lookup fetches current weather for city. The city is passed to the provider
// as-is. On any failure the returned error is ErrLookupFailed; the cause is
// only logged.
func (s *Service) Lookup(ctx context.Context, city string) (Snapshot, error) {
	if s.provider == nil {
		s.logger.Error("no weather provider configured")
		return Snapshot{}, fmt.Errorf("%w: no provider configured", ErrLookupFailed)
	}

	start := time.Now()
	snap, err := s.provider.Lookup(ctx, city)
	elapsed := time.Since(start)

	if err != nil {
		s.metrics.ObserveLookup(metrics.OutcomeFailed, elapsed)
		s.logger.Warn("weather lookup failed",
			"provider", s.provider.Name(),
			"city", city,
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return Snapshot{}, ErrLookupFailed
	}

	s.metrics.ObserveLookup(metrics.OutcomeLoaded, elapsed)
	s.logger.Debug("weather lookup succeeded",
		"provider", s.provider.Name(),
		"city", city,
		"location", snap.LocationName,
		"duration_ms", elapsed.Milliseconds(),
	)
	return snap, nil
}
