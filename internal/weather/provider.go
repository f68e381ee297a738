package weather

import "context"

// Provider abstracts a current-weather data source (e.g. OpenWeatherMap).
type Provider interface {
	Name() string
	Lookup(ctx context.Context, city string) (Snapshot, error)
}
