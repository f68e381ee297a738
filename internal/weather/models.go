package weather

import "errors"

// LookupFailedMessage is the only failure text ever shown to a user.
const LookupFailedMessage = "City not found. Please try again."

// ErrLookupFailed covers every way a lookup can fail: transport errors,
// non-2xx provider responses, unknown cities and malformed bodies.
var ErrLookupFailed = errors.New("weather lookup failed")

// Snapshot is the normalized current-weather view for one city.
type Snapshot struct {
	LocationName         string  `json:"locationName"`
	TemperatureC         float64 `json:"temperatureC"`
	FeelsLikeC           float64 `json:"feelsLikeC"`
	HumidityPercent      float64 `json:"humidityPercent"`
	WindSpeedMs          float64 `json:"windSpeedMs"`
	ConditionSummary     string  `json:"conditionSummary"`
	ConditionDescription string  `json:"conditionDescription"`
}
