package dashboard

import (
	"math"
	"strconv"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

const submitLabel = "Search"

// View is everything the page template needs. It is derived from a State and
// never stored.
type View struct {
	City           string
	Loading        bool
	SubmitDisabled bool
	SubmitLabel    string
	Banner         string
	Card           *Card
}

// Card is the formatted weather card.
type Card struct {
	Location    string
	Temperature string
	Description string
	FeelsLike   string
	WindSpeed   string
	Humidity    string
}

// Render maps a state and the current field text to a View.
func Render(state State, city string) View {
	v := View{
		City:        city,
		SubmitLabel: submitLabel,
	}

	switch st := state.(type) {
	case Loading:
		v.Loading = true
		v.SubmitDisabled = true
		v.SubmitLabel = ""
	case Failed:
		v.Banner = st.Message
	case Loaded:
		v.Card = newCard(st.Snapshot)
	}
	return v
}

func newCard(s weather.Snapshot) *Card {
	return &Card{
		Location:    s.LocationName,
		Temperature: formatCelsius(s.TemperatureC),
		Description: s.ConditionDescription,
		FeelsLike:   formatCelsius(s.FeelsLikeC),
		WindSpeed:   formatNumber(s.WindSpeedMs) + " m/s",
		Humidity:    formatNumber(s.HumidityPercent) + "%",
	}
}

// formatCelsius rounds half up, so -2.5 shows as -2°C.
func formatCelsius(v float64) string {
	r := math.Floor(v + 0.5)
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', 0, 64) + "°C"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
