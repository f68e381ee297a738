package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-dashboard/internal/weather"
)

// DefaultOpenWeatherURL is the OpenWeatherMap current-weather endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

var validate = validator.New()

// OpenWeatherOptions configures an OpenWeatherProvider. Zero values fall back
// to a single attempt against DefaultOpenWeatherURL with no throttling.
type OpenWeatherOptions struct {
	BaseURL       string
	MaxRetries    int
	RatePerMinute int
}

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, apiKey string, opts OpenWeatherOptions) *OpenWeatherProvider {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}

	var limiter *rate.Limiter
	if opts.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RatePerMinute)), opts.RatePerMinute)
	}

	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{
			Client: client,
			Backoff: BackoffConfig{
				MaxRetries:      opts.MaxRetries,
				InitialInterval: 500 * time.Millisecond,
				MaxInterval:     5 * time.Second,
			},
			Limiter: limiter,
		},
		circuit: newCircuitBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// owmCurrent is the subset of the current-weather body we rely on. Pointers
// let validation tell a missing field from a zero reading.
type owmCurrent struct {
	Name string `json:"name"`
	Main *struct {
		Temp      *float64 `json:"temp" validate:"required"`
		FeelsLike *float64 `json:"feels_like" validate:"required"`
		Humidity  *float64 `json:"humidity" validate:"required"`
	} `json:"main" validate:"required"`
	Wind *struct {
		Speed *float64 `json:"speed" validate:"required"`
	} `json:"wind" validate:"required"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather" validate:"required,min=1"`
}

func (p *OpenWeatherProvider) Lookup(ctx context.Context, city string) (weather.Snapshot, error) {
	if p.apiKey == "" {
		return weather.Snapshot{}, fmt.Errorf("openweather: %w", errMissingAPIKey)
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", city)
		values.Set("appid", p.apiKey)
		values.Set("units", "metric")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := doRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.Snapshot{}, fmt.Errorf("openweather: %w", err)
	}
	defer resp.Body.Close()

	var payload owmCurrent
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("openweather: %w: %v", errMalformedBody, err)
	}
	if err := validate.Struct(payload); err != nil {
		return weather.Snapshot{}, fmt.Errorf("openweather: %w: %v", errMalformedBody, err)
	}

	return weather.Snapshot{
		LocationName:         payload.Name,
		TemperatureC:         *payload.Main.Temp,
		FeelsLikeC:           *payload.Main.FeelsLike,
		HumidityPercent:      *payload.Main.Humidity,
		WindSpeedMs:          *payload.Wind.Speed,
		ConditionSummary:     payload.Weather[0].Main,
		ConditionDescription: payload.Weather[0].Description,
	}, nil
}
