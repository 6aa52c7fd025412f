package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/iliyamo/weather-mood/internal/model"
)

// WeatherAPI fetches current conditions from weatherapi.com.
type WeatherAPI struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewWeatherAPI(client *http.Client, apiKey string) *WeatherAPI {
	return &WeatherAPI{
		apiKey:  apiKey,
		baseURL: "https://api.weatherapi.com/v1/current.json",
		client:  client,
	}
}

func (p *WeatherAPI) Name() string { return model.SourceWeatherAPI }

func (p *WeatherAPI) Fetch(ctx context.Context, city string) (Reading, error) {
	if p.apiKey == "" {
		return Reading{}, fmt.Errorf("weatherapi api key is not configured")
	}

	values := url.Values{}
	values.Set("key", p.apiKey)
	values.Set("q", city)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
	if err != nil {
		return Reading{}, err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return Reading{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Reading{}, &UpstreamError{
			Provider:   p.Name(),
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	// Pointer fields so an absent key is distinguishable from zero.
	var payload struct {
		Current *struct {
			TempF            *float64 `json:"temp_f"`
			FeelslikeF       *float64 `json:"feelslike_f"`
			Humidity         *float64 `json:"humidity"`
			WindMph          *float64 `json:"wind_mph"`
			LastUpdatedEpoch int64    `json:"last_updated_epoch"`
		} `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Reading{}, fmt.Errorf("%s: %w", p.Name(), ErrMalformedResponse)
	}
	cur := payload.Current
	if cur == nil || cur.TempF == nil || cur.FeelslikeF == nil || cur.Humidity == nil || cur.WindMph == nil {
		return Reading{}, fmt.Errorf("%s: %w", p.Name(), ErrMalformedResponse)
	}

	ts := time.Unix(cur.LastUpdatedEpoch, 0).UTC()
	if cur.LastUpdatedEpoch == 0 {
		ts = time.Now().UTC()
	}

	return Reading{
		Source:      p.Name(),
		Temperature: fmt.Sprintf("%.1f°F", *cur.TempF),
		FeelsLike:   fmt.Sprintf("%.1f°F", *cur.FeelslikeF),
		Humidity:    fmt.Sprintf("%.0f%%", *cur.Humidity),
		WindSpeed:   fmt.Sprintf("%.1f mph", *cur.WindMph),
		Timestamp:   ts.Format(time.RFC3339),
	}, nil
}
