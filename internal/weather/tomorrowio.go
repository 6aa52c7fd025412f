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

// TomorrowIO fetches realtime conditions from tomorrow.io.  Imperial
// units are requested so both providers report °F and mph.
type TomorrowIO struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewTomorrowIO(client *http.Client, apiKey string) *TomorrowIO {
	return &TomorrowIO{
		apiKey:  apiKey,
		baseURL: "https://api.tomorrow.io/v4/weather/realtime",
		client:  client,
	}
}

func (p *TomorrowIO) Name() string { return model.SourceTomorrowIO }

func (p *TomorrowIO) Fetch(ctx context.Context, city string) (Reading, error) {
	if p.apiKey == "" {
		return Reading{}, fmt.Errorf("tomorrow.io api key is not configured")
	}

	values := url.Values{}
	values.Set("location", city)
	values.Set("units", "imperial")
	values.Set("apikey", p.apiKey)

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

	var payload struct {
		Data *struct {
			Time   string `json:"time"`
			Values *struct {
				Temperature         *float64 `json:"temperature"`
				TemperatureApparent *float64 `json:"temperatureApparent"`
				Humidity            *float64 `json:"humidity"`
				WindSpeed           *float64 `json:"windSpeed"`
			} `json:"values"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Reading{}, fmt.Errorf("%s: %w", p.Name(), ErrMalformedResponse)
	}
	if payload.Data == nil || payload.Data.Values == nil {
		return Reading{}, fmt.Errorf("%s: %w", p.Name(), ErrMalformedResponse)
	}
	v := payload.Data.Values
	if v.Temperature == nil || v.TemperatureApparent == nil || v.Humidity == nil || v.WindSpeed == nil {
		return Reading{}, fmt.Errorf("%s: %w", p.Name(), ErrMalformedResponse)
	}

	ts := payload.Data.Time
	if ts == "" {
		ts = time.Now().UTC().Format(time.RFC3339)
	}

	return Reading{
		Source:      p.Name(),
		Temperature: fmt.Sprintf("%.1f°F", *v.Temperature),
		FeelsLike:   fmt.Sprintf("%.1f°F", *v.TemperatureApparent),
		Humidity:    fmt.Sprintf("%.0f%%", *v.Humidity),
		WindSpeed:   fmt.Sprintf("%.1f mph", *v.WindSpeed),
		Timestamp:   ts,
	}, nil
}
