package weather

import "context"

// Reading is one normalized observation from a single source.  Numeric
// fields are display strings with unit suffixes exactly as the API
// returns them to clients ("70.5°F", "45%", "10.4 mph"); Timestamp is the
// provider's observation time in ISO-8601.
type Reading struct {
	Source      string `json:"source"`
	Temperature string `json:"temperature"`
	FeelsLike   string `json:"feels_like"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"wind_speed"`
	Timestamp   string `json:"timestamp"`
}

// Provider abstracts a weather data source.  Implementations issue one
// outbound HTTP call per Fetch; there are no retries, so a failed call
// fails the caller's whole aggregation request.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, city string) (Reading, error)
}
