package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/iliyamo/weather-mood/internal/weather"
)

func goodProviders() (*fakeProvider, *fakeProvider) {
	a := &fakeProvider{name: "WeatherAPI", reading: weather.Reading{
		Source:      "WeatherAPI",
		Temperature: "70.5°F",
		FeelsLike:   "68.0°F",
		Humidity:    "40%",
		WindSpeed:   "10.0 mph",
		Timestamp:   "2023-11-14T22:13:20Z",
	}}
	b := &fakeProvider{name: "Tomorrow.io", reading: weather.Reading{
		Source:      "Tomorrow.io",
		Temperature: "71.5°F",
		FeelsLike:   "70.0°F",
		Humidity:    "50%",
		WindSpeed:   "12.0 mph",
		Timestamp:   "2023-11-14T22:14:00Z",
	}}
	return a, b
}

func TestComparePersistsThreeRows(t *testing.T) {
	pa, pb := goodProviders()
	e, db := newTestServer(t, pa, pb)

	rec := doJSON(t, e, http.MethodGet, "/weather/compare/Berlin", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("compare: status %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		City    string                 `json:"city"`
		Average weather.AverageDisplay `json:"average"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.City != "Berlin" {
		t.Fatalf("city: got %q", resp.City)
	}
	if resp.Average.Temperature != "71.0°F" {
		t.Fatalf("average temperature: got %q, want 71.0°F", resp.Average.Temperature)
	}
	if resp.Average.Humidity != "45.0%" {
		t.Fatalf("average humidity: got %q, want 45.0%%", resp.Average.Humidity)
	}

	var total, averages int
	if err := db.QueryRow("SELECT COUNT(*) FROM weather_readings").Scan(&total); err != nil {
		t.Fatalf("count: %v", err)
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM weather_readings WHERE is_average").Scan(&averages); err != nil {
		t.Fatalf("count averages: %v", err)
	}
	if total != 3 || averages != 1 {
		t.Fatalf("rows: total %d averages %d, want 3 and 1", total, averages)
	}
}

func TestCompareOneSidedField(t *testing.T) {
	pa, pb := goodProviders()
	pb.reading.Humidity = "" // tomorrow.io omits humidity
	e, _ := newTestServer(t, pa, pb)

	rec := doJSON(t, e, http.MethodGet, "/weather/compare/Berlin", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("compare: status %d", rec.Code)
	}
	var resp struct {
		Average weather.AverageDisplay `json:"average"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Falls back to the only side that reported the field.
	if resp.Average.Humidity != "40.0%" {
		t.Fatalf("average humidity: got %q, want 40.0%%", resp.Average.Humidity)
	}
}

func TestCompareUpstreamFailureWritesNothing(t *testing.T) {
	pa, pb := goodProviders()
	pb.err = &weather.UpstreamError{Provider: "Tomorrow.io", StatusCode: http.StatusBadGateway, Message: "down"}
	e, db := newTestServer(t, pa, pb)

	rec := doJSON(t, e, http.MethodGet, "/weather/compare/Berlin", "", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status: got %d, want 502", rec.Code)
	}

	var total int
	if err := db.QueryRow("SELECT COUNT(*) FROM weather_readings").Scan(&total); err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 0 {
		t.Fatalf("rows written on failure: %d, want 0", total)
	}
}

func TestInitialWeather(t *testing.T) {
	pa, pb := goodProviders()
	e, _ := newTestServer(t, pa, pb)

	rec := doJSON(t, e, http.MethodGet, "/initial-weather", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("empty store: status %d, want 404", rec.Code)
	}

	if rec := doJSON(t, e, http.MethodGet, "/weather/compare/Berlin", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("compare: status %d", rec.Code)
	}

	rec = doJSON(t, e, http.MethodGet, "/initial-weather", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("initial-weather: status %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		City       string `json:"city"`
		DataSource string `json:"data_source"`
		IsAverage  bool   `json:"is_average"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.City != "Berlin" {
		t.Fatalf("city: got %q", resp.City)
	}
	// The average row is written last, so it is the most recent.
	if !resp.IsAverage || resp.DataSource != "Average" {
		t.Fatalf("latest row: %+v", resp)
	}
}

func TestCityReading(t *testing.T) {
	pa, pb := goodProviders()
	e, _ := newTestServer(t, pa, pb)

	if rec := doJSON(t, e, http.MethodGet, "/weather/compare/Berlin", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("compare: status %d", rec.Code)
	}

	rec := doJSON(t, e, http.MethodGet, "/weather/Berlin", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("city reading: status %d", rec.Code)
	}
	rec = doJSON(t, e, http.MethodGet, "/weather/Nowhere", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown city: status %d, want 404", rec.Code)
	}
}
