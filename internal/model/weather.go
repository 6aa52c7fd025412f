package model

import "time"

// Data source labels recorded on weather_readings rows.
const (
	SourceWeatherAPI = "WeatherAPI"
	SourceTomorrowIO = "Tomorrow.io"
	SourceAverage    = "Average"
)

// WeatherReading mirrors the `weather_readings` table.  Rows are append
// only; nothing updates or deletes them.  Numeric fields are nullable
// because providers occasionally omit a value and the synthetic average
// inherits the gap when neither side reported one.
//
// Timestamp records when the row was written, not the provider's own
// observation time.
type WeatherReading struct {
	ID          uint64    // weather_readings.id
	City        string    // weather_readings.city
	Temperature *float64  // weather_readings.temperature (nullable)
	Humidity    *float64  // weather_readings.humidity (nullable)
	FeelsLike   *float64  // weather_readings.feels_like (nullable)
	WindSpeed   *float64  // weather_readings.wind_speed (nullable)
	DataSource  string    // weather_readings.data_source
	Timestamp   time.Time // weather_readings.timestamp
	IsAverage   bool      // weather_readings.is_average
}
