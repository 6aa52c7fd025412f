package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/weather-mood/internal/model"
)

// WeatherRepo persists weather readings.  Rows are append only; there is
// no update or delete path and history accumulates without retention.
type WeatherRepo struct{ DB *sql.DB }

func NewWeatherRepo(db *sql.DB) *WeatherRepo { return &WeatherRepo{DB: db} }

const readingColumns = "id,city,temperature,humidity,feels_like,wind_speed,data_source,timestamp,is_average"

// InsertComparison writes one comparison's rows (two provider readings
// plus the synthetic average) in a single transaction.  Either all rows
// land or none do.
func (r *WeatherRepo) InsertComparison(ctx context.Context, readings []model.WeatherReading) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for _, w := range readings {
		if err := insertReadingTx(ctx, tx, w); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func insertReadingTx(ctx context.Context, tx *sql.Tx, w model.WeatherReading) error {
	_, err := tx.ExecContext(ctx,
		"INSERT INTO weather_readings (city, temperature, humidity, feels_like, wind_speed, data_source, timestamp, is_average) VALUES (?,?,?,?,?,?,?,?)",
		w.City, nullFloat(w.Temperature), nullFloat(w.Humidity), nullFloat(w.FeelsLike),
		nullFloat(w.WindSpeed), w.DataSource, w.Timestamp, w.IsAverage)
	return err
}

// Latest returns the most recently written reading from any source.
func (r *WeatherRepo) Latest(ctx context.Context) (model.WeatherReading, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+readingColumns+" FROM weather_readings ORDER BY id DESC LIMIT 1")
	return scanReading(row)
}

// LatestByCity returns the most recently written reading for one city.
func (r *WeatherRepo) LatestByCity(ctx context.Context, city string) (model.WeatherReading, error) {
	row := r.DB.QueryRowContext(ctx,
		"SELECT "+readingColumns+" FROM weather_readings WHERE city=? ORDER BY id DESC LIMIT 1", city)
	return scanReading(row)
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func scanReading(s rowScanner) (model.WeatherReading, error) {
	var (
		w                      model.WeatherReading
		temp, hum, feels, wind sql.NullFloat64
	)
	err := s.Scan(&w.ID, &w.City, &temp, &hum, &feels, &wind, &w.DataSource, &w.Timestamp, &w.IsAverage)
	if err != nil {
		return model.WeatherReading{}, err
	}
	if temp.Valid {
		w.Temperature = &temp.Float64
	}
	if hum.Valid {
		w.Humidity = &hum.Float64
	}
	if feels.Valid {
		w.FeelsLike = &feels.Float64
	}
	if wind.Valid {
		w.WindSpeed = &wind.Float64
	}
	return w, nil
}
