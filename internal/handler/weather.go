package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/weather-mood/internal/model"
	"github.com/iliyamo/weather-mood/internal/queue"
	"github.com/iliyamo/weather-mood/internal/repository"
	"github.com/iliyamo/weather-mood/internal/service/queue_publisher"
	"github.com/iliyamo/weather-mood/internal/weather"
)

// WeatherHandler fans a city out to both providers, averages the cleaned
// readings and persists the comparison.
type WeatherHandler struct {
	Readings  *repository.WeatherRepo
	ProviderA weather.Provider
	ProviderB weather.Provider
	AMQPURL   string // empty disables reading-stored events
}

func NewWeatherHandler(r *repository.WeatherRepo, a, b weather.Provider, amqpURL string) *WeatherHandler {
	return &WeatherHandler{Readings: r, ProviderA: a, ProviderB: b, AMQPURL: amqpURL}
}

// Compare fetches the city from both providers, persists three rows (one
// per provider plus the synthetic average) in one transaction, and
// returns the raw readings with a formatted average block.  Any provider
// failure aborts before anything is written.
func (h *WeatherHandler) Compare(c echo.Context) error {
	city := c.Param("city")
	if city == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "city required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	readA, readB, err := weather.FetchBoth(ctx, h.ProviderA, h.ProviderB, city)
	if err != nil {
		var ue *weather.UpstreamError
		if errors.As(err, &ue) {
			return c.JSON(ue.StatusCode, echo.Map{"error": ue.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "weather fetch failed"})
	}

	valsA := weather.Clean(readA)
	valsB := weather.Clean(readB)
	avg := weather.Average(valsA, valsB)

	now := time.Now().UTC()
	rows := []model.WeatherReading{
		readingRow(city, readA.Source, valsA, now, false),
		readingRow(city, readB.Source, valsB, now, false),
		readingRow(city, model.SourceAverage, avg, now, true),
	}
	if err := h.Readings.InsertComparison(ctx, rows); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "persist failed"})
	}

	// Best effort; a missing broker must never fail the request.
	if h.AMQPURL != "" {
		go func(evt queue.ReadingStoredEvent) {
			pctx, pcancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer pcancel()
			_ = queue_publisher.PublishReadingStored(pctx, h.AMQPURL, evt)
		}(queue.ReadingStoredEvent{
			City:               city,
			Sources:            []string{readA.Source, readB.Source},
			AverageTemperature: avg.Temperature,
			RecordedAt:         now.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"city":        city,
		"weatherapi":  readA,
		"tomorrow_io": readB,
		"average":     weather.FormatAverage(avg),
		"persisted":   true,
	})
}

// InitialWeather returns the most recently stored reading from any
// source, formatted for display.
func (h *WeatherHandler) InitialWeather(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	w, err := h.Readings.Latest(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no weather data available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, readingView(w))
}

// CityReading returns the most recent stored reading for one city.
func (h *WeatherHandler) CityReading(c echo.Context) error {
	city := c.Param("city")

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	w, err := h.Readings.LatestByCity(ctx, city)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "city not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, readingView(w))
}

func readingRow(city, source string, v weather.Values, ts time.Time, isAvg bool) model.WeatherReading {
	return model.WeatherReading{
		City:        city,
		Temperature: v.Temperature,
		Humidity:    v.Humidity,
		FeelsLike:   v.FeelsLike,
		WindSpeed:   v.WindSpeed,
		DataSource:  source,
		Timestamp:   ts,
		IsAverage:   isAvg,
	}
}

func readingView(w model.WeatherReading) echo.Map {
	return echo.Map{
		"city":        w.City,
		"temperature": weather.FormatValue(w.Temperature, "°F"),
		"humidity":    weather.FormatValue(w.Humidity, "%"),
		"feels_like":  weather.FormatValue(w.FeelsLike, "°F"),
		"wind_speed":  weather.FormatValue(w.WindSpeed, " mph"),
		"data_source": w.DataSource,
		"timestamp":   w.Timestamp.UTC().Format(time.RFC3339),
		"is_average":  w.IsAverage,
	}
}
