package weather

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Values is the numeric view of a reading after cleaning its display
// strings.  A nil field means the source did not report a usable number.
type Values struct {
	Temperature *float64
	FeelsLike   *float64
	Humidity    *float64
	WindSpeed   *float64
}

// AverageDisplay is the formatted average block returned to clients.
// Fields render with one decimal place and a unit suffix, or "N/A" when
// neither source reported a value.
type AverageDisplay struct {
	Temperature string `json:"temperature"`
	FeelsLike   string `json:"feels_like"`
	Humidity    string `json:"humidity"`
	WindSpeed   string `json:"wind_speed"`
}

// CleanNumber strips everything but digits, dots and minus signs from a
// display string and parses the remainder as a float.  Cleaning an
// already-clean numeric string is a no-op, so the operation is
// idempotent.
func CleanNumber(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	f, err := strconv.ParseFloat(b.String(), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Clean converts a reading's display strings into numeric values.
// Unparseable fields become nil rather than failing the reading.
func Clean(r Reading) Values {
	return Values{
		Temperature: cleanField(r.Temperature),
		FeelsLike:   cleanField(r.FeelsLike),
		Humidity:    cleanField(r.Humidity),
		WindSpeed:   cleanField(r.WindSpeed),
	}
}

func cleanField(s string) *float64 {
	f, ok := CleanNumber(s)
	if !ok {
		return nil
	}
	return &f
}

// Average combines two cleaned readings field by field: the arithmetic
// mean when both sides report a value, the present side when only one
// does, nil when neither does.
func Average(a, b Values) Values {
	return Values{
		Temperature: averageField(a.Temperature, b.Temperature),
		FeelsLike:   averageField(a.FeelsLike, b.FeelsLike),
		Humidity:    averageField(a.Humidity, b.Humidity),
		WindSpeed:   averageField(a.WindSpeed, b.WindSpeed),
	}
}

func averageField(a, b *float64) *float64 {
	switch {
	case a != nil && b != nil:
		m := (*a + *b) / 2
		return &m
	case a != nil:
		v := *a
		return &v
	case b != nil:
		v := *b
		return &v
	default:
		return nil
	}
}

// FormatValue renders a nullable value with one decimal place and the
// given unit suffix, or "N/A" when the value is absent.
func FormatValue(v *float64, unit string) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%s", *v, unit)
}

// FormatAverage renders an averaged Values block for the API response.
func FormatAverage(v Values) AverageDisplay {
	return AverageDisplay{
		Temperature: FormatValue(v.Temperature, "°F"),
		FeelsLike:   FormatValue(v.FeelsLike, "°F"),
		Humidity:    FormatValue(v.Humidity, "%"),
		WindSpeed:   FormatValue(v.WindSpeed, " mph"),
	}
}

// FetchBoth queries two providers for the same city concurrently.  The
// calls are independent; running them in parallel only changes latency,
// never the result.  If either provider fails the whole operation fails;
// there is no partial success.
func FetchBoth(ctx context.Context, a, b Provider, city string) (Reading, Reading, error) {
	var (
		wg           sync.WaitGroup
		readA, readB Reading
		errA, errB   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		readA, errA = a.Fetch(ctx, city)
	}()
	go func() {
		defer wg.Done()
		readB, errB = b.Fetch(ctx, city)
	}()
	wg.Wait()

	if errA != nil {
		return Reading{}, Reading{}, errA
	}
	if errB != nil {
		return Reading{}, Reading{}, errB
	}
	return readA, readB, nil
}
