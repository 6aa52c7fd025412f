package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/weather-mood/internal/handler"
	"github.com/iliyamo/weather-mood/internal/middleware"
)

// Register wires every route onto the provided Echo instance.  Weather
// and auth endpoints are public; the location, feeling and proximity
// endpoints require a valid bearer token.
func Register(e *echo.Echo, a *handler.AuthHandler, u *handler.UserHandler,
	w *handler.WeatherHandler, s *handler.SystemHandler, jwtSecret string) {

	// Liveness and connectivity checks.
	e.GET("/", handler.Root)
	e.GET("/healthz", handler.Health)
	e.GET("/test-db", s.TestDB)

	// Session endpoints.  /token takes form fields, /register takes JSON.
	e.POST("/register", a.Register)
	e.POST("/token", a.Login)

	// Weather endpoints.  The static "compare" segment takes precedence
	// over the :city parameter, so both routes can coexist.
	e.GET("/weather/compare/:city", w.Compare)
	e.GET("/weather/:city", w.CityReading)
	e.GET("/initial-weather", w.InitialWeather)

	// Authenticated endpoints.
	g := e.Group("", middleware.JWTAuth(jwtSecret))
	g.POST("/update-location", u.UpdateLocation)
	g.POST("/update-feeling", u.UpdateFeeling)
	g.GET("/nearby-scores", u.NearbyScores)
}
