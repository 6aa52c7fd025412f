package handler_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	_ "github.com/mattn/go-sqlite3"

	"github.com/iliyamo/weather-mood/internal/config"
	"github.com/iliyamo/weather-mood/internal/handler"
	"github.com/iliyamo/weather-mood/internal/repository"
	"github.com/iliyamo/weather-mood/internal/router"
	"github.com/iliyamo/weather-mood/internal/weather"
)

const testSchema = `
CREATE TABLE users (
  id             INTEGER PRIMARY KEY AUTOINCREMENT,
  username       TEXT NOT NULL UNIQUE,
  password_hash  TEXT NOT NULL,
  last_login     TIMESTAMP NOT NULL,
  last_login_lat REAL,
  last_login_lon REAL,
  feeling_score  INTEGER
);

CREATE TABLE weather_readings (
  id          INTEGER PRIMARY KEY AUTOINCREMENT,
  city        TEXT NOT NULL,
  temperature REAL,
  humidity    REAL,
  feels_like  REAL,
  wind_speed  REAL,
  data_source TEXT NOT NULL,
  timestamp   TIMESTAMP NOT NULL,
  is_average  BOOLEAN NOT NULL DEFAULT 0
);
`

const testSecret = "test-secret"

type fakeProvider struct {
	name    string
	reading weather.Reading
	err     error
}

func (f *fakeProvider) Name() string { return f.name }
func (f *fakeProvider) Fetch(ctx context.Context, city string) (weather.Reading, error) {
	return f.reading, f.err
}

// newTestServer wires the full router against an in-memory SQLite store
// so requests exercise the same path as production, middleware included.
func newTestServer(t *testing.T, pa, pb weather.Provider) (*echo.Echo, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := db.Exec(testSchema); err != nil {
		_ = db.Close()
		t.Fatalf("exec schema: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{JWTSecret: testSecret, AccessTTLMin: 30, BcryptCost: 4}
	users := repository.NewUserRepo(db)
	readings := repository.NewWeatherRepo(db)

	e := echo.New()
	router.Register(e,
		handler.NewAuthHandler(cfg, users),
		handler.NewUserHandler(users),
		handler.NewWeatherHandler(readings, pa, pb, ""),
		handler.NewSystemHandler(db),
		cfg.JWTSecret)
	return e, db
}

func doJSON(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func doForm(t *testing.T, e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// registerUser registers via the HTTP endpoint and returns the token.
func registerUser(t *testing.T, e *echo.Echo, username, password string) string {
	t.Helper()
	rec := doJSON(t, e, http.MethodPost, "/register", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("register %s: status %d, body %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Fatalf("unexpected token payload: %+v", resp)
	}
	return resp.AccessToken
}
