package repository

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// Minimal schema matching internal/database/setup.go for in-memory tests.
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

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := db.Exec(testSchema); err != nil {
		_ = db.Close()
		t.Fatalf("exec schema: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("close db: %v", err)
		}
	})
	return db
}

func ptr(f float64) *float64 { return &f }
