package database

import (
	"context"
	"database/sql"
)

// Username uniqueness is enforced here by the database instead of an
// application-level pre-check, so concurrent registrations of the same
// name cannot both succeed.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id             BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		username       VARCHAR(191)    NOT NULL,
		password_hash  VARCHAR(255)    NOT NULL,
		last_login     DATETIME        NOT NULL,
		last_login_lat DOUBLE          NULL,
		last_login_lon DOUBLE          NULL,
		feeling_score  INT             NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_username (username)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS weather_readings (
		id          BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		city        VARCHAR(191)    NOT NULL,
		temperature DOUBLE          NULL,
		humidity    DOUBLE          NULL,
		feels_like  DOUBLE          NULL,
		wind_speed  DOUBLE          NULL,
		data_source VARCHAR(64)     NOT NULL,
		timestamp   DATETIME        NOT NULL,
		is_average  TINYINT(1)      NOT NULL DEFAULT 0,
		PRIMARY KEY (id),
		KEY idx_weather_city (city)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

var dropStatements = []string{
	`DROP TABLE IF EXISTS weather_readings`,
	`DROP TABLE IF EXISTS users`,
}

// Setup creates the application tables.  When drop is true the existing
// tables are removed first so the schema is rebuilt from scratch.  It is
// meant to be run once from the command line, not at every startup.
func Setup(ctx context.Context, db *sql.DB, drop bool) error {
	if drop {
		for _, stmt := range dropStatements {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
	}
	for _, stmt := range createStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
