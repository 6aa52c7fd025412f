package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column in the database.  The json
// tags are omitted because these structs are used internally by the
// repository layer; handlers define separate response types.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique username (case-sensitive).
//  PasswordHash – bcrypt hashed password; plaintext is never stored.
//  LastLogin    – set at registration, overwritten on each location update.
//  LastLoginLat – latitude of the last reported location (nil until first update).
//  LastLoginLon – longitude of the last reported location (nil until first update).
//  FeelingScore – self-reported weather feeling (nil until first update).
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	LastLogin    time.Time // users.last_login
	LastLoginLat *float64  // users.last_login_lat (nullable)
	LastLoginLon *float64  // users.last_login_lon (nullable)
	FeelingScore *int64    // users.feeling_score (nullable)
}
