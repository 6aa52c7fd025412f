// Package repository defines error values that are reused across
// repositories.  These sentinels let handlers distinguish failure
// scenarios without inspecting driver-specific errors themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrUsernameExists is returned when an insert violates the unique
// username constraint.  Handlers translate this into an HTTP 400.
var ErrUsernameExists = errors.New("username already registered")

// isDuplicate reports whether err is a unique-constraint violation.
// MySQL reports code 1062; SQLite (used in tests) reports a
// "UNIQUE constraint failed" message.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "1062") || strings.Contains(msg, "unique")
}
