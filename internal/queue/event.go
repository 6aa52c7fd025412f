// Package queue defines message payloads exchanged over the message broker.
package queue

// ReadingStoredEvent is published after a weather comparison has been
// persisted.  It carries enough information for downstream consumers to
// log or trigger analytics without querying the primary database.
type ReadingStoredEvent struct {
	City               string   `json:"city"`
	Sources            []string `json:"sources"`
	AverageTemperature *float64 `json:"average_temperature"`
	RecordedAt         string   `json:"recorded_at"`
}
