package models

import "time"

// RateSnapshot persists one fetched rate table as JSON so the engine can
// fall back to the last known good rates when the live source is down.
type RateSnapshot struct {
	SnapshotID string    `db:"snapshot_id"`
	Rates      []byte    `db:"rates"` // JSON object: currency code -> rate per EUR
	FetchedAt  time.Time `db:"fetched_at"`
}
