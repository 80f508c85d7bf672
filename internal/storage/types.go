package storage

import "time"

// HistoricalEvent is a single "on this day" event as presented to the user.
type HistoricalEvent struct {
	Year  string
	Text  string
	Day   int
	Month int
}

// EventRecord is one persisted row of the event store. Date carries the
// year the record was fetched, not the year of the event itself; lookups
// match only the "-MM-DD" suffix.
type EventRecord struct {
	Date        string // YYYY-MM-DD
	Year        string
	Title       string
	Description string
}

// ImageCacheEntry maps a free-text search query to a previously resolved
// image: its remote URL and the locally downloaded copy.
type ImageCacheEntry struct {
	Query     string
	URL       string
	Timestamp time.Time
	LocalPath string
}

// QuotaState is the persisted remote image-search budget for the current
// calendar day.
type QuotaState struct {
	LastReset time.Time `json:"last_reset"`
	CallsLeft int       `json:"calls_left"`
}
