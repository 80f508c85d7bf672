package storage

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// eventHeader is the first row of the event store CSV file.
var eventHeader = []string{"Date", "Year", "Title", "Description"}

// EventStore defines the operations the event-resolution layer needs from
// the local record store.
type EventStore interface {
	HasEvents(month, day int) bool
	EventsFor(month, day int) []HistoricalEvent
	RandomEvent() *HistoricalEvent
	Append(date, year, title, description string) error
}

// CSVEventStore implements EventStore backed by an append-only CSV file.
//
// The store doubles as a write-through cache for the remote event provider
// and as the only data source in offline mode. Rows are never rewritten or
// deleted; repeated fetches for the same date may append duplicate rows,
// which is tolerated. Read paths treat a missing or unreadable file as an
// empty store.
type CSVEventStore struct {
	path string
}

// NewEventStore opens the event store at path, creating the file with its
// header row if it does not exist yet.
func NewEventStore(path string) (*CSVEventStore, error) {
	s := &CSVEventStore{path: path}
	if err := s.Init(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the location of the backing CSV file.
func (s *CSVEventStore) Path() string {
	return s.path
}

// Init ensures the backing file exists with the header row. Idempotent.
func (s *CSVEventStore) Init() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create store directory: %w", err)
		}
	}

	if _, err := os.Stat(s.path); err == nil {
		return nil
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create event store: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(eventHeader); err != nil {
		return fmt.Errorf("write event store header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush event store header: %w", err)
	}
	return nil
}

// datePattern builds the "-MM-DD" suffix used to match records for a
// calendar date regardless of the year they were fetched in.
func datePattern(month, day int) string {
	return fmt.Sprintf("-%02d-%02d", month, day)
}

// readRecords loads all data rows from the backing file. A missing or
// unreadable file yields no records; short rows are skipped.
func (s *CSVEventStore) readRecords() []EventRecord {
	f, err := os.Open(s.path)
	if err != nil {
		return nil
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil || len(rows) == 0 {
		return nil
	}

	records := make([]EventRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < 4 {
			continue
		}
		records = append(records, EventRecord{
			Date:        row[0],
			Year:        row[1],
			Title:       row[2],
			Description: row[3],
		})
	}
	return records
}

// HasEvents reports whether at least one stored record matches the given
// month and day.
func (s *CSVEventStore) HasEvents(month, day int) bool {
	pattern := datePattern(month, day)
	for _, rec := range s.readRecords() {
		if strings.HasSuffix(rec.Date, pattern) {
			return true
		}
	}
	return false
}

// EventsFor returns all stored events for the given month and day, in
// insertion order. The result is empty when nothing matches.
func (s *CSVEventStore) EventsFor(month, day int) []HistoricalEvent {
	pattern := datePattern(month, day)
	var events []HistoricalEvent
	for _, rec := range s.readRecords() {
		if !strings.HasSuffix(rec.Date, pattern) {
			continue
		}
		events = append(events, HistoricalEvent{
			Year:  rec.Year,
			Text:  rec.Description,
			Day:   day,
			Month: month,
		})
	}
	return events
}

// RandomEvent picks one stored record uniformly at random, or nil when the
// store is empty.
func (s *CSVEventStore) RandomEvent() *HistoricalEvent {
	records := s.readRecords()
	if len(records) == 0 {
		return nil
	}

	rec := records[rand.Intn(len(records))]
	ev := HistoricalEvent{
		Year: rec.Year,
		Text: rec.Description,
	}
	ev.Month, ev.Day = parseMonthDay(rec.Date)
	return &ev
}

// parseMonthDay extracts the month and day from a YYYY-MM-DD date string.
// Returns zeros when the string does not have that shape.
func parseMonthDay(date string) (month, day int) {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return 0, 0
	}
	m, err1 := strconv.Atoi(parts[1])
	d, err2 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return m, d
}

// Count returns the number of stored records.
func (s *CSVEventStore) Count() int {
	return len(s.readRecords())
}

// Append writes one new record row. Existing rows are never modified.
func (s *CSVEventStore) Append(date, year, title, description string) error {
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open event store for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{date, year, title, description}); err != nil {
		return fmt.Errorf("append event record: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush event record: %w", err)
	}
	return nil
}
