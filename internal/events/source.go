package events

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"strconv"
	"time"

	"github.com/runnerr0/daybook/internal/storage"
)

// Default connectivity probe target (Google public DNS).
const (
	DefaultProbeHost    = "8.8.8.8"
	DefaultProbePort    = 53
	DefaultProbeTimeout = 3 * time.Second
)

// Source resolves events for a calendar date. The record store acts as a
// write-through cache: once a date has been fetched, later lookups are
// served locally even in online mode, and the whole surface keeps working
// offline with no divergent code path for callers.
//
// Network and parse failures never escape EventsByDate; they are logged
// and degraded to an empty result. Only record-store write failures are
// returned as errors.
type Source struct {
	store    storage.EventStore
	provider Provider
	log      *slog.Logger
	online   bool

	now     func() time.Time
	randInt func(n int) int
}

// NewSource builds a Source starting in online mode.
func NewSource(store storage.EventStore, provider Provider, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{
		store:    store,
		provider: provider,
		log:      logger,
		online:   true,
		now:      time.Now,
		randInt:  rand.Intn,
	}
}

// SetOnline toggles between online and offline mode. The change takes
// effect on the next call; nothing already cached is re-fetched.
func (s *Source) SetOnline(online bool) {
	s.online = online
}

// Online reports the current mode.
func (s *Source) Online() bool {
	return s.online
}

// CheckConnectivity probes host:port with a TCP dial and switches the
// source online or offline based on the outcome. Meant for a one-shot
// auto-detect at startup, not continuous polling.
func (s *Source) CheckConnectivity(host string, port int, timeout time.Duration) bool {
	if host == "" {
		host = DefaultProbeHost
	}
	if port <= 0 {
		port = DefaultProbePort
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		s.log.Info("connectivity probe failed, switching offline", "addr", addr, "err", err)
		s.online = false
		return false
	}
	conn.Close()
	s.online = true
	return true
}

// EventsByDate returns all events for the given month and day.
//
// Offline mode reads only the record store. Online mode still prefers the
// store; only a store miss triggers a provider fetch, whose results are
// persisted before being returned. The stored date uses the current
// calendar year, not the event's own year.
func (s *Source) EventsByDate(ctx context.Context, month, day int) ([]storage.HistoricalEvent, error) {
	if !s.online {
		return s.store.EventsFor(month, day), nil
	}

	if s.store.HasEvents(month, day) {
		return s.store.EventsFor(month, day), nil
	}

	fetched, err := s.provider.FetchEvents(ctx, month, day)
	if err != nil {
		s.log.Warn("event fetch failed", "month", month, "day", day, "err", err)
		return nil, nil
	}

	date := fmt.Sprintf("%d-%02d-%02d", s.now().Year(), month, day)
	for _, ev := range fetched {
		title := fmt.Sprintf("Event from %s", ev.Year)
		if err := s.store.Append(date, ev.Year, title, ev.Text); err != nil {
			return nil, fmt.Errorf("persist fetched event: %w", err)
		}
	}
	return fetched, nil
}

// FirstEvent returns the first event for a date, or nil when the date has
// none.
func (s *Source) FirstEvent(ctx context.Context, month, day int) (*storage.HistoricalEvent, error) {
	events, err := s.EventsByDate(ctx, month, day)
	if err != nil || len(events) == 0 {
		return nil, err
	}
	return &events[0], nil
}

// RandomEvent returns a random historical event, or nil when none is
// available.
//
// Offline it picks uniformly from the record store. Online it fetches a
// uniformly random month and day (day capped at 28 to sidestep
// month-length edge cases) and picks one of that date's events.
func (s *Source) RandomEvent(ctx context.Context) (*storage.HistoricalEvent, error) {
	if !s.online {
		return s.store.RandomEvent(), nil
	}

	month := 1 + s.randInt(12)
	day := 1 + s.randInt(28)

	events, err := s.EventsByDate(ctx, month, day)
	if err != nil || len(events) == 0 {
		return nil, err
	}
	return &events[s.randInt(len(events))], nil
}

// PrevDay returns the first event of the calendar day before (month, day).
func (s *Source) PrevDay(ctx context.Context, month, day int) (*storage.HistoricalEvent, error) {
	m, d := shiftDay(month, day, -1)
	return s.FirstEvent(ctx, m, d)
}

// NextDay returns the first event of the calendar day after (month, day).
func (s *Source) NextDay(ctx context.Context, month, day int) (*storage.HistoricalEvent, error) {
	m, d := shiftDay(month, day, +1)
	return s.FirstEvent(ctx, m, d)
}

// shiftDay moves a (month, day) pair by delta days. The year is a fixed
// dummy; only the month/day wrap matters.
func shiftDay(month, day, delta int) (int, int) {
	t := time.Date(2025, time.Month(month), day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, delta)
	return int(t.Month()), t.Day()
}
