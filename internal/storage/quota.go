package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultDailyQuota is the number of remote image-search calls allowed per
// calendar day.
const DefaultDailyQuota = 95

// QuotaCounter tracks the remaining daily remote-search budget, persisted
// to a JSON file. The counter resets lazily: every entry point compares the
// persisted last-reset date with today and restores the daily maximum when
// a new day has started, so no background timer is needed.
type QuotaCounter struct {
	path     string
	dailyMax int
	state    QuotaState

	now func() time.Time
}

// NewQuotaCounter loads the quota state at path, creating it with a full
// daily budget on first run. A corrupt state file is replaced with a fresh
// full budget rather than treated as fatal. A non-positive dailyMax falls
// back to DefaultDailyQuota.
func NewQuotaCounter(path string, dailyMax int) (*QuotaCounter, error) {
	if dailyMax <= 0 {
		dailyMax = DefaultDailyQuota
	}
	q := &QuotaCounter{path: path, dailyMax: dailyMax, now: time.Now}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read quota state: %w", err)
		}
		q.state = QuotaState{LastReset: q.now(), CallsLeft: dailyMax}
		if err := q.save(); err != nil {
			return nil, err
		}
		return q, nil
	}

	if err := json.Unmarshal(data, &q.state); err != nil {
		q.state = QuotaState{LastReset: q.now(), CallsLeft: dailyMax}
		if err := q.save(); err != nil {
			return nil, err
		}
		return q, nil
	}

	return q, nil
}

// Remaining returns the current number of calls left for today, applying
// the daily reset first. A failed persist of the reset is deferred to the
// next write.
func (q *QuotaCounter) Remaining() int {
	q.maybeReset()
	return q.state.CallsLeft
}

// ConsumeOne decrements the counter by one, flooring at zero, and persists
// the new state immediately.
func (q *QuotaCounter) ConsumeOne() error {
	q.maybeReset()
	if q.state.CallsLeft > 0 {
		q.state.CallsLeft--
	}
	return q.save()
}

// maybeReset restores the full daily budget when the persisted reset date
// is strictly before today. Mid-day calls never top the counter up.
func (q *QuotaCounter) maybeReset() {
	ry, rm, rd := q.state.LastReset.Date()
	ty, tm, td := q.now().Date()
	lastDay := time.Date(ry, rm, rd, 0, 0, 0, 0, time.UTC)
	today := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	if !lastDay.Before(today) {
		return
	}

	q.state = QuotaState{LastReset: q.now(), CallsLeft: q.dailyMax}
	// Best effort here; ConsumeOne will surface persistent write failures.
	_ = q.save()
}

func (q *QuotaCounter) save() error {
	if dir := filepath.Dir(q.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create quota directory: %w", err)
		}
	}

	data, err := json.Marshal(q.state)
	if err != nil {
		return fmt.Errorf("marshal quota state: %w", err)
	}
	if err := os.WriteFile(q.path, data, 0644); err != nil {
		return fmt.Errorf("write quota state: %w", err)
	}
	return nil
}
