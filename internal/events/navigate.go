package events

import "github.com/runnerr0/daybook/internal/storage"

// IndexOf finds the position of ev within its sibling list by value
// equality, or -1 when it is absent. Events carry no identifier, so the
// full (year, text, day, month) tuple is the identity.
func IndexOf(siblings []storage.HistoricalEvent, ev storage.HistoricalEvent) int {
	for i, s := range siblings {
		if s == ev {
			return i
		}
	}
	return -1
}

// Advance moves the selection from current by delta positions within
// siblings, clamping at both ends with no wraparound. It returns the newly
// selected event and its index. A current event not found in siblings is
// treated as position zero; an empty sibling list returns current with
// index -1.
func Advance(siblings []storage.HistoricalEvent, current storage.HistoricalEvent, delta int) (storage.HistoricalEvent, int) {
	if len(siblings) == 0 {
		return current, -1
	}

	idx := IndexOf(siblings, current)
	if idx < 0 {
		idx = 0
	}

	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx > len(siblings)-1 {
		idx = len(siblings) - 1
	}
	return siblings[idx], idx
}
