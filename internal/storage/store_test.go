package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore creates an event store backed by a temp file.
func openTestStore(t *testing.T) *CSVEventStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.csv")
	store, err := NewEventStore(path)
	require.NoError(t, err)
	return store
}

func TestInit_CreatesFileWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "events.csv")
	_, err := NewEventStore(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Date,Year,Title,Description\n", string(data))
}

func TestInit_Idempotent(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Append("2025-07-20", "1969", "Event from 1969", "Apollo 11 lands"))

	// Re-initializing must not truncate existing data.
	require.NoError(t, store.Init())
	assert.Equal(t, 1, store.Count())
}

func TestAppend_EventsFor_Roundtrip(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Append("2025-07-20", "1969", "Event from 1969", "Apollo 11 lands"))
	require.NoError(t, store.Append("2025-07-20", "1944", "Event from 1944", "Hitler assassination attempt fails"))
	require.NoError(t, store.Append("2025-03-01", "1872", "Event from 1872", "Yellowstone established"))

	events := store.EventsFor(7, 20)
	require.Len(t, events, 2)

	// Insertion order, projected to year/text with the requested date.
	assert.Equal(t, HistoricalEvent{Year: "1969", Text: "Apollo 11 lands", Day: 20, Month: 7}, events[0])
	assert.Equal(t, HistoricalEvent{Year: "1944", Text: "Hitler assassination attempt fails", Day: 20, Month: 7}, events[1])
}

func TestEventsFor_MatchesSuffixNotYear(t *testing.T) {
	store := openTestStore(t)

	// Same month/day cached in different fetch years must both match.
	require.NoError(t, store.Append("2024-07-20", "1969", "Event from 1969", "Apollo 11 lands"))
	require.NoError(t, store.Append("2025-07-20", "1976", "Event from 1976", "Viking 1 lands on Mars"))

	events := store.EventsFor(7, 20)
	assert.Len(t, events, 2)
	assert.True(t, store.HasEvents(7, 20))
}

func TestEventsFor_ZeroPadding(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Append("2025-03-05", "1953", "Event from 1953", "Stalin dies"))

	assert.Len(t, store.EventsFor(3, 5), 1)
	assert.Empty(t, store.EventsFor(3, 50))
	assert.False(t, store.HasEvents(5, 3))
}

func TestEventsFor_EmptyStore(t *testing.T) {
	store := openTestStore(t)
	assert.Empty(t, store.EventsFor(1, 1))
	assert.False(t, store.HasEvents(1, 1))
}

func TestMissingFileReadsAsEmpty(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, os.Remove(store.Path()))

	assert.Empty(t, store.EventsFor(7, 20))
	assert.False(t, store.HasEvents(7, 20))
	assert.Nil(t, store.RandomEvent())
	assert.Equal(t, 0, store.Count())
}

func TestRandomEvent_EmptyStoreReturnsNil(t *testing.T) {
	store := openTestStore(t)
	assert.Nil(t, store.RandomEvent())
}

func TestRandomEvent_SingleRecord(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Append("2025-07-20", "1969", "Event from 1969", "Apollo 11 lands"))

	ev := store.RandomEvent()
	require.NotNil(t, ev)
	assert.Equal(t, "1969", ev.Year)
	assert.Equal(t, "Apollo 11 lands", ev.Text)
	assert.Equal(t, 7, ev.Month)
	assert.Equal(t, 20, ev.Day)
}

func TestRandomEvent_PicksFromAllRecords(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Append("2025-01-01", "1801", "Event from 1801", "a"))
	require.NoError(t, store.Append("2025-02-02", "1902", "Event from 1902", "b"))
	require.NoError(t, store.Append("2025-03-03", "2003", "Event from 2003", "c"))

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		ev := store.RandomEvent()
		require.NotNil(t, ev)
		seen[ev.Year] = true
	}
	assert.Len(t, seen, 3, "all records should be reachable")
}

func TestAppend_NeverOverwrites(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Append("2025-07-20", "1969", "Event from 1969", "Apollo 11 lands"))
	require.NoError(t, store.Append("2025-07-20", "1969", "Event from 1969", "Apollo 11 lands"))

	// Duplicates are tolerated, not collapsed.
	assert.Equal(t, 2, store.Count())
	assert.Len(t, store.EventsFor(7, 20), 2)
}

func TestReadRecords_SkipsShortRows(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Append("2025-07-20", "1969", "Event from 1969", "Apollo 11 lands"))

	// Corrupt the file with a truncated row.
	f, err := os.OpenFile(store.Path(), os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("2025-07-20,1970\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	assert.Len(t, store.EventsFor(7, 20), 1)
}

func TestAppend_QuotedFields(t *testing.T) {
	store := openTestStore(t)
	text := `The "Eagle" has landed, Tranquility Base`
	require.NoError(t, store.Append("2025-07-20", "1969", "Event from 1969", text))

	events := store.EventsFor(7, 20)
	require.Len(t, events, 1)
	assert.Equal(t, text, events[0].Text)
}
