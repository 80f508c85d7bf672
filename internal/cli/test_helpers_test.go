package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/runnerr0/daybook/internal/config"
	"github.com/runnerr0/daybook/internal/events"
	"github.com/runnerr0/daybook/internal/storage"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// newTestApp wires an offline app over a temp data directory.
func newTestApp(t *testing.T) *app {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Storage.Path = t.TempDir()

	eventsPath, err := cfg.EventsPath()
	require.NoError(t, err)
	store, err := storage.NewEventStore(eventsPath)
	require.NoError(t, err)

	logger := newLogger("error")
	source := events.NewSource(store, events.NewClient("http://127.0.0.1:0", 0), logger)
	source.SetOnline(false)

	return &app{cfg: cfg, store: store, source: source, log: logger}
}

// seedEvents appends a couple of July 20 records to the app's store.
func seedEvents(t *testing.T, a *app) {
	t.Helper()
	require.NoError(t, a.store.Append("2025-07-20", "1969", "Event from 1969", "Apollo 11 lands"))
	require.NoError(t, a.store.Append("2025-07-20", "1944", "Event from 1944", "Assassination attempt on Hitler fails"))
}

// touchFile creates an empty file at dir/name and returns its path.
func touchFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	return path
}
