package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/runnerr0/daybook/internal/config"
	"github.com/runnerr0/daybook/internal/events"
	"github.com/runnerr0/daybook/internal/images"
	"github.com/runnerr0/daybook/internal/storage"
)

// app bundles the wired event-side components a command needs.
type app struct {
	cfg    *config.Config
	store  *storage.CSVEventStore
	source *events.Source
	log    *slog.Logger
}

// loadConfig resolves the config from --config or the default location.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.Load(globals.Config)
	}
	return config.LoadOrCreate()
}

// newLogger builds a slog logger at the configured level, writing to
// stderr so it never mixes with command output.
func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}

// openApp wires the config, event store, and event source. With --offline
// the source starts offline; otherwise a one-shot connectivity probe picks
// the starting mode.
func openApp(globals *GlobalFlags) (*app, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, err
	}

	eventsPath, err := cfg.EventsPath()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewEventStore(eventsPath)
	if err != nil {
		return nil, fmt.Errorf("opening event store: %w", err)
	}

	logger := newLogger(cfg.Logging.Level)
	client := events.NewClient(cfg.Events.ProviderURL, time.Duration(cfg.Events.TimeoutSeconds)*time.Second)
	source := events.NewSource(store, client, logger)

	if globals != nil && globals.Offline {
		source.SetOnline(false)
	} else {
		source.CheckConnectivity(cfg.Events.ProbeHost, cfg.Events.ProbePort,
			time.Duration(cfg.Events.ProbeTimeoutSecs)*time.Second)
	}

	return &app{cfg: cfg, store: store, source: source, log: logger}, nil
}

// openImageSource wires the image cache, quota counter, search client, and
// downloader. Missing credentials fail here, before any network call.
func openImageSource(cfg *config.Config, logger *slog.Logger) (*images.Source, error) {
	cachePath, err := cfg.ImageCachePath()
	if err != nil {
		return nil, err
	}
	quotaPath, err := cfg.QuotaPath()
	if err != nil {
		return nil, err
	}
	downloadDir, err := cfg.DownloadDirPath()
	if err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.Images.CacheTTLDays) * 24 * time.Hour
	cache, err := storage.NewImageCache(cachePath, ttl)
	if err != nil {
		return nil, fmt.Errorf("opening image cache: %w", err)
	}
	quota, err := storage.NewQuotaCounter(quotaPath, cfg.Images.DailyQuota)
	if err != nil {
		return nil, fmt.Errorf("opening quota counter: %w", err)
	}

	searcher, err := images.NewSearchClient(cfg.Images.SearchURL, cfg.Images.APIKey,
		cfg.Images.SearchEngineID, cfg.Images.FileType, cfg.Images.ResultCount,
		time.Duration(cfg.Images.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, err
	}

	downloader, err := images.NewDownloader(downloadDir, time.Duration(cfg.Images.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, err
	}

	return images.NewSource(cache, quota, searcher, downloader, logger)
}

// eventJSON is the JSON output shape for a single event.
type eventJSON struct {
	Year  string `json:"year"`
	Text  string `json:"text"`
	Month int    `json:"month"`
	Day   int    `json:"day"`
}

// printEvents writes events as human-readable lines or a JSON array.
func printEvents(evs []storage.HistoricalEvent, asJSON bool) error {
	if asJSON {
		out := make([]eventJSON, len(evs))
		for i, ev := range evs {
			out[i] = eventJSON{Year: ev.Year, Text: ev.Text, Month: ev.Month, Day: ev.Day}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if len(evs) == 0 {
		fmt.Println("No events found.")
		return nil
	}
	for _, ev := range evs {
		fmt.Printf("%s  %s\n", ev.Year, ev.Text)
	}
	return nil
}

// printEvent writes one optional event.
func printEvent(ev *storage.HistoricalEvent, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if ev == nil {
			return enc.Encode(nil)
		}
		return enc.Encode(eventJSON{Year: ev.Year, Text: ev.Text, Month: ev.Month, Day: ev.Day})
	}

	if ev == nil {
		fmt.Println("No events found.")
		return nil
	}
	fmt.Printf("%s  %s\n", ev.Year, ev.Text)
	return nil
}

// parseDuration parses a human-friendly duration string like "7d", "24h".
func parseDuration(s string) (time.Duration, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}

	suffix := s[len(s)-1]
	numStr := s[:len(s)-1]

	n, err := strconv.Atoi(numStr)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}

	switch suffix {
	case 'd':
		return time.Duration(n) * 24 * time.Hour, nil
	case 'h':
		return time.Duration(n) * time.Hour, nil
	case 'w':
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case 'm':
		return time.Duration(n) * time.Minute, nil
	default:
		return 0, fmt.Errorf("invalid duration %q (use d, h, w, or m suffix)", s)
	}
}

// validDate checks the CLI-supplied month and day ranges.
func validDate(month, day int) error {
	if month < 1 || month > 12 {
		return fmt.Errorf("month must be 1-12, got %d", month)
	}
	if day < 1 || day > 31 {
		return fmt.Errorf("day must be 1-31, got %d", day)
	}
	return nil
}
