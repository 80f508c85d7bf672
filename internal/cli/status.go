package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/daybook/internal/storage"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version        string `json:"version"`
	EventStorePath string `json:"event_store_path"`
	EventCount     int    `json:"event_count"`
	ImageCacheRows int    `json:"image_cache_rows"`
	DownloadCount  int    `json:"download_count"`
	RemainingQuota int    `json:"remaining_quota"`
	DailyQuota     int    `json:"daily_quota"`
	Online         bool   `json:"online"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	a, err := openApp(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithApp(a)
}

// executeWithApp runs status against a provided app (used by tests).
func (c *StatusCommand) executeWithApp(a *app) error {
	quotaPath, err := a.cfg.QuotaPath()
	if err != nil {
		return err
	}
	quota, err := storage.NewQuotaCounter(quotaPath, a.cfg.Images.DailyQuota)
	if err != nil {
		return fmt.Errorf("opening quota counter: %w", err)
	}

	cachePath, err := a.cfg.ImageCachePath()
	if err != nil {
		return err
	}
	ttl := time.Duration(a.cfg.Images.CacheTTLDays) * 24 * time.Hour
	cache, err := storage.NewImageCache(cachePath, ttl)
	if err != nil {
		return fmt.Errorf("opening image cache: %w", err)
	}

	downloadDir, err := a.cfg.DownloadDirPath()
	if err != nil {
		return err
	}
	downloads := countFiles(downloadDir)

	st := statusJSON{
		Version:        c.version,
		EventStorePath: a.store.Path(),
		EventCount:     a.store.Count(),
		ImageCacheRows: cache.Count(),
		DownloadCount:  downloads,
		RemainingQuota: quota.Remaining(),
		DailyQuota:     a.cfg.Images.DailyQuota,
		Online:         a.source.Online(),
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	return printStatusHuman(st)
}

func printStatusHuman(st statusJSON) error {
	fmt.Println("Daybook Status")
	fmt.Println("==============")
	fmt.Printf("Version:       %s\n", st.Version)
	fmt.Printf("Event store:   %s\n", st.EventStorePath)
	fmt.Printf("Events:        %d\n", st.EventCount)
	fmt.Printf("Image cache:   %d entries, %d downloads\n", st.ImageCacheRows, st.DownloadCount)
	fmt.Printf("Search quota:  %d of %d left today\n", st.RemainingQuota, st.DailyQuota)
	if st.RemainingQuota <= 10 {
		fmt.Println("               (running low)")
	}
	if st.Online {
		fmt.Println("Mode:          online")
	} else {
		fmt.Println("Mode:          offline")
	}
	return nil
}

// countFiles returns the number of regular files in dir; missing dir is 0.
func countFiles(dir string) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n
}
