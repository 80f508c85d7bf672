package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/daybook/internal/storage"
)

// pruneJSON is the JSON output structure for the prune command.
type pruneJSON struct {
	Removed int  `json:"removed"`
	DryRun  bool `json:"dry_run"`
}

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	dir, err := cfg.DownloadDirPath()
	if err != nil {
		return err
	}
	return c.executeWithDir(dir)
}

// executeWithDir prunes a provided download directory (used by tests).
func (c *PruneCommand) executeWithDir(dir string) error {
	olderThan, err := parseDuration(c.OlderThan)
	if err != nil {
		return fmt.Errorf("invalid --older-than value %q: %w", c.OlderThan, err)
	}

	var removed int
	if c.DryRun {
		removed = countOlderThan(dir, olderThan)
	} else {
		removed, err = storage.PurgeOldDownloads(dir, olderThan)
		if err != nil {
			return fmt.Errorf("prune failed: %w", err)
		}
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(pruneJSON{Removed: removed, DryRun: c.DryRun})
	}

	if c.DryRun {
		fmt.Printf("Would remove %d downloaded image(s).\n", removed)
	} else {
		fmt.Printf("Removed %d downloaded image(s).\n", removed)
	}
	return nil
}

// countOlderThan counts regular files in dir older than the limit without
// touching them.
func countOlderThan(dir string, olderThan time.Duration) int {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}

	cutoff := time.Now().Add(-olderThan)
	n := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if !info.ModTime().After(cutoff) {
			n++
		}
	}
	return n
}
