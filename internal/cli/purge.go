package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/daybook/internal/config"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Println("⚠ WARNING: This will permanently delete ALL daybook data.")
		fmt.Println("  - The cached historical events")
		fmt.Println("  - The image cache and all downloaded images")
		fmt.Println("  - The search quota state")
		fmt.Println()
		fmt.Println("This action cannot be undone.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	return c.executeWithConfig(cfg)
}

// executeWithConfig deletes all data files of a provided config (used by tests).
func (c *PurgeCommand) executeWithConfig(cfg *config.Config) error {
	eventsPath, err := cfg.EventsPath()
	if err != nil {
		return err
	}
	cachePath, err := cfg.ImageCachePath()
	if err != nil {
		return err
	}
	downloadDir, err := cfg.DownloadDirPath()
	if err != nil {
		return err
	}
	quotaPath, err := cfg.QuotaPath()
	if err != nil {
		return err
	}

	for _, path := range []string{eventsPath, cachePath, quotaPath} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("purge failed: %w", err)
		}
	}
	if err := os.RemoveAll(downloadDir); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	if c.globals != nil && c.globals.JSON {
		out := map[string]interface{}{
			"purged":  true,
			"message": "all data deleted",
		}
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(out)
	}

	fmt.Println("Purged all data. Daybook is empty.")
	return nil
}
