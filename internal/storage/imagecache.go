package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// imageCacheHeader is the first row of the image cache CSV file.
var imageCacheHeader = []string{"query", "url", "timestamp", "local_path"}

// DefaultImageTTL is how long a cached image is trusted before a lookup
// treats it as a miss.
const DefaultImageTTL = 7 * 24 * time.Hour

// ImageCache maps free-text queries to previously downloaded images.
//
// Entries are appended, never rewritten; repeated queries may leave
// multiple rows and the first valid one in scan order wins. Staleness and
// deleted local files are handled lazily at lookup time rather than by a
// background sweep.
type ImageCache struct {
	path string
	ttl  time.Duration

	now func() time.Time
}

// NewImageCache opens the image cache at path, creating the file with its
// header row if it does not exist yet. A non-positive ttl falls back to
// DefaultImageTTL.
func NewImageCache(path string, ttl time.Duration) (*ImageCache, error) {
	if ttl <= 0 {
		ttl = DefaultImageTTL
	}
	c := &ImageCache{path: path, ttl: ttl, now: time.Now}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create image cache directory: %w", err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		return c, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create image cache: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(imageCacheHeader); err != nil {
		return nil, fmt.Errorf("write image cache header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush image cache header: %w", err)
	}
	return c, nil
}

// Lookup returns the first cached entry for query that is still within the
// TTL and whose downloaded file still exists on disk. Stale or dangling
// rows are skipped, effectively treating them as misses.
func (c *ImageCache) Lookup(query string) (ImageCacheEntry, bool) {
	f, err := os.Open(c.path)
	if err != nil {
		return ImageCacheEntry{}, false
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil || len(rows) == 0 {
		return ImageCacheEntry{}, false
	}

	for _, row := range rows[1:] {
		if len(row) < 4 || row[0] != query {
			continue
		}

		ts, err := time.Parse(time.RFC3339, row[2])
		if err != nil {
			continue
		}
		if c.now().Sub(ts) > c.ttl {
			continue
		}
		if _, err := os.Stat(row[3]); err != nil {
			continue
		}

		return ImageCacheEntry{
			Query:     row[0],
			URL:       row[1],
			Timestamp: ts,
			LocalPath: row[3],
		}, true
	}
	return ImageCacheEntry{}, false
}

// Store appends a new query-to-image mapping. Earlier rows for the same
// query are left in place.
func (c *ImageCache) Store(query, url, localPath string) error {
	f, err := os.OpenFile(c.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open image cache for append: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	row := []string{query, url, c.now().Format(time.RFC3339), localPath}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("append image cache entry: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush image cache entry: %w", err)
	}
	return nil
}

// Count returns the number of cached rows, including stale ones.
func (c *ImageCache) Count() int {
	f, err := os.Open(c.path)
	if err != nil {
		return 0
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil || len(rows) == 0 {
		return 0
	}
	return len(rows) - 1
}

// PurgeOldDownloads removes files under dir whose modification time is
// older than olderThan, and returns how many were deleted. Cache rows
// pointing at removed files are pruned lazily by Lookup. A missing dir is
// not an error.
func PurgeOldDownloads(dir string, olderThan time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read downloads directory: %w", err)
	}

	cutoff := time.Now().Add(-olderThan)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return removed, fmt.Errorf("remove old download: %w", err)
		}
		removed++
	}
	return removed, nil
}
