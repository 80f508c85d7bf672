package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Downloader streams remote files into a local download directory.
type Downloader struct {
	dir        string
	httpClient *http.Client
}

// NewDownloader builds a downloader writing into dir, creating it if
// needed.
func NewDownloader(dir string, timeout time.Duration) (*Downloader, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create downloads directory: %w", err)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Downloader{
		dir:        dir,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Dir returns the download directory.
func (d *Downloader) Dir() string {
	return d.dir
}

// Download fetches rawURL into a uniquely named file and returns its path.
// The partial file is removed on failure.
func (d *Downloader) Download(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download: status %d", resp.StatusCode)
	}

	ext := ".png"
	if u, err := url.Parse(rawURL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}
	dest := filepath.Join(d.dir, fmt.Sprintf("image_%s%s", uuid.NewString(), ext))

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create download file: %w", err)
	}

	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("write download file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("close download file: %w", err)
	}
	return dest, nil
}
