package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/daybook/internal/storage"
)

// blockingSearcher parks every Search call until released, or until its
// context is cancelled.
type blockingSearcher struct {
	release chan struct{}
	links   []string
}

func (s *blockingSearcher) Search(ctx context.Context, query string) ([]string, error) {
	select {
	case <-s.release:
		return s.links, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func newFetcherFixture(t *testing.T, searcher Searcher) (*Fetcher, *httptest.Server) {
	t.Helper()
	dir := t.TempDir()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("bytes"))
	}))
	t.Cleanup(srv.Close)

	cache, err := storage.NewImageCache(filepath.Join(dir, "cache.csv"), 0)
	require.NoError(t, err)
	quota, err := storage.NewQuotaCounter(filepath.Join(dir, "quota.json"), 95)
	require.NoError(t, err)
	downloader, err := NewDownloader(filepath.Join(dir, "dl"), time.Second)
	require.NoError(t, err)

	source, err := NewSource(cache, quota, searcher, downloader, nil)
	require.NoError(t, err)

	return NewFetcher(source), srv
}

func TestFetch_DeliversResult(t *testing.T) {
	searcher := &blockingSearcher{release: make(chan struct{})}
	fetcher, srv := newFetcherFixture(t, searcher)
	searcher.links = []string{srv.URL + "/a.png"}
	close(searcher.release)

	results := make(chan Result, 1)
	fetcher.Fetch(context.Background(), "moon", func(r Result) { results <- r })

	select {
	case r := <-results:
		require.NoError(t, r.Err)
		assert.Equal(t, "moon", r.Query)
		assert.NotEmpty(t, r.Image)
	case <-time.After(5 * time.Second):
		t.Fatal("fetch result never delivered")
	}
}

func TestFetch_NewFetchSupersedesInFlightOne(t *testing.T) {
	searcher := &blockingSearcher{release: make(chan struct{})}
	fetcher, srv := newFetcherFixture(t, searcher)
	searcher.links = []string{srv.URL + "/a.png"}

	results := make(chan Result, 2)
	apply := func(r Result) { results <- r }

	ctx := context.Background()
	fetcher.Fetch(ctx, "stale query", apply)
	fetcher.Fetch(ctx, "current query", apply)
	close(searcher.release)

	select {
	case r := <-results:
		assert.Equal(t, "current query", r.Query, "only the latest fetch may apply")
	case <-time.After(5 * time.Second):
		t.Fatal("fetch result never delivered")
	}

	select {
	case r := <-results:
		t.Fatalf("superseded fetch %q must be discarded", r.Query)
	case <-time.After(200 * time.Millisecond):
	}
}
