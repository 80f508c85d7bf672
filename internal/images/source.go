package images

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/runnerr0/daybook/internal/storage"
)

// LowQuotaThreshold is the remaining-call count at which callers should
// start warning the user.
const LowQuotaThreshold = 10

// Source resolves an image for a query. Lookup order: quota gate, local
// cache, remote search plus download. Quota is spent once per search call
// that reaches the provider, never for cache hits, and never more than
// once per resolution.
type Source struct {
	cache      *storage.ImageCache
	quota      *storage.QuotaCounter
	searcher   Searcher
	downloader *Downloader
	log        *slog.Logger
	fileExt    string
}

// NewSource wires a Source and purges downloads older than the cache TTL.
// All collaborators are required; a nil searcher means credentials were
// never configured, which is a construction-time error.
func NewSource(cache *storage.ImageCache, quota *storage.QuotaCounter, searcher Searcher, downloader *Downloader, logger *slog.Logger) (*Source, error) {
	if searcher == nil {
		return nil, ErrMissingCredentials
	}
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := storage.PurgeOldDownloads(downloader.Dir(), storage.DefaultImageTTL); err != nil {
		logger.Warn("purging old downloads failed", "err", err)
	}

	return &Source{
		cache:      cache,
		quota:      quota,
		searcher:   searcher,
		downloader: downloader,
		log:        logger,
		fileExt:    ".png",
	}, nil
}

// RemainingQuota returns the current daily remote-search budget.
func (s *Source) RemainingQuota() int {
	return s.quota.Remaining()
}

// ImageFor returns the base64-encoded bytes of an image for query, or an
// empty string when no image is available.
//
// An empty result can mean either "nothing found" or "quota exhausted,
// not attempted"; callers distinguish the two via RemainingQuota. The
// returned error reflects only local persistence failures, never network
// trouble, which is logged and degraded to an empty result.
func (s *Source) ImageFor(ctx context.Context, query string) (string, error) {
	if s.quota.Remaining() <= 0 {
		s.log.Info("image search quota exhausted", "query", query)
		return "", nil
	}

	if entry, ok := s.cache.Lookup(query); ok {
		data, err := os.ReadFile(entry.LocalPath)
		if err == nil {
			return base64.StdEncoding.EncodeToString(data), nil
		}
		// The cache validated existence a moment ago; losing the race is
		// treated like any other miss.
		s.log.Warn("cached image unreadable, re-fetching", "path", entry.LocalPath, "err", err)
	}

	links, err := s.searcher.Search(ctx, query)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) {
			// The request reached the provider, so it counts.
			if qerr := s.quota.ConsumeOne(); qerr != nil {
				return "", qerr
			}
		}
		s.log.Warn("image search failed", "query", query, "err", err)
		return "", nil
	}

	if err := s.quota.ConsumeOne(); err != nil {
		return "", err
	}

	for _, link := range links {
		if !s.hasRequiredExt(link) {
			continue
		}

		localPath, err := s.downloader.Download(ctx, link)
		if err != nil {
			s.log.Warn("image download failed", "url", link, "err", err)
			continue
		}

		if err := s.cache.Store(query, link, localPath); err != nil {
			return "", fmt.Errorf("cache image: %w", err)
		}

		data, err := os.ReadFile(localPath)
		if err != nil {
			return "", fmt.Errorf("read downloaded image: %w", err)
		}
		return base64.StdEncoding.EncodeToString(data), nil
	}

	s.log.Info("no usable image candidate", "query", query, "candidates", len(links))
	return "", nil
}

// hasRequiredExt reports whether the URL path ends with the required image
// file extension, ignoring query strings and case.
func (s *Source) hasRequiredExt(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return strings.HasSuffix(strings.ToLower(u.Path), s.fileExt)
}
