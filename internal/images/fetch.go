package images

import (
	"context"
	"sync"
)

// Result carries a completed background fetch back to the caller.
type Result struct {
	Query string
	Image string // base64, empty when no image was resolved
	Err   error
}

// Fetcher runs at most one image fetch at a time on behalf of an
// interactive caller. Issuing a new fetch supersedes any fetch still in
// flight: the older fetch is cancelled and its result, should it complete
// anyway, is discarded rather than applied.
//
// The apply callback runs on the fetch goroutine; callers that own UI
// state must marshal the result back onto their own loop.
type Fetcher struct {
	source *Source

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc

	// runMu serializes access to the Source, whose cache and quota files
	// assume a single writer.
	runMu sync.Mutex
}

// NewFetcher builds a Fetcher over source.
func NewFetcher(source *Source) *Fetcher {
	return &Fetcher{source: source}
}

// Fetch resolves an image for query in the background and invokes apply
// with the result, unless a newer Fetch has superseded this one by then.
func (f *Fetcher) Fetch(ctx context.Context, query string, apply func(Result)) {
	f.mu.Lock()
	f.seq++
	gen := f.seq
	if f.cancel != nil {
		f.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	go func() {
		defer cancel()

		f.runMu.Lock()
		image, err := f.source.ImageFor(fctx, query)
		f.runMu.Unlock()

		f.mu.Lock()
		stale := gen != f.seq
		f.mu.Unlock()
		if stale {
			return
		}
		apply(Result{Query: query, Image: image, Err: err})
	}()
}
