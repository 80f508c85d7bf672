// Package images resolves a representative image for a free-text query,
// consulting the local cache before spending remote-search quota.
package images

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// DefaultSearchURL is the default image search endpoint (Google Custom
// Search JSON API).
const DefaultSearchURL = "https://www.googleapis.com/customsearch/v1"

// DefaultResultCount is how many candidates to request per search; more
// than one because only candidates with the required file type are usable.
const DefaultResultCount = 10

// ErrMissingCredentials is returned when the API key or search engine ID
// is absent. This is a configuration error and fails construction.
var ErrMissingCredentials = errors.New("image search credentials not configured")

// StatusError marks a search request that reached the provider but came
// back with a non-success status. Such calls still count against quota.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("image search: status %d", e.Code)
}

// Searcher returns candidate image URLs for a query in provider-ranked
// order.
type Searcher interface {
	Search(ctx context.Context, query string) ([]string, error)
}

// SearchClient queries a Google-Custom-Search-style image API.
type SearchClient struct {
	baseURL     string
	apiKey      string
	engineID    string
	fileType    string
	resultCount int
	httpClient  *http.Client
}

// NewSearchClient builds a search client. It fails fast with
// ErrMissingCredentials when the API key or engine ID is empty.
func NewSearchClient(baseURL, apiKey, engineID, fileType string, resultCount int, timeout time.Duration) (*SearchClient, error) {
	if apiKey == "" || engineID == "" {
		return nil, ErrMissingCredentials
	}
	if baseURL == "" {
		baseURL = DefaultSearchURL
	}
	if fileType == "" {
		fileType = "png"
	}
	if resultCount <= 0 {
		resultCount = DefaultResultCount
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SearchClient{
		baseURL:     baseURL,
		apiKey:      apiKey,
		engineID:    engineID,
		fileType:    fileType,
		resultCount: resultCount,
		httpClient:  &http.Client{Timeout: timeout},
	}, nil
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

type searchItem struct {
	Link string `json:"link"`
}

// Search issues one image search restricted to the configured file type
// and returns the candidate links in provider order. A non-2xx response is
// reported as a *StatusError so callers can account for quota correctly.
func (c *SearchClient) Search(ctx context.Context, query string) ([]string, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("searchType", "image")
	params.Set("fileType", c.fileType)
	params.Set("num", strconv.Itoa(c.resultCount))

	endpoint := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	var raw searchResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	links := make([]string, 0, len(raw.Items))
	for _, item := range raw.Items {
		if item.Link == "" {
			continue
		}
		links = append(links, item.Link)
	}
	return links, nil
}
