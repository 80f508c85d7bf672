// Package events resolves "on this day" historical events, preferring the
// local record store and falling back to a remote provider in online mode.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/runnerr0/daybook/internal/storage"
)

// DefaultBaseURL is the default event provider endpoint.
const DefaultBaseURL = "https://history.muffinlabs.com"

// Provider fetches historical events for a calendar date from a remote API.
type Provider interface {
	FetchEvents(ctx context.Context, month, day int) ([]storage.HistoricalEvent, error)
}

// Client talks to a muffinlabs-style "on this day" API:
// GET {base}/date/{month}/{day} returning {"data":{"Events":[...]}}.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an event provider client. An empty baseURL falls back
// to DefaultBaseURL; a non-positive timeout falls back to 5 seconds.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type apiResponse struct {
	Data apiData `json:"data"`
}

type apiData struct {
	Events []apiEvent `json:"Events"`
}

type apiEvent struct {
	Year string `json:"year"`
	Text string `json:"text"`
}

// FetchEvents retrieves the events for a date. Items missing either the
// year or the text field are skipped; the requested day and month are
// copied onto every returned event.
func (c *Client) FetchEvents(ctx context.Context, month, day int) ([]storage.HistoricalEvent, error) {
	endpoint := fmt.Sprintf("%s/date/%d/%d", c.baseURL, month, day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build event request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("event request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("event provider: status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read event response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode event response: %w", err)
	}

	events := make([]storage.HistoricalEvent, 0, len(raw.Data.Events))
	for _, item := range raw.Data.Events {
		if item.Year == "" || item.Text == "" {
			continue
		}
		events = append(events, storage.HistoricalEvent{
			Year:  item.Year,
			Text:  item.Text,
			Day:   day,
			Month: month,
		})
	}
	return events, nil
}
