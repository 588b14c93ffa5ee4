// Package historical implements indicators.HistoricalFetcher against the
// upstream aggregates REST endpoint used as a fallback when a symbol's
// slot doesn't yet have enough in-memory bars to compute its own volume
// EMA (§6).
package historical

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/rustyeddy/crossbar/market/indicators"
)

// Client fetches last-72h 1-minute aggregates from the historical REST
// endpoint.
type Client struct {
	baseURL string
	apiKey  string
	http    *retryablehttp.Client
}

// New returns a Client against baseURL, authenticated with apiKey.
func New(baseURL, apiKey string) *Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = log.New(io.Discard, "", log.LstdFlags)
	return &Client{baseURL: baseURL, apiKey: apiKey, http: rc}
}

type aggregatesResponse struct {
	Results []struct {
		T int64   `json:"t"`
		V float64 `json:"v"`
	} `json:"results"`
}

// LastMinuteAggregates fetches 1-minute aggregates for symbol between
// fromMs and toMs, sorted descending, server-limited to limit results.
func (c *Client) LastMinuteAggregates(ctx context.Context, symbol string, fromMs, toMs int64, limit int) ([]indicators.MinuteAggregate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	q := url.Values{}
	q.Set("from_ms", strconv.FormatInt(fromMs, 10))
	q.Set("to_ms", strconv.FormatInt(toMs, 10))
	q.Set("sort", "desc")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("adjusted", "true")
	q.Set("apiKey", c.apiKey)

	reqURL := fmt.Sprintf("%s/v2/aggs/ticker/%s/range/1/minute?%s", c.baseURL, symbol, q.Encode())
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("historical: build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("historical: request %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("historical: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("historical: %s: status %d: %s", symbol, resp.StatusCode, string(data))
	}

	var parsed aggregatesResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("historical: decode response: %w", err)
	}

	out := make([]indicators.MinuteAggregate, len(parsed.Results))
	for i, r := range parsed.Results {
		out[i] = indicators.MinuteAggregate{StartMs: r.T, Volume: r.V}
	}
	return out, nil
}

var _ indicators.HistoricalFetcher = (*Client)(nil)
