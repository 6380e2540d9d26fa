package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"
)

// DefaultBaseURL is the public Alpha Vantage endpoint.
const DefaultBaseURL = "https://www.alphavantage.co"

// ErrNoData reports a response that is syntactically valid JSON but lacks
// the daily time-series payload (rate limiting, unknown symbol). Callers
// treat it as "no data" rather than a transport failure.
var ErrNoData = errors.New("quotes: no daily series in response")

// Client fetches daily close prices for a symbol.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a quote API client. An empty baseURL selects the public
// endpoint.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewCachedClient is like NewClient but routes requests through an on-disk
// cache whose entries expire daily, so repeated chart redraws within a day
// do not burn API quota.
func NewCachedClient(baseURL, apiKey, cacheDir string) *Client {
	c := NewClient(baseURL, apiKey)
	c.httpClient.Transport = &dailyCache{dir: cacheDir, base: http.DefaultTransport}
	return c
}

// Bar is one raw (date string, close string) pair exactly as the API
// returned it, before any normalization.
type Bar struct {
	Day   string
	Close string
}

// Quote is the latest close for a symbol.
type Quote struct {
	Symbol string
	Day    string
	Close  float64
}

type dailyQuote struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

type seriesResponse struct {
	Series map[string]dailyQuote `json:"Time Series (Daily)"`
}

// DailySeries fetches the daily close history for a symbol as raw bars,
// sorted ascending by date string. A response without the time-series key
// yields ErrNoData.
func (c *Client) DailySeries(ctx context.Context, symbol string) ([]Bar, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	params := url.Values{}
	params.Set("function", "TIME_SERIES_DAILY")
	params.Set("symbol", symbol)
	params.Set("outputsize", "compact")
	params.Set("apikey", c.apiKey)

	apiURL := fmt.Sprintf("%s/query?%s", c.baseURL, params.Encode())

	httpReq, err := http.NewRequestWithContext(ctx, "GET", apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var apiResp seriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(apiResp.Series) == 0 {
		return nil, ErrNoData
	}

	bars := make([]Bar, 0, len(apiResp.Series))
	for day, q := range apiResp.Series {
		bars = append(bars, Bar{Day: day, Close: q.Close})
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Day < bars[j].Day })
	return bars, nil
}

// LatestClose fetches the most recent daily close for a symbol.
func (c *Client) LatestClose(ctx context.Context, symbol string) (Quote, error) {
	bars, err := c.DailySeries(ctx, symbol)
	if err != nil {
		return Quote{}, err
	}

	last := bars[len(bars)-1]
	close, err := strconv.ParseFloat(last.Close, 64)
	if err != nil {
		return Quote{}, fmt.Errorf("parse close price %q: %w", last.Close, err)
	}
	return Quote{Symbol: symbol, Day: last.Day, Close: close}, nil
}
