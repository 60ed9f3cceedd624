package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"TradeBuddy/internal/model"
)

// VsTraderFetcher implements Fetcher using the vstrader REST API.
type VsTraderFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewVsTraderFetcher creates a new fetcher with optional proxy support.
func NewVsTraderFetcher(baseURL, apiKey, proxyURL string) *VsTraderFetcher {
	return &VsTraderFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *VsTraderFetcher) Name() string { return "vstrader" }

// vsBar is the expected JSON shape from the vstrader API.
type vsBar struct {
	Timestamp int64    `json:"timestamp"`
	Close     *float64 `json:"close"`
}

func (f *VsTraderFetcher) FetchIntraday(ctx context.Context, symbol string) ([]model.PricePoint, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/intraday?symbol=%s&interval=5m", f.BaseURL, url.QueryEscape(symbol))
	return f.fetchBars(ctx, endpoint)
}

func (f *VsTraderFetcher) FetchDaily(ctx context.Context, symbol string, window model.Window) ([]model.PricePoint, error) {
	endpoint := fmt.Sprintf("%s/api/v1/bars/daily?symbol=%s&limit=%d", f.BaseURL, url.QueryEscape(symbol), windowDays(window))
	return f.fetchBars(ctx, endpoint)
}

func (f *VsTraderFetcher) fetchBars(ctx context.Context, endpoint string) ([]model.PricePoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("fetch bars: %w", errRateLimited)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch bars: status %d", resp.StatusCode)
	}

	var bars []vsBar
	if err := json.NewDecoder(resp.Body).Decode(&bars); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("fetch bars: %w", errNoData)
	}
	points := make([]model.PricePoint, 0, len(bars))
	for _, b := range bars {
		if b.Close == nil {
			continue
		}
		points = append(points, model.PricePoint{Time: time.Unix(b.Timestamp, 0).UTC(), Close: *b.Close})
	}
	return points, nil
}
