package positionstack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"realty-stream/pkg/metrics"
)

// Result is the first match of a forward geocoding lookup.
type Result struct {
	Latitude  float64
	Longitude float64
	Label     string
	Found     bool
}

// Client calls the positionstack forward geocoding API.
type Client struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a positionstack client. baseURL is the API root, e.g.
// "http://api.positionstack.com".
func NewClient(accessKey, baseURL string, timeout time.Duration) *Client {
	return &Client{
		accessKey: accessKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ForwardGeocode resolves a free-text query restricted to one country. An
// empty result set is reported as Found == false with a nil error.
func (c *Client) ForwardGeocode(ctx context.Context, query, country string) (Result, error) {
	params := url.Values{
		"access_key": {c.accessKey},
		"query":      {query},
		"limit":      {"1"},
	}
	if country != "" {
		params.Set("country", country)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forward?"+params.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.GeocodeAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return Result{}, fmt.Errorf("forward geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Result{}, fmt.Errorf("positionstack API error: status %d: %s", resp.StatusCode, body)
	}

	var fwd forwardResponse
	if err := json.NewDecoder(resp.Body).Decode(&fwd); err != nil {
		return Result{}, fmt.Errorf("decode response: %w", err)
	}
	if len(fwd.Data) == 0 {
		return Result{}, nil
	}

	d := fwd.Data[0]
	return Result{
		Latitude:  d.Latitude,
		Longitude: d.Longitude,
		Label:     d.Label,
		Found:     true,
	}, nil
}

// positionstack API response types.

type forwardResponse struct {
	Data []place `json:"data"`
}

type place struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Label     string  `json:"label"`
	Country   string  `json:"country_code"`
}
