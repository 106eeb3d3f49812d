// Package streamclient consumes the project event stream and keeps the
// records a view renders.
package streamclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"realty-stream/internal/models"
	"realty-stream/internal/stream"
)

// DefaultBufferSize is the read size used while consuming a stream.
const DefaultBufferSize = 4096

// StatusError is returned when the server answers with a non-200 status
// instead of opening a stream.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Message)
}

// Client opens project streams against a server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	bufSize    int
}

// NewClient creates a client for the server at baseURL. A nil httpClient
// uses one without an overall timeout, since streams stay open for as long
// as records keep coming.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		bufSize:    DefaultBufferSize,
	}
}

// StreamProjects streams the projects of city, calling onRecord for each one
// as soon as its frame is decoded. It returns nil when the server ends the
// stream normally.
func (c *Client) StreamProjects(ctx context.Context, city string, onRecord func(models.ProjectRecord)) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/scrape/"+url.PathEscape(city), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("open stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return readStatusError(resp)
	}

	err = stream.ReadFrames(resp.Body, make([]byte, c.bufSize), onRecord)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func readStatusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(body))

	var payload models.StreamError
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: msg}
}
