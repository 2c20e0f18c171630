// Package solvedac looks up judge statistics for a BOJ handle on solved.ac.
package solvedac

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public solved.ac v3 API.
const DefaultBaseURL = "https://solved.ac/api/v3"

// Kind tags the outcome of a lookup.
type Kind int

const (
	// Found means the handle exists and Stats is populated.
	Found Kind = iota
	// NotFound means the upstream reported no such handle.
	NotFound
	// TransportError covers network failures, timeouts and unexpected responses.
	TransportError
)

func (k Kind) String() string {
	switch k {
	case Found:
		return "found"
	case NotFound:
		return "not_found"
	default:
		return "transport_error"
	}
}

// Stats is the part of a solved.ac user we track.
type Stats struct {
	SolvedCount int
	Tier        int
}

// Outcome is the tagged result of a lookup.
type Outcome struct {
	Kind  Kind
	Stats Stats
	Err   error // set for TransportError
}

// OK reports whether the lookup produced usable stats. NotFound and
// TransportError both mean the user cannot be evaluated this cycle.
func (o Outcome) OK() bool {
	return o.Kind == Found
}

// Lookuper fetches stats for a handle.
type Lookuper interface {
	Lookup(ctx context.Context, handle string) Outcome
}

// Client queries the solved.ac API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// userShowResponse matches the fields of GET /user/show we read.
type userShowResponse struct {
	Handle      string `json:"handle"`
	SolvedCount int    `json:"solvedCount"`
	Tier        int    `json:"tier"`
}

// Lookup fetches stats for handle. It makes exactly one attempt.
func (c *Client) Lookup(ctx context.Context, handle string) Outcome {
	endpoint := c.baseURL + "/user/show?" + url.Values{"handle": {handle}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return transportError(handle, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportError(handle, fmt.Errorf("request: %w", err))
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Debug("failed to close solved.ac response body", "error", closeErr)
		}
	}()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return Outcome{Kind: NotFound}
	default:
		return transportError(handle, fmt.Errorf("solved.ac api status %d", resp.StatusCode))
	}

	var body userShowResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return transportError(handle, fmt.Errorf("decode response: %w", err))
	}
	if body.SolvedCount < 0 {
		return transportError(handle, fmt.Errorf("negative solved count %d", body.SolvedCount))
	}

	return Outcome{
		Kind:  Found,
		Stats: Stats{SolvedCount: body.SolvedCount, Tier: body.Tier},
	}
}

func transportError(handle string, err error) Outcome {
	slog.Warn("solved.ac lookup failed", "handle", handle, "error", err)
	return Outcome{Kind: TransportError, Err: err}
}
