package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
)

// Client is the subset of the catalog/social service used by the engine.
// Calls are fire-and-forget from the engine's point of view.
type Client interface {
	IncrementPlayCount(ctx context.Context, trackID string) error
	ToggleLike(ctx context.Context, trackID string) (liked bool, err error)
}

const userAgent = "airwaves/1.0"

// HTTPClient talks to the catalog service REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a catalog client for baseURL authenticated with token.
func NewHTTPClient(baseURL, token string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// IncrementPlayCount records one counted play of the track.
// Every call carries a fresh idempotency key so that transport retries are
// not double counted.
func (c *HTTPClient) IncrementPlayCount(ctx context.Context, trackID string) error {
	req, err := c.newRequest(ctx, trackID, "plays")
	if err != nil {
		return err
	}
	req.Header.Set("Idempotency-Key", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "http request")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return errors.Newf("unexpected status: %s", resp.Status)
	}
	return nil
}

type likeResponse struct {
	Liked bool `json:"liked"`
}

// ToggleLike flips the viewer's like on the track and returns the new value.
func (c *HTTPClient) ToggleLike(ctx context.Context, trackID string) (bool, error) {
	req, err := c.newRequest(ctx, trackID, "like")
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, errors.Wrap(err, "http request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, errors.Newf("unexpected status: %s", resp.Status)
	}

	var result likeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, errors.Wrap(err, "decode response")
	}
	return result.Liked, nil
}

func (c *HTTPClient) newRequest(ctx context.Context, trackID, action string) (*http.Request, error) {
	if trackID == "" {
		return nil, errors.New("empty track id")
	}
	reqURL := fmt.Sprintf("%s/tracks/%s/%s", c.baseURL, url.PathEscape(trackID), action)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

// Verify HTTPClient implements Client at compile time.
var _ Client = (*HTTPClient)(nil)
