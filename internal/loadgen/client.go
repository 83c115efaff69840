package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Katlyn627/Netflix-And-Chill-sub001/internal/domain/model"
)

const maxErrorBody = 512

// Client talks to the matching server.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

type matchRequest struct {
	Requester  model.User   `json:"requester"`
	Candidates []model.User `json:"candidates"`
}

// Matches posts one selection request.
func (c *Client) Matches(ctx context.Context, requester model.User, candidates []model.User, limit int) (MatchResponse, error) {
	body, err := json.Marshal(matchRequest{Requester: requester, Candidates: candidates})
	if err != nil {
		return MatchResponse{}, fmt.Errorf("failed to marshal request body: %w", err)
	}

	target := c.baseURL + "/v1/matches"
	if limit > 0 {
		target += "?" + url.Values{"limit": {strconv.Itoa(limit)}}.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return MatchResponse{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return MatchResponse{}, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return MatchResponse{}, fmt.Errorf("%w: status %d: %s", ErrRequestFailed, resp.StatusCode, bytes.TrimSpace(msg))
	}

	var out MatchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return MatchResponse{}, fmt.Errorf("%w: decode response: %w", ErrRequestFailed, err)
	}
	return out, nil
}
