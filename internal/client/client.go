// Package client is a typed HTTP client for the pinpoint API and a
// line-driven player built on it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/pinpoint/internal/domain/model"
	"github.com/okian/pinpoint/internal/domain/types"
)

const defaultTimeout = 10 * time.Second

// CheckRequest is the body of POST /api/check.
type CheckRequest struct {
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	ImageWidth  float64 `json:"imageWidth"`
	ImageHeight float64 `json:"imageHeight"`
	CharacterID string  `json:"characterId"`
}

type scoreRequest struct {
	Name   string `json:"name"`
	TimeMs int64  `json:"timeMs"`
}

// Client talks to a running pinpoint server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New returns a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Characters lists characters with their target geometry.
func (c *Client) Characters(ctx context.Context) ([]model.Character, error) {
	var out []model.Character
	if err := c.do(ctx, http.MethodGet, "/api/characters", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Check submits a click.
func (c *Client) Check(ctx context.Context, req CheckRequest) (types.CheckResult, error) {
	var out types.CheckResult
	if err := c.do(ctx, http.MethodPost, "/api/check", req, &out); err != nil {
		return types.CheckResult{}, err
	}
	return out, nil
}

// Reset clears found flags on the server.
func (c *Client) Reset(ctx context.Context) error {
	var ack types.Ack
	if err := c.do(ctx, http.MethodPost, "/api/reset", nil, &ack); err != nil {
		return err
	}
	return ackErr(ack)
}

// SubmitScore records a completion time.
func (c *Client) SubmitScore(ctx context.Context, name string, elapsed time.Duration) error {
	var ack types.Ack
	err := c.do(ctx, http.MethodPost, "/api/score", scoreRequest{Name: name, TimeMs: elapsed.Milliseconds()}, &ack)
	if err != nil {
		if ack.Error != "" {
			return fmt.Errorf("%w: %s", ErrRejected, ack.Error)
		}
		return err
	}
	return ackErr(ack)
}

// Scores fetches the leaderboard.
func (c *Client) Scores(ctx context.Context) ([]model.Score, error) {
	var out []model.Score
	if err := c.do(ctx, http.MethodGet, "/api/scores", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func ackErr(ack types.Ack) error {
	if ack.OK {
		return nil
	}
	if ack.Error == "" {
		return ErrRejected
	}
	return fmt.Errorf("%w: %s", ErrRejected, ack.Error)
}

// do sends a JSON request and decodes the response into out. A non-200
// answer yields ErrUnexpectedStatus; a JSON body is still decoded into out
// so callers can read error details.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		rd = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}
	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if jerr := json.Unmarshal(data, out); jerr != nil && resp.StatusCode == http.StatusOK {
			return fmt.Errorf("decode response: %w", jerr)
		}
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s %s: %d", ErrUnexpectedStatus, method, path, resp.StatusCode)
	}
	return nil
}
