// Package metricsclient reads the dashboard snapshot from a running portal API.
package metricsclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/domain"
	"github.com/franquianet/portal/infrastructure/service/logger"
)

// MetricsPath is the dashboard endpoint relative to the API base URL.
const MetricsPath = "/api/dashboard/metrics"

const DefaultTimeout = 15 * time.Second

var (
	ErrUnexpectedStatus = errors.New("unexpected status from metrics endpoint")
	ErrMalformedBody    = errors.New("malformed metrics response")
)

type envelope struct {
	Status  bool                    `json:"status"`
	Message string                  `json:"message"`
	Data    *domain.MetricsSnapshot `json:"data"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     logger.Logger
}

var _ outbound.MetricsSource = (*Client)(nil)

func New(baseURL, token string, timeout time.Duration, log logger.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// Snapshot satisfies outbound.MetricsSource.
func (c *Client) Snapshot(ctx context.Context) (domain.MetricsSnapshot, error) {
	return c.Fetch(ctx)
}

// Fetch GETs the metrics endpoint with the bearer token, unwraps the
// response envelope and validates the counts.
func (c *Client) Fetch(ctx context.Context) (domain.MetricsSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+MetricsPath, nil)
	if err != nil {
		return domain.MetricsSnapshot{}, fmt.Errorf("failed to create metrics request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "metrics request failed", err, map[string]interface{}{"url": req.URL.String()})
		return domain.MetricsSnapshot{}, fmt.Errorf("metrics endpoint unavailable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readMessage(resp.Body)
		c.logger.Warn(ctx, "metrics endpoint returned an error", map[string]interface{}{
			"status":  resp.StatusCode,
			"message": msg,
		})
		return domain.MetricsSnapshot{}, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, msg)
	}

	var body envelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.MetricsSnapshot{}, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	if !body.Status || body.Data == nil {
		return domain.MetricsSnapshot{}, fmt.Errorf("%w: %s", ErrMalformedBody, body.Message)
	}
	if err := body.Data.Validate(); err != nil {
		return domain.MetricsSnapshot{}, err
	}

	logger.LogPerformance(ctx, c.logger, "metrics_fetch", time.Since(start), nil)
	return *body.Data, nil
}

func readMessage(r io.Reader) string {
	var body envelope
	raw, err := io.ReadAll(io.LimitReader(r, 4<<10))
	if err != nil {
		return ""
	}
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}
