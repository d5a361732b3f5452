package fplclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"fpl-insights-service/internal/domain"
	"fpl-insights-service/internal/logging"
	"fpl-insights-service/internal/metrics"
)

// Config controls how the client reaches the upstream FPL API.
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// Client fetches FPL payloads and maps transport failures into the APIError
// taxonomy. It holds no cache; callers own caching.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient httpDoer
	logger     *slog.Logger
	metrics    *metrics.Recorder
	now        func() time.Time
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config, logger *slog.Logger, recorder *metrics.Recorder) *Client {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		userAgent:  userAgent,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		logger:     logger,
		metrics:    recorder,
		now:        time.Now,
	}
}

// Bootstrap retrieves and normalizes the bulk bootstrap payload.
func (c *Client) Bootstrap(ctx context.Context) (*domain.Bootstrap, error) {
	var payload domain.Bootstrap
	if err := c.get(ctx, pathBootstrap, &payload); err != nil {
		return nil, err
	}
	patched := NormalizeBootstrap(&payload)
	if patched > 0 {
		logging.Warn(c.logger, "bootstrap records defaulted",
			slog.String(logging.FieldPath, pathBootstrap),
			slog.Int(logging.FieldCount, patched))
	}
	return &payload, nil
}

// PlayerSummary retrieves per-gameweek history for one player.
func (c *Client) PlayerSummary(ctx context.Context, playerID int) (*domain.PlayerSummary, error) {
	var payload domain.PlayerSummary
	if err := c.get(ctx, fmt.Sprintf(pathPlayerSummary, playerID), &payload); err != nil {
		return nil, err
	}
	if payload.History == nil {
		payload.History = []domain.PlayerRound{}
	}
	if payload.HistoryPast == nil {
		payload.HistoryPast = []domain.PlayerSeason{}
	}
	if payload.Fixtures == nil {
		payload.Fixtures = []domain.Fixture{}
	}
	return &payload, nil
}

// Fixtures retrieves the ordered fixture list for the season.
func (c *Client) Fixtures(ctx context.Context) ([]domain.Fixture, error) {
	fixtures := []domain.Fixture{}
	if err := c.get(ctx, pathFixtures, &fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &APIError{Kind: KindUnexpected, Path: path, Message: "build request", Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := c.now()
	resp, err := c.httpClient.Do(req)
	if c.metrics != nil {
		c.metrics.RecordUpstreamAttempt(path, time.Since(start), err)
	}
	if err != nil {
		return c.classifyTransport(path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.classifyStatus(path, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: KindUnexpected, Path: path, Message: "decode response", Err: err}
	}
	return nil
}

func (c *Client) classifyTransport(path string, err error) error {
	kind := KindNetworkUnreachable
	message := "no response from upstream"

	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		kind = KindTimeout
		message = "deadline exceeded"
	case errors.As(err, &netErr) && netErr.Timeout():
		kind = KindTimeout
		message = "request timed out"
	case errors.Is(err, context.Canceled):
		kind = KindUnexpected
		message = "request canceled"
	}

	logging.Warn(c.logger, "upstream request failed",
		slog.String(logging.FieldPath, path),
		slog.String(logging.FieldErrorKind, string(kind)),
		slog.String("error", err.Error()))

	return &APIError{Kind: kind, Path: path, Message: message, Err: err}
}

func (c *Client) classifyStatus(path string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	trimmed := strings.TrimSpace(string(body))

	apiErr := &APIError{Path: path, StatusCode: resp.StatusCode, Body: trimmed}
	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		apiErr.Kind = KindRateLimited
		apiErr.Message = "upstream rate limited"
		apiErr.RetryAfter = parseRetryAfter(resp.Header, c.now())
		if c.metrics != nil {
			c.metrics.RecordRateLimit(path, apiErr.RetryAfter)
		}
	case resp.StatusCode >= 500:
		apiErr.Kind = KindServerUnavailable
		apiErr.Message = "upstream unavailable"
	case resp.StatusCode == http.StatusNotFound:
		apiErr.Kind = KindNotFound
		apiErr.Message = "resource not found"
	default:
		apiErr.Kind = KindUnexpected
		apiErr.Message = fmt.Sprintf("unexpected status %d", resp.StatusCode)
	}

	logging.Warn(c.logger, "upstream request rejected",
		slog.String(logging.FieldPath, path),
		slog.Int(logging.FieldStatusCode, resp.StatusCode),
		slog.String(logging.FieldErrorKind, string(apiErr.Kind)))

	return apiErr
}
