// Package weather fetches one-line weather reports from a wttr.in compatible
// service.
package weather

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cerebro/pkg/retrylimit"

	"github.com/rs/zerolog/log"
)

const maxBody = 16 << 10

type Client struct {
	BaseURL string
	HTTP    *http.Client
	Limiter *retrylimit.AdaptiveLimiter
}

// New returns a client for baseURL, paced at one request per second with
// room to grow to five.
func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Limiter: retrylimit.NewAdaptiveLimiter(1, 0.2, 5, 0.5, 0.5),
	}
}

// Fetch returns the status code and body of GET {BaseURL}/{location}?format=4.
// Non-2xx statuses are not errors; the caller maps them.
func (c *Client) Fetch(ctx context.Context, location string) (int, string, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return 0, "", err
		}
	}

	u := c.BaseURL + "/" + url.PathEscape(location) + "?format=4"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return 0, "", fmt.Errorf("read body: %w", err)
	}

	if c.Limiter != nil {
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			c.Limiter.RateLimited()
			log.Warn().Int("status", resp.StatusCode).Float64("rps", c.Limiter.CurrentLimit()).Msg("weather service is throttling")
		} else {
			c.Limiter.Success()
		}
	}

	return resp.StatusCode, string(body), nil
}
