package contest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/mxpv/codetracker/pkg/stats"
)

const (
	maxResponseSize      = 16 << 20
	retryInitialInterval = 200 * time.Millisecond
	retryMaxInterval     = 5 * time.Second
)

// StatusError is returned when upstream replies with non 2xx status code
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

// Client is a rate limited HTTP client for a single upstream API
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	retries   int
	userAgent string
	name      string
}

func NewClient(name string, cfg Config) *Client {
	cfg.ApplyDefaults()
	if *cfg.Retries < 0 {
		cfg.Retries = new(int)
	}

	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.Rate), 1),
		retries:   *cfg.Retries,
		userAgent: cfg.UserAgent,
		name:      name,
	}
}

// GetJSON queries url and returns response body.
// Transport errors, 429 and 5xx responses are retried with exponential backoff.
func (c *Client) GetJSON(ctx context.Context, url string) ([]byte, error) {
	operation := func() ([]byte, error) {
		body, err := c.do(ctx, http.MethodGet, url, nil)
		if err != nil && (ctx.Err() != nil || !retryable(err)) {
			return nil, backoff.Permanent(err)
		}
		return body, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.MaxInterval = retryMaxInterval

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(bo),
		backoff.WithMaxTries(uint(c.retries+1)),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.WithError(err).WithFields(log.Fields{
				"upstream": c.name,
				"wait":     wait,
			}).Warn("upstream request failed, retrying")
		}))
}

// PostJSON sends payload as JSON body and returns response body.
// POST requests are not retried.
func (c *Client) PostJSON(ctx context.Context, url string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	return c.do(ctx, http.MethodPost, url, data)
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter")
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create request to %s", url)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	stats.ObserveUpstream(c.name, time.Since(started), err)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s failed", method, url)
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		stats.UpstreamFailures.WithLabelValues(c.name).Inc()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	return body, nil
}

func retryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}

	return true
}
