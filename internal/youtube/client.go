// Package youtube is a minimal client for the two Data API v3 listing
// endpoints this tool consumes: channels.list and activities.list. Both are
// paginated; pages are walked until the response carries no nextPageToken.
package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	fetchTimeout = 30 * time.Second
	userAgent    = "tubewatch/1.0"

	// Minimum spacing between page requests, shared across endpoints.
	pageInterval = time.Second

	// Cap on how much of an error body we read for diagnostics.
	maxErrorBody = 64 << 10
)

// sleepFunc is the function used for retry delays.
// It defaults to time.Sleep but can be overridden in tests.
var sleepFunc = time.Sleep

// Client issues paginated GET requests against the API.
type Client struct {
	key        string
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
	retries    int
	retryDelay time.Duration
}

// New creates a client. retries is the total attempt count per page (not
// the count of re-attempts); retryDelay is slept between attempts.
func New(key, baseURL string, retries int, retryDelay time.Duration) *Client {
	return &Client{
		key:        key,
		baseURL:    baseURL,
		client:     &http.Client{Timeout: fetchTimeout},
		limiter:    rate.NewLimiter(rate.Every(pageInterval), 1),
		retries:    retries,
		retryDelay: retryDelay,
	}
}

// page is the envelope common to both listing endpoints.
type page struct {
	NextPageToken string            `json:"nextPageToken"`
	Items         []json.RawMessage `json:"items"`
}

// fetchPages walks all pages of resource, invoking each with the raw items
// of every page in order. The walk stops cleanly when a page has no
// nextPageToken and stops with the terminal error when a page cannot be
// fetched after the bounded retries. Items from pages already delivered
// stay delivered either way.
func (c *Client) fetchPages(ctx context.Context, resource string, params url.Values, each func([]json.RawMessage) error) error {
	token := ""
	for {
		p, err := c.fetchPage(ctx, resource, params, token)
		if err != nil {
			return err
		}
		if err := each(p.Items); err != nil {
			return err
		}
		if p.NextPageToken == "" {
			return nil
		}
		token = p.NextPageToken
	}
}

// fetchPage retries the same page up to c.retries attempts, sleeping
// c.retryDelay between attempts.
func (c *Client) fetchPage(ctx context.Context, resource string, params url.Values, token string) (*page, error) {
	var lastErr error
	for attempt := 0; attempt < c.retries; attempt++ {
		if attempt > 0 {
			logrus.WithFields(logrus.Fields{
				"resource": resource,
				"delay":    c.retryDelay,
			}).Warnf("retrying after error: %v", lastErr)
			sleepFunc(c.retryDelay)
		}

		p, err := c.getPage(ctx, resource, params, token)
		if err == nil {
			return p, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func (c *Client) getPage(ctx context.Context, resource string, params url.Values, token string) (*page, error) {
	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	q.Set("key", c.key)
	if token != "" {
		q.Set("pageToken", token)
	}
	reqURL := c.baseURL + "/" + resource + "?" + q.Encode()

	logrus.Debugf("GET %s", redactKey(reqURL))

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: create request: %w", resource, err)
	}
	req.Header.Set("User-Agent", userAgent)

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", resource, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// Transport-level failure, no server body to inspect.
		return nil, fmt.Errorf("%s: %w", resource, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		c.logServerError(resource, resp)
		return nil, fmt.Errorf("%s: %s", resource, resp.Status)
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode %s: %w", resource, err)
	}
	return &p, nil
}

// apiError is the error envelope the API wraps failures in.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// logServerError reports the status line of a failed response and, when the
// body is the expected JSON error envelope, the server's own message. A body
// of any other shape only downgrades the diagnostic, never the failure.
func (c *Client) logServerError(resource string, resp *http.Response) {
	log := logrus.WithFields(logrus.Fields{
		"resource": resource,
		"status":   resp.Status,
	})

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		log.Warnf("server error, body unreadable: %v", err)
		return
	}

	var ae apiError
	if err := json.Unmarshal(body, &ae); err != nil || ae.Error.Message == "" {
		log.Warn("server error, body is not the expected JSON error shape")
		return
	}
	log.Warnf("server error: %s", ae.Error.Message)
}

// redactKey hides the API key in a request URL so verbose logs are safe to
// share.
func redactKey(reqURL string) string {
	u, err := url.Parse(reqURL)
	if err != nil {
		return reqURL
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
