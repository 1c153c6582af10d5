// Package rest is the HTTP client of the health-points API.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const defaultTimeout = 30 * time.Second

// Client issues authenticated requests against one API base URL.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

type clientOptions struct {
	httpClient  *http.Client
	tokenSource oauth2.TokenSource
	timeout     time.Duration
}

// Option configures a Client.
type Option func(*clientOptions)

// WithHTTPClient sets the underlying transport client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = c }
}

// WithTokenSource attaches a bearer token to every request.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(o *clientOptions) { o.tokenSource = ts }
}

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) { o.timeout = d }
}

// NewClient creates a client for the API rooted at baseURL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	o := clientOptions{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}
	base := o.httpClient
	if base == nil {
		base = &http.Client{Timeout: o.timeout}
	}
	hc := base
	if o.tokenSource != nil {
		// The source is consulted on every request so that swapping it
		// (login, logout) takes effect immediately.
		hc = &http.Client{
			Transport: &oauth2.Transport{Source: o.tokenSource, Base: base.Transport},
			Timeout:   base.Timeout,
		}
	}
	return &Client{baseURL: u, http: hc}, nil
}

// do sends one request and decodes a 2xx JSON body into out, if out is
// non-nil. It returns the response headers.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) (http.Header, error) {
	u := *c.baseURL
	u.Path = u.Path + "/api/" + strings.TrimLeft(path, "/")
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := log.WithFields(log.Fields{"method": method, "path": u.Path, "request_id": reqID})
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.WithError(err).Warn("request failed")
		return nil, fmt.Errorf("%s %s: %w", method, u.Path, err)
	}
	defer resp.Body.Close()
	logger.WithFields(log.Fields{"status": resp.StatusCode, "duration": time.Since(start).String()}).Debug("response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return resp.Header, newStatusError(method, u.Path, resp.StatusCode, msg)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Header, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.Header, fmt.Errorf("decode %s %s: %w", method, u.Path, err)
	}
	return resp.Header, nil
}
