package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/carbonlog/carbon/internal/logging"
	"github.com/carbonlog/carbon/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 10 * time.Second

	// RequestIDHeader carries a per-request identifier for correlating logs
	RequestIDHeader = "X-Request-ID"

	// maxBodySize bounds how much of a response is read
	maxBodySize = 4 << 20
)

// Client talks to the tracker API. Requests are made once; failures are
// returned to the caller without retry.
type Client struct {
	// BaseURL is the tracker root (e.g., "http://127.0.0.1:5000")
	BaseURL string

	// HTTPClient is the underlying HTTP client. Its jar holds the session cookie.
	HTTPClient *http.Client

	// UserAgent is sent with every request
	UserAgent string

	base *url.URL
}

// NewClient creates a client for the tracker at baseURL
func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: DefaultTimeout, Jar: jar},
		UserAgent:  version.UserAgent(),
		base:       u,
	}, nil
}

// SetTimeout sets the HTTP request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.HTTPClient.Timeout = timeout
}

// Cookies returns the session cookies held for the server
func (c *Client) Cookies() []*http.Cookie {
	if c.HTTPClient.Jar == nil {
		return nil
	}
	return c.HTTPClient.Jar.Cookies(c.base)
}

// SetCookies restores previously saved session cookies
func (c *Client) SetCookies(cookies []*http.Cookie) {
	if c.HTTPClient.Jar == nil || len(cookies) == 0 {
		return
	}
	c.HTTPClient.Jar.SetCookies(c.base, cookies)
}

// Result is the {success, message} envelope returned by the tracker's
// write endpoints. A false Success is a business failure, not an error.
type Result struct {
	Success    bool
	Message    string
	StatusCode int
}

type envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type response struct {
	status int
	body   []byte
}

// do performs one request. body, when non-nil, is sent as JSON.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body map[string]any) (*response, error) {
	target := c.BaseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logging.LogAPIRequest(requestID, method, path, body)
	start := time.Now()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		apiErr := ClassifyNetworkError(err, path)
		logging.Warn("API request failed",
			zap.String("request_id", requestID),
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, apiErr
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, ClassifyNetworkError(err, path)
	}

	logging.LogAPIResponse(requestID, path, resp.StatusCode, time.Since(start))
	return &response{status: resp.StatusCode, body: data}, nil
}

// postResult posts body and decodes the {success, message} envelope. Any
// status that carries the envelope is a Result, so server messages reach
// the user even on 4xx and 5xx.
func (c *Client) postResult(ctx context.Context, path string, body map[string]any) (*Result, error) {
	resp, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(resp.body, &env); err != nil || env.Success == nil {
		if !isSuccess(resp.status) {
			return nil, NewHTTPError(path, resp.status, "")
		}
		return nil, NewParseError(path, "response is not a {success, message} object", err)
	}

	return &Result{Success: *env.Success, Message: env.Message, StatusCode: resp.status}, nil
}

// getJSON decodes a 2xx response into v
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, v any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}

	if !isSuccess(resp.status) {
		var env envelope
		_ = json.Unmarshal(resp.body, &env)
		msg := env.Message
		if msg == "" {
			msg = env.Error
		}
		if resp.status == http.StatusUnauthorized {
			return NewAuthError(path, msg)
		}
		return NewHTTPError(path, resp.status, msg)
	}

	if err := json.Unmarshal(resp.body, v); err != nil {
		return NewParseError(path, "failed to parse response", err)
	}
	return nil
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
