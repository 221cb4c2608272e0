// Copyright (c) 2026 Paymaster Team
// Paymaster - payment methods management console
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/toeirei/paymaster/core/model"
	"github.com/toeirei/paymaster/internal/logging"
)

// RequestIDHeader carries a fresh id per request for server side tracing.
const RequestIDHeader = "X-Request-Id"

// HTTPClient implements Client over HTTP with JSON bodies.
type HTTPClient struct {
	base      *url.URL
	http      *http.Client
	userAgent string
	newID     func() string
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client, e.g. in tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) { c.http = hc }
}

// WithRequestIDs replaces the request id generator.
func WithRequestIDs(fn func() string) Option {
	return func(c *HTTPClient) { c.newID = fn }
}

// New validates cfg and returns a client for its base URL.
func New(cfg Config, opts ...Option) (*HTTPClient, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}
	c := &HTTPClient{
		base:      base,
		http:      &http.Client{Timeout: cfg.Timeout},
		userAgent: cfg.UserAgent,
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Search(ctx context.Context, q SearchQuery) ([]model.Record, error) {
	var out []model.Record
	if err := c.do(ctx, http.MethodGet, "/payments", q.Values(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Get(ctx context.Context, id int) (model.Record, error) {
	var out model.Record
	err := c.do(ctx, http.MethodGet, paymentPath(id), nil, nil, &out)
	return out, err
}

func (c *HTTPClient) Create(ctx context.Context, body model.Payload) (model.Record, error) {
	var out model.Record
	err := c.do(ctx, http.MethodPost, "/payments", nil, body, &out)
	return out, err
}

func (c *HTTPClient) Update(ctx context.Context, id int, body model.Payload) (model.Record, error) {
	var out model.Record
	err := c.do(ctx, http.MethodPut, paymentPath(id), nil, body, &out)
	return out, err
}

func (c *HTTPClient) Delete(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, paymentPath(id), nil, nil, nil)
}

func (c *HTTPClient) SetDefault(ctx context.Context, id int) (model.DefaultChange, error) {
	var out model.DefaultChange
	err := c.do(ctx, http.MethodPut, paymentPath(id)+"/set-default", nil, nil, &out)
	return out, err
}

func paymentPath(id int) string {
	return "/payments/" + strconv.Itoa(id)
}

// errorBody is the shape of an API reported error.
type errorBody struct {
	Error string `json:"error"`
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := *c.base
	u.Path = c.base.Path + path
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	requestID := c.newID()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logging.Debugf("api: %s %s failed (request %s): %v", method, u.Path, requestID, err)
		return fmt.Errorf("%s %s: %w", method, u.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	logging.Debugf("api: %s %s -> %d (request %s)", method, u.Path, resp.StatusCode, requestID)

	if msg := reportedError(raw); msg != "" {
		return &APIError{Status: resp.StatusCode, Message: msg}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: resp.Status}
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// reportedError extracts a non-empty `error` field from an object body.
func reportedError(raw []byte) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(trimmed, &body); err != nil {
		return ""
	}
	return body.Error
}

var _ Client = (*HTTPClient)(nil)
