// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
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
	"strings"
	"sync"

	"github.com/qrify/qrify/internal/logging"
)

const DeviceIDHeader = "X-Device-Id"

// HTTPClient maps each operation onto one backend endpoint. It never retries.
type HTTPClient struct {
	baseURL   string
	userAgent string
	hc        *http.Client

	mu       sync.RWMutex
	deviceID string
}

// *HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(cfg Config) *HTTPClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	c := &HTTPClient{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		hc:        hc,
	}
	c.SetDeviceID(cfg.DeviceID)
	return c
}

func (c *HTTPClient) BaseURL() string { return c.baseURL }

func (c *HTTPClient) SetDeviceID(id string) {
	if id == "" {
		return
	}
	c.mu.Lock()
	c.deviceID = id
	c.mu.Unlock()
}

func (c *HTTPClient) DeviceID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceID
}

func (c *HTTPClient) Close(ctx context.Context) error {
	c.hc.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) Create(ctx context.Context, input CreateInput) (Record, error) {
	var r Record
	_, err := c.do(ctx, "create", http.MethodPost, "/qr-codes/", "", input, &r)
	return r, err
}

func (c *HTTPClient) List(ctx context.Context, page int) (Page, error) {
	var p Page
	_, err := c.do(ctx, "list", http.MethodGet, "/qr-codes/", pageQuery(page), nil, &p)
	return p, err
}

func (c *HTTPClient) Get(ctx context.Context, id ID) (Record, error) {
	var r Record
	_, err := c.do(ctx, "get", http.MethodGet, recordPath(id, ""), "", nil, &r)
	return r, err
}

func (c *HTTPClient) Delete(ctx context.Context, id ID) (Deletion, error) {
	status, err := c.do(ctx, "delete", http.MethodDelete, recordPath(id, ""), "", nil, nil)
	if err != nil {
		return Deletion{}, err
	}
	return Deletion{ID: id, StatusCode: status}, nil
}

func (c *HTTPClient) History(ctx context.Context, page int) (Page, error) {
	var p Page
	_, err := c.do(ctx, "history", http.MethodGet, "/qr-codes/history/", pageQuery(page), nil, &p)
	return p, err
}

func (c *HTTPClient) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	_, err := c.do(ctx, "stats", http.MethodGet, "/qr-codes/stats/", "", nil, &s)
	return s, err
}

func (c *HTTPClient) IncrementScan(ctx context.Context, id ID) (Record, error) {
	var r Record
	_, err := c.do(ctx, "increment scan", http.MethodPost, recordPath(id, "increment_scan/"), "", nil, &r)
	return r, err
}

func recordPath(id ID, suffix string) string {
	return "/qr-codes/" + url.PathEscape(string(id)) + "/" + suffix
}

// do sends one request and decodes a 2xx body into out. Non-2xx responses
// become *APIError.
func (c *HTTPClient) do(ctx context.Context, op, method, path, query string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%s: encode request: %w", op, err)
		}
		reader = bytes.NewReader(b)
	}

	target := c.baseURL + path
	if query != "" {
		target += "?" + query
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if id := c.DeviceID(); id != "" {
		req.Header.Set(DeviceIDHeader, id)
	}

	logging.Debugf("client: %s %s", method, target)
	resp, err := c.hc.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%s: read response: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := NewAPIError(resp.StatusCode, data)
		logging.Debugf("client: %s failed: %v", op, apiErr)
		return resp.StatusCode, fmt.Errorf("%s: %w", op, apiErr)
	}
	if out != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("%s: decode response: %w", op, err)
		}
	}
	return resp.StatusCode, nil
}
