// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrNoDeviceID matches backend rejections of requests without X-Device-Id.
var ErrNoDeviceID = errors.New("device id header (X-Device-Id) is required")

// APIError is a non-2xx backend response.
type APIError struct {
	StatusCode int
	// Message is the backend's message, or the HTTP status text.
	Message string
	Body    []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNoDeviceID &&
		e.StatusCode == http.StatusBadRequest &&
		strings.Contains(e.Message, "X-Device-Id")
}

// NewAPIError builds an APIError, taking the message from body when it has one.
func NewAPIError(status int, body []byte) *APIError {
	msg := messageFromBody(body)
	if msg == "" {
		msg = http.StatusText(status)
	}
	if msg == "" {
		msg = "unknown error"
	}
	return &APIError{StatusCode: status, Message: msg, Body: body}
}

func messageFromBody(body []byte) string {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, k := range []string{"message", "error", "detail"} {
		if s, ok := fields[k].(string); ok && s != "" {
			return s
		}
	}
	// field validation errors: {"data": ["Data cannot be empty"]}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := fields[k].(type) {
		case []any:
			if len(v) > 0 {
				if s, ok := v[0].(string); ok {
					return s
				}
			}
		case string:
			return v
		}
	}
	return ""
}

func statusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func IsNotFound(err error) bool { return statusOf(err) == http.StatusNotFound }

func IsForbidden(err error) bool { return statusOf(err) == http.StatusForbidden }

// Message returns the message the backend sent with err, else fallback.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if m := messageFromBody(apiErr.Body); m != "" {
			return m
		}
	}
	return fallback
}
