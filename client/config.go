// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"net/http"

	"github.com/qrify/qrify/buildvars"
)

const DefaultBaseURL = "http://localhost:8000/api"

type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api
	BaseURL string
	// DeviceID is attached as X-Device-Id when not empty.
	DeviceID string
	// HTTPClient defaults to a client without timeout.
	HTTPClient *http.Client
	UserAgent  string
}

func NewDefaultConfig() Config {
	return Config{
		BaseURL:   buildvars.APIURLOrDefault(DefaultBaseURL),
		UserAgent: "qrify/" + buildvars.VersionOrDefault("dev"),
	}
}
