// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars contains variables injected at build time.
package buildvars

// Version is set at link time via `-ldflags -X github.com/qrify/qrify/buildvars.Version=...`.
// It will be empty for local or development builds.
var Version string

// APIURL is the backend base URL baked into release builds via
// `-ldflags -X github.com/qrify/qrify/buildvars.APIURL=https://...`.
// Config files, environment and flags still take precedence.
var APIURL string

// VersionOrDefault returns `Version` if set, otherwise returns the provided default.
func VersionOrDefault(def string) string {
	if len(Version) > 0 {
		return Version
	}
	return def
}

// APIURLOrDefault returns `APIURL` if set, otherwise returns the provided default.
func APIURLOrDefault(def string) string {
	if len(APIURL) > 0 {
		return APIURL
	}
	return def
}
