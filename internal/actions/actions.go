// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package actions implements what a user can do with a record: save its QR
// code as PNG, copy its text and open it in a browser.
package actions

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
	"github.com/qrify/qrify/internal/qrcode"
)

var ErrNotURL = errors.New("not a url")

// IsURL reports whether text parses as an absolute URL. Hierarchical URLs
// need a host, so "http:/example.com" is not offered as a link.
func IsURL(text string) bool {
	u, err := url.Parse(strings.TrimSpace(text))
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Host != "" || u.Opaque != ""
}

type Actions struct {
	DownloadDir string
	Copy        func(text string) error
	Open        func(url string) error
	Now         func() time.Time
}

func New(downloadDir string) *Actions {
	return &Actions{
		DownloadDir: downloadDir,
		Copy:        clipboard.WriteAll,
		Open:        browser.OpenURL,
		Now:         time.Now,
	}
}

// TimestampFilename names a download of a freshly generated code.
func (a *Actions) TimestampFilename() string {
	return fmt.Sprintf("qrcode-%d.png", a.Now().UnixMilli())
}

// RecordFilename names a download from the history.
func RecordFilename(id string) string {
	return fmt.Sprintf("qrcode-%s.png", id)
}

// Download renders text as PNG into DownloadDir/name and returns the path.
func (a *Actions) Download(text, name string) (string, error) {
	code, err := qrcode.Encode(text)
	if err != nil {
		return "", fmt.Errorf("encode qr code: %w", err)
	}
	data, err := code.PNG(qrcode.PNGSize)
	if err != nil {
		return "", fmt.Errorf("render png: %w", err)
	}
	return a.writeFile(name, data)
}

func (a *Actions) writeFile(name string, data []byte) (string, error) {
	dir := a.DownloadDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}
	path := filepath.Join(dir, filepath.Base(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

func (a *Actions) CopyText(text string) error {
	if err := a.Copy(text); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}

// OpenLink opens text in the system browser when it is a URL.
func (a *Actions) OpenLink(text string) error {
	if !IsURL(text) {
		return ErrNotURL
	}
	if err := a.Open(strings.TrimSpace(text)); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}
