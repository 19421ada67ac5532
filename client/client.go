// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"time"
)

type Client interface {
	// --- Identity ---

	// SetDeviceID attaches id as X-Device-Id to every later request.
	// Empty ids are ignored.
	SetDeviceID(id string)

	DeviceID() string

	// --- Lifecycle ---

	Close(ctx context.Context) error

	// --- QR codes ---

	Create(ctx context.Context, input CreateInput) (Record, error)

	List(ctx context.Context, page int) (Page, error)

	Get(ctx context.Context, id ID) (Record, error)

	Delete(ctx context.Context, id ID) (Deletion, error)

	// History lists the records of the current device, newest first.
	History(ctx context.Context, page int) (Page, error)

	Stats(ctx context.Context) (Stats, error)

	IncrementScan(ctx context.Context, id ID) (Record, error)
}

// ID is the backend's record identifier. The backend may send it as a JSON
// number or string; it is kept as text.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Record is one generated QR code as stored by the backend.
type Record struct {
	ID         ID        `json:"id"`
	Data       string    `json:"data"`
	DeviceID   string    `json:"device_id"`
	QRImage    string    `json:"qr_image"`
	QRImageURL *string   `json:"qr_image_url"`
	ScanCount  int       `json:"scan_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateInput struct {
	Data     string `json:"data"`
	DeviceID string `json:"device_id"`
}

// Page is one page of records. Next and Previous are nil on the last and
// first page.
type Page struct {
	Count    int      `json:"count"`
	Next     *string  `json:"next"`
	Previous *string  `json:"previous"`
	Results  []Record `json:"results"`
}

// UnmarshalJSON also accepts a bare array from an unpaginated backend.
func (p *Page) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var results []Record
		if err := json.Unmarshal(b, &results); err != nil {
			return err
		}
		*p = Page{Count: len(results), Results: results}
		return nil
	}
	type plain Page
	var v plain
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*p = Page(v)
	return nil
}

func (p Page) HasNext() bool { return p.Next != nil && *p.Next != "" }

func (p Page) HasPrevious() bool { return p.Previous != nil && *p.Previous != "" }

type Stats struct {
	TotalQRCodes int `json:"total_qr_codes"`
	TotalScans   int `json:"total_scans"`
}

// Deletion confirms a successful delete.
type Deletion struct {
	ID         ID
	StatusCode int
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func pageQuery(page int) string {
	return "page=" + strconv.Itoa(normalizePage(page))
}
