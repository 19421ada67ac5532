// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// MemoryBackend emulates the QRify backend in process. Every method takes
// the X-Device-Id value of the request it stands for.
type MemoryBackend struct {
	// PageSize of paginated listings, 10 when zero.
	PageSize int
	// Now defaults to time.Now.
	Now func() time.Time

	mu      sync.Mutex
	records []Record // creation order
	lastID  int
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{PageSize: 10, Now: time.Now}
}

func apiErrorf(status int, fields map[string]any) *APIError {
	body, _ := json.Marshal(fields)
	return NewAPIError(status, body)
}

var (
	errNotFound    = map[string]any{"detail": "Not found."}
	errInvalidPage = map[string]any{"detail": "Invalid page."}
	errNoDevice    = map[string]any{"error": "Device ID header (X-Device-Id) is required"}
)

func (b *MemoryBackend) now() time.Time {
	if b.Now == nil {
		return time.Now().UTC()
	}
	return b.Now().UTC()
}

func (b *MemoryBackend) Create(device string, input CreateInput) (Record, error) {
	data := strings.TrimSpace(input.Data)
	deviceID := strings.TrimSpace(input.DeviceID)
	fields := map[string]any{}
	if data == "" {
		fields["data"] = []string{"Data cannot be empty"}
	}
	if deviceID == "" {
		fields["device_id"] = []string{"Device ID cannot be empty"}
	}
	if len(fields) > 0 {
		return Record{}, apiErrorf(http.StatusBadRequest, fields)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastID++
	id := ID(strconv.Itoa(b.lastID))
	now := b.now()
	r := Record{
		ID:        id,
		Data:      data,
		DeviceID:  deviceID,
		QRImage:   fmt.Sprintf("qr_codes/qr_%s.png", id),
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.records = append(b.records, r)
	return r, nil
}

// owned returns the device's records, newest first. Caller holds mu.
func (b *MemoryBackend) owned(device string) []Record {
	out := make([]Record, 0, len(b.records))
	if device == "" {
		return out
	}
	for _, r := range slices.Backward(b.records) {
		if r.DeviceID == device {
			out = append(out, r)
		}
	}
	return out
}

func (b *MemoryBackend) paginate(all []Record, page int) (Page, error) {
	size := b.PageSize
	if size <= 0 {
		size = 10
	}
	page = normalizePage(page)
	start := (page - 1) * size
	if start > 0 && start >= len(all) {
		return Page{}, apiErrorf(http.StatusNotFound, errInvalidPage)
	}
	end := min(start+size, len(all))

	p := Page{Count: len(all), Results: slices.Clone(all[start:end])}
	if end < len(all) {
		next := "?" + pageQuery(page+1)
		p.Next = &next
	}
	if page > 1 {
		prev := "?" + pageQuery(page-1)
		p.Previous = &prev
	}
	return p, nil
}

func (b *MemoryBackend) List(device string, page int) (Page, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.paginate(b.owned(device), page)
}

func (b *MemoryBackend) History(device string, page int) (Page, error) {
	if device == "" {
		return Page{}, apiErrorf(http.StatusBadRequest, errNoDevice)
	}
	return b.List(device, page)
}

func (b *MemoryBackend) Stats(device string) (Stats, error) {
	if device == "" {
		return Stats{}, apiErrorf(http.StatusBadRequest, errNoDevice)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	var s Stats
	for _, r := range b.owned(device) {
		s.TotalQRCodes++
		s.TotalScans += r.ScanCount
	}
	return s, nil
}

// index finds id within the device's scope; records of other devices are
// reported as not found. Caller holds mu.
func (b *MemoryBackend) index(device string, id ID) (int, error) {
	i := slices.IndexFunc(b.records, func(r Record) bool {
		return r.ID == id && device != "" && r.DeviceID == device
	})
	if i < 0 {
		return -1, apiErrorf(http.StatusNotFound, errNotFound)
	}
	return i, nil
}

func (b *MemoryBackend) Get(device string, id ID) (Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, err := b.index(device, id)
	if err != nil {
		return Record{}, err
	}
	return b.records[i], nil
}

func (b *MemoryBackend) Delete(device string, id ID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, err := b.index(device, id)
	if err != nil {
		return err
	}
	b.records = slices.Delete(b.records, i, i+1)
	return nil
}

func (b *MemoryBackend) IncrementScan(device string, id ID) (Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	i, err := b.index(device, id)
	if err != nil {
		return Record{}, err
	}
	b.records[i].ScanCount++
	b.records[i].UpdatedAt = b.now()
	return b.records[i], nil
}

// MemoryClient is a Client over a MemoryBackend. Clients sharing a backend
// behave like separate devices talking to one server.
type MemoryClient struct {
	backend *MemoryBackend

	mu       sync.RWMutex
	deviceID string
}

// *MemoryClient implements Client
var _ Client = (*MemoryClient)(nil)

// NewMemoryClient uses a fresh backend when backend is nil.
func NewMemoryClient(backend *MemoryBackend) *MemoryClient {
	if backend == nil {
		backend = NewMemoryBackend()
	}
	return &MemoryClient{backend: backend}
}

func (c *MemoryClient) Backend() *MemoryBackend { return c.backend }

func (c *MemoryClient) SetDeviceID(id string) {
	if id == "" {
		return
	}
	c.mu.Lock()
	c.deviceID = id
	c.mu.Unlock()
}

func (c *MemoryClient) DeviceID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.deviceID
}

func (c *MemoryClient) Close(ctx context.Context) error { return nil }

func (c *MemoryClient) Create(ctx context.Context, input CreateInput) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	return c.backend.Create(c.DeviceID(), input)
}

func (c *MemoryClient) List(ctx context.Context, page int) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	return c.backend.List(c.DeviceID(), page)
}

func (c *MemoryClient) Get(ctx context.Context, id ID) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	return c.backend.Get(c.DeviceID(), id)
}

func (c *MemoryClient) Delete(ctx context.Context, id ID) (Deletion, error) {
	if err := ctx.Err(); err != nil {
		return Deletion{}, err
	}
	if err := c.backend.Delete(c.DeviceID(), id); err != nil {
		return Deletion{}, err
	}
	return Deletion{ID: id, StatusCode: http.StatusNoContent}, nil
}

func (c *MemoryClient) History(ctx context.Context, page int) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	return c.backend.History(c.DeviceID(), page)
}

func (c *MemoryClient) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	return c.backend.Stats(c.DeviceID())
}

func (c *MemoryClient) IncrementScan(ctx context.Context, id ID) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}
	return c.backend.IncrementScan(c.DeviceID(), id)
}
