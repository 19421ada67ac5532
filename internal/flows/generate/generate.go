// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package generate is the create/display flow without any UI: validate the
// input, submit it once and keep the returned record as the current one.
package generate

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/qrify/qrify/client"
)

var ErrEmptyInput = errors.New("please enter some data or URL")

// DeviceSource yields the device identifier, false while not established.
type DeviceSource interface {
	DeviceID() (string, bool)
}

type Flow struct {
	client client.Client
	device DeviceSource

	mu      sync.RWMutex
	current *client.Record
}

func New(c client.Client, device DeviceSource) *Flow {
	return &Flow{client: c, device: device}
}

// Validate rejects empty and whitespace-only input.
func Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyInput
	}
	return nil
}

// Submit trims text and issues exactly one Create. On failure the current
// record stays untouched. Nothing is sent before the device id is ready.
func (f *Flow) Submit(ctx context.Context, text string) (client.Record, error) {
	if err := Validate(text); err != nil {
		return client.Record{}, err
	}
	var (
		deviceID string
		ready    bool
	)
	if f.device != nil {
		deviceID, ready = f.device.DeviceID()
	}
	if !ready {
		return client.Record{}, client.ErrNoDeviceID
	}
	rec, err := f.client.Create(ctx, client.CreateInput{
		Data:     strings.TrimSpace(text),
		DeviceID: deviceID,
	})
	if err != nil {
		return client.Record{}, err
	}
	f.mu.Lock()
	f.current = &rec
	f.mu.Unlock()
	return rec, nil
}

// Current returns the last successfully created record.
func (f *Flow) Current() (client.Record, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.current == nil {
		return client.Record{}, false
	}
	return *f.current, true
}
