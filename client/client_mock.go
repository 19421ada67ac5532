// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package client

import (
	"context"
)

type MockClient struct {
	BaseClient Client
	Overwrites MockClientOverwrites
}

type MockClientOverwrites struct {
	Close         func(ctx context.Context) error
	Create        func(ctx context.Context, input CreateInput) (Record, error)
	Delete        func(ctx context.Context, id ID) (Deletion, error)
	DeviceID      func() string
	Get           func(ctx context.Context, id ID) (Record, error)
	History       func(ctx context.Context, page int) (Page, error)
	IncrementScan func(ctx context.Context, id ID) (Record, error)
	List          func(ctx context.Context, page int) (Page, error)
	SetDeviceID   func(id string)
	Stats         func(ctx context.Context) (Stats, error)
}

var _ Client = (*MockClient)(nil)

// client := NewMockClient(nil, MockClientOverwrites{ /* overwrite Client methods here... */ })
func NewMockClient(base Client, overwrites MockClientOverwrites) *MockClient {
	return &MockClient{
		BaseClient: base,
		Overwrites: overwrites,
	}
}

// --- Client implementation ---

func (m *MockClient) Close(ctx context.Context) error {
	if m.Overwrites.Close != nil {
		return m.Overwrites.Close(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.Close(ctx)
	}
	panic("MockClient.Close not implemented")
}
func (m *MockClient) Create(ctx context.Context, input CreateInput) (Record, error) {
	if m.Overwrites.Create != nil {
		return m.Overwrites.Create(ctx, input)
	} else if m.BaseClient != nil {
		return m.BaseClient.Create(ctx, input)
	}
	panic("MockClient.Create not implemented")
}
func (m *MockClient) Delete(ctx context.Context, id ID) (Deletion, error) {
	if m.Overwrites.Delete != nil {
		return m.Overwrites.Delete(ctx, id)
	} else if m.BaseClient != nil {
		return m.BaseClient.Delete(ctx, id)
	}
	panic("MockClient.Delete not implemented")
}
func (m *MockClient) DeviceID() string {
	if m.Overwrites.DeviceID != nil {
		return m.Overwrites.DeviceID()
	} else if m.BaseClient != nil {
		return m.BaseClient.DeviceID()
	}
	panic("MockClient.DeviceID not implemented")
}
func (m *MockClient) Get(ctx context.Context, id ID) (Record, error) {
	if m.Overwrites.Get != nil {
		return m.Overwrites.Get(ctx, id)
	} else if m.BaseClient != nil {
		return m.BaseClient.Get(ctx, id)
	}
	panic("MockClient.Get not implemented")
}
func (m *MockClient) History(ctx context.Context, page int) (Page, error) {
	if m.Overwrites.History != nil {
		return m.Overwrites.History(ctx, page)
	} else if m.BaseClient != nil {
		return m.BaseClient.History(ctx, page)
	}
	panic("MockClient.History not implemented")
}
func (m *MockClient) IncrementScan(ctx context.Context, id ID) (Record, error) {
	if m.Overwrites.IncrementScan != nil {
		return m.Overwrites.IncrementScan(ctx, id)
	} else if m.BaseClient != nil {
		return m.BaseClient.IncrementScan(ctx, id)
	}
	panic("MockClient.IncrementScan not implemented")
}
func (m *MockClient) List(ctx context.Context, page int) (Page, error) {
	if m.Overwrites.List != nil {
		return m.Overwrites.List(ctx, page)
	} else if m.BaseClient != nil {
		return m.BaseClient.List(ctx, page)
	}
	panic("MockClient.List not implemented")
}
func (m *MockClient) SetDeviceID(id string) {
	if m.Overwrites.SetDeviceID != nil {
		m.Overwrites.SetDeviceID(id)
		return
	} else if m.BaseClient != nil {
		m.BaseClient.SetDeviceID(id)
		return
	}
	panic("MockClient.SetDeviceID not implemented")
}
func (m *MockClient) Stats(ctx context.Context) (Stats, error) {
	if m.Overwrites.Stats != nil {
		return m.Overwrites.Stats(ctx)
	} else if m.BaseClient != nil {
		return m.BaseClient.Stats(ctx)
	}
	panic("MockClient.Stats not implemented")
}
