// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package appstate holds the process wide state shared by all views: the
// device identifier and the theme.
package appstate

import (
	"context"
	"sync"

	"github.com/qrify/qrify/internal/localstore"
	"github.com/qrify/qrify/internal/logging"
)

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// ParseTheme maps anything but "light" to dark.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeLight {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) Toggled() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

type State struct {
	mu       sync.RWMutex
	deviceID string
	ready    bool
	theme    Theme
	store    localstore.Store
}

// New builds the state. store may be nil, then the theme is not persisted.
func New(store localstore.Store, theme Theme) *State {
	return &State{store: store, theme: ParseTheme(string(theme))}
}

// LoadTheme replaces the theme with the persisted one, if any.
func (s *State) LoadTheme(ctx context.Context) {
	if s.store == nil {
		return
	}
	v, err := s.store.Get(ctx, localstore.KeyTheme)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.theme = ParseTheme(v)
	s.mu.Unlock()
}

// SetDevice is called once when the identity is established.
func (s *State) SetDevice(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deviceID = id
	s.ready = id != ""
}

func (s *State) DeviceID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.deviceID, s.ready
}

func (s *State) Theme() Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ToggleTheme flips and persists the theme and returns the new one.
func (s *State) ToggleTheme(ctx context.Context) Theme {
	s.mu.Lock()
	s.theme = s.theme.Toggled()
	t := s.theme
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.Set(ctx, localstore.KeyTheme, string(t)); err != nil {
			logging.Warnf("appstate: persisting theme failed: %v", err)
		}
	}
	return t
}
