// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package appstate

import (
	"context"
	"testing"

	"github.com/qrify/qrify/internal/localstore"
)

func TestParseTheme(t *testing.T) {
	for in, want := range map[string]Theme{"light": ThemeLight, "dark": ThemeDark, "": ThemeDark, "blue": ThemeDark} {
		if got := ParseTheme(in); got != want {
			t.Fatalf("ParseTheme(%q) = %q want %q", in, got, want)
		}
	}
}

func TestDevice(t *testing.T) {
	s := New(nil, ThemeDark)
	if _, ok := s.DeviceID(); ok {
		t.Fatalf("expected not ready")
	}
	s.SetDevice("abc")
	if id, ok := s.DeviceID(); !ok || id != "abc" {
		t.Fatalf("got %q %v", id, ok)
	}
}

func TestToggleThemePersists(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	s := New(store, ThemeDark)

	if got := s.ToggleTheme(ctx); got != ThemeLight || s.Theme() != ThemeLight {
		t.Fatalf("expected light, got %q", got)
	}
	if v, _ := store.Get(ctx, localstore.KeyTheme); v != "light" {
		t.Fatalf("theme not persisted: %q", v)
	}

	restarted := New(store, ThemeDark)
	restarted.LoadTheme(ctx)
	if restarted.Theme() != ThemeLight {
		t.Fatalf("expected persisted light theme, got %q", restarted.Theme())
	}
	if restarted.ToggleTheme(ctx) != ThemeDark {
		t.Fatalf("expected toggle back to dark")
	}
}

func TestLoadThemeWithoutStoredValue(t *testing.T) {
	s := New(localstore.NewMemoryStore(), ThemeLight)
	s.LoadTheme(context.Background())
	if s.Theme() != ThemeLight {
		t.Fatalf("configured theme lost: %q", s.Theme())
	}
	New(nil, ThemeDark).LoadTheme(context.Background())
}
