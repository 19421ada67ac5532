// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package ui

import (
	"context"
	"errors"
	"testing"

	"github.com/qrify/qrify/client"
	"github.com/qrify/qrify/internal/appstate"
	"github.com/qrify/qrify/internal/config"
	"github.com/qrify/qrify/internal/identity"
	"github.com/qrify/qrify/internal/localstore"
)

func fixedFingerprint(id string) Option {
	return WithFingerprinter(identity.FingerprintFunc(func(context.Context) (string, error) {
		return id, nil
	}))
}

func demoConfig() config.Config {
	return config.Config{
		Storage:     config.StorageConfig{Type: "memory"},
		Theme:       "light",
		DownloadDir: "downloads",
		Demo:        true,
	}
}

func TestInitializeDefaults_DemoUsesFingerprint(t *testing.T) {
	ctx := context.Background()
	s, err := InitializeDefaults(ctx, demoConfig(), "v1.2.3", fixedFingerprint("host-fp"))
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	if s.Client.DeviceID() != "host-fp" {
		t.Fatalf("client device id = %q", s.Client.DeviceID())
	}
	if id, ready := s.State.DeviceID(); !ready || id != "host-fp" {
		t.Fatalf("state device id = %q ready=%v", id, ready)
	}
	if s.Identity.Outcome().Source != identity.SourceFingerprinted {
		t.Fatalf("unexpected source %s", s.Identity.Outcome().Source)
	}
	if s.State.Theme() != appstate.ThemeLight {
		t.Fatalf("configured theme not applied: %s", s.State.Theme())
	}
	if stored, _ := s.Store.Get(ctx, localstore.KeyDeviceID); stored != "host-fp" {
		t.Fatalf("device id not persisted, got %q", stored)
	}

	// the demo backend answers right away
	rec, err := s.Generate.Submit(ctx, "hello")
	if err != nil || rec.Data != "hello" {
		t.Fatalf("submit through demo backend: %+v %v", rec, err)
	}
}

func TestInitializeDefaults_FingerprintFailureFallsBack(t *testing.T) {
	ctx := context.Background()
	broken := WithFingerprinter(identity.FingerprintFunc(func(context.Context) (string, error) {
		return "", errors.New("no machine id")
	}))
	s, err := InitializeDefaults(ctx, demoConfig(), "", broken)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	out := s.Identity.Outcome()
	if out.Source != identity.SourceFallback || out.ID == "" {
		t.Fatalf("expected random fallback id, got %+v", out)
	}
	if s.Client.DeviceID() != out.ID {
		t.Fatalf("client did not get the fallback id")
	}
}

func TestInitializeDefaults_InvalidBaseURL(t *testing.T) {
	cfg := demoConfig()
	cfg.Demo = false
	cfg.API.BaseURL = "ftp://example.com/api"

	if _, err := InitializeDefaults(context.Background(), cfg, "", fixedFingerprint("x")); err == nil {
		t.Fatalf("expected an error for a non-http base url")
	}
}

func TestInitializeDefaults_UnknownStorageFallsBackToMemory(t *testing.T) {
	ctx := context.Background()
	cfg := demoConfig()
	cfg.Storage.Type = "floppy"

	s, err := InitializeDefaults(ctx, cfg, "", fixedFingerprint("fp"))
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	if _, ok := s.Store.(*localstore.MemoryStore); !ok {
		t.Fatalf("expected in-memory store, got %T", s.Store)
	}
	if s.Client.DeviceID() != "fp" {
		t.Fatalf("identity must still work without storage")
	}
}

func TestInitializeDefaults_WithClient(t *testing.T) {
	ctx := context.Background()
	cfg := demoConfig()
	cfg.Demo = false
	// never validated when a client is passed in
	cfg.API.BaseURL = "ftp://ignored"
	injected := client.NewMemoryClient(client.NewMemoryBackend())

	s, err := InitializeDefaults(ctx, cfg, "", fixedFingerprint("fp"), WithClient(injected))
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	if s.Client != client.Client(injected) {
		t.Fatalf("injected client was replaced")
	}
	if injected.DeviceID() != "fp" {
		t.Fatalf("device id not set on the injected client")
	}
}

func TestInitializeDefaults_StoredIDWins(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	if err := store.Set(ctx, localstore.KeyDeviceID, "kept-id"); err != nil {
		t.Fatal(err)
	}
	withStore := func(o *options) {
		o.openStore = func(string, string) (localstore.Store, error) { return store, nil }
	}

	s, err := InitializeDefaults(ctx, demoConfig(), "", fixedFingerprint("new-fp"), withStore)
	if err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(ctx) })

	if s.Client.DeviceID() != "kept-id" || s.Identity.Outcome().Source != identity.SourceStored {
		t.Fatalf("stored id must be reused, got %+v", s.Identity.Outcome())
	}
}

func TestValidateBaseURL(t *testing.T) {
	for raw, ok := range map[string]bool{
		"":                          true,
		"http://localhost:8000/api": true,
		"https://qr.example.com":    true,
		"ftp://example.com":         false,
		"localhost:8000":            false,
		"://broken":                 false,
	} {
		if err := validateBaseURL(raw); (err == nil) != ok {
			t.Errorf("validateBaseURL(%q) = %v, want ok=%v", raw, err, ok)
		}
	}
}
