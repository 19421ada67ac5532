// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package identity establishes the device identifier that scopes history and
// stats on the backend. The identifier is read from local storage, or minted
// once from a host fingerprint (or a random UUID) and persisted.
package identity

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/qrify/qrify/internal/localstore"
	"github.com/qrify/qrify/internal/logging"
)

// Source tells where the identifier came from.
type Source int

const (
	SourceNone Source = iota
	SourceStored
	SourceFingerprinted
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceStored:
		return "stored"
	case SourceFingerprinted:
		return "fingerprinted"
	case SourceFallback:
		return "fallback"
	default:
		return "none"
	}
}

type Outcome struct {
	ID     string
	Source Source
}

type Fingerprinter interface {
	Fingerprint(ctx context.Context) (string, error)
}

// FingerprintFunc adapts a plain function to Fingerprinter.
type FingerprintFunc func(ctx context.Context) (string, error)

func (f FingerprintFunc) Fingerprint(ctx context.Context) (string, error) {
	return f(ctx)
}

var ErrEmptyFingerprint = errors.New("fingerprint is empty")

type Provider struct {
	store  localstore.Store
	fp     Fingerprinter
	newID  func() string
	mu     sync.RWMutex
	result Outcome
	ready  bool
}

type Option func(*Provider)

// WithIDGenerator replaces uuid.NewString for the fallback identifier.
func WithIDGenerator(gen func() string) Option {
	return func(p *Provider) { p.newID = gen }
}

func NewProvider(store localstore.Store, fp Fingerprinter, opts ...Option) *Provider {
	p := &Provider{store: store, fp: fp, newID: uuid.NewString}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Init resolves the identifier. It always ends ready; failures are logged and
// masked by the fallback. Calling Init again returns the first outcome.
func (p *Provider) Init(ctx context.Context) Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ready {
		return p.result
	}

	stored, err := p.store.Get(ctx, localstore.KeyDeviceID)
	switch {
	case err == nil && stored != "":
		p.finish(Outcome{ID: stored, Source: SourceStored})
		return p.result
	case err != nil && !errors.Is(err, localstore.ErrNotFound):
		logging.Warnf("identity: reading stored id failed: %v", err)
	}

	out := Outcome{Source: SourceFingerprinted}
	out.ID, err = p.fingerprint(ctx)
	if err != nil {
		logging.Warnf("identity: fingerprint failed, using random id: %v", err)
		out = Outcome{ID: p.newID(), Source: SourceFallback}
	}

	if err := p.store.Set(ctx, localstore.KeyDeviceID, out.ID); err != nil {
		logging.Warnf("identity: persisting id failed: %v", err)
	}
	p.finish(out)
	return p.result
}

func (p *Provider) fingerprint(ctx context.Context) (string, error) {
	if p.fp == nil {
		return "", errors.New("no fingerprinter configured")
	}
	id, err := p.fp.Fingerprint(ctx)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(id) == "" {
		return "", ErrEmptyFingerprint
	}
	return id, nil
}

func (p *Provider) finish(o Outcome) {
	p.result = o
	p.ready = true
	logging.Debugf("identity: device id ready (%s)", o.Source)
}

// ID returns the identifier and false while not ready.
func (p *Provider) ID() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.result.ID, p.ready
}

func (p *Provider) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.ready
}

func (p *Provider) Outcome() Outcome {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.result
}
