// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package ui

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/qrify/qrify/client"
	"github.com/qrify/qrify/internal/actions"
	"github.com/qrify/qrify/internal/appstate"
	"github.com/qrify/qrify/internal/config"
	genflow "github.com/qrify/qrify/internal/flows/generate"
	histflow "github.com/qrify/qrify/internal/flows/history"
	"github.com/qrify/qrify/internal/identity"
	"github.com/qrify/qrify/internal/localstore"
	"github.com/qrify/qrify/internal/logging"
)

// Services is everything a user interface needs, ready to use.
type Services struct {
	Config   config.Config
	Store    localstore.Store
	Identity *identity.Provider
	Client   client.Client
	State    *appstate.State
	Generate *genflow.Flow
	History  *histflow.Flow
	Actions  *actions.Actions
}

type options struct {
	fingerprinter identity.Fingerprinter
	client        client.Client
	openStore     func(dbType, dsn string) (localstore.Store, error)
}

type Option func(*options)

// WithFingerprinter replaces the host fingerprint.
func WithFingerprinter(fp identity.Fingerprinter) Option {
	return func(o *options) { o.fingerprinter = fp }
}

// WithClient skips building a client from the configuration.
func WithClient(c client.Client) Option {
	return func(o *options) { o.client = c }
}

// InitializeDefaults opens the local store, establishes the device identity
// and builds the backend client. A store that cannot be opened is replaced by
// an in-memory one, so the identity still works for this run.
func InitializeDefaults(ctx context.Context, cfg config.Config, version string, opts ...Option) (*Services, error) {
	o := options{
		fingerprinter: identity.HostFingerprinter{},
		openStore:     localstore.Open,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.client == nil && !cfg.Demo {
		if err := validateBaseURL(cfg.API.BaseURL); err != nil {
			return nil, err
		}
	}

	store, err := o.openStore(cfg.Storage.Type, cfg.Storage.Dsn)
	if err != nil {
		logging.Warnf("storage %s unavailable, identity will not persist: %v", cfg.Storage.Type, err)
		store = localstore.NewMemoryStore()
	}

	provider := identity.NewProvider(store, o.fingerprinter)
	outcome := provider.Init(ctx)
	logging.Infof("device id established from %s", outcome.Source)

	c := o.client
	if c == nil {
		c = newClient(cfg, version)
	}
	c.SetDeviceID(outcome.ID)

	state := appstate.New(store, appstate.ParseTheme(cfg.Theme))
	state.LoadTheme(ctx)
	state.SetDevice(outcome.ID)

	return &Services{
		Config:   cfg,
		Store:    store,
		Identity: provider,
		Client:   c,
		State:    state,
		Generate: genflow.New(c, state),
		History:  histflow.New(c),
		Actions:  actions.New(cfg.DownloadDir),
	}, nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid api.base_url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid api.base_url %q: scheme must be http or https", raw)
	}
	return nil
}

func newClient(cfg config.Config, version string) client.Client {
	if cfg.Demo {
		logging.Infof("demo mode: using the in-memory backend")
		return client.NewMemoryClient(client.NewMemoryBackend())
	}
	ccfg := client.NewDefaultConfig()
	if cfg.API.BaseURL != "" {
		ccfg.BaseURL = cfg.API.BaseURL
	}
	if version != "" {
		ccfg.UserAgent = "qrify/" + version
	}
	return client.NewHTTPClient(ccfg)
}

// Close releases the client and the store.
func (s *Services) Close(ctx context.Context) error {
	return errors.Join(s.Client.Close(ctx), s.Store.Close())
}
