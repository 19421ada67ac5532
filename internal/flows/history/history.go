// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package history is the history/stats flow without any UI.
package history

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/qrify/qrify/client"
	"github.com/qrify/qrify/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Snapshot is a copy of the flow state, safe to hand to a view.
type Snapshot struct {
	Records []client.Record
	Stats   client.Stats
	// HasStats is false until stats loaded once.
	HasStats   bool
	Page       int
	Count      int
	HasNext    bool
	HasPrev    bool
	HistoryErr error
	StatsErr   error
}

// Empty reports a successfully loaded history without any records, on this
// page or an earlier one.
func (s Snapshot) Empty() bool {
	return s.HistoryErr == nil && len(s.Records) == 0 && !s.HasPrev
}

type Flow struct {
	client client.Client

	mu    sync.RWMutex
	state Snapshot
	// gen counts successful deletes. Loads started under an older gen are
	// dropped, their history may still list a deleted record.
	gen uint64
}

func New(c client.Client) *Flow {
	return &Flow{client: c, state: Snapshot{Page: 1}}
}

// Load fetches history page and stats concurrently. A failure of one side is
// recorded without discarding the other.
func (f *Flow) Load(ctx context.Context, page int) Snapshot {
	if page < 1 {
		page = 1
	}
	f.mu.RLock()
	gen := f.gen
	f.mu.RUnlock()

	var (
		p          client.Page
		s          client.Stats
		hErr, sErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, hErr = f.client.History(gctx, page)
		return nil
	})
	g.Go(func() error {
		s, sErr = f.client.Stats(gctx)
		return nil
	})
	_ = g.Wait()

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen {
		logging.Debugf("history: dropping page %d loaded before a delete", page)
		return f.snapshot()
	}
	f.state.HistoryErr = hErr
	if hErr != nil {
		logging.Warnf("history: loading page %d failed: %v", page, hErr)
	} else {
		f.state.Records = p.Results
		f.state.Page = page
		f.state.Count = p.Count
		f.state.HasNext = p.HasNext()
		f.state.HasPrev = p.HasPrevious()
	}
	f.applyStats(s, sErr)
	return f.snapshot()
}

func (f *Flow) Reload(ctx context.Context) Snapshot {
	return f.Load(ctx, f.Page())
}

// NextPage loads the following page; without one it returns the current state.
func (f *Flow) NextPage(ctx context.Context) Snapshot {
	snap := f.Snapshot()
	if !snap.HasNext {
		return snap
	}
	return f.Load(ctx, snap.Page+1)
}

func (f *Flow) PrevPage(ctx context.Context) Snapshot {
	snap := f.Snapshot()
	if !snap.HasPrev || snap.Page <= 1 {
		return snap
	}
	return f.Load(ctx, snap.Page-1)
}

// Delete removes id on the backend. Only after success the record leaves
// the local list and stats are fetched again. A page other than the first
// that ends up empty is replaced by the page before it.
func (f *Flow) Delete(ctx context.Context, id client.ID) (Snapshot, error) {
	if _, err := f.client.Delete(ctx, id); err != nil {
		return f.Snapshot(), fmt.Errorf("delete %s: %w", id, err)
	}

	f.mu.Lock()
	f.gen++
	before := len(f.state.Records)
	f.state.Records = slices.DeleteFunc(slices.Clone(f.state.Records), func(r client.Record) bool {
		return r.ID == id
	})
	if len(f.state.Records) < before && f.state.Count > 0 {
		f.state.Count--
	}
	page, drained := f.state.Page, len(f.state.Records) == 0
	f.mu.Unlock()

	if drained && page > 1 {
		return f.Load(ctx, page-1), nil
	}

	s, sErr := f.client.Stats(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.applyStats(s, sErr)
	return f.snapshot(), nil
}

// applyStats keeps the previous stats on failure. Caller holds mu.
func (f *Flow) applyStats(s client.Stats, err error) {
	f.state.StatsErr = err
	if err != nil {
		logging.Warnf("history: loading stats failed: %v", err)
		return
	}
	f.state.Stats = s
	f.state.HasStats = true
}

// snapshot copies the state. Caller holds mu.
func (f *Flow) snapshot() Snapshot {
	s := f.state
	s.Records = slices.Clone(f.state.Records)
	return s
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshot()
}

func (f *Flow) Records() []client.Record { return f.Snapshot().Records }

func (f *Flow) Stats() (client.Stats, bool) {
	s := f.Snapshot()
	return s.Stats, s.HasStats
}

func (f *Flow) Page() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.state.Page
}

func (f *Flow) HasNext() bool { return f.Snapshot().HasNext }

func (f *Flow) HasPrev() bool { return f.Snapshot().HasPrev }

func (f *Flow) HistoryErr() error { return f.Snapshot().HistoryErr }

func (f *Flow) StatsErr() error { return f.Snapshot().StatsErr }
