// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package history_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/qrify/qrify/client"
	"github.com/qrify/qrify/internal/flows/history"
	"github.com/qrify/qrify/internal/testutil"
)

func seeded(t *testing.T, n int) (*client.MemoryClient, []client.Record) {
	t.Helper()
	c := client.NewMemoryClient(nil)
	c.Backend().PageSize = 2
	c.SetDeviceID("dev")
	var recs []client.Record
	for i := 0; i < n; i++ {
		r, err := c.Create(context.Background(), client.CreateInput{Data: string(rune('a' + i)), DeviceID: "dev"})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		recs = append(recs, r)
	}
	return c, recs
}

func TestLoad_HistoryAndStats(t *testing.T) {
	c, recs := seeded(t, 3)
	_, _ = c.IncrementScan(context.Background(), recs[0].ID)

	f := history.New(c)
	snap := f.Load(context.Background(), 1)
	if snap.HistoryErr != nil || snap.StatsErr != nil {
		t.Fatalf("unexpected errors %v %v", snap.HistoryErr, snap.StatsErr)
	}
	if len(snap.Records) != 2 || snap.Count != 3 || !snap.HasNext || snap.HasPrev {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if !snap.HasStats || snap.Stats != (client.Stats{TotalQRCodes: 3, TotalScans: 1}) {
		t.Fatalf("unexpected stats %+v", snap.Stats)
	}

	next := f.NextPage(context.Background())
	if next.Page != 2 || len(next.Records) != 1 || next.HasNext || !next.HasPrev {
		t.Fatalf("unexpected next page %+v", next)
	}
	if again := f.NextPage(context.Background()); again.Page != 2 {
		t.Fatalf("next beyond last page moved to %d", again.Page)
	}
	if prev := f.PrevPage(context.Background()); prev.Page != 1 {
		t.Fatalf("expected page 1, got %d", prev.Page)
	}
	if f.Page() != 1 || !f.HasNext() || f.HasPrev() {
		t.Fatalf("accessors disagree with snapshot")
	}
}

func TestLoad_RunsConcurrently(t *testing.T) {
	var inFlight, peak atomic.Int32
	track := func() func() {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		return func() { inFlight.Add(-1) }
	}
	c := client.NewMockClient(nil, client.MockClientOverwrites{
		History: func(context.Context, int) (client.Page, error) {
			defer track()()
			return client.Page{}, nil
		},
		Stats: func(context.Context) (client.Stats, error) {
			defer track()()
			return client.Stats{}, nil
		},
	})
	history.New(c).Load(context.Background(), 1)
	if peak.Load() != 2 {
		t.Fatalf("expected history and stats in flight together, peak %d", peak.Load())
	}
}

func TestLoad_FailuresAreIndependent(t *testing.T) {
	fake := testutil.NewFakeBackend(t)
	c := fake.Client("dev")
	_, _ = c.Create(context.Background(), client.CreateInput{Data: "x", DeviceID: "dev"})
	f := history.New(c)

	fake.Fail(testutil.RouteStats, http.StatusInternalServerError, `{}`)
	snap := f.Load(context.Background(), 1)
	if snap.HistoryErr != nil || len(snap.Records) != 1 {
		t.Fatalf("history should load despite stats failure: %+v", snap)
	}
	if snap.StatsErr == nil || snap.HasStats {
		t.Fatalf("expected stats error, got %+v", snap)
	}
	fake.Recover(testutil.RouteStats)

	fake.Fail(testutil.RouteHistory, http.StatusBadGateway, `{"error":"upstream"}`)
	snap = f.Load(context.Background(), 1)
	if snap.HistoryErr == nil || snap.StatsErr != nil || !snap.HasStats {
		t.Fatalf("expected only history error, got %+v", snap)
	}
	if len(snap.Records) != 1 {
		t.Fatalf("failed reload must keep the previous records")
	}
	if snap.Empty() {
		t.Fatalf("failed load must not look like an empty history")
	}
}

func TestDelete_RemovesOnlyAfterSuccess(t *testing.T) {
	c, recs := seeded(t, 2)
	f := history.New(c)
	f.Load(context.Background(), 1)

	snap, err := f.Delete(context.Background(), recs[0].ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(snap.Records) != 1 || snap.Records[0].ID != recs[1].ID || snap.Count != 1 {
		t.Fatalf("unexpected snapshot after delete %+v", snap)
	}
	if snap.Stats.TotalQRCodes != 1 {
		t.Fatalf("stats not refreshed: %+v", snap.Stats)
	}
}

func TestDelete_FailureLeavesListUnchanged(t *testing.T) {
	base, recs := seeded(t, 2)
	statsCalls := 0
	c := client.NewMockClient(base, client.MockClientOverwrites{
		Delete: func(context.Context, client.ID) (client.Deletion, error) {
			return client.Deletion{}, client.NewAPIError(http.StatusForbidden, []byte(`{"error":"You can only delete your own QR codes"}`))
		},
		Stats: func(ctx context.Context) (client.Stats, error) {
			statsCalls++
			return base.Stats(ctx)
		},
	})
	f := history.New(c)
	f.Load(context.Background(), 1)
	before := statsCalls

	snap, err := f.Delete(context.Background(), recs[0].ID)
	if !client.IsForbidden(err) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if len(snap.Records) != 2 || len(f.Records()) != 2 {
		t.Fatalf("list changed on failed delete")
	}
	if statsCalls != before {
		t.Fatalf("stats refetched after failed delete")
	}
}

func TestEmpty(t *testing.T) {
	c := client.NewMemoryClient(nil)
	c.SetDeviceID("new")
	snap := history.New(c).Load(context.Background(), 0)
	if !snap.Empty() || snap.Page != 1 {
		t.Fatalf("expected empty first page, got %+v", snap)
	}
	if s, ok := history.New(c).Stats(); ok || s != (client.Stats{}) {
		t.Fatalf("stats reported before load")
	}
	if errors.Is(snap.HistoryErr, client.ErrNoDeviceID) {
		t.Fatalf("device is set")
	}
}

func TestDelete_DropsReloadStartedBefore(t *testing.T) {
	base, recs := seeded(t, 2)
	var hold atomic.Bool
	historyDone := make(chan struct{})
	statsHeld := make(chan struct{})
	gate := make(chan struct{})
	c := client.NewMockClient(base, client.MockClientOverwrites{
		History: func(ctx context.Context, page int) (client.Page, error) {
			p, err := base.History(ctx, page)
			if hold.Load() {
				close(historyDone)
			}
			return p, err
		},
		Stats: func(ctx context.Context) (client.Stats, error) {
			if hold.CompareAndSwap(true, false) {
				close(statsHeld)
				<-gate
			}
			return base.Stats(ctx)
		},
	})
	f := history.New(c)
	f.Load(context.Background(), 1)

	hold.Store(true)
	reloaded := make(chan history.Snapshot)
	go func() { reloaded <- f.Reload(context.Background()) }()
	<-historyDone
	<-statsHeld

	// the reload already holds a history page listing the record
	if _, err := f.Delete(context.Background(), recs[1].ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	close(gate)
	snap := <-reloaded

	for _, s := range []history.Snapshot{snap, f.Snapshot()} {
		if len(s.Records) != 1 || s.Records[0].ID != recs[0].ID {
			t.Fatalf("deleted record came back: %+v", s.Records)
		}
		if s.Stats.TotalQRCodes != 1 {
			t.Fatalf("stale stats applied: %+v", s.Stats)
		}
	}

	if after := f.Reload(context.Background()); len(after.Records) != 1 {
		t.Fatalf("later reloads must apply again, got %+v", after.Records)
	}
}

func TestDelete_LastRecordOnPageMovesBack(t *testing.T) {
	c, recs := seeded(t, 3)
	f := history.New(c)
	if snap := f.Load(context.Background(), 2); len(snap.Records) != 1 || !snap.HasPrev {
		t.Fatalf("unexpected second page %+v", snap)
	}

	snap, err := f.Delete(context.Background(), recs[0].ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if snap.Page != 1 || len(snap.Records) != 2 || snap.HasNext || snap.HasPrev {
		t.Fatalf("expected first page with the remaining records, got %+v", snap)
	}
	if snap.Empty() || snap.Stats.TotalQRCodes != 2 {
		t.Fatalf("history with records reported empty: %+v", snap)
	}
}

func TestEmpty_LaterPageIsNotEmptyHistory(t *testing.T) {
	s := history.Snapshot{Page: 2, HasPrev: true}
	if s.Empty() {
		t.Fatalf("an empty later page must not count as an empty history")
	}
	if !(history.Snapshot{Page: 1}).Empty() {
		t.Fatalf("an empty first page is an empty history")
	}
}
