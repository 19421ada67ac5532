// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/qrify/qrify/client"
	"github.com/qrify/qrify/internal/actions"
	"github.com/qrify/qrify/internal/appstate"
	histflow "github.com/qrify/qrify/internal/flows/history"
	"github.com/qrify/qrify/internal/localstore"
	"github.com/qrify/qrify/ui/tui/models/components/popup"
	"github.com/qrify/qrify/ui/tui/util"
)

const device = "history-view-device"

type createRequested struct{}

type fixture struct {
	view    *Model
	inj     *popup.Injector
	backend *client.MemoryBackend
	copied  []string
	dir     string
}

func newFixture(t *testing.T, wrap func(client.Client) client.Client, seed ...string) *fixture {
	t.Helper()
	f := &fixture{backend: client.NewMemoryBackend(), dir: t.TempDir()}
	for _, data := range seed {
		if _, err := f.backend.Create(device, client.CreateInput{Data: data, DeviceID: device}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	var c client.Client = client.NewMemoryClient(f.backend)
	c.SetDeviceID(device)
	if wrap != nil {
		c = wrap(c)
	}

	acts := actions.New(f.dir)
	acts.Copy = func(text string) error {
		f.copied = append(f.copied, text)
		return nil
	}
	state := appstate.New(localstore.NewMemoryStore(), appstate.ThemeLight)

	f.view = New(context.Background(), histflow.New(c), acts, state, func() tea.Msg { return createRequested{} })
	f.inj = popup.NewInjector(util.ModelPointer(f.view), nil)
	f.inj.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	f.inj.Focus(nil)
	f.pump(t, f.inj.Init())
	return f
}

// unwrap returns the commands of batch and sequence messages.
func unwrap(msg tea.Msg) ([]tea.Cmd, bool) {
	v := reflect.ValueOf(msg)
	if !v.IsValid() || v.Kind() != reflect.Slice || v.Type().Elem() != reflect.TypeOf(tea.Cmd(nil)) {
		return nil, false
	}
	cmds := make([]tea.Cmd, v.Len())
	for i := range cmds {
		cmds[i] = v.Index(i).Interface().(tea.Cmd)
	}
	return cmds, true
}

// pump feeds the messages of cmd back into the injector until nothing is
// left. Spinner ticks are dropped; commands that sleep must not be pumped.
func (f *fixture) pump(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		if i > 500 {
			t.Fatalf("message loop did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if cmds, ok := unwrap(msg); ok {
			queue = append(queue, cmds...)
			continue
		}
		if _, ok := msg.(spinner.TickMsg); ok || msg == nil {
			continue
		}
		seen = append(seen, msg)
		queue = append(queue, f.inj.Update(msg))
	}
	return seen
}

func (f *fixture) press(t *testing.T, keys string) []tea.Msg {
	t.Helper()
	msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	switch keys {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	}
	return f.pump(t, f.inj.Update(msg))
}

func (f *fixture) count(t *testing.T) int {
	t.Helper()
	p, err := f.backend.History(device, 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	return p.Count
}

func TestHistory_LoadsRecordsAndStats(t *testing.T) {
	f := newFixture(t, nil, "first", "https://example.com/second", "third")

	snap := f.view.Snapshot()
	if len(snap.Records) != 3 || snap.Stats.TotalQRCodes != 3 || !snap.HasStats {
		t.Fatalf("unexpected snapshot %+v", snap)
	}
	if f.view.Loading() {
		t.Fatalf("still loading")
	}
	rec, ok := f.view.Selected()
	if !ok || rec.Data != "third" {
		t.Fatalf("expected newest record selected, got %+v", rec)
	}

	view := ansi.Strip(f.inj.View())
	for _, want := range []string{"QR Code History", "Total QR Codes", "Total Scans", "third", "Page 1"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view misses %q:\n%s", want, view)
		}
	}
}

func TestHistory_EmptyStateOffersCreate(t *testing.T) {
	f := newFixture(t, nil)

	if !f.view.keyMap.Create.Enabled() || f.view.keyMap.Delete.Enabled() {
		t.Fatalf("unexpected key state for empty history")
	}
	if !strings.Contains(ansi.Strip(f.inj.View()), "No QR Codes Yet") {
		t.Fatalf("empty state not shown")
	}
	found := false
	for _, msg := range f.press(t, "enter") {
		if _, ok := msg.(createRequested); ok {
			found = true
		}
	}
	if !found {
		t.Fatalf("enter must trigger create")
	}
}

func TestHistory_SelectionMoves(t *testing.T) {
	f := newFixture(t, nil, "a", "b", "c")

	f.press(t, "j")
	f.press(t, "j")
	f.press(t, "j")
	if rec, _ := f.view.Selected(); rec.Data != "a" {
		t.Fatalf("expected last record selected, got %q", rec.Data)
	}
	f.press(t, "k")
	if rec, _ := f.view.Selected(); rec.Data != "b" {
		t.Fatalf("expected middle record, got %q", rec.Data)
	}
}

func TestHistory_DeleteAfterConfirm(t *testing.T) {
	f := newFixture(t, nil, "keep", "remove")

	f.press(t, "x")
	if !f.inj.Open() {
		t.Fatalf("expected confirm dialog")
	}
	if !strings.Contains(ansi.Strip(f.inj.View()), "Are you sure") {
		t.Fatalf("dialog text missing")
	}
	f.press(t, "enter")

	if f.inj.Open() {
		t.Fatalf("dialog must close after confirm")
	}
	if f.count(t) != 1 {
		t.Fatalf("expected one record left on the backend")
	}
	snap := f.view.Snapshot()
	if len(snap.Records) != 1 || snap.Records[0].Data != "keep" || snap.Stats.TotalQRCodes != 1 {
		t.Fatalf("unexpected snapshot after delete %+v", snap)
	}
}

func TestHistory_DeleteCancelled(t *testing.T) {
	f := newFixture(t, nil, "keep")

	f.press(t, "x")
	f.press(t, "esc")
	if f.inj.Open() {
		t.Fatalf("dialog must close on esc")
	}

	f.press(t, "x")
	f.press(t, "l") // move to "no"
	f.press(t, "enter")
	if f.inj.Open() || f.count(t) != 1 || len(f.view.Snapshot().Records) != 1 {
		t.Fatalf("record must survive a cancelled delete")
	}
}

func TestHistory_DeleteFailureShowsAlert(t *testing.T) {
	f := newFixture(t, func(c client.Client) client.Client {
		return client.NewMockClient(c, client.MockClientOverwrites{
			Delete: func(context.Context, client.ID) (client.Deletion, error) {
				return client.Deletion{}, client.NewAPIError(500, []byte(`{}`))
			},
		})
	}, "stays")

	f.press(t, "x")
	f.press(t, "enter")

	if !f.inj.Open() {
		t.Fatalf("expected failure alert")
	}
	if !strings.Contains(ansi.Strip(f.inj.View()), "Failed to delete QR code") {
		t.Fatalf("alert text missing:\n%s", ansi.Strip(f.inj.View()))
	}
	if len(f.view.Snapshot().Records) != 1 {
		t.Fatalf("record must stay listed after a failed delete")
	}
	f.press(t, "enter")
	if f.inj.Open() {
		t.Fatalf("alert must close when acknowledged")
	}
}

func TestHistory_CopyShowsAlert(t *testing.T) {
	f := newFixture(t, nil, "copy me")

	f.press(t, "c")
	if len(f.copied) != 1 || f.copied[0] != "copy me" {
		t.Fatalf("unexpected clipboard %v", f.copied)
	}
	if !f.inj.Open() || !strings.Contains(ansi.Strip(f.inj.View()), "Copied to clipboard!") {
		t.Fatalf("expected copied alert")
	}
}

func TestHistory_DownloadUsesRecordID(t *testing.T) {
	f := newFixture(t, nil, "png")
	rec, _ := f.view.Selected()

	// the notice timer sleeps, so the command is run by hand
	msg := f.view.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})()
	f.view.Update(msg)

	want := filepath.Join(f.dir, "qrcode-"+rec.ID.String()+".png")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected %s: %v", want, err)
	}
	if !strings.Contains(f.view.Notice(), want) {
		t.Fatalf("unexpected notice %q", f.view.Notice())
	}
}

func TestHistory_Paging(t *testing.T) {
	seed := make([]string, 12)
	for i := range seed {
		seed[i] = fmt.Sprintf("item-%02d", i)
	}
	f := newFixture(t, nil, seed...)

	if !f.view.keyMap.Next.Enabled() || f.view.keyMap.Prev.Enabled() {
		t.Fatalf("unexpected paging keys on the first page")
	}
	f.press(t, "n")
	snap := f.view.Snapshot()
	if snap.Page != 2 || len(snap.Records) != 2 {
		t.Fatalf("expected page 2 with two records, got page %d with %d", snap.Page, len(snap.Records))
	}
	f.press(t, "p")
	if f.view.Snapshot().Page != 1 {
		t.Fatalf("expected back on page 1")
	}
}

func TestHistory_ListChangesWaitForOutstandingLoad(t *testing.T) {
	f := newFixture(t, nil, "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k")
	rec, _ := f.view.Selected()

	// started but not run, the reload stays outstanding
	if cmd := f.view.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")}); cmd == nil {
		t.Fatalf("reload did not start")
	}
	if !f.view.Loading() {
		t.Fatalf("expected loading")
	}
	for name, enabled := range map[string]bool{
		"delete": f.view.keyMap.Delete.Enabled(),
		"next":   f.view.keyMap.Next.Enabled(),
		"reload": f.view.keyMap.Reload.Enabled(),
	} {
		if enabled {
			t.Fatalf("%s must be disabled while loading", name)
		}
	}
	if cmd := f.view.handleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")}); cmd != nil {
		t.Fatalf("delete confirmation opened while loading")
	}
	if cmd := f.view.Update(deleteRequestedMsg{id: rec.ID}); cmd != nil {
		t.Fatalf("delete started while loading")
	}
	if f.count(t) != 11 {
		t.Fatalf("record deleted during a load")
	}
	if !f.view.keyMap.Copy.Enabled() {
		t.Fatalf("actions that keep the list stay available")
	}

	f.view.Update(loadedMsg{snap: f.view.flow.Snapshot()})
	if f.view.Loading() || !f.view.keyMap.Delete.Enabled() || !f.view.keyMap.Next.Enabled() {
		t.Fatalf("keys not restored after the load")
	}
}

func TestHistory_DeletingLastOnPageShowsPreviousPage(t *testing.T) {
	seed := make([]string, 11)
	for i := range seed {
		seed[i] = fmt.Sprintf("item-%02d", i)
	}
	f := newFixture(t, nil, seed...)
	f.press(t, "n")
	if snap := f.view.Snapshot(); snap.Page != 2 || len(snap.Records) != 1 {
		t.Fatalf("expected one record on page 2, got %+v", snap)
	}

	f.press(t, "x")
	f.press(t, "enter")

	snap := f.view.Snapshot()
	if snap.Page != 1 || len(snap.Records) != 10 {
		t.Fatalf("expected page 1 after draining page 2, got page %d with %d", snap.Page, len(snap.Records))
	}
	if strings.Contains(ansi.Strip(f.inj.View()), "No QR Codes Yet") {
		t.Fatalf("empty call to action shown while records remain")
	}
}
