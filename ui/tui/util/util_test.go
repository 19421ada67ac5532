// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package util

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type testKeyMap []key.Binding

func (k testKeyMap) ShortHelp() []key.Binding  { return k }
func (k testKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k} }

func TestMergeKeyMaps_SkipsNil(t *testing.T) {
	a := testKeyMap{key.NewBinding(key.WithKeys("a"))}
	b := testKeyMap{key.NewBinding(key.WithKeys("b")), key.NewBinding(key.WithKeys("c"))}
	m := MergeKeyMaps(a, nil, b)
	if n := len(m.ShortHelp()); n != 3 {
		t.Fatalf("expected 3 short bindings, got %d", n)
	}
	if n := len(m.FullHelp()); n != 2 {
		t.Fatalf("expected 2 groups, got %d", n)
	}
}

func TestAnnounceKeyMapCmd(t *testing.T) {
	msg := AnnounceKeyMapCmd(testKeyMap{key.NewBinding(key.WithKeys("x"))}, nil)()
	am, ok := msg.(AnnounceKeyMapMsg)
	if !ok {
		t.Fatalf("unexpected msg %T", msg)
	}
	if len(am.KeyMap.ShortHelp()) != 1 {
		t.Fatalf("expected one binding")
	}
	var _ help.KeyMap = am.KeyMap
}

func TestClamp(t *testing.T) {
	if Clamp(0, -1, 5) != 0 || Clamp(0, 9, 5) != 5 || Clamp(0, 3, 5) != 3 {
		t.Fatalf("clamp mismatch")
	}
}

func TestSizeUpdate(t *testing.T) {
	var s Size
	if s.Update(tea.KeyMsg{}) {
		t.Fatalf("key msg must not resize")
	}
	if !s.Update(tea.WindowSizeMsg{Width: 80, Height: 24}) || s.Width != 80 || s.Height != 24 {
		t.Fatalf("unexpected size %+v", s)
	}
	if s.ToMsg() != (tea.WindowSizeMsg{Width: 80, Height: 24}) {
		t.Fatalf("ToMsg mismatch")
	}
}

func TestUpdateTeaModelInplace(t *testing.T) {
	sp := spinner.New()
	cmd := UpdateTeaModelInplace(sp.Tick(), &sp)
	if cmd == nil {
		t.Fatalf("spinner tick should schedule the next tick")
	}
	var unsupported int
	if UpdateTeaModelInplace(tea.KeyMsg{}, &unsupported) != nil {
		t.Fatalf("unsupported models return nil")
	}
}
