// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package popup

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/qrify/qrify/ui/tui/util"
)

type box struct {
	text    string
	size    tea.WindowSizeMsg
	keys    int
	other   int
	focused bool
}

func (b *box) Init() tea.Cmd { return nil }

func (b *box) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.size = msg
	case tea.KeyMsg:
		b.keys++
	default:
		b.other++
	}
	return nil
}

func (b *box) View() string { return b.text }

func (b *box) Focus(help.KeyMap) tea.Cmd {
	b.focused = true
	return nil
}

func (b *box) Blur() { b.focused = false }

type ping struct{}

func TestInjector_RoutesInputToPopup(t *testing.T) {
	child, pop := &box{text: "child"}, &box{text: "pop"}
	inj := NewInjector(util.ModelPointer(child), nil)
	inj.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	inj.Focus(nil)

	inj.Update(Open(util.ModelPointer(pop))())
	if !inj.Open() {
		t.Fatalf("expected popup open")
	}
	if child.focused || !pop.focused {
		t.Fatalf("focus must move to the popup")
	}
	if pop.size.Width != 40-reservedWidth || pop.size.Height != 12-reservedHeight {
		t.Fatalf("unexpected popup size %+v", pop.size)
	}

	inj.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if child.keys != 0 || pop.keys != 1 {
		t.Fatalf("key not routed to popup: child=%d pop=%d", child.keys, pop.keys)
	}

	inj.Update(ping{})
	if child.other != 1 || pop.other != 1 {
		t.Fatalf("other messages must reach both: child=%d pop=%d", child.other, pop.other)
	}
}

func TestInjector_CloseRunsCallbackAndRestoresFocus(t *testing.T) {
	child, pop := &box{text: "child"}, &box{text: "pop"}
	inj := NewInjector(util.ModelPointer(child), nil)
	inj.Focus(nil)

	var closed *util.Model
	popModel := util.ModelPointer(pop)
	inj.Update(OpenWithCallback(popModel, func(m *util.Model) tea.Cmd {
		closed = m
		return nil
	})())
	inj.Update(Close()())

	if inj.Open() {
		t.Fatalf("expected popup closed")
	}
	if closed != popModel {
		t.Fatalf("callback did not get the popup")
	}
	if !child.focused || pop.focused {
		t.Fatalf("focus not restored to child")
	}
	// closing without popup is harmless
	if cmd := inj.Update(Close()()); cmd != nil {
		t.Fatalf("expected nil cmd")
	}
}

func TestInjector_ViewOverlaysPopup(t *testing.T) {
	line := strings.Repeat(".", 30)
	child := &box{text: strings.Repeat(line+"\n", 9) + line}
	inj := NewInjector(util.ModelPointer(child), nil)
	inj.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if inj.View() != child.text {
		t.Fatalf("without popup the child view is shown unchanged")
	}

	inj.Update(Open(util.ModelPointer(&box{text: "HELLO"}))())
	view := ansi.Strip(inj.View())
	lines := strings.Split(view, "\n")
	if len(lines) != 10 {
		t.Fatalf("overlay changed the height: %d lines", len(lines))
	}
	if !strings.Contains(view, "HELLO") {
		t.Fatalf("popup not visible:\n%s", view)
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 30 {
			t.Fatalf("line %d has width %d:\n%s", i, w, view)
		}
	}
}

func TestOverlay_Centers(t *testing.T) {
	bg := "aaaaa\naaaaa\naaaaa"
	got := overlay(bg, "X")
	if got != "aaaaa\naaXaa\naaaaa" {
		t.Fatalf("unexpected overlay:\n%s", got)
	}
}
