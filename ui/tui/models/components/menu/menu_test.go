// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package menu

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type goMsg struct{}

func TestMenu_Select(t *testing.T) {
	m := New(
		WithItem("generate", "Generate", func() tea.Msg { return goMsg{} }),
		WithItem("history", "History", nil),
	)

	if m.ActiveID() != "generate" {
		t.Fatalf("first item must be active initially")
	}
	if _, ok := m.Select("generate")().(goMsg); !ok {
		t.Fatalf("expected the item command")
	}

	msg := m.Select("history")()
	if sel, ok := msg.(ItemSelected); !ok || sel.ID != "history" {
		t.Fatalf("expected ItemSelected for history, got %#v", msg)
	}
	if m.ActiveID() != "history" {
		t.Fatalf("active not moved")
	}

	if cmd := m.Select("missing"); cmd != nil {
		t.Fatalf("unknown id must not select anything")
	}
	m.SetActive("generate")
	if m.Active != 0 {
		t.Fatalf("SetActive failed")
	}
}

func TestMenu_View(t *testing.T) {
	m := New(WithItem("a", "Alpha", nil), WithItem("b", "Beta", nil))
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 1})

	view := m.View()
	if !strings.Contains(view, "Alpha") || !strings.Contains(view, "Beta") {
		t.Fatalf("unexpected view %q", view)
	}

	m.Update(tea.WindowSizeMsg{Width: 5, Height: 1})
	if w := len([]rune(m.View())); w > 5 {
		t.Fatalf("view exceeds width: %q", m.View())
	}
}
