// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package router

import (
	"testing"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qrify/qrify/ui/tui/util"
)

type page struct {
	name    string
	control Control
	size    tea.WindowSizeMsg
	focused bool
	inits   int
	got     []tea.Msg
}

func (p *page) Init() tea.Cmd {
	p.inits++
	return nil
}

func (p *page) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case InitMsg:
		p.control = msg.Control
	case tea.WindowSizeMsg:
		p.size = msg
	default:
		p.got = append(p.got, msg)
	}
	return nil
}

func (p *page) View() string { return p.name }

func (p *page) Focus(help.KeyMap) tea.Cmd {
	p.focused = true
	return nil
}

func (p *page) Blur() { p.focused = false }

func newRouter(t *testing.T, first *page) *Router {
	t.Helper()
	r, _ := New(util.ModelPointer(first))
	r.Init()
	r.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	r.Focus(nil)
	if !first.control.Valid() {
		t.Fatalf("initial model did not get a control")
	}
	return &r
}

func TestRouter_PushAndPop(t *testing.T) {
	first, second := &page{name: "first"}, &page{name: "second"}
	r := newRouter(t, first)

	secondModel := util.ModelPointer(second)
	r.Update(first.control.Push(secondModel)())
	if r.View() != "second" || r.Depth() != 2 || r.Active() != secondModel {
		t.Fatalf("push not applied: view=%q depth=%d", r.View(), r.Depth())
	}
	if first.focused {
		t.Fatalf("covered model must be blurred")
	}

	r.Update(second.control.Pop(5)())
	if r.View() != "first" || r.Depth() != 1 {
		t.Fatalf("pop must stop at the initial model, view=%q depth=%d", r.View(), r.Depth())
	}
	if !first.focused || second.focused {
		t.Fatalf("focus not restored after pop")
	}
}

func TestRouter_ChangeInitializesNewModel(t *testing.T) {
	first, second := &page{name: "first"}, &page{name: "second"}
	r := newRouter(t, first)

	secondModel := util.ModelPointer(second)
	cmd := r.Update(first.control.Change(secondModel)())
	if cmd == nil {
		t.Fatalf("expected init commands")
	}
	if r.View() != "second" || r.Depth() != 1 {
		t.Fatalf("change not applied: %q depth=%d", r.View(), r.Depth())
	}
	if first.focused {
		t.Fatalf("old model must be blurred")
	}
	// the init sequence is built eagerly
	if second.inits != 1 || !second.control.Valid() || second.size.Width != 30 || !second.focused {
		t.Fatalf("new model not initialized: %+v", second)
	}

	// same model again is a no-op
	if cmd := r.Update(second.control.Change(secondModel)()); cmd != nil {
		t.Fatalf("expected no-op for the active model")
	}
}

func TestRouter_IgnoresForeignMessages(t *testing.T) {
	first := &page{name: "first"}
	r := newRouter(t, first)
	other, otherControl := New(util.ModelPointer(&page{}))

	r.Update(otherControl.Push(util.ModelPointer(&page{name: "intruder"}))())
	if r.Depth() != 1 {
		t.Fatalf("foreign push must not be handled")
	}
	// the foreign router message is passed on like any other
	if len(first.got) != 1 {
		t.Fatalf("expected message forwarded to the active model, got %v", first.got)
	}

	before := first.control
	r.Update(InitMsg{Control: Control{rid: other.id}})
	if first.control != before {
		t.Fatalf("child must not receive a parent InitMsg")
	}
}

func TestRouter_UnfocusedDoesNotFocusChildren(t *testing.T) {
	first, second := &page{}, &page{}
	r, _ := New(util.ModelPointer(first))
	r.Init()

	r.Update(first.control.Push(util.ModelPointer(second))())
	if second.focused {
		t.Fatalf("router without focus must not focus children")
	}
}
