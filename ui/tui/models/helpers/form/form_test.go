// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package form_test

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qrify/qrify/ui/tui/models/helpers/form"
	forminput "github.com/qrify/qrify/ui/tui/models/helpers/form/input"
)

type request struct {
	Data string `mapstructure:"data"`
	Note string `mapstructure:"note"`
}

func typeText(f form.Form[request], s string) form.Form[request] {
	for _, r := range s {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return f
}

type submitted struct {
	result request
	err    error
}

// newForm records submits into got, OnSubmit runs synchronously.
func newForm(got *[]submitted, opts ...form.NewOpt[request]) form.Form[request] {
	opts = append([]form.NewOpt[request]{
		form.WithOnSubmit(func(r request, err error) tea.Cmd {
			*got = append(*got, submitted{r, err})
			return nil
		}),
		form.WithInput[request]("data", forminput.NewSubmitText("Data", "", "generate")),
		form.WithInput[request]("note", forminput.NewText("Note", "")),
		form.WithInput[request]("submit", forminput.NewButton("Go")),
	}, opts...)
	return form.New(opts...)
}

func TestForm_IgnoresInputWhileBlurred(t *testing.T) {
	var subs []submitted
	f := newForm(&subs)
	f = typeText(f, "abc")
	got, _ := f.Get()
	if got.Data != "" {
		t.Fatalf("blurred form must not take input, got %q", got.Data)
	}
}

func TestForm_TabMovesBetweenInputs(t *testing.T) {
	var subs []submitted
	f := newForm(&subs)
	f.Focus(nil)

	f = typeText(f, "hello")
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyTab})
	f = typeText(f, "note")

	got, err := f.Get()
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Data != "hello" || got.Note != "note" {
		t.Fatalf("unexpected values %+v", got)
	}

	// shift+tab wraps back from the first input to the button
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(subs) != 1 || subs[0].result.Data != "hello" {
		t.Fatalf("expected button to submit, got %+v", subs)
	}
}

func TestForm_EnterSubmitsAndResets(t *testing.T) {
	var subs []submitted
	f := newForm(&subs, form.WithResetAfterSubmit[request]())
	f.Focus(nil)
	f = typeText(f, "https://example.com")

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if len(subs) != 1 || subs[0].err != nil || subs[0].result.Data != "https://example.com" {
		t.Fatalf("unexpected submit %+v", subs)
	}

	after, _ := f.Get()
	if after.Data != "" {
		t.Fatalf("expected reset after submit, got %q", after.Data)
	}
}

func TestForm_SetFillsInputs(t *testing.T) {
	var subs []submitted
	f := newForm(&subs)
	if err := f.Set(request{Data: "x", Note: "y"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, _ := f.Get()
	if got.Data != "x" || got.Note != "y" {
		t.Fatalf("unexpected values %+v", got)
	}
}

func TestForm_CancelButton(t *testing.T) {
	cancelled := false
	f := form.New(
		form.WithOnCancel[request](func() tea.Cmd {
			cancelled = true
			return nil
		}),
		form.WithInput[request]("ok", forminput.NewButton("Ok")),
		form.WithInputInline[request]("cancel", forminput.NewCancelButton("Cancel")),
	)
	f.Focus(nil)

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRight})
	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if !cancelled {
		t.Fatalf("expected cancel callback")
	}
	_ = f.View()
}
