// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package forminput holds the inputs used in forms.
package forminput

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/qrify/qrify/ui/tui/models/helpers/form"
	"github.com/qrify/qrify/ui/tui/theme"
	"github.com/qrify/qrify/ui/tui/util"
)

type Button struct {
	Label    string
	Disabled bool
	// Action is reported to the form when the button is clicked.
	Action form.Action
	KeyMap ButtonKeyMap

	DisabledStyle lipgloss.Style
	BlurredStyle  lipgloss.Style
	FocusedStyle  lipgloss.Style

	focused bool
}

type ButtonKeyMap struct {
	Click key.Binding
	Next  key.Binding
	Prev  key.Binding
}

func (k ButtonKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Click} }

func (k ButtonKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{{k.Click}} }

// NewButton submits the form when clicked.
func NewButton(label string) *Button {
	b := &Button{
		Label:  label,
		Action: form.ActionSubmit,
		KeyMap: ButtonKeyMap{
			Click: key.NewBinding(
				key.WithKeys("enter", " "),
				key.WithHelp("enter", strings.ToLower(label)),
			),
			Next: key.NewBinding(key.WithKeys("right", "l")),
			Prev: key.NewBinding(key.WithKeys("left", "h")),
		},
	}
	b.SetPalette(theme.Dark)
	return b
}

// NewCancelButton cancels the form when clicked.
func NewCancelButton(label string) *Button {
	b := NewButton(label)
	b.Action = form.ActionCancel
	return b
}

func (b *Button) SetPalette(p theme.Palette) {
	base := lipgloss.NewStyle().
		Padding(0, 2).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Subtle).
		Foreground(p.Subtle)
	b.DisabledStyle = base.Faint(true)
	b.BlurredStyle = base.Foreground(p.Text)
	b.FocusedStyle = base.
		BorderForeground(p.Highlight).
		Foreground(p.Highlight).
		Bold(true)
}

func (b *Button) Focus(baseKeyMap help.KeyMap) tea.Cmd {
	b.focused = true
	return util.AnnounceKeyMapCmd(baseKeyMap, b.KeyMap)
}

func (b *Button) Blur() {
	b.focused = false
}

func (b *Button) Update(msg tea.Msg) (tea.Cmd, form.Action) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, form.ActionNone
	}
	switch {
	case key.Matches(kmsg, b.KeyMap.Next):
		return nil, form.ActionNext
	case key.Matches(kmsg, b.KeyMap.Prev):
		return nil, form.ActionPrev
	case !b.Disabled && key.Matches(kmsg, b.KeyMap.Click):
		return nil, b.Action
	}
	return nil, form.ActionNone
}

func (b *Button) View(width int) string {
	style := b.BlurredStyle
	switch {
	case b.Disabled:
		style = b.DisabledStyle
	case b.focused:
		style = b.FocusedStyle
	}
	return style.MaxWidth(max(0, width-2)).Render(b.Label)
}

func (b *Button) Get() any      { return nil }
func (b *Button) Init() tea.Cmd { return nil }
func (b *Button) Reset()        {}
func (b *Button) Set(any)       {}

var (
	_ form.FormInput = (*Button)(nil)
	_ form.Themed    = (*Button)(nil)
)
