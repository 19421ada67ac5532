// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package history

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/qrify/qrify/internal/i18n"
)

type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Download key.Binding
	Copy     key.Binding
	Open     key.Binding
	Delete   key.Binding
	Reload   key.Binding
	Next     key.Binding
	Prev     key.Binding
	Create   key.Binding
}

func (km *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Up, km.Down, km.Download, km.Copy, km.Open, km.Delete, km.Next, km.Prev, km.Reload, km.Create}
}

func (km *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{km.Up, km.Down},
		{km.Download, km.Copy, km.Open, km.Delete},
		{km.Next, km.Prev, km.Reload},
		{km.Create},
	}
}

// *KeyMap implements help.KeyMap
var _ help.KeyMap = (*KeyMap)(nil)

func newKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", i18n.T("help.up")),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", i18n.T("help.down")),
		),
		Download: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", i18n.T("help.download")),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", i18n.T("help.copy")),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", i18n.T("help.open")),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x/del", i18n.T("help.delete")),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", i18n.T("help.reload")),
		),
		Next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("→/n", i18n.T("help.next_page")),
		),
		Prev: key.NewBinding(
			key.WithKeys("p", "left"),
			key.WithHelp("←/p", i18n.T("help.prev_page")),
		),
		Create: key.NewBinding(
			key.WithKeys("enter", "g"),
			key.WithHelp("enter", i18n.T("history.empty_cta")),
		),
	}
}
