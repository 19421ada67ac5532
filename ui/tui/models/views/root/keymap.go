// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package root

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/qrify/qrify/internal/i18n"
)

type KeyMap struct {
	Exit     key.Binding
	Help     key.Binding
	Theme    key.Binding
	Generate key.Binding
	History  key.Binding
}

func (km KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Generate, km.History, km.Theme, km.Help, km.Exit}
}

func (km KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{km.Generate, km.History}, {km.Theme, km.Help, km.Exit}}
}

// *KeyMap implements help.KeyMap
var _ help.KeyMap = (*KeyMap)(nil)

func NewBaseKeyMap() KeyMap {
	return KeyMap{
		Exit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", i18n.T("help.exit")),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", i18n.T("help.help")),
		),
		Theme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", i18n.T("help.theme")),
		),
		Generate: key.NewBinding(
			key.WithKeys("f2", "alt+1"),
			key.WithHelp("f2", i18n.T("help.generate")),
		),
		History: key.NewBinding(
			key.WithKeys("f3", "alt+2"),
			key.WithHelp("f3", i18n.T("help.history")),
		),
	}
}
