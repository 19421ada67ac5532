// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package generate

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/qrify/qrify/internal/i18n"
)

type KeyMap struct {
	Download key.Binding
	Copy     key.Binding
	Open     key.Binding
}

func (km *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{km.Download, km.Copy, km.Open}
}

func (km *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{km.Download, km.Copy, km.Open}}
}

// *KeyMap implements help.KeyMap
var _ help.KeyMap = (*KeyMap)(nil)

// ctrl based so they never collide with typing into the input
func newKeyMap() KeyMap {
	return KeyMap{
		Download: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", i18n.T("help.download")),
			key.WithDisabled(),
		),
		Copy: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", i18n.T("help.copy")),
			key.WithDisabled(),
		),
		Open: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", i18n.T("help.open")),
			key.WithDisabled(),
		),
	}
}
