// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package menu

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func WithItem(id string, name string, cmd tea.Cmd) Item {
	return Item{
		ID:   id,
		Name: name,
		Cmd:  cmd,
	}
}

type Item struct {
	ID   string
	Name string
	Cmd  tea.Cmd
}

func (i Item) View(active bool, styles Styles) string {
	if active {
		return styles.Active.Render(i.Name)
	}
	return styles.Inactive.Render(i.Name)
}

// Styles used for the tabs. The zero value renders plain text.
type Styles struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
}

// ItemSelected is sent when an item without Cmd is selected.
type ItemSelected struct {
	ID string
}
