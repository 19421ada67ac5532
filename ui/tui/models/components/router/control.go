// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package router

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qrify/qrify/ui/tui/util"
)

// Control is handed to every model a router initializes, so the model can
// replace itself or push models on top of it.
type Control struct {
	rid int
}

func (c Control) Push(model *util.Model) tea.Cmd {
	return func() tea.Msg { return PushMsg{rid: c.rid, Model: model} }
}

func (c Control) Pop(count int) tea.Cmd {
	return func() tea.Msg { return PopMsg{rid: c.rid, Count: count} }
}

func (c Control) Change(model *util.Model) tea.Cmd {
	return func() tea.Msg { return ChangeMsg{rid: c.rid, Model: model} }
}

// Valid is false for the zero value, before the router sent its InitMsg.
func (c Control) Valid() bool { return c.rid != 0 }
