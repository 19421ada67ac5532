// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package router

import (
	"sync/atomic"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/qrify/qrify/ui/tui/util"
)

var lastRouterID atomic.Int64

// Router shows the top model of its stack. Models talk to their router
// through the Control they get with InitMsg.
type Router struct {
	id         int
	size       util.Size
	modelStack []*util.Model
	focused    bool
	baseKeyMap help.KeyMap
}

func New(initialModel *util.Model) (Router, Control) {
	id := int(lastRouterID.Add(1))
	return Router{
		id:         id,
		modelStack: []*util.Model{initialModel},
	}, Control{rid: id}
}

func (r Router) Init() tea.Cmd {
	return tea.Batch(
		(*r.activeModelGet()).Init(),
		r.activeModelUpdate(InitMsg{Control: Control{rid: r.id}}),
	)
}

func (r *Router) Update(msg tea.Msg) tea.Cmd {
	if r.size.Update(msg) {
		return r.activeModelUpdate(msg)
	}
	if r.isMsgOwner(msg) {
		switch msg := msg.(type) {
		case PushMsg:
			return r.handlePush(msg)
		case PopMsg:
			return r.handlePop(msg)
		case ChangeMsg:
			return r.handleChange(msg)
		}
		return nil
	}
	// children must not obtain the Control of their parent router
	if _, ok := msg.(InitMsg); ok {
		return nil
	}
	return r.activeModelUpdate(msg)
}

func (r Router) View() string {
	return (*r.activeModelGet()).View()
}

func (r *Router) Focus(baseKeyMap help.KeyMap) tea.Cmd {
	r.focused = true
	r.baseKeyMap = baseKeyMap
	return r.activeModelFocus()
}

func (r *Router) Blur() {
	r.focused = false
	(*r.activeModelGet()).Blur()
}

// Active returns the model currently shown.
func (r *Router) Active() *util.Model {
	return r.activeModelGet()
}

// Depth is the number of stacked models.
func (r *Router) Depth() int {
	return len(r.modelStack)
}

// *Router implements util.Model
var _ util.Model = (*Router)(nil)

func (r *Router) isMsgOwner(msg tea.Msg) bool {
	rmsg, ok := msg.(RouterMsg)
	return ok && rmsg.routerID() == r.id
}

func IsRouterMsg(msg tea.Msg) bool {
	_, ok := msg.(RouterMsg)
	return ok
}
