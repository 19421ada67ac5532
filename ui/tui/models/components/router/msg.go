// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package router

import (
	"github.com/qrify/qrify/ui/tui/util"
)

// Router -> Model

type InitMsg struct {
	Control Control
}

// Model -> Control -> Router

type PushMsg struct {
	rid   int
	Model *util.Model
}

type PopMsg struct {
	rid   int
	Count int
}

type ChangeMsg struct {
	rid   int
	Model *util.Model
}

// ChangedMsg is sent to all listeners after the active model changed.
type ChangedMsg struct {
	Model *util.Model
}

func (m InitMsg) routerID() int   { return m.Control.rid }
func (m PushMsg) routerID() int   { return m.rid }
func (m PopMsg) routerID() int    { return m.rid }
func (m ChangeMsg) routerID() int { return m.rid }

type RouterMsg interface {
	routerID() int
}
