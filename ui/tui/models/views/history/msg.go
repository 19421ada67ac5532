// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package history

import (
	"github.com/qrify/qrify/client"
	histflow "github.com/qrify/qrify/internal/flows/history"
)

type loadedMsg struct {
	snap histflow.Snapshot
}

type deleteRequestedMsg struct {
	id client.ID
}

type deletedMsg struct {
	snap histflow.Snapshot
	err  error
}

type actionDoneMsg struct {
	notice string
	err    error
	// alert blocks until acknowledged instead of a transient notice
	alert bool
}

type noticeExpiredMsg struct {
	seq int
}
