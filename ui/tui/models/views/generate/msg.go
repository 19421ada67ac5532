// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package generate

import "github.com/qrify/qrify/client"

type submitMsg struct {
	text string
}

type createdMsg struct {
	record client.Record
	err    error
}

type actionDoneMsg struct {
	notice string
	err    error
}

type noticeExpiredMsg struct {
	seq int
}
