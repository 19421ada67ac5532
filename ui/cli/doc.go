// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package cli is the cobra command tree of qrify. Running without a
// subcommand starts the TUI.
package cli
