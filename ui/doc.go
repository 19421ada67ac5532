// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package ui wires the services shared by the user interfaces (CLI, TUI).
package ui
