// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package client talks to the QRify REST backend. HTTPClient is the real
// transport; MemoryClient emulates the backend in process for demo mode and
// tests; MockClient overrides single operations of either.
package client
