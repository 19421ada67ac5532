// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Command-line entrypoint for QRify.
//
// Usage:
//
//	go run . [flags]
//	./qrify [flags]
//
// Without a subcommand the interactive TUI starts. See --help for options.
package main

import (
	"fmt"
	"os"

	"github.com/qrify/qrify/ui/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "qrify: %v\n", err)
		os.Exit(1)
	}
}
