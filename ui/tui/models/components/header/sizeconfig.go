// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package header

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/qrify/qrify/ui/tui/models/components/stack"
	"github.com/qrify/qrify/ui/tui/util"
)

// below this total height the header collapses to a single line
const compactBelow int = 16

var SizeConfig = &sizeConfig{}

type sizeConfig struct{}

var _ stack.SizeConfig = (*sizeConfig)(nil)

func (s *sizeConfig) Priority() int { return 10 }

func (s *sizeConfig) Calculate(model util.Model, _ int, totalSize int) int {
	compact := totalSize < compactBelow
	if h, ok := model.(*Model); ok {
		h.compact = compact
	}
	if compact {
		return 2
	}
	return lipgloss.Height(logo) + 1
}
