// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package footer

import (
	"github.com/qrify/qrify/ui/tui/models/components/stack"
	"github.com/qrify/qrify/ui/tui/util"
)

var SizeConfig = &sizeConfig{}

type sizeConfig struct{}

var _ stack.SizeConfig = (*sizeConfig)(nil)

func (s *sizeConfig) Priority() int { return 20 }

// Calculate reserves the help lines, the status line and the top border.
func (s *sizeConfig) Calculate(model util.Model, _ int, _ int) int {
	if footer, ok := model.(*Model); ok {
		return footer.help.Height() + 2
	}
	return 3
}
