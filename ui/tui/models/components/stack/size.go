// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package stack

import (
	"cmp"
	"math"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/qrify/qrify/ui/tui/util"
	"github.com/qrify/qrify/util/slicest"
)

// SizeConfig decides the size of an item along the stack's orientation.
// Items with lower priority are sized first.
type SizeConfig interface {
	Priority() int
	Calculate(model util.Model, remainingSize int, totalSize int) int
}

type staticSize struct {
	Size int
}

type variableSize struct {
	Weight      int
	totalWeight int
}

func StaticSize(size int) SizeConfig     { return &staticSize{Size: size} }
func VariableSize(weight int) SizeConfig { return &variableSize{Weight: weight} }

func (sc *staticSize) Priority() int   { return 0 }
func (sc *variableSize) Priority() int { return math.MaxInt }

func (sc *staticSize) Calculate(_ util.Model, _ int, _ int) int {
	return sc.Size
}

// Calculate hands out the remaining size proportional to the weights of the
// variable items not sized yet.
func (sc *variableSize) Calculate(_ util.Model, remainingSize int, _ int) int {
	if sc.totalWeight == 0 {
		return remainingSize
	}
	return (remainingSize * sc.Weight) / sc.totalWeight
}

func (s *Model) calculateItemSizes() {
	totalSize := s.size.Width
	if s.Orientation == Vertical {
		totalSize = s.size.Height
	}
	remainingSize := max(0, totalSize-s.Gap*(len(s.items)-1))

	sorted := make([]*Item, len(s.items))
	for i := range s.items {
		sorted[i] = &s.items[i]
	}
	slices.SortStableFunc(sorted, func(a, b *Item) int {
		return cmp.Compare(a.SizeConfig.Priority(), b.SizeConfig.Priority())
	})

	totalWeight := slicest.Reduce(s.items, func(item Item, total int) int {
		if v, ok := item.SizeConfig.(*variableSize); ok {
			return total + v.Weight
		}
		return total
	})

	for _, item := range sorted {
		v, variable := item.SizeConfig.(*variableSize)
		if variable {
			v.totalWeight = totalWeight
			totalWeight -= v.Weight
		}
		size := max(0, min(item.SizeConfig.Calculate(*item.Model, remainingSize, totalSize), remainingSize))
		remainingSize -= size
		item.oldSize, item.size = item.size, size
	}
}

func (s *Model) updateResizedItems(force bool) []tea.Cmd {
	var cmds []tea.Cmd
	for _, item := range s.items {
		if !force && item.size == item.oldSize {
			continue
		}
		msg := tea.WindowSizeMsg{Width: item.size, Height: s.size.Height}
		if s.Orientation == Vertical {
			msg = tea.WindowSizeMsg{Width: s.size.Width, Height: item.size}
		}
		cmds = append(cmds, (*item.Model).Update(msg))
	}
	return cmds
}
