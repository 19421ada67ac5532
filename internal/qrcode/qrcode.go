// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.

// Package qrcode encodes text into QR codes with high error correction and
// renders them for terminals and as PNG.
package qrcode

import (
	"errors"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
)

// PNGSize is the edge length of downloaded images in pixels.
const PNGSize = 256

var ErrEmpty = errors.New("nothing to encode")

type Code struct {
	qr *goqrcode.QRCode
}

func Encode(text string) (*Code, error) {
	if text == "" {
		return nil, ErrEmpty
	}
	qr, err := goqrcode.New(text, goqrcode.Highest)
	if err != nil {
		return nil, err
	}
	return &Code{qr: qr}, nil
}

func (c *Code) PNG(size int) ([]byte, error) {
	if size <= 0 {
		size = PNGSize
	}
	return c.qr.PNG(size)
}

// Bitmap is the module matrix including the quiet zone; true is dark.
func (c *Code) Bitmap() [][]bool {
	return c.qr.Bitmap()
}

// Render draws the code with half block characters, two modules per
// character row. invert swaps dark and light for dark terminal backgrounds.
func (c *Code) Render(invert bool) string {
	return renderBitmap(c.Bitmap(), invert)
}

// RenderCompact drops most of the quiet zone for list previews.
func (c *Code) RenderCompact(invert bool) string {
	bm := c.Bitmap()
	const keep = 1
	trim := 0
	// skip2 adds a four module border
	if len(bm) > 8 {
		trim = 4 - keep
	}
	rows := bm[trim : len(bm)-trim]
	out := make([][]bool, len(rows))
	for i, r := range rows {
		out[i] = r[trim : len(r)-trim]
	}
	return renderBitmap(out, invert)
}

func renderBitmap(bm [][]bool, invert bool) string {
	dark := func(y, x int) bool {
		if y >= len(bm) {
			return invert
		}
		return bm[y][x] != invert
	}
	var b strings.Builder
	for y := 0; y < len(bm); y += 2 {
		for x := range bm[y] {
			top, bottom := dark(y, x), dark(y+1, x)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		if y+2 < len(bm) {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
