// Copyright (c) 2026 QRify Team
// QRify - QR code generator client
// This source code is licensed under the MIT license found in the LICENSE file.
package qrcode

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"
)

func TestEncode_Empty(t *testing.T) {
	if _, err := Encode(""); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
}

func TestPNG(t *testing.T) {
	c, err := Encode("https://openai.com")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	data, err := c.PNG(0)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	if b := img.Bounds(); b.Dx() != PNGSize || b.Dy() != PNGSize {
		t.Fatalf("unexpected size %v", b)
	}
}

func TestRender(t *testing.T) {
	c, err := Encode("hello world")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	bm := c.Bitmap()
	out := c.Render(false)
	lines := strings.Split(out, "\n")
	if len(lines) != (len(bm)+1)/2 {
		t.Fatalf("expected %d lines, got %d", (len(bm)+1)/2, len(lines))
	}
	for _, l := range lines {
		if n := len([]rune(l)); n != len(bm) {
			t.Fatalf("expected %d columns, got %d", len(bm), n)
		}
	}
	// quiet zone is light, so the first row is blank unless inverted
	if strings.TrimSpace(lines[0]) != "" {
		t.Fatalf("expected blank quiet zone row, got %q", lines[0])
	}
	if inv := strings.Split(c.Render(true), "\n")[0]; strings.Trim(inv, "█") != "" {
		t.Fatalf("expected full blocks in inverted quiet zone, got %q", inv)
	}
}

func TestRenderCompactIsSmaller(t *testing.T) {
	c, _ := Encode("x")
	if len(c.RenderCompact(false)) >= len(c.Render(false)) {
		t.Fatalf("compact rendering not smaller")
	}
}

func TestRenderBitmap_OddRows(t *testing.T) {
	bm := [][]bool{{true, false}, {true, true}, {false, true}}
	got := renderBitmap(bm, false)
	want := "█▄\n ▀"
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}
