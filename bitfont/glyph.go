// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitfont

import (
	"strings"

	"github.com/GermanBionicSystems/pixoocal/pixels"
)

// Plotter is the drawing surface glyphs are rendered on.
type Plotter interface {
	SetPixel(x, y int, c pixels.RGB, alpha float64)
}

// Glyph is an immutable foreground mask of one character.
type Glyph struct {
	w, h int
	mask []bool
}

// Width returns the number of columns of the glyph.
func (g Glyph) Width() int {
	return g.w
}

// Height returns the number of rows of the glyph.
func (g Glyph) Height() int {
	return g.h
}

// Set reports whether (x, y) is a foreground pixel.
func (g Glyph) Set(x, y int) bool {
	if x < 0 || x >= g.w || y < 0 || y >= g.h {
		return false
	}
	return g.mask[y*g.w+x]
}

// Draw plots every foreground pixel with its top-left corner at (x, y).
func (g Glyph) Draw(dst Plotter, x, y int, c pixels.RGB, alpha float64) {
	for gy := 0; gy < g.h; gy++ {
		for gx := 0; gx < g.w; gx++ {
			if g.mask[gy*g.w+gx] {
				dst.SetPixel(x+gx, y+gy, c, alpha)
			}
		}
	}
}

// String returns the mask as rows of '#' and '.' separated by newlines.
func (g Glyph) String() string {
	var b strings.Builder
	for y := 0; y < g.h; y++ {
		if y != 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < g.w; x++ {
			if g.mask[y*g.w+x] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
	}
	return b.String()
}
