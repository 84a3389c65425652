// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitfont

import "github.com/GermanBionicSystems/pixoocal/pixels"

// DigitHeight is the height of every digit font glyph.
const DigitHeight = 5

// blankAdvance is the width used for characters missing from the table.
const blankAdvance = 3

var digitPatterns = map[rune][DigitHeight]string{
	'0': {
		".#.",
		"#.#",
		"#.#",
		"#.#",
		".#.",
	},
	'1': {
		".#.",
		"##.",
		".#.",
		".#.",
		".#.",
	},
	'2': {
		"##.",
		"..#",
		".#.",
		"#..",
		"###",
	},
	'3': {
		"##.",
		"..#",
		".#.",
		"..#",
		"##.",
	},
	'4': {
		"..#",
		".#.",
		"#.#",
		"###",
		"..#",
	},
	'5': {
		"###",
		"#..",
		"##.",
		"..#",
		"##.",
	},
	'6': {
		".#.",
		"#..",
		"##.",
		"#.#",
		".#.",
	},
	'7': {
		"###",
		"..#",
		".#.",
		".#.",
		".#.",
	},
	'8': {
		".#.",
		"#.#",
		".#.",
		"#.#",
		".#.",
	},
	'9': {
		".#.",
		"#.#",
		".##",
		"..#",
		".#.",
	},
	' ': {
		"...",
		"...",
		"...",
		"...",
		"...",
	},
	':': {
		".",
		"#",
		".",
		"#",
		".",
	},
	'/': {
		"..#",
		"..#",
		".#.",
		"#..",
		"#..",
	},
}

var digitGlyphs = parsePatterns(digitPatterns)

func parsePatterns(src map[rune][DigitHeight]string) map[rune]Glyph {
	out := make(map[rune]Glyph, len(src))
	for r, rows := range src {
		g := Glyph{w: len(rows[0]), h: DigitHeight}
		g.mask = make([]bool, g.w*g.h)
		for y, row := range rows {
			for x := 0; x < g.w && x < len(row); x++ {
				g.mask[y*g.w+x] = row[x] == '#'
			}
		}
		out[r] = g
	}
	return out
}

// Digit returns the digit font glyph for r.
func Digit(r rune) (Glyph, bool) {
	g, ok := digitGlyphs[r]
	return g, ok
}

func digitAdvance(r rune) int {
	if g, ok := digitGlyphs[r]; ok {
		return g.w + 1
	}
	return blankAdvance + 1
}

// MeasureDigits returns the width of s drawn with the digit font, without the
// gap that follows the last character.
func MeasureDigits(s string) int {
	w := 0
	for _, r := range s {
		w += digitAdvance(r)
	}
	if w > 0 {
		w--
	}
	return w
}

// DrawDigits draws s with the digit font, its top-left corner at (x, y).
//
// Each character advances by its width plus one blank column. Characters not
// in the table are left blank. It returns MeasureDigits(s).
func DrawDigits(dst Plotter, s string, x, y int, c pixels.RGB, alpha float64) int {
	cx := x
	for _, r := range s {
		if g, ok := digitGlyphs[r]; ok {
			g.Draw(dst, cx, y, c, alpha)
		}
		cx += digitAdvance(r)
	}
	if cx > x {
		cx--
	}
	return cx - x
}
