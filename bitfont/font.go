// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitfont

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"

	"github.com/GermanBionicSystems/pixoocal/pixels"
)

// Atlas geometry.
const (
	HalfWidth   = 4
	FullWidth   = 8
	AtlasHeight = 8

	kuten = 94
)

// Replacement is drawn for characters the atlases do not cover.
const Replacement = '？'

// Font is a glyph atlas font. It is read-only after New and safe for
// concurrent use.
type Font struct {
	half        [256]Glyph
	full        [kuten * kuten]Glyph
	replacement Glyph
}

// New decodes every cell of the half-width atlas and the full-width atlas.
//
// Atlas pixels with a red channel below 128 are foreground. Cells extending
// past the atlas bounds are blank there.
func New(half, full image.Image) (*Font, error) {
	if half == nil || full == nil {
		return nil, errors.New("bitfont: both atlases are required")
	}
	f := &Font{}
	for b := 0; b < len(f.half); b++ {
		f.half[b] = cell(half, (b&0x0f)*HalfWidth, (b>>4)*AtlasHeight, HalfWidth)
	}
	for ku := 0; ku < kuten; ku++ {
		for ten := 0; ten < kuten; ten++ {
			f.full[ku*kuten+ten] = cell(full, ten*FullWidth, ku*AtlasHeight, FullWidth)
		}
	}
	rep, ok := f.lookup(Replacement)
	if !ok {
		return nil, errors.New("bitfont: replacement glyph is not encodable")
	}
	f.replacement = rep
	return f, nil
}

// Load reads both atlases from PNG files.
func Load(halfPath, fullPath string) (*Font, error) {
	half, err := loadPNG(halfPath)
	if err != nil {
		return nil, err
	}
	full, err := loadPNG(fullPath)
	if err != nil {
		return nil, err
	}
	return New(half, full)
}

func loadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bitfont: %w", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("bitfont: decoding %s: %w", path, err)
	}
	return img, nil
}

func cell(img image.Image, x0, y0, w int) Glyph {
	b := img.Bounds()
	g := Glyph{w: w, h: AtlasHeight, mask: make([]bool, w*AtlasHeight)}
	for y := 0; y < AtlasHeight; y++ {
		for x := 0; x < w; x++ {
			p := image.Pt(b.Min.X+x0+x, b.Min.Y+y0+y)
			if !p.In(b) {
				continue
			}
			r, _, _, _ := img.At(p.X, p.Y).RGBA()
			g.mask[y*w+x] = r>>8 < 128
		}
	}
	return g
}

// Glyph returns the glyph for r, or the replacement glyph when r is not
// covered by the atlases.
func (f *Font) Glyph(r rune) Glyph {
	if g, ok := f.lookup(r); ok {
		return g
	}
	return f.replacement
}

func (f *Font) lookup(r rune) (Glyph, bool) {
	if r < 0 {
		return Glyph{}, false
	}
	if r < utf8.RuneSelf {
		return f.half[r], true
	}
	// Encoders keep state and are not safe for concurrent use.
	b, err := japanese.EUCJP.NewEncoder().Bytes([]byte(string(r)))
	if err != nil {
		return Glyph{}, false
	}
	switch {
	case len(b) == 1:
		return f.half[b[0]], true
	case len(b) == 2 && b[0] == 0x8e:
		return f.half[b[1]], true
	case len(b) == 2 && inRow(b[0]) && inRow(b[1]):
		ku, ten := int(b[0])-0xa1, int(b[1])-0xa1
		return f.full[ku*kuten+ten], true
	}
	return Glyph{}, false
}

func inRow(b byte) bool {
	return b >= 0xa1 && b <= 0xfe
}

// MeasureString returns the sum of the widths of the glyphs of s.
func (f *Font) MeasureString(s string) int {
	w := 0
	for _, r := range s {
		w += f.Glyph(r).w
	}
	return w
}

// DrawString draws s left to right with its top-left corner at (x, y) and
// returns the width drawn. Glyphs are not spaced apart.
func (f *Font) DrawString(dst Plotter, s string, x, y int, c pixels.RGB, alpha float64) int {
	cx := x
	for _, r := range s {
		g := f.Glyph(r)
		g.Draw(dst, cx, y, c, alpha)
		cx += g.w
	}
	return cx - x
}
