// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pixels

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// RGB is an opaque 8 bit per channel color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Commonly used colors.
var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Pixel is the accumulated value of one canvas cell.
//
// R, G and B are in the 0-255 range and already weighted by their coverage.
// A is the coverage in the 0-1 range.
type Pixel struct {
	R, G, B, A float64
}

// Canvas is a width x height grid of Pixel.
//
// The zero value is not usable, use New.
type Canvas struct {
	w, h int
	pix  []Pixel
}

// New returns a fully transparent canvas.
func New(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Canvas{w: w, h: h, pix: make([]Pixel, w*h)}
}

// Width returns the number of columns.
func (c *Canvas) Width() int {
	return c.w
}

// Height returns the number of rows.
func (c *Canvas) Height() int {
	return c.h
}

// Pixel returns the raw accumulator at (x, y). Out of bounds coordinates
// return the zero Pixel.
func (c *Canvas) Pixel(x, y int) Pixel {
	if !c.in(x, y) {
		return Pixel{}
	}
	return c.pix[y*c.w+x]
}

func (c *Canvas) in(x, y int) bool {
	return x >= 0 && x < c.w && y >= 0 && y < c.h
}

// SetPixel blends col over (x, y) with the given opacity.
//
// Writes outside of the canvas are ignored. alpha is clamped to [0, 1].
func (c *Canvas) SetPixel(x, y int, col RGB, alpha float64) {
	if !c.in(x, y) {
		return
	}
	a := clamp(alpha, 0, 1)
	p := &c.pix[y*c.w+x]
	inv := 1 - a
	p.R = float64(col.R)*a + p.R*inv
	p.G = float64(col.G)*a + p.G*inv
	p.B = float64(col.B)*a + p.B*inv
	p.A = math.Min(a+p.A*inv, 1)
}

// DrawRect fills the w x h rectangle whose top-left corner is (x0, y0).
func (c *Canvas) DrawRect(x0, y0, w, h int, col RGB, alpha float64) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			c.SetPixel(x, y, col, alpha)
		}
	}
}

// DrawRectOutline draws the one pixel border of the w x h rectangle whose
// top-left corner is (x0, y0). Every border cell is blended once.
func (c *Canvas) DrawRectOutline(x0, y0, w, h int, col RGB, alpha float64) {
	if w <= 0 || h <= 0 {
		return
	}
	for x := x0; x < x0+w; x++ {
		c.SetPixel(x, y0, col, alpha)
		if h > 1 {
			c.SetPixel(x, y0+h-1, col, alpha)
		}
	}
	for y := y0 + 1; y < y0+h-1; y++ {
		c.SetPixel(x0, y, col, alpha)
		if w > 1 {
			c.SetPixel(x0+w-1, y, col, alpha)
		}
	}
}

// Composite merges src onto c with its top-left corner at (dx, dy).
//
// src channels are taken as already weighted by src coverage; alpha scales
// the whole layer and is clamped to [0, 1]. Source pixels with no effective
// coverage are skipped.
func (c *Canvas) Composite(src *Canvas, dx, dy int, alpha float64) {
	alpha = clamp(alpha, 0, 1)
	for sy := 0; sy < src.h; sy++ {
		for sx := 0; sx < src.w; sx++ {
			s := src.pix[sy*src.w+sx]
			eff := s.A * alpha
			if eff <= 0 {
				continue
			}
			c.blendPremultiplied(dx+sx, dy+sy, s.R*alpha, s.G*alpha, s.B*alpha, eff)
		}
	}
}

func (c *Canvas) blendPremultiplied(x, y int, r, g, b, alpha float64) {
	if !c.in(x, y) {
		return
	}
	a := clamp(alpha, 0, 1)
	p := &c.pix[y*c.w+x]
	inv := 1 - a
	p.R = r + p.R*inv
	p.G = g + p.G*inv
	p.B = b + p.B*inv
	p.A = math.Min(a+p.A*inv, 1)
}

// Bytes serializes the canvas as rows of R, G, B bytes, top to bottom and left
// to right. Alpha is dropped. The result is len Width()*Height()*3.
func (c *Canvas) Bytes() []byte {
	out := make([]byte, 0, len(c.pix)*3)
	for _, p := range c.pix {
		out = append(out, channel(p.R), channel(p.G), channel(p.B))
	}
	return out
}

// ColorModel implements image.Image.
func (c *Canvas) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (c *Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, c.w, c.h)
}

// At implements image.Image. It returns the opaque color a matrix shows for
// the pixel, which is the same value Bytes emits.
func (c *Canvas) At(x, y int) color.Color {
	p := c.Pixel(x, y)
	return color.RGBA{R: channel(p.R), G: channel(p.G), B: channel(p.B), A: 0xff}
}

func channel(v float64) byte {
	return byte(clamp(math.Round(v), 0, 255))
}

func clamp(v, lo, hi float64) float64 {
	// NaN compares false everywhere; treat it as the low bound.
	if !(v > lo) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ image.Image = (*Canvas)(nil)
