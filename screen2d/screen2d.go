// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package screen2d implements a 2D display.Drawer that outputs to terminal
// (stdout) using ANSI color codes.
//
// Useful to preview the dashboard without a Pixoo on the network.
package screen2d

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options available for this display.
type Opts struct {
	X       int
	Y       int
	Palette *ansi256.Palette
	// W receives the output. Defaults to a colorable stdout.
	W io.Writer

	_ struct{}
}

// Dev is a LED matrix emulator that outputs to the console.
type Dev struct {
	w       io.Writer
	x, y    int
	palette ansi256.Palette

	pixels []byte
	buf    bytes.Buffer
	// shown is set once a frame was written, so the next one overwrites it.
	shown bool
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.W
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	return &Dev{
		w:       w,
		x:       opts.X,
		y:       opts.Y,
		palette: *p,
		pixels:  make([]byte, 3*opts.X*opts.Y),
	}
}

func (d *Dev) String() string {
	return fmt.Sprintf("Screen2D{%d, %d}", d.x, d.y)
}

// Halt implements conn.Resource.
//
// It resets the terminal colors so it is not corrupted.
func (d *Dev) Halt() error {
	d.shown = false
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Write accepts a frame of raw RGB pixels, row by row, and writes it to the
// console.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.pixels) {
		return 0, fmt.Errorf("screen2d: got %d bytes, want %d", len(pixels), len(d.pixels))
	}
	copy(d.pixels, pixels)
	return d.refresh()
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.NRGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return image.Rectangle{Max: image.Point{X: d.x, Y: d.y}}
}

// Draw implements display.Drawer.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	if src == nil {
		return errors.New("screen2d: nil image")
	}
	r = r.Intersect(d.Bounds())
	delta := sp.Sub(r.Min)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := image.Point{X: x, Y: y}.Add(delta)
			if !p.In(src.Bounds()) {
				continue
			}
			r16, g16, b16, _ := src.At(p.X, p.Y).RGBA()
			i := 3 * (y*d.x + x)
			d.pixels[i] = byte(r16 >> 8)
			d.pixels[i+1] = byte(g16 >> 8)
			d.pixels[i+2] = byte(b16 >> 8)
		}
	}
	_, err := d.refresh()
	return err
}

func (d *Dev) refresh() (int, error) {
	d.buf.Reset()
	if d.shown && d.y > 0 {
		// Move back to the top left of the previous frame.
		fmt.Fprintf(&d.buf, "\033[%dA\r", d.y)
	}
	for y := 0; y < d.y; y++ {
		_, _ = d.buf.WriteString("\033[0m")
		for x := 0; x < d.x; x++ {
			i := 3 * (y*d.x + x)
			c := color.NRGBA{d.pixels[i], d.pixels[i+1], d.pixels[i+2], 255}
			_, _ = io.WriteString(&d.buf, d.palette.Block(c))
		}
		_, _ = d.buf.WriteString("\033[0m\n")
	}
	d.shown = true
	_, err := d.buf.WriteTo(d.w)
	return len(d.pixels), err
}

var _ display.Drawer = &Dev{}
var _ fmt.Stringer = &Dev{}
