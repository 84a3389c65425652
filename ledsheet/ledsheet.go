// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ledsheet renders animation frames as a contact sheet that looks
// like the LED matrix: every pixel is a round dot, dark pixels show as unlit
// LEDs.
//
// It is used to review a whole scroll sequence at once.
package ledsheet

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/GermanBionicSystems/pixoocal/animation"
)

// Opts represents the options of a sheet.
type Opts struct {
	// Pitch is the distance between two LED centers, in sheet pixels.
	Pitch float64
	// Dot is the LED diameter relative to Pitch.
	Dot float64
	// Columns is the number of frames per row.
	Columns int
	// Gap is the margin around frames.
	Gap float64
	// FontSize of the captions, in points. 0 disables them.
	FontSize float64

	Background color.Color
	// Unlit is the color of black pixels.
	Unlit color.Color
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Pitch:      6,
	Dot:        0.8,
	Columns:    4,
	Gap:        12,
	FontSize:   12,
	Background: color.RGBA{16, 16, 16, 255},
	Unlit:      color.RGBA{36, 36, 36, 255},
}

var (
	parseOnce sync.Once
	captionTT *truetype.Font
	parseErr  error
)

func captionFace(size float64) (font.Face, error) {
	parseOnce.Do(func() {
		captionTT, parseErr = truetype.Parse(goregular.TTF)
	})
	if parseErr != nil {
		return nil, fmt.Errorf("ledsheet: %w", parseErr)
	}
	return truetype.NewFace(captionTT, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}

// Caption returns the label drawn under a frame.
func Caption(f *animation.Frame) string {
	return fmt.Sprintf("%d/%d  +%dpx", f.Index+1, f.Total, f.Offset)
}

// Render draws frames, left to right then top to bottom.
func Render(frames []animation.Frame, opts *Opts) (image.Image, error) {
	dc, err := render(frames, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// Encode writes the sheet as a PNG.
func Encode(w io.Writer, frames []animation.Frame, opts *Opts) error {
	dc, err := render(frames, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// Save writes the sheet as a PNG file.
func Save(path string, frames []animation.Frame, opts *Opts) error {
	dc, err := render(frames, opts)
	if err != nil {
		return err
	}
	return dc.SavePNG(path)
}

func render(frames []animation.Frame, opts *Opts) (*gg.Context, error) {
	if opts == nil {
		opts = &DefaultOpts
	}
	if len(frames) == 0 {
		return nil, errors.New("ledsheet: no frames")
	}
	if opts.Pitch <= 0 || opts.Columns <= 0 {
		return nil, fmt.Errorf("ledsheet: invalid pitch %g or columns %d", opts.Pitch, opts.Columns)
	}
	w, h := 0, 0
	for i := range frames {
		img := frames[i].Image
		if img == nil {
			return nil, fmt.Errorf("ledsheet: frame %d has no image", i)
		}
		w = max(w, img.Width())
		h = max(h, img.Height())
	}

	var face font.Face
	caption := 0.0
	if opts.FontSize > 0 {
		f, err := captionFace(opts.FontSize)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		face = f
		caption = opts.FontSize * 1.5
	}

	cols := min(opts.Columns, len(frames))
	rows := (len(frames) + cols - 1) / cols
	cellW := float64(w) * opts.Pitch
	cellH := float64(h)*opts.Pitch + caption
	dc := gg.NewContext(
		int(float64(cols)*cellW+float64(cols+1)*opts.Gap),
		int(float64(rows)*cellH+float64(rows+1)*opts.Gap))
	bg := opts.Background
	if bg == nil {
		bg = color.Black
	}
	dc.SetColor(bg)
	dc.Clear()
	if face != nil {
		dc.SetFontFace(face)
	}

	for i := range frames {
		x0 := opts.Gap + float64(i%cols)*(cellW+opts.Gap)
		y0 := opts.Gap + float64(i/cols)*(cellH+opts.Gap)
		drawFrame(dc, &frames[i], x0, y0, opts)
		if face != nil {
			dc.SetColor(color.White)
			dc.DrawStringAnchored(Caption(&frames[i]), x0+cellW/2, y0+float64(h)*opts.Pitch+caption/2, 0.5, 0.5)
		}
	}
	return dc, nil
}

func drawFrame(dc *gg.Context, f *animation.Frame, x0, y0 float64, opts *Opts) {
	img := f.Image
	r := opts.Pitch * opts.Dot / 2
	if r <= 0 {
		r = opts.Pitch / 2
	}
	for y := 0; y < img.Height(); y++ {
		for x := 0; x < img.Width(); x++ {
			c := img.At(x, y).(color.RGBA)
			if c.R == 0 && c.G == 0 && c.B == 0 {
				if opts.Unlit == nil {
					continue
				}
				dc.SetColor(opts.Unlit)
			} else {
				dc.SetColor(c)
			}
			dc.DrawCircle(x0+(float64(x)+0.5)*opts.Pitch, y0+(float64(y)+0.5)*opts.Pitch, r)
			dc.Fill()
		}
	}
}
