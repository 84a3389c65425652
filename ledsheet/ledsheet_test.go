// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ledsheet

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/GermanBionicSystems/pixoocal/animation"
	"github.com/GermanBionicSystems/pixoocal/pixels"
)

func testFrames(n int) []animation.Frame {
	out := make([]animation.Frame, n)
	for i := range out {
		c := pixels.New(2, 2)
		c.SetPixel(0, 0, pixels.RGB{R: 255}, 1)
		c.SetPixel(1, 1, pixels.RGB{G: 200}, 1)
		out[i] = animation.Frame{Index: i, Total: n, Offset: 2 * i, Pixels: c.Bytes(), Image: c}
	}
	return out
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestRenderLayout(t *testing.T) {
	opts := Opts{Pitch: 10, Dot: 0.6, Columns: 2, Gap: 4, Background: color.Black, Unlit: color.RGBA{50, 50, 50, 255}}
	img, err := Render(testFrames(3), &opts)
	if err != nil {
		t.Fatal(err)
	}
	// 2 columns of 20 plus 3 gaps, 2 rows of 20 plus 3 gaps.
	if got := img.Bounds(); got != image.Rect(0, 0, 52, 52) {
		t.Fatalf("Bounds() = %v", got)
	}
	for _, tc := range []struct {
		name string
		x, y int
		want color.RGBA
	}{
		{"red led", 9, 9, color.RGBA{255, 0, 0, 255}},
		{"unlit led", 19, 9, color.RGBA{50, 50, 50, 255}},
		{"green led", 19, 19, color.RGBA{0, 200, 0, 255}},
		{"between leds", 14, 9, color.RGBA{0, 0, 0, 255}},
		{"second column", 33, 9, color.RGBA{255, 0, 0, 255}},
		{"second row", 9, 33, color.RGBA{255, 0, 0, 255}},
		{"empty cell", 43, 43, color.RGBA{0, 0, 0, 255}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := rgbaAt(img, tc.x, tc.y); got != tc.want {
				t.Errorf("At(%d, %d) = %v, want %v", tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestRenderCaptions(t *testing.T) {
	opts := DefaultOpts
	img, err := Render(testFrames(2), &opts)
	if err != nil {
		t.Fatal(err)
	}
	want := image.Rect(0, 0, int(2*12+3*12), int(12+18+2*12))
	if got := img.Bounds(); got != want {
		t.Fatalf("Bounds() = %v, want %v", got, want)
	}
	// Some text is drawn in the caption band.
	lit := false
	for y := 12 + 12; y < 12+12+18; y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if c := rgbaAt(img, x, y); c.R > 128 && c.G > 128 && c.B > 128 {
				lit = true
			}
		}
	}
	if !lit {
		t.Error("no caption drawn")
	}
}

func TestRenderErrors(t *testing.T) {
	for _, tc := range []struct {
		name   string
		frames []animation.Frame
		opts   Opts
	}{
		{"no frames", nil, DefaultOpts},
		{"no image", []animation.Frame{{}}, DefaultOpts},
		{"no pitch", testFrames(1), Opts{Columns: 1}},
		{"no columns", testFrames(1), Opts{Pitch: 1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Render(tc.frames, &tc.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCaption(t *testing.T) {
	f := animation.Frame{Index: 4, Total: 18, Offset: 6}
	if got := Caption(&f); got != "5/18  +6px" {
		t.Errorf("Caption() = %q", got)
	}
}

func TestEncodeSave(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, testFrames(1), nil); err != nil {
		t.Fatal(err)
	}
	a, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	p := filepath.Join(t.TempDir(), "sheet.png")
	if err := Save(p, testFrames(1), nil); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(p)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	b, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if a.Bounds() != b.Bounds() {
		t.Errorf("Encode() %v and Save() %v differ", a.Bounds(), b.Bounds())
	}
}
