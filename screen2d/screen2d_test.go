// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package screen2d

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
)

func TestDraw(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{X: 3, Y: 2, W: &out})
	if got := d.Bounds(); got != image.Rect(0, 0, 3, 2) {
		t.Fatalf("Bounds() = %v", got)
	}
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	red := color.NRGBA{R: 255, A: 255}
	img.Set(1, 1, red)
	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if got := d.pixels[3*4:3*5]; !bytes.Equal(got, []byte{255, 0, 0}) {
		t.Errorf("pixel (1, 1) = %v", got)
	}
	s := out.String()
	if n := strings.Count(s, "\n"); n != 2 {
		t.Errorf("%d lines, want 2", n)
	}
	if !strings.Contains(s, ansi256.Default.Block(red)) {
		t.Errorf("output lacks the red block: %q", s)
	}
	if strings.Contains(s, "\033[2A") {
		t.Error("first frame moved the cursor up")
	}

	out.Reset()
	if err := d.Draw(d.Bounds(), img, image.Point{}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "\033[2A\r") {
		t.Errorf("second frame does not overwrite the first: %q", out.String())
	}
}

func TestDrawOffset(t *testing.T) {
	d := New(&Opts{X: 4, Y: 4, W: &bytes.Buffer{}})
	src := image.NewUniform(color.NRGBA{G: 200, A: 255})
	if err := d.Draw(image.Rect(2, 3, 10, 10), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := byte(0)
			if x >= 2 && y >= 3 {
				want = 200
			}
			if got := d.pixels[3*(y*4+x)+1]; got != want {
				t.Errorf("green (%d, %d) = %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestWrite(t *testing.T) {
	var out bytes.Buffer
	d := New(&Opts{X: 2, Y: 2, W: &out})
	if _, err := d.Write(make([]byte, 5)); err == nil {
		t.Error("expected error")
	}
	n, err := d.Write(make([]byte, 12))
	if err != nil || n != 12 {
		t.Errorf("Write() = %d, %v", n, err)
	}
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(out.String(), "\033[0m\n") {
		t.Errorf("Halt() did not reset colors: %q", out.String())
	}
	if d.String() != "Screen2D{2, 2}" {
		t.Errorf("String() = %q", d.String())
	}
}
