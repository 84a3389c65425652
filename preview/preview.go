// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"sync"

	"golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"
)

// Opts represents the options of a Server.
type Opts struct {
	// Width and Height are the size of the matrix.
	Width, Height int
	// Scale is the size of the square each matrix pixel is drawn as.
	Scale int

	// Format is served when the request does not pick one. Unknown formats
	// fall back to DefaultFormat.
	Format      Format
	PNGLevel    png.CompressionLevel
	JPEGQuality int
}

// DefaultOpts is the recommended default options for a Pixoo 64.
var DefaultOpts = Opts{
	Width:       64,
	Height:      64,
	Scale:       8,
	Format:      DefaultFormat,
	PNGLevel:    png.BestSpeed,
	JPEGQuality: 90,
}

// Server is a display.Drawer streaming its content over HTTP.
type Server struct {
	defaultFormat Format
	encoders      map[Format]*encoder

	mu       sync.Mutex
	frame    *image.RGBA
	scaled   *image.RGBA
	clients  map[*client]struct{}
	snapshot map[Format][]byte
}

// New returns a Server showing a black frame.
func New(opts *Opts) *Server {
	if opts == nil {
		opts = &DefaultOpts
	}
	scale := opts.Scale
	if scale < 1 {
		scale = 1
	}
	frame := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	scaled := image.NewRGBA(image.Rect(0, 0, opts.Width*scale, opts.Height*scale))
	// The buffers start transparent.
	draw.Draw(frame, frame.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.Draw(scaled, scaled.Bounds(), image.Black, image.Point{}, draw.Src)
	encoders := newEncoders(opts)
	format := opts.Format
	if encoders[format] == nil {
		format = DefaultFormat
	}
	return &Server{
		defaultFormat: format,
		encoders:      encoders,
		frame:    frame,
		scaled:   scaled,
		clients:  map[*client]struct{}{},
		snapshot: map[Format][]byte{},
	}
}

func (s *Server) String() string {
	return fmt.Sprintf("Preview{%d, %d}", s.frame.Rect.Dx(), s.frame.Rect.Dy())
}

// Halt implements conn.Resource.
//
// It ends the running streams.
func (s *Server) Halt() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.terminate <- struct{}{}:
		default:
		}
	}
	return nil
}

// ColorModel implements display.Drawer.
func (s *Server) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements display.Drawer.
//
// It is the matrix size, not the size of the served images.
func (s *Server) Bounds() image.Rectangle {
	return s.frame.Bounds()
}

// Draw implements display.Drawer.
func (s *Server) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	draw.Draw(s.frame, r, src, sp, draw.Src)
	draw.NearestNeighbor.Scale(s.scaled, s.scaled.Bounds(), s.frame, s.frame.Bounds(), draw.Src, nil)
	s.snapshot = map[Format][]byte{}
	for c := range s.clients {
		select {
		case c.refresh <- struct{}{}:
		default:
		}
	}
	return nil
}

// Snapshot returns the current frame encoded in f.
//
// The returned slice must not be modified.
func (s *Server) Snapshot(f Format) ([]byte, error) {
	e := s.encoders[f]
	if e == nil {
		return nil, fmt.Errorf("preview: unhandled image format %q", f)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.snapshot[f]; ok {
		return b, nil
	}
	var buf bytes.Buffer
	if err := e.encode(&buf, s.scaled); err != nil {
		return nil, err
	}
	s.snapshot[f] = buf.Bytes()
	return buf.Bytes(), nil
}

var _ display.Drawer = (*Server)(nil)
var _ http.Handler = (*Server)(nil)
