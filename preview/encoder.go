// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"sync"
)

// Format is an image encoding, named by its file extension.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"

	// DefaultFormat is used when neither Opts nor the request pick one.
	DefaultFormat = PNG
)

// ParseFormat returns the Format named value. Case is ignored and "jpg" is
// accepted for JPEG.
func ParseFormat(value string) (Format, error) {
	f := Format(strings.ToLower(value))
	if f == "jpg" {
		f = JPEG
	}
	if f != PNG && f != JPEG {
		return DefaultFormat, fmt.Errorf("preview: unrecognized image format %q", value)
	}
	return f, nil
}

type pngBufferPool sync.Pool

func (p *pngBufferPool) Get() *png.EncoderBuffer {
	buf, _ := (*sync.Pool)(p).Get().(*png.EncoderBuffer)
	return buf
}

func (p *pngBufferPool) Put(buf *png.EncoderBuffer) {
	(*sync.Pool)(p).Put(buf)
}

var sharedPNGBuffers pngBufferPool

// encoder encodes frames in one format. It is safe for concurrent use.
type encoder struct {
	contentType string
	encode      func(w io.Writer, img image.Image) error
}

// newEncoders returns an encoder for every Format.
func newEncoders(opts *Opts) map[Format]*encoder {
	p := &png.Encoder{CompressionLevel: opts.PNGLevel, BufferPool: &sharedPNGBuffers}
	q := &jpeg.Options{Quality: opts.JPEGQuality}
	if q.Quality <= 0 {
		q.Quality = jpeg.DefaultQuality
	}
	return map[Format]*encoder{
		PNG: {contentType: "image/png", encode: p.Encode},
		JPEG: {contentType: "image/jpeg", encode: func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, q)
		}},
	}
}
