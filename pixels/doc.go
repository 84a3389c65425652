// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pixels implements a small floating point RGBA canvas used to
// compose frames for low resolution LED matrices.
//
// Each pixel accumulates red, green and blue in the 0-255 range and an alpha
// coverage in the 0-1 range. Two blend operations are provided and they are
// intentionally not interchangeable:
//
// SetPixel blends a straight (non premultiplied) color over the existing
// content. It is used by all shape and glyph drawing.
//
// Composite merges another canvas whose channels already carry their own
// coverage, as produced by SetPixel. Only the destination is attenuated.
//
// The canvas serializes to the raw RGB byte stream expected by most matrix
// controllers and also implements image.Image so it can be handed to any
// periph display.Drawer.
package pixels
