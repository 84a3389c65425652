// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package bitfont rasterizes text for very small LED matrices.
//
// Two independent fonts are provided.
//
// The digit font is a built-in 3x5 table covering '0' to '9', space, ':' and
// '/'. It is used for day numbers, month numbers and time stamps.
//
// Font is a glyph atlas font built from two black on white bitmaps in the
// Misaki layout: a 16x16 grid of 4x8 half-width cells indexed by byte value
// and a 94x94 grid of 8x8 full-width cells indexed by JIS X 0208 ku-ten.
// Characters are located by re-encoding them to EUC-JP. Characters that
// cannot be located render as a full-width question mark.
//
// Both fonts draw through Plotter, which *pixels.Canvas implements.
package bitfont
