// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pixoocal is a container for the packages drawing a calendar and
// upcoming events dashboard on a Divoom Pixoo 64.
//
// The rendering pipeline is pixels, bitfont, calendar, marquee and
// animation. Frames are shown by pixoo on the device, by screen2d in a
// terminal, by preview in a browser or by ledsheet as a PNG contact sheet.
// cmd/pixoocal wires them together.
package pixoocal
