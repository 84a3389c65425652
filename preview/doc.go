// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package preview serves the dashboard frames to web browsers.
//
// Server is a display.Drawer. Every Draw is pushed to the connected clients
// as one part of a "multipart/x-mixed-replace" stream, the protocol IP
// cameras use for MJPEG. Browsers render such a stream in a plain <img> tag.
//
// Pixels are upscaled with nearest neighbor interpolation so the 64x64 LED
// matrix stays crisp. PNG is the default format; clients can ask for JPEG
// with "?format=jpeg". "?once=1" returns a single image instead of a stream.
package preview
