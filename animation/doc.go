// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package animation turns a calendar and a scrolling event list into a short
// sequence of 64x64 frames and hands them to an Uploader in order.
//
// The calendar is rendered once. The event list is rendered once per frame
// at an increasing scroll offset. The sequence pauses on its first and last
// offsets and is cut at MaxFrames, the most a Pixoo accepts for one
// animation.
package animation
