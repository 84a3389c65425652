// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package agenda

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GermanBionicSystems/pixoocal/pixels"
)

// ParseHexColor parses "#rgb" or "#rrggbb", case insensitive.
func ParseHexColor(s string) (pixels.RGB, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) == len(s) {
		return pixels.RGB{}, fmt.Errorf("agenda: color %q: missing '#'", s)
	}
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return pixels.RGB{}, fmt.Errorf("agenda: color %q: want 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return pixels.RGB{}, fmt.Errorf("agenda: color %q: %w", s, err)
	}
	return pixels.RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}
