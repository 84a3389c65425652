// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pixels_test

import (
	"fmt"

	"github.com/GermanBionicSystems/pixoocal/pixels"
)

func Example() {
	bg := pixels.New(4, 2)
	bg.DrawRect(0, 0, 4, 2, pixels.RGB{R: 0x48, G: 0xb0, B: 0xd5}, 0.2)

	text := pixels.New(4, 2)
	text.SetPixel(1, 0, pixels.White, 1)

	out := pixels.New(4, 2)
	out.Composite(bg, 0, 0, 1)
	out.Composite(text, 0, 0, 1)

	fmt.Println(out.Bytes()[:6])
	// Output: [14 35 43 255 255 255]
}
