// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package bitfont_test

import (
	"fmt"
	"log"

	"github.com/GermanBionicSystems/pixoocal/bitfont"
	"github.com/GermanBionicSystems/pixoocal/pixels"
)

func Example() {
	// The Misaki atlases are distributed as PNG files.
	f, err := bitfont.Load("misaki_4x8.png", "misaki_gothic.png")
	if err != nil {
		log.Fatal(err)
	}
	c := pixels.New(64, 8)
	w := f.DrawString(c, "会議 10:00", 0, 0, pixels.White, 1)
	fmt.Printf("%d pixels wide\n", w)
}

func ExampleDrawDigits() {
	c := pixels.New(20, 5)
	w := bitfont.DrawDigits(c, "12:30", 0, 0, pixels.White, 1)
	fmt.Println(w)
	g, _ := bitfont.Digit('2')
	fmt.Println(g)
	// Output:
	// 17
	// ##.
	// ..#
	// .#.
	// #..
	// ###
}
