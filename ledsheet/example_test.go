// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package ledsheet_test

import (
	"log"
	"time"

	"github.com/GermanBionicSystems/pixoocal/agenda"
	"github.com/GermanBionicSystems/pixoocal/animation"
	"github.com/GermanBionicSystems/pixoocal/bitfont"
	"github.com/GermanBionicSystems/pixoocal/ledsheet"
)

func Example() {
	f, err := bitfont.Load("misaki_4x8.png", "misaki_gothic.png")
	if err != nil {
		log.Fatal(err)
	}
	events, err := agenda.LoadEvents("calendar/events")
	if err != nil {
		log.Fatal(err)
	}
	frames := animation.New(f, nil).Frames(time.Now(), nil, events)
	if err := ledsheet.Save("sheet.png", frames, nil); err != nil {
		log.Fatal(err)
	}
}
