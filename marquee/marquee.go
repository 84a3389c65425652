// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package marquee renders the list of upcoming events below the calendar.
//
// Every event takes one 9 pixel row: a start header on the left and the title
// on the right. Titles wider than their column scroll left with the offset
// passed to Render and stop once their end is visible.
package marquee

import (
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"

	"github.com/GermanBionicSystems/pixoocal/agenda"
	"github.com/GermanBionicSystems/pixoocal/bitfont"
	"github.com/GermanBionicSystems/pixoocal/pixels"
)

// Layout geometry.
const (
	Width       = 64
	Height      = 27
	HeaderWidth = 20
	TitleWidth  = Width - HeaderWidth
	RowPitch    = 9
	Margin      = 2
)

const (
	headerLeft   = 1
	headerTop    = 2
	titleLeft    = 1
	fillerGlyph  = "■"
	fillerMin    = 3
	fillerSpread = 6
)

// Opacities of today's events and of the others.
const (
	TodayOpacity = 1.0
	LaterOpacity = 0.5
)

// Opts contains the rendering options.
type Opts struct {
	// HideNames replaces titles with a run of filler squares.
	HideNames bool
}

// Row describes one rendered event.
type Row struct {
	Event  agenda.Event
	Header string
	Title  string

	// Width is the rendered title width in pixels.
	Width int
	// Extent is the scroll distance needed to reveal the whole title.
	Extent int
}

// Result is the output of Render.
type Result struct {
	Canvas *pixels.Canvas
	Rows   []Row
}

// MaxExtent returns the largest Extent of r.Rows, 0 when there is none.
func (r *Result) MaxExtent() int {
	m := 0
	for i := range r.Rows {
		if r.Rows[i].Extent > m {
			m = r.Rows[i].Extent
		}
	}
	return m
}

// Visible returns the events worth listing at now, sorted by start time then
// title.
//
// An event is kept while it has not ended, and for the whole day it starts on.
func Visible(now time.Time, events []agenda.Event) []agenda.Event {
	out := make([]agenda.Event, 0, len(events))
	for i := range events {
		if !now.After(events[i].End) || events[i].StartsOn(now) {
			out = append(out, events[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Start.Equal(out[j].Start) {
			return out[i].Start.Before(out[j].Start)
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// Header returns "HH:MM" when ev starts on the day of now and "MM/DD" of its
// start otherwise. Times are taken in the location of now.
func Header(ev *agenda.Event, now time.Time) string {
	start := ev.Start.In(now.Location())
	if ev.StartsOn(now) {
		return fmt.Sprintf("%02d:%02d", start.Hour(), start.Minute())
	}
	return fmt.Sprintf("%02d/%02d", int(start.Month()), start.Day())
}

// Filler returns the placeholder shown instead of the title of ev when names
// are hidden. Its length only depends on the start time of ev.
func Filler(ev *agenda.Event) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ev.Start.Format(time.RFC3339)))
	return strings.Repeat(fillerGlyph, fillerMin+int(h.Sum32()%fillerSpread))
}

// Render draws the events visible at now, with titles scrolled left by
// offset pixels.
func Render(f *bitfont.Font, now time.Time, events []agenda.Event, offset int, opts *Opts) Result {
	if opts == nil {
		opts = &Opts{}
	}
	header := pixels.New(HeaderWidth, Height)
	titles := pixels.New(TitleWidth, Height)
	var rows []Row

	for _, ev := range Visible(now, events) {
		y := len(rows) * RowPitch
		// A row starting on the bottom edge is off canvas but still counts
		// toward the scroll extent.
		if y > Height {
			break
		}
		alpha := LaterOpacity
		if ev.StartsOn(now) {
			alpha = TodayOpacity
		}

		r := Row{Event: ev, Header: Header(&ev, now), Title: ev.Title}
		if opts.HideNames {
			r.Title = Filler(&ev)
		}
		bitfont.DrawDigits(header, r.Header, headerLeft, y+headerTop, pixels.White, alpha)

		r.Width = f.MeasureString(r.Title)
		r.Extent = r.Width + Margin
		scroll := offset
		if limit := r.Extent - TitleWidth; scroll > limit {
			scroll = limit
		}
		if scroll < 0 {
			scroll = 0
		}
		f.DrawString(titles, r.Title, titleLeft-scroll, y, ev.Color(), alpha)
		rows = append(rows, r)
	}

	out := pixels.New(Width, Height)
	out.Composite(header, 0, 0, 1)
	out.Composite(titles, HeaderWidth, 0, 1)
	return Result{Canvas: out, Rows: rows}
}
