// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package calendar renders a six week month grid for a 64 pixel wide matrix.
//
// Each day is a 9x6 cell holding a two digit day number and up to four one
// pixel event bars. Today's column and row are highlighted with translucent
// accent bands and the month number is printed in the bottom right corner.
package calendar

import (
	"strconv"
	"time"

	"github.com/GermanBionicSystems/pixoocal/agenda"
	"github.com/GermanBionicSystems/pixoocal/bitfont"
	"github.com/GermanBionicSystems/pixoocal/pixels"
)

// Grid geometry.
const (
	Columns     = 7
	Rows        = 6
	Days        = Columns * Rows
	ColumnPitch = 9
	RowPitch    = 6
	MaxBars     = 4

	Width  = 64
	Height = Rows*RowPitch + 1
)

// Day colors.
var (
	HolidayColor  = pixels.RGB{R: 255, G: 100, B: 100}
	SundayColor   = pixels.RGB{R: 255, G: 80, B: 80}
	SaturdayColor = pixels.RGB{R: 80, G: 80, B: 255}
	WeekdayColor  = pixels.White
)

// Day opacities.
const (
	TodayOpacity      = 1.0
	OtherMonthOpacity = 0.3
	DayOpacity        = 0.7
)

const (
	bandAlpha  = 0.2
	barAlpha   = 0.5
	eraseAlpha = 0.8
	monthKanji = "月"
)

// Opts contains the rendering options.
type Opts struct {
	// Accent colors the today bands and the month label.
	Accent pixels.RGB
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	Accent: pixels.RGB{R: 0x48, G: 0xb0, B: 0xd5},
}

// Cell is one day of the grid.
type Cell struct {
	Date     time.Time
	Row, Col int
	Color    pixels.RGB
	Opacity  float64

	// Bars holds the colors of the events covering the day, at most MaxBars.
	Bars []pixels.RGB
}

// Origin returns the top-left pixel of the cell content.
func (c *Cell) Origin() (x, y int) {
	return c.Col*ColumnPitch + 1, c.Row*RowPitch + 1
}

// Window returns the first day of the grid shown for the month of today.
//
// This is the Sunday on or before the 1st. When the 1st is itself a Sunday
// the grid starts one week earlier so the first row shows the previous month.
func Window(today time.Time) time.Time {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	back := int(first.Weekday())
	if back == 0 {
		back = 7
	}
	return time.Date(first.Year(), first.Month(), 1-back, 0, 0, 0, 0, first.Location())
}

// Layout returns the Days cells of the grid shown for today, in date order.
//
// Dates are computed in the location of today.
func Layout(today time.Time, holidays agenda.Holidays, events []agenda.Event) []Cell {
	start := Window(today)
	cells := make([]Cell, Days)
	for i := range cells {
		d := time.Date(start.Year(), start.Month(), start.Day()+i, 0, 0, 0, 0, start.Location())
		c := Cell{
			Date:    d,
			Row:     i / Columns,
			Col:     int(d.Weekday()),
			Color:   dayColor(d, holidays),
			Opacity: dayOpacity(d, today),
		}
		for j := range events {
			if len(c.Bars) == MaxBars {
				break
			}
			if events[j].Covers(d) {
				c.Bars = append(c.Bars, events[j].Color())
			}
		}
		cells[i] = c
	}
	return cells
}

func dayColor(d time.Time, holidays agenda.Holidays) pixels.RGB {
	switch {
	case holidays.Has(d):
		return HolidayColor
	case d.Weekday() == time.Sunday:
		return SundayColor
	case d.Weekday() == time.Saturday:
		return SaturdayColor
	default:
		return WeekdayColor
	}
}

func dayOpacity(d, today time.Time) float64 {
	switch {
	case sameDay(d, today):
		return TodayOpacity
	case d.Year() != today.Year() || d.Month() != today.Month():
		return OtherMonthOpacity
	default:
		return DayOpacity
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// Render draws the grid shown for today on a new Width x Height canvas.
func Render(f *bitfont.Font, today time.Time, holidays agenda.Holidays, events []agenda.Event, opts *Opts) *pixels.Canvas {
	if opts == nil {
		opts = &DefaultOpts
	}
	cells := Layout(today, holidays, events)
	bg := pixels.New(Width, Height)
	text := pixels.New(Width, Height)

	for i := range cells {
		if sameDay(cells[i].Date, today) {
			bg.DrawRect(cells[i].Col*ColumnPitch, 0, ColumnPitch, Height, opts.Accent, bandAlpha)
			bg.DrawRect(0, cells[i].Row*RowPitch, Width, RowPitch+1, opts.Accent, bandAlpha)
			break
		}
	}

	for i := range cells {
		c := &cells[i]
		x, y := c.Origin()
		for j, col := range c.Bars {
			bg.DrawRect(x, y+4-j, ColumnPitch-2, 1, col, barAlpha*c.Opacity)
		}
		day := strconv.Itoa(c.Date.Day())
		if len(day) < 2 {
			day = " " + day
		}
		bitfont.DrawDigits(text, day, x, y, c.Color, c.Opacity)
	}

	drawMonth(text, f, int(today.Month()), opts.Accent)

	out := pixels.New(Width, Height)
	out.Composite(bg, 0, 0, 1)
	out.Composite(text, 0, 0, 1)
	return out
}

// drawMonth prints "<n>月" flush with the bottom right corner, over a dark
// patch aligned on the column pitch.
func drawMonth(dst *pixels.Canvas, f *bitfont.Font, month int, c pixels.RGB) {
	num := strconv.Itoa(month)
	numW := bitfont.MeasureDigits(num)
	w := numW + 1 + f.MeasureString(monthKanji)

	erase := (w + 2 + ColumnPitch - 1) / ColumnPitch * ColumnPitch
	dst.DrawRect(Width-erase, Height-RowPitch-1, erase, RowPitch+1, pixels.Black, eraseAlpha)

	x := Width - w
	bitfont.DrawDigits(dst, num, x, Height-bitfont.DigitHeight, c, 1)
	f.DrawString(dst, monthKanji, x+numW+1, Height-bitfont.AtlasHeight, c, 1)
}
