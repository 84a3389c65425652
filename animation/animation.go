// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package animation

import (
	"context"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/pixoocal/agenda"
	"github.com/GermanBionicSystems/pixoocal/bitfont"
	"github.com/GermanBionicSystems/pixoocal/calendar"
	"github.com/GermanBionicSystems/pixoocal/marquee"
	"github.com/GermanBionicSystems/pixoocal/pixels"
)

// Frame geometry.
const (
	Size = 64
	// MarqueeTop leaves one blank row below the calendar.
	MarqueeTop = calendar.Height + 1
)

// Opts represents the options of a Scheduler.
type Opts struct {
	// StepSpeed is the number of pixels titles move per frame.
	StepSpeed int
	// HoldCount is the number of frames shown at the first and at the last
	// scroll offset.
	HoldCount int
	// MaxFrames caps the sequence length. Frames past it are dropped.
	MaxFrames int

	Calendar calendar.Opts
	Marquee  marquee.Opts
}

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	StepSpeed: 2,
	HoldCount: 5,
	MaxFrames: 60,
	Calendar:  calendar.DefaultOpts,
}

// Frame is one image of the sequence.
type Frame struct {
	Index  int
	Total  int
	Offset int

	// Pixels is Image serialized as raw RGB.
	Pixels []byte
	Image  *pixels.Canvas
}

// Uploader receives a frame sequence.
//
// Begin is called once with the number of frames, then Send once per frame
// in index order. The first error stops the sequence.
type Uploader interface {
	Begin(ctx context.Context, total int) error
	Send(ctx context.Context, f Frame) error
}

// Plan returns the scroll offset of every frame.
//
// A single frame at offset 0 is returned when maxExtent fits in available.
// Otherwise titles move by StepSpeed per frame until the widest one is fully
// revealed, holding HoldCount frames at both ends. The result is truncated to
// MaxFrames.
func Plan(maxExtent, available int, opts *Opts) []int {
	if opts == nil {
		opts = &DefaultOpts
	}
	if maxExtent <= available {
		return []int{0}
	}
	speed := max(opts.StepSpeed, 1)
	hold := max(opts.HoldCount, 1)
	limit := opts.MaxFrames
	if limit <= 0 {
		limit = DefaultOpts.MaxFrames
	}

	steps := (maxExtent - available + speed - 1) / speed
	offsets := make([]int, 0, min(steps+2*hold-1, limit))
	add := func(off int) bool {
		if len(offsets) == limit {
			return false
		}
		offsets = append(offsets, off)
		return true
	}
	for i := 0; i < hold; i++ {
		add(0)
	}
	for k := 1; k < steps; k++ {
		if !add(k * speed) {
			return offsets
		}
	}
	for i := 0; i < hold; i++ {
		add(steps * speed)
	}
	return offsets
}

// Scheduler renders frame sequences.
//
// It only reads its fields and can be reused across runs.
type Scheduler struct {
	Font *bitfont.Font
	Opts Opts
}

// New returns a Scheduler drawing text with f.
func New(f *bitfont.Font, opts *Opts) *Scheduler {
	if opts == nil {
		opts = &DefaultOpts
	}
	return &Scheduler{Font: f, Opts: *opts}
}

type sequence struct {
	now     time.Time
	events  []agenda.Event
	cal     *pixels.Canvas
	offsets []int
}

func (s *Scheduler) prepare(now time.Time, holidays agenda.Holidays, events []agenda.Event) *sequence {
	cal := calendar.Render(s.Font, now, holidays, events, &s.Opts.Calendar)
	first := marquee.Render(s.Font, now, events, 0, &s.Opts.Marquee)
	return &sequence{
		now:     now,
		events:  events,
		cal:     cal,
		offsets: Plan(first.MaxExtent(), marquee.TitleWidth, &s.Opts),
	}
}

func (s *Scheduler) frame(seq *sequence, i int) Frame {
	off := seq.offsets[i]
	mq := marquee.Render(s.Font, seq.now, seq.events, off, &s.Opts.Marquee)
	img := pixels.New(Size, Size)
	img.Composite(seq.cal, 0, 0, 1)
	img.Composite(mq.Canvas, 0, MarqueeTop, 1)
	return Frame{
		Index:  i,
		Total:  len(seq.offsets),
		Offset: off,
		Pixels: img.Bytes(),
		Image:  img,
	}
}

// Frames renders the whole sequence without sending it.
func (s *Scheduler) Frames(now time.Time, holidays agenda.Holidays, events []agenda.Event) []Frame {
	seq := s.prepare(now, holidays, events)
	out := make([]Frame, len(seq.offsets))
	for i := range out {
		out[i] = s.frame(seq, i)
	}
	return out
}

// Run renders the sequence for now and sends it to up, one frame at a time.
//
// It stops at the first error.
func (s *Scheduler) Run(ctx context.Context, now time.Time, holidays agenda.Holidays, events []agenda.Event, up Uploader) error {
	seq := s.prepare(now, holidays, events)
	total := len(seq.offsets)
	if err := up.Begin(ctx, total); err != nil {
		return fmt.Errorf("animation: begin: %w", err)
	}
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("animation: frame %d/%d: %w", i, total, err)
		}
		if err := up.Send(ctx, s.frame(seq, i)); err != nil {
			return fmt.Errorf("animation: frame %d/%d: %w", i, total, err)
		}
	}
	return nil
}
