// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// pixoocal renders the calendar and upcoming events and uploads them as an
// animation to a Pixoo 64.
//
// Run it from cron, after the event store was refreshed:
//
//	PIXOO_IP=192.168.1.20 pixoocal -events calendar/events
//
// -dry-run plays the animation in the terminal, -sheet writes all frames to
// a PNG and -serve streams them to a browser in a loop.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/GermanBionicSystems/pixoocal/agenda"
	"github.com/GermanBionicSystems/pixoocal/animation"
	"github.com/GermanBionicSystems/pixoocal/bitfont"
	"github.com/GermanBionicSystems/pixoocal/ledsheet"
	"github.com/GermanBionicSystems/pixoocal/pixoo"
	"github.com/GermanBionicSystems/pixoocal/preview"
	"github.com/GermanBionicSystems/pixoocal/screen2d"
)

const (
	halfAtlas = "misaki_4x8.png"
	fullAtlas = "misaki_gothic.png"
)

type config struct {
	addr      string
	events    string
	holidays  string
	fonts     string
	hideNames bool
	speed     time.Duration
	accent    string
	tz        string
	dryRun    bool
	sheet     string
	serve     string
	timeout   time.Duration
	verbose   bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseFlags(args []string) (*config, error) {
	c := &config{}
	fs := flag.NewFlagSet("pixoocal", flag.ContinueOnError)
	fs.StringVar(&c.addr, "addr", os.Getenv("PIXOO_IP"), "Pixoo address; $PIXOO_IP")
	fs.StringVar(&c.events, "events", getenv("PIXOOCAL_EVENTS", "calendar/events"), "directory of event JSON files; $PIXOOCAL_EVENTS")
	fs.StringVar(&c.holidays, "holidays", getenv("PIXOOCAL_HOLIDAYS", "calendar/holidays.json"), "holidays JSON file; $PIXOOCAL_HOLIDAYS")
	fs.StringVar(&c.fonts, "fonts", getenv("PIXOOCAL_FONT_DIR", "misaki"), "directory holding "+halfAtlas+" and "+fullAtlas+"; $PIXOOCAL_FONT_DIR")
	fs.BoolVar(&c.hideNames, "hide-names", false, "replace event titles with filler squares")
	fs.DurationVar(&c.speed, "speed", pixoo.DefaultOpts.Speed, "time each frame is shown")
	fs.StringVar(&c.accent, "accent", animation.DefaultOpts.Calendar.Accent.String(), "accent color, #rgb or #rrggbb")
	fs.StringVar(&c.tz, "tz", "Local", "time zone the calendar is drawn in")
	fs.BoolVar(&c.dryRun, "dry-run", false, "play the animation in the terminal instead of uploading it")
	fs.StringVar(&c.sheet, "sheet", "", "write every frame to this PNG file instead of uploading")
	fs.StringVar(&c.serve, "serve", "", "stream the animation to browsers on this address instead of uploading")
	fs.DurationVar(&c.timeout, "timeout", 30*time.Second, "maximum duration of the upload")
	fs.BoolVar(&c.verbose, "v", false, "verbose mode")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, errors.New("unexpected argument, try -help")
	}
	if c.addr == "" && !c.dryRun && c.sheet == "" && c.serve == "" {
		return nil, errors.New("-addr or $PIXOO_IP is required")
	}
	return c, nil
}

// scheduler loads the fonts and returns the configured scheduler.
func (c *config) scheduler() (*animation.Scheduler, error) {
	opts := animation.DefaultOpts
	accent, err := agenda.ParseHexColor(c.accent)
	if err != nil {
		return nil, err
	}
	opts.Calendar.Accent = accent
	opts.Marquee.HideNames = c.hideNames
	f, err := bitfont.Load(filepath.Join(c.fonts, halfAtlas), filepath.Join(c.fonts, fullAtlas))
	if err != nil {
		return nil, err
	}
	return animation.New(f, &opts), nil
}

// input is one snapshot of the event store.
type input struct {
	now      time.Time
	holidays agenda.Holidays
	events   []agenda.Event
}

func (c *config) load() (*input, error) {
	loc, err := time.LoadLocation(c.tz)
	if err != nil {
		return nil, err
	}
	h, err := agenda.LoadHolidays(c.holidays)
	if err != nil {
		return nil, err
	}
	ev, err := agenda.LoadEvents(c.events)
	if err != nil {
		return nil, err
	}
	log.Printf("%d events, %d holidays", len(ev), len(h))
	return &input{now: time.Now().In(loc), holidays: h, events: ev}, nil
}

// loggingUploader logs each step of an upload.
type loggingUploader struct {
	animation.Uploader
}

func (l loggingUploader) Begin(ctx context.Context, total int) error {
	log.Printf("uploading %d frames", total)
	return l.Uploader.Begin(ctx, total)
}

func (l loggingUploader) Send(ctx context.Context, f animation.Frame) error {
	start := time.Now()
	err := l.Uploader.Send(ctx, f)
	log.Printf("frame %d/%d offset %d: %s", f.Index+1, f.Total, f.Offset, time.Since(start).Round(time.Millisecond))
	return err
}

func run(ctx context.Context, c *config) error {
	s, err := c.scheduler()
	if err != nil {
		return err
	}
	switch {
	case c.sheet != "":
		in, err := c.load()
		if err != nil {
			return err
		}
		return ledsheet.Save(c.sheet, s.Frames(in.now, in.holidays, in.events), nil)

	case c.dryRun:
		in, err := c.load()
		if err != nil {
			return err
		}
		d := screen2d.New(&screen2d.Opts{X: animation.Size, Y: animation.Size})
		defer d.Halt()
		up := &animation.DrawerUploader{Drawer: d}
		// Redrawing in place only works in a terminal.
		if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			up.Delay = c.speed
		}
		return s.Run(ctx, in.now, in.holidays, in.events, up)

	case c.serve != "":
		return serve(ctx, c, s)
	}

	in, err := c.load()
	if err != nil {
		return err
	}
	d, err := pixoo.New(&pixoo.Opts{
		Addr:   c.addr,
		Width:  animation.Size,
		Speed:  c.speed,
		Client: &http.Client{Timeout: c.timeout},
	})
	if err != nil {
		return err
	}
	defer d.Halt()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	start := time.Now()
	if err := s.Run(ctx, in.now, in.holidays, in.events, loggingUploader{d}); err != nil {
		return err
	}
	log.Printf("uploaded to %s in %s", d, time.Since(start).Round(time.Millisecond))
	return nil
}

// serve plays the animation on a preview.Server until ctx is canceled,
// reloading the event store before every loop.
func serve(ctx context.Context, c *config, s *animation.Scheduler) error {
	p := preview.New(&preview.DefaultOpts)
	srv := &http.Server{Addr: c.serve, Handler: p}
	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()
	defer srv.Close()
	defer p.Halt()
	fmt.Printf("Serving on http://%s/\n", c.serve)
	up := &animation.DrawerUploader{Drawer: p, Delay: c.speed}
	for {
		in, err := c.load()
		if err != nil {
			return err
		}
		if err := s.Run(ctx, in.now, in.holidays, in.events, up); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		// Hold the last frame before reloading.
		select {
		case err := <-errc:
			return err
		case <-ctx.Done():
			return nil
		case <-time.After(time.Second):
		}
	}
}

func mainImpl() error {
	c, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}
	if !c.verbose {
		log.SetOutput(io.Discard)
	}
	log.SetFlags(log.Lmicroseconds)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, c)
}

func main() {
	if err := mainImpl(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "pixoocal: %s.\n", err)
		os.Exit(1)
	}
}
