// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package agenda

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/GermanBionicSystems/pixoocal/pixels"
)

// Event is one calendar entry.
type Event struct {
	UID           string
	Title         string
	Start         time.Time
	End           time.Time
	CalendarName  string
	CalendarColor *pixels.RGB
}

// Color returns the calendar color, white when the calendar has none.
func (e *Event) Color() pixels.RGB {
	if e.CalendarColor == nil {
		return pixels.White
	}
	return *e.CalendarColor
}

// StartsOn reports whether the event starts on the calendar day of day, in
// the location of day.
func (e *Event) StartsOn(day time.Time) bool {
	return Day(e.Start, day.Location()).Equal(Day(day, day.Location()))
}

// Covers reports whether the calendar day of day falls within the event's
// first and last calendar day, both inclusive, in the location of day.
func (e *Event) Covers(day time.Time) bool {
	loc := day.Location()
	d := Day(day, loc)
	return !d.Before(Day(e.Start, loc)) && !d.After(Day(e.End, loc))
}

// Day returns midnight of the calendar day of t in loc.
func Day(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

type eventJSON struct {
	UID           string      `json:"uid"`
	Title         string      `json:"title"`
	StartTime     string      `json:"start_time"`
	EndTime       string      `json:"end_time"`
	CalendarName  string      `json:"calendar_name"`
	CalendarColor *pixels.RGB `json:"calendar_color"`
}

// Timestamps without an offset are read in the local time zone.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTime(s string) (time.Time, error) {
	var err error
	for _, layout := range timeLayouts {
		var t time.Time
		if t, err = time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// MarshalJSON encodes the event in its stored form.
func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		UID:           e.UID,
		Title:         e.Title,
		StartTime:     e.Start.Format(time.RFC3339),
		EndTime:       e.End.Format(time.RFC3339),
		CalendarName:  e.CalendarName,
		CalendarColor: e.CalendarColor,
	})
}

// UnmarshalJSON decodes the stored form of an event.
func (e *Event) UnmarshalJSON(b []byte) error {
	var raw eventJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	start, err := parseTime(raw.StartTime)
	if err != nil {
		return fmt.Errorf("start_time: %w", err)
	}
	end, err := parseTime(raw.EndTime)
	if err != nil {
		return fmt.Errorf("end_time: %w", err)
	}
	*e = Event{
		UID:           raw.UID,
		Title:         raw.Title,
		Start:         start,
		End:           end,
		CalendarName:  raw.CalendarName,
		CalendarColor: raw.CalendarColor,
	}
	return nil
}

// DecodeEvent reads one event.
func DecodeEvent(r io.Reader) (Event, error) {
	e, err := decodeEvent(r)
	if err != nil {
		return Event{}, fmt.Errorf("agenda: %w", err)
	}
	return e, nil
}

func decodeEvent(r io.Reader) (Event, error) {
	var e Event
	err := json.NewDecoder(r).Decode(&e)
	return e, err
}

// LoadEvents reads every *.json file of dir in lexical order.
func LoadEvents(dir string) ([]Event, error) {
	names, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("agenda: %w", err)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("agenda: %w", err)
	}
	events := make([]Event, 0, len(names))
	for _, name := range names {
		e, err := loadEvent(name)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}

func loadEvent(name string) (Event, error) {
	f, err := os.Open(name)
	if err != nil {
		return Event{}, fmt.Errorf("agenda: %w", err)
	}
	defer f.Close()
	e, err := decodeEvent(f)
	if err != nil {
		return Event{}, fmt.Errorf("agenda: %s: %w", filepath.Base(name), err)
	}
	return e, nil
}
