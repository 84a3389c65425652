// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package animation

import (
	"context"
	"image"
	"time"

	"periph.io/x/conn/v3/display"
)

// DrawerUploader plays frames on a display.Drawer, waiting Delay after each.
type DrawerUploader struct {
	Drawer display.Drawer
	Delay  time.Duration
}

// Begin implements Uploader.
func (d *DrawerUploader) Begin(ctx context.Context, total int) error {
	return ctx.Err()
}

// Send implements Uploader.
func (d *DrawerUploader) Send(ctx context.Context, f Frame) error {
	if err := d.Drawer.Draw(d.Drawer.Bounds(), f.Image, image.Point{}); err != nil {
		return err
	}
	if d.Delay <= 0 {
		return nil
	}
	t := time.NewTimer(d.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Uploader = (*DrawerUploader)(nil)
