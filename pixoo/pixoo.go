// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pixoo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"
	"net/http"
	"strings"
	"time"

	"periph.io/x/conn/v3/display"

	"github.com/GermanBionicSystems/pixoocal/animation"
)

// MaxFrames is the longest animation the device accepts.
const MaxFrames = 60

const (
	cmdReset   = "Draw/ResetHttpGifId"
	cmdGetID   = "Draw/GetHttpGifId"
	cmdSendGif = "Draw/SendHttpGif"

	maxResponse = 64 << 10
)

// Opts contains the device options.
type Opts struct {
	// Addr is the host, host:port or base URL of the device.
	Addr string
	// Width is the side of the square matrix: 16, 32 or 64.
	Width int
	// Speed is the time each frame is shown.
	Speed time.Duration
	// Client sends the requests. http.DefaultClient is used when nil.
	Client *http.Client
}

// DefaultOpts is the recommended default options for a Pixoo 64. Addr must
// still be set.
var DefaultOpts = Opts{
	Width: 64,
	Speed: 100 * time.Millisecond,
}

// ErrNoPicID is returned when the device does not allocate a picture id.
var ErrNoPicID = errors.New("pixoo: response has no PicId")

// Error is a command rejected by the device.
type Error struct {
	Command string
	// Code is the error_code of the response, -1 when it had none.
	Code int
	Body string
}

func (e *Error) Error() string {
	if e.Code < 0 {
		return fmt.Sprintf("pixoo: %s: malformed response %q", e.Command, e.Body)
	}
	return fmt.Sprintf("pixoo: %s: error_code %d", e.Command, e.Code)
}

// Dev is a handle to a Pixoo.
//
// It is not safe for concurrent use.
type Dev struct {
	url    string
	name   string
	width  int
	speed  int
	client *http.Client

	// Upload in progress.
	picID  int
	total  int
	next   int
	active bool

	buffer *image.RGBA
}

// New returns a handle to the device at opts.Addr. No request is sent.
func New(opts *Opts) (*Dev, error) {
	if opts.Addr == "" {
		return nil, errors.New("pixoo: missing address")
	}
	switch opts.Width {
	case 16, 32, 64:
	default:
		return nil, fmt.Errorf("pixoo: unsupported width %d", opts.Width)
	}
	speed := opts.Speed
	if speed <= 0 {
		speed = DefaultOpts.Speed
	}
	c := opts.Client
	if c == nil {
		c = http.DefaultClient
	}
	base := opts.Addr
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}
	buf := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Width))
	draw.Draw(buf, buf.Bounds(), image.Black, image.Point{}, draw.Src)
	return &Dev{
		url:    strings.TrimSuffix(base, "/") + "/post",
		name:   opts.Addr,
		width:  opts.Width,
		speed:  int(speed / time.Millisecond),
		client: c,
		buffer: buf,
	}, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("Pixoo{%s}", d.name)
}

// Halt implements conn.Resource.
//
// It abandons the upload in progress. The device keeps showing its current
// image.
func (d *Dev) Halt() error {
	d.active = false
	d.client.CloseIdleConnections()
	return nil
}

// Begin implements animation.Uploader.
//
// It resets the device animation buffer and allocates a picture id for total
// frames.
func (d *Dev) Begin(ctx context.Context, total int) error {
	d.active = false
	if total < 1 || total > MaxFrames {
		return fmt.Errorf("pixoo: %d frames, want 1 to %d", total, MaxFrames)
	}
	if _, err := d.post(ctx, cmdReset, struct{ Command string }{cmdReset}); err != nil {
		return err
	}
	r, err := d.post(ctx, cmdGetID, struct{ Command string }{cmdGetID})
	if err != nil {
		return err
	}
	if r.PicID == nil {
		return ErrNoPicID
	}
	d.picID = *r.PicID
	d.total = total
	d.next = 0
	d.active = true
	return nil
}

// Send implements animation.Uploader.
//
// Frames must be sent in index order after Begin. Any failure abandons the
// upload.
func (d *Dev) Send(ctx context.Context, f animation.Frame) error {
	if err := d.check(f); err != nil {
		d.active = false
		return err
	}
	if err := d.sendFrame(ctx, f.Index, f.Pixels); err != nil {
		d.active = false
		return err
	}
	d.next++
	if d.next == d.total {
		d.active = false
	}
	return nil
}

func (d *Dev) check(f animation.Frame) error {
	switch {
	case !d.active:
		return errors.New("pixoo: no upload in progress")
	case f.Total != d.total:
		return fmt.Errorf("pixoo: frame total %d, upload has %d", f.Total, d.total)
	case f.Index != d.next:
		return fmt.Errorf("pixoo: frame %d sent, want %d", f.Index, d.next)
	case len(f.Pixels) != d.width*d.width*3:
		return fmt.Errorf("pixoo: frame is %d bytes, want %d", len(f.Pixels), d.width*d.width*3)
	}
	return nil
}

type sendGif struct {
	Command   string
	PicNum    int
	PicWidth  int
	PicOffset int
	PicID     int
	PixSpeed  int
	PicData   string
}

func (d *Dev) sendFrame(ctx context.Context, index int, pix []byte) error {
	_, err := d.post(ctx, cmdSendGif, sendGif{
		Command:   cmdSendGif,
		PicNum:    d.total,
		PicWidth:  d.width,
		PicOffset: index,
		PicID:     d.picID,
		PixSpeed:  d.speed,
		PicData:   base64.StdEncoding.EncodeToString(pix),
	})
	return err
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements display.Drawer.
func (d *Dev) Bounds() image.Rectangle {
	return d.buffer.Bounds()
}

// Draw implements display.Drawer.
//
// The updated image is uploaded as a single frame animation.
func (d *Dev) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(d.buffer, r, src, sp, draw.Src)
	ctx := context.Background()
	if err := d.Begin(ctx, 1); err != nil {
		return err
	}
	return d.Send(ctx, animation.Frame{Index: 0, Total: 1, Pixels: rgb(d.buffer)})
}

func rgb(img *image.RGBA) []byte {
	b := img.Bounds()
	out := make([]byte, 0, b.Dx()*b.Dy()*3)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			out = append(out, row[4*x], row[4*x+1], row[4*x+2])
		}
	}
	return out
}

type response struct {
	ErrorCode *int `json:"error_code"`
	PicID     *int `json:"PicId"`
}

// post sends one command and checks its error_code.
func (d *Dev) post(ctx context.Context, cmd string, body interface{}) (*response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("pixoo: %s: %w", cmd, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("pixoo: %s: %w", cmd, err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pixoo: %s: %w", cmd, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponse))
	if err != nil {
		return nil, fmt.Errorf("pixoo: %s: %w", cmd, err)
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("pixoo: %s: HTTP %s", cmd, resp.Status)
	}
	var r response
	if err := json.Unmarshal(raw, &r); err != nil || r.ErrorCode == nil {
		return nil, &Error{Command: cmd, Code: -1, Body: string(raw)}
	}
	if *r.ErrorCode != 0 {
		return nil, &Error{Command: cmd, Code: *r.ErrorCode, Body: string(raw)}
	}
	return &r, nil
}

var _ animation.Uploader = (*Dev)(nil)
var _ display.Drawer = (*Dev)(nil)
