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
	"image"
	"image/color"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/GermanBionicSystems/pixoocal/animation"
)

// fakeDevice records the commands it receives.
type fakeDevice struct {
	mu       sync.Mutex
	commands []map[string]interface{}
	// replies overrides the response body per command.
	replies map[string]string
	status  int
}

func (f *fakeDevice) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost || r.URL.Path != "/post" {
		http.NotFound(w, r)
		return
	}
	var cmd map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	name, _ := cmd["Command"].(string)
	if reply, ok := f.replies[name]; ok {
		_, _ = w.Write([]byte(reply))
		return
	}
	// The device answers with text/html.
	w.Header().Set("Content-Type", "text/html")
	if name == cmdGetID {
		_, _ = w.Write([]byte(`{"error_code":0,"PicId":7}`))
		return
	}
	_, _ = w.Write([]byte(`{"error_code":0}`))
}

func (f *fakeDevice) names() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, c := range f.commands {
		out = append(out, c["Command"].(string))
	}
	return out
}

// sent decodes the i-th command as a frame upload.
func (f *fakeDevice) sent(t *testing.T, i int) sendGif {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := json.Marshal(f.commands[i])
	if err != nil {
		t.Fatal(err)
	}
	var c sendGif
	if err := json.Unmarshal(b, &c); err != nil {
		t.Fatal(err)
	}
	return c
}

func newTestDev(t *testing.T, f *fakeDevice, width int) *Dev {
	t.Helper()
	s := httptest.NewServer(f)
	t.Cleanup(s.Close)
	d, err := New(&Opts{Addr: s.URL, Width: width, Speed: 150 * time.Millisecond, Client: s.Client()})
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func frame(index, total, width int) animation.Frame {
	pix := make([]byte, width*width*3)
	for i := range pix {
		pix[i] = byte(index + i)
	}
	return animation.Frame{Index: index, Total: total, Pixels: pix}
}

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		name    string
		opts    Opts
		wantURL string
		wantErr bool
	}{
		{"host", Opts{Addr: "192.168.1.20", Width: 64}, "http://192.168.1.20/post", false},
		{"port", Opts{Addr: "pixoo.lan:8080", Width: 32}, "http://pixoo.lan:8080/post", false},
		{"url", Opts{Addr: "http://10.0.0.5/", Width: 16}, "http://10.0.0.5/post", false},
		{"no addr", Opts{Width: 64}, "", true},
		{"bad width", Opts{Addr: "x", Width: 48}, "", true},
		{"zero width", Opts{Addr: "x"}, "", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			d, err := New(&tc.opts)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if d.url != tc.wantURL {
				t.Errorf("url = %q, want %q", d.url, tc.wantURL)
			}
			if d.speed != 100 {
				t.Errorf("speed = %d, want default 100", d.speed)
			}
			if got := d.Bounds(); got != image.Rect(0, 0, tc.opts.Width, tc.opts.Width) {
				t.Errorf("Bounds() = %v", got)
			}
		})
	}
}

func TestUpload(t *testing.T) {
	f := &fakeDevice{}
	d := newTestDev(t, f, 16)
	ctx := context.Background()
	if err := d.Begin(ctx, 3); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 3; i++ {
		if err := d.Send(ctx, frame(i, 3, 16)); err != nil {
			t.Fatal(err)
		}
	}
	want := []string{cmdReset, cmdGetID, cmdSendGif, cmdSendGif, cmdSendGif}
	if diff := cmp.Diff(f.names(), want); diff != "" {
		t.Fatalf("commands difference (-got +want):\n%s", diff)
	}
	for i := 0; i < 3; i++ {
		wantCmd := sendGif{
			Command:   cmdSendGif,
			PicNum:    3,
			PicWidth:  16,
			PicOffset: i,
			PicID:     7,
			PixSpeed:  150,
			PicData:   base64.StdEncoding.EncodeToString(frame(i, 3, 16).Pixels),
		}
		if diff := cmp.Diff(f.sent(t, 2+i), wantCmd); diff != "" {
			t.Errorf("frame %d difference (-got +want):\n%s", i, diff)
		}
	}
	// The upload is complete.
	if err := d.Send(ctx, frame(3, 3, 16)); err == nil {
		t.Error("Send() after the last frame succeeded")
	}
}

func TestSendRejects(t *testing.T) {
	for _, tc := range []struct {
		name  string
		begin bool
		f     animation.Frame
	}{
		{"no begin", false, frame(0, 2, 16)},
		{"out of order", true, frame(1, 2, 16)},
		{"wrong total", true, frame(0, 3, 16)},
		{"wrong size", true, frame(0, 2, 32)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeDevice{}
			d := newTestDev(t, f, 16)
			if tc.begin {
				if err := d.Begin(context.Background(), 2); err != nil {
					t.Fatal(err)
				}
			}
			if err := d.Send(context.Background(), tc.f); err == nil {
				t.Fatal("expected error")
			}
			for _, n := range f.names() {
				if n == cmdSendGif {
					t.Fatal("frame was sent")
				}
			}
			// The upload is abandoned.
			if err := d.Send(context.Background(), frame(0, 2, 16)); err == nil {
				t.Error("Send() after a rejected frame succeeded")
			}
		})
	}
}

func TestBeginTotal(t *testing.T) {
	for _, total := range []int{0, -1, MaxFrames + 1} {
		f := &fakeDevice{}
		d := newTestDev(t, f, 16)
		if err := d.Begin(context.Background(), total); err == nil {
			t.Errorf("Begin(%d) succeeded", total)
		}
		if len(f.names()) != 0 {
			t.Errorf("Begin(%d) sent %v", total, f.names())
		}
	}
}

func TestBeginErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		replies map[string]string
		status  int
		check   func(error) bool
	}{
		{
			name:    "no PicId",
			replies: map[string]string{cmdGetID: `{"error_code":0}`},
			check:   func(err error) bool { return errors.Is(err, ErrNoPicID) },
		},
		{
			name:    "error code",
			replies: map[string]string{cmdReset: `{"error_code":1}`},
			check: func(err error) bool {
				var e *Error
				return errors.As(err, &e) && e.Command == cmdReset && e.Code == 1
			},
		},
		{
			name:    "missing error code",
			replies: map[string]string{cmdGetID: `{"PicId":3}`},
			check: func(err error) bool {
				var e *Error
				return errors.As(err, &e) && e.Command == cmdGetID && e.Code == -1
			},
		},
		{
			name:    "not json",
			replies: map[string]string{cmdReset: `<html>`},
			check: func(err error) bool {
				var e *Error
				return errors.As(err, &e) && e.Code == -1
			},
		},
		{
			name:   "http status",
			status: http.StatusInternalServerError,
			check:  func(err error) bool { return strings.Contains(err.Error(), "500") },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			f := &fakeDevice{replies: tc.replies, status: tc.status}
			d := newTestDev(t, f, 16)
			err := d.Begin(context.Background(), 1)
			if err == nil {
				t.Fatal("expected error")
			}
			if !tc.check(err) {
				t.Errorf("Begin() = %v", err)
			}
			if !strings.HasPrefix(err.Error(), "pixoo: ") {
				t.Errorf("error %q lacks the package prefix", err)
			}
		})
	}
}

func TestSendError(t *testing.T) {
	f := &fakeDevice{replies: map[string]string{cmdSendGif: `{"error_code":2}`}}
	d := newTestDev(t, f, 16)
	ctx := context.Background()
	if err := d.Begin(ctx, 2); err != nil {
		t.Fatal(err)
	}
	var e *Error
	if err := d.Send(ctx, frame(0, 2, 16)); !errors.As(err, &e) || e.Code != 2 {
		t.Fatalf("Send() = %v", err)
	}
	f.mu.Lock()
	f.replies = nil
	f.mu.Unlock()
	if err := d.Send(ctx, frame(1, 2, 16)); err == nil {
		t.Error("Send() continued a failed upload")
	}
}

func TestCanceled(t *testing.T) {
	d := newTestDev(t, &fakeDevice{}, 16)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Begin(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Begin() = %v, want %v", err, context.Canceled)
	}
}

func TestDraw(t *testing.T) {
	f := &fakeDevice{}
	d := newTestDev(t, f, 16)
	red := image.NewUniform(color.RGBA{R: 255, A: 255})
	if err := d.Draw(image.Rect(0, 0, 2, 1), red, image.Point{}); err != nil {
		t.Fatal(err)
	}
	want := []string{cmdReset, cmdGetID, cmdSendGif}
	if diff := cmp.Diff(f.names(), want); diff != "" {
		t.Fatalf("commands difference (-got +want):\n%s", diff)
	}
	c := f.sent(t, 2)
	if c.PicNum != 1 || c.PicOffset != 0 {
		t.Errorf("command = %+v", c)
	}
	data, err := base64.StdEncoding.DecodeString(c.PicData)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) != 16*16*3 {
		t.Fatalf("len(PicData) = %d", len(data))
	}
	if !bytes.Equal(data[:9], []byte{255, 0, 0, 255, 0, 0, 0, 0, 0}) {
		t.Errorf("PicData = %v", data[:9])
	}
}

func TestString(t *testing.T) {
	d, err := New(&Opts{Addr: "pixoo.lan", Width: 64})
	if err != nil {
		t.Fatal(err)
	}
	if s := d.String(); s != "Pixoo{pixoo.lan}" {
		t.Errorf("String() = %q", s)
	}
	if err := d.Halt(); err != nil {
		t.Error(err)
	}
}
