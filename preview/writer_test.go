// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/textproto"
	"regexp"
	"testing"
)

var boundaryRe = regexp.MustCompile(`^[a-f0-9]{68}$`)

func TestNewBoundary(t *testing.T) {
	for i := 0; i < 100; i++ {
		if got := newBoundary(); !boundaryRe.MatchString(got) {
			t.Errorf("boundary %q does not match %q", got, boundaryRe)
		}
	}
}

func TestWritePart(t *testing.T) {
	var out bytes.Buffer
	pw := newPartWriter(&out)
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", "image/png")
	for _, body := range []string{"first", "second"} {
		if err := pw.writePart(h, []byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	mr := multipart.NewReader(&out, pw.boundary)
	for _, want := range []string{"first", "second"} {
		p, err := mr.NextPart()
		if err != nil {
			t.Fatal(err)
		}
		if got := p.Header.Get("Content-Length"); got != "5" && got != "6" {
			t.Errorf("Content-Length = %q", got)
		}
		b, err := io.ReadAll(p)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != want {
			t.Errorf("part = %q, want %q", b, want)
		}
	}
}
