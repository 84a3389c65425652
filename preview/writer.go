// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"io"
	"net/textproto"
	"sort"
	"strconv"
)

// newBoundary returns a random RFC 2046 multipart boundary.
func newBoundary() string {
	var buf [34]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%x", buf[:])
}

// partWriter writes an endless multipart stream.
//
// mime/multipart.Writer only emits the closing boundary of a part when the
// next one starts, so a browser would always lag one frame behind.
type partWriter struct {
	w        io.Writer
	boundary string
	started  bool
	head     bytes.Buffer
}

func newPartWriter(w io.Writer) *partWriter {
	return &partWriter{w: w, boundary: newBoundary()}
}

// writePart writes body as one complete part, closing boundary included.
//
// It sets Content-Length in header.
func (p *partWriter) writePart(header textproto.MIMEHeader, body []byte) error {
	header.Set("Content-Length", strconv.Itoa(len(body)))
	p.head.Reset()
	if !p.started {
		fmt.Fprintf(&p.head, "--%s\r\n", p.boundary)
		p.started = true
	}
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range header[k] {
			fmt.Fprintf(&p.head, "%s: %s\r\n", k, v)
		}
	}
	p.head.WriteString("\r\n")
	if _, err := p.head.WriteTo(p.w); err != nil {
		return err
	}
	if _, err := p.w.Write(body); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.w, "\r\n--%s\r\n", p.boundary)
	return err
}
