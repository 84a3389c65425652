// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package preview

import (
	"mime"
	"net/http"
	"net/textproto"
	"strconv"
)

type client struct {
	refresh   chan struct{}
	terminate chan struct{}
}

func (s *Server) addClient() *client {
	c := &client{
		refresh:   make(chan struct{}, 1),
		terminate: make(chan struct{}, 1),
	}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	return c
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}

// ServeHTTP handles GET requests.
//
// The response is a stream of images, one per Draw, starting with the
// current frame. Query parameters:
//
//	format=png|jpeg  image format
//	once=1           a single image instead of a stream
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	format := s.defaultFormat
	if v := q.Get("format"); v != "" {
		f, err := ParseFormat(v)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		format = f
	}
	if once, _ := strconv.ParseBool(q.Get("once")); once {
		s.serveOnce(w, format)
		return
	}

	// Register before the first snapshot so no Draw is missed.
	c := s.addClient()
	defer s.removeClient(c)

	pw := newPartWriter(w)
	w.Header().Set("Content-Type", mime.FormatMediaType("multipart/x-mixed-replace", map[string]string{
		"boundary": pw.boundary,
	}))
	w.Header().Set("Cache-Control", "no-cache")
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", s.encoders[format].contentType)

	for {
		b, err := s.Snapshot(format)
		if err != nil {
			return
		}
		// Write errors mean the client went away.
		if err := pw.writePart(header, b); err != nil {
			return
		}
		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}
		select {
		case <-c.refresh:
		case <-c.terminate:
			return
		case <-r.Context().Done():
			return
		}
	}
}

func (s *Server) serveOnce(w http.ResponseWriter, f Format) {
	b, err := s.Snapshot(f)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", s.encoders[f].contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	_, _ = w.Write(b)
}
