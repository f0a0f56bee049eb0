// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package webhost

import (
	"sync/atomic"

	"github.com/gogpu/tilefish"
)

// snapshot is what the browser can see at one instant.
type snapshot struct {
	frame   tilefish.Frame
	visible bool
}

// Host is a tilefish.Host backed by an in-memory snapshot.
// It is safe for concurrent use.
type Host struct {
	cur    atomic.Pointer[snapshot]
	prefix string
}

// Option configures a Host.
type Option func(*Host)

// WithFilePrefix sets the file name prefix offered on download.
func WithFilePrefix(prefix string) Option {
	return func(h *Host) {
		if prefix != "" {
			h.prefix = prefix
		}
	}
}

// New returns an empty host with the chrome hidden.
func New(opts ...Option) *Host {
	h := &Host{prefix: "tilefish"}
	for _, opt := range opts {
		opt(h)
	}
	h.cur.Store(&snapshot{})
	return h
}

// Reset implements tilefish.Host.
func (h *Host) Reset() {
	h.cur.Store(&snapshot{})
	tilefish.Logger().Debug("webhost: reset")
}

// Present implements tilefish.Host.
func (h *Host) Present(f tilefish.Frame) {
	h.cur.Store(&snapshot{frame: f, visible: true})
	tilefish.Logger().Debug("webhost: frame attached", "generation", f.Generation)
}

// Visible reports whether the chrome is currently shown.
func (h *Host) Visible() bool {
	return h.cur.Load().visible
}

// Frame returns the attached frame and whether one is attached.
func (h *Host) Frame() (tilefish.Frame, bool) {
	s := h.cur.Load()
	return s.frame, s.visible
}
