// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package dirhost saves presented tilefish frames to a directory.
//
// Each frame is written as <prefix>-<variant><ext>, one file per tile.
// Files are written to a temporary name and renamed into place, so a reader
// of the directory never sees a half-written tile.
package dirhost

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/tilefish"
	intImage "github.com/gogpu/tilefish/internal/image"
)

// Host is a tilefish.Host that writes every presented frame to disk.
type Host struct {
	dir     string
	prefix  string
	preview *tilefish.PreviewOptions

	mu    sync.Mutex
	paths []string
	err   error
}

// Option configures a Host.
type Option func(*Host)

// WithPrefix sets the file name prefix. The default is "tilefish".
func WithPrefix(prefix string) Option {
	return func(h *Host) {
		if prefix != "" {
			h.prefix = prefix
		}
	}
}

// WithPreview also writes a PNG repeat preview of every tile as
// <prefix>-<variant>-preview.png. opts is clamped to the preview limits.
func WithPreview(opts tilefish.PreviewOptions) Option {
	return func(h *Host) {
		opts = opts.Normalize()
		h.preview = &opts
	}
}

// New returns a host writing into dir, which is created on first use.
func New(dir string, opts ...Option) *Host {
	h := &Host{dir: dir, prefix: "tilefish"}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Reset implements tilefish.Host. It forgets the last frame; files already
// written stay on disk.
func (h *Host) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths = nil
	h.err = nil
}

// Present implements tilefish.Host. Write failures are reported by Err.
func (h *Host) Present(f tilefish.Frame) {
	paths, err := h.write(f)

	h.mu.Lock()
	defer h.mu.Unlock()
	h.paths = paths
	h.err = err
	if err != nil {
		tilefish.Logger().Warn("dirhost: frame not saved", "generation", f.Generation, "err", err)
		return
	}
	tilefish.Logger().Info("dirhost: frame saved", "generation", f.Generation, "dir", h.dir, "files", len(paths))
}

// Paths returns the files written for the last presented frame.
func (h *Host) Paths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.paths...)
}

// Err returns the error from the last Present, if any.
func (h *Host) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *Host) write(f tilefish.Frame) ([]string, error) {
	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return nil, fmt.Errorf("dirhost: %w", err)
	}
	var paths []string
	for _, v := range tilefish.Variants {
		e := f.Tile(v)
		path := filepath.Join(h.dir, e.Filename(h.prefix))
		if err := writeFile(path, e.Data); err != nil {
			return paths, err
		}
		paths = append(paths, path)

		if h.preview == nil {
			continue
		}
		pm, err := tilefish.Decode(e)
		if err != nil {
			return paths, fmt.Errorf("dirhost: %v: %w", v, err)
		}
		data, err := intImage.EncodeBytes(tilefish.Preview(pm, v, *h.preview), intImage.FormatPNG)
		if err != nil {
			return paths, fmt.Errorf("dirhost: %v preview: %w", v, err)
		}
		path = filepath.Join(h.dir, h.prefix+"-"+v.String()+"-preview.png")
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// writeFile writes data to a temporary file next to path and renames it.
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tilefish-*")
	if err != nil {
		return fmt.Errorf("dirhost: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("dirhost: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("dirhost: close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("dirhost: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("dirhost: %w", err)
	}
	return nil
}
