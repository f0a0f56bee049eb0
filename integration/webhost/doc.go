// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package webhost displays tilefish frames in a browser.
//
// Host implements tilefish.Host over a single atomically swapped snapshot,
// so an HTTP request sees either no tiles or all four tiles of one frame,
// never a mix. Handler exposes the snapshot and the regenerate trigger:
//
//	GET  /                        page with four tile slots and the repeating background
//	GET  /background              Base tile bytes
//	GET  /tiles/{variant}         encoded tile (?download=1 to save it)
//	GET  /tiles/{variant}/preview PNG repeat preview (?cols=&rows=&scale=)
//	GET  /state                   JSON state
//	POST /regenerate              clear, debounce, generate; 303 back to /
//
// # Usage
//
//	host := webhost.New()
//	ctrl := tilefish.NewController(tilefish.NewFishGenerator(0, nil), host)
//	srv := &http.Server{Addr: ":8080", Handler: host.Handler(ctrl)}
//	go ctrl.Load(ctx)
//	srv.ListenAndServe()
package webhost
