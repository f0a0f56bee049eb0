// Package tilefish produces seamless tiling backgrounds.
//
// # Overview
//
// A Generator fills a square RGBA buffer. The buffer is checked and wrapped
// in a Pixmap, then composed into four variants that differ only by a
// toroidal shift of half the tile:
//
//	Base       unshifted
//	VShift     shifted down by height/2
//	HShift     shifted right by width/2
//	BothShift  shifted by both
//
// Every variant is encoded losslessly (PNG by default, or BMP and TIFF) and
// handed to a Host as one Frame. Hosts never observe a partial set.
//
// # Quick Start
//
//	host := webhost.New()
//	ctrl := tilefish.NewController(tilefish.NewFishGenerator(256, nil), host)
//	if err := ctrl.Load(ctx); err != nil {
//		log.Fatal(err)
//	}
//	http.ListenAndServe(":8080", host.Handler(ctrl))
//
// # Lifecycle
//
// The Controller moves between Idle, Generating and Displayed. Regenerate
// resets the host before it starts and waits a short debounce so the host can
// settle. A cycle that is still running rejects new requests with ErrBusy.
// Any failure resets the host and returns the controller to Idle.
//
// # Logging
//
// The package is silent by default. Use SetLogger to route its slog output
// somewhere useful.
package tilefish
