package tilefish

import "errors"

// Errors reported by the tiling pipeline and the presentation controller.
var (
	// ErrContractViolation is returned when a raster buffer does not hold
	// exactly width*height*4 bytes. It is fatal to the generation cycle.
	ErrContractViolation = errors.New("tilefish: raster buffer contract violation")

	// ErrEncode is returned when a composited surface cannot be encoded.
	ErrEncode = errors.New("tilefish: encode failed")

	// ErrBusy is returned when a load or regenerate is triggered while a
	// generation cycle is already in flight.
	ErrBusy = errors.New("tilefish: generation already in progress")

	// ErrUnknownVariant is returned when a variant name cannot be parsed.
	ErrUnknownVariant = errors.New("tilefish: unknown tile variant")
)
