package tilefish

import "time"

// DefaultDebounce is the pause between clearing the host and starting the
// next generation on regenerate.
const DefaultDebounce = 10 * time.Millisecond

// ControllerOption configures a Controller during creation.
//
// Example:
//
//	c := tilefish.NewController(gen, host,
//	    tilefish.WithFormat(tilefish.FormatTIFF),
//	    tilefish.WithRetries(1))
type ControllerOption func(*controllerOptions)

// controllerOptions holds optional configuration for Controller creation.
type controllerOptions struct {
	size      int
	debounce  time.Duration
	format    Format
	retries   int
	observers []func(Transition)
}

// defaultOptions returns the default controller options.
func defaultOptions() controllerOptions {
	return controllerOptions{
		size:     DefaultSize,
		debounce: DefaultDebounce,
		format:   FormatPNG,
	}
}

// WithSize sets the edge length the generator is expected to produce.
// Buffers of any other length are contract violations.
func WithSize(size int) ControllerOption {
	return func(o *controllerOptions) {
		if size > 0 {
			o.size = size
		}
	}
}

// WithDebounce sets the delay between resetting the host and calling the
// generator on regenerate. Zero disables the delay.
func WithDebounce(d time.Duration) ControllerOption {
	return func(o *controllerOptions) {
		if d >= 0 {
			o.debounce = d
		}
	}
}

// WithFormat selects the lossless encoding of presented tiles.
func WithFormat(f Format) ControllerOption {
	return func(o *controllerOptions) {
		o.format = f
	}
}

// WithRetries sets how many times a buffer that violates the size contract
// is discarded and requested again before the cycle fails.
func WithRetries(n int) ControllerOption {
	return func(o *controllerOptions) {
		if n >= 0 {
			o.retries = n
		}
	}
}

// WithObserver registers fn to receive every state transition.
// Observers run synchronously on the goroutine driving the cycle.
func WithObserver(fn func(Transition)) ControllerOption {
	return func(o *controllerOptions) {
		if fn != nil {
			o.observers = append(o.observers, fn)
		}
	}
}
