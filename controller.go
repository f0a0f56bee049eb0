package tilefish

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// State is the presentation state of a Controller.
type State uint8

const (
	// Idle means no images are attached and the chrome is hidden.
	Idle State = iota

	// Generating means a debounce or generator call is in flight.
	Generating

	// Displayed means all four tiles and the background are attached and
	// the chrome is visible.
	Displayed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Generating:
		return "generating"
	case Displayed:
		return "displayed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Frame is one complete set of encoded tiles from a single generation.
type Frame struct {
	Generation uint64
	Size       int
	Tiles      [NumVariants]EncodedImage
}

// Tile returns the encoded image of variant v.
func (f Frame) Tile(v Variant) EncodedImage {
	if !v.IsValid() {
		return EncodedImage{}
	}
	return f.Tiles[v]
}

// Background returns the image used as the repeating host background:
// the Base tile, whose wrap offset is zero.
func (f Frame) Background() EncodedImage {
	return f.Tiles[Base]
}

// Host is the display surface driven by a Controller.
type Host interface {
	// Reset detaches the four tile images and the background and hides
	// the chrome. The change must be visible to readers when Reset returns.
	Reset()

	// Present attaches all four tiles and the background and shows the
	// chrome as one batch; readers must never observe a partial frame.
	Present(frame Frame)
}

// Transition describes one state change of a Controller.
type Transition struct {
	From, To   State
	Generation uint64
	Err        error // set when a cycle aborts back to Idle
}

// Controller owns the presentation state and runs generation cycles:
// generate, materialize, compose the four variants, encode them and present
// them to the host.
//
// Only one cycle runs at a time. A trigger that arrives while a cycle is in
// flight is ignored with ErrBusy.
type Controller struct {
	gen  Generator
	host Host
	opts controllerOptions

	mu         sync.Mutex
	state      State
	generation uint64
	cancel     context.CancelFunc
}

// NewController creates an Idle controller.
func NewController(gen Generator, host Host, opts ...ControllerOption) *Controller {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller{gen: gen, host: host, opts: o}
}

// State returns the current presentation state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generation returns the number of cycles started so far.
func (c *Controller) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Load runs the initial generation cycle. Called again after a cycle has
// run, it behaves like a regenerate without the debounce.
func (c *Controller) Load(ctx context.Context) error {
	return c.run(ctx, false)
}

// Regenerate clears the host, waits for the debounce delay and runs a new
// generation cycle. It blocks until the new frame is presented or the
// cycle fails; on failure the controller is back in Idle with the host
// reset.
func (c *Controller) Regenerate(ctx context.Context) error {
	return c.run(ctx, true)
}

// Cancel aborts the cycle in flight, if any, and reports whether there
// was one. The aborted trigger returns an error wrapping context.Canceled.
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return false
	}
	c.cancel()
	return true
}

func (c *Controller) run(ctx context.Context, debounce bool) error {
	c.mu.Lock()
	if c.state == Generating {
		c.mu.Unlock()
		Logger().Debug("tilefish: trigger ignored, cycle in flight")
		return ErrBusy
	}
	from := c.state
	initial := c.generation == 0
	c.generation++
	gen := c.generation
	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state = Generating
	c.mu.Unlock()
	defer cancel()

	c.notify(Transition{From: from, To: Generating, Generation: gen})

	if !initial {
		c.host.Reset()
		if debounce {
			if err := c.wait(ctx); err != nil {
				return c.fail(gen, err)
			}
		}
	}

	frame, err := c.produce(ctx, gen)
	if err != nil {
		return c.fail(gen, err)
	}
	c.host.Present(frame)

	c.mu.Lock()
	c.state = Displayed
	c.cancel = nil
	c.mu.Unlock()

	Logger().Debug("tilefish: frame presented", "generation", gen)
	c.notify(Transition{From: Generating, To: Displayed, Generation: gen})
	return nil
}

// wait observes the debounce delay. The timer is abandoned if ctx ends.
func (c *Controller) wait(ctx context.Context) error {
	if c.opts.debounce <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(c.opts.debounce)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) produce(ctx context.Context, gen uint64) (Frame, error) {
	src, err := c.materialize(ctx)
	if err != nil {
		return Frame{}, err
	}
	tiles, err := EncodeAll(ComposeAll(src), c.opts.format)
	if err != nil {
		return Frame{}, err
	}
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	return Frame{Generation: gen, Size: c.opts.size, Tiles: tiles}, nil
}

// materialize calls the generator and validates its buffer, retrying
// contract violations up to the configured limit.
func (c *Controller) materialize(ctx context.Context) (*Pixmap, error) {
	size := c.opts.size
	for attempt := 0; ; attempt++ {
		buf, err := c.gen.Generate(ctx)
		if err != nil {
			return nil, fmt.Errorf("tilefish: generator: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pm, err := FromBuffer(buf, size, size)
		if err == nil {
			Logger().Debug("tilefish: buffer materialized", "bytes", len(buf), "size", size)
			return pm, nil
		}
		if !errors.Is(err, ErrContractViolation) || attempt >= c.opts.retries {
			return nil, err
		}
		Logger().Warn("tilefish: rejected generator buffer, retrying",
			"attempt", attempt+1, "err", err)
	}
}

func (c *Controller) fail(gen uint64, err error) error {
	c.host.Reset()

	c.mu.Lock()
	c.state = Idle
	c.cancel = nil
	c.mu.Unlock()

	Logger().Warn("tilefish: generation cycle aborted", "generation", gen, "err", err)
	c.notify(Transition{From: Generating, To: Idle, Generation: gen, Err: err})
	return fmt.Errorf("tilefish: generation %d: %w", gen, err)
}

func (c *Controller) notify(t Transition) {
	for _, fn := range c.opts.observers {
		fn(t)
	}
}
