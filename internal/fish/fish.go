// Package fish synthesizes layered procedural textures that tile seamlessly.
//
// A Fish is a stack of two to six colour layers. Each layer maps a pattern
// field onto a gradient between two colours and uses a second field (or the
// first one, possibly inverted) as its opacity mask. Layers are merged back
// to front until the accumulated opacity saturates.
package fish

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Limits on the random layer stack.
const (
	MinLayers = 2
	MaxLayers = 6

	// MaxCutoff is the largest opacity cutoff threshold.
	MaxCutoff = 1.0 / 16.0
)

// Errors returned by New.
var (
	ErrLayerCount = errors.New("fish: layer count out of range")
	ErrCutoff     = errors.New("fish: cutoff threshold out of range")
	ErrPalette    = errors.New("fish: invalid palette")
	ErrSize       = errors.New("fish: invalid size")
)

// Colour is a colour with channels in [0, 1].
type Colour struct {
	R, G, B, A float64
}

func (c Colour) valid() bool {
	in := func(v float64) bool { return v >= 0 && v <= 1 }
	return in(c.R) && in(c.G) && in(c.B) && in(c.A)
}

func (c Colour) sameRGB(o Colour) bool {
	return c.R == o.R && c.G == o.G && c.B == o.B
}

type layer struct {
	image      []float64
	mask       []float64 // nil: the image is its own mask
	invertMask bool
	fore, back Colour
}

// Fish is one randomly parameterized layered texture.
type Fish struct {
	width, height int
	cutoff        float64
	layers        []layer
}

type config struct {
	layers  int
	cutoff  float64
	palette []Colour
}

// Option configures New.
type Option func(*config)

// WithLayers fixes the number of layers, MinLayers..MaxLayers.
func WithLayers(n int) Option {
	return func(c *config) { c.layers = n }
}

// WithCutoff fixes the opacity cutoff threshold, 0..MaxCutoff.
func WithCutoff(v float64) Option {
	return func(c *config) { c.cutoff = v }
}

// WithPalette restricts layer colours to the given palette. The palette
// needs at least two colours with different RGB values.
func WithPalette(p []Colour) Option {
	return func(c *config) { c.palette = p }
}

// New builds a random texture of the given size using r for every choice.
func New(r *rand.Rand, width, height int, opts ...Option) (*Fish, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrSize, width, height)
	}
	cfg := config{layers: -1, cutoff: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	switch {
	case cfg.layers == -1:
		cfg.layers = MinLayers + r.IntN(MaxLayers-MinLayers+1)
	case cfg.layers < MinLayers || cfg.layers > MaxLayers:
		return nil, fmt.Errorf("%w: must be %d <= layers <= %d, got %d",
			ErrLayerCount, MinLayers, MaxLayers, cfg.layers)
	}
	switch {
	case cfg.cutoff == -1:
		cfg.cutoff = r.Float64() * MaxCutoff
	case cfg.cutoff < 0 || cfg.cutoff > MaxCutoff:
		return nil, fmt.Errorf("%w: must be 0 <= cutoff <= %g, got %g", ErrCutoff, MaxCutoff, cfg.cutoff)
	}
	if err := checkPalette(cfg.palette); err != nil {
		return nil, err
	}

	f := &Fish{width: width, height: height, cutoff: cfg.cutoff}
	for range cfg.layers {
		back := sampleColour(r, cfg.palette)
		fore := sampleColour(r, cfg.palette)
		for fore.sameRGB(back) {
			fore = sampleColour(r, cfg.palette)
		}
		l := layer{
			image: render(randomField(r), width, height, r),
			fore:  fore,
			back:  back,
		}
		if r.IntN(2) == 0 {
			l.mask = render(randomField(r), width, height, r)
		}
		l.invertMask = r.IntN(2) == 0
		f.layers = append(f.layers, l)
	}
	return f, nil
}

func checkPalette(p []Colour) error {
	if len(p) == 0 {
		return nil
	}
	distinct := false
	for i, c := range p {
		if !c.valid() {
			return fmt.Errorf("%w: colour %d out of 0..1", ErrPalette, i)
		}
		if !c.sameRGB(p[0]) {
			distinct = true
		}
	}
	if !distinct {
		return fmt.Errorf("%w: need two colours with different RGB", ErrPalette)
	}
	return nil
}

func sampleColour(r *rand.Rand, palette []Colour) Colour {
	if len(palette) > 0 {
		return palette[r.IntN(len(palette))]
	}
	return Colour{R: r.Float64(), G: r.Float64(), B: r.Float64()}
}

// Width returns the texture width in pixels.
func (f *Fish) Width() int { return f.width }

// Height returns the texture height in pixels.
func (f *Fish) Height() int { return f.height }

// Layers returns the number of colour layers.
func (f *Fish) Layers() int { return len(f.layers) }

// Pixel merges all layers at (x, y). High alpha means high opacity.
func (f *Fish) Pixel(x, y int) Colour {
	i := y*f.width + x
	var out Colour
	for _, l := range f.layers {
		v := l.image[i]
		m := v
		if l.mask != nil {
			m = l.mask[i]
		}
		if l.invertMask {
			m = 1 - m
		}
		px := Colour{
			R: v*(l.fore.R-l.back.R) + l.back.R,
			G: v*(l.fore.G-l.back.G) + l.back.G,
			B: v*(l.fore.B-l.back.B) + l.back.B,
			A: m,
		}
		// The new layer goes behind what is already there.
		out.R = out.R*out.A + px.R*(1-out.A)
		out.G = out.G*out.A + px.G*(1-out.A)
		out.B = out.B*out.A + px.B*(1-out.A)

		px.A *= 1 - out.A
		if px.A+out.A+f.cutoff >= 1 {
			out.A = 1
			break
		}
		out.A += px.A
	}
	return out
}

// Render returns the texture as row-major RGBA bytes, 4 per pixel.
// Alpha is always opaque.
func (f *Fish) Render() []byte {
	buf := make([]byte, f.width*f.height*4)
	for y := range f.height {
		for x := range f.width {
			c := f.Pixel(x, y)
			i := (y*f.width + x) * 4
			buf[i+0] = toByte(c.R)
			buf[i+1] = toByte(c.G)
			buf[i+2] = toByte(c.B)
			buf[i+3] = 255
		}
	}
	return buf
}

func toByte(v float64) uint8 {
	return uint8(clip01(v) * 255)
}
