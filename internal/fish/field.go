package fish

import (
	"math"
	"math/rand/v2"
)

// point is a location in unit tile space, both coordinates in [0, 1).
type point struct {
	x, y float64
}

func randomPoint(r *rand.Rand) point {
	return point{x: r.Float64(), y: r.Float64()}
}

// field is a scalar pattern over unit tile space.
type field interface {
	// value returns the pattern value at p. It may leave [0, 1];
	// callers clip.
	value(p point) float64

	// seamless reports whether the pattern already wraps at the tile edges.
	seamless() bool
}

// randomField picks one of the pattern generators with random parameters.
func randomField(r *rand.Rand) field {
	switch r.IntN(5) {
	case 0:
		return newCoswave(r)
	case 1:
		return newSpinflake(r)
	case 2:
		return newBubbles(r)
	case 3:
		return newRangefrac(r)
	default:
		return newFlatwave(r)
	}
}

// packMethod folds the -1..1 range of a cosine into 0..1.
type packMethod uint8

const (
	packScale packMethod = iota
	packFlipSign
	packTruncate
	packSlope
)

func randomPackMethod(r *rand.Rand) packMethod {
	return packMethod(r.IntN(4))
}

func packedCos(distance, scale float64, m packMethod) float64 {
	raw := math.Cos(distance * scale)
	switch m {
	case packFlipSign:
		return math.Abs(raw)
	case packTruncate:
		if raw < 0 {
			return raw + 1
		}
		return raw
	case packSlope:
		// Only the first half of each cycle: a saw edge.
		return (math.Cos(math.Mod(distance*scale, math.Pi)) + 1) / 2
	default:
		return (raw + 1) / 2
	}
}

func clip01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// render samples f over a width x height grid, rolled by a random offset,
// anti-aliased by averaging four sub-pixel samples and made seamless when f
// does not wrap on its own. The result is row-major, one value per pixel.
func render(f field, width, height int, r *rand.Rand) []float64 {
	rollX, rollY := r.IntN(width), r.IntN(height)
	fudge := 1 / float64(width+height)
	out := make([]float64, width*height)
	for y := range height {
		py := float64((y+rollY)%height) / float64(height)
		for x := range width {
			px := float64((x+rollX)%width) / float64(width)
			v := wrapped(f, px, py) +
				wrapped(f, px+fudge, py) +
				wrapped(f, px, py+fudge) +
				wrapped(f, px+fudge, py+fudge)
			out[y*width+x] = clip01(v / 4)
		}
	}
	return out
}

// wrapped samples f at (x, y), mixing in values from the opposite edges of
// the tile weighted by the distance to each edge.
func wrapped(f field, x, y float64) float64 {
	v := f.value(point{x, y})
	if !f.seamless() {
		farX, farY := x+1, y+1
		far1 := f.value(point{x, farY})
		far2 := f.value(point{farX, y})
		far3 := f.value(point{farX, farY})

		w0 := x * y
		w1 := x * (2 - farY)
		w2 := (2 - farX) * y
		w3 := (2 - farX) * (2 - farY)
		v = (v*w0 + far1*w1 + far2*w2 + far3*w3) / (w0 + w1 + w2 + w3)
	}
	return clip01(v)
}
