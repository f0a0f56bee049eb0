package fish

import (
	"math"
	"math/rand/v2"
)

const (
	minBubbles = 8
	maxBubbles = 32
)

// span is a closed interval that parameters of one field are drawn from.
type span struct {
	lo, hi float64
}

func newSpan(a, b float64) span {
	if a > b {
		a, b = b, a
	}
	return span{lo: a, hi: b}
}

func (s span) sample(r *rand.Rand) float64 {
	if s.lo == s.hi {
		return s.lo
	}
	return s.lo + r.Float64()*(s.hi-s.lo)
}

// bubble is one rotated, squished paraboloid lump.
type bubble struct {
	origin point
	scale  float64
	squish float64
	angle  float64
	reach  float64 // beyond this raw distance the lump is below zero
}

// bubbles is a field of overlapping lumps. Lumps near an edge spill into
// the neighbouring tiles, so the field wraps without edge mixing.
type bubbles struct {
	lumps []bubble
}

func randomSquish(r *rand.Rand) float64 {
	if r.IntN(2) == 0 {
		return 1
	}
	v := r.Float64()*3 + 1
	if r.IntN(2) == 0 {
		return 1 / v
	}
	return v
}

func newBubbles(r *rand.Rand) *bubbles {
	scale := newSpan(r.Float64()*0.2, r.Float64()*0.2)
	squish := newSpan(randomSquish(r), randomSquish(r))
	angle := newSpan(r.Float64()*math.Pi/2, r.Float64()*math.Pi/2)

	b := &bubbles{lumps: make([]bubble, minBubbles+r.IntN(maxBubbles-minBubbles))}
	for i := range b.lumps {
		l := bubble{
			scale:  scale.sample(r),
			squish: squish.sample(r),
			angle:  angle.sample(r),
			origin: randomPoint(r),
		}
		l.reach = math.Sqrt(l.scale) * max(l.squish, 1/l.squish)
		b.lumps[i] = l
	}
	return b
}

func (b *bubbles) seamless() bool { return true }

// value takes the strongest lump over the tile and its eight neighbours.
// Neighbour contributions fade with the distance from the shared edge.
func (b *bubbles) value(p point) float64 {
	x, y := p.x, p.y
	v := b.at(x, y)
	v = max(v,
		b.at(x+1, y)*(1-x),
		b.at(x-1, y)*x,
		b.at(x, y+1)*(1-y),
		b.at(x, y-1)*y,
		b.at(x+1, y+1)*(1-x)*(1-y),
		b.at(x+1, y-1)*(1-x)*y,
		b.at(x-1, y+1)*x*(1-y),
		b.at(x-1, y-1)*x*y,
	)
	return v
}

// at returns the strongest lump at (x, y), or 0 when none covers it.
func (b *bubbles) at(x, y float64) float64 {
	best := 0.0
	for i := range b.lumps {
		if v := b.lumps[i].at(x, y); v > best {
			best = v
		}
	}
	return best
}

func (l *bubble) at(x, y float64) float64 {
	x -= l.origin.x
	y -= l.origin.y
	dist := math.Hypot(x, y)
	if dist >= l.reach || l.scale == 0 {
		return 0
	}

	angle := math.Atan(y/x) + l.angle
	if x < 0 {
		angle += math.Pi
	}
	t := math.Cos(angle) * dist * l.squish
	d := math.Sin(angle) * dist / l.squish
	h := math.Hypot(t, d)
	return 1 - h*h/l.scale
}
