package fish

import (
	"math"
	"math/rand/v2"
)

const (
	maxFlorets  = 3
	maxTwirl    = 14.0
	maxSineAmp  = 4.0
	maxSpines   = 16
	maxSpineLen = 0.5
)

// sinePositivizing selects how a floret maps sin(θ) into 0..1.
type sinePositivizing uint8

const (
	sineCompress sinePositivizing = iota
	sineTruncate
	sineAbsolute
	sineSawblade
)

type twirlMethod uint8

const (
	twirlNone twirlMethod = iota
	twirlCurve
	twirlSine
)

type twirl struct {
	base   float64
	speed  float64
	amp    float64
	method twirlMethod
}

func newTwirl(r *rand.Rand) twirl {
	t := twirl{
		base:   r.Float64() * math.Pi,
		method: twirlMethod(r.IntN(3)),
	}
	switch t.method {
	case twirlSine:
		t.speed = r.Float64() * maxTwirl * math.Pi
		t.amp = (r.Float64()*2 - 1) * maxSineAmp
	case twirlCurve:
		t.speed = (r.Float64()*2 - 1) * maxTwirl
		t.amp = (r.Float64()*2 - 1) * maxSineAmp
	}
	return t
}

// floret is one ring of spines around a spinflake's edge.
type floret struct {
	sinePos     sinePositivizing
	backward    bool
	spines      int
	spineRadius float64
	twirl       twirl
}

func newFloret(r *rand.Rand) floret {
	f := floret{
		sinePos:     sinePositivizing(r.IntN(4)),
		backward:    r.IntN(2) == 0,
		spines:      r.IntN(maxSpines) + 1,
		spineRadius: r.Float64() * maxSpineLen,
		twirl:       newTwirl(r),
	}
	// Absolute folding doubles the visible spines; keep the count even.
	if f.sinePos == sineAbsolute && f.spines%2 == 1 {
		f.spines++
	}
	return f
}

func (f *floret) chopSin(theta float64) float64 {
	out := math.Sin(theta)
	switch f.sinePos {
	case sineCompress:
		out = (out + 1) / 2
	case sineAbsolute:
		out = math.Abs(out)
	case sineTruncate:
		if out < 0 {
			out++
		}
	case sineSawblade:
		t := math.Mod(theta/4, math.Pi) / 2
		if t < 0 {
			t += math.Pi / 2
		}
		out = math.Sin(t)
	}
	if f.backward {
		return 1 - out
	}
	return out
}

// wave returns the distance from centre this floret adds at angle theta.
func (f *floret) wave(theta, dist float64) float64 {
	arg := theta*float64(f.spines) + f.twirl.base
	switch f.twirl.method {
	case twirlCurve:
		arg += dist * (f.twirl.speed + dist*f.twirl.amp)
	case twirlSine:
		arg += math.Sin(dist*f.twirl.speed) * (f.twirl.amp + dist*f.twirl.amp)
	}
	return f.chopSin(arg) * f.spineRadius
}

// spinflake is a spiky blob: a circle whose edge is modulated by florets.
// It tiles itself by blending with its own copy one tile away.
type spinflake struct {
	origin         point
	radius         float64
	squish         float64
	twist          float64
	averageFlorets bool
	florets        []floret
}

func newSpinflake(r *rand.Rand) *spinflake {
	s := &spinflake{
		origin:         randomPoint(r),
		radius:         r.Float64(),
		squish:         r.Float64()*2.5 + 0.25,
		twist:          r.Float64() * math.Pi,
		averageFlorets: r.IntN(2) == 0,
	}
	n := r.IntN(maxFlorets) + 1
	for range n {
		s.florets = append(s.florets, newFloret(r))
	}
	return s
}

func (s *spinflake) seamless() bool { return true }

func (s *spinflake) value(p point) float64 {
	v := s.vTiled(p.x, p.y)
	if p.x > 0.5 {
		far := s.vTiled(p.x-1, p.y)
		farWeight := (p.x - 0.5) * 2
		return v*(1-farWeight) + far*farWeight
	}
	return v
}

func (s *spinflake) vTiled(x, y float64) float64 {
	v := s.raw(x, y)
	if y > 0.5 {
		far := s.raw(x, y-1)
		farWeight := (y - 0.5) * 2
		return v*(1-farWeight) + far*farWeight
	}
	return v
}

func (s *spinflake) raw(x, y float64) float64 {
	// Rotate around the origin so the squish bulges point anywhere.
	x -= s.origin.x
	y -= s.origin.y
	angle := math.Atan(y/x) + s.twist
	dist := math.Hypot(x, y)
	x = math.Cos(angle) * dist
	y = math.Sin(angle) * dist

	dist = math.Hypot(x*s.squish, y/s.squish)
	if dist == 0 {
		return 1
	}
	theta := math.Atan(y / x)
	edge := s.radius
	for i := range s.florets {
		edge += s.florets[i].wave(theta, dist)
	}
	if s.averageFlorets {
		edge /= float64(len(s.florets))
	}
	// Distance from the edge proportional to the distance to the edge;
	// non-negative inside the shape.
	prop := (edge - dist) / edge
	if prop >= 0 {
		return math.Sqrt(prop)
	}
	return 1 - 1/(1-prop)
}
