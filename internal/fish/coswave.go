package fish

import (
	"math"
	"math/rand/v2"
)

// coswave is a field of concentric cosine rings around an origin, squished
// along a random angle. About one in 64 waves accelerates its scale with
// distance, which breaks up into moiré turbulence.
type coswave struct {
	origin     point
	waveScale  float64
	squish     float64
	sqAngle    float64
	distortion float64
	pack       packMethod
	accel      float64 // 0 disables acceleration
}

func newCoswave(r *rand.Rand) *coswave {
	c := &coswave{
		origin:     randomPoint(r),
		pack:       randomPackMethod(r),
		waveScale:  r.Float64()*25 + 1,
		sqAngle:    r.Float64() * math.Pi,
		distortion: r.Float64()*1.5 + 0.5,
		squish:     r.Float64()*2 + 0.5,
	}
	if r.IntN(2) == 0 {
		c.squish = -c.squish
	}
	if r.IntN(64) == 0 {
		c.accel = r.Float64()*2 + 1
	}
	// Flip-sign and truncate turn valleys into peaks, doubling the
	// apparent frequency; scale-to-fit gets a doubled scale to match.
	if c.pack == packScale {
		c.waveScale *= 2
	}
	return c
}

func (c *coswave) seamless() bool { return false }

func (c *coswave) value(p point) float64 {
	x := p.x - c.origin.x
	y := p.y - c.origin.y

	angle := math.Atan((y/x)*c.distortion) + c.sqAngle
	dist := math.Hypot(x, y)
	x = math.Cos(angle) * dist
	y = math.Sin(angle) * dist

	dist = math.Hypot(x*c.squish, y/c.squish)
	scale := c.waveScale
	if c.accel != 0 {
		scale = math.Pow(c.waveScale, dist*c.accel)
	}
	return (packedCos(dist, scale, c.pack) + 1) / 2
}
