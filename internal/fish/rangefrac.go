package fish

import (
	"math"
	"math/rand/v2"
)

const (
	rangefracScale = 8
	rangefracSize  = 1 << rangefracScale
)

// rangefrac is midpoint-style fractal noise: a wrapping value matrix built
// coarse to fine, where every new value is drawn between the extremes of its
// already-known neighbours, then sampled with bilinear-like weighting.
type rangefrac struct {
	data []float64 // rangefracSize x rangefracSize, indexed [y*size+x]
}

func wrapIndex(c int) int {
	c %= rangefracSize
	if c < 0 {
		c += rangefracSize
	}
	return c
}

func rangefracAt(x, y int) int {
	return wrapIndex(y)*rangefracSize + wrapIndex(x)
}

func newRangefrac(r *rand.Rand) *rangefrac {
	data := make([]float64, rangefracSize*rangefracSize)
	level := make([]int, rangefracSize*rangefracSize)

	for pass := 1; pass <= rangefracScale; pass++ {
		step := 1 << (rangefracScale - pass)
		for x := 0; x < rangefracSize; x += step {
			for y := 0; y < rangefracSize; y += step {
				i := rangefracAt(x, y)
				if level[i] >= step {
					continue
				}
				lo, hi, found := 1.0, 0.0, false
				for _, d := range [8][2]int{
					{-1, -1}, {0, -1}, {1, -1},
					{-1, 0}, {1, 0},
					{-1, 1}, {0, 1}, {1, 1},
				} {
					j := rangefracAt(x+d[0]*step, y+d[1]*step)
					if level[j] <= step {
						continue
					}
					if !found {
						lo, hi, found = data[j], data[j], true
						continue
					}
					lo = min(lo, data[j])
					hi = max(hi, data[j])
				}
				if lo > hi {
					lo, hi = hi, lo
				}
				v := lo
				if lo != hi {
					v = lo + r.Float64()*(hi-lo)
				}
				// The first values bound everything after them; push
				// them toward the extremes for deeper contrast.
				if step >= rangefracSize/2 {
					if v > 0.5 {
						v = (v + 1) / 2
					} else {
						v /= 2
					}
				}
				data[i] = v
				level[i] = step
			}
		}
	}
	return &rangefrac{data: data}
}

func (f *rangefrac) seamless() bool { return true }

func (f *rangefrac) value(p point) float64 {
	const tweak = 0.5 / rangefracSize
	px, py := p.x*rangefracSize, p.y*rangefracSize
	left := int(math.Floor(px - tweak))
	top := int(math.Floor(py - tweak))

	var sum, weight float64
	for _, c := range [4][2]int{
		{left, top}, {left + 1, top}, {left, top + 1}, {left + 1, top + 1},
	} {
		w := max(0, 1-math.Hypot(float64(c[0])-px, float64(c[1])-py))
		sum += f.data[rangefracAt(c[0], c[1])] * w
		weight += w
	}
	if weight == 0 {
		return f.data[rangefracAt(left, top)]
	}
	return sum / weight
}
