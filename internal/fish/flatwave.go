package fish

import (
	"math"
	"math/rand/v2"
)

const maxWavePackets = 3

// interference selects how overlapping wave packets combine.
type interference uint8

const (
	interfereMostExtreme interference = iota
	interfereLeastExtreme
	interfereMax
	interfereMin
	interfereAverage
)

// wave is a packed cosine along a line, optionally wobbled by a second
// cosine across the line.
type wave struct {
	scale      float64
	pack       packMethod
	accel      bool
	accelScale float64
	accelAmp   float64
	accelPack  packMethod
}

func newWave(r *rand.Rand) wave {
	w := wave{
		pack:       randomPackMethod(r),
		scale:      r.Float64()*28 + 2,
		accel:      r.IntN(2) == 0,
		accelScale: r.Float64()*28 + 2,
		accelAmp:   r.Float64() * 0.1,
		accelPack:  randomPackMethod(r),
	}
	if w.pack == packScale {
		w.scale *= 2
	}
	return w
}

func (w *wave) at(distance, transverse float64) float64 {
	if w.accel {
		distance += packedCos(transverse, w.accelScale, w.accelPack) * w.accelAmp
	}
	return packedCos(distance, w.scale, w.pack)
}

// wavePacket is a wave laid along a line through origin at angle.
type wavePacket struct {
	origin point
	angle  float64
	wave   wave
}

func (p *wavePacket) at(pt point) float64 {
	x := pt.x - p.origin.x
	y := pt.y - p.origin.y
	dist := math.Hypot(x, y)
	angle := math.Atan(y/x) + p.angle
	if x < 0 {
		angle += math.Pi
	}
	transverse := math.Cos(angle) * dist
	distance := math.Sin(angle) * dist
	return p.wave.at(distance, transverse)
}

// flatwave interferes several linear wave packets.
type flatwave struct {
	method  interference
	packets []wavePacket
}

func newFlatwave(r *rand.Rand) *flatwave {
	f := &flatwave{method: interference(r.IntN(5))}
	n := r.IntN(maxWavePackets) + 2
	for range n {
		f.packets = append(f.packets, wavePacket{
			origin: randomPoint(r),
			angle:  r.Float64() * math.Pi,
			wave:   newWave(r),
		})
	}
	return f
}

func (f *flatwave) seamless() bool { return false }

func (f *flatwave) value(pt point) float64 {
	var out float64
	switch f.method {
	case interfereMin:
		out = 1
	case interfereMostExtreme:
		out = 0.5
	}
	for i := range f.packets {
		v := f.packets[i].at(pt)
		switch f.method {
		case interfereMostExtreme:
			if math.Abs(v-0.5) > math.Abs(out-0.5) {
				out = v
			}
		case interfereLeastExtreme:
			if i == 0 || math.Abs(v-0.5) < math.Abs(out-0.5) {
				out = v
			}
		case interfereMax:
			out = math.Max(out, v)
		case interfereMin:
			out = math.Min(out, v)
		case interfereAverage:
			out += v
		}
	}
	if f.method == interfereAverage {
		out /= float64(len(f.packets))
	}
	return out
}
