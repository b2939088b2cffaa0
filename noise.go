package main

import (
	"math"
	"math/rand"
)

// rayleighSigma makes the Rayleigh field average out to 1 so it can be used
// as a multiplicative texture (mean of Rayleigh(sigma) is sigma*sqrt(pi/2)).
const rayleighSigma = 0.7979

// noiseField holds the two pre-generated scalar fields backing speckle
// synthesis: a Rayleigh-amplitude field and a multi-octave smooth value-noise
// field in [0,1]. Both are sized to the raster resolution and persist across
// frames; they are regenerated only when the resolution changes.
type noiseField struct {
	w, h     int
	seed     int64
	rayleigh []float32
	smooth   []float32
}

// newNoiseField allocates and fills both caches for the given resolution.
func newNoiseField(w, h int, seed int64) *noiseField {
	n := &noiseField{seed: seed}
	n.regenerate(w, h)
	return n
}

// regenerate refills the caches at a new resolution. Calling it with the
// current size is a no-op so hosts may invoke it unconditionally on resize.
func (n *noiseField) regenerate(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if n.w == w && n.h == h && n.rayleigh != nil {
		return
	}
	n.w, n.h = w, h
	rng := rand.New(rand.NewSource(n.seed))

	n.rayleigh = make([]float32, w*h)
	for i := range n.rayleigh {
		u := rng.Float64()
		if u >= 1 {
			u = math.Nextafter(1, 0)
		}
		n.rayleigh[i] = float32(rayleighSigma * math.Sqrt(-2*math.Log(1-u)))
	}

	n.smooth = make([]float32, w*h)
	total := 0.0
	amp := 1.0
	for o := 0; o < speckleOctaves; o++ {
		n.addOctave(rng, 4<<o, float32(amp))
		total += amp
		amp *= 0.5
	}
	inv := float32(1 / total)
	for i := range n.smooth {
		n.smooth[i] *= inv
	}
}

// addOctave accumulates one bilinearly interpolated random lattice into the
// smooth field.
func (n *noiseField) addOctave(rng *rand.Rand, cells int, amp float32) {
	lw := cells + 1
	lattice := make([]float32, lw*lw)
	for i := range lattice {
		lattice[i] = rng.Float32()
	}
	sx := float64(cells) / float64(n.w)
	sy := float64(cells) / float64(n.h)
	for y := 0; y < n.h; y++ {
		fy := float64(y) * sy
		y0 := int(fy)
		ty := float32(fy - float64(y0))
		if y0 >= cells {
			y0 = cells - 1
			ty = 1
		}
		for x := 0; x < n.w; x++ {
			fx := float64(x) * sx
			x0 := int(fx)
			tx := float32(fx - float64(x0))
			if x0 >= cells {
				x0 = cells - 1
				tx = 1
			}
			a := lattice[y0*lw+x0]
			b := lattice[y0*lw+x0+1]
			c := lattice[(y0+1)*lw+x0]
			d := lattice[(y0+1)*lw+x0+1]
			top := a + (b-a)*tx
			bot := c + (d-c)*tx
			n.smooth[y*n.w+x] += (top + (bot-top)*ty) * amp
		}
	}
}

// wrapIndex folds an arbitrary sample coordinate into the cache extent.
func wrapIndex(v float64, limit int) int {
	i := int(v) % limit
	if i < 0 {
		i += limit
	}
	return i
}

// sampleRayleigh reads the Rayleigh cache at a wrapped coordinate.
func (n *noiseField) sampleRayleigh(x, y float64) float64 {
	return float64(n.rayleigh[wrapIndex(y, n.h)*n.w+wrapIndex(x, n.w)])
}

// sampleSmooth reads the smooth cache at a wrapped coordinate.
func (n *noiseField) sampleSmooth(x, y float64) float64 {
	return float64(n.smooth[wrapIndex(y, n.h)*n.w+wrapIndex(x, n.w)])
}
