package main

import "math"

// dopplerColor maps flow direction to the conventional red (toward probe) /
// blue (away) hues, scaled by normalized velocity magnitude.
func dopplerColor(toward bool, mag float64) (float64, float64, float64) {
	s := (0.4 + 0.6*mag) * 255
	if toward {
		return s, s * 0.25, s * 0.15
	}
	return s * 0.2, s * 0.35, s
}

// applyDoppler composites the flow overlay over the grayscale frame. For
// each vessel inclusion, pixels inside its boundary are colored by signed
// laminar velocity: a parabolic radial profile modulated by a pulsatile
// phase and a position-dependent direction sign. Alpha is lightly jittered
// with the shared smooth-noise cache.
func (r *Renderer) applyDoppler(dst []byte) {
	for n := range r.scene.Inclusions {
		inc := &r.scene.Inclusions[n]
		if inc.FlowVelocity == 0 {
			continue
		}
		halfW := inc.Width / 2
		halfH := inc.Height / 2
		if halfW <= 0 || halfH <= 0 {
			continue
		}
		vRef := math.Abs(inc.FlowVelocity)
		pulse := dopplerPulseBase + dopplerPulseAmp*math.Sin(2*math.Pi*pulsatileRateHz*r.state.t+inc.FlowPhase)
		centerLat := inc.CenterLateral * r.geo.halfWidthCm(inc.CenterDepth)
		for y := 0; y < r.height; y++ {
			for x := 0; x < r.width; x++ {
				lat, depth, inside := r.geo.pixelToNative(x, y)
				if !inside {
					continue
				}
				div := 1 + beamDivergence*depth
				dx := (r.geo.lateralCm(lat, depth) - centerLat) / (halfW * div)
				dz := (depth - inc.CenterDepth) / halfH
				d2 := dx*dx + dz*dz
				if d2 > 1 {
					continue
				}
				v := inc.FlowVelocity * (1 - d2) * pulse
				if dx > 0 {
					v = -v
				}
				mag := clamp01(math.Abs(v) / vRef)
				if mag == 0 {
					continue
				}
				jit := 0.8 + 0.2*r.noise.sampleSmooth(float64(x), float64(y))
				alpha := clamp01(dopplerAlpha * mag * jit)
				cr, cg, cb := dopplerColor(v > 0, mag)
				i := (y*r.width + x) * 4
				dst[i] = byte(clamp01((float64(dst[i])*(1-alpha)+cr*alpha)/255) * 255)
				dst[i+1] = byte(clamp01((float64(dst[i+1])*(1-alpha)+cg*alpha)/255) * 255)
				dst[i+2] = byte(clamp01((float64(dst[i+2])*(1-alpha)+cb*alpha)/255) * 255)
			}
		}
	}
}
