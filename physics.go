package main

import (
	"math"
	"math/rand"
)

// PhysicsConfig carries the per-frame acquisition parameters and feature
// toggles. It is read every frame and holds no state of its own.
type PhysicsConfig struct {
	Frequency    float64 // MHz
	Gain         float64 // 0..100, 50 is unity
	DynamicRange float64 // dB
	TGCCurve     []float64 // optional per-depth dB curve, surface to maxDepth

	EnableSpeckle   bool
	EnableShadow    bool
	EnableEnhance   bool
	EnableTGC       bool
	EnableFocalGain bool
	EnableMotion    bool
	EnableLiveNoise bool
	EnableDoppler   bool
}

// defaultPhysicsConfig returns the slider defaults with every feature on
// except Doppler.
func defaultPhysicsConfig() PhysicsConfig {
	return PhysicsConfig{
		Frequency:       3.5,
		Gain:            50,
		DynamicRange:    60,
		EnableSpeckle:   true,
		EnableShadow:    true,
		EnableEnhance:   true,
		EnableTGC:       true,
		EnableFocalGain: true,
		EnableMotion:    true,
		EnableLiveNoise: true,
	}
}

// attenuationFactor is the linear round-trip loss at a depth for a tissue
// attenuation coefficient (dB/cm/MHz) and transmit frequency (MHz). Strictly
// decreasing in depth for positive coefficient and frequency.
func attenuationFactor(depth, coeff, freq float64) float64 {
	return math.Pow(10, -coeff*freq*depth/20)
}

// focalGain boosts intensity near the focal depth.
func focalGain(depth, focusDepth float64) float64 {
	d := depth - focusDepth
	return 1 + focalGainAmp*math.Exp(-focalGainFalloff*d*d)
}

// timeGainCompensation returns the depth-dependent amplification. A supplied
// per-depth dB curve is interpolated and converted to linear gain; without
// one a gentle default slope applies.
func timeGainCompensation(depth, maxDepth float64, curve []float64) float64 {
	if maxDepth < minEffectiveDepth {
		maxDepth = minEffectiveDepth
	}
	frac := depth / maxDepth
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	if len(curve) == 0 {
		return 1 + tgcDefaultSlope*frac
	}
	if len(curve) == 1 {
		return math.Pow(10, curve[0]/20)
	}
	pos := frac * float64(len(curve)-1)
	i := int(pos)
	if i >= len(curve)-1 {
		i = len(curve) - 2
	}
	t := pos - float64(i)
	db := curve[i] + (curve[i+1]-curve[i])*t
	return math.Pow(10, db/20)
}

// gainCompression applies receiver gain then dynamic-range compression. The
// caller clamps the result to [0,1].
func gainCompression(intensity, gain, dynamicRange float64) float64 {
	if intensity <= 0 {
		return 0
	}
	out := intensity * math.Pow(10, (gain-gainMidpoint)/20)
	return math.Pow(out, dynamicRange/compressionRef)
}

// physicsState is the time-aware half of the physics core: the per-frame
// time cursor, the persistent noise caches, and the live-noise random source.
type physicsState struct {
	t     float64
	noise *noiseField
	rng   *rand.Rand
}

func newPhysicsState(noise *noiseField, seed int64) *physicsState {
	return &physicsState{noise: noise, rng: rand.New(rand.NewSource(seed))}
}

// advanceTime moves the shared time cursor. Called once per frame.
func (p *physicsState) advanceTime(dt float64) {
	if dt > 0 {
		p.t += dt
	}
}

// speckle returns a multiplicative texture sample around 1, blending the
// cached Rayleigh field with the drifting smooth field and widening with
// depth. flowProfile is the parabolic profile value inside a vessel (0
// elsewhere); it superimposes a pulsatile brightness term.
func (p *physicsState) speckle(x, y, depth, maxDepth, flowProfile, flowPhase float64) float64 {
	if maxDepth < minEffectiveDepth {
		maxDepth = minEffectiveDepth
	}
	ray := p.noise.sampleRayleigh(x, y)
	smooth := p.noise.sampleSmooth(x+p.t*speckleDriftCells, y)
	blend := speckleRayleighWeight*ray + speckleSmoothWeight*(0.5+smooth)
	broaden := 1 + speckleDepthBroaden*depth/maxDepth
	s := 1 + (blend-1)*broaden
	if flowProfile > 0 {
		s += flowSpeckleAmp * flowProfile * math.Sin(2*math.Pi*pulsatileRateHz*p.t+flowPhase)
	}
	return s
}

// motionOffsets composes breathing sway, probe jitter, and fine tissue
// tremor into a (depth, lateral) displacement. Stateless beyond the shared
// time cursor, safe to call per scan line.
func (p *physicsState) motionOffsets(depth, lat, maxDepth float64) (dDepth, dLat float64) {
	if maxDepth < minEffectiveDepth {
		maxDepth = minEffectiveDepth
	}
	breath := breathDepthAmp * (depth / maxDepth) * math.Sin(breathRateRad*p.t)
	jLat := jitterLatAmp * math.Sin(2*math.Pi*jitterFreqHz*p.t)
	jDepth := jitterDepthAmp * math.Sin(2*math.Pi*jitterFreqHz*1.31*p.t+1.7)
	tremor := tremorAmp * math.Sin(depth*tremorDepthFreq) * math.Sin(lat*tremorLatFreq) * math.Sin(p.t*tremorTimeFreq)
	return breath + jDepth + tremor, jLat + tremor*0.4
}

// liveNoise perturbs a pixel intensity with fixed-frequency flicker, per-call
// jitter, a sweeping scanline pulse, and vertical banding, so a static
// configuration reads as a live feed.
func (p *physicsState) liveNoise(px, py int, height int, intensity float64) float64 {
	m := 1 +
		liveFlickerAmpA*math.Sin(2*math.Pi*liveFlickerHzA*p.t) +
		liveFlickerAmpB*math.Sin(2*math.Pi*liveFlickerHzB*p.t+float64(py)*0.02) +
		liveJitterAmp*(p.rng.Float64()*2-1)
	out := intensity * m

	sweep := math.Mod(p.t*scanlineSweepHz, 1) * float64(height)
	d := float64(py) - sweep
	out += scanlineAmp * math.Exp(-d*d/(2*scanlineSigmaPx*scanlineSigmaPx))

	out += intensity * bandAmp * math.Sin(float64(px)*bandSpatialFreq+p.t*bandTemporalRate)
	return out
}
