package main

import (
	"fmt"
	"log"
	"math/rand"
)

// Renderer is the long-lived frame orchestrator. It owns the noise caches,
// the coarse scan grid, the shadow field, and the physics time cursor. One
// instance must not be invoked concurrently for overlapping frames; separate
// instances are fully independent.
type Renderer struct {
	width  int
	height int

	scene *SceneConfig
	probe TransducerGeometry
	phys  PhysicsConfig
	geo   scanGeometry

	noise     *noiseField
	state     *physicsState
	grid      *scanGrid
	shadow    *shadowField
	shadowRng *rand.Rand

	resampler    *openCLResampler
	resamplerOff bool
}

// NewRenderer constructs a renderer for a raster size with default probe,
// physics, and scene. seed controls every random source the renderer owns.
func NewRenderer(width, height int, seed int64) *Renderer {
	r := &Renderer{
		width:     width,
		height:    height,
		probe:     defaultTransducer(FamilyConvex),
		phys:      defaultPhysicsConfig(),
		noise:     newNoiseField(width, height, seed),
		grid:      newScanGrid(gridCols, gridRows),
		shadow:    newShadowField(gridCols, gridRows),
		shadowRng: rand.New(rand.NewSource(seed + 1)),
		scene:     abdominalScene(),
	}
	r.state = newPhysicsState(r.noise, seed+2)
	r.geo = newScanGeometry(r.probe, width, height)
	return r
}

// SetSize adapts the renderer to a new raster resolution, regenerating the
// noise caches. This is the only event that invalidates them.
func (r *Renderer) SetSize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.width, r.height = width, height
	r.noise.regenerate(width, height)
	r.geo = newScanGeometry(r.probe, width, height)
}

// UpdateConfig swaps in new probe geometry and physics parameters; both may
// change between frames.
func (r *Renderer) UpdateConfig(probe TransducerGeometry, phys PhysicsConfig) {
	r.probe = probe
	r.phys = phys
	r.geo = newScanGeometry(probe, r.width, r.height)
}

// SetScene replaces the anatomical model wholesale.
func (r *Renderer) SetScene(s *SceneConfig) {
	r.scene = s
}

// Reset rewinds the time cursor without touching configuration or caches.
func (r *Renderer) Reset() {
	r.state.t = 0
}

// SetResampler installs an accelerated resample stage. Pass nil to force the
// scalar path.
func (r *Renderer) SetResampler(rs *openCLResampler) {
	r.resampler = rs
	r.resamplerOff = false
}

// RenderFrame produces one grayscale frame into dst (RGBA, width*height*4).
// It advances the time cursor, rebuilds the shadow field, evaluates the
// coarse grid, resamples into the raster, and runs the Doppler overlay when
// enabled.
func (r *Renderer) RenderFrame(dst []byte, dt float64) error {
	if len(dst) != r.width*r.height*4 {
		return fmt.Errorf("frame buffer is %d bytes, want %d", len(dst), r.width*r.height*4)
	}
	r.state.advanceTime(dt)
	r.shadow.recompute(r.scene, &r.geo, r.shadowRng, r.phys.EnableShadow, r.phys.EnableEnhance)
	r.evaluateGrid()

	resampled := false
	if r.resampler != nil && !r.resamplerOff {
		if err := r.resampler.Resample(r.grid, &r.geo, r.state, r.phys.EnableLiveNoise, dst); err != nil {
			log.Printf("accelerated resample failed, reverting to scalar path: %v", err)
			r.resamplerOff = true
		} else {
			resampled = true
		}
	}
	if !resampled {
		r.resampleScalar(dst)
	}

	if r.phys.EnableDoppler {
		r.applyDoppler(dst)
	}
	return nil
}

// evaluateGrid fills the coarse scan-space grid: tissue resolution, speckle,
// attenuation, focal gain, TGC, shadow and enhancement, then gain and
// dynamic-range compression with a final clamp.
func (r *Renderer) evaluateGrid() {
	maxD := r.geo.maxDepth
	noiseXScale := float64(r.noise.w-1) / float64(r.grid.cols-1)
	noiseYScale := float64(r.noise.h-1) / float64(r.grid.rows-1)
	for row := 0; row < r.grid.rows; row++ {
		depth := float64(row) / float64(r.grid.rows-1) * maxD
		for col := 0; col < r.grid.cols; col++ {
			lat := 2*float64(col)/float64(r.grid.cols-1) - 1
			d, l := depth, lat
			if r.phys.EnableMotion {
				dd, dl := r.state.motionOffsets(depth, lat, maxD)
				d += dd
				l += dl
			}
			ts := sampleTissue(r.scene, &r.geo, d, r.geo.lateralCm(l, d))
			it := baseEchogenicity(ts.Echo)
			if r.phys.EnableSpeckle {
				flowProfile, flowPhase := 0.0, 0.0
				if ts.Inclusion != nil && ts.Inclusion.FlowVelocity != 0 {
					flowProfile = 1 - ts.Dist*ts.Dist
					flowPhase = ts.Inclusion.FlowPhase
				}
				it *= r.state.speckle(float64(col)*noiseXScale, float64(row)*noiseYScale,
					d, maxD, flowProfile, flowPhase)
			}
			it *= attenuationFactor(d, ts.Atten, r.phys.Frequency)
			if r.phys.EnableFocalGain {
				it *= focalGain(d, r.geo.focus)
			}
			if r.phys.EnableTGC {
				it *= timeGainCompensation(d, maxD, r.phys.TGCCurve)
			}
			shade, boost := r.shadow.at(col, row)
			it *= shade * boost
			it = gainCompression(it, r.phys.Gain, r.phys.DynamicRange)
			r.grid.set(col, row, float32(clamp01(it)))
		}
	}
}

// resampleScalar maps every output pixel through the geometric mask,
// bilinearly interpolates the grid, applies temporal live noise, edge
// feathering, and near-field fade, and writes 8-bit grayscale.
func (r *Renderer) resampleScalar(dst []byte) {
	maxD := r.geo.maxDepth
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			i := (y*r.width + x) * 4
			lat, depth, inside := r.geo.pixelToNative(x, y)
			if !inside {
				dst[i] = 0
				dst[i+1] = 0
				dst[i+2] = 0
				dst[i+3] = 255
				continue
			}
			it := r.grid.bilinear((lat+1)/2, depth/maxD)
			if r.phys.EnableLiveNoise {
				it = r.state.liveNoise(x, y, r.height, it)
			}
			it *= r.geo.edgeFeather(lat) * r.geo.nearFade(depth)
			v := byte(clamp01(it) * 255)
			dst[i] = v
			dst[i+1] = v
			dst[i+2] = v
			dst[i+3] = 255
		}
	}
}
