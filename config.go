package main

// Rendering and physics tuning constants used throughout the engine. The
// values below are shared by the scalar path and the OpenCL kernel source
// generator so the two code paths cannot drift apart.
const (
	rasterW     = 640
	rasterH     = 480
	windowScale = 2
	defaultTPS  = 60.0

	// Coarse scan-space grid resolution. The physics is evaluated per grid
	// cell and resampled bilinearly into the output raster.
	gridCols = 192
	gridRows = 256

	// Base echogenicity mapping per class.
	echoLevelAnechoic   = 0.05
	echoLevelHypoechoic = 0.35
	echoLevelIsoechoic  = 0.55
	echoLevelHyperech   = 0.85

	// Focal gain: 1 + amp*exp(-falloff*(depth-focus)^2).
	focalGainAmp     = 0.4
	focalGainFalloff = 2.0

	// Default TGC slope when no per-depth dB curve is supplied.
	tgcDefaultSlope = 0.3

	// Speckle synthesis: Rayleigh / smooth-noise blend weights, octave count
	// of the smooth field, depth broadening, and the slow cache drift that
	// gives the texture a time-varying phase.
	speckleRayleighWeight = 0.35
	speckleSmoothWeight   = 0.65
	speckleOctaves        = 6
	speckleDepthBroaden   = 0.3
	speckleDriftCells     = 9.0
	flowSpeckleAmp        = 0.25
	pulsatileRateHz       = 1.2

	// Motion artifacts: breathing sway, probe jitter, tissue tremor.
	breathRateRad   = 0.3
	breathDepthAmp  = 0.12
	jitterFreqHz    = 8.0
	jitterLatAmp    = 0.006
	jitterDepthAmp  = 0.025
	tremorAmp       = 0.012
	tremorDepthFreq = 2.3
	tremorLatFreq   = 5.1
	tremorTimeFreq  = 4.2

	// Temporal live noise: flicker terms, per-call jitter, moving scanline
	// pulse and vertical banding.
	liveFlickerAmpA  = 0.015
	liveFlickerAmpB  = 0.010
	liveFlickerHzA   = 3.7
	liveFlickerHzB   = 7.3
	liveJitterAmp    = 0.012
	scanlineAmp      = 0.035
	scanlineSweepHz  = 0.45
	scanlineSigmaPx  = 6.0
	bandAmp          = 0.010
	bandSpatialFreq  = 0.35
	bandTemporalRate = 2.1

	// Gain / dynamic-range compression reference points.
	gainMidpoint   = 50.0
	compressionRef = 60.0

	// Acoustic shadow: posterior decay scale on the interior attenuation
	// coefficient, per-line jitter range, and the darkness floor.
	shadowAlphaScale = 0.9
	shadowJitterMin  = 0.04
	shadowJitterMax  = 0.10
	shadowFloor      = 0.05

	// Posterior enhancement ceiling and its depth decay.
	enhanceMax   = 1.8
	enhanceDecay = 0.35

	// Output shaping: sector edge feathering over the last fraction of the
	// field of view and the near-field fade-in depth (cm).
	featherFrac   = 0.05
	nearFadeDepth = 0.35

	// Lateral beam divergence applied when testing inclusion containment.
	beamDivergence = 0.08

	// Fallback attenuation (dB/cm/MHz) for depths beyond the layer stack.
	softTissueAtten = 0.54

	// Defensive clamp so zero depths never divide.
	minEffectiveDepth = 1e-3

	// Doppler overlay.
	dopplerAlpha     = 0.55
	dopplerPulseBase = 0.65
	dopplerPulseAmp  = 0.35
)
