package main

import "flag"

// Command-line flags controlling the probe, the physics features, and the
// runtime behavior of the interactive host.
var (
	familyFlag = flag.String("family", "convex", "transducer family: linear, convex, microconvex")
	presetFlag = flag.String("preset", "abdominal", "anatomical preset: abdominal, cystic, bony, vascular, nodules")

	freqFlag     = flag.Float64("freq", 3.5, "transmit frequency (MHz)")
	gainFlag     = flag.Float64("gain", 50, "receiver gain (0-100)")
	dynRangeFlag = flag.Float64("dyn-range", 60, "dynamic range (dB)")
	depthFlag    = flag.Float64("depth", 0, "scan depth in cm (0 keeps the family default)")
	focusFlag    = flag.Float64("focus", 0, "focal depth in cm (0 keeps the family default)")

	speckleFlag   = flag.Bool("speckle", true, "enable speckle texture")
	shadowFlag    = flag.Bool("shadow", true, "enable acoustic shadowing")
	enhanceFlag   = flag.Bool("enhancement", true, "enable posterior enhancement")
	motionFlag    = flag.Bool("motion", true, "enable breathing/jitter/tremor motion artifacts")
	liveNoiseFlag = flag.Bool("live-noise", true, "enable the temporal live-feed noise signature")
	dopplerFlag   = flag.Bool("doppler", false, "enable the color Doppler overlay")

	// useOpenCLFlag selects the accelerated resample stage; failure to
	// negotiate a device falls back to the scalar path.
	useOpenCLFlag = flag.Bool("use-opencl", true, "use the OpenCL resampler when available")

	// preferFP16Flag uploads the scan grid as 16-bit floats on the OpenCL path.
	preferFP16Flag = flag.Bool("prefer-fp16", true, "use 16-bit grid uploads on the OpenCL path")

	// overlaysFlag draws the depth ruler, focus marker, beam guides, and
	// anatomy labels atop the frame.
	overlaysFlag = flag.Bool("overlays", false, "draw debug overlays (ruler, focus, beam guides, labels)")

	// debugFlag enables the FPS and frame-time text overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and frame-time overlay")

	// recordDefaultPGO sweeps parameters for a while to produce default.pgo.
	recordDefaultPGO = flag.Bool("record-default-pgo", false, "sweep parameters for 15s while capturing default.pgo")

	// seedFlag pins every random source owned by the renderer.
	seedFlag = flag.Int64("seed", 0, "noise seed (0 derives one from the clock)")
)
