package main

import "math"

// TransducerFamily selects the scan-space shape: Cartesian for linear
// probes, polar for the arc families.
type TransducerFamily int

const (
	FamilyLinear TransducerFamily = iota
	FamilyConvex
	FamilyMicroconvex
)

func (f TransducerFamily) String() string {
	switch f {
	case FamilyLinear:
		return "linear"
	case FamilyMicroconvex:
		return "microconvex"
	default:
		return "convex"
	}
}

// TransducerGeometry describes the probe and the scanned volume. It may
// change between frames.
type TransducerGeometry struct {
	Family         TransducerFamily
	FieldOfViewDeg float64 // arc families
	ArcRadius      float64 // cm, arc families
	Aperture       float64 // cm, linear family
	MaxDepth       float64 // cm
	FocusDepth     float64 // cm
	ScanOffset     float64 // lateral probe offset, cm
}

// defaultTransducer returns typical probe parameters for a family.
func defaultTransducer(family TransducerFamily) TransducerGeometry {
	switch family {
	case FamilyLinear:
		return TransducerGeometry{Family: FamilyLinear, Aperture: 4.0, MaxDepth: 5.0, FocusDepth: 2.0}
	case FamilyMicroconvex:
		return TransducerGeometry{Family: FamilyMicroconvex, FieldOfViewDeg: 90, ArcRadius: 1.0, MaxDepth: 10.0, FocusDepth: 4.0}
	default:
		return TransducerGeometry{Family: FamilyConvex, FieldOfViewDeg: 65, ArcRadius: 6.0, MaxDepth: 12.0, FocusDepth: 5.0}
	}
}

// maskDepthSlack is the tolerance, in cm, applied to the maxDepth mask test.
const maskDepthSlack = 1e-3

// scanGeometry is the per-raster mapping between scan space and pixel space.
// Native coordinates are (lat, depth): lat is normalized [-1,1] across the
// field of view (an angle fraction for arc probes), depth is in cm.
type scanGeometry struct {
	family   TransducerFamily
	width    int
	height   int
	maxDepth float64
	focus    float64
	offset   float64

	halfFOV   float64 // radians, arc families
	arcRadius float64 // cm, arc families
	aperture  float64 // cm, linear

	// Arc families place a virtual center above the raster so the probe arc
	// sits at the top edge and r=maxDepth lands on the bottom edge.
	centerX  float64
	centerY  float64
	pixPerCm float64
}

// newScanGeometry derives the pixel mapping for a raster size. Zero or
// negative depths are clamped defensively rather than rejected.
func newScanGeometry(cfg TransducerGeometry, width, height int) scanGeometry {
	g := scanGeometry{
		family:   cfg.Family,
		width:    width,
		height:   height,
		maxDepth: math.Max(cfg.MaxDepth, minEffectiveDepth),
		focus:    cfg.FocusDepth,
		offset:   cfg.ScanOffset,
	}
	switch cfg.Family {
	case FamilyLinear:
		g.aperture = math.Max(cfg.Aperture, minEffectiveDepth)
	default:
		g.halfFOV = cfg.FieldOfViewDeg * math.Pi / 360
		if g.halfFOV <= 0 {
			g.halfFOV = math.Pi / 6
		}
		g.arcRadius = math.Max(cfg.ArcRadius, 0)
		g.pixPerCm = float64(height-1) / g.maxDepth
		g.centerX = float64(width-1) / 2
		g.centerY = -g.arcRadius * g.pixPerCm
	}
	return g
}

// pixelToNative maps an output pixel to native (lat, depth). inside is false
// for pixels outside the sector or rectangle, which render black.
func (g *scanGeometry) pixelToNative(x, y int) (lat, depth float64, inside bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return 0, 0, false
	}
	if g.family == FamilyLinear {
		lat = 2*float64(x)/float64(g.width-1) - 1
		depth = float64(y) / float64(g.height-1) * g.maxDepth
		return lat, depth, true
	}
	dx := float64(x) - g.centerX
	dy := float64(y) - g.centerY
	theta := math.Atan2(dx, dy)
	r := math.Hypot(dx, dy)/g.pixPerCm - g.arcRadius
	// The depth slack keeps the bottom row at r=maxDepth inside the sector
	// despite pixel-center rounding.
	if math.Abs(theta) > g.halfFOV || r < 0 || r > g.maxDepth+maskDepthSlack {
		return 0, 0, false
	}
	return theta / g.halfFOV, math.Min(r, g.maxDepth), true
}

// nativeToPixel is the inverse mapping, used by the resampler tests and the
// debug overlays (ruler, focus marker, beam guides).
func (g *scanGeometry) nativeToPixel(lat, depth float64) (float64, float64) {
	if g.family == FamilyLinear {
		return (lat + 1) / 2 * float64(g.width-1), depth / g.maxDepth * float64(g.height-1)
	}
	theta := lat * g.halfFOV
	r := (g.arcRadius + depth) * g.pixPerCm
	return g.centerX + r*math.Sin(theta), g.centerY + r*math.Cos(theta)
}

// lateralCm converts a native lateral coordinate at a depth to the physical
// centimeter axis inclusions are authored in, including the probe offset.
func (g *scanGeometry) lateralCm(lat, depth float64) float64 {
	if g.family == FamilyLinear {
		return lat*g.aperture/2 + g.offset
	}
	return math.Sin(lat*g.halfFOV)*(g.arcRadius+depth) + g.offset
}

// halfWidthCm is the physical half width of the field at a depth; inclusion
// centers declared in [-1,1] scale by this.
func (g *scanGeometry) halfWidthCm(depth float64) float64 {
	if g.family == FamilyLinear {
		return g.aperture / 2
	}
	return math.Sin(g.halfFOV) * (g.arcRadius + depth)
}

// edgeFeather ramps intensity to zero over the outermost featherFrac of the
// field of view.
func (g *scanGeometry) edgeFeather(lat float64) float64 {
	a := math.Abs(lat)
	if a <= 1-featherFrac {
		return 1
	}
	f := (1 - a) / featherFrac
	if f < 0 {
		return 0
	}
	return f
}

// nearFade ramps intensity up over the first fraction of depth so the
// skinline is not an artificial bright band.
func (g *scanGeometry) nearFade(depth float64) float64 {
	if depth >= nearFadeDepth {
		return 1
	}
	if depth <= 0 {
		return 0
	}
	return depth / nearFadeDepth
}
