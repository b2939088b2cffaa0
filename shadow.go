package main

import (
	"math"
	"math/rand"
)

// shadowField is the transient depth-by-line scalar field recomputed every
// frame from the current inclusion list. shade carries posterior attenuation
// behind shadow-casting inclusions in [shadowFloor,1], combined across
// inclusions by minimum; boost carries posterior enhancement behind fluid
// structures in [1,enhanceMax], combined by maximum.
type shadowField struct {
	lines int
	cells int
	shade []float32
	boost []float32
}

func newShadowField(lines, cells int) *shadowField {
	return &shadowField{
		lines: lines,
		cells: cells,
		shade: make([]float32, lines*cells),
		boost: make([]float32, lines*cells),
	}
}

// at reads the field for one scan line and depth cell.
func (f *shadowField) at(line, cell int) (shade, boost float64) {
	i := cell*f.lines + line
	return float64(f.shade[i]), float64(f.boost[i])
}

// recompute rebuilds both fields for the current scene. Cost scales with
// scan-line count times casting-inclusion count, not pixel count.
func (f *shadowField) recompute(scene *SceneConfig, g *scanGeometry, rng *rand.Rand, wantShadow, wantEnhance bool) {
	for i := range f.shade {
		f.shade[i] = 1
		f.boost[i] = 1
	}
	if scene == nil || (!wantShadow && !wantEnhance) {
		return
	}
	cellDepth := g.maxDepth / float64(f.cells-1)
	for i := range scene.Inclusions {
		inc := &scene.Inclusions[i]
		castShadow := wantShadow && inc.StrongShadow
		castBoost := wantEnhance && inc.PostEnhance
		if !castShadow && !castBoost {
			continue
		}
		halfW := inc.Width / 2
		halfH := inc.Height / 2
		if halfW <= 0 || halfH <= 0 {
			continue
		}
		med := lookupMedium(inc.Medium)
		centerLat := inc.CenterLateral * g.halfWidthCm(inc.CenterDepth)
		for line := 0; line < f.lines; line++ {
			lat := 2*float64(line)/float64(f.lines-1) - 1
			lineLat := g.lateralCm(lat, inc.CenterDepth)
			d := math.Abs(lineLat-centerLat) / halfW
			if d >= 1 {
				continue
			}
			// Exit depth of this line through the inclusion, and an edge
			// weight fading from the center toward the rim.
			exit := inc.CenterDepth + halfH
			weight := 1.0
			if inc.Shape != ShapeRect {
				exit = inc.CenterDepth + halfH*math.Sqrt(1-d*d)
				weight = math.Sqrt(1 - d)
			}
			if castShadow {
				jitter := shadowJitterMin + rng.Float64()*(shadowJitterMax-shadowJitterMin)
				alpha := shadowAlphaScale * med.Attenuation * (1 + (rng.Float64()*2-1)*jitter)
				f.castShadowLine(line, exit, weight, alpha, cellDepth)
			}
			if castBoost {
				f.castBoostLine(line, exit, weight, cellDepth)
			}
		}
	}
}

// castShadowLine darkens cells deeper than the exit depth, decaying
// exponentially and never dropping below the floor. Multiple inclusions
// combine through the minimum.
func (f *shadowField) castShadowLine(line int, exit, weight, alpha, cellDepth float64) {
	start := int(math.Ceil(exit / cellDepth))
	if start < 0 {
		start = 0
	}
	for c := start; c < f.cells; c++ {
		depth := float64(c) * cellDepth
		v := math.Exp(-alpha * (depth - exit))
		v = 1 - weight*(1-v)
		if v < shadowFloor {
			v = shadowFloor
		}
		i := c*f.lines + line
		if float32(v) < f.shade[i] {
			f.shade[i] = float32(v)
		}
	}
}

// castBoostLine brightens cells deeper than the exit depth, decaying with
// depth beyond the structure. Overlapping boosts keep the strongest value.
func (f *shadowField) castBoostLine(line int, exit, weight, cellDepth float64) {
	start := int(math.Ceil(exit / cellDepth))
	if start < 0 {
		start = 0
	}
	for c := start; c < f.cells; c++ {
		depth := float64(c) * cellDepth
		b := 1 + (enhanceMax-1)*weight*math.Exp(-enhanceDecay*(depth-exit))
		i := c*f.lines + line
		if float32(b) > f.boost[i] {
			f.boost[i] = float32(b)
		}
	}
}
