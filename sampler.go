package main

import "math"

// tissueSample is the resolved acoustic content of one scan-space point.
type tissueSample struct {
	Medium    MediumID
	Echo      EchoClass
	Atten     float64 // dB/cm/MHz
	Inclusion *Inclusion
	Dist      float64 // normalized distance from the inclusion center, when inside one
}

// inclusionDistance returns the normalized distance of (depth, latCm) from an
// inclusion center and whether the point is contained. The lateral axis is
// widened by a depth-growing beam-divergence factor for the curved shapes.
func inclusionDistance(inc *Inclusion, depth, latCm, centerLatCm float64) (float64, bool) {
	halfW := inc.Width / 2
	halfH := inc.Height / 2
	if halfW <= 0 || halfH <= 0 {
		return 0, false
	}
	div := 1 + beamDivergence*depth
	dx := (latCm - centerLatCm) / (halfW * div)
	dz := (depth - inc.CenterDepth) / halfH
	if inc.Shape == ShapeRect {
		if math.Abs(dx) <= 1 && math.Abs(dz) <= 1 {
			return math.Max(math.Abs(dx), math.Abs(dz)), true
		}
		return 0, false
	}
	d2 := dx*dx + dz*dz
	if d2 > 1 {
		return 0, false
	}
	return math.Sqrt(d2), true
}

// sampleTissue resolves which inclusion or layer occupies a scan-space point.
// Inclusions are tested in declaration order and the first match wins; the
// layer stack is walked with half-open [start, start+thickness) intervals;
// anything deeper falls back to generic soft tissue. It never fails.
func sampleTissue(scene *SceneConfig, g *scanGeometry, depth, latCm float64) tissueSample {
	for i := range scene.Inclusions {
		inc := &scene.Inclusions[i]
		centerLat := inc.CenterLateral * g.halfWidthCm(inc.CenterDepth)
		if d, ok := inclusionDistance(inc, depth, latCm, centerLat); ok {
			med := lookupMedium(inc.Medium)
			return tissueSample{Medium: med.ID, Echo: med.Echo, Atten: med.Attenuation, Inclusion: inc, Dist: d}
		}
	}
	sum := 0.0
	for _, layer := range scene.Layers {
		if depth >= sum && depth < sum+layer.Thickness {
			med := lookupMedium(layer.Medium)
			return tissueSample{Medium: med.ID, Echo: med.Echo, Atten: med.Attenuation}
		}
		sum += layer.Thickness
	}
	med := lookupMedium(MediumSoftTissue)
	return tissueSample{Medium: med.ID, Echo: med.Echo, Atten: med.Attenuation}
}
