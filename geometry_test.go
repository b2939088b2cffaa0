package main

import (
	"math"
	"testing"
)

func convexTestGeometry(fovDeg, maxDepth float64) scanGeometry {
	return newScanGeometry(TransducerGeometry{
		Family:         FamilyConvex,
		FieldOfViewDeg: fovDeg,
		ArcRadius:      6,
		MaxDepth:       maxDepth,
		FocusDepth:     4,
	}, rasterW, rasterH)
}

func TestConvexMaskOutsideFOV(t *testing.T) {
	t.Parallel()
	g := convexTestGeometry(80, 10)
	// A pixel at 41 degrees off axis lies outside the 80 degree sector.
	outLat := 41.0 / 40.0
	for _, depth := range []float64{1, 4, 8} {
		fx, fy := g.nativeToPixel(outLat, depth)
		_, _, inside := g.pixelToNative(int(math.Round(fx)), int(math.Round(fy)))
		if inside {
			t.Errorf("pixel at 41 degrees, depth %v cm not masked", depth)
		}
	}
}

func TestConvexBottomRowReachesMaxDepth(t *testing.T) {
	t.Parallel()
	g := convexTestGeometry(80, 10)
	x := int(math.Round(g.centerX))
	_, depth, inside := g.pixelToNative(x, rasterH-1)
	if !inside {
		t.Fatal("bottom-center pixel is masked")
	}
	if math.Abs(depth-10) > 0.01 {
		t.Errorf("bottom-center pixel maps to depth %v, want 10", depth)
	}
}

func TestConvexRoundTrip(t *testing.T) {
	t.Parallel()
	g := convexTestGeometry(70, 8)
	tests := []struct {
		lat, depth float64
	}{
		{0, 4},
		{-0.8, 2},
		{0.5, 7.5},
		{0.9, 3},
	}
	for _, tt := range tests {
		fx, fy := g.nativeToPixel(tt.lat, tt.depth)
		lat, depth, inside := g.pixelToNative(int(math.Round(fx)), int(math.Round(fy)))
		if !inside {
			t.Errorf("(%v, %v): round-tripped pixel masked", tt.lat, tt.depth)
			continue
		}
		if math.Abs(lat-tt.lat) > 0.02 || math.Abs(depth-tt.depth) > 0.05 {
			t.Errorf("(%v, %v) round-tripped to (%v, %v)", tt.lat, tt.depth, lat, depth)
		}
	}
}

func TestLinearMapping(t *testing.T) {
	t.Parallel()
	g := newScanGeometry(TransducerGeometry{
		Family:   FamilyLinear,
		Aperture: 4,
		MaxDepth: 5,
	}, rasterW, rasterH)
	lat, depth, inside := g.pixelToNative(0, 0)
	if !inside || lat != -1 || depth != 0 {
		t.Errorf("top-left pixel = (%v, %v, %v), want (-1, 0, inside)", lat, depth, inside)
	}
	lat, depth, inside = g.pixelToNative(rasterW-1, rasterH-1)
	if !inside || lat != 1 || depth != 5 {
		t.Errorf("bottom-right pixel = (%v, %v, %v), want (1, 5, inside)", lat, depth, inside)
	}
	if got := g.lateralCm(0.5, 3); got != 1 {
		t.Errorf("lateralCm(0.5) = %v, want 1", got)
	}
}

func TestEdgeFeatherAndNearFade(t *testing.T) {
	t.Parallel()
	g := convexTestGeometry(70, 8)
	if f := g.edgeFeather(0); f != 1 {
		t.Errorf("feather at center = %v, want 1", f)
	}
	if f := g.edgeFeather(1); f != 0 {
		t.Errorf("feather at sector edge = %v, want 0", f)
	}
	mid := g.edgeFeather(1 - featherFrac/2)
	if mid <= 0 || mid >= 1 {
		t.Errorf("feather inside the ramp = %v, want a value in (0,1)", mid)
	}
	if f := g.nearFade(0); f != 0 {
		t.Errorf("near fade at surface = %v, want 0", f)
	}
	if f := g.nearFade(nearFadeDepth * 2); f != 1 {
		t.Errorf("near fade past the ramp = %v, want 1", f)
	}
}
