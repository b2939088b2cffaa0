package main

import (
	"math"
	"testing"
)

func rendererTestProbe() TransducerGeometry {
	return TransducerGeometry{
		Family:         FamilyConvex,
		FieldOfViewDeg: 70,
		ArcRadius:      6,
		MaxDepth:       8,
		FocusDepth:     4,
	}
}

// bareRenderer builds a renderer over a plain layer stack with every
// stochastic and depth-compensation stage switched off, so frame bytes follow
// attenuation alone.
func bareRenderer(t *testing.T) *Renderer {
	t.Helper()
	r := NewRenderer(rasterW, rasterH, 7)
	r.UpdateConfig(rendererTestProbe(), PhysicsConfig{
		Frequency:    3.5,
		Gain:         50,
		DynamicRange: 60,
	})
	r.SetScene(&SceneConfig{
		Layers: []Layer{
			{MediumSkin, 0.2},
			{MediumFat, 0.5},
			{MediumMuscle, 2.0},
		},
	})
	return r
}

func TestRenderFrameRejectsBadBuffer(t *testing.T) {
	t.Parallel()
	r := bareRenderer(t)
	if err := r.RenderFrame(make([]byte, 16), 0.016); err == nil {
		t.Error("undersized frame buffer accepted")
	}
}

func TestRenderFrameSectorAndDepthFalloff(t *testing.T) {
	t.Parallel()
	r := bareRenderer(t)
	dst := make([]byte, rasterW*rasterH*4)
	if err := r.RenderFrame(dst, 0.016); err != nil {
		t.Fatal(err)
	}

	// The raster corner sits outside the 70 degree sector.
	if dst[0] != 0 || dst[3] != 255 {
		t.Errorf("corner pixel = (%d, alpha %d), want masked black", dst[0], dst[3])
	}

	// Along the centerline, with gain and compression at unity and every
	// depth-gain stage off, brightness decays strictly with depth.
	g := newScanGeometry(rendererTestProbe(), rasterW, rasterH)
	prev := 256
	for _, depth := range []float64{3, 4, 5, 6, 7} {
		fx, fy := g.nativeToPixel(0, depth)
		i := (int(math.Round(fy))*rasterW + int(math.Round(fx))) * 4
		v := int(dst[i])
		if v == 0 {
			t.Fatalf("centerline pixel at depth %v is black", depth)
		}
		if v >= prev {
			t.Fatalf("brightness not strictly decreasing: %d at depth %v after %d", v, depth, prev)
		}
		if dst[i] != dst[i+1] || dst[i] != dst[i+2] {
			t.Fatalf("grayscale pixel at depth %v has unequal channels", depth)
		}
		prev = v
	}
}

func TestRenderFrameShadowDarkensPosteriorField(t *testing.T) {
	t.Parallel()
	r := bareRenderer(t)
	phys := PhysicsConfig{
		Frequency:    3.5,
		Gain:         50,
		DynamicRange: 60,
		EnableShadow: true,
	}
	r.UpdateConfig(rendererTestProbe(), phys)
	r.SetScene(&SceneConfig{
		Layers: []Layer{
			{MediumSkin, 0.2},
			{MediumFat, 0.5},
			{MediumMuscle, 2.0},
		},
		Inclusions: []Inclusion{
			{Shape: ShapeEllipse, CenterDepth: 4, CenterLateral: 0, Width: 1.5, Height: 0.6,
				Medium: MediumBone, StrongShadow: true},
		},
	})
	dst := make([]byte, rasterW*rasterH*4)
	if err := r.RenderFrame(dst, 0.016); err != nil {
		t.Fatal(err)
	}

	g := newScanGeometry(rendererTestProbe(), rasterW, rasterH)
	behind := blockMean(dst, &g, 0, 7)
	// 0.381 in normalized lateral units is about 3 cm off axis at the
	// inclusion depth, well clear of its 0.75 cm half width.
	offset := blockMean(dst, &g, 0.381, 7)
	if behind >= offset*0.3 {
		t.Errorf("shadowed mean %v not darker than 30%% of unshadowed mean %v", behind, offset)
	}
}

// blockMean averages the red channel over the 5x5 pixel block centered on a
// native coordinate.
func blockMean(dst []byte, g *scanGeometry, lat, depth float64) float64 {
	fx, fy := g.nativeToPixel(lat, depth)
	cx, cy := int(math.Round(fx)), int(math.Round(fy))
	sum := 0.0
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			sum += float64(dst[((cy+dy)*rasterW+cx+dx)*4])
		}
	}
	return sum / 25
}

func TestRendererSetSize(t *testing.T) {
	t.Parallel()
	r := bareRenderer(t)
	r.SetSize(320, 240)
	dst := make([]byte, 320*240*4)
	if err := r.RenderFrame(dst, 0.016); err != nil {
		t.Fatal(err)
	}
	r.Reset()
	if r.state.t != 0 {
		t.Errorf("time cursor after Reset = %v, want 0", r.state.t)
	}
}

func TestScanGridBilinear(t *testing.T) {
	t.Parallel()
	g := newScanGrid(2, 2)
	g.set(0, 0, 0)
	g.set(1, 0, 1)
	g.set(0, 1, 0.5)
	g.set(1, 1, 0.5)
	tests := []struct {
		u, v, want float64
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 0.5},
		{1, 1, 0.5},
		{0.5, 0, 0.5},
		{0.5, 0.5, 0.5},
		{-2, 0, 0},  // clamps
		{0, 3, 0.5}, // clamps
	}
	for _, tt := range tests {
		if got := g.bilinear(tt.u, tt.v); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("bilinear(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}
}
