package main

import "testing"

func TestDopplerColorDirections(t *testing.T) {
	t.Parallel()
	r, _, b := dopplerColor(true, 0.8)
	if r <= b {
		t.Errorf("toward-probe color not red dominant: r=%v b=%v", r, b)
	}
	r, _, b = dopplerColor(false, 0.8)
	if b <= r {
		t.Errorf("away-from-probe color not blue dominant: r=%v b=%v", r, b)
	}
	rLow, _, _ := dopplerColor(true, 0.1)
	rHigh, _, _ := dopplerColor(true, 0.9)
	if rHigh <= rLow {
		t.Errorf("color intensity does not grow with velocity magnitude: %v vs %v", rLow, rHigh)
	}
}

func dopplerTestRenderer(enabled bool) *Renderer {
	r := NewRenderer(rasterW, rasterH, 21)
	r.UpdateConfig(TransducerGeometry{
		Family:     FamilyLinear,
		Aperture:   4,
		MaxDepth:   6,
		FocusDepth: 2,
	}, PhysicsConfig{
		Frequency:     5,
		Gain:          50,
		DynamicRange:  60,
		EnableDoppler: enabled,
	})
	r.SetScene(&SceneConfig{
		Layers: []Layer{{MediumMuscle, 6}},
		Inclusions: []Inclusion{
			{Shape: ShapeCircle, CenterDepth: 3, CenterLateral: 0, Width: 1, Height: 1,
				Medium: MediumBlood, FlowVelocity: 30},
		},
	})
	return r
}

func TestDopplerOverlayColorsVessel(t *testing.T) {
	t.Parallel()
	r := dopplerTestRenderer(true)
	dst := make([]byte, rasterW*rasterH*4)
	if err := r.RenderFrame(dst, 0.1); err != nil {
		t.Fatal(err)
	}

	// Inside the centered vessel at its depth, the half toward negative
	// lateral carries flow toward the probe (red); the mirrored half carries
	// flow away (blue).
	left := (239*rasterW + 272) * 4
	right := (239*rasterW + 367) * 4
	if int(dst[left]) <= int(dst[left+2])+20 {
		t.Errorf("left vessel half not red dominant: r=%d b=%d", dst[left], dst[left+2])
	}
	if int(dst[right+2]) <= int(dst[right])+20 {
		t.Errorf("right vessel half not blue dominant: r=%d b=%d", dst[right], dst[right+2])
	}
	if dst[left+3] != 255 || dst[right+3] != 255 {
		t.Error("overlay disturbed the alpha channel")
	}
}

func TestDopplerDisabledLeavesGrayscale(t *testing.T) {
	t.Parallel()
	r := dopplerTestRenderer(false)
	dst := make([]byte, rasterW*rasterH*4)
	if err := r.RenderFrame(dst, 0.1); err != nil {
		t.Fatal(err)
	}
	i := (239*rasterW + 272) * 4
	if dst[i] != dst[i+1] || dst[i] != dst[i+2] {
		t.Errorf("disabled overlay left a colored pixel: %d %d %d", dst[i], dst[i+1], dst[i+2])
	}
}
