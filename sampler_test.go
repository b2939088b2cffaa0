package main

import "testing"

func samplerTestScene() *SceneConfig {
	return &SceneConfig{
		Layers: []Layer{
			{MediumSkin, 0.2},
			{MediumFat, 0.5},
			{MediumMuscle, 2.0},
		},
	}
}

func samplerTestGeometry() scanGeometry {
	return newScanGeometry(TransducerGeometry{
		Family:   FamilyLinear,
		Aperture: 4,
		MaxDepth: 8,
	}, rasterW, rasterH)
}

func TestLayerResolutionHalfOpen(t *testing.T) {
	t.Parallel()
	scene := samplerTestScene()
	g := samplerTestGeometry()
	tests := []struct {
		name  string
		depth float64
		want  MediumID
	}{
		{"surface", 0, MediumSkin},
		{"inside skin", 0.19, MediumSkin},
		{"skin/fat boundary", 0.2, MediumFat},
		{"inside fat", 0.5, MediumFat},
		{"fat/muscle boundary", 0.7, MediumMuscle},
		{"inside muscle", 2.69, MediumMuscle},
		{"past the stack", 2.7, MediumSoftTissue},
		{"deep fallback", 15, MediumSoftTissue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sampleTissue(scene, &g, tt.depth, 0)
			if got.Medium != tt.want {
				t.Errorf("depth %v resolved to %v, want %v", tt.depth, got.Medium, tt.want)
			}
			if got.Inclusion != nil {
				t.Errorf("depth %v reported an inclusion in a layer-only scene", tt.depth)
			}
		})
	}
}

func TestInclusionPrecedence(t *testing.T) {
	t.Parallel()
	scene := samplerTestScene()
	scene.Inclusions = []Inclusion{
		{Shape: ShapeCircle, CenterDepth: 0.5, CenterLateral: 0, Width: 0.6, Height: 0.6, Medium: MediumFluid},
		// Overlapping second inclusion must lose to the first.
		{Shape: ShapeCircle, CenterDepth: 0.5, CenterLateral: 0, Width: 1.0, Height: 1.0, Medium: MediumBone},
	}
	g := samplerTestGeometry()

	got := sampleTissue(scene, &g, 0.5, 0)
	if got.Medium != MediumFluid {
		t.Errorf("point inside both inclusions resolved to %v, want the first declared (%v)", got.Medium, MediumFluid)
	}
	if got.Inclusion == nil || got.Inclusion.Medium != MediumFluid {
		t.Error("inclusion pointer does not reference the first declared inclusion")
	}

	// Inside the larger inclusion only.
	got = sampleTissue(scene, &g, 0.5, 0.45)
	if got.Medium != MediumBone {
		t.Errorf("point inside the outer inclusion resolved to %v, want %v", got.Medium, MediumBone)
	}

	// Outside both: the layer stack wins.
	got = sampleTissue(scene, &g, 0.5, 1.5)
	if got.Medium != MediumFat || got.Inclusion != nil {
		t.Errorf("point outside the inclusions resolved to %v (inclusion %v), want fat layer", got.Medium, got.Inclusion)
	}
}

func TestRectInclusionContainment(t *testing.T) {
	t.Parallel()
	scene := &SceneConfig{
		Layers: []Layer{{MediumMuscle, 8}},
		Inclusions: []Inclusion{
			{Shape: ShapeRect, CenterDepth: 3, CenterLateral: 0, Width: 1, Height: 0.4, Medium: MediumBone},
		},
	}
	g := samplerTestGeometry()
	if got := sampleTissue(scene, &g, 3, 0); got.Medium != MediumBone {
		t.Errorf("rect center resolved to %v, want bone", got.Medium)
	}
	if got := sampleTissue(scene, &g, 3.5, 0); got.Medium != MediumMuscle {
		t.Errorf("below the rect resolved to %v, want muscle", got.Medium)
	}
}

func TestSamplerNeverFails(t *testing.T) {
	t.Parallel()
	g := samplerTestGeometry()
	empty := &SceneConfig{}
	for _, depth := range []float64{-1, 0, 3, 100} {
		got := sampleTissue(empty, &g, depth, 2)
		if got.Medium != MediumSoftTissue {
			t.Errorf("empty scene at depth %v resolved to %v, want the soft-tissue default", depth, got.Medium)
		}
	}
}
