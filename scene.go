package main

import "math/rand"

// Layer is one slab of the ordered tissue stack. Cumulative thickness from
// the surface gives each layer the half-open depth interval [sum, sum+t).
type Layer struct {
	Medium    MediumID
	Thickness float64 // cm
}

// InclusionShape selects the containment test used for an inclusion.
type InclusionShape int

const (
	ShapeCircle InclusionShape = iota
	ShapeEllipse
	ShapeRect
)

// Inclusion is an embedded structure (cyst, vessel, bone surface, nodule)
// overriding the layer stack where it applies. Inclusions are tested in
// declaration order and the first match wins.
type Inclusion struct {
	Shape         InclusionShape
	CenterDepth   float64 // cm
	CenterLateral float64 // normalized [-1,1] across the field
	Width         float64 // cm
	Height        float64 // cm
	Medium        MediumID
	StrongShadow  bool
	PostEnhance   bool
	BorderSharp   float64 // 0..1, soft to crisp rim

	// Nonzero peak velocity (cm/s) marks the inclusion as a vessel and
	// enables flow speckle plus the Doppler overlay.
	FlowVelocity float64
	FlowPhase    float64
}

// SceneConfig is the declarative anatomical model consumed by the renderer.
type SceneConfig struct {
	Name       string
	Layers     []Layer
	Inclusions []Inclusion
}

// abdominalScene is the default layered phantom with a fluid cyst and a
// shadowing bone surface.
func abdominalScene() *SceneConfig {
	return &SceneConfig{
		Name: "abdominal",
		Layers: []Layer{
			{MediumSkin, 0.2},
			{MediumFat, 0.8},
			{MediumMuscle, 1.5},
			{MediumLiver, 6.0},
		},
		Inclusions: []Inclusion{
			{Shape: ShapeCircle, CenterDepth: 4.0, CenterLateral: -0.25, Width: 1.6, Height: 1.6,
				Medium: MediumFluid, PostEnhance: true, BorderSharp: 0.8},
			{Shape: ShapeEllipse, CenterDepth: 6.5, CenterLateral: 0.35, Width: 2.2, Height: 0.7,
				Medium: MediumBone, StrongShadow: true, BorderSharp: 1.0},
		},
	}
}

// cysticScene exercises posterior enhancement with stacked fluid cysts.
func cysticScene() *SceneConfig {
	return &SceneConfig{
		Name: "cystic",
		Layers: []Layer{
			{MediumSkin, 0.2},
			{MediumFat, 0.5},
			{MediumThyroid, 3.0},
		},
		Inclusions: []Inclusion{
			{Shape: ShapeCircle, CenterDepth: 1.5, CenterLateral: 0, Width: 1.2, Height: 1.2,
				Medium: MediumFluid, PostEnhance: true, BorderSharp: 0.9},
			{Shape: ShapeEllipse, CenterDepth: 3.0, CenterLateral: 0.45, Width: 1.0, Height: 0.6,
				Medium: MediumFluid, PostEnhance: true, BorderSharp: 0.6},
		},
	}
}

// bonyScene is a rib phantom: periosteal lines with hard posterior shadows.
func bonyScene() *SceneConfig {
	return &SceneConfig{
		Name: "bony",
		Layers: []Layer{
			{MediumSkin, 0.2},
			{MediumFat, 0.6},
			{MediumMuscle, 7.0},
		},
		Inclusions: []Inclusion{
			{Shape: ShapeEllipse, CenterDepth: 2.5, CenterLateral: -0.5, Width: 1.8, Height: 0.5,
				Medium: MediumBone, StrongShadow: true, BorderSharp: 1.0},
			{Shape: ShapeEllipse, CenterDepth: 2.5, CenterLateral: 0.1, Width: 1.8, Height: 0.5,
				Medium: MediumBone, StrongShadow: true, BorderSharp: 1.0},
			{Shape: ShapeEllipse, CenterDepth: 2.5, CenterLateral: 0.7, Width: 1.8, Height: 0.5,
				Medium: MediumBone, StrongShadow: true, BorderSharp: 1.0},
		},
	}
}

// vascularScene carries pulsatile vessels for the Doppler overlay.
func vascularScene() *SceneConfig {
	return &SceneConfig{
		Name: "vascular",
		Layers: []Layer{
			{MediumSkin, 0.2},
			{MediumFat, 0.5},
			{MediumMuscle, 5.0},
		},
		Inclusions: []Inclusion{
			{Shape: ShapeCircle, CenterDepth: 2.0, CenterLateral: -0.2, Width: 0.9, Height: 0.9,
				Medium: MediumBlood, PostEnhance: true, BorderSharp: 0.9, FlowVelocity: 40},
			{Shape: ShapeCircle, CenterDepth: 3.2, CenterLateral: 0.3, Width: 0.6, Height: 0.6,
				Medium: MediumBlood, BorderSharp: 0.9, FlowVelocity: -25, FlowPhase: 1.1},
		},
	}
}

// noduleScene procedurally scatters solid nodules through a gland layer,
// seeded so repeated runs differ.
func noduleScene(rng *rand.Rand) *SceneConfig {
	s := &SceneConfig{
		Name: "nodules",
		Layers: []Layer{
			{MediumSkin, 0.2},
			{MediumFat, 0.4},
			{MediumThyroid, 4.0},
		},
	}
	n := 3 + rng.Intn(4)
	for i := 0; i < n; i++ {
		size := 0.4 + rng.Float64()*0.9
		med := MediumKidney
		if rng.Intn(3) == 0 {
			med = MediumFluid
		}
		s.Inclusions = append(s.Inclusions, Inclusion{
			Shape:         ShapeEllipse,
			CenterDepth:   1.0 + rng.Float64()*3.0,
			CenterLateral: rng.Float64()*1.6 - 0.8,
			Width:         size,
			Height:        size * (0.6 + rng.Float64()*0.4),
			Medium:        med,
			PostEnhance:   med == MediumFluid,
			BorderSharp:   0.4 + rng.Float64()*0.5,
		})
	}
	return s
}

// scenePresets maps preset names to constructors. The nodule preset consumes
// the supplied source; the fixed presets ignore it.
var scenePresets = map[string]func(*rand.Rand) *SceneConfig{
	"abdominal": func(*rand.Rand) *SceneConfig { return abdominalScene() },
	"cystic":    func(*rand.Rand) *SceneConfig { return cysticScene() },
	"bony":      func(*rand.Rand) *SceneConfig { return bonyScene() },
	"vascular":  func(*rand.Rand) *SceneConfig { return vascularScene() },
	"nodules":   noduleScene,
}

// presetOrder fixes the cycling order used by the interactive host.
var presetOrder = []string{"abdominal", "cystic", "bony", "vascular", "nodules"}
