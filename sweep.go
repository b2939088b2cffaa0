package main

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Parameter step sizes and bounds for the interactive controls.
const (
	gainStep  = 2.0
	focusStep = 0.5
	depthStep = 1.0
	freqStep  = 0.5
	minDepth  = 2.0
	maxDepth  = 24.0
	minFreq   = 1.0
	maxFreq   = 15.0
)

// handleControls applies keyboard input to the probe and physics
// configuration between frames.
func (g *Game) handleControls() {
	if ebiten.IsKeyPressed(ebiten.KeyUp) {
		g.phys.Gain = clampF(g.phys.Gain+gainStep*0.25, 0, 100)
	}
	if ebiten.IsKeyPressed(ebiten.KeyDown) {
		g.phys.Gain = clampF(g.phys.Gain-gainStep*0.25, 0, 100)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.probe.FocusDepth = clampF(g.probe.FocusDepth+focusStep, 0.5, g.probe.MaxDepth)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.probe.FocusDepth = clampF(g.probe.FocusDepth-focusStep, 0.5, g.probe.MaxDepth)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.probe.MaxDepth = clampF(g.probe.MaxDepth+depthStep, minDepth, maxDepth)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.probe.MaxDepth = clampF(g.probe.MaxDepth-depthStep, minDepth, maxDepth)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.phys.Frequency = clampF(g.phys.Frequency+freqStep, minFreq, maxFreq)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.phys.Frequency = clampF(g.phys.Frequency-freqStep, minFreq, maxFreq)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		next := defaultTransducer((g.probe.Family + 1) % 3)
		next.FocusDepth = clampF(g.probe.FocusDepth, 0.5, next.MaxDepth)
		g.probe = next
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.presetIdx = (g.presetIdx + 1) % len(presetOrder)
		g.renderer.SetScene(scenePresets[presetOrder[g.presetIdx]](g.sceneRand))
	}

	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		g.phys.EnableSpeckle = !g.phys.EnableSpeckle
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		g.phys.EnableShadow = !g.phys.EnableShadow
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		g.phys.EnableEnhance = !g.phys.EnableEnhance
	}
	if inpututil.IsKeyJustPressed(ebiten.Key4) {
		g.phys.EnableMotion = !g.phys.EnableMotion
	}
	if inpututil.IsKeyJustPressed(ebiten.Key5) {
		g.phys.EnableLiveNoise = !g.phys.EnableLiveNoise
	}
	if inpututil.IsKeyJustPressed(ebiten.Key6) {
		g.phys.EnableDoppler = !g.phys.EnableDoppler
	}
	if inpututil.IsKeyJustPressed(ebiten.Key7) {
		g.phys.EnableTGC = !g.phys.EnableTGC
	}
	if inpututil.IsKeyJustPressed(ebiten.Key8) {
		g.phys.EnableFocalGain = !g.phys.EnableFocalGain
	}
}

// paramSweep drives a scripted random walk over gain, focus, and depth,
// used while capturing a PGO profile so the recorded workload resembles
// interactive use.
type paramSweep struct {
	rng        *rand.Rand
	deadline   time.Time
	framesLeft int
	dGain      float64
	dFocus     float64
	dDepth     float64
}

// enableSweep schedules scripted parameter movement for a limited duration.
func (g *Game) enableSweep(duration time.Duration) {
	g.sweep = &paramSweep{
		rng:      rand.New(rand.NewSource(time.Now().UnixNano() + 3)),
		deadline: time.Now().Add(duration),
	}
}

// sweepStep advances the scripted walk one frame; it reports false once the
// deadline has passed.
func (g *Game) sweepStep() bool {
	s := g.sweep
	if time.Now().After(s.deadline) {
		return false
	}
	if s.framesLeft <= 0 {
		s.framesLeft = 20 + s.rng.Intn(50)
		s.dGain = (s.rng.Float64()*2 - 1) * gainStep * 0.2
		s.dFocus = (s.rng.Float64()*2 - 1) * focusStep * 0.1
		s.dDepth = (s.rng.Float64()*2 - 1) * depthStep * 0.05
	}
	s.framesLeft--
	g.phys.Gain = clampF(g.phys.Gain+s.dGain, 20, 80)
	g.probe.FocusDepth = clampF(g.probe.FocusDepth+s.dFocus, 0.5, g.probe.MaxDepth)
	g.probe.MaxDepth = clampF(g.probe.MaxDepth+s.dDepth, minDepth, maxDepth)
	return true
}

func clampF(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
