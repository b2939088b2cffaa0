package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Game hosts the renderer in an ebiten loop: it owns the frame buffer,
// applies control input to the configuration, and schedules one RenderFrame
// per tick.
type Game struct {
	renderer *Renderer
	pixels   []byte

	probe TransducerGeometry
	phys  PhysicsConfig

	presetIdx int
	sceneRand *rand.Rand

	lastFrame      time.Time
	lastRenderTime time.Duration

	sweep       *paramSweep
	stopProfile func()
	deviceName  string
}

// newGame builds the host from the parsed flags.
func newGame(seed int64) (*Game, error) {
	var family TransducerFamily
	switch *familyFlag {
	case "linear":
		family = FamilyLinear
	case "convex":
		family = FamilyConvex
	case "microconvex":
		family = FamilyMicroconvex
	default:
		return nil, fmt.Errorf("unknown transducer family %q", *familyFlag)
	}
	probe := defaultTransducer(family)
	if *depthFlag > 0 {
		probe.MaxDepth = *depthFlag
	}
	if *focusFlag > 0 {
		probe.FocusDepth = *focusFlag
	}
	phys := defaultPhysicsConfig()
	phys.Frequency = *freqFlag
	phys.Gain = *gainFlag
	phys.DynamicRange = *dynRangeFlag
	phys.EnableSpeckle = *speckleFlag
	phys.EnableShadow = *shadowFlag
	phys.EnableEnhance = *enhanceFlag
	phys.EnableMotion = *motionFlag
	phys.EnableLiveNoise = *liveNoiseFlag
	phys.EnableDoppler = *dopplerFlag

	makeScene, ok := scenePresets[*presetFlag]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", *presetFlag)
	}
	sceneRand := rand.New(rand.NewSource(seed + 7))

	g := &Game{
		renderer:  NewRenderer(rasterW, rasterH, seed),
		pixels:    make([]byte, rasterW*rasterH*4),
		probe:     probe,
		phys:      phys,
		sceneRand: sceneRand,
	}
	for i, name := range presetOrder {
		if name == *presetFlag {
			g.presetIdx = i
		}
	}
	g.renderer.SetScene(makeScene(sceneRand))
	g.renderer.UpdateConfig(probe, phys)
	return g, nil
}

// Update applies input, pushes the current configuration into the renderer,
// and produces the next frame.
func (g *Game) Update() error {
	if g.sweep != nil {
		if !g.sweepStep() {
			g.sweep = nil
			if g.stopProfile != nil {
				g.stopProfile()
				g.stopProfile = nil
				log.Printf("wrote default.pgo")
			}
		}
	} else {
		g.handleControls()
	}
	g.renderer.UpdateConfig(g.probe, g.phys)

	now := time.Now()
	dt := 1.0 / defaultTPS
	if !g.lastFrame.IsZero() {
		if elapsed := now.Sub(g.lastFrame).Seconds(); elapsed > 0 {
			dt = elapsed
		}
	}
	g.lastFrame = now

	start := time.Now()
	if err := g.renderer.RenderFrame(g.pixels, dt); err != nil {
		return err
	}
	g.lastRenderTime = time.Since(start)
	return nil
}

// Draw uploads the produced frame and composites the optional overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.pixels)
	if *overlaysFlag {
		drawOverlays(screen, &g.renderer.geo, g.renderer.scene)
	}
	if *debugFlag {
		path := "scalar"
		if g.deviceName != "" {
			path = "opencl: " + g.deviceName
		}
		msg := fmt.Sprintf("FPS: %.1f\nRender: %.2f ms (%s)\n%s %0.1f MHz  gain %.0f  depth %.0f cm  focus %.1f cm",
			ebiten.ActualFPS(),
			g.lastRenderTime.Seconds()*1000, path,
			g.probe.Family, g.phys.Frequency, g.phys.Gain, g.probe.MaxDepth, g.probe.FocusDepth)
		ebitenutil.DebugPrint(screen, msg)
	}
}

// Layout reports the logical raster size used by ebiten.
func (g *Game) Layout(_, _ int) (int, int) { return rasterW, rasterH }
