package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

var (
	rulerColor = color.RGBA{120, 180, 120, 255}
	focusColor = color.RGBA{255, 200, 60, 255}
	guideColor = color.RGBA{60, 110, 160, 160}
)

// drawOverlays renders the debug aids atop a produced frame: depth ruler,
// focus marker, beam-direction guides, and anatomy labels. All positions go
// through the same geometry mapping as the image itself, so they track probe
// changes without touching the physics.
func drawOverlays(screen *ebiten.Image, geo *scanGeometry, scene *SceneConfig) {
	drawBeamGuides(screen, geo)
	drawDepthRuler(screen, geo)
	drawFocusMarker(screen, geo)
	drawAnatomyLabels(screen, geo, scene)
}

// drawDepthRuler plots centimeter ticks along the right margin, spaced by
// the centerline's depth mapping.
func drawDepthRuler(screen *ebiten.Image, geo *scanGeometry) {
	x := geo.width - 10
	for d := 1.0; d <= geo.maxDepth; d++ {
		_, fy := geo.nativeToPixel(0, d)
		y := clampCoord(int(math.Round(fy)), 0, geo.height-1)
		length := 3
		if int(d)%5 == 0 {
			length = 6
		}
		drawLine(screen, x-length, y, x, y, rulerColor)
	}
}

// drawFocusMarker places a chevron beside the ruler at the focal depth.
func drawFocusMarker(screen *ebiten.Image, geo *scanGeometry) {
	_, fy := geo.nativeToPixel(0, geo.focus)
	y := clampCoord(int(math.Round(fy)), 0, geo.height-1)
	x := geo.width - 14
	drawLine(screen, x-4, y-4, x, y, focusColor)
	drawLine(screen, x-4, y+4, x, y, focusColor)
}

// drawBeamGuides traces the sector edges and the center beam from the
// surface to max depth.
func drawBeamGuides(screen *ebiten.Image, geo *scanGeometry) {
	for _, lat := range [...]float64{-1, 0, 1} {
		x0, y0 := geo.nativeToPixel(lat, 0)
		x1, y1 := geo.nativeToPixel(lat, geo.maxDepth)
		drawLine(screen,
			int(math.Round(x0)), int(math.Round(y0)),
			int(math.Round(x1)), int(math.Round(y1)), guideColor)
	}
}

// drawAnatomyLabels prints each inclusion's medium name at its center.
func drawAnatomyLabels(screen *ebiten.Image, geo *scanGeometry, scene *SceneConfig) {
	if scene == nil {
		return
	}
	for i := range scene.Inclusions {
		inc := &scene.Inclusions[i]
		fx, fy := geo.nativeToPixel(inc.CenterLateral, inc.CenterDepth)
		x := clampCoord(int(math.Round(fx)), 0, geo.width-1)
		y := clampCoord(int(math.Round(fy)), 0, geo.height-1)
		ebitenutil.DebugPrintAt(screen, lookupMedium(inc.Medium).Name, x+4, y-4)
	}
}

// drawLine plots a line segment using Bresenham's integer algorithm.
func drawLine(screen *ebiten.Image, x0, y0, x1, y1 int, clr color.Color) {
	b := screen.Bounds()
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if x0 >= b.Min.X && x0 < b.Max.X && y0 >= b.Min.Y && y0 < b.Max.Y {
			screen.Set(x0, y0, clr)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}
