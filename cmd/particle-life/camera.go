package main

import (
	"math"

	"github.com/olivierh59500/particle-life-engine/internal/vmath"
)

const (
	MinZoom  = 0.05 // Limit zoom out to prevent excessive tiling
	MaxZoom  = 20.0
	zoomStep = 1.1
)

// camera maps world coordinates to screen pixels. Center is the world point
// shown in the middle of the screen.
type camera struct {
	Center vmath.Vec2
	Zoom   float64
}

// fit returns a camera showing a square of the given side on a w×h screen
func fit(side float32, w, h int) camera {
	zoom := 1.0
	if side > 0 {
		zoom = float64(min(w, h)) / float64(side)
	}
	return camera{Zoom: clampZoom(zoom)}
}

func (c camera) worldToScreen(p vmath.Vec2, w, h int) (float64, float64) {
	sx := (float64(p.X)-float64(c.Center.X))*c.Zoom + float64(w)/2
	sy := (float64(p.Y)-float64(c.Center.Y))*c.Zoom + float64(h)/2
	return sx, sy
}

func (c camera) screenToWorld(sx, sy float64, w, h int) vmath.Vec2 {
	return vmath.Vec2{
		X: float32((sx-float64(w)/2)/c.Zoom) + c.Center.X,
		Y: float32((sy-float64(h)/2)/c.Zoom) + c.Center.Y,
	}
}

// pan moves the view by a screen-space drag
func (c *camera) pan(dx, dy float64) {
	c.Center.X -= float32(dx / c.Zoom)
	c.Center.Y -= float32(dy / c.Zoom)
}

// zoomAt scales by factor keeping the world point under (sx, sy) fixed
func (c *camera) zoomAt(factor, sx, sy float64, w, h int) {
	anchor := c.screenToWorld(sx, sy, w, h)
	c.Zoom = clampZoom(c.Zoom * factor)
	after := c.screenToWorld(sx, sy, w, h)
	c.Center = c.Center.Add(anchor.Sub(after))
}

// visible returns the world rectangle on screen
func (c camera) visible(w, h int) (lo, hi vmath.Vec2) {
	return c.screenToWorld(0, 0, w, h), c.screenToWorld(float64(w), float64(h), w, h)
}

// tiles lists the periodic copies of a wrapped world of the given side that
// intersect the screen, as offsets to add to every position
func (c camera) tiles(side float32, w, h int) []vmath.Vec2 {
	lo, hi := c.visible(w, h)
	half := side / 2
	fromX := int(math.Floor(float64((lo.X + half) / side)))
	toX := int(math.Ceil(float64((hi.X+half)/side))) - 1
	fromY := int(math.Floor(float64((lo.Y + half) / side)))
	toY := int(math.Ceil(float64((hi.Y+half)/side))) - 1

	var out []vmath.Vec2
	for ty := fromY; ty <= toY; ty++ {
		for tx := fromX; tx <= toX; tx++ {
			out = append(out, vmath.Vec2{X: float32(tx) * side, Y: float32(ty) * side})
		}
	}
	return out
}

func clampZoom(z float64) float64 {
	return min(max(z, MinZoom), MaxZoom)
}
