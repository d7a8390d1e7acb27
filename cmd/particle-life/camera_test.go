package main

import (
	"math"
	"testing"

	"github.com/olivierh59500/particle-life-engine/internal/vmath"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestCameraRoundTrip(t *testing.T) {
	c := camera{Center: vmath.Vec2{X: 30, Y: -12}, Zoom: 2.5}
	p := vmath.Vec2{X: -41, Y: 77}
	sx, sy := c.worldToScreen(p, 800, 600)
	back := c.screenToWorld(sx, sy, 800, 600)
	if !near(float64(back.X), float64(p.X)) || !near(float64(back.Y), float64(p.Y)) {
		t.Errorf("round trip gave %v, want %v", back, p)
	}

	cx, cy := c.worldToScreen(c.Center, 800, 600)
	if !near(cx, 400) || !near(cy, 300) {
		t.Errorf("center maps to (%v, %v), want screen middle", cx, cy)
	}
}

func TestCameraZoomKeepsAnchor(t *testing.T) {
	c := camera{Zoom: 1}
	anchor := c.screenToWorld(100, 450, 800, 600)
	c.zoomAt(3, 100, 450, 800, 600)
	after := c.screenToWorld(100, 450, 800, 600)
	if !near(float64(anchor.X), float64(after.X)) || !near(float64(anchor.Y), float64(after.Y)) {
		t.Errorf("anchor moved from %v to %v", anchor, after)
	}

	c.zoomAt(1e-9, 0, 0, 800, 600)
	if c.Zoom != MinZoom {
		t.Errorf("zoom = %v, want clamped to %v", c.Zoom, MinZoom)
	}
}

func TestCameraPan(t *testing.T) {
	c := camera{Zoom: 2}
	c.pan(20, -10)
	if c.Center.X != -10 || c.Center.Y != 5 {
		t.Errorf("center = %v, want (-10, 5)", c.Center)
	}
}

func TestCameraTiles(t *testing.T) {
	// the view lies inside the home tile
	c := camera{Zoom: 1}
	if tiles := c.tiles(1000, 800, 800); len(tiles) != 1 || tiles[0] != (vmath.Vec2{}) {
		t.Errorf("tiles = %v, want home tile only", tiles)
	}

	// zoomed out far enough to see the neighbours on every side
	c.Zoom = 0.5
	if tiles := c.tiles(1000, 800, 800); len(tiles) != 9 {
		t.Errorf("got %d tiles, want 9", len(tiles))
	}
}

func TestPalette(t *testing.T) {
	cols := palette(6)
	seen := make(map[[3]uint8]bool)
	for i, c := range cols {
		if c.A != 255 {
			t.Errorf("colour %d not opaque", i)
		}
		key := [3]uint8{c.R, c.G, c.B}
		if seen[key] {
			t.Errorf("colour %d duplicates an earlier type", i)
		}
		seen[key] = true
	}
}

func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h       float64
		r, g, b float64
	}{
		{0, 1, 0, 0},
		{120, 0, 1, 0},
		{240, 0, 0, 1},
		{360, 1, 0, 0},
		{-120, 0, 0, 1},
	}
	for _, tt := range tests {
		r, g, b := hsvToRGB(tt.h, 1, 1)
		if !near(r, tt.r) || !near(g, tt.g) || !near(b, tt.b) {
			t.Errorf("hsvToRGB(%v) = (%v, %v, %v), want (%v, %v, %v)", tt.h, r, g, b, tt.r, tt.g, tt.b)
		}
	}
}
