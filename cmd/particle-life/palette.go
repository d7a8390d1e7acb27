package main

import (
	"image/color"
	"math"
)

// palette returns one colour per particle type, evenly spaced in hue
func palette(types int) []color.RGBA {
	cols := make([]color.RGBA, types)
	for t := range cols {
		h := float64(t) / float64(types) * 360
		r, g, b := hsvToRGB(h, 0.85, 1)
		cols[t] = color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
	}
	return cols
}

// hsvToRGB helper
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
