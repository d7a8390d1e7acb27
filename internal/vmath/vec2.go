// Package vmath holds the small float32 vector type shared by the grid and the engine.
package vmath

import "math"

// Vec2 is a 2D vector in world units
type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// LenSq returns the squared length, avoiding the square root
func (v Vec2) LenSq() float32 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Len() float32 {
	return Sqrt(v.LenSq())
}

// IsFinite reports whether neither component is NaN or infinite
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// Sqrt is math.Sqrt for float32
func Sqrt(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

// Floor is math.Floor for float32
func Floor(x float32) float32 {
	return float32(math.Floor(float64(x)))
}

// WrapDelta folds d into [-size/2, size/2) so it is the shortest
// displacement on a torus of the given size, however many times d spans it
func WrapDelta(d Vec2, size float32) Vec2 {
	d.X -= size * Floor(d.X/size+0.5)
	d.Y -= size * Floor(d.Y/size+0.5)
	return d
}

// Mod is the euclidean remainder, always in [0, m)
func Mod(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	// float32 rounding can land exactly on m for tiny negative x
	if r >= m {
		r = 0
	}
	return r
}

func isFinite(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}
