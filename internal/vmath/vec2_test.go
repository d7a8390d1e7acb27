package vmath

import (
	"math"
	"testing"
)

func TestWrapDelta(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		size float32
		want Vec2
	}{
		{"inside", Vec2{10, -10}, 100, Vec2{10, -10}},
		{"wrap positive", Vec2{90, 0}, 100, Vec2{-10, 0}},
		{"wrap negative", Vec2{0, -95}, 100, Vec2{0, 5}},
		{"half boundary", Vec2{50, -50}, 100, Vec2{-50, -50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WrapDelta(tt.in, tt.size); got != tt.want {
				t.Errorf("WrapDelta(%v, %v) = %v, want %v", tt.in, tt.size, got, tt.want)
			}
		})
	}
}

func TestMod(t *testing.T) {
	tests := []struct {
		x, m, want float32
	}{
		{5, 10, 5},
		{15, 10, 5},
		{-3, 10, 7},
		{-10, 10, 0},
		{0, 10, 0},
	}
	for _, tt := range tests {
		if got := Mod(tt.x, tt.m); got != tt.want {
			t.Errorf("Mod(%v, %v) = %v, want %v", tt.x, tt.m, got, tt.want)
		}
	}

	// tiny negatives must not round up to m
	if got := Mod(-1e-9, 10); got < 0 || got >= 10 {
		t.Errorf("Mod(-1e-9, 10) = %v, want value in [0, 10)", got)
	}
}

func TestVec2Basics(t *testing.T) {
	a := Vec2{3, 4}
	if a.LenSq() != 25 {
		t.Errorf("LenSq = %v, want 25", a.LenSq())
	}
	if a.Len() != 5 {
		t.Errorf("Len = %v, want 5", a.Len())
	}
	if got := a.Add(Vec2{1, 1}).Sub(Vec2{2, 2}).Scale(2); got != (Vec2{4, 6}) {
		t.Errorf("Add/Sub/Scale = %v, want {4 6}", got)
	}
	if !a.IsFinite() {
		t.Error("expected finite vector")
	}
	if (Vec2{float32(math.Inf(1)), 0}).IsFinite() {
		t.Error("expected infinite vector to be reported")
	}
	if (Vec2{0, float32(math.NaN())}).IsFinite() {
		t.Error("expected NaN vector to be reported")
	}
}

func TestWrapDeltaMultipleSpans(t *testing.T) {
	got := WrapDelta(Vec2{X: 310, Y: -420}, 100)
	if got != (Vec2{X: 10, Y: -20}) {
		t.Errorf("WrapDelta = %v, want {10 -20}", got)
	}
}
