package spatial

import (
	"math/rand"
	"testing"

	"github.com/olivierh59500/particle-life-engine/internal/vmath"
)

func randomPositions(rng *rand.Rand, n int, lo, hi float32) []vmath.Vec2 {
	pos := make([]vmath.Vec2, n)
	for i := range pos {
		pos[i] = vmath.Vec2{
			X: lo + rng.Float32()*(hi-lo),
			Y: lo + rng.Float32()*(hi-lo),
		}
	}
	return pos
}

func rebuild(g *Grid, cell float32, pos []vmath.Vec2) {
	g.Rebuild(cell, len(pos), func(i int) vmath.Vec2 { return pos[i] })
}

func TestGridCellOf(t *testing.T) {
	g := New()
	rebuild(g, 10, nil)

	tests := []struct {
		pos  vmath.Vec2
		want Cell
	}{
		{vmath.Vec2{X: 0, Y: 0}, Cell{0, 0}},
		{vmath.Vec2{X: 9.99, Y: 10}, Cell{0, 1}},
		{vmath.Vec2{X: -0.01, Y: -10}, Cell{-1, -1}},
		{vmath.Vec2{X: -10.01, Y: 25}, Cell{-2, 2}},
		{vmath.Vec2{X: 1e6, Y: -1e6}, Cell{100000, -100000}},
	}
	for _, tt := range tests {
		if got := g.CellOf(tt.pos); got != tt.want {
			t.Errorf("CellOf(%v) = %v, want %v", tt.pos, got, tt.want)
		}
	}
}

func TestGridCompleteness(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 1, 7, 500, 3000} {
		pos := randomPositions(rng, n, -400, 400)
		g := New()
		rebuild(g, 25, pos)

		if g.Len() != n {
			t.Fatalf("n=%d: Len = %d", n, g.Len())
		}

		seen := make([]int, n)
		for c := range g.Cells() {
			for _, i := range g.Bucket(c) {
				seen[i]++
				if g.CellOf(pos[i]) != c {
					t.Errorf("n=%d: index %d stored in %v, belongs to %v", n, i, c, g.CellOf(pos[i]))
				}
			}
		}
		for i, k := range seen {
			if k != 1 {
				t.Errorf("n=%d: index %d appears %d times, want exactly once", n, i, k)
			}
		}
	}
}

func TestGridRebuildDropsStaleEntries(t *testing.T) {
	g := New()
	first := []vmath.Vec2{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 500, Y: 500}}
	rebuild(g, 10, first)
	if len(g.Bucket(Cell{50, 50})) != 1 {
		t.Fatal("expected one index in far bucket")
	}

	second := []vmath.Vec2{{X: 1, Y: 1}}
	rebuild(g, 10, second)
	if got := g.Bucket(Cell{50, 50}); len(got) != 0 {
		t.Errorf("expected far bucket to be gone after rebuild, got %v", got)
	}
	if g.CellCount() != 1 || g.Len() != 1 {
		t.Errorf("CellCount=%d Len=%d, want 1/1", g.CellCount(), g.Len())
	}
}

func TestGridNeighborsSuperset(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	const cell = 30
	pos := randomPositions(rng, 1500, -300, 300)
	g := New()
	rebuild(g, cell, pos)

	for i, p := range pos {
		candidates := make(map[int]bool)
		for j := range g.Neighbors(p) {
			candidates[j] = true
		}
		if !candidates[i] {
			t.Fatalf("index %d missing from its own neighbourhood", i)
		}
		for j, q := range pos {
			if q.Sub(p).LenSq() < cell*cell && !candidates[j] {
				t.Fatalf("index %d within cutoff of %d but not a candidate", j, i)
			}
		}
	}
}

func TestGridNeighborsEmptyBuckets(t *testing.T) {
	g := New()
	pos := []vmath.Vec2{{X: 5, Y: 5}}
	rebuild(g, 10, pos)

	count := 0
	for range g.Neighbors(vmath.Vec2{X: 500, Y: 500}) {
		count++
	}
	if count != 0 {
		t.Errorf("expected no candidates far away, got %d", count)
	}

	var got []int
	for j := range g.Neighbors(pos[0]) {
		got = append(got, j)
	}
	if len(got) != 1 || got[0] != 0 {
		t.Errorf("expected only self as candidate, got %v", got)
	}
}

func TestGridNeighborsEarlyBreak(t *testing.T) {
	g := New()
	pos := make([]vmath.Vec2, 50)
	rebuild(g, 10, pos)

	count := 0
	for range g.Neighbors(vmath.Vec2{}) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Errorf("expected iteration to stop at 3, got %d", count)
	}
}

func TestGridWrapSuperset(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const size = 130
	const cell = 40 // does not divide size
	origin := vmath.Vec2{X: -size / 2, Y: -size / 2}
	pos := randomPositions(rng, 400, -size/2, size/2)

	g := New()
	g.Wrap(origin, size)
	rebuild(g, cell, pos)

	if g.CellSize() < cell {
		t.Fatalf("wrapped cell size %v below requested %v", g.CellSize(), cell)
	}

	for i, p := range pos {
		candidates := make(map[int]bool)
		for j := range g.Neighbors(p) {
			candidates[j] = true
		}
		for j, q := range pos {
			d := vmath.WrapDelta(q.Sub(p), size)
			if d.LenSq() < cell*cell && !candidates[j] {
				t.Fatalf("index %d within wrapped cutoff of %d but not a candidate", j, i)
			}
		}
	}
}

func TestGridWrapNarrowWorldNoDuplicates(t *testing.T) {
	g := New()
	g.Wrap(vmath.Vec2{}, 50)
	pos := []vmath.Vec2{{X: 1, Y: 1}, {X: 30, Y: 40}, {X: 49, Y: 2}}
	rebuild(g, 20, pos) // two buckets per axis

	seen := make(map[int]int)
	for j := range g.Neighbors(pos[0]) {
		seen[j]++
	}
	for j := range pos {
		if seen[j] != 1 {
			t.Errorf("index %d yielded %d times, want once", j, seen[j])
		}
	}
}

func TestGridUnboundedAfterWrap(t *testing.T) {
	g := New()
	g.Wrap(vmath.Vec2{}, 100)
	g.Unbounded()
	rebuild(g, 10, []vmath.Vec2{{X: 150, Y: -5}})
	if got := g.CellOf(vmath.Vec2{X: 150, Y: -5}); got != (Cell{15, -1}) {
		t.Errorf("CellOf after Unbounded = %v, want {15 -1}", got)
	}
}

func BenchmarkRebuild(b *testing.B) {
	rng := rand.New(rand.NewSource(4))
	pos := randomPositions(rng, 20000, -2000, 2000)
	g := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rebuild(g, 50, pos)
	}
}
