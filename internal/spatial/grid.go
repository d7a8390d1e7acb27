// Package spatial provides the uniform bucket grid used for neighbour queries.
//
// The grid stores particle indices, never particles. It is rebuilt from scratch
// every tick: Rebuild counts particles per occupied bucket, lays the buckets out
// back to back in one flat index slice and scatters the indices into place. Only
// occupied buckets exist, so the plane is unbounded and bucket coordinates are
// signed.
package spatial

import (
	"iter"

	"github.com/olivierh59500/particle-life-engine/internal/vmath"
)

// Cell is a signed bucket coordinate
type Cell struct {
	X, Y int32
}

// span is a bucket's range inside order
type span struct {
	start, end int32
}

// Grid maps bucket coordinates to the indices whose position falls in them
type Grid struct {
	cellSize float32
	invCell  float32

	// toroidal mode, zero wrap means the plane is unbounded
	wrap      int32
	origin    vmath.Vec2
	worldSize float32

	slots map[Cell]int32 // cell -> index into spans/cells
	cells []Cell         // occupied cells in first-seen order
	spans []span
	order []int32 // indices grouped by bucket
	slot  []int32 // per index scratch: bucket slot
}

// New returns an empty, unbounded grid
func New() *Grid {
	return &Grid{
		slots: make(map[Cell]int32),
	}
}

// Wrap switches the grid to a toroidal square world of the given size whose
// lowest corner is origin. Each axis is split into floor(size/cellSize) equal
// buckets, so a bucket is never narrower than the requested cell size.
func (g *Grid) Wrap(origin vmath.Vec2, size float32) {
	g.origin = origin
	g.worldSize = size
}

// Unbounded switches the grid back to the infinite plane
func (g *Grid) Unbounded() {
	g.wrap = 0
	g.origin = vmath.Vec2{}
	g.worldSize = 0
}

// Rebuild discards all previous contents and inserts indices 0..count-1 at
// the positions reported by position. cellSize must be positive.
func (g *Grid) Rebuild(cellSize float32, count int, position func(i int) vmath.Vec2) {
	if g.worldSize > 0 {
		g.wrap = max(int32(vmath.Floor(g.worldSize/cellSize)), 1)
		cellSize = g.worldSize / float32(g.wrap)
	}
	g.cellSize = cellSize
	g.invCell = 1 / cellSize

	clear(g.slots)
	g.cells = g.cells[:0]
	g.spans = g.spans[:0]
	g.order = resize(g.order, count)
	g.slot = resize(g.slot, count)

	// count per bucket, end doubles as the counter
	for i := 0; i < count; i++ {
		c := g.CellOf(position(i))
		s, ok := g.slots[c]
		if !ok {
			s = int32(len(g.cells))
			g.slots[c] = s
			g.cells = append(g.cells, c)
			g.spans = append(g.spans, span{})
		}
		g.spans[s].end++
		g.slot[i] = s
	}

	// prefix sum, end becomes the write cursor
	var off int32
	for s := range g.spans {
		n := g.spans[s].end
		g.spans[s] = span{start: off, end: off}
		off += n
	}

	for i := 0; i < count; i++ {
		sp := &g.spans[g.slot[i]]
		g.order[sp.end] = int32(i)
		sp.end++
	}
}

// CellOf returns the bucket containing pos
func (g *Grid) CellOf(pos vmath.Vec2) Cell {
	if g.wrap > 0 {
		p := pos.Sub(g.origin)
		return Cell{
			X: wrapInt(int32(vmath.Floor(p.X*g.invCell)), g.wrap),
			Y: wrapInt(int32(vmath.Floor(p.Y*g.invCell)), g.wrap),
		}
	}
	return Cell{
		X: int32(vmath.Floor(pos.X * g.invCell)),
		Y: int32(vmath.Floor(pos.Y * g.invCell)),
	}
}

// Bucket returns the indices in c. The slice aliases grid storage and is only
// valid until the next Rebuild.
func (g *Grid) Bucket(c Cell) []int32 {
	s, ok := g.slots[c]
	if !ok {
		return nil
	}
	sp := g.spans[s]
	return g.order[sp.start:sp.end]
}

// Block writes the distinct buckets of the 3x3 block centred on c into dst
// and returns how many were written. In a wrapped world narrower than three
// buckets some offsets land on the same bucket; those are written once.
func (g *Grid) Block(c Cell, dst *[9]Cell) int {
	n := 0
	for dy := int32(-1); dy <= 1; dy++ {
		for dx := int32(-1); dx <= 1; dx++ {
			nc := Cell{c.X + dx, c.Y + dy}
			if g.wrap > 0 {
				nc.X = wrapInt(nc.X, g.wrap)
				nc.Y = wrapInt(nc.Y, g.wrap)
				if g.wrap < 3 && contains(dst[:n], nc) {
					continue
				}
			}
			dst[n] = nc
			n++
		}
	}
	return n
}

// Neighbors yields every index in the 3x3 block of buckets around pos. This is a
// superset of the indices within one cell size of pos, and includes the
// querying index itself if it was inserted at pos.
func (g *Grid) Neighbors(pos vmath.Vec2) iter.Seq[int] {
	return func(yield func(int) bool) {
		var block [9]Cell
		n := g.Block(g.CellOf(pos), &block)
		for _, c := range block[:n] {
			for _, j := range g.Bucket(c) {
				if !yield(int(j)) {
					return
				}
			}
		}
	}
}

// Cells yields the occupied buckets in insertion order
func (g *Grid) Cells() iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for _, c := range g.cells {
			if !yield(c) {
				return
			}
		}
	}
}

// Order returns all indices grouped by bucket, valid until the next Rebuild
func (g *Grid) Order() []int32 {
	return g.order
}

// Len is the number of inserted indices
func (g *Grid) Len() int {
	return len(g.order)
}

// CellCount is the number of occupied buckets
func (g *Grid) CellCount() int {
	return len(g.cells)
}

// CellSize is the bucket edge length used by the last Rebuild. In a wrapped
// world it can exceed the requested size.
func (g *Grid) CellSize() float32 {
	return g.cellSize
}

func wrapInt(x, m int32) int32 {
	x %= m
	if x < 0 {
		x += m
	}
	return x
}

func contains(cells []Cell, c Cell) bool {
	for _, x := range cells {
		if x == c {
			return true
		}
	}
	return false
}

func resize(s []int32, n int) []int32 {
	if cap(s) < n {
		return make([]int32, n)
	}
	return s[:n]
}
