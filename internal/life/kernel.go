package life

import (
	"math"

	"github.com/olivierh59500/particle-life-engine/internal/spatial"
	"github.com/olivierh59500/particle-life-engine/internal/vmath"
)

// repulsionCap bounds overlap repulsion: below RMin/repulsionCap the force
// stops growing, which also sets the push used for coincident pairs
const repulsionCap = 4

// minDist2 is the squared distance below which a pair counts as coincident.
// Closer pairs have no usable direction and would overflow the force terms.
const minDist2 = 1e-12

// kernel computes one generation from the previous one. Everything it reads
// is frozen for the duration of the tick; it writes dst[i] only for the i it
// is asked to advance.
type kernel struct {
	src    []Particle
	dst    []Particle
	grid   *spatial.Grid
	matrix *Matrix

	rMin2    float32
	rMax2    float32
	floor2   float32 // squared distance below which repulsion stops growing
	invRMax  float32
	repel    float32 // Repulsion * RMin²
	force    float32
	falloff  Falloff
	dt       float32
	damp     float32
	boundary Boundary
	origin   vmath.Vec2
	size     float32
	bounceK  float32
	bounceC  float32
}

func newKernel(w *World, g *spatial.Grid) *kernel {
	p := w.params
	rMin2 := p.RMin * p.RMin
	return &kernel{
		src:      w.store.read,
		dst:      w.store.write,
		grid:     g,
		matrix:   w.matrix,
		rMin2:    rMin2,
		rMax2:    p.RMax * p.RMax,
		floor2:   rMin2 / (repulsionCap * repulsionCap),
		invRMax:  1 / p.RMax,
		repel:    p.Repulsion * rMin2,
		force:    p.ForceScale,
		falloff:  p.Falloff,
		dt:       p.DT,
		damp:     1 - p.Drag,
		boundary: p.Boundary,
		origin:   w.origin(),
		size:     p.WorldSpread,
		bounceK:  p.BounceMultiplier,
		bounceC:  p.BouncePushback,
	}
}

// acceleration sums every neighbour's contribution to particle i
func (k *kernel) acceleration(i int) vmath.Vec2 {
	p := k.src[i]
	wrap := k.boundary == BoundaryWrap

	var acc vmath.Vec2
	var block [9]spatial.Cell
	n := k.grid.Block(k.grid.CellOf(p.Pos), &block)
	for _, c := range block[:n] {
		for _, j32 := range k.grid.Bucket(c) {
			j := int(j32)
			if j == i {
				continue
			}
			q := k.src[j]

			d := q.Pos.Sub(p.Pos)
			if wrap {
				d = vmath.WrapDelta(d, k.size)
			}
			d2 := d.LenSq()

			switch {
			case d2 < minDist2:
				// coincident: push apart along x at full strength, lower index to the left
				if k.floor2 > 0 {
					push := k.repel / k.floor2
					if i < j {
						push = -push
					}
					acc.X += push
				}
			case d2 < k.rMin2:
				dist := vmath.Sqrt(d2)
				mag := k.repel / max(d2, k.floor2)
				acc = acc.Sub(d.Scale(mag / dist))
			case d2 < k.rMax2:
				a := k.matrix.Lookup(p.Type, q.Type)
				if a == 0 {
					continue
				}
				dist := vmath.Sqrt(d2)
				var f float32
				if k.falloff == FalloffLinear {
					f = 1 - dist*k.invRMax
				} else {
					f = 1 / dist
				}
				acc = acc.Add(d.Scale(a * k.force * f / dist))
			}
		}
	}
	return acc
}

// advance integrates particle i and writes it to the next generation
func (k *kernel) advance(i int) {
	p := k.src[i]
	acc := k.acceleration(i)

	vel := p.Vel.Add(acc.Scale(k.dt)).Scale(k.damp)
	pos := p.Pos.Add(vel.Scale(k.dt))

	switch k.boundary {
	case BoundaryWrap:
		pos.X = k.origin.X + vmath.Mod(pos.X-k.origin.X, k.size)
		pos.Y = k.origin.Y + vmath.Mod(pos.Y-k.origin.Y, k.size)
	case BoundaryBounce:
		pos.X, vel.X = k.bounce(pos.X, vel.X, k.origin.X)
		pos.Y, vel.Y = k.bounce(pos.Y, vel.Y, k.origin.Y)
	}

	k.dst[i] = Particle{Pos: pos, Vel: vel, Type: p.Type}
}

// bounce clamps one axis into [lo, lo+size] and sends the velocity back
// inward with magnitude |v|*multiplier + pushback
func (k *kernel) bounce(x, v, lo float32) (float32, float32) {
	hi := lo + k.size
	switch {
	case x < lo:
		return lo, float32(math.Abs(float64(v)))*k.bounceK + k.bounceC
	case x > hi:
		return hi, -(float32(math.Abs(float64(v)))*k.bounceK + k.bounceC)
	}
	return x, v
}
