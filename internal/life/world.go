package life

import (
	"math/rand"
	"time"

	"github.com/olivierh59500/particle-life-engine/internal/vmath"
)

// World is everything a reset produces: parameters, matrix and population.
// It is built completely before the engine swaps it in.
type World struct {
	params Params
	matrix *Matrix
	store  Store
	tick   uint64
	rng    *rand.Rand
}

// newWorld builds a fresh randomized world. p must already be valid.
func newWorld(p Params) *World {
	if p.Seed == 0 {
		p.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(p.Seed))

	return &World{
		params: p,
		matrix: RandomMatrix(p.TypeCount, p.AttractionRange, rng),
		store:  newStore(spawn(p, rng)),
		rng:    rng,
	}
}

// origin is the lowest corner of the world square
func (w *World) origin() vmath.Vec2 {
	half := w.params.WorldSpread / 2
	return vmath.Vec2{X: -half, Y: -half}
}

// meanSpeed is the average velocity magnitude of the committed generation
func (w *World) meanSpeed() float32 {
	particles := w.store.Current()
	if len(particles) == 0 {
		return 0
	}
	var sum float64
	for _, p := range particles {
		sum += float64(p.Vel.Len())
	}
	return float32(sum / float64(len(particles)))
}
