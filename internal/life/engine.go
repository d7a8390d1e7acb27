// Package life is the particle-life simulation engine: an asymmetric
// attraction matrix between particle types, a bucket grid for neighbour
// search and a double-buffered, data-parallel step.
//
// An Engine is driven from a single goroutine: call Tick once per frame and
// read the result with Snapshot. Reset and SetParameters are only ever applied
// between ticks.
package life

import (
	"fmt"
	"runtime"
	"time"

	"github.com/olivierh59500/particle-life-engine/internal/spatial"
	"github.com/olivierh59500/particle-life-engine/internal/vmath"
)

// Engine owns the current world and steps it
type Engine struct {
	workers int
	log     Logger

	world    *World
	grid     *spatial.Grid
	lastTick time.Duration
}

// Option configures an Engine
type Option func(*Engine)

// WithWorkers bounds the parallel fan-out. 1 gives a sequential reference
// run, 0 or less uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		e.workers = n
	}
}

// WithLogger injects a logger, the default discards everything
func WithLogger(l Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine returns an engine without a world; call Reset before Tick
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		log:  NopLogger{},
		grid: spatial.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workers <= 0 {
		e.workers = runtime.GOMAXPROCS(0)
	}
	return e
}

// Reset validates p and replaces the whole world with a freshly randomized
// one. On error the previous world stays in place.
func (e *Engine) Reset(p Params) error {
	if err := p.Validate(); err != nil {
		e.log.Warnf("reset rejected: %v", err)
		return fmt.Errorf("reset: %w", err)
	}

	w := newWorld(p)
	e.world = w
	e.grid = spatial.New()
	e.lastTick = 0
	e.log.Infof("reset: %d particles, %d types, spread %g, boundary %s, seed %d",
		w.params.ParticleCount, w.params.TypeCount, w.params.WorldSpread, w.params.Boundary, w.params.Seed)
	return nil
}

// Tick advances the world by one step. Every particle's new state is computed
// from the previous generation only; the new generation becomes visible all at
// once when the parallel pass has finished. If a worker fails the tick is
// dropped and the previous generation stays current.
func (e *Engine) Tick() error {
	w := e.world
	if w == nil {
		return ErrNotReset
	}
	start := time.Now()

	if w.params.Boundary == BoundaryWrap {
		e.grid.Wrap(w.origin(), w.params.WorldSpread)
	} else {
		e.grid.Unbounded()
	}
	current := w.store.Current()
	e.grid.Rebuild(w.params.RMax, len(current), func(i int) vmath.Vec2 {
		return current[i].Pos
	})

	if err := e.dispatch(newKernel(w, e.grid), w.tick); err != nil {
		e.log.Errorf("%v", err)
		return err
	}

	w.store.Swap()
	w.tick++
	e.lastTick = time.Since(start)

	if w.params.EvolveEvery > 0 && w.tick%uint64(w.params.EvolveEvery) == 0 {
		w.matrix = w.matrix.Mutate(w.rng, w.params.EvolveSigma, w.params.AttractionRange)
		e.log.Debugf("tick %d: matrix evolved (sigma %g)", w.tick, w.params.EvolveSigma)
	}
	return nil
}

// Snapshot returns the committed generation. It is empty before the first
// Reset.
func (e *Engine) Snapshot() Snapshot {
	if e.world == nil {
		return Snapshot{}
	}
	return Snapshot{particles: e.world.store.Current(), tick: e.world.tick}
}

// SetParameters applies a partial change to the live dynamics. The merged
// parameters are validated first; on error nothing changes.
func (e *Engine) SetParameters(u Update) error {
	w := e.world
	if w == nil {
		return ErrNotReset
	}
	next := u.Apply(w.params)
	if err := next.Validate(); err != nil {
		e.log.Warnf("parameter change rejected: %v", err)
		return fmt.Errorf("set parameters: %w", err)
	}
	w.params = next
	e.log.Debugf("parameters updated: r_min %g r_max %g drag %g force %g boundary %s",
		next.RMin, next.RMax, next.Drag, next.ForceScale, next.Boundary)
	return nil
}

// RandomizeMatrix draws a new attraction matrix and keeps the population
func (e *Engine) RandomizeMatrix() error {
	w := e.world
	if w == nil {
		return ErrNotReset
	}
	w.matrix = RandomMatrix(w.params.TypeCount, w.params.AttractionRange, w.rng)
	e.log.Infof("attraction matrix randomized")
	return nil
}

// SetMatrix replaces the attraction matrix with a copy of m
func (e *Engine) SetMatrix(m *Matrix) error {
	w := e.world
	if w == nil {
		return ErrNotReset
	}
	if m == nil || m.Types() != w.params.TypeCount {
		return fmt.Errorf("set matrix: %w", ErrMatrixSize)
	}
	w.matrix = m.Clone()
	return nil
}

// Matrix returns a copy of the current attraction matrix, or nil before the
// first Reset
func (e *Engine) Matrix() *Matrix {
	if e.world == nil {
		return nil
	}
	return e.world.matrix.Clone()
}

// Params returns the current parameters. After a clock-seeded Reset, Seed
// holds the seed actually used.
func (e *Engine) Params() Params {
	if e.world == nil {
		return Params{}
	}
	return e.world.params
}

// Workers is the fan-out limit in effect
func (e *Engine) Workers() int {
	return e.workers
}

// TickDuration is how long the last committed tick took. Unlike Stats it
// does not walk the population.
func (e *Engine) TickDuration() time.Duration {
	return e.lastTick
}

// Stats summarizes the committed generation
type Stats struct {
	Tick         uint64
	Particles    int
	Buckets      int
	MeanSpeed    float32
	TickDuration time.Duration
}

// Stats computes a summary of the current world. It walks every particle, so
// call it at most once per frame.
func (e *Engine) Stats() Stats {
	w := e.world
	if w == nil {
		return Stats{}
	}
	return Stats{
		Tick:         w.tick,
		Particles:    w.store.Len(),
		Buckets:      e.grid.CellCount(),
		MeanSpeed:    w.meanSpeed(),
		TickDuration: e.lastTick,
	}
}
