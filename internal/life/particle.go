package life

import (
	"iter"

	"github.com/olivierh59500/particle-life-engine/internal/vmath"
)

// Particle is a single point. Its index in the store is its only identity.
type Particle struct {
	Pos  vmath.Vec2
	Vel  vmath.Vec2
	Type uint8
}

// Store is the double-buffered particle population. Read holds the last
// committed generation, the kernel fills Write, and Swap commits it.
type Store struct {
	read  []Particle
	write []Particle
}

func newStore(particles []Particle) Store {
	return Store{
		read:  particles,
		write: make([]Particle, len(particles)),
	}
}

// Len is the number of particles
func (s *Store) Len() int {
	return len(s.read)
}

// Current is the committed generation
func (s *Store) Current() []Particle {
	return s.read
}

// Swap publishes the write buffer as the new generation
func (s *Store) Swap() {
	s.read, s.write = s.write, s.read
}

// Snapshot is a read-only view of one committed generation. It stays valid
// until the next Tick.
type Snapshot struct {
	particles []Particle
	tick      uint64
}

// Len is the number of particles in the snapshot
func (s Snapshot) Len() int {
	return len(s.particles)
}

// At returns the position and type of particle i
func (s Snapshot) At(i int) (vmath.Vec2, uint8) {
	p := s.particles[i]
	return p.Pos, p.Type
}

// Particle returns a copy of particle i
func (s Snapshot) Particle(i int) Particle {
	return s.particles[i]
}

// All iterates particles by index
func (s Snapshot) All() iter.Seq2[int, Particle] {
	return func(yield func(int, Particle) bool) {
		for i, p := range s.particles {
			if !yield(i, p) {
				return
			}
		}
	}
}

// Tick is the number of ticks committed when the snapshot was taken
func (s Snapshot) Tick() uint64 {
	return s.tick
}
