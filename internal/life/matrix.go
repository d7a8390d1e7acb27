package life

import (
	"fmt"
	"math/rand"
)

// Matrix is the type x type attraction table. Lookup(a, b) is how strongly
// type a is pulled toward (positive) or pushed from (negative) type b. It is
// deliberately not symmetric.
type Matrix struct {
	n    int
	data []float32 // row-major, [from][to]
}

// NewMatrix returns a zero matrix for the given number of types
func NewMatrix(types int) *Matrix {
	return &Matrix{
		n:    types,
		data: make([]float32, types*types),
	}
}

// RandomMatrix fills every cell, the diagonal included, uniformly from
// [-limit, limit]
func RandomMatrix(types int, limit float32, rng *rand.Rand) *Matrix {
	m := NewMatrix(types)
	for i := range m.data {
		m.data[i] = (rng.Float32()*2 - 1) * limit
	}
	return m
}

// Types is the matrix dimension
func (m *Matrix) Types() int {
	return m.n
}

// Lookup returns the coefficient type a feels toward type b. Out of range
// types are a programming error and panic.
func (m *Matrix) Lookup(a, b uint8) float32 {
	if int(a) >= m.n || int(b) >= m.n {
		panic(fmt.Sprintf("life: type pair (%d, %d) outside %dx%d matrix", a, b, m.n, m.n))
	}
	return m.data[int(a)*m.n+int(b)]
}

// Set overwrites one coefficient
func (m *Matrix) Set(a, b uint8, v float32) {
	if int(a) >= m.n || int(b) >= m.n {
		panic(fmt.Sprintf("life: type pair (%d, %d) outside %dx%d matrix", a, b, m.n, m.n))
	}
	m.data[int(a)*m.n+int(b)] = v
}

// Clone returns an independent copy
func (m *Matrix) Clone() *Matrix {
	c := &Matrix{n: m.n, data: make([]float32, len(m.data))}
	copy(c.data, m.data)
	return c
}

// Mutate returns a copy with gaussian jitter of the given sigma added to every
// cell, clamped to [-limit, limit]. The receiver is left untouched.
func (m *Matrix) Mutate(rng *rand.Rand, sigma, limit float32) *Matrix {
	c := m.Clone()
	for i, v := range c.data {
		v += float32(rng.NormFloat64()) * sigma
		c.data[i] = min(max(v, -limit), limit)
	}
	return c
}
