package life

import (
	"fmt"
	"math"
	"strings"
)

// Boundary selects what happens at the edge of the world square
type Boundary uint8

const (
	// BoundaryNone leaves the plane unbounded
	BoundaryNone Boundary = iota
	// BoundaryWrap makes the world square a torus
	BoundaryWrap
	// BoundaryBounce reflects particles back into the world square
	BoundaryBounce
)

func (b Boundary) String() string {
	switch b {
	case BoundaryNone:
		return "none"
	case BoundaryWrap:
		return "wrap"
	case BoundaryBounce:
		return "bounce"
	default:
		return fmt.Sprintf("boundary(%d)", uint8(b))
	}
}

// ParseBoundary parses a boundary name (case-insensitive)
func ParseBoundary(s string) (Boundary, error) {
	switch strings.ToLower(s) {
	case "none", "":
		return BoundaryNone, nil
	case "wrap", "wrapping", "torus":
		return BoundaryWrap, nil
	case "bounce", "bouncing":
		return BoundaryBounce, nil
	}
	return BoundaryNone, fmt.Errorf("unknown boundary %q", s)
}

// Next cycles through the boundaries
func (b Boundary) Next() Boundary {
	return (b + 1) % 3
}

// Falloff selects how attraction decays with distance
type Falloff uint8

const (
	// FalloffInverse scales attraction by 1/d
	FalloffInverse Falloff = iota
	// FalloffLinear scales attraction by 1 - d/RMax
	FalloffLinear
)

func (f Falloff) String() string {
	switch f {
	case FalloffInverse:
		return "inverse"
	case FalloffLinear:
		return "linear"
	default:
		return fmt.Sprintf("falloff(%d)", uint8(f))
	}
}

// ParseFalloff parses a falloff name (case-insensitive)
func ParseFalloff(s string) (Falloff, error) {
	switch strings.ToLower(s) {
	case "inverse", "":
		return FalloffInverse, nil
	case "linear":
		return FalloffLinear, nil
	}
	return FalloffInverse, fmt.Errorf("unknown falloff %q", s)
}

// SpawnPattern selects how a reset lays out the population
type SpawnPattern uint8

const (
	// SpawnUniform scatters particles uniformly over the spawn square
	SpawnUniform SpawnPattern = iota
	// SpawnNoise clusters particles where a perlin noise field is high
	SpawnNoise
)

func (s SpawnPattern) String() string {
	switch s {
	case SpawnUniform:
		return "uniform"
	case SpawnNoise:
		return "noise"
	default:
		return fmt.Sprintf("spawn(%d)", uint8(s))
	}
}

// ParseSpawnPattern parses a spawn pattern name (case-insensitive)
func ParseSpawnPattern(s string) (SpawnPattern, error) {
	switch strings.ToLower(s) {
	case "uniform", "":
		return SpawnUniform, nil
	case "noise", "perlin":
		return SpawnNoise, nil
	}
	return SpawnUniform, fmt.Errorf("unknown spawn pattern %q", s)
}

// MaxTypes is the largest type count a uint8 type id can address
const MaxTypes = 256

// Params configures a world. Population fields only take effect on Reset;
// the dynamics can also be changed live through SetParameters.
type Params struct {
	// Population
	ParticleCount   int
	TypeCount       int
	WorldSpread     float32 // side of the spawn square centred on the origin; also the world size when bounded
	AttractionRange float32 // matrix cells are drawn from [-AttractionRange, AttractionRange]
	InitialSpeed    float32
	Spawn           SpawnPattern
	Seed            int64 // 0 seeds from the clock

	// Dynamics
	RMin             float32 // overlap repulsion radius
	RMax             float32 // interaction cutoff, also the grid cell size
	Drag             float32 // velocity is scaled by 1-Drag every tick
	ForceScale       float32
	Repulsion        float32 // overlap repulsion strength at RMin
	Falloff          Falloff
	DT               float32
	Boundary         Boundary
	BounceMultiplier float32
	BouncePushback   float32
	EvolveEvery      int // mutate the matrix every N ticks, 0 disables
	EvolveSigma      float32
}

// DefaultParams returns a complete, valid configuration
func DefaultParams() Params {
	return Params{
		ParticleCount:   5000,
		TypeCount:       4,
		WorldSpread:     1000,
		AttractionRange: 1,
		InitialSpeed:    1,
		Spawn:           SpawnUniform,

		RMin:             5,
		RMax:             50,
		Drag:             0.02,
		ForceScale:       40,
		Repulsion:        40,
		Falloff:          FalloffInverse,
		DT:               0.1,
		Boundary:         BoundaryNone,
		BounceMultiplier: 1,
		BouncePushback:   2.5,
		EvolveEvery:      0,
		EvolveSigma:      0.1,
	}
}

// ValidationError collects every problem found in a configuration
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid parameters: unknown validation error"
	}
	if len(e.Issues) == 1 {
		return "invalid parameters: " + e.Issues[0]
	}
	return "invalid parameters: " + strings.Join(e.Issues, "; ")
}

// Unwrap lets errors.Is match ErrInvalidParams
func (e *ValidationError) Unwrap() error {
	return ErrInvalidParams
}

func (e *ValidationError) Add(format string, v ...any) {
	e.Issues = append(e.Issues, fmt.Sprintf(format, v...))
}

func (e *ValidationError) HasIssues() bool {
	return len(e.Issues) > 0
}

// Validate returns a *ValidationError listing every invalid field, or nil
func (p Params) Validate() error {
	err := &ValidationError{}

	if p.ParticleCount < 0 {
		err.Add("particle count must not be negative, got %d", p.ParticleCount)
	}
	if p.TypeCount < 1 || p.TypeCount > MaxTypes {
		err.Add("type count must be in [1, %d], got %d", MaxTypes, p.TypeCount)
	}
	if !positive(p.WorldSpread) {
		err.Add("world spread must be positive, got %v", p.WorldSpread)
	}
	if !nonNegative(p.AttractionRange) {
		err.Add("attraction range must not be negative, got %v", p.AttractionRange)
	}
	if !nonNegative(p.InitialSpeed) {
		err.Add("initial speed must not be negative, got %v", p.InitialSpeed)
	}
	if p.Spawn > SpawnNoise {
		err.Add("unknown spawn pattern %d", p.Spawn)
	}

	p.validateDynamics(err)

	if err.HasIssues() {
		return err
	}
	return nil
}

func (p Params) validateDynamics(err *ValidationError) {
	if !positive(p.RMax) {
		err.Add("r_max must be positive, got %v", p.RMax)
	}
	if !nonNegative(p.RMin) {
		err.Add("r_min must not be negative, got %v", p.RMin)
	} else if positive(p.RMax) && p.RMin >= p.RMax {
		err.Add("r_min (%v) must be below r_max (%v)", p.RMin, p.RMax)
	}
	if !finite(p.Drag) || p.Drag < 0 || p.Drag >= 1 {
		err.Add("drag must be in [0, 1), got %v", p.Drag)
	}
	if !finite(p.ForceScale) {
		err.Add("force scale must be finite, got %v", p.ForceScale)
	}
	if !nonNegative(p.Repulsion) {
		err.Add("repulsion must not be negative, got %v", p.Repulsion)
	}
	if p.Falloff > FalloffLinear {
		err.Add("unknown falloff %d", p.Falloff)
	}
	if !positive(p.DT) {
		err.Add("dt must be positive, got %v", p.DT)
	}
	if p.Boundary > BoundaryBounce {
		err.Add("unknown boundary %d", p.Boundary)
	}
	if !nonNegative(p.BounceMultiplier) {
		err.Add("bounce multiplier must not be negative, got %v", p.BounceMultiplier)
	}
	if !nonNegative(p.BouncePushback) {
		err.Add("bounce pushback must not be negative, got %v", p.BouncePushback)
	}
	if p.EvolveEvery < 0 {
		err.Add("evolve interval must not be negative, got %d", p.EvolveEvery)
	}
	if !nonNegative(p.EvolveSigma) {
		err.Add("evolve sigma must not be negative, got %v", p.EvolveSigma)
	}
}

// Update is a partial change to the live dynamics. Nil fields keep their
// current value.
type Update struct {
	RMin             *float32
	RMax             *float32
	Drag             *float32
	ForceScale       *float32
	Repulsion        *float32
	Falloff          *Falloff
	DT               *float32
	Boundary         *Boundary
	BounceMultiplier *float32
	BouncePushback   *float32
	EvolveEvery      *int
	EvolveSigma      *float32
}

// Ptr returns a pointer to v, for building an Update inline
func Ptr[T any](v T) *T {
	return &v
}

// Apply returns p with every non-nil field of u applied
func (u Update) Apply(p Params) Params {
	set(&p.RMin, u.RMin)
	set(&p.RMax, u.RMax)
	set(&p.Drag, u.Drag)
	set(&p.ForceScale, u.ForceScale)
	set(&p.Repulsion, u.Repulsion)
	set(&p.Falloff, u.Falloff)
	set(&p.DT, u.DT)
	set(&p.Boundary, u.Boundary)
	set(&p.BounceMultiplier, u.BounceMultiplier)
	set(&p.BouncePushback, u.BouncePushback)
	set(&p.EvolveEvery, u.EvolveEvery)
	set(&p.EvolveSigma, u.EvolveSigma)
	return p
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func finite(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}

func positive(x float32) bool {
	return finite(x) && x > 0
}

func nonNegative(x float32) bool {
	return finite(x) && x >= 0
}
