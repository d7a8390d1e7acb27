package life

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/olivierh59500/particle-life-engine/internal/vmath"
)

// Noise spawn tuning
const (
	noiseAlpha   = 2.0
	noiseBeta    = 2.0
	noiseOctaves = 3
	noisePeriods = 4.0 // noise features across the spawn square
	noiseSharpen = 3.0 // acceptance = ((n+1)/2)^noiseSharpen
	noiseTries   = 64  // rejection attempts per particle before accepting anyway
)

// spawn creates the initial population for p
func spawn(p Params, rng *rand.Rand) []Particle {
	particles := make([]Particle, p.ParticleCount)
	half := p.WorldSpread / 2

	var accept func(pos vmath.Vec2) float64
	if p.Spawn == SpawnNoise {
		noise := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, rng.Int63())
		scale := noisePeriods / float64(p.WorldSpread)
		accept = func(pos vmath.Vec2) float64 {
			n := noise.Noise2D(float64(pos.X)*scale, float64(pos.Y)*scale)
			return math.Pow(math.Min(math.Max((n+1)/2, 0), 1), noiseSharpen)
		}
	}

	for i := range particles {
		pos := randomPoint(rng, half)
		if accept != nil {
			for try := 0; try < noiseTries && rng.Float64() >= accept(pos); try++ {
				pos = randomPoint(rng, half)
			}
		}

		particles[i] = Particle{
			Pos:  pos,
			Vel:  randomVelocity(rng, p.InitialSpeed),
			Type: uint8(rng.Intn(p.TypeCount)),
		}
	}
	return particles
}

func randomPoint(rng *rand.Rand, half float32) vmath.Vec2 {
	return vmath.Vec2{
		X: (rng.Float32()*2 - 1) * half,
		Y: (rng.Float32()*2 - 1) * half,
	}
}

func randomVelocity(rng *rand.Rand, maxSpeed float32) vmath.Vec2 {
	if maxSpeed == 0 {
		return vmath.Vec2{}
	}
	sin, cos := math.Sincos(rng.Float64() * 2 * math.Pi)
	speed := rng.Float32() * maxSpeed
	return vmath.Vec2{X: float32(cos) * speed, Y: float32(sin) * speed}
}
