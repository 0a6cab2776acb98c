package world

import (
	"github.com/cespare/xxhash/v2"
	"github.com/ojrac/opensimplex-go"
)

// DefaultSeed is the world seed used when none is configured.
const DefaultSeed = "654684654657"

// Generator yields the default tile type for any coordinate. Implementations
// must be deterministic so unstored tiles can always be rebuilt.
type Generator interface {
	TileType(x, y int) TileType
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(x, y int) TileType

// TileType implements Generator.
func (f GeneratorFunc) TileType(x, y int) TileType {
	return f(x, y)
}

// Flat returns a generator that yields t everywhere.
func Flat(t TileType) Generator {
	return GeneratorFunc(func(int, int) TileType { return t })
}

// fBm parameters.
const (
	noiseOctaves    = 5
	noiseGain       = 0.5
	noiseLacunarity = 2.0
	noiseScale      = 130.0
)

// band maps a noise ceiling to a tile type. inclusive selects <= over <.
type band struct {
	ceiling   float64
	inclusive bool
	tileType  TileType
}

var terrainBands = []band{
	{0.25, true, TypeDeepWater},
	{0.35, true, TypeWater},
	{0.375, false, TypeWetSand},
	{0.4, true, TypeSand},
	{0.5, true, TypeDirt},
	{0.6, true, TypeGrass},
	{0.68, true, TypeTallGrass},
	{0.72, true, TypeForest},
	{0.8, true, TypeDarkForest},
	{0.85, true, TypeRock},
	{0.88, true, TypeLava},
}

// NoiseGenerator produces terrain from fractal simplex noise.
type NoiseGenerator struct {
	seed  string
	noise opensimplex.Noise
}

// NewNoiseGenerator returns a generator for the given seed string. The string
// is hashed, so any text works as a seed.
func NewNoiseGenerator(seed string) *NoiseGenerator {
	return &NoiseGenerator{
		seed:  seed,
		noise: opensimplex.NewNormalized(seedValue(seed)),
	}
}

// Seed returns the seed string the generator was built from.
func (g *NoiseGenerator) Seed() string {
	return g.seed
}

// Sample returns the fBm noise value at tile (x, y), roughly in [0, 1).
func (g *NoiseGenerator) Sample(x, y int) float64 {
	var (
		result    float64
		frequency = 1 / noiseScale
		amplitude = noiseGain
	)
	for i := 0; i < noiseOctaves; i++ {
		result += g.noise.Eval2(float64(x)*frequency, float64(y)*frequency) * amplitude
		frequency *= noiseLacunarity
		amplitude *= noiseGain
	}
	return result
}

// TileType implements Generator.
func (g *NoiseGenerator) TileType(x, y int) TileType {
	return Classify(g.Sample(x, y))
}

// Classify maps a noise value to its terrain band.
func Classify(value float64) TileType {
	for _, b := range terrainBands {
		if value < b.ceiling || (b.inclusive && value == b.ceiling) {
			return b.tileType
		}
	}
	return TypeSnow
}

func seedValue(seed string) int64 {
	return int64(xxhash.Sum64String(seed))
}
