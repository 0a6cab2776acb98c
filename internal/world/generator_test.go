package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGeneratorReproducibility(t *testing.T) {
	g1 := NewNoiseGenerator(DefaultSeed)
	g2 := NewNoiseGenerator(DefaultSeed)

	for x := -50; x <= 50; x += 5 {
		for y := -50; y <= 50; y += 5 {
			if g1.TileType(x, y) != g2.TileType(x, y) {
				t.Fatalf("tile mismatch at (%d,%d): %v != %v", x, y, g1.TileType(x, y), g2.TileType(x, y))
			}
		}
	}
}

func TestGeneratorDifferentSeeds(t *testing.T) {
	g1 := NewNoiseGenerator("12345")
	g2 := NewNoiseGenerator("54321")

	identical := true
	for x := 0; x < 400 && identical; x += 7 {
		for y := 0; y < 400; y += 7 {
			if g1.Sample(x, y) != g2.Sample(x, y) {
				identical = false
				break
			}
		}
	}
	assert.False(t, identical, "worlds with different seeds should not be identical")
}

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		value float64
		want  TileType
	}{
		{0, TypeDeepWater},
		{0.25, TypeDeepWater},
		{0.3, TypeWater},
		{0.35, TypeWater},
		{0.36, TypeWetSand},
		{0.375, TypeSand},
		{0.45, TypeDirt},
		{0.6, TypeGrass},
		{0.65, TypeTallGrass},
		{0.7, TypeForest},
		{0.8, TypeDarkForest},
		{0.85, TypeRock},
		{0.87, TypeLava},
		{0.9, TypeSnow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.value), "Classify(%v)", tt.value)
	}
}

func TestNoiseGeneratorProducesWalkableLand(t *testing.T) {
	g := NewNoiseGenerator(DefaultSeed)

	walkable := 0
	for x := -100; x < 100; x += 4 {
		for y := -100; y < 100; y += 4 {
			v := g.Sample(x, y)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
			if !g.TileType(x, y).IsImpassable() {
				walkable++
			}
		}
	}
	assert.Positive(t, walkable)
}
