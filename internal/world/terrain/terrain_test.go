package terrain

import (
	"math"
	"testing"

	"github.com/annel0/voxelworld/internal/config"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialAt(t *testing.T) {
	h := 5
	tests := []struct {
		y    int
		want block.BlockType
	}{
		{0, block.Stone},
		{3, block.Stone},
		{4, block.Dirt},
		{5, block.Grass},
		{6, block.Air},
		{15, block.Air},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaterialAt(h, tt.y), "y=%d", tt.y)
	}
}

func TestSineGeneratorMatchesSurface(t *testing.T) {
	g := &SineGenerator{Amplitude: 10, MinHeight: 2}

	for x := -20; x <= 20; x++ {
		for z := -20; z <= 20; z++ {
			want := int(math.Floor(math.Sin(float64(x)) * math.Cos(float64(z)) * 10))
			if want < 2 {
				want = 2
			}
			require.Equal(t, want, g.HeightAt(x, z), "(%d,%d)", x, z)
		}
	}

	// В начале координат sin(0) = 0, поверхность прижата к минимуму
	assert.Equal(t, 2, g.HeightAt(0, 0))
}

func TestGeneratorsAreDeterministic(t *testing.T) {
	gens := map[string]Generator{
		"sine":   &SineGenerator{Amplitude: 10, MinHeight: 2},
		"perlin": NewPerlinGenerator(1234, 0.05, 10, 2),
	}
	again := map[string]Generator{
		"sine":   &SineGenerator{Amplitude: 10, MinHeight: 2},
		"perlin": NewPerlinGenerator(1234, 0.05, 10, 2),
	}

	for name, g := range gens {
		t.Run(name, func(t *testing.T) {
			for x := -40; x < 40; x += 3 {
				for z := -40; z < 40; z += 3 {
					h := g.HeightAt(x, z)
					assert.GreaterOrEqual(t, h, 2)
					assert.Equal(t, h, g.HeightAt(x, z), "повторный вызов")
					assert.Equal(t, h, again[name].HeightAt(x, z), "новый экземпляр с тем же сидом")
				}
			}
		})
	}
}

func TestPerlinGeneratorBounded(t *testing.T) {
	g := NewPerlinGenerator(99, 0.05, 10, 2)
	for x := -100; x < 100; x += 7 {
		for z := -100; z < 100; z += 7 {
			h := g.HeightAt(x, z)
			assert.GreaterOrEqual(t, h, 2)
			assert.LessOrEqual(t, h, 12)
		}
	}
}

func TestNew(t *testing.T) {
	g, err := New(config.TerrainConfig{Generator: "sine", Amplitude: 10, MinHeight: 2})
	require.NoError(t, err)
	assert.IsType(t, &SineGenerator{}, g)

	g, err = New(config.TerrainConfig{Generator: "perlin", Seed: 5, Amplitude: 8, MinHeight: 3})
	require.NoError(t, err)
	_, ok := g.(*PerlinGenerator)
	require.True(t, ok)

	_, err = New(config.TerrainConfig{Generator: "voronoi"})
	assert.ErrorIs(t, err, ErrUnknownGenerator)
}
