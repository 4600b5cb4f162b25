package terrain

import (
	"math"

	"github.com/aquilax/go-perlin"
)

// Параметры шума Перлина
const (
	perlinAlpha   = 2.0 // Сглаживание шума
	perlinBeta    = 2.0 // Частота шума
	perlinOctaves = 3   // Количество октав
)

// PerlinGenerator генерирует высоты по шуму Перлина.
// У каждого экземпляра свой источник шума, общего состояния нет.
type PerlinGenerator struct {
	noise     *perlin.Perlin
	scale     float64
	amplitude float64
	minHeight int
}

// NewPerlinGenerator создаёт генератор с указанным сидом
func NewPerlinGenerator(seed int64, scale, amplitude float64, minHeight int) *PerlinGenerator {
	if scale <= 0 {
		scale = 0.05
	}
	return &PerlinGenerator{
		noise:     perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
		scale:     scale,
		amplitude: amplitude,
		minHeight: minHeight,
	}
}

// Noise01 возвращает значение шума в диапазоне [0, 1]
func (g *PerlinGenerator) Noise01(worldX, worldZ int) float64 {
	n := g.noise.Noise2D(float64(worldX)*g.scale, float64(worldZ)*g.scale)
	// Noise2D дает примерно [-1, 1], на практике бывает чуть шире
	v := (n + 1.0) / 2.0
	return math.Min(1, math.Max(0, v))
}

// HeightAt реализует Generator
func (g *PerlinGenerator) HeightAt(worldX, worldZ int) int {
	h := g.minHeight + int(math.Floor(g.Noise01(worldX, worldZ)*g.amplitude))
	return clampMin(h, g.minHeight)
}
