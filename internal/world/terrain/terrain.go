// Package terrain отображает координаты колонки мира в высоту поверхности.
// Все генераторы детерминированы: одинаковые координаты дают одинаковую высоту,
// поэтому выгруженный чанк после повторной загрузки совпадает с прежним.
package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/annel0/voxelworld/internal/config"
	"github.com/annel0/voxelworld/internal/world/block"
)

// ErrUnknownGenerator возвращается для неизвестного имени генератора
var ErrUnknownGenerator = errors.New("unknown terrain generator")

// Generator вычисляет высоту поверхности для колонки мира
type Generator interface {
	// HeightAt возвращает высоту поверхности (>= 2) в колонке (worldX, worldZ)
	HeightAt(worldX, worldZ int) int
}

// MaterialAt возвращает материал ячейки на высоте y колонки с высотой h:
// ниже h-1 камень, на h-1 земля, на h трава, выше воздух.
func MaterialAt(h, y int) block.BlockType {
	switch {
	case y < h-1:
		return block.Stone
	case y == h-1:
		return block.Dirt
	case y == h:
		return block.Grass
	default:
		return block.Air
	}
}

// New создает генератор по конфигурации
func New(cfg config.TerrainConfig) (Generator, error) {
	minHeight := cfg.MinHeight
	if minHeight < 2 {
		minHeight = 2
	}

	switch cfg.Generator {
	case "", "sine":
		return &SineGenerator{Amplitude: cfg.Amplitude, MinHeight: minHeight}, nil
	case "perlin":
		return NewPerlinGenerator(cfg.Seed, cfg.Scale, cfg.Amplitude, minHeight), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGenerator, cfg.Generator)
	}
}

// SineGenerator простая поверхность sin(x)*cos(z)
type SineGenerator struct {
	Amplitude float64
	MinHeight int
}

// HeightAt реализует Generator
func (g *SineGenerator) HeightAt(worldX, worldZ int) int {
	h := int(math.Floor(math.Sin(float64(worldX)) * math.Cos(float64(worldZ)) * g.Amplitude))
	return clampMin(h, g.MinHeight)
}

func clampMin(h, minHeight int) int {
	if minHeight < 2 {
		minHeight = 2
	}
	if h < minHeight {
		return minHeight
	}
	return h
}
