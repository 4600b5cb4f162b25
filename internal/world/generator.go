package world

import (
	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world/terrain"
)

// Generate заполняет все size³ ячеек по генератору рельефа.
// Локальные координаты переводятся в мировые через Origin.
func (c *Chunk) Generate(gen terrain.Generator) {
	origin := c.Origin()

	for x := 0; x < c.size; x++ {
		for z := 0; z < c.size; z++ {
			height := gen.HeightAt(origin.X+x, origin.Z+z)
			for y := 0; y < c.size; y++ {
				c.blocks[c.index(x, y, z)] = terrain.MaterialAt(height, origin.Y+y)
			}
		}
	}

	c.dirty = true
}

// GenerateChunk создает и полностью генерирует чанк
func GenerateChunk(coords vec.Vec2, size int, gen terrain.Generator) *Chunk {
	chunk := NewChunk(coords, size)
	chunk.Generate(gen)
	return chunk
}
