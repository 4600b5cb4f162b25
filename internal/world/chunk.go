package world

import (
	"fmt"

	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/cespare/xxhash/v2"
)

// Chunk представляет куб мира size×size×size блоков.
// Чанком владеет StreamingManager; рендер держит только производное
// визуальное представление, привязанное к Coords.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка на сетке (cx, cz)

	size   int
	blocks []block.BlockType // Плотный массив, индекс (x*size+y)*size+z

	// dirty означает, что визуальное представление устарело.
	// Перестроение визуала остается задачей рендера.
	dirty bool
}

// NewChunk создаёт чанк из воздуха с указанными координатами
func NewChunk(coords vec.Vec2, size int) *Chunk {
	return &Chunk{
		Coords: coords,
		size:   size,
		blocks: make([]block.BlockType, size*size*size),
	}
}

// Size возвращает длину ребра чанка
func (c *Chunk) Size() int {
	return c.size
}

// Origin возвращает мировые координаты локальной ячейки (0,0,0)
func (c *Chunk) Origin() vec.Vec3 {
	return vec.Vec3{X: c.Coords.X * c.size, Y: 0, Z: c.Coords.Z * c.size}
}

// WorldPos преобразует локальные координаты в мировые
func (c *Chunk) WorldPos(local vec.Vec3) vec.Vec3 {
	return c.Origin().Add(local)
}

// InBounds проверяет, что все координаты лежат в [0, size)
func (c *Chunk) InBounds(x, y, z int) bool {
	return x >= 0 && x < c.size && y >= 0 && y < c.size && z >= 0 && z < c.size
}

func (c *Chunk) index(x, y, z int) int {
	return (x*c.size+y)*c.size + z
}

func (c *Chunk) checkBounds(x, y, z int) error {
	if !c.InBounds(x, y, z) {
		return fmt.Errorf("%w: (%d,%d,%d) в чанке %s размера %d", ErrOutOfBounds, x, y, z, c.Coords, c.size)
	}
	return nil
}

// BlockAt возвращает тип блока по локальным координатам
func (c *Chunk) BlockAt(x, y, z int) (block.BlockType, error) {
	if err := c.checkBounds(x, y, z); err != nil {
		return block.Air, err
	}
	return c.blocks[c.index(x, y, z)], nil
}

// SetBlock перезаписывает ячейку и помечает визуал устаревшим
func (c *Chunk) SetBlock(x, y, z int, t block.BlockType) error {
	if err := c.checkBounds(x, y, z); err != nil {
		return err
	}
	if !t.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidBlock, t)
	}
	c.blocks[c.index(x, y, z)] = t
	c.dirty = true
	return nil
}

// Dirty возвращает true, если визуальное представление нужно перестроить
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// MarkClean сбрасывает флаг после перестроения визуала
func (c *Chunk) MarkClean() {
	c.dirty = false
}

// ForEachSolid обходит непустые блоки в порядке возрастания локального индекса:
// сначала x, затем y, затем z.
func (c *Chunk) ForEachSolid(fn func(local vec.Vec3, t block.BlockType)) {
	for x := 0; x < c.size; x++ {
		for y := 0; y < c.size; y++ {
			base := (x*c.size + y) * c.size
			for z := 0; z < c.size; z++ {
				if t := c.blocks[base+z]; t.IsSolid() {
					fn(vec.Vec3{X: x, Y: y, Z: z}, t)
				}
			}
		}
	}
}

// SolidCount возвращает количество непустых блоков
func (c *Chunk) SolidCount() int {
	n := 0
	for _, t := range c.blocks {
		if t.IsSolid() {
			n++
		}
	}
	return n
}

// Digest возвращает хеш содержимого чанка. Рендер использует его как ключ
// кеша визуала: одинаковые чанки дают одинаковый хеш.
func (c *Chunk) Digest() uint64 {
	buf := make([]byte, len(c.blocks))
	for i, t := range c.blocks {
		buf[i] = byte(t)
	}
	return xxhash.Sum64(buf)
}
