package interaction

import (
	"math"

	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
)

// WorldView то, что резолверу нужно от мира: обход загруженных чанков
// в порядке вставки. Реализуется world.StreamingManager.
type WorldView interface {
	ForEachChunk(fn func(chunk *world.Chunk))
}

// Hit ближайшее пересечение луча с твердым блоком
type Hit struct {
	Chunk    vec.Vec2
	Local    vec.Vec3
	World    vec.Vec3
	Block    block.BlockType
	Distance float64
	Point    mgl64.Vec3
}

// Cast ищет ближайший твердый блок вдоль луча.
// maxDistance <= 0 означает без ограничения.
//
// Чанки обходятся в порядке вставки, блоки в порядке локального индекса,
// и заменяют текущий результат только строго более близким пересечением,
// поэтому при равных расстояниях побеждает первый встреченный блок.
func Cast(r Ray, view WorldView, maxDistance float64) (Hit, bool) {
	if maxDistance <= 0 {
		maxDistance = math.Inf(1)
	}

	var (
		best  Hit
		found bool
	)
	limit := maxDistance

	view.ForEachChunk(func(chunk *world.Chunk) {
		if !chunkReachable(r, chunk, limit) {
			return
		}

		chunk.ForEachSolid(func(local vec.Vec3, t block.BlockType) {
			pos := chunk.WorldPos(local)
			boxMin, boxMax := BlockBounds(pos.Float())
			dist, ok := Intersect(r, boxMin, boxMax)
			if !ok || dist > limit {
				return
			}
			if found && dist >= best.Distance {
				return
			}

			best = Hit{
				Chunk:    chunk.Coords,
				Local:    local,
				World:    pos,
				Block:    t,
				Distance: dist,
				Point:    r.At(dist),
			}
			found = true
			limit = dist
		})
	})

	return best, found
}

// chunkReachable грубая проверка по AABB чанка. Чанк, внутри которого
// находится начало луча, проверяется всегда.
func chunkReachable(r Ray, chunk *world.Chunk, limit float64) bool {
	origin := chunk.Origin().Float()
	size := float64(chunk.Size())
	half := mgl64.Vec3{blockHalf, blockHalf, blockHalf}

	boxMin := origin.Sub(half)
	boxMax := origin.Add(mgl64.Vec3{size, size, size}).Sub(half)

	tEnter, tExit, ok := r.slab(boxMin, boxMax)
	if !ok || tExit < 0 {
		return false
	}
	return tEnter <= limit
}
