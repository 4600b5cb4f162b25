package interaction

import (
	"errors"
	"math"

	"github.com/annel0/voxelworld/internal/entity"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrZeroDirection луч без направления
var ErrZeroDirection = errors.New("ray direction is zero")

// blockHalf половина ребра блока. Блок с координатами (x,y,z) занимает
// куб [x-0.5, x+0.5] по каждой оси.
const blockHalf = 0.5

// Ray луч с нормализованным направлением, строится заново на каждый клик
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay создаёт луч и нормализует направление
func NewRay(origin, dir mgl64.Vec3) (Ray, error) {
	if dir.Len() == 0 {
		return Ray{}, ErrZeroDirection
	}
	return Ray{Origin: origin, Direction: dir.Normalize()}, nil
}

// FromObserver строит луч из позиции и взгляда наблюдателя
func FromObserver(obs *entity.Observer) (Ray, error) {
	return NewRay(obs.Position, obs.Facing)
}

// At точка на луче на расстоянии t
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// slab пересекает луч с AABB и возвращает параметры входа и выхода
func (r Ray) slab(boxMin, boxMax mgl64.Vec3) (tEnter, tExit float64, ok bool) {
	tEnter = math.Inf(-1)
	tExit = math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		o, d := r.Origin[axis], r.Direction[axis]
		if d == 0 {
			// Параллельно граням: либо всегда внутри слоя, либо никогда
			if o < boxMin[axis] || o > boxMax[axis] {
				return 0, 0, false
			}
			continue
		}

		t1 := (boxMin[axis] - o) / d
		t2 := (boxMax[axis] - o) / d
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tEnter = math.Max(tEnter, t1)
		tExit = math.Min(tExit, t2)
		if tEnter > tExit {
			return 0, 0, false
		}
	}
	return tEnter, tExit, true
}

// Intersect возвращает расстояние до входа луча в AABB.
// Засчитывается только положительный вход: коробка, внутри которой
// лежит начало луча, не пересекается.
func Intersect(r Ray, boxMin, boxMax mgl64.Vec3) (float64, bool) {
	tEnter, _, ok := r.slab(boxMin, boxMax)
	if !ok || tEnter <= 0 {
		return 0, false
	}
	return tEnter, true
}

// BlockBounds AABB единичного блока с центром в целой точке
func BlockBounds(center mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	half := mgl64.Vec3{blockHalf, blockHalf, blockHalf}
	return center.Sub(half), center.Add(half)
}
