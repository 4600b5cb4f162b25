package vec

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec3 представляет трехмерный вектор с целочисленными координатами блока
type Vec3 struct {
	X int
	Y int
	Z int
}

// Add складывает два вектора
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		X: v.X + other.X,
		Y: v.Y + other.Y,
		Z: v.Z + other.Z,
	}
}

// Float возвращает центр блока в мировых координатах
func (v Vec3) Float() mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X), float64(v.Y), float64(v.Z)}
}

// ChunkOf возвращает координаты чанка, содержащего блок, и локальную позицию в нем
func (v Vec3) ChunkOf(size int) (Vec2, Vec3) {
	chunk := Vec2{X: FloorDiv(v.X, size), Z: FloorDiv(v.Z, size)}
	local := Vec3{X: FloorMod(v.X, size), Y: v.Y, Z: FloorMod(v.Z, size)}
	return chunk, local
}

// ChunkAt возвращает координаты чанка для точки в мире: floor(x/size), floor(z/size)
func ChunkAt(pos mgl64.Vec3, size int) Vec2 {
	s := float64(size)
	return Vec2{
		X: int(math.Floor(pos.X() / s)),
		Z: int(math.Floor(pos.Z() / s)),
	}
}
