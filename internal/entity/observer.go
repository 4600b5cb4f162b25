package entity

import (
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultFacing направление взгляда по умолчанию (вперед = -Z)
var DefaultFacing = mgl64.Vec3{0, 0, -1}

// Observer наблюдатель, вокруг которого стримится мир.
// Изменяется контроллером движения один раз за кадр.
type Observer struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Facing   mgl64.Vec3 // Нормализованное направление камеры
}

// NewObserver создаёт наблюдателя в указанной позиции
func NewObserver(pos mgl64.Vec3) *Observer {
	return &Observer{
		Position: pos,
		Facing:   DefaultFacing,
	}
}

// SetFacing задает направление взгляда. Нулевой вектор игнорируется.
func (o *Observer) SetFacing(dir mgl64.Vec3) bool {
	if dir.Len() == 0 {
		return false
	}
	o.Facing = dir.Normalize()
	return true
}

// Snapshot копия состояния для чтения вне потока симуляции
func (o *Observer) Snapshot() Observer {
	return *o
}
