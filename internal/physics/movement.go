package physics

import (
	"github.com/annel0/voxelworld/internal/config"
	"github.com/annel0/voxelworld/internal/entity"
	"github.com/annel0/voxelworld/internal/gamemode"
	"github.com/go-gl/mathgl/mgl64"
)

// Input направленные флаги и прыжок за один кадр
type Input struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool
	Jump    bool
}

// Direction возвращает вектор направления по осям: вперед = -Z, вправо = +X.
// Диагональ не нормализуется.
func (in Input) Direction() mgl64.Vec3 {
	var dir mgl64.Vec3
	if in.Forward {
		dir[2] -= 1
	}
	if in.Back {
		dir[2] += 1
	}
	if in.Left {
		dir[0] -= 1
	}
	if in.Right {
		dir[0] += 1
	}
	return dir
}

// Controller интегрирует ввод и гравитацию в позицию наблюдателя.
//
// Гравитация накапливается без ограничения конечной скорости, а прыжок
// не проверяет опору: коллизий в ядре нет.
type Controller struct {
	Speed     float64
	JumpSpeed float64
	Gravity   float64
}

// NewController создаёт контроллер из конфигурации
func NewController(cfg config.MovementConfig) *Controller {
	return &Controller{
		Speed:     cfg.Speed,
		JumpSpeed: cfg.JumpSpeed,
		Gravity:   cfg.Gravity,
	}
}

// Step выполняет один кадр движения. Политика зависит от режима:
// творческий летает со скоростью Speed, наблюдатель со скоростью 2*Speed,
// выживание и приключение ходят под действием гравитации.
//
// Шаг фиксирован на кадр; dt учитывает часы симуляции, а не контроллер.
func (c *Controller) Step(obs *entity.Observer, mode gamemode.Mode, in Input, dt float64) {
	if !mode.Valid() {
		return
	}
	step := in.Direction().Mul(c.Speed * mode.SpeedMultiplier())

	if mode.Flies() {
		obs.Position = obs.Position.Add(step)
		return
	}

	if in.Jump {
		obs.Velocity[1] = c.JumpSpeed
	}
	obs.Position = obs.Position.Add(step)
	obs.Velocity[1] -= c.Gravity
	obs.Position[1] += obs.Velocity[1]
}
