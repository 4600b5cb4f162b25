// Package input переводит события клавиатуры и мыши в кадры симуляции.
package input

import (
	"strings"
	"sync"

	"github.com/annel0/voxelworld/internal/game"
	"github.com/annel0/voxelworld/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// Клавиши быстрого добавления предметов
var quickAddKeys = map[string]string{
	"i": "grass_block",
	"j": "wood_block",
	"k": "stone_block",
}

// Keyboard копит нажатия между кадрами. Оси движения держатся до отпускания,
// остальное (прыжок, режим, предметы, клик) срабатывает один раз.
// Безопасен для вызова из потока ввода параллельно с Frame.
type Keyboard struct {
	mu sync.Mutex

	axisX int // -1 влево, +1 вправо
	axisZ int // -1 вперед, +1 назад

	jump     bool
	modeKey  int
	quickAdd []string
	click    bool
	facing   *mgl64.Vec3
}

// NewKeyboard создаёт пустое состояние ввода
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// KeyDown обрабатывает нажатие. Возвращает false для неизвестной клавиши.
func (k *Keyboard) KeyDown(key string) bool {
	key = normalize(key)

	k.mu.Lock()
	defer k.mu.Unlock()

	switch key {
	case "w":
		k.axisZ = -1
	case "s":
		k.axisZ = 1
	case "a":
		k.axisX = -1
	case "d":
		k.axisX = 1
	case " ":
		k.jump = true
	case "1", "2", "3", "4":
		k.modeKey = int(key[0] - '0')
	default:
		item, ok := quickAddKeys[key]
		if !ok {
			return false
		}
		k.quickAdd = append(k.quickAdd, item)
	}
	return true
}

// KeyUp отпускание любой клавиши оси сбрасывает всю ось
func (k *Keyboard) KeyUp(key string) {
	key = normalize(key)

	k.mu.Lock()
	defer k.mu.Unlock()

	switch key {
	case "w", "s":
		k.axisZ = 0
	case "a", "d":
		k.axisX = 0
	}
}

// Click запрашивает взаимодействие в следующем кадре
func (k *Keyboard) Click() {
	k.mu.Lock()
	k.click = true
	k.mu.Unlock()
}

// Look задает направление камеры для следующего кадра
func (k *Keyboard) Look(dir mgl64.Vec3) {
	k.mu.Lock()
	k.facing = &dir
	k.mu.Unlock()
}

// Frame собирает кадр и сбрасывает одноразовые запросы
func (k *Keyboard) Frame() game.Frame {
	k.mu.Lock()
	defer k.mu.Unlock()

	frame := game.Frame{
		Input: physics.Input{
			Forward: k.axisZ < 0,
			Back:    k.axisZ > 0,
			Left:    k.axisX < 0,
			Right:   k.axisX > 0,
			Jump:    k.jump,
		},
		ModeKey:  k.modeKey,
		QuickAdd: k.quickAdd,
		Click:    k.click,
		Facing:   k.facing,
	}

	k.jump = false
	k.modeKey = 0
	k.quickAdd = nil
	k.click = false
	k.facing = nil
	return frame
}

func normalize(key string) string {
	switch strings.ToLower(key) {
	case "space":
		return " "
	default:
		return strings.ToLower(key)
	}
}
