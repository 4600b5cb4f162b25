// Package gamemode хранит текущий игровой режим. Режим сам ничего не делает,
// движение и взаимодействие ветвятся по нему через switch.
package gamemode

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode значение вне перечисления Mode
var ErrUnknownMode = errors.New("unknown game mode")

// Mode игровой режим
type Mode uint8

const (
	Survival Mode = iota // Начальный режим
	Creative
	Adventure
	Spectator

	modeCount // всегда последний
)

// All возвращает все режимы в порядке клавиш 1-4
func All() []Mode {
	return []Mode{Survival, Creative, Adventure, Spectator}
}

// String возвращает строковое представление режима
func (m Mode) String() string {
	switch m {
	case Survival:
		return "survival"
	case Creative:
		return "creative"
	case Adventure:
		return "adventure"
	case Spectator:
		return "spectator"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Valid проверяет, что значение входит в перечисление
func (m Mode) Valid() bool {
	return m < modeCount
}

// Parse разбирает режим из строки
func Parse(s string) (Mode, error) {
	for _, m := range All() {
		if strings.EqualFold(strings.TrimSpace(s), m.String()) {
			return m, nil
		}
	}
	return Survival, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// FromKey сопоставляет цифровую клавишу 1-4 режиму
func FromKey(key int) (Mode, bool) {
	if key < 1 || key > int(modeCount) {
		return Survival, false
	}
	return Mode(key - 1), true
}

// Flies возвращает true для режимов без гравитации
func (m Mode) Flies() bool {
	switch m {
	case Creative, Spectator:
		return true
	default:
		return false
	}
}

// SpeedMultiplier множитель горизонтальной скорости
func (m Mode) SpeedMultiplier() float64 {
	switch m {
	case Spectator:
		return 2
	default:
		return 1
	}
}

// EnterHook вызывается при каждом входе в режим, включая повторный вход в текущий
type EnterHook func(from, to Mode)

// Machine конечный автомат режимов. Переходы безусловны: из любого режима
// в любой, в том числе в себя.
type Machine struct {
	current  Mode
	hooks    []EnterHook
	switches uint64
}

// NewMachine создаёт автомат в режиме Survival
func NewMachine() *Machine {
	return &Machine{current: Survival}
}

// Current возвращает текущий режим
func (m *Machine) Current() Mode {
	return m.current
}

// OnEnter регистрирует обработчик входа в режим
func (m *Machine) OnEnter(hook EnterHook) {
	m.hooks = append(m.hooks, hook)
}

// Switch переводит автомат в target. Ошибка возможна только для значения
// вне перечисления, состояние при этом не меняется.
func (m *Machine) Switch(target Mode) error {
	if !target.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownMode, uint8(target))
	}

	from := m.current
	m.current = target
	m.switches++

	for _, hook := range m.hooks {
		hook(from, target)
	}
	return nil
}

// Switches возвращает количество выполненных переходов
func (m *Machine) Switches() uint64 {
	return m.switches
}
