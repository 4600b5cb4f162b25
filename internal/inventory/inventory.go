// Package inventory реализует ограниченный упорядоченный список предметов.
// Предметы только добавляются в конец; удаления в ядре нет.
package inventory

import (
	"errors"
	"fmt"
)

// MaxSlots вместимость инвентаря по умолчанию
const MaxSlots = 10

var (
	// ErrInventoryFull инвентарь заполнен; ожидаемая ситуация, решает вызывающий код
	ErrInventoryFull = errors.New("inventory full")

	// ErrUnknownItem предмета нет в реестре
	ErrUnknownItem = errors.New("unknown item")
)

// Catalog проверяет, что предмет существует.
// Реализуется реестром блоков.
type Catalog interface {
	Contains(itemID string) bool
}

// Inventory хранит идентификаторы предметов в порядке добавления
type Inventory struct {
	items    []string
	max      int
	selected int // Курсор хотбара, по умолчанию слот 0
}

// New создает пустой инвентарь. max <= 0 означает MaxSlots.
func New(max int) *Inventory {
	if max <= 0 {
		max = MaxSlots
	}
	return &Inventory{
		items: make([]string, 0, max),
		max:   max,
	}
}

// Add добавляет предмет в конец. При заполненном инвентаре возвращает
// ErrInventoryFull и ничего не меняет.
func (inv *Inventory) Add(itemID string) error {
	if len(inv.items) >= inv.max {
		return fmt.Errorf("%w: %d/%d, %s не добавлен", ErrInventoryFull, len(inv.items), inv.max, itemID)
	}
	inv.items = append(inv.items, itemID)
	return nil
}

// AddKnown добавляет предмет только если он есть в каталоге
func (inv *Inventory) AddKnown(catalog Catalog, itemID string) error {
	if catalog != nil && !catalog.Contains(itemID) {
		return fmt.Errorf("%w: %s", ErrUnknownItem, itemID)
	}
	return inv.Add(itemID)
}

// Select возвращает предмет по индексу; false, если индекс вне диапазона
func (inv *Inventory) Select(index int) (string, bool) {
	if index < 0 || index >= len(inv.items) {
		return "", false
	}
	return inv.items[index], true
}

// SetSelected перемещает курсор хотбара. Курсор может указывать на пустой слот.
func (inv *Inventory) SetSelected(index int) error {
	if index < 0 || index >= inv.max {
		return fmt.Errorf("слот %d вне диапазона [0,%d)", index, inv.max)
	}
	inv.selected = index
	return nil
}

// SelectedIndex возвращает позицию курсора
func (inv *Inventory) SelectedIndex() int {
	return inv.selected
}

// Selected возвращает предмет под курсором
func (inv *Inventory) Selected() (string, bool) {
	return inv.Select(inv.selected)
}

// Len возвращает количество предметов
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Cap возвращает вместимость
func (inv *Inventory) Cap() int {
	return inv.max
}

// Full проверяет, заполнен ли инвентарь
func (inv *Inventory) Full() bool {
	return len(inv.items) >= inv.max
}

// Items возвращает копию списка предметов
func (inv *Inventory) Items() []string {
	out := make([]string, len(inv.items))
	copy(out, inv.items)
	return out
}
