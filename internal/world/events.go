package world

import (
	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// EventType определяет тип уведомления для рендера
type EventType uint8

const (
	EventTypeChunkLoaded   EventType = iota // Чанк загружен и сгенерирован
	EventTypeChunkUnloaded                  // Чанк выгружен
	EventTypeBlockPlaced                    // Поставлен свободный блок
)

// String возвращает строковое представление типа события
func (t EventType) String() string {
	switch t {
	case EventTypeChunkLoaded:
		return "chunk-loaded"
	case EventTypeChunkUnloaded:
		return "chunk-unloaded"
	case EventTypeBlockPlaced:
		return "block-placed"
	default:
		return "unknown"
	}
}

// Event представляет собой интерфейс для всех событий
type Event interface {
	GetType() EventType
}

// ChunkLoadedEvent отправляется после полной генерации и вставки чанка в индекс
type ChunkLoadedEvent struct {
	Coords vec.Vec2
	Chunk  *Chunk // Только для чтения на стороне рендера
	Digest uint64
}

// GetType возвращает тип события
func (e ChunkLoadedEvent) GetType() EventType {
	return EventTypeChunkLoaded
}

// ChunkUnloadedEvent отправляется после удаления чанка из индекса
type ChunkUnloadedEvent struct {
	Coords vec.Vec2
}

// GetType возвращает тип события
func (e ChunkUnloadedEvent) GetType() EventType {
	return EventTypeChunkUnloaded
}

// BlockPlacedEvent свободный блок, поставленный в творческом режиме
type BlockPlacedEvent struct {
	ID       uuid.UUID
	Position mgl64.Vec3
	Block    block.BlockType
	Texture  block.TextureHandle
}

// GetType возвращает тип события
func (e BlockPlacedEvent) GetType() EventType {
	return EventTypeBlockPlaced
}

// Listener получает уведомления синхронно, в потоке симуляции
type Listener interface {
	OnEvent(ev Event)
}

// ListenerFunc адаптер функции к Listener
type ListenerFunc func(ev Event)

// OnEvent реализует Listener
func (f ListenerFunc) OnEvent(ev Event) {
	f(ev)
}

// MultiListener рассылает событие всем слушателям по порядку
type MultiListener []Listener

// OnEvent реализует Listener
func (m MultiListener) OnEvent(ev Event) {
	for _, l := range m {
		if l != nil {
			l.OnEvent(ev)
		}
	}
}
