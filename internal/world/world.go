package world

import (
	"fmt"
	"time"

	"github.com/annel0/voxelworld/internal/config"
	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/annel0/voxelworld/internal/world/terrain"
	"github.com/go-gl/mathgl/mgl64"
)

// StreamingManager хранит индекс загруженных чанков и решает, какие чанки
// должны существовать при текущей позиции наблюдателя.
//
// Не потокобезопасен: все вызовы выполняются в потоке симуляции между кадрами.
type StreamingManager struct {
	chunkSize      int
	renderDistance int
	unloadRadius   int
	generator      terrain.Generator

	chunks map[vec.Vec2]*Chunk // Индекс мира: отсутствие ключа = "не загружен"
	order  []vec.Vec2          // Порядок вставки, нужен для детерминированного обхода

	center    vec.Vec2
	hasCenter bool

	listener Listener
	metrics  *Metrics
	logger   *logging.Logger
}

// Option настраивает StreamingManager
type Option func(*StreamingManager)

// WithListener задает получателя уведомлений о загрузке/выгрузке
func WithListener(l Listener) Option {
	return func(m *StreamingManager) { m.listener = l }
}

// WithMetrics подключает Prometheus-метрики
func WithMetrics(metrics *Metrics) Option {
	return func(m *StreamingManager) { m.metrics = metrics }
}

// WithLogger заменяет логгер компонента
func WithLogger(l *logging.Logger) Option {
	return func(m *StreamingManager) { m.logger = l }
}

// NewStreamingManager создаёт менеджер с пустым индексом
func NewStreamingManager(cfg config.WorldConfig, gen terrain.Generator, opts ...Option) *StreamingManager {
	m := &StreamingManager{
		chunkSize:      cfg.ChunkSize,
		renderDistance: cfg.RenderDistance,
		unloadRadius:   cfg.UnloadRadius(),
		generator:      gen,
		chunks:         make(map[vec.Vec2]*Chunk),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.GetWorldLogger()
	}
	return m
}

// ReconcileResult итог одной сверки индекса с позицией наблюдателя
type ReconcileResult struct {
	Center   vec.Vec2
	Loaded   []vec.Vec2
	Unloaded []vec.Vec2
}

// Changed возвращает true, если индекс изменился
func (r ReconcileResult) Changed() bool {
	return len(r.Loaded) > 0 || len(r.Unloaded) > 0
}

// Reconcile приводит индекс в соответствие с позицией наблюдателя.
// Сначала загружаются все недостающие чанки в радиусе renderDistance,
// затем выгружаются чанки дальше renderDistance+retentionSlack.
// Повторный вызов с тем же центральным чанком ничего не меняет.
func (m *StreamingManager) Reconcile(observer mgl64.Vec3) ReconcileResult {
	center := vec.ChunkAt(observer, m.chunkSize)
	result := ReconcileResult{Center: center}

	if !m.hasCenter || m.center != center {
		m.logger.Trace("Центр стриминга: %s -> %s", m.center, center)
	}
	m.center = center
	m.hasCenter = true

	// Загрузка
	for dx := -m.renderDistance; dx <= m.renderDistance; dx++ {
		for dz := -m.renderDistance; dz <= m.renderDistance; dz++ {
			coord := vec.Vec2{X: center.X + dx, Z: center.Z + dz}
			if _, exists := m.chunks[coord]; exists {
				continue
			}

			started := time.Now()
			chunk := GenerateChunk(coord, m.chunkSize, m.generator)
			m.metrics.observeLoad(time.Since(started).Seconds())

			// Чанк виден остальным только после полной генерации
			m.chunks[coord] = chunk
			m.order = append(m.order, coord)
			result.Loaded = append(result.Loaded, coord)
			m.notify(ChunkLoadedEvent{Coords: coord, Chunk: chunk, Digest: chunk.Digest()})
		}
	}

	// Выгрузка
	kept := make([]vec.Vec2, 0, len(m.order))
	for _, coord := range m.order {
		if coord.Chebyshev(center) > m.unloadRadius {
			delete(m.chunks, coord)
			result.Unloaded = append(result.Unloaded, coord)
			continue
		}
		kept = append(kept, coord)
	}
	m.order = kept

	for _, coord := range result.Unloaded {
		m.metrics.observeUnload()
		m.notify(ChunkUnloadedEvent{Coords: coord})
	}

	m.metrics.setResident(len(m.chunks))
	return result
}

func (m *StreamingManager) notify(ev Event) {
	if m.listener != nil {
		m.listener.OnEvent(ev)
	}
}

// Chunk возвращает загруженный чанк по координатам
func (m *StreamingManager) Chunk(coords vec.Vec2) (*Chunk, bool) {
	chunk, exists := m.chunks[coords]
	return chunk, exists
}

// Loaded возвращает координаты загруженных чанков в порядке вставки
func (m *StreamingManager) Loaded() []vec.Vec2 {
	out := make([]vec.Vec2, len(m.order))
	copy(out, m.order)
	return out
}

// Len возвращает количество загруженных чанков
func (m *StreamingManager) Len() int {
	return len(m.chunks)
}

// ForEachChunk обходит загруженные чанки в порядке вставки
func (m *StreamingManager) ForEachChunk(fn func(chunk *Chunk)) {
	for _, coord := range m.order {
		fn(m.chunks[coord])
	}
}

// Center возвращает центральный чанк последней сверки
func (m *StreamingManager) Center() (vec.Vec2, bool) {
	return m.center, m.hasCenter
}

// ChunkSize возвращает длину ребра чанка
func (m *StreamingManager) ChunkSize() int {
	return m.chunkSize
}

// RenderDistance возвращает радиус загрузки
func (m *StreamingManager) RenderDistance() int {
	return m.renderDistance
}

// UnloadRadius возвращает радиус, за которым чанк выгружается
func (m *StreamingManager) UnloadRadius() int {
	return m.unloadRadius
}

// BlockAtWorld возвращает блок по мировым координатам.
// ok == false, если чанк не загружен или y вне чанка.
func (m *StreamingManager) BlockAtWorld(pos vec.Vec3) (block.BlockType, bool) {
	coords, local := pos.ChunkOf(m.chunkSize)
	chunk, exists := m.chunks[coords]
	if !exists {
		return block.Air, false
	}
	t, err := chunk.BlockAt(local.X, local.Y, local.Z)
	if err != nil {
		return block.Air, false
	}
	return t, true
}

// SetBlockWorld перезаписывает блок по мировым координатам
func (m *StreamingManager) SetBlockWorld(pos vec.Vec3, t block.BlockType) error {
	coords, local := pos.ChunkOf(m.chunkSize)
	chunk, exists := m.chunks[coords]
	if !exists {
		return fmt.Errorf("%w: %s", ErrChunkNotLoaded, coords)
	}
	return chunk.SetBlock(local.X, local.Y, local.Z, t)
}
